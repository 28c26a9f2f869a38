package locating

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tabc-sales-api/infrastructure/repository"
	"github.com/vfg2006/tabc-sales-api/internal/cache"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
	"github.com/vfg2006/tabc-sales-api/pkg/utils"
)

const (
	SearchLimit = 50

	DefaultOutlierThreshold = 3.0
)

type Locator interface {
	// GetAll agrega todos os locais, opcionalmente limitados ao período [início, fim]
	GetAll(ctx context.Context, filter *domain.DateFilter) ([]domain.LocationSummary, error)

	// GetByPermit retorna todo o histórico de um permit, ou nil se ele não existir
	GetByPermit(ctx context.Context, permitNumber string) (*domain.LocationSummary, error)

	// SearchByName busca pelo nome do local na tabela de resumos (até SearchLimit resultados)
	SearchByName(ctx context.Context, name string) ([]domain.LocationSummary, error)

	// GetOutliers retorna os locais cujo |z-score| do total de vendas é >= threshold
	GetOutliers(ctx context.Context, filter *domain.DateFilter, threshold float64) ([]domain.LocationOutlier, error)

	// Refresh descarta os resultados em cache
	Refresh()
}

type QueryCache interface {
	Get(key string) ([]domain.LocationSummary, uint64, bool)
	Set(key string, generation uint64, data []domain.LocationSummary) bool
	Clear()
}

type LocationService struct {
	salesRepo   repository.SalesRecordRepository
	summaryRepo repository.EstablishmentSummaryRepository
	cache       QueryCache
}

func NewLocationService(
	salesRepo repository.SalesRecordRepository,
	summaryRepo repository.EstablishmentSummaryRepository,
	queryCache QueryCache,
) Locator {
	return &LocationService{
		salesRepo:   salesRepo,
		summaryRepo: summaryRepo,
		cache:       queryCache,
	}
}

func (s *LocationService) GetAll(ctx context.Context, filter *domain.DateFilter) ([]domain.LocationSummary, error) {
	key := cache.Key(filter)
	cached, generation, ok := s.cache.Get(key)
	if ok {
		logrus.WithField("key", key).Debug("locating: cache hit")
		return cached, nil
	}

	aggregates, err := s.salesRepo.AggregateLocations(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar locais: %w", err)
	}

	records, err := s.salesRepo.ListInRange(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar registros mensais: %w", err)
	}

	summaries := make([]domain.LocationSummary, 0, len(aggregates))
	for _, aggregate := range aggregates {
		summaries = append(summaries, aggregate.ToLocationSummary())
	}
	domain.AttachMonthlyRecords(summaries, records)

	if !s.cache.Set(key, generation, summaries) {
		logrus.WithField("key", key).Debug("locating: cache limpo durante a consulta, resultado não armazenado")
		return summaries, nil
	}

	logrus.WithFields(logrus.Fields{
		"key":       key,
		"locations": len(summaries),
		"records":   len(records),
	}).Debug("locating: cache populado")

	return summaries, nil
}

func (s *LocationService) GetByPermit(ctx context.Context, permitNumber string) (*domain.LocationSummary, error) {
	aggregate, err := s.salesRepo.AggregateByPermit(ctx, permitNumber)
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar permit: %w", err)
	}
	if aggregate == nil {
		return nil, nil
	}

	records, err := s.salesRepo.ListByPermits(ctx, []string{permitNumber}, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar registros do permit: %w", err)
	}

	summaries := []domain.LocationSummary{aggregate.ToLocationSummary()}
	domain.AttachMonthlyRecords(summaries, records)

	return &summaries[0], nil
}

func (s *LocationService) SearchByName(ctx context.Context, name string) ([]domain.LocationSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	matches, err := s.summaryRepo.SearchByName(ctx, name, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar locais por nome: %w", err)
	}

	summaries := make([]domain.LocationSummary, 0, len(matches))
	permitNumbers := make([]string, 0, len(matches))
	for _, match := range matches {
		summaries = append(summaries, match.ToLocationSummary())
		permitNumbers = append(permitNumbers, match.PermitNumber)
	}

	if len(permitNumbers) == 0 {
		return summaries, nil
	}

	records, err := s.salesRepo.ListByPermits(ctx, permitNumbers, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar registros dos locais encontrados: %w", err)
	}
	domain.AttachMonthlyRecords(summaries, records)

	return summaries, nil
}

func (s *LocationService) GetOutliers(ctx context.Context, filter *domain.DateFilter, threshold float64) ([]domain.LocationOutlier, error) {
	if threshold <= 0 {
		threshold = DefaultOutlierThreshold
	}

	summaries, err := s.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return findOutliers(summaries, threshold), nil
}

func (s *LocationService) Refresh() {
	s.cache.Clear()
	logrus.Info("locating: cache limpo manualmente")
}

// findOutliers usa o desvio padrão populacional; conjunto sem variação não tem outliers
func findOutliers(summaries []domain.LocationSummary, threshold float64) []domain.LocationOutlier {
	outliers := make([]domain.LocationOutlier, 0)
	if len(summaries) == 0 {
		return outliers
	}

	var sum float64
	for _, summary := range summaries {
		sum += summary.TotalSales
	}
	mean := sum / float64(len(summaries))

	var variance float64
	for _, summary := range summaries {
		variance += (summary.TotalSales - mean) * (summary.TotalSales - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(summaries)))
	if stdDev == 0 {
		return outliers
	}

	for _, summary := range summaries {
		z := (summary.TotalSales - mean) / stdDev
		if math.Abs(z) >= threshold {
			outliers = append(outliers, domain.LocationOutlier{
				LocationSummary: summary,
				ZScore:          utils.RoundWithTwoDecimalPlace(z),
			})
		}
	}

	sort.SliceStable(outliers, func(i, j int) bool {
		return outliers[i].ZScore > outliers[j].ZScore
	})

	return outliers
}
