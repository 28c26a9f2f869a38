package importing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tabc-sales-api/infrastructure/integrator/opendata"
	"github.com/vfg2006/tabc-sales-api/infrastructure/repository"
	"github.com/vfg2006/tabc-sales-api/internal/config"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
	"github.com/vfg2006/tabc-sales-api/pkg/utils"
)

const defaultBatchSize = 1000

type Importer interface {
	// RunIncrementalImport busca na API apenas o período a partir da data mais recente armazenada
	RunIncrementalImport(ctx context.Context) (*domain.ImportResult, error)

	// RunFullImport busca todo o histórico disponível (limitado por OPENDATA_MAX_RECORDS)
	RunFullImport(ctx context.Context) (*domain.ImportResult, error)
}

// CacheInvalidator é limpo sempre que uma importação grava ao menos uma linha
type CacheInvalidator interface {
	Clear()
}

type ImportService struct {
	salesRepo   repository.SalesRecordRepository
	summaryRepo repository.EstablishmentSummaryRepository
	integrator  opendata.OpenDataIntegrator
	cache       CacheInvalidator
	batchSize   int
	maxRecords  int
	now         func() time.Time

	// Serializa execuções agendadas, de startup e manuais
	mu sync.Mutex
}

func NewImportService(
	cfg *config.Config,
	salesRepo repository.SalesRecordRepository,
	summaryRepo repository.EstablishmentSummaryRepository,
	integrator opendata.OpenDataIntegrator,
	cache CacheInvalidator,
) Importer {
	batchSize := cfg.ImportSync.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &ImportService{
		salesRepo:   salesRepo,
		summaryRepo: summaryRepo,
		integrator:  integrator,
		cache:       cache,
		batchSize:   batchSize,
		maxRecords:  cfg.OpenData.MaxRecords,
		now:         time.Now,
	}
}

func (s *ImportService) RunIncrementalImport(ctx context.Context) (*domain.ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := newResult()
	logger := logrus.WithFields(logrus.Fields{
		"run_id": result.RunID,
		"mode":   "incremental",
	})

	latest, err := s.salesRepo.LatestObligationDate(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar a data mais recente armazenada")
	}
	if latest == nil {
		return nil, ErrNoBaseline
	}

	result.PreviousLatestDate = latest
	result.LatestDate = latest

	// A data mais recente é buscada de novo: o período pode ter recebido linhas atrasadas
	start := *latest
	end := truncateToDate(s.now()).AddDate(0, 0, 1)

	logger.WithFields(logrus.Fields{
		"start": start.Format(time.DateOnly),
		"end":   end.Format(time.DateOnly),
	}).Info("importing: buscando novos registros")

	series, err := s.integrator.FetchSales(ctx, opendata.FetchParams{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar registros na API de dados abertos")
	}

	records := flatten(series)
	if len(records) == 0 {
		result.Message = MessageUpToDate
		logger.Info("importing: nenhum registro retornado pela API")
		return result, nil
	}

	existing, err := s.salesRepo.ExistingKeys(ctx, dateRange(records))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar chaves existentes")
	}

	return s.importRecords(ctx, logger, result, records, existing)
}

func (s *ImportService) RunFullImport(ctx context.Context) (*domain.ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := newResult()
	logger := logrus.WithFields(logrus.Fields{
		"run_id": result.RunID,
		"mode":   "full",
	})

	latest, err := s.salesRepo.LatestObligationDate(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar a data mais recente armazenada")
	}
	result.PreviousLatestDate = latest
	result.LatestDate = latest

	logger.WithField("max_records", s.maxRecords).Info("importing: iniciando carga completa")

	series, err := s.integrator.FetchSales(ctx, opendata.FetchParams{
		MaxRecords: s.maxRecords,
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar registros na API de dados abertos")
	}

	records := flatten(series)
	if len(records) == 0 {
		result.Message = MessageUpToDate
		return result, nil
	}

	existing, err := s.salesRepo.ExistingKeys(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar chaves existentes")
	}

	return s.importRecords(ctx, logger, result, records, existing)
}

// importRecords remove duplicatas, grava em lotes, recalcula os resumos dos permits tocados e
// limpa o cache. Lotes já commitados permanecem mesmo se um lote posterior falhar.
func (s *ImportService) importRecords(
	ctx context.Context,
	logger *logrus.Entry,
	result *domain.ImportResult,
	records []domain.MonthlySalesRecord,
	existing map[string]struct{},
) (*domain.ImportResult, error) {
	fresh := dedup(records, existing)

	logger.WithFields(logrus.Fields{
		"fetched": len(records),
		"new":     len(fresh),
	}).Info("importing: deduplicação concluída")

	if len(fresh) == 0 {
		result.Message = MessageNoNewRecords
		return result, nil
	}

	imported, touched, insertErr := s.insertBatches(ctx, logger, fresh)

	if imported > 0 {
		upserted, err := s.summaryRepo.RecomputeForPermits(ctx, touched)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao recalcular resumos dos estabelecimentos")
		}

		s.cache.Clear()

		logger.WithFields(logrus.Fields{
			"permits":   len(touched),
			"summaries": upserted,
		}).Info("importing: resumos recalculados e cache limpo")
	}

	if insertErr != nil {
		return nil, insertErr
	}

	result.Imported = imported
	result.Message = fmt.Sprintf("imported %d new records", imported)
	if latest := latestDate(fresh); result.LatestDate == nil || latest.After(*result.LatestDate) {
		result.LatestDate = &latest
	}

	return result, nil
}

// insertBatches grava os registros em lotes de batchSize, cada um em sua própria transação.
// Retorna os permits dos lotes efetivamente gravados.
func (s *ImportService) insertBatches(
	ctx context.Context,
	logger *logrus.Entry,
	records []domain.MonthlySalesRecord,
) (int, []string, error) {
	imported := 0
	seen := make(map[string]struct{})
	touched := make([]string, 0)

	for batch, start := 1, 0; start < len(records); batch, start = batch+1, start+s.batchSize {
		end := min(start+s.batchSize, len(records))
		chunk := records[start:end]

		inserted, err := s.salesRepo.InsertBatch(ctx, chunk)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"batch":    batch,
				"imported": imported,
			}).Error("importing: falha ao gravar lote")
			return imported, touched, errors.Wrapf(err, "erro ao gravar lote %d", batch)
		}

		imported += int(inserted)
		for _, record := range chunk {
			if _, ok := seen[record.PermitNumber]; ok {
				continue
			}
			seen[record.PermitNumber] = struct{}{}
			touched = append(touched, record.PermitNumber)
		}

		logger.WithFields(logrus.Fields{
			"batch": batch,
			"rows":  inserted,
		}).Debug("importing: lote gravado")
	}

	return imported, touched, nil
}

func newResult() *domain.ImportResult {
	runID, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Warn("importing: erro ao gerar id da execução")
	}
	return &domain.ImportResult{RunID: runID}
}

func flatten(series []domain.LocationSeries) []domain.MonthlySalesRecord {
	records := make([]domain.MonthlySalesRecord, 0)
	for _, s := range series {
		records = append(records, s.Records...)
	}
	return records
}

// dedup remove registros já persistidos e repetidos dentro do próprio lote buscado
func dedup(records []domain.MonthlySalesRecord, existing map[string]struct{}) []domain.MonthlySalesRecord {
	seen := make(map[string]struct{}, len(records))
	fresh := make([]domain.MonthlySalesRecord, 0, len(records))

	for _, record := range records {
		key := record.Key()
		if _, ok := existing[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		fresh = append(fresh, record)
	}

	return fresh
}

// dateRange retorna o período inclusivo coberto pelos registros
func dateRange(records []domain.MonthlySalesRecord) *domain.DateFilter {
	first, last := records[0].ObligationEndDate, records[0].ObligationEndDate
	for _, record := range records[1:] {
		if record.ObligationEndDate.Before(first) {
			first = record.ObligationEndDate
		}
		if record.ObligationEndDate.After(last) {
			last = record.ObligationEndDate
		}
	}
	return &domain.DateFilter{StartDate: &first, EndDate: &last}
}

func latestDate(records []domain.MonthlySalesRecord) time.Time {
	var latest time.Time
	for _, record := range records {
		if record.ObligationEndDate.After(latest) {
			latest = record.ObligationEndDate
		}
	}
	return latest
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
