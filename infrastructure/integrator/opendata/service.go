package opendata

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tabc-sales-api/infrastructure/integrator/opendata/opendataclient"
	"github.com/vfg2006/tabc-sales-api/internal/config"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
)

type OpenDataIntegrator interface {
	FetchSales(ctx context.Context, params FetchParams) ([]domain.LocationSeries, error)
}

// Geocoder resolve a cidade de um estabelecimento em coordenadas aproximadas
type Geocoder interface {
	Resolve(city string) domain.Coordinates
}

// FetchParams limita a busca. MaxRecords <= 0 significa sem limite; EndDate é exclusivo.
type FetchParams struct {
	MaxRecords int
	StartDate  *time.Time
	EndDate    *time.Time
}

type OpenDataService struct {
	cfg      *config.Config
	Client   opendataclient.Client
	geocoder Geocoder
}

func New(cfg *config.Config, client opendataclient.Client, geocoder Geocoder) OpenDataIntegrator {
	return &OpenDataService{
		cfg:      cfg,
		Client:   client,
		geocoder: geocoder,
	}
}

// FetchSales pagina a API até uma página incompleta ou o limite de registros, valida as linhas e
// devolve uma série por permit, ordenada pelo total de vendas decrescente. Qualquer falha HTTP
// aborta a busca inteira.
func (s *OpenDataService) FetchSales(ctx context.Context, params FetchParams) ([]domain.LocationSeries, error) {
	batchSize := s.cfg.OpenData.BatchSize
	if batchSize <= 0 {
		batchSize = 10000
	}

	records := make([]domain.MonthlySalesRecord, 0)
	fetched, skipped := 0, 0

	for {
		limit := batchSize
		if params.MaxRecords > 0 {
			remaining := params.MaxRecords - fetched
			if remaining <= 0 {
				break
			}
			limit = min(limit, remaining)
		}

		page, err := s.Client.GetSalesPage(ctx, opendataclient.PageParams{
			Limit:     limit,
			Offset:    fetched,
			StartDate: params.StartDate,
			EndDate:   params.EndDate,
		})
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar página (offset %d): %w", fetched, err)
		}

		for _, raw := range page {
			record, ok := raw.Validate()
			if !ok {
				skipped++
				continue
			}
			records = append(records, record)
		}

		fetched += len(page)

		logrus.WithFields(logrus.Fields{
			"offset": fetched - len(page),
			"rows":   len(page),
		}).Debug("opendata: página recebida")

		if len(page) < limit {
			break
		}
	}

	series := s.groupByPermit(records)

	logrus.WithFields(logrus.Fields{
		"fetched": fetched,
		"valid":   len(records),
		"skipped": skipped,
		"permits": len(series),
	}).Info("opendata: busca concluída")

	return series, nil
}

// groupByPermit monta as séries por permit. As coordenadas vêm da cidade do registro mais recente.
func (s *OpenDataService) groupByPermit(records []domain.MonthlySalesRecord) []domain.LocationSeries {
	byPermit := make(map[string][]domain.MonthlySalesRecord)
	for _, record := range records {
		byPermit[record.PermitNumber] = append(byPermit[record.PermitNumber], record)
	}

	series := make([]domain.LocationSeries, 0, len(byPermit))
	for permitNumber, permitRecords := range byPermit {
		sort.SliceStable(permitRecords, func(i, j int) bool {
			return permitRecords[i].ObligationEndDate.After(permitRecords[j].ObligationEndDate)
		})

		coordinates := s.geocoder.Resolve(permitRecords[0].LocationCity)

		total := decimal.Zero
		for i := range permitRecords {
			permitRecords[i].Latitude = coordinates.Latitude
			permitRecords[i].Longitude = coordinates.Longitude
			total = total.Add(permitRecords[i].TotalReceipts)
		}

		series = append(series, domain.LocationSeries{
			PermitNumber: permitNumber,
			Coordinates:  coordinates,
			TotalSales:   total,
			Records:      permitRecords,
		})
	}

	sort.Slice(series, func(i, j int) bool {
		if cmp := series[i].TotalSales.Cmp(series[j].TotalSales); cmp != 0 {
			return cmp > 0
		}
		return series[i].PermitNumber < series[j].PermitNumber
	})

	return series
}
