package importing

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/tabc-sales-api/infrastructure/integrator/opendata"
	opendatamocks "github.com/vfg2006/tabc-sales-api/infrastructure/integrator/opendata/mocks"
	"github.com/vfg2006/tabc-sales-api/infrastructure/repository/mocks"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// memoryStore implementa os dois repositórios sobre um slice, aplicando as mesmas regras de agregação do SQL
type memoryStore struct {
	mu         sync.Mutex
	records    []domain.MonthlySalesRecord
	summaries  map[string]domain.EstablishmentSummary
	failOnCall int
	insertCall int
}

func newMemoryStore(records ...domain.MonthlySalesRecord) *memoryStore {
	return &memoryStore{
		records:   records,
		summaries: make(map[string]domain.EstablishmentSummary),
	}
}

func (m *memoryStore) LatestObligationDate(ctx context.Context) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.records) == 0 {
		return nil, nil
	}
	latest := m.records[0].ObligationEndDate
	for _, r := range m.records {
		if r.ObligationEndDate.After(latest) {
			latest = r.ObligationEndDate
		}
	}
	return &latest, nil
}

func (m *memoryStore) ExistingKeys(ctx context.Context, filter *domain.DateFilter) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make(map[string]struct{})
	for _, r := range m.records {
		if filter.Contains(r.ObligationEndDate) {
			keys[r.Key()] = struct{}{}
		}
	}
	return keys, nil
}

func (m *memoryStore) InsertBatch(ctx context.Context, records []domain.MonthlySalesRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insertCall++
	if m.failOnCall > 0 && m.insertCall == m.failOnCall {
		return 0, errors.New("conexão perdida")
	}
	m.records = append(m.records, records...)
	return int64(len(records)), nil
}

func (m *memoryStore) AggregateLocations(ctx context.Context, filter *domain.DateFilter) ([]domain.LocationAggregate, error) {
	return nil, nil
}

func (m *memoryStore) AggregateByPermit(ctx context.Context, permitNumber string) (*domain.LocationAggregate, error) {
	return nil, nil
}

func (m *memoryStore) ListByPermits(ctx context.Context, permitNumbers []string, filter *domain.DateFilter) ([]domain.MonthlySalesRecord, error) {
	return nil, nil
}

func (m *memoryStore) ListInRange(ctx context.Context, filter *domain.DateFilter) ([]domain.MonthlySalesRecord, error) {
	return nil, nil
}

func (m *memoryStore) RecomputeForPermits(ctx context.Context, permitNumbers []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, permit := range permitNumbers {
		summary := domain.EstablishmentSummary{PermitNumber: permit}
		for _, r := range m.records {
			if r.PermitNumber != permit {
				continue
			}
			summary.TotalSales = summary.TotalSales.Add(r.TotalReceipts)
			summary.TotalLiquor = summary.TotalLiquor.Add(r.LiquorReceipts)
			summary.TotalWine = summary.TotalWine.Add(r.WineReceipts)
			summary.TotalBeer = summary.TotalBeer.Add(r.BeerReceipts)
			summary.TotalCoverCharge = summary.TotalCoverCharge.Add(r.CoverChargeReceipts)
			summary.RecordCount++
			if r.ObligationEndDate.After(summary.LatestMonth) {
				summary.LatestMonth = r.ObligationEndDate
			}
			if r.LocationName > summary.LocationName {
				summary.LocationName = r.LocationName
			}
		}
		m.summaries[permit] = summary
	}
	return int64(len(permitNumbers)), nil
}

func (m *memoryStore) SearchByName(ctx context.Context, name string, limit int) ([]domain.EstablishmentSummary, error) {
	return nil, nil
}

func (m *memoryStore) GetByPermit(ctx context.Context, permitNumber string) (*domain.EstablishmentSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	summary, ok := m.summaries[permitNumber]
	if !ok {
		return nil, nil
	}
	return &summary, nil
}

type countingCache struct {
	clears int
}

func (c *countingCache) Clear() {
	c.clears++
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func record(permit string, obligation time.Time, total string) domain.MonthlySalesRecord {
	return domain.MonthlySalesRecord{
		PermitNumber:      permit,
		LocationName:      "RUSTIC " + permit,
		LocationCity:      "Houston",
		ObligationEndDate: obligation,
		LiquorReceipts:    decimal.RequireFromString(total),
		TotalReceipts:     decimal.RequireFromString(total),
	}
}

// categorized monta um registro com as quatro categorias preenchidas e o total igual à soma delas
func categorized(permit string, obligation time.Time, liquor, wine, beer, cover string) domain.MonthlySalesRecord {
	r := record(permit, obligation, "0")
	r.LiquorReceipts = decimal.RequireFromString(liquor)
	r.WineReceipts = decimal.RequireFromString(wine)
	r.BeerReceipts = decimal.RequireFromString(beer)
	r.CoverChargeReceipts = decimal.RequireFromString(cover)
	r.TotalReceipts = r.LiquorReceipts.Add(r.WineReceipts).Add(r.BeerReceipts).Add(r.CoverChargeReceipts)
	return r
}

func series(records ...domain.MonthlySalesRecord) []domain.LocationSeries {
	byPermit := make(map[string][]domain.MonthlySalesRecord)
	for _, r := range records {
		byPermit[r.PermitNumber] = append(byPermit[r.PermitNumber], r)
	}

	result := make([]domain.LocationSeries, 0, len(byPermit))
	for permit, permitRecords := range byPermit {
		total := decimal.Zero
		for _, r := range permitRecords {
			total = total.Add(r.TotalReceipts)
		}
		result = append(result, domain.LocationSeries{PermitNumber: permit, TotalSales: total, Records: permitRecords})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PermitNumber < result[j].PermitNumber })
	return result
}

func newTestService(store *memoryStore, integrator opendata.OpenDataIntegrator, c CacheInvalidator, batchSize int) *ImportService {
	return &ImportService{
		salesRepo:   store,
		summaryRepo: store,
		integrator:  integrator,
		cache:       c,
		batchSize:   batchSize,
		now:         func() time.Time { return time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC) },
	}
}

func TestImportService_RunIncrementalImport(t *testing.T) {
	jan := date(2024, 1, 31)
	feb := date(2024, 2, 29)

	tests := []struct {
		name         string
		stored       []domain.MonthlySalesRecord
		fetched      []domain.MonthlySalesRecord
		wantImported int
		wantMessage  string
		wantClears   int
		validate     func(t *testing.T, store *memoryStore, result *domain.ImportResult)
	}{
		{
			name:         "Novo período de um permit existente é importado e o resumo recalculado",
			stored:       []domain.MonthlySalesRecord{record("MB1", jan, "1000")},
			fetched:      []domain.MonthlySalesRecord{record("MB1", jan, "1000"), record("MB1", feb, "1500")},
			wantImported: 1,
			wantMessage:  "imported 1 new records",
			wantClears:   1,
			validate: func(t *testing.T, store *memoryStore, result *domain.ImportResult) {
				summary, err := store.GetByPermit(context.Background(), "MB1")
				require.NoError(t, err)
				require.NotNil(t, summary)
				assert.InDelta(t, 2500.0, summary.TotalSales.InexactFloat64(), 0.001)
				assert.Equal(t, feb, summary.LatestMonth)
				assert.Equal(t, 2, summary.RecordCount)

				require.NotNil(t, result.LatestDate)
				assert.Equal(t, feb, *result.LatestDate)
				require.NotNil(t, result.PreviousLatestDate)
				assert.Equal(t, jan, *result.PreviousLatestDate)
			},
		},
		{
			name:        "API sem registros retorna 'already up to date' sem limpar o cache",
			stored:      []domain.MonthlySalesRecord{record("MB1", jan, "1000")},
			fetched:     nil,
			wantMessage: MessageUpToDate,
		},
		{
			name:        "Somente registros já existentes retorna 'no new unique records'",
			stored:      []domain.MonthlySalesRecord{record("MB1", jan, "1000")},
			fetched:     []domain.MonthlySalesRecord{record("MB1", jan, "1000")},
			wantMessage: MessageNoNewRecords,
		},
		{
			name:         "Duplicatas dentro do próprio lote buscado são gravadas uma única vez",
			stored:       []domain.MonthlySalesRecord{record("MB1", jan, "1000")},
			fetched:      []domain.MonthlySalesRecord{record("MB2", feb, "300"), record("MB2", feb, "300")},
			wantImported: 1,
			wantMessage:  "imported 1 new records",
			wantClears:   1,
			validate: func(t *testing.T, store *memoryStore, result *domain.ImportResult) {
				assert.Len(t, store.records, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := newMemoryStore(tt.stored...)
			integrator := opendatamocks.NewMockOpenDataIntegrator(ctrl)
			queryCache := &countingCache{}
			service := newTestService(store, integrator, queryCache, 1000)

			integrator.EXPECT().
				FetchSales(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, params opendata.FetchParams) ([]domain.LocationSeries, error) {
					require.NotNil(t, params.StartDate)
					require.NotNil(t, params.EndDate)
					assert.Equal(t, jan, *params.StartDate)
					assert.Equal(t, date(2024, 3, 11), *params.EndDate)
					return series(tt.fetched...), nil
				})

			result, err := service.RunIncrementalImport(context.Background())
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Equal(t, tt.wantImported, result.Imported)
			assert.Equal(t, tt.wantMessage, result.Message)
			assert.Equal(t, tt.wantClears, queryCache.clears)
			assert.NotEmpty(t, result.RunID)

			if tt.validate != nil {
				tt.validate(t, store, result)
			}
		})
	}
}

func TestImportService_RunIncrementalImport_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jan := date(2024, 1, 31)
	feb := date(2024, 2, 29)

	store := newMemoryStore(record("MB1", jan, "1000"))
	integrator := opendatamocks.NewMockOpenDataIntegrator(ctrl)
	queryCache := &countingCache{}
	service := newTestService(store, integrator, queryCache, 1000)

	fetched := series(record("MB1", feb, "1500"), record("MB2", feb, "700"))
	integrator.EXPECT().FetchSales(gomock.Any(), gomock.Any()).Return(fetched, nil).Times(2)

	first, err := service.RunIncrementalImport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Imported)

	second, err := service.RunIncrementalImport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, MessageNoNewRecords, second.Message)

	assert.Len(t, store.records, 3)
	assert.Equal(t, 1, queryCache.clears)

	// Cada chave aparece uma única vez na tabela fato
	seen := make(map[string]int)
	for _, r := range store.records {
		seen[r.Key()]++
	}
	for key, count := range seen {
		assert.Equal(t, 1, count, key)
	}
}

func TestImportService_RunIncrementalImport_ConcurrentRunsSerialize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jan := date(2024, 1, 31)
	feb := date(2024, 2, 29)

	store := newMemoryStore(record("MB1", jan, "1000"))
	integrator := opendatamocks.NewMockOpenDataIntegrator(ctrl)
	queryCache := &countingCache{}
	service := newTestService(store, integrator, queryCache, 1000)

	fetched := series(record("MB1", feb, "1500"), record("MB2", feb, "700"))
	integrator.EXPECT().FetchSales(gomock.Any(), gomock.Any()).Return(fetched, nil).Times(2)

	var wg sync.WaitGroup
	results := make([]*domain.ImportResult, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := service.RunIncrementalImport(context.Background())
			assert.NoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	require.NotNil(t, results[0])
	require.NotNil(t, results[1])
	assert.Equal(t, 2, results[0].Imported+results[1].Imported)
	assert.Len(t, store.records, 3)
	assert.Equal(t, 1, queryCache.clears)
}

func TestImportService_RunIncrementalImport_SummaryMatchesFacts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := newMemoryStore(categorized("MB1", date(2023, 12, 31), "60.10", "20", "15", "5"))
	integrator := opendatamocks.NewMockOpenDataIntegrator(ctrl)
	service := newTestService(store, integrator, &countingCache{}, 2)

	fetched := series(
		categorized("MB1", date(2024, 1, 31), "120.20", "40", "30", "10"),
		categorized("MB1", date(2024, 2, 29), "150.30", "80", "50", "20"),
		categorized("MB2", date(2024, 1, 31), "30.05", "10", "10", "0"),
		categorized("MB3", date(2024, 2, 29), "0", "0", "10.01", "0"),
	)
	integrator.EXPECT().FetchSales(gomock.Any(), gomock.Any()).Return(fetched, nil)

	result, err := service.RunIncrementalImport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, result.Imported)
	assert.Equal(t, 2, store.insertCall)

	for _, permit := range []string{"MB1", "MB2", "MB3"} {
		var expected domain.EstablishmentSummary
		for _, r := range store.records {
			if r.PermitNumber != permit {
				continue
			}
			expected.TotalLiquor = expected.TotalLiquor.Add(r.LiquorReceipts)
			expected.TotalWine = expected.TotalWine.Add(r.WineReceipts)
			expected.TotalBeer = expected.TotalBeer.Add(r.BeerReceipts)
			expected.TotalCoverCharge = expected.TotalCoverCharge.Add(r.CoverChargeReceipts)
			expected.TotalSales = expected.TotalSales.Add(r.TotalReceipts)
			expected.RecordCount++
		}

		summary, err := store.GetByPermit(context.Background(), permit)
		require.NoError(t, err)
		require.NotNil(t, summary, permit)
		assert.True(t, expected.TotalLiquor.Equal(summary.TotalLiquor), permit)
		assert.True(t, expected.TotalWine.Equal(summary.TotalWine), permit)
		assert.True(t, expected.TotalBeer.Equal(summary.TotalBeer), permit)
		assert.True(t, expected.TotalCoverCharge.Equal(summary.TotalCoverCharge), permit)
		assert.True(t, expected.TotalSales.Equal(summary.TotalSales), permit)
		assert.True(t, summary.TotalSales.Equal(
			summary.TotalLiquor.Add(summary.TotalWine).Add(summary.TotalBeer).Add(summary.TotalCoverCharge)), permit)
		assert.Equal(t, expected.RecordCount, summary.RecordCount, permit)
	}

	mb1, _ := store.GetByPermit(context.Background(), "MB1")
	assert.True(t, decimal.RequireFromString("140").Equal(mb1.TotalWine))
	assert.Equal(t, 3, mb1.RecordCount)
}

func TestImportService_RunIncrementalImport_Errors(t *testing.T) {
	t.Run("Tabela vazia retorna ErrNoBaseline sem chamar a API", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		integrator := opendatamocks.NewMockOpenDataIntegrator(ctrl)
		queryCache := &countingCache{}
		service := newTestService(newMemoryStore(), integrator, queryCache, 1000)

		result, err := service.RunIncrementalImport(context.Background())
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrNoBaseline)
		assert.Equal(t, 0, queryCache.clears)
	})

	t.Run("Falha na API aborta a importação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := newMemoryStore(record("MB1", date(2024, 1, 31), "1000"))
		integrator := opendatamocks.NewMockOpenDataIntegrator(ctrl)
		service := newTestService(store, integrator, &countingCache{}, 1000)

		upstreamErr := errors.New("503 Service Unavailable")
		integrator.EXPECT().FetchSales(gomock.Any(), gomock.Any()).Return(nil, upstreamErr)

		result, err := service.RunIncrementalImport(context.Background())
		assert.Nil(t, result)
		assert.ErrorIs(t, err, upstreamErr)
		assert.Len(t, store.records, 1)
	})

	t.Run("Falha no segundo lote mantém o primeiro gravado e o resumo consistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := newMemoryStore(record("MB1", date(2024, 1, 31), "1000"))
		store.failOnCall = 2
		integrator := opendatamocks.NewMockOpenDataIntegrator(ctrl)
		queryCache := &countingCache{}
		service := newTestService(store, integrator, queryCache, 1)

		integrator.EXPECT().FetchSales(gomock.Any(), gomock.Any()).Return(series(
			record("MB1", date(2024, 2, 29), "10"),
			record("MB2", date(2024, 2, 29), "20"),
		), nil)

		result, err := service.RunIncrementalImport(context.Background())
		assert.Nil(t, result)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lote 2")

		assert.Len(t, store.records, 2)
		assert.Equal(t, 1, queryCache.clears)
		summary, _ := store.GetByPermit(context.Background(), "MB1")
		require.NotNil(t, summary)
		assert.InDelta(t, 1010.0, summary.TotalSales.InexactFloat64(), 0.001)
	})

	t.Run("Erro ao buscar a data mais recente é propagado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		salesRepo := mocks.NewMockSalesRecordRepository(ctrl)
		summaryRepo := mocks.NewMockEstablishmentSummaryRepository(ctrl)
		integrator := opendatamocks.NewMockOpenDataIntegrator(ctrl)

		service := &ImportService{
			salesRepo:   salesRepo,
			summaryRepo: summaryRepo,
			integrator:  integrator,
			cache:       &countingCache{},
			batchSize:   1000,
			now:         time.Now,
		}

		dbErr := errors.New("connection refused")
		salesRepo.EXPECT().LatestObligationDate(gomock.Any()).Return(nil, dbErr)

		_, err := service.RunIncrementalImport(context.Background())
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestImportService_RunFullImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := newMemoryStore()
	integrator := opendatamocks.NewMockOpenDataIntegrator(ctrl)
	queryCache := &countingCache{}
	service := newTestService(store, integrator, queryCache, 1000)
	service.maxRecords = 500

	integrator.EXPECT().
		FetchSales(gomock.Any(), opendata.FetchParams{MaxRecords: 500}).
		Return(series(
			record("MB1", date(2024, 1, 31), "1000"),
			record("MB1", date(2024, 2, 29), "1500"),
		), nil)

	result, err := service.RunFullImport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Nil(t, result.PreviousLatestDate)
	require.NotNil(t, result.LatestDate)
	assert.Equal(t, date(2024, 2, 29), *result.LatestDate)
	assert.Equal(t, 1, queryCache.clears)

	latest, err := store.LatestObligationDate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 29), *latest)
}
