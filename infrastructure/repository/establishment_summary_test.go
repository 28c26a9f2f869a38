package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/tabc-sales-api/infrastructure/database/postgres"
)

func TestEstablishmentSummaryRepository_RecomputeForPermits(t *testing.T) {
	tests := []struct {
		name    string
		permits []string
		setup   func(mock sqlmock.Sqlmock)
		want    int64
		wantErr bool
	}{
		{
			name:    "Sem permits não executa nada",
			permits: nil,
			setup:   func(mock sqlmock.Sqlmock) {},
			want:    0,
		},
		{
			name:    "Upsert agregado a partir da tabela fato",
			permits: []string{"MB1", "MB2"},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(
					"(?s)" + regexp.QuoteMeta("INSERT INTO establishment_summaries (permit_number,location_name") +
						".*" + regexp.QuoteMeta("SELECT msr.permit_number, MAX(msr.location_name) AS location_name") +
						".*" + regexp.QuoteMeta("WHERE msr.permit_number = ANY($1) GROUP BY msr.permit_number") +
						".*" + regexp.QuoteMeta("ON CONFLICT (permit_number) DO UPDATE SET"),
				).
					WithArgs(sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
			want: 2,
		},
		{
			name:    "Erro do Postgres expõe o código",
			permits: []string{"MB1"},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO establishment_summaries")).
					WillReturnError(&pq.Error{Code: "23502", Message: "null value in column"})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConnection(t)
			repo := NewEstablishmentSummaryRepository(conn)
			tt.setup(mock)

			got, err := repo.RecomputeForPermits(context.Background(), tt.permits)
			if tt.wantErr {
				require.Error(t, err)
				var pqErr *pq.Error
				assert.True(t, errors.As(err, &pqErr))
				assert.Contains(t, err.Error(), "23502")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// O INSERT ... SELECT é posicional: cada coluna agregada precisa cair na coluna de resumo de mesmo nome
func TestEstablishmentSummaryRepository_AggregateColumnsMatchSummaryColumns(t *testing.T) {
	require.Len(t, aggregateColumns, len(summaryColumns))

	for i, column := range aggregateColumns {
		alias := strings.TrimPrefix(column, "msr.")
		if idx := strings.LastIndex(column, " AS "); idx >= 0 {
			alias = column[idx+len(" AS "):]
		}
		assert.Equal(t, summaryColumns[i], alias, column)
	}

	for _, category := range []string{"liquor", "wine", "beer"} {
		assert.Contains(t, aggregateColumns, "SUM(msr."+category+"_receipts) AS total_"+category)
	}
	assert.Contains(t, aggregateColumns, "SUM(msr.cover_charge_receipts) AS total_cover_charge")
	assert.Contains(t, aggregateColumns, "SUM(msr.total_receipts) AS total_sales")
	assert.Contains(t, aggregateColumns, "COUNT(*) AS record_count")
}

func TestEstablishmentSummaryRepository_RecomputeForPermits_UpdatesEveryColumn(t *testing.T) {
	var executed string
	matcher := sqlmock.QueryMatcherFunc(func(_, actual string) error {
		executed = actual
		return nil
	})

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewEstablishmentSummaryRepository(postgres.NewConnectionFromDB(db))

	mock.ExpectExec("INSERT INTO establishment_summaries").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = repo.RecomputeForPermits(context.Background(), []string{"MB1"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Contains(t, executed, "INSERT INTO establishment_summaries ("+strings.Join(summaryColumns, ",")+",updated_at)")
	assert.Contains(t, executed, "SELECT "+strings.Join(aggregateColumns, ", ")+", NOW()")
	for _, column := range summaryColumns[1:] {
		assert.Contains(t, executed, column+" = EXCLUDED."+column, column)
	}
}

func TestEstablishmentSummaryRepository_SearchByName(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantArg string
	}{
		{name: "Substring simples", query: "Rustic", wantArg: "%Rustic%"},
		{name: "Curingas do usuário são escapados", query: "100%_off", wantArg: `%100\%\_off%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConnection(t)
			repo := NewEstablishmentSummaryRepository(conn)

			mock.ExpectQuery(regexp.QuoteMeta("FROM establishment_summaries es WHERE es.location_name ILIKE $1 ORDER BY es.total_sales DESC, es.permit_number ASC LIMIT 50")).
				WithArgs(tt.wantArg).
				WillReturnRows(sqlmock.NewRows(aggregateRowColumns).
					AddRow("MB1", "THE RUSTIC", "", "HOUSTON", "", "", "", 29.76, -95.37, "0", "0", "0", "0", "9000", 3, date(2024, 2, 29)).
					AddRow("MB2", "RUSTIC BAR", "", "AUSTIN", "", "", "", 30.26, -97.74, "0", "0", "0", "0", "100", 1, date(2024, 1, 31)))

			got, err := repo.SearchByName(context.Background(), tt.query, 50)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.True(t, decimal.NewFromInt(9000).Equal(got[0].TotalSales))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEstablishmentSummaryRepository_GetByPermit(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewEstablishmentSummaryRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("FROM establishment_summaries es WHERE es.permit_number = $1")).
		WithArgs("MB1").
		WillReturnRows(sqlmock.NewRows(aggregateRowColumns).
			AddRow("MB1", "THE RUSTIC", "", "HOUSTON", "", "", "", 29.76, -95.37, "0", "0", "0", "0", "2500", 2, date(2024, 2, 29)))

	got, err := repo.GetByPermit(context.Background(), "MB1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "THE RUSTIC", got.LocationName)
	assert.Equal(t, 2, got.RecordCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\\b\%c\_d`, escapeLike(`a\b%c_d`))
}
