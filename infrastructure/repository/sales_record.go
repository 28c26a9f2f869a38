package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/tabc-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
)

const (
	salesRecordsTable = "monthly_sales_records msr"

	// Limite de parâmetros do Postgres é 65535; 15 colunas por linha
	maxRowsPerInsert = 4000
)

var salesRecordColumns = []string{
	"permit_number",
	"location_name",
	"location_address",
	"location_city",
	"location_county",
	"location_zip",
	"taxpayer_name",
	"obligation_end_date",
	"liquor_receipts",
	"wine_receipts",
	"beer_receipts",
	"cover_charge_receipts",
	"total_receipts",
	"latitude",
	"longitude",
}

// Campos descritivos via MAX(): vence o maior valor lexicográfico, não o registro mais recente

var aggregateColumns = []string{
	"msr.permit_number",
	"MAX(msr.location_name) AS location_name",
	"MAX(msr.location_address) AS location_address",
	"MAX(msr.location_city) AS location_city",
	"MAX(msr.location_county) AS location_county",
	"MAX(msr.location_zip) AS location_zip",
	"MAX(msr.taxpayer_name) AS taxpayer_name",
	"MAX(msr.latitude) AS latitude",
	"MAX(msr.longitude) AS longitude",
	"SUM(msr.liquor_receipts) AS total_liquor",
	"SUM(msr.wine_receipts) AS total_wine",
	"SUM(msr.beer_receipts) AS total_beer",
	"SUM(msr.cover_charge_receipts) AS total_cover_charge",
	"SUM(msr.total_receipts) AS total_sales",
	"COUNT(*) AS record_count",
	"MAX(msr.obligation_end_date) AS latest_month",
}

type SalesRecordRepository interface {
	LatestObligationDate(ctx context.Context) (*time.Time, error)
	ExistingKeys(ctx context.Context, filter *domain.DateFilter) (map[string]struct{}, error)
	InsertBatch(ctx context.Context, records []domain.MonthlySalesRecord) (int64, error)
	AggregateLocations(ctx context.Context, filter *domain.DateFilter) ([]domain.LocationAggregate, error)
	AggregateByPermit(ctx context.Context, permitNumber string) (*domain.LocationAggregate, error)
	ListByPermits(ctx context.Context, permitNumbers []string, filter *domain.DateFilter) ([]domain.MonthlySalesRecord, error)
	ListInRange(ctx context.Context, filter *domain.DateFilter) ([]domain.MonthlySalesRecord, error)
}

type salesRecordRepository struct {
	conn *postgres.Connection
}

func NewSalesRecordRepository(conn *postgres.Connection) SalesRecordRepository {
	return &salesRecordRepository{
		conn: conn,
	}
}

// LatestObligationDate retorna a data do período mais recente armazenado, ou nil se a tabela estiver vazia
func (r *salesRecordRepository) LatestObligationDate(ctx context.Context) (*time.Time, error) {
	query, args, err := squirrel.
		Select("MAX(msr.obligation_end_date)").
		From(salesRecordsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var latest sql.NullTime
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&latest); err != nil {
		return nil, fmt.Errorf("erro ao buscar a data mais recente: %w", err)
	}

	if !latest.Valid {
		return nil, nil
	}

	date := latest.Time.UTC()
	return &date, nil
}

// ExistingKeys carrega as chaves permit|data já persistidas dentro do período
func (r *salesRecordRepository) ExistingKeys(ctx context.Context, filter *domain.DateFilter) (map[string]struct{}, error) {
	builder := squirrel.
		Select("msr.permit_number", "msr.obligation_end_date").
		From(salesRecordsTable).
		PlaceholderFormat(squirrel.Dollar)
	builder = applyDateFilter(builder, "msr.obligation_end_date", filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var permitNumber string
		var obligationEndDate time.Time
		if err := rows.Scan(&permitNumber, &obligationEndDate); err != nil {
			return nil, fmt.Errorf("erro ao escanear chave existente: %w", err)
		}
		keys[domain.RecordKey(permitNumber, obligationEndDate)] = struct{}{}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return keys, nil
}

// InsertBatch insere os registros em uma única transação. Cada chamada é commitada de forma
// independente; o chamador é responsável por dividir o lote.
func (r *salesRecordRepository) InsertBatch(ctx context.Context, records []domain.MonthlySalesRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var inserted int64
	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(records); start += maxRowsPerInsert {
			end := min(start+maxRowsPerInsert, len(records))

			query := squirrel.StatementBuilder.
				Insert("monthly_sales_records").
				Columns(salesRecordColumns...).
				PlaceholderFormat(squirrel.Dollar)

			for _, record := range records[start:end] {
				query = query.Values(
					record.PermitNumber,
					record.LocationName,
					record.LocationAddress,
					record.LocationCity,
					record.LocationCounty,
					record.LocationZip,
					record.TaxpayerName,
					record.ObligationEndDate.Format(time.DateOnly),
					record.LiquorReceipts,
					record.WineReceipts,
					record.BeerReceipts,
					record.CoverChargeReceipts,
					record.TotalReceipts,
					record.Latitude,
					record.Longitude,
				)
			}

			sqlQuery, args, err := query.ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir query de inserção: %w", err)
			}

			result, err := tx.ExecContext(ctx, sqlQuery, args...)
			if err != nil {
				var pqErr *pq.Error
				if errors.As(err, &pqErr) {
					return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
				}
				return fmt.Errorf("erro ao executar query de inserção: %w", err)
			}

			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
			}
			inserted += affected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// AggregateLocations agrega a tabela fato por permit no banco, opcionalmente limitada por data
func (r *salesRecordRepository) AggregateLocations(ctx context.Context, filter *domain.DateFilter) ([]domain.LocationAggregate, error) {
	builder := squirrel.
		Select(aggregateColumns...).
		From(salesRecordsTable).
		GroupBy("msr.permit_number").
		OrderBy("total_sales DESC", "msr.permit_number ASC").
		PlaceholderFormat(squirrel.Dollar)
	builder = applyDateFilter(builder, "msr.obligation_end_date", filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	aggregates := make([]domain.LocationAggregate, 0)
	if err := r.conn.SelectContext(ctx, &aggregates, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao agregar locais: %w", err)
	}

	return aggregates, nil
}

// AggregateByPermit agrega todo o histórico de um permit. Retorna nil se não houver registros.
func (r *salesRecordRepository) AggregateByPermit(ctx context.Context, permitNumber string) (*domain.LocationAggregate, error) {
	query, args, err := squirrel.
		Select(aggregateColumns...).
		From(salesRecordsTable).
		Where(squirrel.Eq{"msr.permit_number": permitNumber}).
		GroupBy("msr.permit_number").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	aggregate := &domain.LocationAggregate{}
	if err := r.conn.GetContext(ctx, aggregate, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao agregar permit %s: %w", permitNumber, err)
	}

	return aggregate, nil
}

// ListByPermits retorna os registros mensais dos permits informados, do mais recente para o mais antigo
func (r *salesRecordRepository) ListByPermits(ctx context.Context, permitNumbers []string, filter *domain.DateFilter) ([]domain.MonthlySalesRecord, error) {
	if len(permitNumbers) == 0 {
		return []domain.MonthlySalesRecord{}, nil
	}

	builder := r.selectRecords().
		Where(squirrel.Expr("msr.permit_number = ANY(?)", pq.Array(permitNumbers)))
	builder = applyDateFilter(builder, "msr.obligation_end_date", filter)

	return r.listRecords(ctx, builder)
}

// ListInRange retorna todos os registros mensais do período
func (r *salesRecordRepository) ListInRange(ctx context.Context, filter *domain.DateFilter) ([]domain.MonthlySalesRecord, error) {
	builder := applyDateFilter(r.selectRecords(), "msr.obligation_end_date", filter)
	return r.listRecords(ctx, builder)
}

func (r *salesRecordRepository) selectRecords() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"msr.id",
			"msr.permit_number",
			"msr.location_name",
			"msr.location_address",
			"msr.location_city",
			"msr.location_county",
			"msr.location_zip",
			"msr.taxpayer_name",
			"msr.obligation_end_date",
			"msr.liquor_receipts",
			"msr.wine_receipts",
			"msr.beer_receipts",
			"msr.cover_charge_receipts",
			"msr.total_receipts",
			"msr.latitude",
			"msr.longitude",
		).
		From(salesRecordsTable).
		OrderBy("msr.permit_number ASC", "msr.obligation_end_date DESC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *salesRecordRepository) listRecords(ctx context.Context, builder squirrel.SelectBuilder) ([]domain.MonthlySalesRecord, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	records := make([]domain.MonthlySalesRecord, 0)
	if err := r.conn.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao buscar registros mensais: %w", err)
	}

	return records, nil
}

// applyDateFilter aplica os limites inclusivos do filtro à coluna de data
func applyDateFilter(builder squirrel.SelectBuilder, column string, filter *domain.DateFilter) squirrel.SelectBuilder {
	if filter == nil {
		return builder
	}
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{column: filter.StartDate.Format(time.DateOnly)})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{column: filter.EndDate.Format(time.DateOnly)})
	}
	return builder
}
