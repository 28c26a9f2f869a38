package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/tabc-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
)

const (
	establishmentSummariesTable = "establishment_summaries es"

	maxPermitsPerRecompute = 5000
)

var summaryColumns = []string{
	"permit_number",
	"location_name",
	"location_address",
	"location_city",
	"location_county",
	"location_zip",
	"taxpayer_name",
	"latitude",
	"longitude",
	"total_liquor",
	"total_wine",
	"total_beer",
	"total_cover_charge",
	"total_sales",
	"record_count",
	"latest_month",
}

type EstablishmentSummaryRepository interface {
	RecomputeForPermits(ctx context.Context, permitNumbers []string) (int64, error)
	SearchByName(ctx context.Context, name string, limit int) ([]domain.EstablishmentSummary, error)
	GetByPermit(ctx context.Context, permitNumber string) (*domain.EstablishmentSummary, error)
}

type establishmentSummaryRepository struct {
	conn *postgres.Connection
}

func NewEstablishmentSummaryRepository(conn *postgres.Connection) EstablishmentSummaryRepository {
	return &establishmentSummaryRepository{
		conn: conn,
	}
}

// RecomputeForPermits reagrega a tabela fato dos permits informados e faz upsert na tabela de resumo
func (r *establishmentSummaryRepository) RecomputeForPermits(ctx context.Context, permitNumbers []string) (int64, error) {
	if len(permitNumbers) == 0 {
		return 0, nil
	}

	var upserted int64
	for start := 0; start < len(permitNumbers); start += maxPermitsPerRecompute {
		end := min(start+maxPermitsPerRecompute, len(permitNumbers))

		aggregate := squirrel.
			Select(append(aggregateColumns, "NOW()")...).
			From(salesRecordsTable).
			Where(squirrel.Expr("msr.permit_number = ANY(?)", pq.Array(permitNumbers[start:end]))).
			GroupBy("msr.permit_number")

		query := squirrel.StatementBuilder.
			Insert("establishment_summaries").
			Columns(append(summaryColumns, "updated_at")...).
			Select(aggregate).
			Suffix(`
				ON CONFLICT (permit_number) DO UPDATE SET
					location_name = EXCLUDED.location_name,
					location_address = EXCLUDED.location_address,
					location_city = EXCLUDED.location_city,
					location_county = EXCLUDED.location_county,
					location_zip = EXCLUDED.location_zip,
					taxpayer_name = EXCLUDED.taxpayer_name,
					latitude = EXCLUDED.latitude,
					longitude = EXCLUDED.longitude,
					total_liquor = EXCLUDED.total_liquor,
					total_wine = EXCLUDED.total_wine,
					total_beer = EXCLUDED.total_beer,
					total_cover_charge = EXCLUDED.total_cover_charge,
					total_sales = EXCLUDED.total_sales,
					record_count = EXCLUDED.record_count,
					latest_month = EXCLUDED.latest_month,
					updated_at = NOW()
			`).
			PlaceholderFormat(squirrel.Dollar)

		sqlQuery, args, err := query.ToSql()
		if err != nil {
			return upserted, fmt.Errorf("erro ao construir a query: %w", err)
		}

		result, err := r.conn.Exec(ctx, sqlQuery, args...)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) {
				return upserted, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
			}
			return upserted, fmt.Errorf("erro ao recalcular resumos: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return upserted, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
		}
		upserted += affected
	}

	return upserted, nil
}

// SearchByName busca por substring do nome do local, sem diferenciar maiúsculas
func (r *establishmentSummaryRepository) SearchByName(ctx context.Context, name string, limit int) ([]domain.EstablishmentSummary, error) {
	builder := r.selectSummaries().
		Where(squirrel.ILike{"es.location_name": "%" + escapeLike(name) + "%"}).
		OrderBy("es.total_sales DESC", "es.permit_number ASC")

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	summaries := make([]domain.EstablishmentSummary, 0)
	if err := r.conn.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao buscar resumos por nome: %w", err)
	}

	return summaries, nil
}

func (r *establishmentSummaryRepository) GetByPermit(ctx context.Context, permitNumber string) (*domain.EstablishmentSummary, error) {
	query, args, err := r.selectSummaries().
		Where(squirrel.Eq{"es.permit_number": permitNumber}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	summary := &domain.EstablishmentSummary{}
	if err := r.conn.GetContext(ctx, summary, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar resumo do permit %s: %w", permitNumber, err)
	}

	return summary, nil
}

func (r *establishmentSummaryRepository) selectSummaries() squirrel.SelectBuilder {
	columns := make([]string, 0, len(summaryColumns))
	for _, column := range summaryColumns {
		columns = append(columns, "es."+column)
	}

	return squirrel.
		Select(columns...).
		From(establishmentSummariesTable).
		PlaceholderFormat(squirrel.Dollar)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutraliza os curingas do LIKE digitados pelo usuário
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
