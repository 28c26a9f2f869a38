package postgres

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// schemaStatements cria as duas tabelas do pipeline. A unicidade de (permit_number,
// obligation_end_date) é responsabilidade do importador; o índice não é UNIQUE.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS monthly_sales_records (
		id BIGSERIAL PRIMARY KEY,
		permit_number TEXT NOT NULL,
		location_name TEXT NOT NULL DEFAULT '',
		location_address TEXT NOT NULL DEFAULT '',
		location_city TEXT NOT NULL DEFAULT '',
		location_county TEXT NOT NULL DEFAULT '',
		location_zip TEXT NOT NULL DEFAULT '',
		taxpayer_name TEXT NOT NULL DEFAULT '',
		obligation_end_date DATE NOT NULL,
		liquor_receipts NUMERIC NOT NULL DEFAULT 0,
		wine_receipts NUMERIC NOT NULL DEFAULT 0,
		beer_receipts NUMERIC NOT NULL DEFAULT 0,
		cover_charge_receipts NUMERIC NOT NULL DEFAULT 0,
		total_receipts NUMERIC NOT NULL DEFAULT 0,
		latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
		longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_monthly_sales_records_permit_date
		ON monthly_sales_records (permit_number, obligation_end_date)`,
	`CREATE INDEX IF NOT EXISTS idx_monthly_sales_records_date
		ON monthly_sales_records (obligation_end_date)`,
	`CREATE TABLE IF NOT EXISTS establishment_summaries (
		permit_number TEXT PRIMARY KEY,
		location_name TEXT NOT NULL DEFAULT '',
		location_address TEXT NOT NULL DEFAULT '',
		location_city TEXT NOT NULL DEFAULT '',
		location_county TEXT NOT NULL DEFAULT '',
		location_zip TEXT NOT NULL DEFAULT '',
		taxpayer_name TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
		longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_liquor NUMERIC NOT NULL DEFAULT 0,
		total_wine NUMERIC NOT NULL DEFAULT 0,
		total_beer NUMERIC NOT NULL DEFAULT 0,
		total_cover_charge NUMERIC NOT NULL DEFAULT 0,
		total_sales NUMERIC NOT NULL DEFAULT 0,
		record_count INTEGER NOT NULL DEFAULT 0,
		latest_month DATE NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_establishment_summaries_total_sales
		ON establishment_summaries (total_sales DESC)`,
}

// EnsureSchema aplica o DDL de forma idempotente
func EnsureSchema(ctx context.Context, conn *Connection) error {
	for i, stmt := range schemaStatements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao aplicar schema (statement %d): %w", i+1, err)
		}
	}

	logrus.WithField("statements", len(schemaStatements)).Debug("Schema do banco verificado")
	return nil
}
