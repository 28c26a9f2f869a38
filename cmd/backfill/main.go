package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tabc-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/tabc-sales-api/infrastructure/integrator/opendata"
	"github.com/vfg2006/tabc-sales-api/infrastructure/integrator/opendata/opendataclient"
	"github.com/vfg2006/tabc-sales-api/infrastructure/repository"
	"github.com/vfg2006/tabc-sales-api/internal/cache"
	"github.com/vfg2006/tabc-sales-api/internal/config"
	"github.com/vfg2006/tabc-sales-api/internal/geocoding"
	"github.com/vfg2006/tabc-sales-api/internal/usecases/importing"
	"github.com/vfg2006/tabc-sales-api/pkg/log"
)

// backfill carrega o histórico completo da API de dados abertos. Deve rodar uma vez antes do
// agendador, que só importa a partir da data mais recente já gravada.
func main() {
	maxRecords := flag.Int("max-records", -1, "limite de linhas buscadas na API (0 = sem limite, -1 = OPENDATA_MAX_RECORDS)")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)

	if *maxRecords >= 0 {
		cfg.OpenData.MaxRecords = *maxRecords
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := postgres.EnsureSchema(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar o schema do banco")
	}

	// O cache do processo de backfill é descartável; a API limpa o próprio cache via /v1/locations/refresh
	queryCache, err := cache.NewQueryCache(cfg.Cache.TTL, 1)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar o cache de consultas")
	}

	integrator := opendata.New(cfg, opendataclient.NewClient(cfg), geocoding.NewResolver())
	importer := importing.NewImportService(
		cfg,
		repository.NewSalesRecordRepository(conn),
		repository.NewEstablishmentSummaryRepository(conn),
		integrator,
		queryCache,
	)

	logrus.WithField("max_records", cfg.OpenData.MaxRecords).Info("Iniciando backfill de vendas")
	startTime := time.Now()

	result, err := importer.RunFullImport(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Backfill falhou")
	}

	logrus.WithFields(logrus.Fields{
		"run_id":   result.RunID,
		"imported": result.Imported,
		"message":  result.Message,
		"duration": time.Since(startTime).String(),
	}).Info("Backfill concluído")
}
