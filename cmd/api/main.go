package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tabc-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/tabc-sales-api/infrastructure/integrator/opendata"
	"github.com/vfg2006/tabc-sales-api/infrastructure/integrator/opendata/opendataclient"
	"github.com/vfg2006/tabc-sales-api/infrastructure/repository"
	"github.com/vfg2006/tabc-sales-api/internal/api"
	"github.com/vfg2006/tabc-sales-api/internal/cache"
	"github.com/vfg2006/tabc-sales-api/internal/config"
	"github.com/vfg2006/tabc-sales-api/internal/geocoding"
	"github.com/vfg2006/tabc-sales-api/internal/scheduler"
	"github.com/vfg2006/tabc-sales-api/internal/usecases/authenticating"
	"github.com/vfg2006/tabc-sales-api/internal/usecases/importing"
	"github.com/vfg2006/tabc-sales-api/internal/usecases/locating"
	"github.com/vfg2006/tabc-sales-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if err := postgres.EnsureSchema(ctx, pgConn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar o schema do banco")
	}

	salesRepo := repository.NewSalesRecordRepository(pgConn)
	summaryRepo := repository.NewEstablishmentSummaryRepository(pgConn)

	queryCache, err := cache.NewQueryCache(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar o cache de consultas")
	}

	openDataClient := opendataclient.NewClient(cfg)
	openDataIntegrator := opendata.New(cfg, openDataClient, geocoding.NewResolver())

	importer := importing.NewImportService(cfg, salesRepo, summaryRepo, openDataIntegrator, queryCache)
	locator := locating.NewLocationService(salesRepo, summaryRepo, queryCache)
	authenticator := authenticating.NewService(cfg)

	importSyncService, err := scheduler.NewSalesImportSyncService(importer, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar o agendador de importação de vendas")
	}

	if err := importSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de importação de vendas")
	} else {
		logrus.Info("Agendador de importação de vendas iniciado com sucesso")
	}

	server, err := api.New(cfg, locator, importSyncService, authenticator)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
