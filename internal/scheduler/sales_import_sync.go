package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tabc-sales-api/internal/config"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
	"github.com/vfg2006/tabc-sales-api/internal/usecases/importing"
)

// ImportSyncer é a parte do agendador exposta aos handlers administrativos
type ImportSyncer interface {
	RunNow(ctx context.Context) (*domain.ImportResult, error)
	TriggerManualSync()
	GetStatus() map[string]any
}

// SalesImportSyncConfig representa a configuração do agendador de importação de vendas
type SalesImportSyncConfig struct {
	CronSchedule string
	Timezone     string
	RunOnStartup bool
	SyncEnabled  bool
}

// SalesImportSyncService agenda a importação incremental da API de dados abertos
type SalesImportSyncService struct {
	scheduler   *gocron.Scheduler
	config      SalesImportSyncConfig
	importer    importing.Importer
	ctx         context.Context
	syncRunning bool
	syncMutex   sync.Mutex

	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          *domain.ImportResult
	lastError           string
}

func NewSalesImportSyncService(importer importing.Importer, appConfig *config.Config) (*SalesImportSyncService, error) {
	syncConfig := SalesImportSyncConfig{
		CronSchedule: appConfig.ImportSync.CronSchedule,
		Timezone:     appConfig.ImportSync.Timezone,
		RunOnStartup: appConfig.ImportSync.RunOnStartup,
		SyncEnabled:  appConfig.ImportSync.Enabled,
	}

	location := time.Local
	if syncConfig.Timezone != "" {
		loc, err := time.LoadLocation(syncConfig.Timezone)
		if err != nil {
			return nil, fmt.Errorf("fuso horário inválido %q: %w", syncConfig.Timezone, err)
		}
		location = loc
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  syncConfig.CronSchedule,
		"timezone":       location.String(),
		"run_on_startup": syncConfig.RunOnStartup,
		"sync_enabled":   syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de importação de vendas carregada")

	return &SalesImportSyncService{
		scheduler: gocron.NewScheduler(location),
		config:    syncConfig,
		importer:  importer,
		ctx:       context.Background(),
	}, nil
}

// Start agenda a importação e, se configurado, dispara uma execução imediata em background
func (s *SalesImportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Importação agendada de vendas desabilitada por configuração")
		return nil
	}

	s.ctx = ctx

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de importação de vendas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncSales(s.ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar importação de vendas: %w", err)
	}

	s.scheduler.StartAsync()

	if s.config.RunOnStartup {
		go s.syncSales(ctx)
	}

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de importação de vendas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncSales executa uma importação ignorando o disparo se outra já estiver em andamento.
// Falhas são registradas e nunca derrubam o processo.
func (s *SalesImportSyncService) syncSales(ctx context.Context) {
	if _, err := s.run(ctx); err != nil && !errors.Is(err, importing.ErrImportInProgress) {
		if errors.Is(err, importing.ErrNoBaseline) {
			logrus.WithError(err).Warn("Importação de vendas ignorada: tabela vazia, execute o backfill")
			return
		}
		logrus.WithError(err).Error("Erro na importação agendada de vendas")
	}
}

func (s *SalesImportSyncService) run(ctx context.Context) (*domain.ImportResult, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação de vendas já em andamento, ignorando")
		return nil, importing.ErrImportInProgress
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	startTime := time.Now()
	result, err := s.importer.RunIncrementalImport(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
		s.lastResult = result
	}
	s.syncMutex.Unlock()

	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"run_id":   result.RunID,
		"imported": result.Imported,
		"message":  result.Message,
		"duration": time.Since(startTime).String(),
	}).Info("Importação de vendas concluída")

	return result, nil
}

// RunNow executa a importação de forma síncrona
func (s *SalesImportSyncService) RunNow(ctx context.Context) (*domain.ImportResult, error) {
	logrus.Info("Iniciando importação manual de vendas")
	return s.run(ctx)
}

// TriggerManualSync inicia manualmente uma importação em background
func (s *SalesImportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação de vendas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	go s.syncSales(s.ctx)
}

// GetStatus retorna o status atual do agendador
func (s *SalesImportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_timezone":          s.config.Timezone,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_result":            s.lastResult,
		"last_error":             s.lastError,
	}
}
