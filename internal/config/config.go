package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	OpenData   OpenData   `mapstructure:",squash"`
	ImportSync ImportSync `mapstructure:",squash"`
	Cache      Cache      `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// OpenData configura o acesso à API de dados abertos do Texas (Mixed Beverage Gross Receipts)
type OpenData struct {
	URL        string        `mapstructure:"opendata_url"`
	AppToken   string        `mapstructure:"opendata_app_token"`
	BatchSize  int           `mapstructure:"opendata_batch_size"`
	MaxRecords int           `mapstructure:"opendata_max_records"`
	Timeout    time.Duration `mapstructure:"opendata_timeout"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type ImportSync struct {
	CronSchedule string `mapstructure:"import_sync_cron"`
	Timezone     string `mapstructure:"import_sync_timezone"`
	BatchSize    int    `mapstructure:"import_batch_size"`
	RunOnStartup bool   `mapstructure:"import_sync_run_on_startup"`
	Enabled      bool   `mapstructure:"import_sync_enabled"`
}

type Cache struct {
	TTL        time.Duration `mapstructure:"cache_ttl"`
	MaxEntries int           `mapstructure:"cache_max_entries"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/tabc?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("OPENDATA_URL", "https://data.texas.gov/resource/naix-2893.json")
	viper.SetDefault("OPENDATA_APP_TOKEN", "")
	viper.SetDefault("OPENDATA_BATCH_SIZE", 10000) // Linhas por página
	viper.SetDefault("OPENDATA_MAX_RECORDS", 0)    // 0 = sem limite
	viper.SetDefault("OPENDATA_TIMEOUT", "60s")

	viper.SetDefault("IMPORT_SYNC_CRON", "0 * * * *") // A cada hora cheia
	viper.SetDefault("IMPORT_SYNC_TIMEZONE", "America/Chicago")
	viper.SetDefault("IMPORT_BATCH_SIZE", 1000)
	viper.SetDefault("IMPORT_SYNC_RUN_ON_STARTUP", true)
	viper.SetDefault("IMPORT_SYNC_ENABLED", true)

	viper.SetDefault("CACHE_TTL", "1h")
	viper.SetDefault("CACHE_MAX_ENTRIES", 256)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate corrige valores inválidos com os padrões e falha apenas no que não tem correção
func (c *Config) Validate() error {
	if c.OpenData.URL == "" {
		return fmt.Errorf("config: OPENDATA_URL é obrigatório")
	}

	if c.OpenData.BatchSize <= 0 {
		c.OpenData.BatchSize = 10000
	}

	if c.OpenData.Timeout <= 0 {
		c.OpenData.Timeout = 60 * time.Second
	}

	if c.ImportSync.BatchSize <= 0 {
		c.ImportSync.BatchSize = 1000
	}

	if c.Cache.TTL <= 0 {
		c.Cache.TTL = time.Hour
	}

	if c.ImportSync.Timezone != "" {
		if _, err := time.LoadLocation(c.ImportSync.Timezone); err != nil {
			return fmt.Errorf("config: IMPORT_SYNC_TIMEZONE inválido %q: %w", c.ImportSync.Timezone, err)
		}
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
