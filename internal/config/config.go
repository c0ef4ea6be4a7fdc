package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Mongo         Mongo         `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	Synthesis     Synthesis     `mapstructure:",squash"`
	LedgerRefresh LedgerRefresh `mapstructure:",squash"`
}

type App struct {
	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb" validate:"gte=0"`
	LogMaxBackups int    `mapstructure:"log_max_backups" validate:"gte=0"`
	LogMaxAgeDays int    `mapstructure:"log_max_age_days" validate:"gte=0"`
}

type Server struct {
	Host        string   `mapstructure:"host"`
	Port        string   `mapstructure:"port" validate:"required"`
	CORSOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver" validate:"oneof=postgres mongo memory"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Mongo struct {
	URI      string `mapstructure:"mongo_uri"`
	Database string `mapstructure:"mongo_database"`
}

type Auth struct {
	Enabled           bool          `mapstructure:"auth_enabled"`
	Secret            string        `mapstructure:"auth_secret" validate:"required_if=Enabled true"`
	AdminUser         string        `mapstructure:"auth_admin_user"`
	AdminPasswordHash string        `mapstructure:"auth_admin_password_hash" validate:"required_if=Enabled true"`
	TokenTTL          time.Duration `mapstructure:"auth_token_ttl"`
}

type Synthesis struct {
	RecordCount     int     `mapstructure:"synthesis_record_count" validate:"gte=0"`
	HistoryDays     int     `mapstructure:"synthesis_history_days" validate:"gt=0"`
	MeanRecencyDays float64 `mapstructure:"synthesis_mean_recency_days" validate:"gt=0"`
	Seed            int64   `mapstructure:"synthesis_seed"`
	SeedOnStartup   bool    `mapstructure:"synthesis_seed_on_startup"`
}

type LedgerRefresh struct {
	CronSchedule string `mapstructure:"ledger_refresh_cron"`
	Enabled      bool   `mapstructure:"ledger_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8001)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("DATABASE_DRIVER", DriverPostgres)
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales_analytics?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "sales_analytics")

	viper.SetDefault("AUTH_ENABLED", false)
	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("AUTH_ADMIN_USER", "admin")
	viper.SetDefault("AUTH_ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("SYNTHESIS_RECORD_COUNT", 5000)
	viper.SetDefault("SYNTHESIS_HISTORY_DAYS", 730)
	viper.SetDefault("SYNTHESIS_MEAN_RECENCY_DAYS", 180)
	viper.SetDefault("SYNTHESIS_SEED", 0)               // 0 usa o relógio como semente
	viper.SetDefault("SYNTHESIS_SEED_ON_STARTUP", true) // Gera o ledger na subida quando estiver vazio

	viper.SetDefault("LEDGER_REFRESH_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("LEDGER_REFRESH_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("LOG_MAX_SIZE_MB", 100)
	viper.SetDefault("LOG_MAX_BACKUPS", 5)
	viper.SetDefault("LOG_MAX_AGE_DAYS", 30)
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		DriverPostgres,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate confere as combinações de configuração que impedem a API de subir
func (c *Config) Validate() error {
	validate := validator.New()
	for _, section := range []any{c.App, c.Server, c.Database, c.Auth, c.Synthesis} {
		if err := validate.Struct(section); err != nil {
			return fmt.Errorf("configuração inválida: %w", err)
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
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
