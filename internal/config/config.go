package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	EnvDev  = "dev"
	EnvTest = "test"
	EnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string `validate:"required,numeric"`
	GoEnv string `validate:"required,oneof=dev test prod"`

	DB DBSettings

	JWTSecret       string        `validate:"required"`
	AccessTokenTTL  time.Duration `validate:"gt=0"`
	RefreshTokenTTL time.Duration `validate:"gtfield=AccessTokenTTL"`

	// CORSの許可オリジン。空なら全許可。
	FEURL string `validate:"omitempty,url"`

	// 空ならorder_createdはログ出力だけ
	RabbitMQURI string `validate:"omitempty,url"`
	OrderQueue  string `validate:"required"`

	PageSize int `validate:"min=1,max=100"`

	Logger LoggerSettings
}

// DBSettings selects the database driver and how to reach it.
type DBSettings struct {
	Driver      string `validate:"required,oneof=postgres sqlite"`
	DatabaseURL string
	Host        string
	Port        int `validate:"min=0,max=65535"`
	User        string
	Password    string
	Name        string
	SSLMode     string
	SQLitePath  string
}

// DSN returns the connection string for the configured driver.
func (s DBSettings) DSN() string {
	if s.Driver == DriverSQLite {
		return s.SQLitePath
	}
	if s.DatabaseURL != "" {
		return s.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Name, s.SSLMode,
	)
}

// Loadは.env（あれば）と環境変数から設定を読む。
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (Config, error) {
	var errs []error

	pgPort, err := intEnv("POSTGRES_PORT", 5432)
	errs = append(errs, err)
	accessTTL, err := durationEnv("ACCESS_TOKEN_TTL", 15*time.Minute)
	errs = append(errs, err)
	refreshTTL, err := durationEnv("REFRESH_TOKEN_TTL", 14*24*time.Hour)
	errs = append(errs, err)
	pageSize, err := intEnv("PAGE_SIZE", 10)
	errs = append(errs, err)
	maxSize, err := intEnv("LOG_MAX_SIZE", 10)
	errs = append(errs, err)
	maxBackups, err := intEnv("LOG_MAX_BACKUPS", 3)
	errs = append(errs, err)
	maxAge, err := intEnv("LOG_MAX_AGE", 28)
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:  getenv("PORT", "8080"),
		GoEnv: getenv("GO_ENV", EnvDev),
		DB: DBSettings{
			Driver:      getenv("DB_DRIVER", DriverPostgres),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("POSTGRES_HOST", "localhost"),
			Port:        pgPort,
			User:        getenv("POSTGRES_USER", "postgres"),
			Password:    getenv("POSTGRES_PASSWORD", "postgres"),
			Name:        getenv("POSTGRES_DB", "snippets"),
			SSLMode:     getenv("POSTGRES_SSLMODE", "disable"),
			SQLitePath:  getenv("SQLITE_PATH", "snippets.db"),
		},
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
		FEURL:           os.Getenv("FE_URL"),
		RabbitMQURI:     os.Getenv("RABBITMQ_URI"),
		OrderQueue:      getenv("ORDER_QUEUE", "orders"),
		PageSize:        pageSize,
		Logger: LoggerSettings{
			LogLevel:   getenv("LOG_LEVEL", LogLevelInfo),
			LogType:    getenv("LOG_TYPE", LogTypeConsole),
			FilePath:   os.Getenv("LOG_FILE_PATH"),
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     maxAge,
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks struct tags and the rules that span fields.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed for Config: %w", err)
	}
	// 本番では短いシークレットを許さない
	if c.IsProd() && len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters in prod")
	}
	return c.Logger.Validate()
}

func (c *Config) IsProd() bool {
	return c.GoEnv == EnvProd
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 15m: %w", key, err)
	}
	return d, nil
}
