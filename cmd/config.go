package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	NumberingRedis    = "redis"
	NumberingPostgres = "postgres"

	NotifyRedis = "redis"
	NotifyLog   = "log"

	FileStoreS3     = "s3"
	FileStoreMemory = "memory"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   string

	JWTSecret string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NumberingDriver string
	NotifyDriver    string
	NotifyChannel   string

	FileStoreDriver string
	FileBaseURL     string
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3PathStyle     bool
	S3AccessKeyID   string
	S3SecretKey     string

	OutboxSchedule  string
	OutboxBatchSize int

	QuoteValidity   time.Duration
	DefaultCurrency string
}

// LoadConfig reads the environment, after merging a .env file when one
// exists in the working directory.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var problems []error
	intVar := func(key string, def int) int {
		raw := os.Getenv(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", key, err))
		}
		return v
	}
	boolVar := func(key string) bool {
		raw := os.Getenv(key)
		if raw == "" {
			return false
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", key, err))
		}
		return v
	}

	cfg := Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),
		LogLevel:   envOr("LOG_LEVEL", "info"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		RedisAddr:     envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       intVar("REDIS_DB", 0),

		NumberingDriver: strings.ToLower(envOr("NUMBERING_DRIVER", NumberingPostgres)),
		NotifyDriver:    strings.ToLower(envOr("NOTIFY_DRIVER", NotifyLog)),
		NotifyChannel:   os.Getenv("NOTIFY_CHANNEL"),

		FileStoreDriver: strings.ToLower(envOr("FILESTORE_DRIVER", FileStoreMemory)),
		FileBaseURL:     os.Getenv("FILE_BASE_URL"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Region:        os.Getenv("S3_REGION"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3PathStyle:     boolVar("S3_PATH_STYLE"),
		S3AccessKeyID:   os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretKey:     os.Getenv("S3_SECRET_ACCESS_KEY"),

		OutboxSchedule:  os.Getenv("OUTBOX_SCHEDULE"),
		OutboxBatchSize: intVar("OUTBOX_BATCH_SIZE", 100),

		QuoteValidity:   time.Duration(intVar("QUOTE_VALIDITY_DAYS", 30)) * 24 * time.Hour,
		DefaultCurrency: strings.ToUpper(envOr("DEFAULT_CURRENCY", "EUR")),
	}
	if cfg.FileBaseURL == "" {
		cfg.FileBaseURL = "http://localhost:" + cfg.HTTPPort
	}

	problems = append(problems, cfg.validate())
	if err := errors.Join(problems...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []error
	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is required"))
	}
	if c.NumberingDriver != NumberingRedis && c.NumberingDriver != NumberingPostgres {
		problems = append(problems, fmt.Errorf("NUMBERING_DRIVER: unknown driver %q", c.NumberingDriver))
	}
	if c.NotifyDriver != NotifyRedis && c.NotifyDriver != NotifyLog {
		problems = append(problems, fmt.Errorf("NOTIFY_DRIVER: unknown driver %q", c.NotifyDriver))
	}
	switch c.FileStoreDriver {
	case FileStoreMemory:
	case FileStoreS3:
		if c.S3Bucket == "" {
			problems = append(problems, errors.New("S3_BUCKET is required for the s3 file store"))
		}
	default:
		problems = append(problems, fmt.Errorf("FILESTORE_DRIVER: unknown driver %q", c.FileStoreDriver))
	}
	if c.QuoteValidity <= 0 {
		problems = append(problems, errors.New("QUOTE_VALIDITY_DAYS must be positive"))
	}
	return errors.Join(problems...)
}

// DSN is the libpq style connection string for the gorm postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// UsesRedis reports whether any component needs a redis client.
func (c Config) UsesRedis() bool {
	return c.NumberingDriver == NumberingRedis || c.NotifyDriver == NotifyRedis
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
