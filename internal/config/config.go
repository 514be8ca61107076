package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/simaogato/wealthflow-datagen/internal/logging"
)

// Generation volumes. These are fixed per build and not read from the environment.
const (
	NumCustomers            = 100
	AccountsPerCustomerMin  = 1
	AccountsPerCustomerMax  = 4
	NumTransactions         = 200
	DefaultLoopInterval     = 2 * time.Second
	defaultMetricsNamespace = "datagen"
)

// Config is the full runtime configuration of the generator
type Config struct {
	Database    DatabaseConfig
	Generation  GenerationConfig
	Loop        LoopConfig
	Log         logging.Config
	MetricsAddr string
	// MetricsNamespace prefixes every exported Prometheus metric
	MetricsNamespace string
}

// DatabaseConfig holds PostgreSQL connection parameters
type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	// ConnStr, when set, overrides every other field
	ConnStr string
}

// GenerationConfig holds per-iteration volumes
type GenerationConfig struct {
	Customers              int
	AccountsPerCustomerMin int
	AccountsPerCustomerMax int
	Transactions           int
}

// LoopConfig controls repetition
type LoopConfig struct {
	Once     bool
	Interval time.Duration
}

// ConnString returns a lib/pq keyword/value connection string
func (d DatabaseConfig) ConnString() string {
	if d.ConnStr != "" {
		return d.ConnStr
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Load reads configuration from the environment.
// A .env file in the working directory is loaded first when present; variables
// already set in the process environment take precedence over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	port, err := intEnv("POSTGRES_PORT", 5432)
	if err != nil {
		return nil, err
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     stringEnv("POSTGRES_HOST", "localhost"),
			Port:     port,
			Name:     stringEnv("POSTGRES_DB", "banking"),
			User:     stringEnv("POSTGRES_USER", "postgres"),
			Password: stringEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:  stringEnv("POSTGRES_SSLMODE", "disable"),
			ConnStr:  os.Getenv("DB_CONN_STR"),
		},
		Generation: DefaultGeneration(),
		Loop: LoopConfig{
			Interval: DefaultLoopInterval,
		},
		Log:              logging.ConfigFromEnv(),
		MetricsAddr:      os.Getenv("METRICS_ADDR"),
		MetricsNamespace: defaultMetricsNamespace,
	}, nil
}

// DefaultGeneration returns the fixed per-iteration volumes
func DefaultGeneration() GenerationConfig {
	return GenerationConfig{
		Customers:              NumCustomers,
		AccountsPerCustomerMin: AccountsPerCustomerMin,
		AccountsPerCustomerMax: AccountsPerCustomerMax,
		Transactions:           NumTransactions,
	}
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
