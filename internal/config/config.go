package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thesrcielos/exambuddy/internal/llm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
)

type Config struct {
	Port      string
	JWTSecret string

	Database DatabaseConfig
	Redis    RedisConfig

	// PreferenceDriver selects where user preferences live: "redis" or "memory".
	PreferenceDriver string

	LLM llm.Config
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	SQLitePath string
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	TLS      bool
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// Enabled reports whether a redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// Load reads the configuration from the environment. Callers are expected to
// have loaded any .env file beforehand.
func Load() (Config, error) {
	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
			Host:       os.Getenv("DB_HOST"),
			User:       os.Getenv("DB_USER"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       os.Getenv("DB_NAME"),
			Port:       getEnv("DB_PORT", "5432"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "data/exambuddy.db"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Username: os.Getenv("REDIS_USERNAME"),
			Password: os.Getenv("REDIS_PASSWORD"),
			TLS:      os.Getenv("REDIS_TLS") == "true",
		},
		LLM: llm.ConfigFromEnv(),
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		dbNum, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.Redis.DB = dbNum
	}

	defaultPrefs := DriverMemory
	if cfg.Redis.Enabled() {
		defaultPrefs = DriverRedis
	}
	cfg.PreferenceDriver = strings.ToLower(getEnv("PREFERENCE_DRIVER", defaultPrefs))

	var err error
	if cfg.LLM.Timeout, err = getDuration("LLM_TIMEOUT", cfg.LLM.Timeout); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("LLM_MAX_ATTEMPTS"); v != "" {
		attempts, err := strconv.Atoi(v)
		if err != nil || attempts < 1 {
			return Config{}, fmt.Errorf("invalid LLM_MAX_ATTEMPTS %q", v)
		}
		cfg.LLM.Retry.MaxAttempts = attempts
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Database.Driver)
	}

	switch c.PreferenceDriver {
	case DriverMemory:
	case DriverRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("PREFERENCE_DRIVER=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown PREFERENCE_DRIVER %q", c.PreferenceDriver)
	}

	if c.JWTSecret == "" && c.Database.Driver != DriverMemory {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return d, nil
}
