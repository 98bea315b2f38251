package shared

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"hotel_catalog/internal/adapters/suppliers"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	AcmeURL       string
	PaperfliesURL string
	PatagoniaURL  string
	FetchTimeout  time.Duration
	FetchRPS      int
	FetchRetries  int
	FetchWorkers  int

	RedisAddr     string
	RedisPass     string
	RedisDB       int
	MemcachedAddr string
	CacheTTL      time.Duration

	MySQLDSN    string
	PostgresDSN string
}

// Endpoints returns the configured supplier source locations.
func (c Config) Endpoints() suppliers.Endpoints {
	return suppliers.Endpoints{Acme: c.AcmeURL, Paperflies: c.PaperfliesURL, Patagonia: c.PatagoniaURL}
}

var defaults = map[string]any{
	"app_env":           "prod",
	"log_level":         "info",
	"http_addr":         ":8080",
	"metrics_addr":      "",
	"acme_url":          suppliers.AcmeEndpoint,
	"paperflies_url":    suppliers.PaperfliesEndpoint,
	"patagonia_url":     suppliers.PatagoniaEndpoint,
	"fetch_timeout":     "20s",
	"fetch_rps":         5,
	"fetch_retries":     0,
	"fetch_workers":     3,
	"redis_addr":        "",
	"redis_password":    "",
	"redis_db":          0,
	"memcached_addr":    "",
	"cache_ttl_seconds": 900,
	"mysql_dsn":         "",
	"postgres_dsn":      "",
}

// Load reads configuration from the environment (after .env files) and, when path is set,
// a config file whose keys are the lower-case env names. Environment wins over the file.
func Load(path string) (Config, error) {
	loadEnvFiles()

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	timeout, err := seconds(v.GetString("fetch_timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("FETCH_TIMEOUT: %w", err)
	}

	c := Config{
		AppEnv:        v.GetString("app_env"),
		LogLevel:      v.GetString("log_level"),
		HTTPAddr:      v.GetString("http_addr"),
		MetricsAddr:   v.GetString("metrics_addr"),
		AcmeURL:       v.GetString("acme_url"),
		PaperfliesURL: v.GetString("paperflies_url"),
		PatagoniaURL:  v.GetString("patagonia_url"),
		FetchTimeout:  timeout,
		FetchRPS:      v.GetInt("fetch_rps"),
		FetchRetries:  v.GetInt("fetch_retries"),
		FetchWorkers:  v.GetInt("fetch_workers"),
		RedisAddr:     v.GetString("redis_addr"),
		RedisPass:     v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),
		MemcachedAddr: v.GetString("memcached_addr"),
		CacheTTL:      time.Duration(v.GetInt("cache_ttl_seconds")) * time.Second,
		MySQLDSN:      v.GetString("mysql_dsn"),
		PostgresDSN:   v.GetString("postgres_dsn"),
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch {
	case c.FetchRPS < 1:
		return fmt.Errorf("FETCH_RPS must be >= 1, got %d", c.FetchRPS)
	case c.FetchWorkers < 1:
		return fmt.Errorf("FETCH_WORKERS must be >= 1, got %d", c.FetchWorkers)
	case c.FetchRetries < 0:
		return fmt.Errorf("FETCH_RETRIES must be >= 0, got %d", c.FetchRetries)
	case c.FetchTimeout < 0:
		return fmt.Errorf("FETCH_TIMEOUT must not be negative")
	}
	return nil
}

// seconds accepts a Go duration ("20s", "1m") or a bare number of seconds.
func seconds(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

// loadEnvFiles loads .env then .env.local; variables already set in the process are kept.
func loadEnvFiles() {
	for _, f := range []string{".env", ".env.local"} {
		_ = godotenv.Load(f)
	}
}
