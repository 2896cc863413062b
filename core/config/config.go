package config

import (
	"fmt"
	"sync"
	"time"

	"court-watcher/core/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host        string
	Port        int
	BaseURL     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// ScanConfig drives the availability scan pipeline.
type ScanConfig struct {
	// HorizonEndDate is the last date (YYYY-MM-DD) covered by a scan.
	HorizonEndDate   string
	FetchConcurrency int
	FetchRetries     int
	IntervalSeconds  int
	// FernetKey encrypts unsubscribe tokens (base64, 32 bytes).
	FernetKey string
}

type ProviderConfig struct {
	WidgetID string
	SiteID   string
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Scan     ScanConfig
	Provider ProviderConfig
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (when present) and the environment into the singleton config.
func Load() (*Config, error) {
	// .env is optional; real deployments use the process environment.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 7070)
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "courtwatcher")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("FETCH_CONCURRENCY", constants.DefaultFetchConcurrency)
	v.SetDefault("FETCH_RETRIES", constants.DefaultFetchRetryCeiling)
	v.SetDefault("FETCH_INTERVAL_SECONDS", constants.DefaultScanIntervalSeconds)
	v.SetDefault("WIDGET_ID", constants.DefaultWidgetID)
	v.SetDefault("SITE_ID", constants.DefaultSiteID)
	// Scan two weeks out when no explicit end date is configured.
	v.SetDefault("END_DATE", time.Now().AddDate(0, 0, 14).Format("2006-01-02"))

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("HOST"),
			Port:        v.GetInt("PORT"),
			BaseURL:     v.GetString("BASE_URL"),
			Environment: v.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		Scan: ScanConfig{
			HorizonEndDate:   v.GetString("END_DATE"),
			FetchConcurrency: v.GetInt("FETCH_CONCURRENCY"),
			FetchRetries:     v.GetInt("FETCH_RETRIES"),
			IntervalSeconds:  v.GetInt("FETCH_INTERVAL_SECONDS"),
			FernetKey:        v.GetString("EMAIL_ENCRYPTION_KEY"),
		},
		Provider: ProviderConfig{
			WidgetID: v.GetString("WIDGET_ID"),
			SiteID:   v.GetString("SITE_ID"),
		},
	}

	// Unsubscribe links in outgoing mail are built from the base URL; an
	// unset one would render relative, dead links.
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := time.Parse("2006-01-02", c.Scan.HorizonEndDate); err != nil {
		return fmt.Errorf("invalid END_DATE %q: %w", c.Scan.HorizonEndDate, err)
	}
	if c.Scan.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1")
	}
	if c.Scan.FetchRetries < 1 {
		return fmt.Errorf("FETCH_RETRIES must be at least 1")
	}
	if c.Scan.IntervalSeconds < 1 {
		return fmt.Errorf("FETCH_INTERVAL_SECONDS must be at least 1")
	}
	return nil
}

// Get returns the singleton config. Panics when Load has not run.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: Get called before Load")
	}
	return instance
}

// GetSafe returns the singleton config and whether it has been initialized.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
