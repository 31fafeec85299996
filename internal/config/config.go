package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port            string
	DBConn          string
	LogLevel        string
	SchedulerSecret string
	RecurringCron   string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=ledger sslmode=disable"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		SchedulerSecret: getEnv("SCHEDULER_SECRET", ""),
		RecurringCron:   getEnv("RECURRING_CRON", "10 0 * * *"), // daily, shortly after UTC midnight
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.SchedulerSecret == "" {
		return nil, fmt.Errorf("SCHEDULER_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
