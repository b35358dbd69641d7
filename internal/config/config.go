package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type envConfig struct {
	APP_PORT           string
	LOG_FILE_PATH      string
	LOG_LEVEL          string
	TASKS_FILE_PATH    string
	TASKS_SHEET_NAME   string
	EXPORT_LAYOUT_PATH string
	TASKS_SAVE_RETRIES int
}

// DefaultEnvConfig is populated by LoadEnvConfig and read by the bootstrap.
var DefaultEnvConfig = defaultEnvConfig()

func defaultEnvConfig() envConfig {
	return envConfig{
		APP_PORT:           "8000",
		LOG_LEVEL:          "info",
		TASKS_FILE_PATH:    "tasks.xlsx",
		TASKS_SAVE_RETRIES: 2,
	}
}

// LoadEnvConfig reads the given env files (".env" when none are given) and
// then the process environment into DefaultEnvConfig. A missing env file is
// not an error.
func LoadEnvConfig(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("stat env file %s: %w", f, err)
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	cfg := defaultEnvConfig()
	cfg.APP_PORT = getEnv("APP_PORT", cfg.APP_PORT)
	cfg.LOG_FILE_PATH = getEnv("LOG_FILE_PATH", cfg.LOG_FILE_PATH)
	cfg.LOG_LEVEL = getEnv("LOG_LEVEL", cfg.LOG_LEVEL)
	cfg.TASKS_FILE_PATH = getEnv("TASKS_FILE_PATH", cfg.TASKS_FILE_PATH)
	cfg.TASKS_SHEET_NAME = getEnv("TASKS_SHEET_NAME", cfg.TASKS_SHEET_NAME)
	cfg.EXPORT_LAYOUT_PATH = getEnv("EXPORT_LAYOUT_PATH", cfg.EXPORT_LAYOUT_PATH)

	if v := getEnv("TASKS_SAVE_RETRIES", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid TASKS_SAVE_RETRIES %q", v)
		}
		cfg.TASKS_SAVE_RETRIES = n
	}

	if _, err := strconv.Atoi(cfg.APP_PORT); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", cfg.APP_PORT, err)
	}
	if cfg.TASKS_FILE_PATH == "" {
		return fmt.Errorf("TASKS_FILE_PATH must not be empty")
	}

	DefaultEnvConfig = cfg
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
