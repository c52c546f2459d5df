package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	DatabaseURL string `yaml:"database_url"`
	JWKSURL     string `yaml:"jwks_url"`
	CORSOrigins string `yaml:"cors_origins"`
	TablePrefix string `yaml:"table_prefix"`
	// Object storage
	StorageEndpoint  string `yaml:"storage_endpoint"`
	StorageRegion    string `yaml:"storage_region"`
	StorageAccessKey string `yaml:"storage_access_key"`
	StorageSecretKey string `yaml:"storage_secret_key"`
	StorageBucket    string `yaml:"storage_bucket"`
	StoragePublicURL string `yaml:"storage_public_url"`
}

// Load builds the configuration from the environment, with an optional YAML
// overlay (CONFIG_FILE, default config.yaml) applied first. Environment
// variables always win so deployments can override a checked-in file.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := cfg.loadFile(getEnv("CONFIG_FILE", "config.yaml")); err != nil {
		return nil, err
	}

	env := getEnv("ENVIRONMENT", defaultString(cfg.Environment, "dev"))

	cfg.Port = getEnv("PORT", defaultString(cfg.Port, "8080"))
	cfg.Environment = env
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.JWKSURL = getEnv("JWKS_URL", cfg.JWKSURL)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", defaultString(cfg.CORSOrigins, "http://localhost:3000"))
	cfg.TablePrefix = getEnv("TABLE_PREFIX", defaultString(cfg.TablePrefix, tablePrefixFor(env)))
	cfg.StorageEndpoint = getEnv("STORAGE_ENDPOINT", cfg.StorageEndpoint)
	cfg.StorageRegion = getEnv("STORAGE_REGION", defaultString(cfg.StorageRegion, "us-east-1"))
	cfg.StorageAccessKey = getEnv("STORAGE_ACCESS_KEY", cfg.StorageAccessKey)
	cfg.StorageSecretKey = getEnv("STORAGE_SECRET_KEY", cfg.StorageSecretKey)
	cfg.StorageBucket = getEnv("STORAGE_BUCKET", defaultString(cfg.StorageBucket, "studydeck-documents"))
	cfg.StoragePublicURL = getEnv("STORAGE_PUBLIC_URL", cfg.StoragePublicURL)

	return cfg, nil
}

// loadFile applies an optional YAML config file. A missing file is fine.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	return nil
}

// tablePrefixFor returns the table prefix based on environment
func tablePrefixFor(env string) string {
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultString(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
