package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfigFromFile loads configuration from a YAML file. Environment
// variables still take precedence over values in the file.
func LoadConfigFromFile(path string) (*Config, error) {
	return load(path)
}

// PathForEnv returns the conventional config file location for env.
func PathForEnv(env Environment) (string, error) {
	configDir := "config"
	if os.Getenv("CONTAINER") == "true" {
		configDir = "/app/config"
	}

	var filename string
	switch env {
	case EnvDevelopment:
		filename = "config.dev.yaml"
	case EnvProduction:
		filename = "config.prod.yaml"
	default:
		return "", fmt.Errorf("unknown environment: %s", env)
	}
	return filepath.Join(configDir, filename), nil
}

// Template renders a starting YAML config for env. Secrets are left empty.
func Template(env Environment) ([]byte, error) {
	cfg := Config{
		Server: ServerConfig{
			Environment:    env,
			Port:           "8080",
			AllowedOrigins: []string{"*"},
			Version:        "dev",
		},
		Backend:  BackendConfig{Driver: DriverSupabase},
		Supabase: SupabaseConfig{Schema: "public"},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			User:           "postgres",
			Name:           "splitly_dev",
			SSLMode:        "disable",
			MaxConnections: 10,
		},
		Redis:      RedisConfig{Address: "localhost:6379", PoolSize: 10, MinIdleConns: 1},
		Cache:      CacheConfig{BalanceTTLSeconds: 15, WriteTimeoutSeconds: 5},
		RateLimit:  RateLimitConfig{WriteRequestsPerMinute: 100, WindowSeconds: 60},
		WorkerPool: WorkerPoolConfig{MaxWorkers: 4, QueueSize: 1000, ShutdownTimeoutSeconds: 10},
	}
	if env == EnvProduction {
		cfg.Server.AllowedOrigins = []string{"https://app.splitly.dev"}
		cfg.Database.SSLMode = "require"
		cfg.Redis.UseTLS = true
	}

	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to render config template: %w", err)
	}
	return append([]byte(fmt.Sprintf("# Config for %s environment\n", env)), out...), nil
}
