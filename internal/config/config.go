package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Backends for the durable stores.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Addr          string `yaml:"addr"`
	Backend       string `yaml:"backend"`
	DataDir       string `yaml:"data_dir"`
	DBPath        string `yaml:"db_path"`
	UploadsDir    string `yaml:"uploads_dir"`
	PublicDir     string `yaml:"public_dir"`
	RosterFile    string `yaml:"roster_file"`
	EnableMetrics bool   `yaml:"enable_metrics"`
	EnableDocs    bool   `yaml:"enable_docs"`
}

// Load builds the configuration from an optional YAML file (CONFIG_FILE)
// overridden by environment variables.
func Load() (*Config, error) {
	config := &Config{
		Addr:       ":8080",
		Backend:    BackendFile,
		DataDir:    "data",
		DBPath:     "data/lostfound.sqlite3",
		UploadsDir: "uploads",
		PublicDir:  "public",
		RosterFile: "public/students.csv",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	config.Addr = getEnv("LISTEN_ADDR", config.Addr)
	config.Backend = getEnv("STORE_BACKEND", config.Backend)
	config.DataDir = getEnv("DATA_DIR", config.DataDir)
	config.DBPath = getEnv("DB_PATH", config.DBPath)
	config.UploadsDir = getEnv("UPLOADS_DIR", config.UploadsDir)
	config.PublicDir = getEnv("PUBLIC_DIR", config.PublicDir)
	config.RosterFile = getEnv("ROSTER_FILE", config.RosterFile)
	if v := os.Getenv("ENABLE_METRICS"); v != "" {
		config.EnableMetrics = v == "true"
	}
	if v := os.Getenv("ENABLE_DOCS"); v != "" {
		config.EnableDocs = v == "true"
	}

	return config, nil
}

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	switch c.Backend {
	case BackendFile:
		if c.DataDir == "" {
			return fmt.Errorf("data dir must not be empty with the file backend")
		}
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("db path must not be empty with the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q (want %q or %q)", c.Backend, BackendFile, BackendSQLite)
	}
	if c.UploadsDir == "" {
		return fmt.Errorf("uploads dir must not be empty")
	}
	return nil
}

// LoadAndValidate loads the configuration and validates it.
func LoadAndValidate() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
