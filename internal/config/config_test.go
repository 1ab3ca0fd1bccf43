package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	// Test default configuration
	for _, key := range []string{
		"CONFIG_FILE", "LISTEN_ADDR", "STORE_BACKEND", "DATA_DIR", "DB_PATH",
		"UPLOADS_DIR", "PUBLIC_DIR", "ROSTER_FILE", "ENABLE_METRICS", "ENABLE_DOCS",
	} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Addr != ":8080" {
		t.Errorf("Expected default LISTEN_ADDR, got %s", cfg.Addr)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("Expected default STORE_BACKEND, got %s", cfg.Backend)
	}
	if cfg.DataDir != "data" {
		t.Errorf("Expected default DATA_DIR, got %s", cfg.DataDir)
	}
	if cfg.UploadsDir != "uploads" {
		t.Errorf("Expected default UPLOADS_DIR, got %s", cfg.UploadsDir)
	}
	if cfg.RosterFile != "public/students.csv" {
		t.Errorf("Expected default ROSTER_FILE, got %s", cfg.RosterFile)
	}
	if cfg.EnableMetrics {
		t.Error("Expected metrics disabled by default")
	}
}

func TestLoadWithEnvironment(t *testing.T) {
	// Test with environment variables
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("DB_PATH", "/tmp/test.sqlite3")
	t.Setenv("ENABLE_METRICS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check environment values
	if cfg.Addr != ":9090" {
		t.Errorf("Expected LISTEN_ADDR from env, got %s", cfg.Addr)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Expected STORE_BACKEND from env, got %s", cfg.Backend)
	}
	if cfg.DBPath != "/tmp/test.sqlite3" {
		t.Errorf("Expected DB_PATH from env, got %s", cfg.DBPath)
	}
	if !cfg.EnableMetrics {
		t.Error("Expected ENABLE_METRICS from env")
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: \":7070\"\nbackend: sqlite\ndb_path: db/app.sqlite3\nenable_docs: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Addr != ":7070" {
		t.Errorf("Expected addr from file, got %s", cfg.Addr)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Expected backend from file, got %s", cfg.Backend)
	}
	if !cfg.EnableDocs {
		t.Error("Expected docs enabled from file")
	}
	// Unset keys keep their defaults
	if cfg.UploadsDir != "uploads" {
		t.Errorf("Expected default uploads dir, got %s", cfg.UploadsDir)
	}
}

func TestLoadWithConfigFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LISTEN_ADDR", ":6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Environment wins over the file
	if cfg.Addr != ":6060" {
		t.Errorf("Expected env to override file, got %s", cfg.Addr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		expectError bool
	}{
		{
			name: "valid file backend",
			config: &Config{
				Addr:       ":8080",
				Backend:    BackendFile,
				DataDir:    "data",
				UploadsDir: "uploads",
			},
			expectError: false,
		},
		{
			name: "valid sqlite backend",
			config: &Config{
				Addr:       ":8080",
				Backend:    BackendSQLite,
				DBPath:     "data/app.sqlite3",
				UploadsDir: "uploads",
			},
			expectError: false,
		},
		{
			name: "empty addr",
			config: &Config{
				Addr:       "",
				Backend:    BackendFile,
				DataDir:    "data",
				UploadsDir: "uploads",
			},
			expectError: true,
		},
		{
			name: "unknown backend",
			config: &Config{
				Addr:       ":8080",
				Backend:    "postgres",
				DataDir:    "data",
				UploadsDir: "uploads",
			},
			expectError: true,
		},
		{
			name: "file backend without data dir",
			config: &Config{
				Addr:       ":8080",
				Backend:    BackendFile,
				DataDir:    "",
				UploadsDir: "uploads",
			},
			expectError: true,
		},
		{
			name: "sqlite backend without db path",
			config: &Config{
				Addr:       ":8080",
				Backend:    BackendSQLite,
				DBPath:     "",
				UploadsDir: "uploads",
			},
			expectError: true,
		},
		{
			name: "empty uploads dir",
			config: &Config{
				Addr:       ":8080",
				Backend:    BackendFile,
				DataDir:    "data",
				UploadsDir: "",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.expectError {
				t.Errorf("Validate() error = %v, expectError %v", err, tt.expectError)
			}
		})
	}
}

func TestLoadAndValidate(t *testing.T) {
	// Test with valid configuration
	t.Setenv("STORE_BACKEND", "file")

	cfg, err := LoadAndValidate()
	if err != nil {
		t.Errorf("LoadAndValidate() failed with valid config: %v", err)
	}
	if cfg == nil {
		t.Error("LoadAndValidate() returned nil config with valid config")
	}

	// Test with invalid configuration
	t.Setenv("STORE_BACKEND", "postgres")

	_, err = LoadAndValidate()
	if err == nil {
		t.Error("LoadAndValidate() should fail with invalid config")
	}
}
