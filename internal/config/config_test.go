package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_GetOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "relative to project",
			config: &Config{
				ProjectPath:    "/project",
				OutputJSONDir:  "storage",
				OutputJSONFile: "test-results.json",
			},
			expected: "/project/storage/test-results.json",
		},
		{
			name: "absolute output dir",
			config: &Config{
				ProjectPath:    "/project",
				OutputJSONDir:  "/var/caserun",
				OutputJSONFile: "last.json",
			},
			expected: "/var/caserun/last.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetOutputPath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected Timeout %s, got %s", DefaultTimeout, cfg.Timeout)
	}
	if cfg.InputSuffix != ".in" || cfg.OutputSuffix != ".out" {
		t.Errorf("unexpected suffixes %q %q", cfg.InputSuffix, cfg.OutputSuffix)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FlagsOverride(t *testing.T) {
	cfg := Load(Flags{Timeout: 2 * time.Second, InputSuffix: ".input", Storage: StorageNone})

	if cfg.Timeout != 2*time.Second {
		t.Errorf("expected timeout 2s, got %s", cfg.Timeout)
	}
	if cfg.InputSuffix != ".input" {
		t.Errorf("expected input suffix .input, got %s", cfg.InputSuffix)
	}
	if cfg.OutputSuffix != DefaultOutputSuffix {
		t.Errorf("expected default output suffix, got %s", cfg.OutputSuffix)
	}
	if cfg.Storage != StorageNone {
		t.Errorf("expected storage none, got %s", cfg.Storage)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "same suffixes", mutate: func(c *Config) { c.OutputSuffix = c.InputSuffix }, wantErr: "must differ"},
		{name: "empty suffix", mutate: func(c *Config) { c.InputSuffix = "" }, wantErr: "must not be empty"},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: "negative"},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage = "redis" }, wantErr: "unknown storage"},
		{name: "mysql without dsn", mutate: func(c *Config) { c.Storage = StorageMySQL }, wantErr: EnvMySQLDSN},
		{name: "mysql with dsn", mutate: func(c *Config) { c.Storage = StorageMySQL; c.MySQLDSN = "root@tcp(127.0.0.1:3306)/caserun" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfig_Resolve_Precedence(t *testing.T) {
	dir := t.TempDir()
	yamlContent := "input_suffix: .req\noutput_suffix: .res\ntimeout: 3s\nstorage:\n  backend: none\n"
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	envContent := "CASERUN_OUTPUT_SUFFIX=.expected\n"
	if err := os.WriteFile(filepath.Join(dir, DefaultEnvFile), []byte(envContent), 0644); err != nil {
		t.Fatalf("failed to write env: %v", err)
	}
	// Cleared after the test; godotenv only sets variables that are unset
	t.Setenv(EnvOutputSuffix, "")
	os.Unsetenv(EnvOutputSuffix)

	cfg := New()
	cfg.ProjectPath = dir
	cfg.Flags = Flags{Timeout: 7 * time.Second}

	if err := cfg.Resolve(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.InputSuffix != ".req" {
		t.Errorf("expected input suffix from file, got %s", cfg.InputSuffix)
	}
	if cfg.OutputSuffix != ".expected" {
		t.Errorf("expected output suffix from env, got %s", cfg.OutputSuffix)
	}
	if cfg.Timeout != 7*time.Second {
		t.Errorf("expected timeout from flags, got %s", cfg.Timeout)
	}
	if cfg.Storage != StorageNone {
		t.Errorf("expected storage from file, got %s", cfg.Storage)
	}
}

func TestConfig_LoadFile_Missing(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = t.TempDir()

	t.Run("default file may be absent", func(t *testing.T) {
		if err := cfg.LoadFile(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("explicit file must exist", func(t *testing.T) {
		cfg.Flags.ConfigFile = filepath.Join(cfg.ProjectPath, "nope.yaml")
		if err := cfg.LoadFile(); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})
}

func TestConfig_LoadEnv(t *testing.T) {
	t.Setenv(EnvTimeout, "250ms")
	t.Setenv(EnvStorage, StorageMySQL)
	t.Setenv(EnvMySQLDSN, "u:p@tcp(db:3306)/results")

	cfg := New()
	cfg.ProjectPath = t.TempDir()
	if err := cfg.LoadEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", cfg.Timeout)
	}
	if cfg.Storage != StorageMySQL || cfg.MySQLDSN != "u:p@tcp(db:3306)/results" {
		t.Errorf("unexpected storage settings %q %q", cfg.Storage, cfg.MySQLDSN)
	}

	t.Setenv(EnvTimeout, "soon")
	if err := cfg.LoadEnv(); err == nil {
		t.Error("expected error for invalid timeout")
	}
}
