package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv
const (
	EnvTimeout      = "CASERUN_TIMEOUT"
	EnvInputSuffix  = "CASERUN_INPUT_SUFFIX"
	EnvOutputSuffix = "CASERUN_OUTPUT_SUFFIX"
	EnvStorage      = "CASERUN_STORAGE"
	EnvOutputDir    = "CASERUN_OUTPUT_DIR"
	EnvMySQLDSN     = "CASERUN_MYSQL_DSN"
)

// LoadEnv loads the project .env file (if any) and applies CASERUN_* variables.
// Variables already set in the process environment win over the .env file.
func (c *Config) LoadEnv() error {
	if err := godotenv.Load(c.GetEnvFilePath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", c.GetEnvFilePath(), err)
	}

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvInputSuffix); v != "" {
		c.InputSuffix = v
	}
	if v := os.Getenv(EnvOutputSuffix); v != "" {
		c.OutputSuffix = v
	}
	if v := os.Getenv(EnvStorage); v != "" {
		c.Storage = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputJSONDir = v
	}
	if v := os.Getenv(EnvMySQLDSN); v != "" {
		c.MySQLDSN = v
	}
	return nil
}

// Resolve loads the config file and environment, then re-applies flags so
// that flags take precedence, and validates the result
func (c *Config) Resolve() error {
	if err := c.LoadFile(); err != nil {
		return err
	}
	if err := c.LoadEnv(); err != nil {
		return err
	}
	c.ApplyFlags(c.Flags)
	return c.Validate()
}

// Validate checks that the settings are usable
func (c *Config) Validate() error {
	if c.InputSuffix == "" || c.OutputSuffix == "" {
		return errors.New("input and output suffixes must not be empty")
	}
	if c.InputSuffix == c.OutputSuffix {
		return fmt.Errorf("input and output suffixes must differ (both %q)", c.InputSuffix)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	switch c.Storage {
	case StorageJSON, StorageNone:
	case StorageMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("storage %q requires %s or storage.mysql_dsn", StorageMySQL, EnvMySQLDSN)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	return nil
}
