package config

import (
	"path/filepath"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Discovery settings
	InputSuffix  string
	OutputSuffix string

	// Execution settings
	Timeout time.Duration

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Storage backend: json, mysql or none
	Storage  string
	MySQLDSN string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile   string
	NameFilter   string
	FailFast     bool
	OnlyFailed   bool
	Progress     bool
	NoColor      bool
	Verbose      bool
	OpenFailures bool
	Timeout      time.Duration
	InputSuffix  string
	OutputSuffix string
	Storage      string
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:    DefaultProjectPath,
		InputSuffix:    DefaultInputSuffix,
		OutputSuffix:   DefaultOutputSuffix,
		Timeout:        DefaultTimeout,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Storage:        DefaultStorage,
	}
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.ApplyFlags(flags)
	return cfg
}

// ApplyFlags stores flags and lets the non-zero ones override settings
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if flags.Timeout > 0 {
		c.Timeout = flags.Timeout
	}
	if flags.InputSuffix != "" {
		c.InputSuffix = flags.InputSuffix
	}
	if flags.OutputSuffix != "" {
		c.OutputSuffix = flags.OutputSuffix
	}
	if flags.Storage != "" {
		c.Storage = flags.Storage
	}
}

// GetConfigFilePath returns the config file to read, using flag if provided
func (c *Config) GetConfigFilePath() string {
	if c.Flags.ConfigFile != "" {
		return c.Flags.ConfigFile
	}
	return filepath.Join(c.ProjectPath, DefaultConfigFile)
}

// GetEnvFilePath returns the path of the .env file in the project
func (c *Config) GetEnvFilePath() string {
	return filepath.Join(c.ProjectPath, DefaultEnvFile)
}

// GetOutputPath returns the full path to the output JSON file (under project so run and failures use the same file).
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := c.OutputJSONDir
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.ProjectPath, p)
	}
	p = filepath.Join(p, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
