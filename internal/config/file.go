package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var schemaData []byte

const schemaURL = "config.schema.json"

var (
	fileSchema  *jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

// FileConfig is the layout of .caserun.yaml
type FileConfig struct {
	InputSuffix  string      `yaml:"input_suffix"`
	OutputSuffix string      `yaml:"output_suffix"`
	Timeout      string      `yaml:"timeout"`
	Storage      StorageFile `yaml:"storage"`
}

// StorageFile is the storage section of .caserun.yaml
type StorageFile struct {
	Backend  string `yaml:"backend"`
	Dir      string `yaml:"dir"`
	File     string `yaml:"file"`
	MySQLDSN string `yaml:"mysql_dsn"`
}

func compileSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal config schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add config schema resource: %w", err)
			return
		}
		fileSchema, err = compiler.Compile(schemaURL)
		if err != nil {
			compileErr = fmt.Errorf("compile config schema: %w", err)
		}
	})
	return compileErr
}

// ParseFile validates YAML config data against the schema and decodes it
func ParseFile(data []byte) (*FileConfig, error) {
	if err := compileSchema(); err != nil {
		return nil, err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if raw == nil {
		return &FileConfig{}, nil
	}

	// Round-trip through JSON so the validator sees plain JSON values
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	if err := fileSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &fc, nil
}

// LoadFile reads the config file. A missing file is only an error when
// it was requested explicitly with --config.
func (c *Config) LoadFile() error {
	path := c.GetConfigFilePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && c.Flags.ConfigFile == "" {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	fc, err := ParseFile(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return c.applyFile(fc)
}

func (c *Config) applyFile(fc *FileConfig) error {
	if fc.InputSuffix != "" {
		c.InputSuffix = fc.InputSuffix
	}
	if fc.OutputSuffix != "" {
		c.OutputSuffix = fc.OutputSuffix
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		c.Timeout = d
	}
	if fc.Storage.Backend != "" {
		c.Storage = fc.Storage.Backend
	}
	if fc.Storage.Dir != "" {
		c.OutputJSONDir = fc.Storage.Dir
	}
	if fc.Storage.File != "" {
		c.OutputJSONFile = fc.Storage.File
	}
	if fc.Storage.MySQLDSN != "" {
		c.MySQLDSN = fc.Storage.MySQLDSN
	}
	return nil
}
