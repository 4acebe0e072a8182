package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultInputSuffix marks input files
	DefaultInputSuffix = ".in"
	// DefaultOutputSuffix marks expected-output files
	DefaultOutputSuffix = ".out"
	// DefaultTimeout is the wall-clock ceiling for a single case
	DefaultTimeout = 5 * time.Second
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultConfigFile is looked up in the project path when --config is not given
	DefaultConfigFile = ".caserun.yaml"
	// DefaultEnvFile is loaded from the project path if present
	DefaultEnvFile = ".env"
)

// Storage backends
const (
	StorageJSON  = "json"
	StorageMySQL = "mysql"
	StorageNone  = "none"
)

// DefaultStorage is the default storage backend
const DefaultStorage = StorageJSON
