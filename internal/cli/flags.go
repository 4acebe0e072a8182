package cli

import (
	"time"

	"caserun/internal/config"
)

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile:   f.ConfigFile,
		NameFilter:   f.NameFilter,
		FailFast:     f.FailFast,
		OnlyFailed:   f.OnlyFailed,
		Progress:     f.Progress,
		NoColor:      f.NoColor,
		Verbose:      f.Verbose,
		OpenFailures: f.OpenFailures,
		Timeout:      f.Timeout,
		InputSuffix:  f.InputSuffix,
		OutputSuffix: f.OutputSuffix,
		Storage:      f.Storage,
	}
}
