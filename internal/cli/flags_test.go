package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"caserun/internal/config"
)

func TestToConfigFlags(t *testing.T) {
	f := Flags{
		ConfigFile:   "ci.yaml",
		NameFilter:   "sort*",
		FailFast:     true,
		OnlyFailed:   true,
		Progress:     true,
		NoColor:      true,
		Verbose:      true,
		OpenFailures: true,
		Timeout:      2 * time.Second,
		InputSuffix:  ".input",
		OutputSuffix: ".expected",
		Storage:      config.StorageNone,
	}

	got := f.ToConfigFlags()
	want := config.Flags{
		ConfigFile:   "ci.yaml",
		NameFilter:   "sort*",
		FailFast:     true,
		OnlyFailed:   true,
		Progress:     true,
		NoColor:      true,
		Verbose:      true,
		OpenFailures: true,
		Timeout:      2 * time.Second,
		InputSuffix:  ".input",
		OutputSuffix: ".expected",
		Storage:      config.StorageNone,
	}
	if got != want {
		t.Errorf("ToConfigFlags() = %+v, want %+v", got, want)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.verbose)
			logger.Debug("case finished", "id", "sort")
			logger.Warn("results not saved")

			out := buf.String()
			if got := strings.Contains(out, "case finished"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v (output %q)", got, tt.wantDebug, out)
			}
			if !strings.Contains(out, "results not saved") {
				t.Errorf("warning missing from output %q", out)
			}
		})
	}
}
