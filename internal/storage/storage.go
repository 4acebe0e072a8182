package storage

import (
	"errors"
	"fmt"
	"time"

	"caserun/internal/config"
	"caserun/internal/domain"

	"github.com/google/uuid"
)

// Storage persists and loads test run results (e.g. for the failures viewer).
type Storage interface {
	Save(run RunInfo, results []domain.CaseResult, duration time.Duration) error
	Load() (*domain.TestResultsOutput, error)
	// SaveOutput writes the full output (e.g. after marking failures resolved).
	SaveOutput(output *domain.TestResultsOutput) error
}

// RunInfo identifies what a run tested
type RunInfo struct {
	Candidate string
	Function  string
	TestDir   string
}

// New returns the Storage selected by cfg.Storage
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage {
	case config.StorageJSON:
		return NewJSONStorage(cfg), nil
	case config.StorageMySQL:
		return NewMySQLStorage(cfg)
	case config.StorageNone:
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

// BuildOutput summarises a run in its persisted form
func BuildOutput(run RunInfo, results []domain.CaseResult, duration time.Duration, now time.Time) *domain.TestResultsOutput {
	passed := 0
	failed := 0
	for _, r := range results {
		if r.Outcome.Passed() {
			passed++
		} else {
			failed++
		}
	}

	return &domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			RunID:           uuid.NewString(),
			Candidate:       run.Candidate,
			Function:        run.Function,
			TestDir:         run.TestDir,
			TotalCases:      len(results),
			PassedCases:     passed,
			FailedCases:     failed,
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Timestamp:       now.Format(time.RFC3339),
		},
		Details: domain.CollectFailures(results),
	}
}

// ErrNoResults is returned by Load when nothing has been stored yet
var ErrNoResults = errors.New("no stored test results")

var (
	_ Storage = (*JSONStorage)(nil)
	_ Storage = (*MySQLStorage)(nil)
	_ Storage = Discard{}
)

// Discard is a Storage that keeps nothing
type Discard struct{}

// Save does nothing
func (Discard) Save(RunInfo, []domain.CaseResult, time.Duration) error { return nil }

// Load always returns ErrNoResults
func (Discard) Load() (*domain.TestResultsOutput, error) { return nil, ErrNoResults }

// SaveOutput does nothing
func (Discard) SaveOutput(*domain.TestResultsOutput) error { return nil }
