package execution

import (
	"context"
	"io"
	"log/slog"
	"time"

	"caserun/internal/config"
	"caserun/internal/domain"
)

// SequentialExecutor runs cases one after another in discovery order
type SequentialExecutor struct {
	config    *config.Config
	runner    *Runner
	observers []Observer
	logger    *slog.Logger
}

// NewSequentialExecutor creates a new SequentialExecutor
func NewSequentialExecutor(cfg *config.Config, runner *Runner, logger *slog.Logger) *SequentialExecutor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SequentialExecutor{
		config: cfg,
		runner: runner,
		logger: logger,
	}
}

// AddObserver registers an observer for case progress
func (e *SequentialExecutor) AddObserver(o Observer) {
	if o != nil {
		e.observers = append(e.observers, o)
	}
}

// Execute runs every case (no fail-fast unless configured).
// The only error returned is ctx.Err() when the run is cancelled between cases.
func (e *SequentialExecutor) Execute(ctx context.Context, candidate Candidate, cases []domain.TestCase) ([]domain.CaseResult, time.Duration, error) {
	if len(cases) == 0 {
		return nil, 0, nil
	}

	failFast := e.config.Flags.FailFast
	startTime := time.Now()
	results := make([]domain.CaseResult, 0, len(cases))

	for _, tc := range cases {
		if err := ctx.Err(); err != nil {
			return results, time.Since(startTime), err
		}

		for _, o := range e.observers {
			o.CaseStarted(tc)
		}

		result := domain.CaseResult{Case: tc, Outcome: e.runner.Run(ctx, candidate, tc)}
		results = append(results, result)

		for _, o := range e.observers {
			o.CaseFinished(result)
		}

		if failFast && !result.Outcome.Passed() {
			e.logger.Info("stopping after first failure", "case", tc.ID, "remaining", len(cases)-len(results))
			break
		}
	}

	return results, time.Since(startTime), nil
}
