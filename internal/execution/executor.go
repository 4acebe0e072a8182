package execution

import (
	"context"
	"time"

	"caserun/internal/domain"
)

// Executor executes test cases and returns results
type Executor interface {
	Execute(ctx context.Context, candidate Candidate, cases []domain.TestCase) ([]domain.CaseResult, time.Duration, error)
}

var _ Executor = (*SequentialExecutor)(nil)

// Observer is notified as each case starts and finishes
type Observer interface {
	CaseStarted(tc domain.TestCase)
	CaseFinished(result domain.CaseResult)
}
