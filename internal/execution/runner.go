package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"caserun/internal/config"
	"caserun/internal/domain"
	"caserun/internal/parser"
)

// Runner executes a single test case against a candidate
type Runner struct {
	config *config.Config
	parser parser.Parser
	logger *slog.Logger
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, p parser.Parser, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{config: cfg, parser: p, logger: logger}
}

// Run parses the case files, invokes the candidate and compares its result.
// Every failure is reported through the returned Outcome.
func (r *Runner) Run(ctx context.Context, candidate Candidate, tc domain.TestCase) domain.Outcome {
	start := time.Now()
	outcome := r.run(ctx, candidate, tc)
	outcome.Duration = time.Since(start)

	r.logger.Debug("case finished",
		"case", tc.ID,
		"status", outcome.Status,
		"kind", outcome.Kind,
		"duration", outcome.Duration)
	return outcome
}

func (r *Runner) run(ctx context.Context, candidate Candidate, tc domain.TestCase) domain.Outcome {
	input, err := r.parser.ParseFile(tc.InputPath)
	if err != nil {
		return parseFailure(err)
	}
	expected, err := r.parser.ParseFile(tc.OutputPath)
	if err != nil {
		return parseFailure(err)
	}

	switch {
	case len(input) == 0 && len(expected) == 0:
		return domain.Fail(domain.KindEmptyBoth, "In and out files both have no records.")
	case len(input) == 0:
		return domain.Fail(domain.KindEmptyInput, "In file has no input records.")
	case len(expected) == 0:
		return domain.Fail(domain.KindEmptyOutput, "Out file has no expected records.")
	}

	timeout := r.config.Timeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	r.logger.Debug("invoking candidate", "case", tc.ID, "args", len(input))
	result, err := candidate.Call(ctx, input)
	// in-process candidates are not preempted; one that returns late still timed out
	if err == nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = ctx.Err()
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.Fail(domain.KindTimeout,
				fmt.Sprintf("Program timed out (took >%s).", timeout))
		}
		return domain.Fail(domain.KindInvocation,
			fmt.Sprintf("An unexpected error occurred: %v", err))
	}

	cmpResult, err := Compare(expected, result)
	if err != nil {
		return domain.Fail(domain.KindInvocation,
			fmt.Sprintf("An unexpected error occurred: %v", err))
	}
	if cmpResult.Equal {
		return domain.Pass()
	}

	reason := "Output does not match expected output."
	if cmpResult.Detail != "" {
		reason = fmt.Sprintf("Output does not match expected output (%s).", cmpResult.Detail)
	}
	outcome := domain.Fail(domain.KindMismatch, reason)
	outcome.Expected = Render(cmpResult.Expected)
	outcome.Actual = Render(cmpResult.Actual)
	outcome.Diff = UnifiedDiff(outcome.Expected, outcome.Actual)
	return outcome
}

func parseFailure(err error) domain.Outcome {
	var parseErr *domain.ParseError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return domain.Fail(domain.KindMissingFile,
			fmt.Sprintf("File not found during test execution: %v", err))
	case errors.As(err, &parseErr):
		return domain.Fail(domain.KindParse,
			fmt.Sprintf("Error parsing JSON in test files: %v", parseErr))
	default:
		return domain.Fail(domain.KindParse,
			fmt.Sprintf("Error reading test files: %v", err))
	}
}
