package ui

import (
	"fmt"
	"io"
	"strings"

	"caserun/internal/domain"

	"github.com/fatih/color"
)

const summaryRule = "========================================"

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
	nameColor = color.New(color.FgBlue)
)

// Reporter streams case outcomes and keeps the pass/fail counters
type Reporter struct {
	out      io.Writer
	passed   int
	failed   int
	progress *ProgressBar
	failures []domain.CaseResult
}

// NewReporter creates a Reporter writing to out
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// SetProgress replaces the per-case lines with a progress bar.
// Failures are then listed in the summary instead.
func (r *Reporter) SetProgress(p *ProgressBar) {
	r.progress = p
}

// Header prints the line announcing what is being tested
func (r *Reporter) Header(candidate, dir string) {
	fmt.Fprintf(r.out, "Testing %s with test cases from %s\n\n",
		nameColor.Sprint(candidate), nameColor.Sprint(dir))
}

// Warn prints a discovery warning
func (r *Reporter) Warn(w domain.DiscoveryWarning) {
	warnColor.Fprintf(r.out, "Warning: %s\n", w)
}

// NoCases prints the notice for a directory without any case
func (r *Reporter) NoCases() {
	warnColor.Fprintln(r.out, "No valid test cases (.in/.out pairs) found.")
}

// CaseStarted implements execution.Observer
func (r *Reporter) CaseStarted(tc domain.TestCase) {
	if r.progress != nil {
		return
	}
	fmt.Fprintf(r.out, "Running test: %-20s ... ", tc.ID)
}

// CaseFinished implements execution.Observer
func (r *Reporter) CaseFinished(result domain.CaseResult) {
	if result.Outcome.Passed() {
		r.passed++
	} else {
		r.failed++
		r.failures = append(r.failures, result)
	}

	if r.progress != nil {
		r.progress.Update(r.passed, r.failed)
		return
	}

	if result.Outcome.Passed() {
		passColor.Fprintln(r.out, "PASS")
		return
	}
	r.printFailure(result.Outcome)
}

func (r *Reporter) printFailure(o domain.Outcome) {
	failColor.Fprintf(r.out, "FAIL\n  - Reason: %s\n", o.Reason)
	if o.Diff == "" {
		return
	}
	fmt.Fprintf(r.out, "  - Diff (- expected, + actual):\n")
	for _, line := range strings.Split(strings.TrimSuffix(o.Diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			fmt.Fprintln(r.out, line)
		case strings.HasPrefix(line, "-"):
			failColor.Fprintln(r.out, line)
		case strings.HasPrefix(line, "+"):
			passColor.Fprintln(r.out, line)
		default:
			fmt.Fprintln(r.out, line)
		}
	}
}

// Summary prints the framed totals block
func (r *Reporter) Summary() {
	if r.progress != nil {
		r.progress.Finish()
		for _, f := range r.failures {
			fmt.Fprintf(r.out, "%s: ", f.Case.ID)
			r.printFailure(f.Outcome)
		}
	}

	fmt.Fprintf(r.out, "\n%s\nTest Summary\n%s\n", summaryRule, summaryRule)
	passColor.Fprintf(r.out, "Passed: %d\n", r.passed)
	failColor.Fprintf(r.out, "Failed: %d\n", r.failed)
	fmt.Fprintf(r.out, "Total:  %d\n%s\n", r.passed+r.failed, summaryRule)
}

// Passed returns the number of passing cases seen so far
func (r *Reporter) Passed() int {
	return r.passed
}

// Failed returns the number of failing cases seen so far
func (r *Reporter) Failed() int {
	return r.failed
}

// ExitCode is domain.ExitSuccess when no case failed
func (r *Reporter) ExitCode() int {
	if r.failed == 0 {
		return domain.ExitSuccess
	}
	return domain.ExitFailure
}
