package domain

import "time"

// Record is one decoded JSON value: nil, bool, json.Number, string, []any or map[string]any
type Record = any

// Status is the pass/fail verdict of a single case
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// FailureKind classifies why a case failed
type FailureKind string

const (
	KindNone        FailureKind = "none"
	KindMissingFile FailureKind = "missing_file"
	KindEmptyInput  FailureKind = "empty_input"
	KindEmptyOutput FailureKind = "empty_output"
	KindEmptyBoth   FailureKind = "empty_both"
	KindParse       FailureKind = "parse"
	KindInvocation  FailureKind = "invocation"
	KindTimeout     FailureKind = "timeout"
	KindMismatch    FailureKind = "mismatch"
)

// Structural reports whether the kind is one of the empty-file failures
func (k FailureKind) Structural() bool {
	return k == KindEmptyInput || k == KindEmptyOutput || k == KindEmptyBoth
}

// Outcome is the verdict for one test case
type Outcome struct {
	Status   Status
	Kind     FailureKind
	Reason   string        // Human-readable failure reason, empty on pass
	Expected string        // Rendered expected value (mismatch only)
	Actual   string        // Rendered actual value (mismatch only)
	Diff     string        // Unified diff of Expected vs Actual, advisory
	Duration time.Duration // Time spent on the case
}

// Passed reports whether the outcome is a pass
func (o Outcome) Passed() bool {
	return o.Status == StatusPass
}

// Pass builds a passing outcome
func Pass() Outcome {
	return Outcome{Status: StatusPass, Kind: KindNone}
}

// Fail builds a failing outcome of the given kind
func Fail(kind FailureKind, reason string) Outcome {
	return Outcome{Status: StatusFail, Kind: kind, Reason: reason}
}

// CaseResult is a test case together with its outcome
type CaseResult struct {
	Case    TestCase
	Outcome Outcome
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	RunID           string  `json:"run_id"`
	Candidate       string  `json:"candidate"`
	Function        string  `json:"function"`
	TestDir         string  `json:"test_dir"`
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}

// FailedIDs returns the ids of all failed cases in the stored run
func (o *TestResultsOutput) FailedIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(o.Details))
	for _, d := range o.Details {
		ids[d.CaseID] = struct{}{}
	}
	return ids
}
