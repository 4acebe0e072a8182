package domain

// TestFailure represents a failed test case as persisted after a run
type TestFailure struct {
	CaseID     string      `json:"case_id"`
	InputPath  string      `json:"input_path"`
	OutputPath string      `json:"output_path"`
	Kind       FailureKind `json:"kind"`
	Reason     string      `json:"reason"`
	Expected   string      `json:"expected,omitempty"`
	Actual     string      `json:"actual,omitempty"`
	Diff       string      `json:"diff,omitempty"`
	Resolved   bool        `json:"resolved,omitempty"` // Track if test case is marked as resolved
}

// NewTestFailure converts a failed case result into its persisted form
func NewTestFailure(r CaseResult) TestFailure {
	return TestFailure{
		CaseID:     r.Case.ID,
		InputPath:  r.Case.InputPath,
		OutputPath: r.Case.OutputPath,
		Kind:       r.Outcome.Kind,
		Reason:     r.Outcome.Reason,
		Expected:   r.Outcome.Expected,
		Actual:     r.Outcome.Actual,
		Diff:       r.Outcome.Diff,
	}
}

// CollectFailures returns the persisted form of every failed result
func CollectFailures(results []CaseResult) []TestFailure {
	var failures []TestFailure
	for _, r := range results {
		if !r.Outcome.Passed() {
			failures = append(failures, NewTestFailure(r))
		}
	}
	return failures
}
