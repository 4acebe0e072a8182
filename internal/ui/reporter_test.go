package ui

import (
	"bytes"
	"io"
	"testing"

	"caserun/internal/domain"
	"caserun/internal/execution"

	"github.com/fatih/color"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

var _ execution.Observer = (*Reporter)(nil)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

const sampleDiff = "--- expected.out\n+++ actual.out\n@@ -1,3 +1,3 @@\n [\n-  1\n+  2\n ]\n"

func sampleRun() []domain.CaseResult {
	mismatch := domain.Fail(domain.KindMismatch, "Output does not match expected output (value 0 differs).")
	mismatch.Diff = sampleDiff
	return []domain.CaseResult{
		{Case: domain.TestCase{ID: "alpha"}, Outcome: domain.Pass()},
		{Case: domain.TestCase{ID: "beta"}, Outcome: mismatch},
		{Case: domain.TestCase{ID: "gamma"}, Outcome: domain.Fail(domain.KindTimeout, "Program timed out (took >5s).")},
	}
}

func replay(r *Reporter, results []domain.CaseResult) {
	for _, res := range results {
		r.CaseStarted(res.Case)
		r.CaseFinished(res)
	}
}

func TestReporter_Golden(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Header("sorting_solution.py", "tests")
	r.Warn(domain.DiscoveryWarning{
		Path:    "tests/orphan.in",
		Message: "Found orphan.in but no corresponding orphan.out file. Skipping.",
	})
	replay(r, sampleRun())
	r.Summary()

	newGoldie(t).Assert(t, "reporter_run", buf.Bytes())
	assert.Equal(t, 1, r.Passed())
	assert.Equal(t, 2, r.Failed())
	assert.Equal(t, domain.ExitFailure, r.ExitCode())
}

func TestReporter_NoCases(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.NoCases()

	assert.Equal(t, "No valid test cases (.in/.out pairs) found.\n", buf.String())
	assert.Equal(t, domain.ExitSuccess, r.ExitCode())
}

func TestReporter_AllPass(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	r := NewReporter(&buf)
	replay(r, []domain.CaseResult{
		{Case: domain.TestCase{ID: "one"}, Outcome: domain.Pass()},
		{Case: domain.TestCase{ID: "two"}, Outcome: domain.Pass()},
	})
	r.Summary()

	assert.Contains(t, buf.String(), "Passed: 2\nFailed: 0\nTotal:  2\n")
	assert.Equal(t, domain.ExitSuccess, r.ExitCode())
}

func TestReporter_Progress(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.SetProgress(NewProgressBar(io.Discard, 3))
	replay(r, sampleRun())
	r.Summary()

	out := buf.String()
	assert.NotContains(t, out, "Running test:")
	assert.Contains(t, out, "beta: FAIL\n  - Reason: Output does not match expected output (value 0 differs).\n")
	assert.Contains(t, out, "gamma: FAIL\n  - Reason: Program timed out (took >5s).\n")
	assert.Contains(t, out, "Passed: 1\nFailed: 2\nTotal:  3\n")
}
