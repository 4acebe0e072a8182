package ui

import (
	"fmt"
	"io"

	"caserun/internal/domain"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgCyan)
	valueColor  = color.New(color.FgWhite)
)

// Formatter formats and displays stored results and discovered cases
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

const (
	tableTop    = "┌─────────────────────────────────┬─────────────────────────────┐"
	tableMiddle = "├─────────────────────────────────┼─────────────────────────────┤"
	tableBottom = "└─────────────────────────────────┴─────────────────────────────┘"
)

// PrintMetaStats displays the statistics of a stored run and the failed cases
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) {
	meta := output.Meta

	fmt.Fprintln(f.out)
	headerColor.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	headerColor.Fprintln(f.out, "║                    Test Execution Statistics                  ║")
	headerColor.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	rows := []struct {
		label string
		value string
		color *color.Color
	}{
		{"Candidate", meta.Candidate, valueColor},
		{"Function", meta.Function, valueColor},
		{"Test Directory", meta.TestDir, valueColor},
		{"Total Cases", fmt.Sprint(meta.TotalCases), valueColor},
		{"Passed Cases", fmt.Sprint(meta.PassedCases), passColor},
		{"Failed Cases", fmt.Sprint(meta.FailedCases), failColor},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), valueColor},
		{"Timestamp", meta.Timestamp, valueColor},
	}

	fmt.Fprintln(f.out, tableTop)
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.color.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, tableMiddle)
		}
	}
	fmt.Fprintln(f.out, tableBottom)

	fmt.Fprintln(f.out)
	if meta.FailedCases == 0 {
		passColor.Fprintln(f.out, "✓ All cases passed!")
		return
	}
	failColor.Fprintf(f.out, "✗ %d of %d case(s) failed\n", meta.FailedCases, meta.TotalCases)
	fmt.Fprintln(f.out)
	f.printFailureTree(output.Details)
}

func (f *Formatter) printFailureTree(failures []domain.TestFailure) {
	for i, failure := range failures {
		branch, stem := "├── ", "│   "
		if i == len(failures)-1 {
			branch, stem = "└── ", "    "
		}
		marker := ""
		if failure.Resolved {
			marker = " " + passColor.Sprint("[R]")
		}
		fmt.Fprintf(f.out, "%s%s%s\n", branch, warnColor.Sprint(failure.CaseID), marker)
		fmt.Fprintf(f.out, "%s└── %s\n", stem, failColor.Sprint(failure.Reason))
	}
}

// PrintCaseList prints the cases of a suite as a tree. Cases listed in
// failed (from the last stored run) are marked with [F].
func (f *Formatter) PrintCaseList(suite *domain.Suite, warnings []domain.DiscoveryWarning, failed map[string]struct{}) {
	for _, w := range warnings {
		warnColor.Fprintf(f.out, "Warning: %s\n", w)
	}

	if len(suite.Cases) == 0 {
		warnColor.Fprintln(f.out, "No valid test cases (.in/.out pairs) found.")
		return
	}

	passColor.Fprintf(f.out, "Found %d test case(s) in %s:\n", len(suite.Cases), suite.Dir)
	for i, tc := range suite.Cases {
		marker := ""
		if _, ok := failed[tc.ID]; ok {
			marker = " " + failColor.Sprint("[F]")
		}
		branch := "├── "
		if i == len(suite.Cases)-1 {
			branch = "└── "
		}
		fmt.Fprintf(f.out, "%s%s%s\n", branch, headerColor.Sprint(tc.ID), marker)
	}
}
