package ui

import (
	"fmt"
	"io"
	"strings"

	"caserun/internal/domain"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Saver persists the resolved flags after they are toggled
type Saver interface {
	SaveOutput(output *domain.TestResultsOutput) error
}

var _ Viewer = (*FailureViewer)(nil)

// FailureViewer displays stored case failures in an interactive TUI
type FailureViewer struct {
	saver Saver
	out   io.Writer
	// errs collects save errors so they can be reported after the TUI exits
	errs []error
}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer(saver Saver, out io.Writer) *FailureViewer {
	return &FailureViewer{saver: saver, out: out}
}

// View displays the failures of results
func (fv *FailureViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		passColor.Fprintln(fv.out, "✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, failure := range results.Details {
		list.AddItem(failureListText(i, failure), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(headerText(results))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(results.Details) {
			return
		}
		failure := results.Details[index]
		statsView.SetText(formatFailureStats(results.Meta, failure))
		detailsView.SetText(formatFailureDetails(failure)).ScrollToBeginning()
	}

	toggle := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(results.Details) {
			return
		}
		ToggleResolved(results, index)
		list.SetItemText(index, failureListText(index, results.Details[index]), "")
		updateHeader()
		updateDetails()
		if err := fv.saver.SaveOutput(results); err != nil {
			fv.errs = append(fv.errs, err)
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'r', 'R':
				toggle()
				return nil
			case 'q':
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if len(fv.errs) > 0 {
		return fmt.Errorf("save resolved status: %w", fv.errs[len(fv.errs)-1])
	}
	return nil
}

// ToggleResolved flips the resolved flag of the failure at index
func ToggleResolved(results *domain.TestResultsOutput, index int) {
	results.Details[index].Resolved = !results.Details[index].Resolved
}

func countUnresolved(results *domain.TestResultsOutput) int {
	count := 0
	for _, f := range results.Details {
		if !f.Resolved {
			count++
		}
	}
	return count
}

func headerText(results *domain.TestResultsOutput) string {
	return fmt.Sprintf(" Case Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, q quit ",
		len(results.Details), countUnresolved(results))
}

func failureListText(index int, failure domain.TestFailure) string {
	name := tview.Escape(failure.CaseID)
	if name == "" {
		name = fmt.Sprintf("Case %d", index+1)
	}
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

// formatFailureStats formats the stats header for a failure
func formatFailureStats(meta domain.TestResultsMeta, failure domain.TestFailure) string {
	return fmt.Sprintf("[cyan]candidate:[white] [yellow]%s[white]::[yellow]%s[white]\n[cyan]case:[white] [yellow]%s[white] [gray](%s)[white]\n",
		tview.Escape(meta.Candidate), tview.Escape(meta.Function),
		tview.Escape(failure.CaseID), failure.Kind)
}

// formatFailureDetails formats a failure using tview color tags
func formatFailureDetails(failure domain.TestFailure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ Case: %s[white]\n\n", tview.Escape(failure.CaseID))
	fmt.Fprintf(&b, "[cyan]Input:[white]  %s\n", tview.Escape(failure.InputPath))
	fmt.Fprintf(&b, "[cyan]Output:[white] %s\n\n", tview.Escape(failure.OutputPath))
	fmt.Fprintf(&b, "[yellow]Reason:[white]\n%s\n\n", tview.Escape(failure.Reason))

	if failure.Expected != "" {
		fmt.Fprintf(&b, "[yellow]Expected:[white]\n%s\n\n", tview.Escape(failure.Expected))
	}
	if failure.Actual != "" {
		fmt.Fprintf(&b, "[yellow]Actual:[white]\n%s\n\n", tview.Escape(failure.Actual))
	}
	if failure.Diff != "" {
		b.WriteString("[yellow]Diff (- expected, + actual):[white]\n")
		for _, line := range strings.Split(strings.TrimSuffix(failure.Diff, "\n"), "\n") {
			escaped := tview.Escape(line)
			switch {
			case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
				fmt.Fprintf(&b, "[gray]%s[white]\n", escaped)
			case strings.HasPrefix(line, "-"):
				fmt.Fprintf(&b, "[red]%s[white]\n", escaped)
			case strings.HasPrefix(line, "+"):
				fmt.Fprintf(&b, "[green]%s[white]\n", escaped)
			case strings.HasPrefix(line, "@@"):
				fmt.Fprintf(&b, "[cyan]%s[white]\n", escaped)
			default:
				fmt.Fprintf(&b, "%s\n", escaped)
			}
		}
	}
	return b.String()
}
