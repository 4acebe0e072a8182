package ui

import "caserun/internal/domain"

// Viewer displays stored results interactively
type Viewer interface {
	View(results *domain.TestResultsOutput) error
}
