package parser

import "caserun/internal/domain"

// Parser reads a test file into its ordered records
type Parser interface {
	ParseFile(path string) ([]domain.Record, error)
}
