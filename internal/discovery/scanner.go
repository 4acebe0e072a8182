package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"caserun/internal/domain"
)

// Scanner pairs input and expected-output files in a test directory
type Scanner struct {
	inputSuffix  string
	outputSuffix string
}

// NewScanner creates a new Scanner with the given file suffixes
func NewScanner(inputSuffix, outputSuffix string) *Scanner {
	return &Scanner{
		inputSuffix:  inputSuffix,
		outputSuffix: outputSuffix,
	}
}

// Scan finds all test cases in dir. Only dir itself is scanned, not its subdirectories.
// Input files without a matching output file are reported as warnings.
func (s *Scanner) Scan(dir string) (*domain.Suite, []domain.DiscoveryWarning, error) {
	dir = filepath.Clean(dir)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, nil, &domain.DirectoryError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, nil, &domain.DirectoryError{Path: dir, Err: errors.New("not a directory")}
	}

	// os.ReadDir returns entries sorted by filename
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, &domain.DirectoryError{Path: dir, Err: err}
	}

	suite := &domain.Suite{Dir: dir}
	var warnings []domain.DiscoveryWarning

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, s.inputSuffix) {
			continue
		}

		id := strings.TrimSuffix(name, s.inputSuffix)
		inputPath := filepath.Join(dir, name)
		outputPath := filepath.Join(dir, id+s.outputSuffix)

		ok, err := isFile(outputPath)
		if err != nil {
			return nil, nil, &domain.DirectoryError{Path: dir, Err: err}
		}
		if !ok {
			warnings = append(warnings, domain.DiscoveryWarning{
				Path:    inputPath,
				Message: fmt.Sprintf("Found %s but no corresponding %s file. Skipping.", name, id+s.outputSuffix),
			})
			continue
		}

		suite.Cases = append(suite.Cases, domain.TestCase{
			ID:         id,
			InputPath:  inputPath,
			OutputPath: outputPath,
		})
	}

	return suite, warnings, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}
