package candidates

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"caserun/internal/domain"
	"caserun/internal/execution"
)

// Resolve finds the candidate named by source and function. Registered
// sources win; otherwise an executable file at source is run out of process.
func (r *Registry) Resolve(source, function string) (execution.Candidate, error) {
	key := SourceKey(source)
	if r.HasSource(key) {
		c, ok := r.Lookup(key, function)
		if !ok {
			return nil, domain.NewSetupError(domain.SetupFunction,
				"the candidate '%s' does not have a '%s' function (available: %s)",
				source, function, strings.Join(r.Functions(key), ", "))
		}
		return c, nil
	}

	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewSetupError(domain.SetupCandidateFile,
				"candidate file not found at '%s'", source)
		}
		return nil, domain.WrapSetupError(domain.SetupCandidateFile, err, "cannot access candidate")
	}
	if info.IsDir() {
		return nil, domain.NewSetupError(domain.SetupCandidateFile,
			"candidate path '%s' is not a file", source)
	}
	if info.Mode().Perm()&0111 == 0 {
		return nil, domain.NewSetupError(domain.SetupCandidateModule,
			"could not load candidate module '%s': it is not registered (known: %s) and '%s' is not executable",
			key, strings.Join(r.Sources(), ", "), source)
	}

	path, err := filepath.Abs(source)
	if err != nil {
		path = source
	}
	p := execution.NewProcess(path, function)
	p.Dir = filepath.Dir(path)
	return p, nil
}
