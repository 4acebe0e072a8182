package domain

// TestCase pairs an input file with its expected-output file
type TestCase struct {
	ID         string // Basename shared by both files, unique per directory
	InputPath  string // Path to the <id>.in file
	OutputPath string // Path to the <id>.out file
}

// Suite is the ordered set of test cases found in one directory
type Suite struct {
	Dir   string
	Cases []TestCase
}

// Lookup returns the case registered under id
func (s *Suite) Lookup(id string) (TestCase, bool) {
	for _, tc := range s.Cases {
		if tc.ID == id {
			return tc, true
		}
	}
	return TestCase{}, false
}

// IDs returns the case identifiers in discovery order
func (s *Suite) IDs() []string {
	ids := make([]string, 0, len(s.Cases))
	for _, tc := range s.Cases {
		ids = append(ids, tc.ID)
	}
	return ids
}

// DiscoveryWarning reports an input file that could not be paired
type DiscoveryWarning struct {
	Path    string
	Message string
}

func (w DiscoveryWarning) String() string {
	return w.Message
}
