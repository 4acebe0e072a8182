package execution

import (
	"encoding/json"
	"fmt"
	"math/big"

	"caserun/internal/domain"
	"caserun/internal/parser"

	"github.com/google/go-cmp/cmp"
)

// Comparison is the result of matching a candidate result against the expected records
type Comparison struct {
	Equal    bool
	Index    int    // First differing position, -1 when equal
	Detail   string // Why the values differ, empty when equal
	Expected any    // Normalised value(s) the result was compared against
	Actual   any    // Normalised result
}

// numbersByValue treats 1, 1.0 and 1e0 as equal without rounding through float64
var numbersByValue = cmp.Comparer(func(a, b json.Number) bool {
	x, okx := new(big.Rat).SetString(string(a))
	y, oky := new(big.Rat).SetString(string(b))
	if !okx || !oky {
		return a == b
	}
	return x.Cmp(y) == 0
})

func recordsEqual(a, b domain.Record) bool {
	return cmp.Equal(a, b, numbersByValue)
}

// Compare matches result against expected. A Tuple is compared component by
// component; any other value is compared against the first expected record.
// Both sides are normalised through JSON first, so only the JSON shape counts.
func Compare(expected []domain.Record, result any) (Comparison, error) {
	want, err := normalizeAll(expected)
	if err != nil {
		return Comparison{}, fmt.Errorf("expected output: %w", err)
	}

	if tuple, ok := result.(Tuple); ok {
		return compareTuple(want, tuple)
	}

	actual, err := normalize(result)
	if err != nil {
		return Comparison{}, err
	}

	var first domain.Record
	if len(want) > 0 {
		first = want[0]
	}

	c := Comparison{Index: -1, Expected: first, Actual: actual}
	if recordsEqual(first, actual) {
		c.Equal = true
		return c, nil
	}
	c.Index = 0
	return c, nil
}

func compareTuple(expected []domain.Record, tuple Tuple) (Comparison, error) {
	actual := make([]any, len(tuple))
	for i, v := range tuple {
		n, err := normalize(v)
		if err != nil {
			return Comparison{}, fmt.Errorf("value %d: %w", i+1, err)
		}
		actual[i] = n
	}

	c := Comparison{Index: -1, Expected: []any(expected), Actual: actual}

	common := min(len(expected), len(actual))
	for i := 0; i < common; i++ {
		if !recordsEqual(expected[i], actual[i]) {
			c.Index = i
			c.Detail = fmt.Sprintf("value %d differs", i+1)
			return c, nil
		}
	}

	switch {
	case len(actual) < len(expected):
		c.Index = common
		c.Detail = fmt.Sprintf("value %d missing: expected %d values, got %d", common+1, len(expected), len(actual))
	case len(actual) > len(expected):
		c.Index = common
		c.Detail = fmt.Sprintf("unexpected value %d: expected %d values, got %d", common+1, len(expected), len(actual))
	default:
		c.Equal = true
	}
	return c, nil
}

func normalizeAll(records []domain.Record) ([]domain.Record, error) {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		n, err := normalize(r)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// normalize converts a Go value to its decoded JSON form, numbers kept exact
func normalize(v any) (domain.Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("result is not JSON-encodable: %w", err)
	}
	out, err := parser.ParseLine(string(data))
	if err != nil {
		return nil, fmt.Errorf("result is not JSON-encodable: %w", err)
	}
	return out, nil
}
