package execution

import (
	"encoding/json"
	"testing"

	"caserun/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		expected  []domain.Record
		result    any
		equal     bool
		index     int
		detailHas string
	}{
		{
			name:     "ints match decoded floats",
			expected: []domain.Record{[]any{1.0, 2.0, 3.0}},
			result:   []int{1, 2, 3},
			equal:    true,
			index:    -1,
		},
		{
			name:     "mapping key order is irrelevant",
			expected: []domain.Record{map[string]any{"a": 1.0, "b": "x"}},
			result:   map[string]any{"b": "x", "a": 1},
			equal:    true,
			index:    -1,
		},
		{
			name:     "scalar compared to first record only",
			expected: []domain.Record{"ok", "ignored"},
			result:   "ok",
			equal:    true,
			index:    -1,
		},
		{
			name:     "null result",
			expected: []domain.Record{nil},
			result:   nil,
			equal:    true,
			index:    -1,
		},
		{
			name:     "sequence order matters",
			expected: []domain.Record{[]any{1.0, 2.0}},
			result:   []int{2, 1},
			index:    0,
		},
		{
			name:     "string is not a number",
			expected: []domain.Record{1.0},
			result:   "1",
			index:    0,
		},
		{
			name:     "integer and decimal forms are equal",
			expected: []domain.Record{[]any{json.Number("1"), json.Number("2.50")}},
			result:   []float64{1.0, 2.5},
			equal:    true,
			index:    -1,
		},
		{
			name:     "large integers compare exactly",
			expected: []domain.Record{json.Number("9007199254740993")},
			result:   int64(9007199254740993),
			equal:    true,
			index:    -1,
		},
		{
			name:     "large integers beyond float64 precision differ",
			expected: []domain.Record{json.Number("9007199254740993")},
			result:   int64(9007199254740992),
			index:    0,
		},
		{
			name:     "tuple equal",
			expected: []domain.Record{1.0, "two"},
			result:   Tuple{1, "two"},
			equal:    true,
			index:    -1,
		},
		{
			name:      "tuple component differs",
			expected:  []domain.Record{1.0, "two", true},
			result:    Tuple{1, "three", true},
			index:     1,
			detailHas: "value 2 differs",
		},
		{
			name:      "tuple shorter than expected",
			expected:  []domain.Record{1.0, 2.0, 3.0},
			result:    Tuple{1, 2},
			index:     2,
			detailHas: "value 3 missing",
		},
		{
			name:      "tuple longer than expected",
			expected:  []domain.Record{1.0},
			result:    Tuple{1, 2},
			index:     1,
			detailHas: "unexpected value 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compare(tt.expected, tt.result)
			require.NoError(t, err)
			assert.Equal(t, tt.equal, c.Equal)
			assert.Equal(t, tt.index, c.Index)
			if tt.detailHas != "" {
				assert.Contains(t, c.Detail, tt.detailHas)
			}
		})
	}
}

func TestCompare_NotEncodable(t *testing.T) {
	_, err := Compare([]domain.Record{1.0}, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not JSON-encodable")

	_, err = Compare([]domain.Record{1.0}, Tuple{func() {}})
	require.Error(t, err)
}

func TestCompare_ExpectedIsNormalised(t *testing.T) {
	c, err := Compare([]domain.Record{[]any{1.0, 2.0}}, []int{1, 2})
	require.NoError(t, err)
	assert.True(t, c.Equal)
	assert.Equal(t, []any{json.Number("1"), json.Number("2")}, c.Expected)
}

func TestUnifiedDiff(t *testing.T) {
	assert.Empty(t, UnifiedDiff("[\n  1\n]", "[\n  1\n]"))

	diff := UnifiedDiff(Render([]any{1.0, 2.0}), Render([]any{1.0, 3.0}))
	assert.Contains(t, diff, "--- expected.out\n+++ actual.out\n")
	assert.Contains(t, diff, "-  2\n")
	assert.Contains(t, diff, "+  3\n")
}

func TestRender(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}", Render(map[string]any{"a": []any{1.0}}))
	assert.Equal(t, "null", Render(nil))
}
