package parser

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"caserun/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.in")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLineParser_ParseFile(t *testing.T) {
	p := NewLineParser()

	tests := []struct {
		name     string
		content  string
		expected []domain.Record
	}{
		{
			name:     "single array",
			content:  "[5, 3, 1, 4, 2]\n",
			expected: []domain.Record{[]any{json.Number("5"), json.Number("3"), json.Number("1"), json.Number("4"), json.Number("2")}},
		},
		{
			name:    "one value per line",
			content: "1\n\"two\"\ntrue\nnull\n{\"k\": [1, 2]}\n",
			expected: []domain.Record{
				json.Number("1"),
				"two",
				true,
				nil,
				map[string]any{"k": []any{json.Number("1"), json.Number("2")}},
			},
		},
		{
			name:     "blank and whitespace lines skipped",
			content:  "\n   \n\t1\t\n\n2   \n\r\n",
			expected: []domain.Record{json.Number("1"), json.Number("2")},
		},
		{
			name:     "no trailing newline",
			content:  "42",
			expected: []domain.Record{json.Number("42")},
		},
		{
			name:     "empty file",
			content:  "",
			expected: []domain.Record{},
		},
		{
			name:     "only blank lines",
			content:  "\n\n  \n",
			expected: []domain.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := p.ParseFile(writeFile(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, records)
		})
	}
}

func TestLineParser_ParseFile_Errors(t *testing.T) {
	p := NewLineParser()

	t.Run("malformed line reports its position", func(t *testing.T) {
		path := writeFile(t, "[1, 2]\n\n{not json}\n")
		_, err := p.ParseFile(path)
		require.Error(t, err)

		var parseErr *domain.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, path, parseErr.Path)
		assert.Equal(t, 3, parseErr.Line)
	})

	t.Run("two values on one line", func(t *testing.T) {
		_, err := p.ParseFile(writeFile(t, "1 2\n"))
		var parseErr *domain.ParseError
		assert.True(t, errors.As(err, &parseErr))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := p.ParseFile(filepath.Join(t.TempDir(), "missing.in"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})
}

func TestLineParser_LongLine(t *testing.T) {
	values := make([]string, 0, 200000)
	for i := 0; i < 200000; i++ {
		values = append(values, "1")
	}
	line := "[" + strings.Join(values, ",") + "]"

	records, err := NewLineParser().ParseReader("long.in", strings.NewReader(line))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Len(t, records[0], 200000)
}

func TestParseLine_RoundTrip(t *testing.T) {
	lines := []string{
		`[5, 3, 1, 4, 2]`,
		`{"b": 1, "a": [true, null, "x"]}`,
		`-12.5e3`,
		`"unicode ✓"`,
		`[[], {}, [[1]]]`,
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			first, err := ParseLine(line)
			require.NoError(t, err)

			encoded, err := json.Marshal(first)
			require.NoError(t, err)

			second, err := ParseLine(string(encoded))
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestParseLine_NumbersKeepPrecision(t *testing.T) {
	tests := []struct {
		line     string
		expected domain.Record
	}{
		{line: "9007199254740993", expected: json.Number("9007199254740993")},
		{line: "-9223372036854775808", expected: json.Number("-9223372036854775808")},
		{line: "[1.0, 2.50]", expected: []any{json.Number("1.0"), json.Number("2.50")}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			record, err := ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, record)
		})
	}
}

func TestParseLine_TrailingData(t *testing.T) {
	for _, line := range []string{"1 2", "[1] x", "{} {}"} {
		t.Run(line, func(t *testing.T) {
			_, err := ParseLine(line)
			assert.Error(t, err)
		})
	}
}
