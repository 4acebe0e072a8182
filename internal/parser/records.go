package parser

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"caserun/internal/domain"
)

// maxLineSize bounds a single record line
const maxLineSize = 64 << 20

// LineParser parses files containing one JSON value per line
type LineParser struct{}

// NewLineParser creates a new LineParser
func NewLineParser() *LineParser {
	return &LineParser{}
}

// ParseFile parses a file containing one JSON value per line.
// Blank lines are skipped. Errors from opening the file are returned wrapped,
// so callers can test them with errors.Is(err, fs.ErrNotExist).
func (p *LineParser) ParseFile(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return p.parse(path, f)
}

// ParseReader parses records from r, using name in error messages
func (p *LineParser) ParseReader(name string, r io.Reader) ([]domain.Record, error) {
	return p.parse(name, r)
}

func (p *LineParser) parse(name string, r io.Reader) ([]domain.Record, error) {
	records := []domain.Record{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		record, err := ParseLine(line)
		if err != nil {
			return nil, &domain.ParseError{Path: name, Line: lineNo, Err: err}
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return records, nil
}

// ParseLine decodes a single JSON value. Trailing data after the value is an error.
// Numbers are kept as json.Number so integers beyond float64 precision stay exact.
func ParseLine(line string) (domain.Record, error) {
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()

	var record domain.Record
	if err := dec.Decode(&record); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		return nil, err
	}
	return record, nil
}
