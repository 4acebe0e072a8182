package sorting

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBubbleSort(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected []float64
	}{
		{name: "unsorted", input: []float64{5, 3, 1, 4, 2}, expected: []float64{1, 2, 3, 4, 5}},
		{name: "already sorted", input: []float64{1, 2, 3}, expected: []float64{1, 2, 3}},
		{name: "reverse", input: []float64{3, 2, 1}, expected: []float64{1, 2, 3}},
		{name: "duplicates and negatives", input: []float64{2, -1, 2, 0.5}, expected: []float64{-1, 0.5, 2, 2}},
		{name: "empty", input: []float64{}, expected: []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BubbleSort(tt.input))
		})
	}
}

func TestBubbleSort_DoesNotModifyInput(t *testing.T) {
	input := []float64{3, 1, 2}
	original := slices.Clone(input)
	BubbleSort(input)
	assert.Equal(t, original, input)
}
