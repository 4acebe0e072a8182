// Package sorting holds the sample unit under test shipped with caserun.
package sorting

// BubbleSort returns a sorted copy of values in ascending order.
// The input slice is not modified.
func BubbleSort(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)

	n := len(sorted)
	for i := 0; i < n; i++ {
		swapped := false
		// Last i elements are already in place
		for j := 0; j < n-i-1; j++ {
			if sorted[j] > sorted[j+1] {
				sorted[j], sorted[j+1] = sorted[j+1], sorted[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return sorted
}
