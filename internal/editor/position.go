package editor

// Position is a 0-based cell location: X is the column, Y the row.
// Coordinates never go below zero.
type Position struct {
	X, Y int
}

// saturatingSub returns a-b, or 0 if that would be negative.
func saturatingSub(a, b int) int {
	if a <= b {
		return 0
	}
	return a - b
}

// clamp limits v to [0, hi].
func clamp(v, hi int) int {
	return min(max(v, 0), max(hi, 0))
}
