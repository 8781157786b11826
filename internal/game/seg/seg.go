// Package seg lays out seven-segment counters.
package seg

type Segment int

// Segments in the usual a..g order: top, upper right, lower right, bottom,
// lower left, upper left, middle.
const (
	A Segment = iota
	B
	C
	D
	E
	F
	G
	Count
)

// Advance is the horizontal distance between digit cells; Height is the
// cell height.
const (
	Advance = 18
	Height  = 24
)

// Rect is a segment bar relative to its digit cell.
type Rect struct {
	X, Y, W, H float64
}

var Bars = [Count]Rect{
	A: {3, 0, 10, 2},
	B: {13, 2, 2, 9},
	C: {13, 13, 2, 9},
	D: {3, 22, 10, 2},
	E: {1, 13, 2, 9},
	F: {1, 2, 2, 9},
	G: {3, 11, 10, 2},
}

// lit holds one bit per segment, A in bit 0.
var lit = [10]uint8{
	0b0111111,
	0b0000110,
	0b1011011,
	0b1001111,
	0b1100110,
	0b1101101,
	0b1111101,
	0b0000111,
	0b1111111,
	0b1101111,
}

// On reports whether segment s is lit for digit d. Anything outside 0-9
// shows blank.
func On(d int, s Segment) bool {
	if d < 0 || d > 9 {
		return false
	}
	return lit[d]&(1<<s) != 0
}

// Digits splits v into n zero-padded digits, clamped to what n digits can
// show.
func Digits(v, n int) []int {
	out := make([]int, n)
	limit := 1
	for i := 0; i < n; i++ {
		limit *= 10
	}
	v = max(0, min(v, limit-1))
	for i := n - 1; i >= 0; i-- {
		out[i] = v % 10
		v /= 10
	}
	return out
}
