package board

const minRun = 3

// Match is a contiguous run of at least three same-type cells in one row or
// one column.
type Match []Cell

var neighbours = [4]Cell{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// FindMatches scans rows, then columns. A cell in both a horizontal and a
// vertical run appears in both matches.
func (b *Board) FindMatches() []Match {
	var matches []Match

	for y := 0; y < b.H; y++ {
		x := 0
		for x < b.W-2 {
			t, ok := b.typeAt(x, y)
			if !ok {
				x++
				continue
			}
			n := 1
			for x+n < b.W {
				nt, ok := b.typeAt(x+n, y)
				if !ok || nt != t {
					break
				}
				n++
			}
			if n >= minRun {
				m := make(Match, n)
				for i := range m {
					m[i] = Cell{x + i, y}
				}
				matches = append(matches, m)
				x += n
				continue
			}
			x++
		}
	}

	for x := 0; x < b.W; x++ {
		y := 0
		for y < b.H-2 {
			t, ok := b.typeAt(x, y)
			if !ok {
				y++
				continue
			}
			n := 1
			for y+n < b.H {
				nt, ok := b.typeAt(x, y+n)
				if !ok || nt != t {
					break
				}
				n++
			}
			if n >= minRun {
				m := make(Match, n)
				for i := range m {
					m[i] = Cell{x, y + i}
				}
				matches = append(matches, m)
				y += n
				continue
			}
			y++
		}
	}

	return matches
}

// FindMove returns the first swap, in row-major order over the four
// neighbours, that produces a match.
func (b *Board) FindMove() (Cell, Cell, bool) {
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			for _, d := range neighbours {
				nx, ny := x+d.X, y+d.Y
				if !b.in(nx, ny) {
					continue
				}
				b.rawSwap(x, y, nx, ny)
				found := len(b.FindMatches()) > 0
				b.rawSwap(x, y, nx, ny)
				if found {
					return Cell{x, y}, Cell{nx, ny}, true
				}
			}
		}
	}
	return Cell{}, Cell{}, false
}

// HasPossibleMoves is expensive: up to W*H*4 full scans.
func (b *Board) HasPossibleMoves() bool {
	_, _, ok := b.FindMove()
	return ok
}
