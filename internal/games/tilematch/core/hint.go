package core

// Hint is a swap that would produce at least one match.
type Hint struct {
	A Coord
	B Coord
}

// FindHint searches row-major for the first adjacent swap that creates a
// match. The grid is restored before returning.
func FindHint(g *Grid) (Hint, bool) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			a := At(r, c)
			for _, b := range []Coord{At(r, c+1), At(r+1, c)} {
				if !g.InBounds(b) || g.Get(a) == g.Get(b) {
					continue
				}
				g.Swap(a, b) //nolint:errcheck // both in bounds and distinct
				found := HasMatches(g)
				g.Swap(a, b) //nolint:errcheck // restore
				if found {
					return Hint{A: a, B: b}, true
				}
			}
		}
	}
	return Hint{}, false
}
