package core

// DefaultMaxCascades caps the number of scan passes in one resolution.
const DefaultMaxCascades = 50

// ResolveResult accumulates every pass of one resolution.
type ResolveResult struct {
	ScoreDelta int
	Spawns     []Spawn
	Cleared    []Cell
	Passes     int  // Scan passes that found something
	Overflow   bool // Stopped at the cap with matches still on the board
}

// Compact applies gravity column by column: every empty cell takes the
// nearest non-empty cell above it. Returns true if anything moved.
func Compact(g *Grid) bool {
	moved := false
	for c := 0; c < g.cols; c++ {
		for r := g.rows - 1; r >= 0; r-- {
			if !g.Get(At(r, c)).IsEmpty() {
				continue
			}
			for k := r - 1; k >= 0; k-- {
				above := g.Get(At(k, c))
				if above.IsEmpty() {
					continue
				}
				g.Set(At(r, c), above)
				g.Set(At(k, c), Empty())
				moved = true
				break
			}
		}
	}
	return moved
}

// Refill rolls a fresh symbol into every empty cell, row-major.
// Returns the number of cells filled.
func Refill(g *Grid, rng Source, alpha Alphabet) int {
	n := 0
	for i, cell := range g.cells {
		if cell.IsEmpty() {
			g.cells[i] = Plain(alpha.Roll(rng))
			n++
		}
	}
	return n
}

// Resolve runs compaction, refill and scan until a scan finds nothing or
// maxPasses passes have matched. maxPasses <= 0 means DefaultMaxCascades.
// On overflow the board is left as it stands.
func Resolve(g *Grid, rng Source, alpha Alphabet, maxPasses int) ResolveResult {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxCascades
	}

	var res ResolveResult
	for {
		Compact(g)
		Refill(g, rng, alpha)

		if res.Passes >= maxPasses {
			res.Overflow = HasMatches(g)
			return res
		}

		scan := Scan(g, rng, alpha)
		if !scan.Found() {
			return res
		}

		res.Passes++
		res.ScoreDelta += scan.ScoreDelta
		res.Spawns = append(res.Spawns, scan.Spawns...)
		res.Cleared = append(res.Cleared, scan.Cleared...)
	}
}
