package core

// Run lengths that matter to the match engine.
const (
	MinRunLength    = 3 // Shortest run that clears
	BombRunLength   = 4 // Exactly this long spawns a bomb
	RocketRunLength = 5 // This long or longer spawns a rocket
	squareScore     = 4 // Points for a 2x2 block
)

// MatchRun is a maximal line of at least MinRunLength identical plain tiles.
type MatchRun struct {
	Axis   Axis
	Start  Coord // Leftmost cell for rows, topmost for columns
	Length int
	Symbol Symbol
}

// Cells returns the coordinates of the run, starting at Start.
func (m MatchRun) Cells() []Coord {
	out := make([]Coord, m.Length)
	for i := range out {
		if m.Axis == AxisRow {
			out[i] = At(m.Start.Row, m.Start.Col+i)
		} else {
			out[i] = At(m.Start.Row+i, m.Start.Col)
		}
	}
	return out
}

// Contains returns true if c lies on the run.
func (m MatchRun) Contains(c Coord) bool {
	if m.Axis == AxisRow {
		return c.Row == m.Start.Row && c.Col >= m.Start.Col && c.Col < m.Start.Col+m.Length
	}
	return c.Col == m.Start.Col && c.Row >= m.Start.Row && c.Row < m.Start.Row+m.Length
}

// spawnTile returns the power tile a run of this length earns, if any.
func (m MatchRun) spawnTile() (Cell, bool) {
	switch {
	case m.Length >= RocketRunLength:
		return Rocket(m.Axis), true
	case m.Length == BombRunLength:
		return Bomb(), true
	default:
		return Cell{}, false
	}
}

// Spawn places a power tile produced by a scan.
type Spawn struct {
	At   Coord
	Tile Cell
}

// ScanResult is the outcome of one pass of the match engine.
type ScanResult struct {
	Matches    []MatchRun
	Squares    []Coord // Top-left corners of bomb-eligible 2x2 blocks
	ScoreDelta int
	Spawns     []Spawn
	Cleared    []Cell // Pre-scan contents, one entry per cell per run or square
}

// Found reports whether the pass matched anything.
func (r ScanResult) Found() bool {
	return len(r.Matches) > 0 || len(r.Squares) > 0
}

// FindRuns returns every run on the board without modifying it.
// Rows are walked left-to-right first, then columns top-to-bottom.
func FindRuns(g *Grid) []MatchRun {
	var runs []MatchRun

	for r := 0; r < g.rows; r++ {
		start := 0
		for c := 1; c <= g.cols; c++ {
			if c < g.cols && g.Get(At(r, c)).Matches(g.Get(At(r, start))) {
				continue
			}
			if n := c - start; n >= MinRunLength {
				sym, _ := g.Get(At(r, start)).Symbol()
				runs = append(runs, MatchRun{Axis: AxisRow, Start: At(r, start), Length: n, Symbol: sym})
			}
			start = c
		}
	}

	for c := 0; c < g.cols; c++ {
		start := 0
		for r := 1; r <= g.rows; r++ {
			if r < g.rows && g.Get(At(r, c)).Matches(g.Get(At(start, c))) {
				continue
			}
			if n := r - start; n >= MinRunLength {
				sym, _ := g.Get(At(start, c)).Symbol()
				runs = append(runs, MatchRun{Axis: AxisColumn, Start: At(start, c), Length: n, Symbol: sym})
			}
			start = r
		}
	}

	return runs
}

// FindSquares returns the top-left corners of 2x2 blocks of identical plain
// tiles. The detector is not independent of the linear matches: a block
// sharing any cell with a run footprint is skipped, so runs take precedence
// and a cell is never scored twice by a run and a square. Blocks overlapping
// an earlier block in row-major order are skipped too.
func FindSquares(g *Grid, runs []MatchRun) []Coord {
	claimed := make(map[Coord]bool)
	for _, run := range runs {
		for _, c := range run.Cells() {
			claimed[c] = true
		}
	}

	var squares []Coord
	for r := 0; r < g.rows-1; r++ {
		for c := 0; c < g.cols-1; c++ {
			block := squareCells(At(r, c))
			first := g.Get(block[0])
			if !first.IsPlain() {
				continue
			}
			ok := true
			for _, bc := range block {
				if claimed[bc] || !g.Get(bc).Matches(first) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			for _, bc := range block {
				claimed[bc] = true
			}
			squares = append(squares, At(r, c))
		}
	}
	return squares
}

func squareCells(topLeft Coord) [4]Coord {
	return [4]Coord{
		topLeft,
		At(topLeft.Row, topLeft.Col+1),
		At(topLeft.Row+1, topLeft.Col),
		At(topLeft.Row+1, topLeft.Col+1),
	}
}

// HasMatches reports whether a scan of g would find anything.
func HasMatches(g *Grid) bool {
	runs := FindRuns(g)
	return len(runs) > 0 || len(FindSquares(g, runs)) > 0
}

// Scan detects runs and squares on a snapshot of the board, scores them,
// replaces every matched cell with a fresh symbol and places the earned
// power tiles. A board with nothing to match is left untouched.
func Scan(g *Grid, rng Source, alpha Alphabet) ScanResult {
	runs := FindRuns(g)
	squares := FindSquares(g, runs)

	res := ScanResult{Matches: runs, Squares: squares}
	if !res.Found() {
		return res
	}

	// Collect everything from the pre-scan board before writing to it.
	var footprint []Coord
	for _, run := range runs {
		res.ScoreDelta += run.Length
		for _, c := range run.Cells() {
			res.Cleared = append(res.Cleared, g.Get(c))
			footprint = append(footprint, c)
		}
	}
	for _, sq := range squares {
		res.ScoreDelta += squareScore
		for _, c := range squareCells(sq) {
			res.Cleared = append(res.Cleared, g.Get(c))
			footprint = append(footprint, c)
		}
	}

	rolled := make(map[Coord]bool, len(footprint))
	for _, c := range footprint {
		if rolled[c] {
			continue
		}
		rolled[c] = true
		g.Set(c, Plain(alpha.Roll(rng)))
	}

	inRun := make(map[Coord]bool)
	for _, run := range runs {
		for _, c := range run.Cells() {
			inRun[c] = true
		}
	}

	taken := make(map[Coord]bool)
	for _, run := range runs {
		tile, ok := run.spawnTile()
		if !ok {
			continue
		}
		at, ok := spawnCell(run, inRun, taken)
		if !ok {
			continue
		}
		taken[at] = true
		res.Spawns = append(res.Spawns, Spawn{At: at, Tile: tile})
	}
	for _, sq := range squares {
		taken[sq] = true
		res.Spawns = append(res.Spawns, Spawn{At: sq, Tile: Bomb()})
	}

	for _, sp := range res.Spawns {
		g.Set(sp.At, sp.Tile)
	}

	return res
}

// spawnCell picks where a run's power tile goes: the start cell, else the
// next free cell along the run, else the free run cell nearest the start
// within the connected run footprint (breadth-first). Every cell lies in at
// most two runs and qualifying runs have four or more cells, so a connected
// footprint always has a free cell left.
func spawnCell(run MatchRun, inRun, taken map[Coord]bool) (Coord, bool) {
	for _, c := range run.Cells() {
		if !taken[c] {
			return c, true
		}
	}

	seen := map[Coord]bool{run.Start: true}
	queue := []Coord{run.Start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if !taken[c] {
			return c, true
		}
		for _, n := range [4]Coord{
			At(c.Row, c.Col+1),
			At(c.Row+1, c.Col),
			At(c.Row, c.Col-1),
			At(c.Row-1, c.Col),
		} {
			if inRun[n] && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return Coord{}, false
}
