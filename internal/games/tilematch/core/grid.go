package core

import "fmt"

// Grid is the game board. Cells are stored in row-major order:
// index = row*cols + col. Dimensions are fixed for the grid's lifetime.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid creates a grid with every cell empty.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// NewGridFromRows builds a grid from a rectangular slice of rows.
func NewGridFromRows(rows [][]Cell) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("tilematch: empty grid")
	}
	g := NewGrid(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != g.cols {
			return nil, fmt.Errorf("tilematch: row %d has %d cells, want %d", r, len(row), g.cols)
		}
		copy(g.cells[r*g.cols:], row)
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) index(c Coord) int {
	return c.Row*g.cols + c.Col
}

// InBounds returns true if the coordinate is on the board.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Get returns the cell at c, or Empty when c is off the board.
func (g *Grid) Get(c Coord) Cell {
	if !g.InBounds(c) {
		return Empty()
	}
	return g.cells[g.index(c)]
}

// Set replaces the cell at c. Off-board coordinates are ignored.
func (g *Grid) Set(c Coord, cell Cell) {
	if g.InBounds(c) {
		g.cells[g.index(c)] = cell
	}
}

// ForEach calls fn for every cell in row-major order.
func (g *Grid) ForEach(fn func(Coord, Cell)) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			fn(At(r, c), g.cells[r*g.cols+c])
		}
	}
}

// Swap exchanges the contents of two cells.
func (g *Grid) Swap(a, b Coord) error {
	if !g.InBounds(a) || !g.InBounds(b) || a == b {
		return fmt.Errorf("swap %v with %v: %w", a, b, ErrInvalidCoordinate)
	}
	ia, ib := g.index(a), g.index(b)
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
	return nil
}

// Fill rolls a fresh plain symbol into every cell. Runs are not avoided.
func (g *Grid) Fill(rng Source, alpha Alphabet) {
	for i := range g.cells {
		g.cells[i] = Plain(alpha.Roll(rng))
	}
}

// Count returns the number of cells for which pred is true.
func (g *Grid) Count(pred func(Cell) bool) int {
	n := 0
	for _, cell := range g.cells {
		if pred(cell) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Cells returns a copy of the board as rows of cells.
func (g *Grid) Cells() [][]Cell {
	out := make([][]Cell, g.rows)
	for r := range out {
		out[r] = make([]Cell, g.cols)
		copy(out[r], g.cells[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, cell := range g.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}
