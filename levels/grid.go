package levels

// Grid is a row-major collision map. A cell value of 1 is solid.
type Grid struct {
	Cols  int
	Rows  int
	Cells []uint8
}

const Solid uint8 = 1

func NewGrid(cols, rows int) Grid {
	return Grid{Cols: cols, Rows: rows, Cells: make([]uint8, cols*rows)}
}

func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Cols && y < g.Rows
}

func (g Grid) At(x, y int) (uint8, bool) {
	if !g.InBounds(x, y) || len(g.Cells) != g.Cols*g.Rows {
		return 0, false
	}
	return g.Cells[y*g.Cols+x], true
}

// Solid reports false for out-of-range cells.
func (g Grid) Solid(x, y int) bool {
	v, ok := g.At(x, y)
	return ok && v == Solid
}

func (g Grid) Set(x, y int, v uint8) bool {
	if !g.InBounds(x, y) || len(g.Cells) != g.Cols*g.Rows {
		return false
	}
	g.Cells[y*g.Cols+x] = v
	return true
}

// Clone returns a grid that shares no memory with g.
func (g Grid) Clone() Grid {
	out := g
	out.Cells = append([]uint8(nil), g.Cells...)
	return out
}
