package physics

import "math"

// SpatialGrid is a uniform grid over a bounded area used to find nearby
// circles without scanning every body. Items are inserted by position and
// index; QueryAround visits every cell a circle of the given reach touches.
// Positions outside the area are clamped into the border cells.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of objects that fall within a grid cell.
// The slice is reused between queries (reset to [:0]).
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a grid covering worldW x worldH.
func NewSpatialGrid(worldW, worldH, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(worldW / cellSize))
	rows := int(math.Ceil(worldH / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given world position.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item whose cell intersects the square of
// half-size reach around (x, y). If fn returns true, iteration stops.
// Each item is visited once.
func (g *SpatialGrid) QueryAround(x, y, reach float64, fn func(index int) bool) {
	c0, r0 := g.posToCell(x-reach, y-reach)
	c1, r1 := g.posToCell(x+reach, y+reach)

	for r := r0; r <= r1; r++ {
		rowOffset := r * g.cols
		for c := c0; c <= c1; c++ {
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts world coordinates to grid cell coordinates,
// clamping to the valid range.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 || math.IsNaN(x) {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 || math.IsNaN(y) {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
