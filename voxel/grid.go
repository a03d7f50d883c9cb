package voxel

import "strings"

// CellSize is the voxel pitch of one maze cell; neighbouring cells share
// their wall line.
const CellSize = 3

// Grid is a 2D solid/empty raster, Cells[y*Width+x].
type Grid struct {
	Width  int
	Height int
	Cells  []bool
}

// NewGrid returns an empty grid.
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, Cells: make([]bool, width*height)}
}

func (g *Grid) At(x, y int) bool { return g.Cells[g.Width*y+x] }

func (g *Grid) Set(x, y int, solid bool) { g.Cells[g.Width*y+x] = solid }

// Solid counts the solid cells.
func (g *Grid) Solid() int {
	n := 0
	for _, c := range g.Cells {
		if c {
			n++
		}
	}
	return n
}

// Render draws the grid one row per line.
func (g *Grid) Render(fill, empty string) string {
	var sb strings.Builder
	sb.Grow((g.Width*len(fill) + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) {
				sb.WriteString(fill)
			} else {
				sb.WriteString(empty)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String renders solid cells as full blocks.
func (g *Grid) String() string { return g.Render("██", "  ") }
