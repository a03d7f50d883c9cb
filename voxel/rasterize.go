package voxel

import "github.com/greatgamegal/mazematic/maze"

// Rasterize draws m onto a (1+3w) x (1+3h) grid. Cell (x, y) owns the
// block starting at (1+3x, 1+3y); each standing wall becomes a solid
// segment on the matching edge and every lattice corner is solid. The
// result then goes through FillCorners.
func Rasterize(m *maze.Maze) *Grid {
	g := NewGrid(1+CellSize*m.Width, 1+CellSize*m.Height)
	for y := 0; y <= m.Height; y++ {
		for x := 0; x <= m.Width; x++ {
			g.Set(CellSize*x, CellSize*y, true)
		}
	}
	for x := 0; x < m.Width; x++ {
		gx := 1 + CellSize*x
		for y := 0; y < m.Height; y++ {
			gy := 1 + CellSize*y
			cell := m.At(x, y)
			for i := 0; i < CellSize; i++ {
				if cell&maze.LeftWall != 0 {
					g.Set(gx-1, gy+i, true)
				}
				if cell&maze.TopWall != 0 {
					g.Set(gx+i, gy-1, true)
				}
				if cell&maze.RightWall != 0 {
					g.Set(gx+2, gy+i, true)
				}
				if cell&maze.BottomWall != 0 {
					g.Set(gx+i, gy+2, true)
				}
			}
		}
	}
	FillCorners(g)
	return g
}

// FillCorners makes one sweep over the interior of g and fills every empty
// voxel whose right and lower neighbours are solid while the diagonal
// between them is empty. Such a voxel is the missing corner of a wall end.
// A fill only changes neighbours of voxels already visited, so one sweep
// reaches the fixed point.
func FillCorners(g *Grid) {
	for x := 1; x < g.Width-1; x++ {
		for y := 1; y < g.Height-1; y++ {
			if g.At(x+1, y) && g.At(x, y+1) && !g.At(x+1, y+1) {
				g.Set(x, y, true)
			}
		}
	}
}
