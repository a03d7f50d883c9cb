package maze

import (
	"encoding/binary"
	"errors"
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
)

// Cell holds the wall and visit flags of a single maze cell.
type Cell uint8

const (
	LeftWall Cell = 1 << iota
	TopWall
	RightWall
	BottomWall
	Visited

	AllWalls = LeftWall | TopWall | RightWall | BottomWall
)

// ErrInvalidArgument is wrapped by every size or position rejected by this package.
var ErrInvalidArgument = errors.New("maze: invalid argument")

// walls in neighbour scan order.
var walls = [4]Cell{LeftWall, TopWall, RightWall, BottomWall}

func (c Cell) delta() (dx, dy int) {
	switch c {
	case LeftWall:
		return -1, 0
	case TopWall:
		return 0, -1
	case RightWall:
		return 1, 0
	case BottomWall:
		return 0, 1
	}
	return 0, 0
}

func (c Cell) opposite() Cell {
	switch c {
	case LeftWall:
		return RightWall
	case TopWall:
		return BottomWall
	case RightWall:
		return LeftWall
	case BottomWall:
		return TopWall
	}
	return 0
}

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Maze is a width x height grid of cells stored row by row.
type Maze struct {
	Width  int
	Height int
	Cells  []Cell
}

// New returns a maze with every wall standing and no cell visited.
func New(width, height int) (*Maze, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidArgument, width, height)
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = AllWalls
	}
	return &Maze{Width: width, Height: height, Cells: cells}, nil
}

func (m *Maze) index(x, y int) int { return m.Width*y + x }

func (m *Maze) inBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns the cell at (x, y).
func (m *Maze) At(x, y int) Cell { return m.Cells[m.index(x, y)] }

// HasWall reports whether cell (x, y) still has the given wall.
func (m *Maze) HasWall(x, y int, wall Cell) bool {
	return m.Cells[m.index(x, y)]&wall != 0
}

// Open returns the in-bounds neighbours of (x, y) reachable through a
// cleared wall.
func (m *Maze) Open(x, y int) []Point {
	out := make([]Point, 0, 4)
	for _, w := range walls {
		dx, dy := w.delta()
		nx, ny := x+dx, y+dy
		if !m.inBounds(nx, ny) || m.HasWall(x, y, w) {
			continue
		}
		out = append(out, Point{nx, ny})
	}
	return out
}

// Passages counts open passages, each adjacent pair once.
func (m *Maze) Passages() int {
	n := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if x+1 < m.Width && !m.HasWall(x, y, RightWall) {
				n++
			}
			if y+1 < m.Height && !m.HasWall(x, y, BottomWall) {
				n++
			}
		}
	}
	return n
}

// Symmetric reports whether every shared wall is either present on both
// cells or cleared on both.
func (m *Maze) Symmetric() bool {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if x+1 < m.Width && m.HasWall(x, y, RightWall) != m.HasWall(x+1, y, LeftWall) {
				return false
			}
			if y+1 < m.Height && m.HasWall(x, y, BottomWall) != m.HasWall(x, y+1, TopWall) {
				return false
			}
		}
	}
	return true
}

// Reachable returns how many cells can be reached from (x, y) through
// open passages, (x, y) included.
func (m *Maze) Reachable(x, y int) int {
	if !m.inBounds(x, y) {
		return 0
	}
	seen := make([]bool, len(m.Cells))
	seen[m.index(x, y)] = true
	queue := []Point{{x, y}}
	count := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		count++
		for _, n := range m.Open(p.X, p.Y) {
			i := m.index(n.X, n.Y)
			if seen[i] {
				continue
			}
			seen[i] = true
			queue = append(queue, n)
		}
	}
	return count
}

// Fingerprint hashes the wall layout, ignoring visit flags. Two mazes of
// the same size with the same passages share a fingerprint.
func (m *Maze) Fingerprint() uint64 {
	buf := make([]byte, 8, 8+len(m.Cells))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(m.Width))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(m.Height))
	for _, c := range m.Cells {
		buf = append(buf, byte(c&AllWalls))
	}
	return xxhash.Sum64(buf)
}
