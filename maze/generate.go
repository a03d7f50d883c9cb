package maze

import (
	"fmt"
	"math/rand"
)

// Source picks a uniform index in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

type globalSource struct{}

func (globalSource) Intn(n int) int { return rand.Intn(n) }

// frame is one level of the carving walk: the cell being expanded and the
// neighbours that were unvisited when it was entered.
type frame struct {
	x, y       int
	candidates [4]Cell
	n          int
}

func (f *frame) take(i int) Cell {
	w := f.candidates[i]
	copy(f.candidates[i:f.n], f.candidates[i+1:f.n])
	f.n--
	return w
}

func (m *Maze) enter(x, y int) frame {
	m.Cells[m.index(x, y)] |= Visited
	f := frame{x: x, y: y}
	for _, w := range walls {
		dx, dy := w.delta()
		nx, ny := x+dx, y+dy
		if !m.inBounds(nx, ny) || m.Cells[m.index(nx, ny)]&Visited != 0 {
			continue
		}
		f.candidates[f.n] = w
		f.n++
	}
	return f
}

// Generate carves a perfect maze with a randomized depth-first walk that
// starts at (startX, startY). The walk keeps its own stack, so its depth
// is bounded by the cell count and not by the goroutine stack.
// A nil src uses the math/rand global source.
func Generate(width, height, startX, startY int, src Source) (*Maze, error) {
	m, err := New(width, height)
	if err != nil {
		return nil, err
	}
	if !m.inBounds(startX, startY) {
		return nil, fmt.Errorf("%w: start (%d,%d) outside %dx%d", ErrInvalidArgument, startX, startY, width, height)
	}
	if src == nil {
		src = globalSource{}
	}

	stack := make([]frame, 1, width*height)
	stack[0] = m.enter(startX, startY)
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		wall := top.take(src.Intn(top.n))
		dx, dy := wall.delta()
		nx, ny := top.x+dx, top.y+dy
		// reached through a sibling branch after the scan
		if m.Cells[m.index(nx, ny)]&Visited != 0 {
			continue
		}
		m.Cells[m.index(top.x, top.y)] &^= wall
		m.Cells[m.index(nx, ny)] &^= wall.opposite()
		stack = append(stack, m.enter(nx, ny))
	}
	return m, nil
}
