package voxel

import "fmt"

// Vertex is a mesh corner tagged with the block it belongs to.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Block    Block
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

type face struct {
	normal [3]float32
	u, v   int
	du, dv [3]int
}

var faces = []face{
	{[3]float32{1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{-1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, -1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 0, 1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
	{[3]float32{0, 0, -1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
}

func (m *Mesh) addQuad(f face, start [3]int, w, h int, b Block, perp int) {
	base := [3]float32{}
	base[perp] = float32(start[0])
	if f.normal[perp] > 0 {
		base[perp]++
	}
	base[f.u] = float32(start[1])
	base[f.v] = float32(start[2])

	corner := func(su, sv int) [3]float32 {
		var p [3]float32
		for i := range p {
			p[i] = base[i] + float32(f.du[i]*su+f.dv[i]*sv)
		}
		return p
	}
	verts := [4]Vertex{
		{Position: base, Normal: f.normal, Block: b},
		{Position: corner(h, 0), Normal: f.normal, Block: b},
		{Position: corner(h, w), Normal: f.normal, Block: b},
		{Position: corner(0, w), Normal: f.normal, Block: b},
	}
	if (f.normal[perp] < 0) != (perp == 1) {
		verts[1], verts[3] = verts[3], verts[1]
	}

	i := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, verts[:]...)
	m.Indices = append(m.Indices, i, i+1, i+2, i, i+2, i+3)
}

// Positions returns the vertex positions in index order.
func (m *Mesh) Positions() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Position
	}
	return out
}

// Normals returns the flat face normal of every vertex. Quads never share
// vertices, so each vertex carries the normal of its own face.
func (m *Mesh) Normals() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Normal
	}
	return out
}

// Colors returns the palette colour of every vertex and whether any of
// them is translucent.
func (m *Mesh) Colors() ([][4]float32, bool, error) {
	out := make([][4]float32, len(m.Vertices))
	translucent := false
	for i, v := range m.Vertices {
		if int(v.Block) >= len(Palette) {
			return nil, false, fmt.Errorf("%w: block %d not in palette", ErrInvalidArgument, v.Block)
		}
		rgba, err := ParseHexColor(Palette[v.Block].Color)
		if err != nil {
			return nil, false, err
		}
		out[i] = rgba
		translucent = translucent || rgba[3] < 1
	}
	return out, translucent, nil
}

// GenerateMesh builds a greedy mesh of the visible block faces of v.
// Adjacent coplanar faces of the same block are merged into one quad.
func GenerateMesh(v *Volume) *Mesh {
	mesh := &Mesh{}
	dims := [3]int{v.Width, v.Height, v.Depth}

	for _, f := range faces {
		perp := 3 - f.u - f.v
		mask := make([][]Block, dims[f.u])
		done := make([][]bool, dims[f.u])
		for i := range mask {
			mask[i] = make([]Block, dims[f.v])
			done[i] = make([]bool, dims[f.v])
		}

		for p := 0; p < dims[perp]; p++ {
			for u := 0; u < dims[f.u]; u++ {
				for w := 0; w < dims[f.v]; w++ {
					mask[u][w] = Air
					done[u][w] = false

					var pos [3]int
					pos[f.u], pos[f.v], pos[perp] = u, w, p
					b := v.At(pos[0], pos[1], pos[2])
					if b == Air {
						continue
					}
					adj := pos
					if f.normal[perp] < 0 {
						adj[perp]--
					} else {
						adj[perp]++
					}
					if v.At(adj[0], adj[1], adj[2]) == Air {
						mask[u][w] = b
					}
				}
			}

			for u := 0; u < dims[f.u]; u++ {
				for w := 0; w < dims[f.v]; {
					b := mask[u][w]
					if b == Air || done[u][w] {
						w++
						continue
					}
					width := 1
					for w+width < dims[f.v] && mask[u][w+width] == b && !done[u][w+width] {
						width++
					}
					height := 1
				grow:
					for u+height < dims[f.u] {
						for k := w; k < w+width; k++ {
							if mask[u+height][k] != b || done[u+height][k] {
								break grow
							}
						}
						height++
					}
					for hu := u; hu < u+height; hu++ {
						for hw := w; hw < w+width; hw++ {
							done[hu][hw] = true
						}
					}
					mesh.addQuad(f, [3]int{p, u, w}, width, height, b, perp)
					w += width
				}
			}
		}
	}
	return mesh
}
