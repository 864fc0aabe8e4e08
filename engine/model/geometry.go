package model

import "github.com/Carmen-Shannon/oxy-gltf/common"

// Geometry holds the arrays extracted from one glTF document.
// I and P are the caller-chosen index and position element types.
type Geometry[I, P common.Number] struct {
	// Name identifies the source asset.
	Name string

	// Indices are the primitive indices in decode order.
	Indices []I

	// Positions are flat x, y, z triples in decode order.
	Positions []P

	// Bindings lists every binding found while walking meshes and primitives, in traversal order.
	Bindings []Binding

	// Skipped lists bindings that contributed nothing because of an unrecognized component type.
	Skipped []SkippedBinding
}

// VertexCount returns the number of complete position triples.
func (g *Geometry[I, P]) VertexCount() int {
	return len(g.Positions) / 3
}

// Vertex returns the i-th position triple.
//
// Parameters:
//   - i: the vertex index, 0 <= i < VertexCount()
//
// Returns:
//   - [3]P: the x, y, z components
func (g *Geometry[I, P]) Vertex(i int) [3]P {
	return [3]P{g.Positions[3*i], g.Positions[3*i+1], g.Positions[3*i+2]}
}

// Vertices returns all position triples as a new slice.
func (g *Geometry[I, P]) Vertices() [][3]P {
	out := make([][3]P, g.VertexCount())
	for i := range out {
		out[i] = g.Vertex(i)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the positions.
//
// Returns:
//   - [3]P: the minimum corner
//   - [3]P: the maximum corner
//   - bool: false if there are no vertices
func (g *Geometry[I, P]) Bounds() ([3]P, [3]P, bool) {
	return common.MinMax3(g.Positions)
}

// MaxIndex returns the largest index value, or false when there are no indices.
func (g *Geometry[I, P]) MaxIndex() (I, bool) {
	if len(g.Indices) == 0 {
		return 0, false
	}
	m := g.Indices[0]
	for _, v := range g.Indices[1:] {
		if v > m {
			m = v
		}
	}
	return m, true
}
