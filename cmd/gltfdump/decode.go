package main

import (
	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/loader"
	"github.com/Carmen-Shannon/oxy-gltf/engine/model"
)

// summary is the printable result of one decode, independent of the element types chosen.
type summary struct {
	Path         string
	Container    string
	IndexType    string
	PositionType string

	Indices   int
	Positions int
	Vertices  int

	MaxIndex    float64
	HasIndices  bool
	Min, Max    [3]float64
	HasVertices bool

	Bindings []model.Binding
	Skipped  []model.SkippedBinding
}

type decodeFunc func(l loader.Loader, asset *loader.Asset) (summary, error)

type elementTypes struct {
	index, position string
}

var decoders = map[elementTypes]decodeFunc{
	{"int", "float32"}:    decodeAs[int, float32],
	{"int", "float64"}:    decodeAs[int, float64],
	{"uint16", "float32"}: decodeAs[uint16, float32],
	{"uint16", "float64"}: decodeAs[uint16, float64],
	{"uint32", "float32"}: decodeAs[uint32, float32],
	{"uint32", "float64"}: decodeAs[uint32, float64],
}

func lookupDecoder(index, position string) (decodeFunc, bool) {
	d, ok := decoders[elementTypes{index, position}]
	return d, ok
}

func decodeAs[I, P common.Number](l loader.Loader, asset *loader.Asset) (summary, error) {
	g, err := loader.LoadAsset[I, P](l, asset)
	if err != nil {
		return summary{}, err
	}
	return summarize(asset, g), nil
}

func summarize[I, P common.Number](asset *loader.Asset, g *model.Geometry[I, P]) summary {
	var zi I
	var zp P
	s := summary{
		Path:         asset.Name,
		Container:    asset.Kind.String(),
		IndexType:    typeName(zi),
		PositionType: typeName(zp),
		Indices:      len(g.Indices),
		Positions:    len(g.Positions),
		Vertices:     g.VertexCount(),
		Bindings:     g.Bindings,
		Skipped:      g.Skipped,
	}

	if m, ok := g.MaxIndex(); ok {
		s.MaxIndex, s.HasIndices = float64(m), true
	}
	if lo, hi, ok := g.Bounds(); ok {
		s.HasVertices = true
		for i := range 3 {
			s.Min[i], s.Max[i] = float64(lo[i]), float64(hi[i])
		}
	}
	return s
}

func typeName(v any) string {
	switch v.(type) {
	case int:
		return "int"
	case uint16:
		return "uint16"
	case uint32:
		return "uint32"
	case float32:
		return "float32"
	case float64:
		return "float64"
	default:
		return "?"
	}
}
