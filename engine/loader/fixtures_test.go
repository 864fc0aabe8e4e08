package loader

import (
	"encoding/binary"
	"math"
	"testing"
)

// triangleJSON describes one indexed triangle. Positions live in bufferView 0, indices in bufferView 1.
const triangleJSON = `{
  "asset": {"version": "2.0"},
  "buffers": [{"uri": "tri.bin", "byteLength": 42}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6}
  ],
  "accessors": [
    {"bufferView": 0, "byteOffset": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 1, "byteOffset": 0, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1, "material": 0}]}]
}`

func triangleBin() []byte {
	return concat(f32Bytes(0, 0, 0, 1, 0, 0, 0, 1, 0), u16Bytes(0, 1, 2))
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func f32Bytes(vs ...float32) []byte {
	out := make([]byte, 0, 4*len(vs))
	for _, v := range vs {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

func u16Bytes(vs ...uint16) []byte {
	out := make([]byte, 0, 2*len(vs))
	for _, v := range vs {
		out = binary.LittleEndian.AppendUint16(out, v)
	}
	return out
}

func u32Bytes(vs ...uint32) []byte {
	out := make([]byte, 0, 4*len(vs))
	for _, v := range vs {
		out = binary.LittleEndian.AppendUint32(out, v)
	}
	return out
}

// buildGLB assembles a well-formed GLB with one JSON chunk and one BIN chunk.
func buildGLB(json string, bin []byte) []byte {
	total := glbHeaderSize + len(json) + glbChunkHeaderSize + len(bin)
	return concat(
		[]byte(gltfGLBMagicLiteral),
		u32Bytes(gltfGLBVersion, uint32(total), uint32(len(json)), gltfGLBChunkJSON),
		[]byte(json),
		u32Bytes(uint32(len(bin)), gltfGLBChunkBIN),
		bin,
	)
}

func mustParse(t *testing.T, json string) *Document {
	t.Helper()
	doc, err := ParseDocument([]byte(json))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	return doc
}

func errorKind(err error) ErrorKind {
	if le, ok := err.(*Error); ok {
		return le.Kind
	}
	return ""
}
