// gltf_types.go contains the immutable lookup tables and wire constants of glTF 2.0 consumed by the decoder.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
package loader

import "fmt"

// --- Component Types ---

// ComponentType is the numeric code of an accessor's component representation.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#accessor-data-types
type ComponentType int

const (
	ComponentTypeSignedByte    ComponentType = 5120
	ComponentTypeUnsignedByte  ComponentType = 5121
	ComponentTypeSignedShort   ComponentType = 5122
	ComponentTypeUnsignedShort ComponentType = 5123
	ComponentTypeUnsignedInt   ComponentType = 5125
	ComponentTypeFloat         ComponentType = 5126
)

// Size returns the byte width of one component, or 0 for an unrecognized code.
//
// Returns:
//   - int: the component width in bytes
func (c ComponentType) Size() int {
	switch c {
	case ComponentTypeSignedByte, ComponentTypeUnsignedByte:
		return 1
	case ComponentTypeSignedShort, ComponentTypeUnsignedShort:
		return 2
	case ComponentTypeUnsignedInt, ComponentTypeFloat:
		return 4
	default:
		return 0
	}
}

// Valid reports whether c is one of the six recognized codes.
func (c ComponentType) Valid() bool {
	return c.Size() != 0
}

func (c ComponentType) String() string {
	switch c {
	case ComponentTypeSignedByte:
		return "SIGNED_BYTE"
	case ComponentTypeUnsignedByte:
		return "UNSIGNED_BYTE"
	case ComponentTypeSignedShort:
		return "SIGNED_SHORT"
	case ComponentTypeUnsignedShort:
		return "UNSIGNED_SHORT"
	case ComponentTypeUnsignedInt:
		return "UNSIGNED_INT"
	case ComponentTypeFloat:
		return "FLOAT"
	default:
		return fmt.Sprintf("ComponentType(%d)", int(c))
	}
}

// --- Element Shapes ---

// Accessor element shape names.
const (
	ShapeScalar = "SCALAR"
	ShapeVec2   = "VEC2"
	ShapeVec3   = "VEC3"
	ShapeVec4   = "VEC4"
	ShapeMat2   = "MAT2"
	ShapeMat3   = "MAT3"
	ShapeMat4   = "MAT4"
)

// gltfShapeComponents maps an element shape name to its component count. Read-only.
var gltfShapeComponents = map[string]int{
	ShapeScalar: 1,
	ShapeVec2:   2,
	ShapeVec3:   3,
	ShapeVec4:   4,
	ShapeMat2:   4,
	ShapeMat3:   9,
	ShapeMat4:   16,
}

// gltfMaxComponents is the widest element shape (MAT4).
const gltfMaxComponents = 16

// ComponentsPerElement returns the number of components in one element of the named shape.
//
// Parameters:
//   - shape: an accessor "type" string such as "VEC3"
//
// Returns:
//   - int: the component count
//   - bool: false if the shape is not recognized
func ComponentsPerElement(shape string) (int, bool) {
	n, ok := gltfShapeComponents[shape]
	return n, ok
}

// --- Primitive Semantics ---

// Binding names the aggregator gives meaning to. Every other attribute name is carried through opaquely.
const (
	SemanticIndices  = "indices"
	SemanticPosition = "POSITION"
	SemanticMaterial = "material"
	SemanticMode     = "mode"
)

// --- GLB Binary Format ---

// GLB header layout. All integers are little-endian u32.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
const (
	glbOffsetMagic       = 0
	glbOffsetVersion     = 4
	glbOffsetLength      = 8
	glbOffsetJSONLength  = 12
	glbOffsetJSONType    = 16
	glbHeaderSize        = 20 // 12-byte file header + 8-byte JSON chunk header
	glbChunkHeaderSize   = 8
	gltfGLBMagicLiteral  = "glTF"
	gltfGLBVersion       = 2
	gltfGLBChunkJSON     = 0x4E4F534A // "JSON" in little-endian ASCII
	gltfGLBChunkBIN      = 0x004E4942 // "BIN\0" in little-endian ASCII
	gltfFileExtJSON      = ".gltf"
	gltfFileExtBinary    = ".glb"
	gltfDataURIPrefix    = "data:"
	gltfDataURIBase64Tag = ";base64"
)
