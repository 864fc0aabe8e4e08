package loader

import (
	"encoding/base64"
	"encoding/binary"
	"path/filepath"
	"strings"
)

// ContainerKind identifies how an asset file packages its JSON and binary data.
type ContainerKind int

const (
	// ContainerJSON is a .gltf descriptor with a companion binary referenced by buffers[0].uri.
	ContainerJSON ContainerKind = iota + 1
	// ContainerBinary is a self-contained .glb chunked container.
	ContainerBinary
)

func (k ContainerKind) String() string {
	switch k {
	case ContainerJSON:
		return "gltf"
	case ContainerBinary:
		return "glb"
	default:
		return "unknown"
	}
}

// Container is a classified asset split into its JSON text and binary segment.
type Container struct {
	// Name is the path the container was read from.
	Name string

	// Kind is the container format.
	Kind ContainerKind

	// JSON is the descriptor text. For ContainerBinary it is exactly the JSON chunk.
	JSON []byte

	// Binary is the geometry segment. For ContainerBinary it is every byte after the JSON
	// chunk, BIN chunk header included; for ContainerJSON it is the companion file verbatim.
	Binary []byte
}

// Payload returns the bytes accessor offsets are relative to under the given layout.
// LayoutLegacy addresses the segment as-is. LayoutSpec strips the GLB BIN chunk header.
//
// Parameters:
//   - layout: the accessor addressing mode
//
// Returns:
//   - []byte: the addressable binary payload
func (c *Container) Payload(layout Layout) []byte {
	if c.Kind == ContainerBinary && layout == LayoutSpec {
		return BinaryPayload(c.Binary)
	}
	return c.Binary
}

// ClassifyContainer determines the container kind from a file name's extension.
//
// Parameters:
//   - name: the file name or path
//
// Returns:
//   - ContainerKind: the detected kind
//   - error: a KindUnsupportedContainer error for any other extension
func ClassifyContainer(name string) (ContainerKind, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case gltfFileExtJSON:
		return ContainerJSON, nil
	case gltfFileExtBinary:
		return ContainerBinary, nil
	default:
		return 0, newError(KindUnsupportedContainer).withPath(name).withDetail("unrecognized extension %q", ext)
	}
}

// SplitGLB validates a GLB header and splits the file into its JSON chunk and trailing binary segment.
//
//	offset  size  field
//	0       4     magic "glTF"
//	4       4     version, must be 2
//	8       4     total length, must equal len(data)
//	12      4     JSON chunk length
//	16      4     JSON chunk type "JSON"
//	20      n     JSON chunk data
//	20+n    ..    binary segment to end of file
//
// Parameters:
//   - data: the complete file contents
//
// Returns:
//   - []byte: the JSON chunk, jsonChunkLength bytes
//   - []byte: the binary segment, totalLength-20-jsonChunkLength bytes
//   - error: a header mismatch or truncation error
func SplitGLB(data []byte) ([]byte, []byte, error) {
	if len(data) >= glbOffsetMagic+4 {
		if magic := string(data[glbOffsetMagic : glbOffsetMagic+4]); magic != gltfGLBMagicLiteral {
			return nil, nil, mismatch(KindMagicMismatch, "magic", gltfGLBMagicLiteral, magic)
		}
	}
	if len(data) >= glbOffsetVersion+4 {
		if version := binary.LittleEndian.Uint32(data[glbOffsetVersion:]); version != gltfGLBVersion {
			return nil, nil, mismatch(KindVersionMismatch, "version", uint32(gltfGLBVersion), version)
		}
	}
	if len(data) >= glbOffsetLength+4 {
		if total := binary.LittleEndian.Uint32(data[glbOffsetLength:]); uint64(total) != uint64(len(data)) {
			return nil, nil, mismatch(KindSizeMismatch, "length", uint64(len(data)), total)
		}
	}
	if len(data) < glbHeaderSize {
		return nil, nil, newError(KindTruncatedContainer).withDetail("%d bytes, header needs %d", len(data), glbHeaderSize)
	}

	if chunkType := binary.LittleEndian.Uint32(data[glbOffsetJSONType:]); chunkType != gltfGLBChunkJSON {
		return nil, nil, mismatch(KindChunkTypeMismatch, "jsonChunkType", uint32(gltfGLBChunkJSON), chunkType)
	}

	jsonLength := uint64(binary.LittleEndian.Uint32(data[glbOffsetJSONLength:]))
	if glbHeaderSize+jsonLength > uint64(len(data)) {
		e := boundsError(noAccessor, glbHeaderSize, int(jsonLength), len(data))
		e.Field = "jsonChunkLength"
		return nil, nil, e
	}

	end := glbHeaderSize + int(jsonLength)
	return data[glbHeaderSize:end], data[end:], nil
}

// BinaryPayload strips the 8-byte BIN chunk header from a GLB binary segment.
// Only the first BIN chunk is returned. A segment without a well-formed BIN header is returned unchanged.
//
// Parameters:
//   - segment: the trailing bytes returned by SplitGLB
//
// Returns:
//   - []byte: the first BIN chunk's data
func BinaryPayload(segment []byte) []byte {
	if len(segment) < glbChunkHeaderSize {
		return segment
	}
	if binary.LittleEndian.Uint32(segment[4:]) != gltfGLBChunkBIN {
		return segment
	}
	length := uint64(binary.LittleEndian.Uint32(segment))
	if glbChunkHeaderSize+length > uint64(len(segment)) {
		return segment
	}
	return segment[glbChunkHeaderSize : glbChunkHeaderSize+int(length)]
}

// companionURI reads buffers[0].uri from a .gltf descriptor.
func companionURI(doc *Document) (string, error) {
	uriNode := doc.Get("buffers").Index(0).Get("uri")
	uri, ok := uriNode.String()
	if !ok || uri == "" {
		return "", newError(KindMissingBufferURI).withDetail("buffers[0].uri is absent or not a string")
	}
	return uri, nil
}

// decodeDataURI decodes a base64 data URI.
// Format: data:[<mediatype>][;base64],<data>
func decodeDataURI(uri string) ([]byte, error) {
	commaIdx := strings.Index(uri, ",")
	if commaIdx < 0 {
		return nil, newError(KindMissingBufferURI).withDetail("malformed data URI")
	}

	header := uri[len(gltfDataURIPrefix):commaIdx]
	if !strings.Contains(header, gltfDataURIBase64Tag) {
		return nil, newError(KindReadFailed).withDetail("unsupported data URI encoding: %s", header)
	}

	data, err := base64.StdEncoding.DecodeString(uri[commaIdx+1:])
	if err != nil {
		return nil, newError(KindReadFailed).withDetail("failed to decode base64 buffer").withCause(err)
	}
	return data, nil
}
