package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// readFileFunc loads a whole file into memory. It is the loader's only I/O seam.
type readFileFunc func(name string) ([]byte, error)

// osReadFile reads from the host filesystem.
func osReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// fsReadFile adapts an fs.FS. Paths are converted to slash form and stripped of a leading "./".
func fsReadFile(fsys fs.FS) readFileFunc {
	return func(name string) ([]byte, error) {
		p := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(name)), "./")
		return fs.ReadFile(fsys, p)
	}
}

// Asset is a parsed container: the classified file, its JSON document and its binary segment.
type Asset struct {
	Container
	Document *Document
}

// CompanionPath returns the file a .gltf descriptor's binary was read from.
// It reports false for GLB containers and for buffers embedded as data URIs.
func (a *Asset) CompanionPath() (string, bool) {
	if a.Kind != ContainerJSON {
		return "", false
	}
	uri, err := companionURI(a.Document)
	if err != nil || strings.HasPrefix(uri, gltfDataURIPrefix) {
		return "", false
	}
	return filepath.Join(filepath.Dir(a.Name), filepath.FromSlash(uri)), true
}

// gltfParserImpl is the implementation of the gltfParser interface.
type gltfParserImpl struct {
	readFile readFileFunc
}

// gltfParser defines the interface for classifying, reading and splitting glTF/GLB files.
// All bytes are loaded up front; nothing is read lazily during decode.
// This is internal to the loader package.
type gltfParser interface {
	// Parse reads and parses the asset at path.
	// For .gltf files the companion binary named by buffers[0].uri is read as well.
	//
	// Parameters:
	//   - path: path to the .gltf or .glb file
	//
	// Returns:
	//   - *Asset: the parsed asset
	//   - error: error if reading or parsing fails
	Parse(path string) (*Asset, error)

	// ParseBytes parses an asset whose bytes are already in memory.
	// name selects the container kind by extension and anchors relative companion URIs.
	//
	// Parameters:
	//   - name: the asset file name
	//   - data: the asset file contents
	//
	// Returns:
	//   - *Asset: the parsed asset
	//   - error: error if parsing fails
	ParseBytes(name string, data []byte) (*Asset, error)
}

var _ gltfParser = &gltfParserImpl{}

// newGLTFParser creates a new glTF parser reading through readFile.
//
// Parameters:
//   - readFile: the file source
//
// Returns:
//   - gltfParser: a new parser instance
func newGLTFParser(readFile readFileFunc) gltfParser {
	if readFile == nil {
		readFile = osReadFile
	}
	return &gltfParserImpl{readFile: readFile}
}

func (p *gltfParserImpl) Parse(path string) (*Asset, error) {
	if _, err := ClassifyContainer(path); err != nil {
		return nil, err
	}

	data, err := p.readFile(path)
	if err != nil {
		return nil, newError(KindReadFailed).withPath(path).withCause(err)
	}

	return p.ParseBytes(path, data)
}

func (p *gltfParserImpl) ParseBytes(name string, data []byte) (*Asset, error) {
	kind, err := ClassifyContainer(name)
	if err != nil {
		return nil, err
	}

	var asset *Asset
	switch kind {
	case ContainerBinary:
		asset, err = p.parseGLB(name, data)
	default:
		asset, err = p.parseGLTF(name, data)
	}
	if err != nil {
		if le, ok := err.(*Error); ok {
			return nil, le.withPath(name)
		}
		return nil, err
	}
	return asset, nil
}

// parseGLTF parses a JSON descriptor and loads its companion binary.
func (p *gltfParserImpl) parseGLTF(name string, data []byte) (*Asset, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}

	uri, err := companionURI(doc)
	if err != nil {
		return nil, err
	}

	var bin []byte
	if strings.HasPrefix(uri, gltfDataURIPrefix) {
		bin, err = decodeDataURI(uri)
		if err != nil {
			return nil, err
		}
	} else {
		binPath := filepath.Join(filepath.Dir(name), filepath.FromSlash(uri))
		bin, err = p.readFile(binPath)
		if err != nil {
			return nil, newError(KindReadFailed).withPath(binPath).withDetail("companion buffer %q", uri).withCause(err)
		}
	}

	return &Asset{
		Container: Container{Name: name, Kind: ContainerJSON, JSON: data, Binary: bin},
		Document:  doc,
	}, nil
}

// parseGLB validates and splits a GLB container.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
func (p *gltfParserImpl) parseGLB(name string, data []byte) (*Asset, error) {
	jsonChunk, bin, err := SplitGLB(data)
	if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(jsonChunk)
	if err != nil {
		return nil, err
	}

	return &Asset{
		Container: Container{Name: name, Kind: ContainerBinary, JSON: jsonChunk, Binary: bin},
		Document:  doc,
	}, nil
}
