package loader

import (
	"io"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct {
	parser gltfParser
}

// gltfLoaderBackend is a loaderBackend implementation for glTF/GLB files.
// It delegates to the gltfParser for classification and chunk extraction.
type gltfLoaderBackend interface {
	loaderBackend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Parameters:
//   - readFile: the file source used for the asset and its companion buffer
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend(readFile readFileFunc) gltfLoaderBackend {
	return &gltfLoaderBackendImpl{
		parser: newGLTFParser(readFile),
	}
}

func (b *gltfLoaderBackendImpl) Open(path string) (*Asset, error) {
	return b.parser.Parse(path)
}

func (b *gltfLoaderBackendImpl) OpenReader(name string, r io.Reader) (*Asset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(KindReadFailed).withPath(name).withCause(err)
	}
	return b.parser.ParseBytes(name, data)
}

func (b *gltfLoaderBackendImpl) OpenBytes(name string, data []byte) (*Asset, error) {
	return b.parser.ParseBytes(name, data)
}
