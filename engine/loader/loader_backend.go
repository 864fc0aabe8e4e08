package loader

import "io"

// loaderBackend defines the generic interface for reading an asset container into memory.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Open reads and splits the container at path, including any companion files it references.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *Asset: the parsed container and document
	//   - error: error if reading or parsing fails
	Open(path string) (*Asset, error)

	// OpenReader reads a container from a stream. name selects the format by extension
	// and anchors companion file lookups.
	//
	// Parameters:
	//   - name: the container file name
	//   - r: the reader providing the container bytes
	//
	// Returns:
	//   - *Asset: the parsed container and document
	//   - error: error if reading or parsing fails
	OpenReader(name string, r io.Reader) (*Asset, error)

	// OpenBytes parses a container already held in memory.
	//
	// Parameters:
	//   - name: the container file name
	//   - data: the container bytes
	//
	// Returns:
	//   - *Asset: the parsed container and document
	//   - error: error if parsing fails
	OpenBytes(name string, data []byte) (*Asset, error)
}
