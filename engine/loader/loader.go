package loader

import (
	"io"
	"io/fs"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/model"

	"github.com/charmbracelet/log"
)

// loader is the implementation of the Loader interface.
type loader struct {
	fsys   fs.FS
	logger *log.Logger

	opts DecodeOptions

	backend loaderBackend
}

// Loader defines the public-facing interface for reading glTF/GLB assets.
// It abstracts the container format behind a generic backend and carries the decode
// options applied by Load, LoadAsset and LoadSelected.
type Loader interface {
	// Open reads and splits the asset at path.
	// The container kind is selected from the file extension (.gltf/.glb).
	//
	// Parameters:
	//   - path: the file path to the asset
	//
	// Returns:
	//   - *Asset: the parsed asset
	//   - error: error if reading or parsing fails
	Open(path string) (*Asset, error)

	// OpenReader reads an asset from a stream. name selects the container kind and
	// anchors the companion buffer path of a .gltf descriptor.
	//
	// Parameters:
	//   - name: the asset file name
	//   - r: the reader providing asset data
	//
	// Returns:
	//   - *Asset: the parsed asset
	//   - error: error if reading or parsing fails
	OpenReader(name string, r io.Reader) (*Asset, error)

	// OpenBytes parses an asset already held in memory.
	//
	// Parameters:
	//   - name: the asset file name
	//   - data: the asset file contents
	//
	// Returns:
	//   - *Asset: the parsed asset
	//   - error: error if parsing fails
	OpenBytes(name string, data []byte) (*Asset, error)

	// Options returns the decode options this Loader applies.
	//
	// Returns:
	//   - DecodeOptions: the configured options
	Options() DecodeOptions

	// Logger returns the Loader's logger. It discards output unless WithLogger was given.
	//
	// Returns:
	//   - *log.Logger: the logger
	Logger() *log.Logger
}

var _ Loader = &loader{}

// FilePicker chooses an asset path interactively.
// An empty path with a nil error means the user dismissed the picker.
type FilePicker interface {
	PickFile() (string, error)
}

// NewLoader creates a new Loader instance with the provided options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided options
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		logger: log.New(io.Discard),
	}

	for _, option := range options {
		option(l)
	}

	readFile := readFileFunc(osReadFile)
	if l.fsys != nil {
		readFile = fsReadFile(l.fsys)
	}
	l.backend = newGLTFLoaderBackend(readFile)
	return l
}

func (l *loader) Open(path string) (*Asset, error) {
	asset, err := l.backend.Open(path)
	if err != nil {
		return nil, err
	}
	l.logOpened(asset)
	return asset, nil
}

func (l *loader) OpenReader(name string, r io.Reader) (*Asset, error) {
	asset, err := l.backend.OpenReader(name, r)
	if err != nil {
		return nil, err
	}
	l.logOpened(asset)
	return asset, nil
}

func (l *loader) OpenBytes(name string, data []byte) (*Asset, error) {
	asset, err := l.backend.OpenBytes(name, data)
	if err != nil {
		return nil, err
	}
	l.logOpened(asset)
	return asset, nil
}

func (l *loader) Options() DecodeOptions {
	return l.opts
}

func (l *loader) Logger() *log.Logger {
	return l.logger
}

func (l *loader) logOpened(a *Asset) {
	l.logger.Debug("opened asset", "path", a.Name, "container", a.Kind, "json", len(a.JSON), "binary", len(a.Binary))
}

// Load opens the asset at path and decodes its indices as I and its positions as P.
//
// Parameters:
//   - l: the loader providing file access and decode options
//   - path: the .gltf or .glb file
//
// Returns:
//   - *model.Geometry[I, P]: the decoded geometry
//   - error: error if opening or decoding fails
func Load[I, P common.Number](l Loader, path string) (*model.Geometry[I, P], error) {
	asset, err := l.Open(path)
	if err != nil {
		return nil, err
	}
	return LoadAsset[I, P](l, asset)
}

// LoadAsset decodes an already opened asset with the loader's options.
// Skipped bindings are reported to the loader's logger at warn level.
//
// Parameters:
//   - l: the loader providing decode options
//   - asset: the parsed asset
//
// Returns:
//   - *model.Geometry[I, P]: the decoded geometry
//   - error: error if decoding fails
func LoadAsset[I, P common.Number](l Loader, asset *Asset) (*model.Geometry[I, P], error) {
	opts := l.Options()

	geom, err := Aggregate[I, P](asset.Document, asset.Payload(opts.Layout), opts)
	if err != nil {
		if le, ok := err.(*Error); ok {
			return nil, le.withPath(asset.Name)
		}
		return nil, err
	}
	geom.Name = asset.Name

	logger := l.Logger()
	for _, s := range geom.Skipped {
		logger.Warn("skipped binding with unsupported component type",
			"path", asset.Name, "binding", s.Name, "accessor", s.Value, "componentType", s.ComponentType)
	}
	logger.Debug("decoded geometry", "path", asset.Name, "indices", len(geom.Indices), "positions", len(geom.Positions))

	return geom, nil
}

// SelectFile asks picker for an asset path.
//
// Parameters:
//   - picker: the interactive file chooser
//
// Returns:
//   - string: the chosen path
//   - error: KindNoFileSelected if the picker was dismissed, KindReadFailed if the picker itself failed
func SelectFile(picker FilePicker) (string, error) {
	path, err := picker.PickFile()
	if err != nil {
		return "", newError(KindReadFailed).withDetail("file picker").withCause(err)
	}
	if path == "" {
		return "", newError(KindNoFileSelected)
	}
	return path, nil
}

// LoadSelected asks picker for a path and loads it.
//
// Parameters:
//   - l: the loader to load with
//   - picker: the interactive file chooser
//
// Returns:
//   - *model.Geometry[I, P]: the decoded geometry
//   - error: any error from SelectFile or Load
func LoadSelected[I, P common.Number](l Loader, picker FilePicker) (*model.Geometry[I, P], error) {
	path, err := SelectFile(picker)
	if err != nil {
		return nil, err
	}
	return Load[I, P](l, path)
}
