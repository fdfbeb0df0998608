package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// loaderBackend decodes scene documents of one format.
type loaderBackend interface {
	// Load decodes the document at the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *Document: the decoded document
	//   - error: error if reading or decoding fails
	Load(path string) (*Document, error)

	// LoadReader decodes a document from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing the document
	//
	// Returns:
	//   - *Document: the decoded document
	//   - error: error if decoding fails
	LoadReader(r io.Reader) (*Document, error)
}

type yamlLoaderBackend struct{}

type tomlLoaderBackend struct{}

var (
	_ loaderBackend = &yamlLoaderBackend{}
	_ loaderBackend = &tomlLoaderBackend{}
)

func newYAMLLoaderBackend() loaderBackend {
	return &yamlLoaderBackend{}
}

func newTOMLLoaderBackend() loaderBackend {
	return &tomlLoaderBackend{}
}

func loadFile(path string, backend loaderBackend) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return backend.LoadReader(f)
}

func (b *yamlLoaderBackend) Load(path string) (*Document, error) {
	return loadFile(path, b)
}

// LoadReader rejects unknown keys so typos in hand-written scenes surface.
func (b *yamlLoaderBackend) LoadReader(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return &doc, nil
}

func (b *tomlLoaderBackend) Load(path string) (*Document, error) {
	return loadFile(path, b)
}

func (b *tomlLoaderBackend) LoadReader(r io.Reader) (*Document, error) {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}
	return &doc, nil
}
