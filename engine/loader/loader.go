package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ksons/xml3d-blender-exporter/internal/log"
)

// LoaderBackendType identifies the scene document format backend to use.
type LoaderBackendType int

const (
	// BackendTypeYAML selects the YAML document backend (.yaml, .yml).
	BackendTypeYAML LoaderBackendType = iota
	// BackendTypeTOML selects the TOML document backend (.toml).
	BackendTypeTOML
)

// ErrUnsupportedFormat is returned for file extensions no backend handles.
var ErrUnsupportedFormat = errors.New("unsupported scene format")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	documentCache map[string]*Document

	backends map[LoaderBackendType]loaderBackend
}

// Loader loads and caches scene documents.
// It abstracts the file format (YAML, TOML) behind a backend chosen by file
// extension and caches every decoded document by path or name.
type Loader interface {
	// Load decodes a scene document file and caches the result.
	// If the document is already cached (by file path), the cached version is returned.
	//
	// Parameters:
	//   - path: the file path of the document
	//
	// Returns:
	//   - *Document: the decoded document
	//   - error: ErrUnsupportedFormat, or a wrapped decode error
	Load(path string) (*Document, error)

	// LoadReader decodes a scene document from a stream and caches it by name.
	//
	// Parameters:
	//   - name: the cache key for the document
	//   - r: the reader providing the document
	//   - backendType: the format of the stream
	//
	// Returns:
	//   - *Document: the decoded document
	//   - error: error if decoding fails
	LoadReader(name string, r io.Reader, backendType LoaderBackendType) (*Document, error)

	// Get retrieves a cached document by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - *Document: the cached document or nil
	Get(name string) *Document

	// Documents returns a copy of the document cache.
	//
	// Returns:
	//   - map[string]*Document: all cached documents keyed by name
	Documents() map[string]*Document

	// Evict drops a document from the cache so the next Load re-reads the file.
	//
	// Parameters:
	//   - name: the cache key to drop
	Evict(name string)
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with all document backends registered.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader instance
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		documentCache: make(map[string]*Document),
		backends: map[LoaderBackendType]loaderBackend{
			BackendTypeYAML: newYAMLLoaderBackend(),
			BackendTypeTOML: newTOMLLoaderBackend(),
		},
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (*Document, error) {
	l.mu.RLock()
	if cached, ok := l.documentCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	doc, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	l.mu.Lock()
	l.documentCache[path] = doc
	l.mu.Unlock()

	log.Debug("scene document loaded", "path", path, "views", len(doc.Views), "objects", len(doc.Objects))
	return doc, nil
}

func (l *loader) LoadReader(name string, r io.Reader, backendType LoaderBackendType) (*Document, error) {
	backend, ok := l.backends[backendType]
	if !ok {
		return nil, fmt.Errorf("%w: backend %d", ErrUnsupportedFormat, backendType)
	}

	doc, err := backend.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	if doc.Name == "" {
		doc.Name = name
	}

	l.mu.Lock()
	l.documentCache[name] = doc
	l.mu.Unlock()

	return doc, nil
}

func (l *loader) Get(name string) *Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.documentCache[name]
}

func (l *loader) Documents() map[string]*Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]*Document, len(l.documentCache))
	for k, v := range l.documentCache {
		out[k] = v
	}
	return out
}

func (l *loader) Evict(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.documentCache, name)
}

// resolveBackend picks the backend for a file path by extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return l.backends[BackendTypeYAML], nil
	case ".toml":
		return l.backends[BackendTypeTOML], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
