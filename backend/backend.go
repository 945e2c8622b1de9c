// Package backend provides a registry of concrete quill sinks so that
// callers can select a rendering target by name.
package backend

import (
	"errors"
	"sync"

	"github.com/quillgfx/quill"
)

// Well-known backend names.
const (
	BackendPDF      = "pdf"
	BackendRaster   = "raster"
	BackendRecorder = "recorder"
)

// ErrBackendNotAvailable is returned when a requested backend is not
// registered.
var ErrBackendNotAvailable = errors.New("backend: not available")

// Config carries the parameters a sink factory may need.
// Backends ignore the fields they have no use for.
type Config struct {
	// Width and Height of the drawing surface. Raster backends size
	// their pixel buffer from these; the PDF backend interprets them as
	// page size in points (zero selects A4).
	Width, Height int
}

// Factory creates a new sink instance.
type Factory func(cfg Config) (quill.Sink, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)

	// Priority order for Default (first registered wins).
	priority = []string{BackendPDF, BackendRaster, BackendRecorder}
)

// Register registers a sink factory with the given name. This is
// typically called from init() functions in backend packages. An
// existing registration with the same name is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry. Useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// New creates a sink by backend name.
func New(name string, cfg Config) (quill.Sink, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, ErrBackendNotAvailable
	}
	return factory(cfg)
}

// Default creates a sink from the highest-priority registered backend.
func Default(cfg Config) (quill.Sink, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range priority {
		if factory, ok := factories[name]; ok {
			return factory(cfg)
		}
	}
	return nil, ErrBackendNotAvailable
}
