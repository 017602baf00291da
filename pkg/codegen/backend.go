// Package codegen implements component C9: pluggable backends that
// emit a build manifest from a fully-reduced MIR graph (spec.md §6.2).
// The registry pattern is grounded directly on the teacher's
// pkg/codegen/backend.go (RegisterBackend/GetBackend/ListBackends
// over a package-level factory map).
package codegen

import (
	"fmt"

	"github.com/buildc/buildc/pkg/mir"
)

// UnknownBackend is raised when a requested backend name matches no
// registered factory (spec.md §6.2, §7).
type UnknownBackend struct {
	Name string
}

func (e *UnknownBackend) Error() string {
	return fmt.Sprintf("unknown backend %q", e.Name)
}

// Backend turns a reduced MIR graph into manifest text. It fails with
// *mir.UnreducedIR if the graph still holds an instruction the
// backend does not know how to emit (spec.md §7).
type Backend interface {
	Name() string
	Emit(graph *mir.Graph, state *mir.PersistentState) (string, error)
}

// Factory constructs a fresh Backend instance.
type Factory func() Backend

var backends = make(map[string]Factory)

// RegisterBackend adds a backend factory under name, overwriting any
// existing registration — mirroring the teacher's RegisterBackend,
// which callers use from init() in each backend's own file.
func RegisterBackend(name string, factory Factory) {
	backends[name] = factory
}

// GetBackend resolves a backend by name.
func GetBackend(name string) (Backend, bool) {
	factory, ok := backends[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// ListBackends returns every registered backend name.
func ListBackends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}
