// Package registry provides the glue between architecture manifests and
// compiled Go code.
//
// A manifest declares an architecture's topology and gate sets; the
// decomposer hooks are Go functions that a manifest cannot express. The
// registry stores the hooks under the architecture name, and Build pairs a
// loaded definition with its hooks into a usable Architecture.
package registry

import (
	"fmt"

	"github.com/vk/gatefold/internal/archdef"
	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/device"
	"github.com/vk/gatefold/internal/gate"
)

// Hooks are the Go-side capabilities of one architecture.
type Hooks struct {
	// DecomposeOperation is the intercepting decomposer. A nil hook
	// declines every operation, deferring to the generic fallback.
	DecomposeOperation func(op circuit.Operation) ([]circuit.Operation, bool)
	// DecomposeFinal expands final-only operations. A nil hook reports
	// every final decomposition as missing.
	DecomposeFinal func(op circuit.Operation) ([]circuit.Operation, error)
}

// Module is the interface architecture packages implement to register
// their hooks.
type Module interface {
	Register(r *Registry)
}

// Registry maps architecture names to their registered hooks.
type Registry struct {
	hooks map[string]Hooks
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{hooks: make(map[string]Hooks)}
}

// RegisterHooks stores the hooks for an architecture name, replacing any
// previous registration.
func (r *Registry) RegisterHooks(name string, h Hooks) {
	r.hooks[name] = h
}

// Build pairs a loaded architecture definition with its registered hooks.
// It fails if no hooks are registered under the definition's name or if
// the definition names an unknown gate family.
func (r *Registry) Build(def *archdef.Definition) (device.Architecture, error) {
	hooks, ok := r.hooks[def.Name]
	if !ok {
		return nil, fmt.Errorf("no hooks registered for architecture %q", def.Name)
	}

	native, err := parseFamilies(def.Name, def.NativeGates)
	if err != nil {
		return nil, err
	}
	final, err := parseFamilies(def.Name, def.FinalGates)
	if err != nil {
		return nil, err
	}

	return &manifestArchitecture{
		name:         def.Name,
		connectivity: def.Connectivity,
		native:       native,
		final:        final,
		hooks:        hooks,
	}, nil
}

func parseFamilies(arch string, names []string) ([]gate.Family, error) {
	families := make([]gate.Family, 0, len(names))
	for _, name := range names {
		f, err := gate.ParseFamily(name)
		if err != nil {
			return nil, fmt.Errorf("architecture %q: %w", arch, err)
		}
		families = append(families, f)
	}
	return families, nil
}

// manifestArchitecture is an Architecture assembled from a manifest
// definition plus registered hooks.
type manifestArchitecture struct {
	name         string
	connectivity [][]int
	native       []gate.Family
	final        []gate.Family
	hooks        Hooks
}

func (a *manifestArchitecture) Name() string               { return a.name }
func (a *manifestArchitecture) Connectivity() [][]int      { return a.connectivity }
func (a *manifestArchitecture) NativeGates() []gate.Family { return a.native }
func (a *manifestArchitecture) FinalGates() []gate.Family  { return a.final }

func (a *manifestArchitecture) DecomposeOperation(op circuit.Operation) ([]circuit.Operation, bool) {
	if a.hooks.DecomposeOperation == nil {
		return nil, false
	}
	return a.hooks.DecomposeOperation(op)
}

func (a *manifestArchitecture) DecomposeFinal(op circuit.Operation) ([]circuit.Operation, error) {
	if a.hooks.DecomposeFinal == nil {
		return nil, fmt.Errorf("decomposition missing: %v", op.Gate)
	}
	return a.hooks.DecomposeFinal(op)
}
