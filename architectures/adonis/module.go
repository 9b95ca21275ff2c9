// Package adonis describes the built-in five-qubit star architecture: four
// outer qubits each coupled to a central one. Native gates are phased-X,
// X, Y and Z rotations, CZ and measurement; the ZZ interaction is held in
// final-only form so it can participate in optimization as an atomic unit
// before being expanded.
package adonis

import (
	"fmt"

	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/device"
	"github.com/vk/gatefold/internal/gate"
	"github.com/vk/gatefold/internal/registry"
)

// Name is the architecture name used in manifests and error messages.
const Name = "adonis"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register attaches the adonis decomposer hooks to the registry.
func (Module) Register(r *registry.Registry) {
	r.RegisterHooks(Name, registry.Hooks{
		DecomposeOperation: decomposeOperation,
		DecomposeFinal:     decomposeFinal,
	})
}

// arch is the programmatic form of the architecture, equivalent to pairing
// the manifest definition with this package's hooks.
type arch struct{}

// New returns the adonis architecture.
func New() device.Architecture { return arch{} }

func (arch) Name() string { return Name }

func (arch) Connectivity() [][]int {
	return [][]int{{1, 3}, {2, 3}, {4, 3}, {5, 3}}
}

func (arch) NativeGates() []gate.Family {
	return []gate.Family{
		gate.FamilyPhasedX, gate.FamilyX, gate.FamilyY, gate.FamilyZ,
		gate.FamilyCZ, gate.FamilyMeasure,
	}
}

func (arch) FinalGates() []gate.Family {
	return []gate.Family{gate.FamilyZZ}
}

func (arch) DecomposeOperation(op circuit.Operation) ([]circuit.Operation, bool) {
	return decomposeOperation(op)
}

func (arch) DecomposeFinal(op circuit.Operation) ([]circuit.Operation, error) {
	return decomposeFinal(op)
}

// decomposeOperation routes controlled-X and full swaps through the native
// CZ instead of the generic Hadamard-based identities, saving a gate per
// CX. Everything else is declined to the generic fallback.
func decomposeOperation(op circuit.Operation) ([]circuit.Operation, bool) {
	switch g := op.Gate.(type) {
	case gate.CXPow:
		a, b := op.Qubits[0], op.Qubits[1]
		return []circuit.Operation{
			circuit.Apply(gate.YPow{T: -0.5}, b),
			circuit.Apply(gate.CZPow{T: g.T}, a, b),
			circuit.Apply(gate.YPow{T: 0.5}, b),
		}, true
	case gate.SwapPow:
		if g.T != 1 {
			return nil, false
		}
		a, b := op.Qubits[0], op.Qubits[1]
		return []circuit.Operation{
			circuit.Apply(gate.CXPow{T: 1}, a, b),
			circuit.Apply(gate.CXPow{T: 1}, b, a),
			circuit.Apply(gate.CXPow{T: 1}, a, b),
		}, true
	}
	return nil, false
}

// decomposeFinal expands the ZZ interaction through the native CZ:
// (Z⊗Z)^t = Z^t ⊗ Z^t · CZ^(-2t), up to global phase.
func decomposeFinal(op circuit.Operation) ([]circuit.Operation, error) {
	g, ok := op.Gate.(gate.ZZ)
	if !ok {
		return nil, fmt.Errorf("decomposition missing: %v", op.Gate)
	}
	a, b := op.Qubits[0], op.Qubits[1]
	return []circuit.Operation{
		circuit.Apply(gate.ZPow{T: g.T}, a),
		circuit.Apply(gate.ZPow{T: g.T}, b),
		circuit.Apply(gate.CZPow{T: -2 * g.T}, a, b),
	}, nil
}
