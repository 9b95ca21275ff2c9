package decompose

import (
	"math"

	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/gate"
)

// Fallback expands an operation one level using universal gate identities.
// It returns false for atoms (X, Y, Z, phased-X handled below, measurement)
// that have no further expansion.
func Fallback(op circuit.Operation) ([]circuit.Operation, bool) {
	switch g := op.Gate.(type) {
	case gate.H:
		q := op.Qubits[0]
		return []circuit.Operation{
			circuit.Apply(gate.YPow{T: 0.5}, q),
			circuit.Apply(gate.XPow{T: 1}, q),
		}, true

	case gate.PhasedXPow:
		q := op.Qubits[0]
		return []circuit.Operation{
			circuit.Apply(gate.ZPow{T: -g.P}, q),
			circuit.Apply(gate.XPow{T: g.T}, q),
			circuit.Apply(gate.ZPow{T: g.P}, q),
		}, true

	case gate.CXPow:
		a, b := op.Qubits[0], op.Qubits[1]
		return []circuit.Operation{
			circuit.Apply(gate.H{}, b),
			circuit.Apply(gate.CZPow{T: g.T}, a, b),
			circuit.Apply(gate.H{}, b),
		}, true

	case gate.CZPow:
		a, b := op.Qubits[0], op.Qubits[1]
		return []circuit.Operation{
			circuit.Apply(gate.ZPow{T: g.T / 2}, a),
			circuit.Apply(gate.ZPow{T: g.T / 2}, b),
			circuit.Apply(gate.ZZ{T: -g.T / 2}, a, b),
		}, true

	case gate.ZZ:
		a, b := op.Qubits[0], op.Qubits[1]
		return []circuit.Operation{
			circuit.Apply(gate.CXPow{T: 1}, a, b),
			circuit.Apply(gate.ZPow{T: g.T}, b),
			circuit.Apply(gate.CXPow{T: 1}, a, b),
		}, true

	case gate.SwapPow:
		a, b := op.Qubits[0], op.Qubits[1]
		return []circuit.Operation{
			circuit.Apply(gate.CXPow{T: 1}, a, b),
			circuit.Apply(gate.CXPow{T: g.T}, b, a),
			circuit.Apply(gate.CXPow{T: 1}, a, b),
		}, true

	case gate.ISwapPow:
		a, b := op.Qubits[0], op.Qubits[1]
		return []circuit.Operation{
			circuit.Apply(gate.CXPow{T: 1}, a, b),
			circuit.Apply(gate.H{}, a),
			circuit.Apply(gate.CXPow{T: 1}, b, a),
			circuit.Apply(gate.ZPow{T: g.T / 2}, a),
			circuit.Apply(gate.CXPow{T: 1}, b, a),
			circuit.Apply(gate.ZPow{T: -g.T / 2}, a),
			circuit.Apply(gate.H{}, a),
			circuit.Apply(gate.CXPow{T: 1}, a, b),
		}, true

	case gate.XY:
		return []circuit.Operation{
			circuit.Apply(gate.ISwapPow{T: -2 * g.T}, op.Qubits[0], op.Qubits[1]),
		}, true

	case gate.FSim:
		a, b := op.Qubits[0], op.Qubits[1]
		return []circuit.Operation{
			circuit.Apply(gate.ISwapPow{T: -2 * g.Theta / math.Pi}, a, b),
			circuit.Apply(gate.CZPow{T: -g.Phi / math.Pi}, a, b),
		}, true
	}
	return nil, false
}
