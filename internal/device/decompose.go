package device

import (
	"fmt"

	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/decompose"
)

// DecomposeOperation performs insertion-time decomposition: operations that
// are already native-or-final are kept unchanged; everything else is
// expanded through the architecture's intercepting decomposer with the
// universal-identity fallback, recursing until every leaf is
// native-or-final. A leaf with no reachable expansion is a fatal error.
func (d *Device) DecomposeOperation(op circuit.Operation) ([]circuit.Operation, error) {
	if d.IsNativeOrFinal(op) {
		return []circuit.Operation{op}, nil
	}
	return decompose.Run(op, d.IsNativeOrFinal, d.arch.DecomposeOperation)
}

// DecomposeOperationFull performs insertion-time decomposition and then
// additionally expands every final-only operation through the
// architecture's final decomposer, so the result contains native gates
// only.
func (d *Device) DecomposeOperationFull(op circuit.Operation) ([]circuit.Operation, error) {
	insertDec, err := d.DecomposeOperation(op)
	if err != nil {
		return nil, err
	}
	var full []circuit.Operation
	for _, sub := range insertDec {
		if !d.IsFinal(sub) {
			full = append(full, sub)
			continue
		}
		finalDec, err := d.arch.DecomposeFinal(sub)
		if err != nil {
			return nil, err
		}
		if len(finalDec) == 0 {
			return nil, fmt.Errorf("final decomposition of %v returned no operations", sub)
		}
		full = append(full, finalDec...)
	}
	return full, nil
}

// Append decomposes each operation at insertion time and appends the
// expansion to the circuit with earliest-moment packing. This mirrors the
// behavior of a device-bound circuit: every insertion path runs through
// decomposition.
func (d *Device) Append(c *circuit.Circuit, ops ...circuit.Operation) error {
	for _, op := range ops {
		dec, err := d.DecomposeOperation(op)
		if err != nil {
			return err
		}
		c.Append(dec...)
	}
	return nil
}
