package device

import (
	"fmt"
	"sort"

	"github.com/vk/gatefold/internal/circuit"
)

// ValidateOperation checks a single operation against the device: it must
// be a plain (possibly tagged) gate application, its gate must be
// native-or-final, every acted-on qubit must be a device qubit, and a
// multi-qubit non-measurement operation must act on a connected group.
func (d *Device) ValidateOperation(op circuit.Operation) error {
	if op.Gate == nil || len(op.Qubits) != op.Gate.Arity() {
		return fmt.Errorf("unsupported operation: %v", op)
	}
	if !d.IsNativeOrFinal(op) {
		return fmt.Errorf("unsupported gate type: %v", op.Gate)
	}
	for _, q := range op.Qubits {
		if !q.IsDeviceQubit() || q.Index > len(d.qubits) {
			return fmt.Errorf("qubit not on device: %v", q)
		}
	}
	return d.CheckQubitConnectivity(op)
}

// CheckQubitConnectivity fails if a multi-qubit non-measurement operation
// acts on a qubit-index set that is not a connected group of the device.
func (d *Device) CheckQubitConnectivity(op circuit.Operation) error {
	if len(op.Qubits) < 2 || op.IsMeasurement() {
		return nil
	}
	indices := make([]int, len(op.Qubits))
	for i, q := range op.Qubits {
		indices[i] = q.Index
	}
	sort.Ints(indices)
	if !d.connectivity[connectivityKey(indices)] {
		return fmt.Errorf("unsupported qubit connectivity required for %v", op)
	}
	return nil
}

// ValidateCircuit checks every operation in the circuit and verifies that
// no measurement key appears twice anywhere in it. Qubit-disjointness per
// moment is enforced structurally by the circuit container.
func (d *Device) ValidateCircuit(c *circuit.Circuit) error {
	for _, op := range c.AllOperations() {
		if err := d.ValidateOperation(op); err != nil {
			return err
		}
	}
	return verifyUniqueMeasurementKeys(c)
}

// verifyUniqueMeasurementKeys fails if a measurement key is repeated
// anywhere in the circuit.
func verifyUniqueMeasurementKeys(c *circuit.Circuit) error {
	seen := make(map[string]bool)
	for _, op := range c.AllOperations() {
		key, ok := op.MeasurementKey()
		if !ok {
			continue
		}
		if seen[key] {
			return fmt.Errorf("measurement key %q repeated", key)
		}
		seen[key] = true
	}
	return nil
}
