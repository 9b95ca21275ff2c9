// Package device models the hardware a circuit is compiled for: the qubit
// topology, the native and final-only gate classification, qubit mapping,
// insertion-time decomposition and structural validation.
//
// Concrete architectures supply their topology, gate sets and decomposer
// hooks through the Architecture interface; the Device is generic over it.
package device

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/gate"
)

// Architecture is the capability set a concrete quantum architecture must
// supply.
type Architecture interface {
	// Name identifies the architecture in error messages.
	Name() string
	// Connectivity is the set of qubit-index groups (typically pairs) the
	// hardware can jointly operate on.
	Connectivity() [][]int
	// NativeGates are the gate families executed directly by the hardware.
	NativeGates() []gate.Family
	// FinalGates are non-native families deliberately left undecomposed
	// until the final pipeline stage.
	FinalGates() []gate.Family
	// DecomposeOperation is the intercepting decomposer: it returns a
	// replacement sequence, or false to decline and defer to the generic
	// fallback.
	DecomposeOperation(op circuit.Operation) ([]circuit.Operation, bool)
	// DecomposeFinal expands a final-only operation into native gates, or
	// reports that no decomposition is known.
	DecomposeFinal(op circuit.Operation) ([]circuit.Operation, error)
}

// Device is a validated architecture with its derived qubit set.
type Device struct {
	arch         Architecture
	qubits       []circuit.Qubit
	native       map[gate.Family]bool
	final        map[gate.Family]bool
	connectivity map[string]bool
}

// New validates the architecture's connectivity graph and returns the
// device. Construction fails if any qubit index is below 1 or the index
// set has gaps relative to 1..max.
func New(arch Architecture) (*Device, error) {
	indices := make(map[int]bool)
	for _, group := range arch.Connectivity() {
		for _, q := range group {
			indices[q] = true
		}
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("%s connectivity map is empty", arch.Name())
	}

	var bad []int
	max := 0
	for q := range indices {
		if q < 1 {
			bad = append(bad, q)
		}
		if q > max {
			max = q
		}
	}
	if len(bad) > 0 {
		sort.Ints(bad)
		return nil, fmt.Errorf("%s connectivity map: qubit numbers %v are < 1", arch.Name(), bad)
	}

	var missing []int
	for q := 1; q <= max; q++ {
		if !indices[q] {
			missing = append(missing, q)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s connectivity map: qubits %v are missing", arch.Name(), missing)
	}

	d := &Device{
		arch:         arch,
		native:       make(map[gate.Family]bool),
		final:        make(map[gate.Family]bool),
		connectivity: make(map[string]bool),
	}
	for q := 1; q <= max; q++ {
		d.qubits = append(d.qubits, circuit.DeviceQubit(q))
	}
	for _, f := range arch.NativeGates() {
		d.native[f] = true
	}
	for _, f := range arch.FinalGates() {
		d.final[f] = true
	}
	for _, group := range arch.Connectivity() {
		d.connectivity[connectivityKey(group)] = true
	}
	return d, nil
}

// connectivityKey canonicalizes a qubit-index group into a set key.
func connectivityKey(group []int) string {
	sorted := make([]int, len(group))
	copy(sorted, group)
	sort.Ints(sorted)
	parts := make([]string, 0, len(sorted))
	for i, q := range sorted {
		if i > 0 && sorted[i-1] == q {
			continue // duplicate index inside a group
		}
		parts = append(parts, strconv.Itoa(q))
	}
	return strings.Join(parts, ",")
}

// Architecture returns the architecture the device was built from.
func (d *Device) Architecture() Architecture { return d.arch }

// Qubits returns the device qubit set, ordered by index.
func (d *Device) Qubits() []circuit.Qubit { return d.qubits }

// NumQubits returns the number of device qubits.
func (d *Device) NumQubits() int { return len(d.qubits) }

// IsNative reports whether the operation's gate is in the native gate set.
// Structural tags on the operation are ignored.
func (d *Device) IsNative(op circuit.Operation) bool {
	return op.Gate != nil && d.native[op.Gate.Family()]
}

// IsNativeOrFinal reports whether the operation's gate is in the native or
// the final-only gate set. Structural tags on the operation are ignored.
func (d *Device) IsNativeOrFinal(op circuit.Operation) bool {
	return op.Gate != nil && (d.native[op.Gate.Family()] || d.final[op.Gate.Family()])
}

// IsFinal reports whether the operation's gate is in the final-only set.
func (d *Device) IsFinal(op circuit.Operation) bool {
	return op.Gate != nil && d.final[op.Gate.Family()]
}
