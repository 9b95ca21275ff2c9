// Package testutil provides shared helpers for the compiler's tests, most
// importantly a configurable toy architecture.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/device"
	"github.com/vk/gatefold/internal/gate"
)

// Arch is a configurable architecture for tests. Zero-value hooks decline
// everything, so decomposition runs purely on the generic fallback.
type Arch struct {
	ArchName string
	Groups   [][]int
	Native   []gate.Family
	Final    []gate.Family
	// Intercept, when set, is used as the intercepting decomposer.
	Intercept func(op circuit.Operation) ([]circuit.Operation, bool)
	// FinalFn, when set, is used as the final decomposer.
	FinalFn func(op circuit.Operation) ([]circuit.Operation, error)
}

func (a Arch) Name() string {
	if a.ArchName == "" {
		return "testarch"
	}
	return a.ArchName
}

func (a Arch) Connectivity() [][]int      { return a.Groups }
func (a Arch) NativeGates() []gate.Family { return a.Native }
func (a Arch) FinalGates() []gate.Family  { return a.Final }

func (a Arch) DecomposeOperation(op circuit.Operation) ([]circuit.Operation, bool) {
	if a.Intercept == nil {
		return nil, false
	}
	return a.Intercept(op)
}

func (a Arch) DecomposeFinal(op circuit.Operation) ([]circuit.Operation, error) {
	if a.FinalFn == nil {
		return nil, fmt.Errorf("decomposition missing: %v", op.Gate)
	}
	return a.FinalFn(op)
}

// Linear returns a line-topology test architecture of n qubits with a
// permissive gate classification: every single-qubit rotation family plus
// CZ and measurement native, ZZ and XY final-only.
func Linear(n int) Arch {
	var groups [][]int
	for i := 1; i < n; i++ {
		groups = append(groups, []int{i, i + 1})
	}
	return Arch{
		ArchName: "linear",
		Groups:   groups,
		Native: []gate.Family{
			gate.FamilyPhasedX, gate.FamilyX, gate.FamilyY, gate.FamilyZ,
			gate.FamilyCZ, gate.FamilyMeasure,
		},
		Final: []gate.Family{gate.FamilyZZ, gate.FamilyXY},
		FinalFn: func(op circuit.Operation) ([]circuit.Operation, error) {
			switch g := op.Gate.(type) {
			case gate.ZZ:
				a, b := op.Qubits[0], op.Qubits[1]
				return []circuit.Operation{
					circuit.Apply(gate.ZPow{T: g.T}, a),
					circuit.Apply(gate.ZPow{T: g.T}, b),
					circuit.Apply(gate.CZPow{T: -2 * g.T}, a, b),
				}, nil
			case gate.XY:
				return []circuit.Operation{
					circuit.Apply(gate.ISwapPow{T: -2 * g.T}, op.Qubits[0], op.Qubits[1]),
				}, nil
			}
			return nil, fmt.Errorf("decomposition missing: %v", op.Gate)
		},
	}
}

// MustDevice builds a device from the architecture, failing the test on
// error.
func MustDevice(t *testing.T, arch device.Architecture) *device.Device {
	t.Helper()
	dev, err := device.New(arch)
	require.NoError(t, err)
	return dev
}

// Ops flattens a circuit into its operations in time order.
func Ops(c *circuit.Circuit) []circuit.Operation {
	return c.AllOperations()
}

// Gates projects the gate of every operation in time order.
func Gates(c *circuit.Circuit) []gate.Gate {
	var out []gate.Gate
	for _, op := range c.AllOperations() {
		out = append(out, op.Gate)
	}
	return out
}
