package optimize

import (
	"math"

	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/gate"
)

// fuseTolerance is the magnitude below which a fused rotation component is
// dropped as the identity.
const fuseTolerance = 1e-8

// mergeSingleQubit fuses maximal runs of single-qubit rotations on one
// qubit into canonical form: at most one phased-X rotation followed by one
// Z rotation. Runs already in canonical form are left untouched.
type mergeSingleQubit struct{}

func (mergeSingleQubit) RewriteAt(c *circuit.Circuit, index int, op circuit.Operation) (*circuit.RewriteSummary, error) {
	if _, ok := gate.Unitary(op.Gate); !ok {
		return nil, nil
	}
	q := op.Qubits[0]

	isBlocker := func(next circuit.Operation) bool {
		if len(next.Qubits) != 1 || next.Qubits[0] != q {
			return true
		}
		_, ok := gate.Unitary(next.Gate)
		return !ok
	}
	run := c.FindUntilBlocked(map[circuit.Qubit]int{q: index}, isBlocker)
	if len(run) == 0 {
		return nil, nil
	}

	product := gate.Identity2
	last := index
	for _, item := range run {
		u, _ := gate.Unitary(item.Op.Gate)
		product = u.Mul(product)
		if item.Index > last {
			last = item.Index
		}
	}

	pxz := gate.DeconstructPhasedXZ(product)
	var rewritten []circuit.Operation
	if math.Abs(pxz.X) > fuseTolerance {
		rewritten = append(rewritten, circuit.Apply(gate.PhasedXPow{T: pxz.X, P: pxz.P}, q))
	}
	if math.Abs(pxz.Z) > fuseTolerance {
		rewritten = append(rewritten, circuit.Apply(gate.ZPow{T: pxz.Z}, q))
	}

	if runEqualsRewrite(run, rewritten) {
		return nil, nil
	}
	return &circuit.RewriteSummary{
		ClearSpan:     last + 1 - index,
		ClearQubits:   op.Qubits,
		NewOperations: rewritten,
	}, nil
}

// runEqualsRewrite reports whether the collected run is already the
// canonical rewrite, up to float noise in the gate parameters.
func runEqualsRewrite(run []circuit.IndexedOperation, rewritten []circuit.Operation) bool {
	if len(run) != len(rewritten) {
		return false
	}
	for i, item := range run {
		if !gatesApproxEqual(item.Op.Gate, rewritten[i].Gate) {
			return false
		}
	}
	return true
}

// gatesApproxEqual compares two gates of the same family with tolerance on
// their parameters.
func gatesApproxEqual(a, b gate.Gate) bool {
	const atol = 1e-9
	switch ga := a.(type) {
	case gate.PhasedXPow:
		gb, ok := b.(gate.PhasedXPow)
		return ok && closeHalfTurns(ga.T, gb.T, atol) && closeHalfTurns(ga.P, gb.P, atol)
	case gate.ZPow:
		gb, ok := b.(gate.ZPow)
		return ok && closeHalfTurns(ga.T, gb.T, atol)
	}
	return a == b
}

// closeHalfTurns compares two half-turn exponents modulo the period.
func closeHalfTurns(a, b, atol float64) bool {
	return math.Abs(gate.CanonicalHalfTurns(a-b)) <= atol
}
