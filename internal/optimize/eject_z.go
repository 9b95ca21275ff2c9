package optimize

import (
	"math"
	"sort"

	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/gate"
)

// ejectTolerance is the accumulated phase magnitude, in half-turns, below
// which a pending rotation is treated as negligible.
const ejectTolerance = 1e-8

// ejectZ commutes Z rotations towards the end of the circuit.
//
// It scans the circuit forward keeping a per-qubit phase accumulator in
// half-turns. Z rotations are folded into the accumulator and deleted;
// pending phase is swapped across swap-like gates, absorbed algebraically
// into gates that support the phase-by transform, dropped before
// measurements, and otherwise flushed back out as explicit Z rotations.
// All edits are collected into three batches and applied after the scan,
// so moment indices stay valid throughout.
type ejectZ struct{}

func (ejectZ) Run(c *circuit.Circuit) (bool, error) {
	phase := make(map[circuit.Qubit]float64)

	var deletions, inlineIntos, insertions []circuit.IndexedOperation

	// dump flushes the tracked phase of the given qubits as explicit Z
	// rotations inserted before moment index, and zeroes the accumulators.
	dump := func(qubits []circuit.Qubit, index int) {
		for _, q := range qubits {
			p := phase[q]
			if !gate.IsNegligibleHalfTurns(p, ejectTolerance) {
				insertions = append(insertions, circuit.IndexedOperation{
					Index: index,
					Op:    circuit.Apply(gate.ZPow{T: p}, q),
				})
			}
			phase[q] = 0
		}
	}

	for i := 0; i < c.Len(); i++ {
		for _, op := range c.Moment(i).Operations() {
			// Pure Z rotations fold into the tracked qubit phase.
			if z, ok := op.Gate.(gate.ZPow); ok {
				phase[op.Qubits[0]] += z.T
				deletions = append(deletions, circuit.IndexedOperation{Index: i, Op: op})
				continue
			}

			// A Z rotation before a z-basis measurement is unobservable:
			// drop the tracked phase instead of emitting it.
			if op.IsMeasurement() {
				for _, q := range op.Qubits {
					phase[q] = 0
				}
			}

			negligible := true
			for _, q := range op.Qubits {
				if !gate.IsNegligibleHalfTurns(phase[q], ejectTolerance) {
					negligible = false
					break
				}
			}
			if negligible {
				continue
			}

			// The physical phase follows the logical wire across a
			// swap-like gate.
			if isSwapLike(op) {
				a, b := op.Qubits[0], op.Qubits[1]
				phase[a], phase[b] = phase[b], phase[a]
				continue
			}

			// Try to move the tracked phase over the operation.
			phased := op
			absorbed := true
			for idx, q := range op.Qubits {
				p := phase[q]
				if gate.IsNegligibleHalfTurns(p, ejectTolerance) {
					continue
				}
				g, ok := gate.PhaseBy(phased.Gate, -p, idx)
				if !ok {
					absorbed = false
					break
				}
				phased = circuit.Operation{Gate: g, Qubits: phased.Qubits, Tags: phased.Tags}
			}
			if !absorbed {
				dump(op.Qubits, i)
				continue
			}
			if phased.Equal(op) {
				// Diagonal gates absorb trivially; nothing to edit.
				continue
			}
			deletions = append(deletions, circuit.IndexedOperation{Index: i, Op: op})
			inlineIntos = append(inlineIntos, circuit.IndexedOperation{Index: i, Op: phased})
		}
	}

	// Flush whatever phase is still pending at the circuit's end.
	var remaining []circuit.Qubit
	for q := range phase {
		remaining = append(remaining, q)
	}
	sort.Slice(remaining, func(a, b int) bool {
		if remaining[a].Index != remaining[b].Index {
			return remaining[a].Index < remaining[b].Index
		}
		return remaining[a].Name < remaining[b].Name
	})
	dump(remaining, c.Len())

	changed := len(deletions) > 0 || len(inlineIntos) > 0 || len(insertions) > 0
	if err := c.BatchRemove(deletions); err != nil {
		return changed, err
	}
	if err := c.BatchInsertInto(inlineIntos); err != nil {
		return changed, err
	}
	if err := c.BatchInsert(insertions); err != nil {
		return changed, err
	}
	return changed, nil
}

// isSwapLike reports whether Z rotations commute through the gate onto the
// other qubit: a full swap, an iswap-family member at an odd exponent, an
// fsim interaction at a wire-exchanging angle, or an XY interaction at a
// half-odd-integer exponent.
func isSwapLike(op circuit.Operation) bool {
	switch g := op.Gate.(type) {
	case gate.SwapPow:
		return g.T == 1
	case gate.ISwapPow:
		return gate.IsInteger((g.T - 1) / 2)
	case gate.FSim:
		return gate.IsInteger(g.Theta/math.Pi - 0.5)
	case gate.XY:
		return gate.IsInteger(g.T + 0.5)
	}
	return false
}
