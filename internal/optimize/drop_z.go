package optimize

import (
	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/gate"
)

// dropZBeforeMeasurement removes Z rotations that are followed, on the
// exact same qubit tuple, only by further Z rotations and then a z-basis
// measurement. Such rotations cannot affect the measured result.
type dropZBeforeMeasurement struct{}

func (dropZBeforeMeasurement) RewriteAt(c *circuit.Circuit, index int, op circuit.Operation) (*circuit.RewriteSummary, error) {
	if _, ok := op.Gate.(gate.ZPow); !ok {
		return nil, nil
	}
	indices := findRemovableZ(c, index, op)
	if len(indices) == 0 {
		return nil, nil
	}
	last := indices[len(indices)-1]
	return &circuit.RewriteSummary{
		ClearSpan:   last + 1 - index,
		ClearQubits: op.Qubits,
	}, nil
}

// findRemovableZ scans forward from index over operations on op's exact
// qubit tuple, accumulating Z rotation positions. The positions are
// removable only if the scan reaches a measurement before any other kind
// of operation; otherwise nothing is removed.
func findRemovableZ(c *circuit.Circuit, index int, op circuit.Operation) []int {
	var indices []int
	for i := index; i < c.Len(); i++ {
		for _, x := range c.Moment(i).Operations() {
			if !sameQubitOrder(x.Qubits, op.Qubits) {
				continue
			}
			if _, ok := x.Gate.(gate.ZPow); ok {
				indices = append(indices, i)
				break
			}
			if x.IsMeasurement() {
				return indices
			}
			return nil
		}
	}
	return nil
}
