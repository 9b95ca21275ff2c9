package optimize

import (
	"github.com/vk/gatefold/internal/circuit"
)

// Rewriter is a local point-rewrite: it examines one operation at a moment
// index and either returns a rewrite summary or nil for no change.
type Rewriter interface {
	RewriteAt(c *circuit.Circuit, index int, op circuit.Operation) (*circuit.RewriteSummary, error)
}

// transformFunc maps a pass's replacement operations before insertion;
// the pipeline uses it to apply insertion-time decomposition.
type transformFunc func(ops []circuit.Operation) ([]circuit.Operation, error)

// runPointRewrites drives a rewriter across the circuit in time order and
// reports whether any rewrite was applied.
//
// A per-qubit frontier guards against reprocessing the qubits a rewrite
// just cleared, which keeps the scan terminating even though a rewrite
// restarts the current moment.
func runPointRewrites(c *circuit.Circuit, r Rewriter, transform transformFunc) (bool, error) {
	frontier := make(map[circuit.Qubit]int)
	changed := false

	i := 0
	for i < c.Len() {
		applied := false
		for _, op := range c.Moment(i).Operations() {
			blocked := false
			for _, q := range op.Qubits {
				if frontier[q] > i {
					blocked = true
					break
				}
			}
			if blocked {
				continue
			}

			summary, err := r.RewriteAt(c, i, op)
			if err != nil {
				return changed, err
			}
			if summary == nil {
				continue
			}

			newOps := summary.NewOperations
			if transform != nil {
				newOps, err = transform(newOps)
				if err != nil {
					return changed, err
				}
			}
			inserted := c.ApplyRewrite(i, circuit.RewriteSummary{
				ClearSpan:     summary.ClearSpan,
				ClearQubits:   summary.ClearQubits,
				NewOperations: newOps,
			})

			// Account for the splice: previously recorded frontiers past
			// this index shift with the inserted moments.
			if inserted > 0 {
				for q, f := range frontier {
					if f > i {
						frontier[q] = f + inserted
					}
				}
			}
			for _, q := range summary.ClearQubits {
				frontier[q] = i + inserted + summary.ClearSpan
			}

			changed = true
			applied = true
			break
		}
		if !applied {
			i++
		}
	}
	return changed, nil
}

// sameQubitSet reports whether two qubit tuples cover the same set.
func sameQubitSet(a, b []circuit.Qubit) bool {
	if len(a) != len(b) {
		return false
	}
	for _, qa := range a {
		found := false
		for _, qb := range b {
			if qa == qb {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sameQubitOrder reports whether two qubit tuples are identical.
func sameQubitOrder(a, b []circuit.Qubit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
