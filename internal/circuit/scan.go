package circuit

// FindUntilBlocked scans forward in time from a per-qubit frontier and
// collects operations until each scanned qubit hits a blocker.
//
// An operation is examined when it acts on a still-active qubit at or after
// that qubit's frontier index. If isBlocker reports true, every qubit of
// the operation is deactivated and the scan on them stops; otherwise the
// operation is collected. Blockage propagates: an operation sharing any
// qubit with an already-blocked one is blocked in turn, never collected.
// The scan ends when every frontier qubit is blocked or the circuit runs
// out.
func (c *Circuit) FindUntilBlocked(frontier map[Qubit]int, isBlocker func(Operation) bool) []IndexedOperation {
	if len(frontier) == 0 {
		return nil
	}
	active := make(map[Qubit]struct{}, len(frontier))
	blocked := make(map[Qubit]struct{})
	begin := -1
	for q, i := range frontier {
		active[q] = struct{}{}
		if begin < 0 || i < begin {
			begin = i
		}
	}

	block := func(op Operation) {
		for _, q := range op.Qubits {
			delete(active, q)
			blocked[q] = struct{}{}
		}
	}

	var out []IndexedOperation
	for i := begin; i < len(c.moments) && len(active) > 0; i++ {
		for _, op := range c.moments[i].ops {
			touchesBlocked := false
			for _, q := range op.Qubits {
				if _, ok := blocked[q]; ok {
					touchesBlocked = true
					break
				}
			}
			if touchesBlocked {
				block(op)
				continue
			}

			examined := false
			for _, q := range op.Qubits {
				start, tracked := frontier[q]
				_, on := active[q]
				if tracked && on && i >= start {
					examined = true
					break
				}
			}
			if !examined {
				continue
			}
			if isBlocker(op) {
				block(op)
				continue
			}
			out = append(out, IndexedOperation{Index: i, Op: op})
		}
	}
	return out
}
