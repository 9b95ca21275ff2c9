package optimize

import (
	"math"

	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/gate"
)

// mergeTolerance is the magnitude below which a merged exponent is treated
// as the identity.
const mergeTolerance = 1e-10

// mergeFamilies merges maximal runs of adjacent gates belonging to the
// same one-parameter periodic family and acting on the same qubits, by
// summing their exponents modulo the family period. A run that sums to the
// identity is removed outright.
type mergeFamilies struct{}

func (mergeFamilies) RewriteAt(c *circuit.Circuit, index int, op circuit.Operation) (*circuit.RewriteSummary, error) {
	group, ok := op.Gate.(gate.OneParameterGroup)
	if !ok {
		return nil, nil
	}

	isNotMergeable := func(next circuit.Operation) bool {
		nextGroup, ok := next.Gate.(gate.OneParameterGroup)
		if !ok || nextGroup.Family() != group.Family() {
			return true
		}
		if group.InterchangeableQubits() {
			return !sameQubitSet(op.Qubits, next.Qubits)
		}
		return !sameQubitOrder(op.Qubits, next.Qubits)
	}

	frontier := make(map[circuit.Qubit]int, len(op.Qubits))
	for _, q := range op.Qubits {
		frontier[q] = index
	}
	run := c.FindUntilBlocked(frontier, isNotMergeable)
	if len(run) <= 1 {
		return nil, nil
	}

	sum := 0.0
	last := index
	for _, item := range run {
		sum += item.Op.Gate.(gate.OneParameterGroup).Exponent()
		if item.Index > last {
			last = item.Index
		}
	}

	// Zero exponent (mod period) is the identity. Floating error can leave
	// the sum just under a period boundary, so shift away from the boundary
	// before taking the modulo.
	period := group.Period()
	par := math.Mod(sum+period/2, period)
	if par < 0 {
		par += period
	}
	par -= period / 2

	var rewritten []circuit.Operation
	if math.Abs(par) > mergeTolerance {
		rewritten = []circuit.Operation{circuit.Apply(group.WithExponent(par), op.Qubits...)}
	}
	return &circuit.RewriteSummary{
		ClearSpan:     last + 1 - index,
		ClearQubits:   op.Qubits,
		NewOperations: rewritten,
	}, nil
}
