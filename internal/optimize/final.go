package optimize

import (
	"fmt"

	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/device"
)

// decomposeFinal expands every operation whose gate is final-only through
// the architecture's final decomposition hook. The hook declining is fatal.
type decomposeFinal struct {
	dev *device.Device
}

func (p decomposeFinal) RewriteAt(c *circuit.Circuit, index int, op circuit.Operation) (*circuit.RewriteSummary, error) {
	if !p.dev.IsFinal(op) {
		return nil, nil
	}
	rewritten, err := p.dev.Architecture().DecomposeFinal(op)
	if err != nil {
		return nil, err
	}
	if len(rewritten) == 0 {
		return nil, fmt.Errorf("final decomposition of %v returned no operations", op)
	}
	return &circuit.RewriteSummary{
		ClearSpan:     1,
		ClearQubits:   op.Qubits,
		NewOperations: rewritten,
	}, nil
}
