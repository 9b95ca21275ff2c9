package device

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/ctxlog"
)

// qubitIndexRe extracts the first run of digits from a logical qubit name.
var qubitIndexRe = regexp.MustCompile(`^\D*(\d+)`)

// MapCircuit maps a logical circuit into a form bound to this device.
//
// When mapQubits is true, every qubit whose name encodes a numeric index is
// replaced with the device qubit of that index; other qubits pass through
// unchanged. The mapped operations are appended one by one to a fresh
// circuit, which applies insertion-time decomposition as a side effect.
// No connectivity-aware routing is attempted.
func (d *Device) MapCircuit(ctx context.Context, c *circuit.Circuit, mapQubits bool) (*circuit.Circuit, error) {
	logger := ctxlog.FromContext(ctx)

	out := circuit.New()
	for i := 0; i < c.Len(); i++ {
		for _, op := range c.Moment(i).Operations() {
			mapped := op
			if mapQubits {
				var err error
				mapped, err = d.mapOperation(op)
				if err != nil {
					return nil, err
				}
			}
			if err := d.Append(out, mapped); err != nil {
				return nil, err
			}
		}
	}
	logger.Debug("circuit mapped onto device",
		"architecture", d.arch.Name(),
		"moments_in", c.Len(),
		"moments_out", out.Len())
	return out, nil
}

// mapOperation rewrites the operation's qubits onto device qubits.
func (d *Device) mapOperation(op circuit.Operation) (circuit.Operation, error) {
	qubits := make([]circuit.Qubit, len(op.Qubits))
	for i, q := range op.Qubits {
		mapped, err := d.mapQubit(q)
		if err != nil {
			return circuit.Operation{}, err
		}
		qubits[i] = mapped
	}
	return circuit.Operation{Gate: op.Gate, Qubits: qubits, Tags: op.Tags}, nil
}

// mapQubit maps a qubit whose name encodes a numeric index to the device
// qubit of that index. Qubits without an embedded index pass through.
func (d *Device) mapQubit(q circuit.Qubit) (circuit.Qubit, error) {
	if q.IsDeviceQubit() {
		return q, nil
	}
	m := qubitIndexRe.FindStringSubmatch(q.Name)
	if m == nil {
		return q, nil
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return circuit.Qubit{}, fmt.Errorf("parsing qubit index of %q: %w", q.Name, err)
	}
	if idx < 1 || idx > len(d.qubits) {
		return circuit.Qubit{}, fmt.Errorf("qubit %q maps to index %d, outside device range 1..%d", q.Name, idx, len(d.qubits))
	}
	return d.qubits[idx-1], nil
}
