// Package circuit provides the time-ordered operation container the
// compiler passes mutate: qubits, operations, moments (time-slices of
// qubit-disjoint operations) and the batched edit primitives that let a
// pass compute its full edit set against stable indices before applying it.
package circuit

import (
	"fmt"
	"strings"

	"github.com/vk/gatefold/internal/gate"
)

// Qubit identifies a single qubit. Device qubits carry a positive index and
// a derived name; purely logical qubits carry only a name.
type Qubit struct {
	Name  string
	Index int
}

// DeviceQubit returns the device qubit with the given 1-based index.
func DeviceQubit(index int) Qubit {
	return Qubit{Name: fmt.Sprintf("QB%d", index), Index: index}
}

// NamedQubit returns a logical qubit identified only by name.
func NamedQubit(name string) Qubit {
	return Qubit{Name: name}
}

// IsDeviceQubit reports whether the qubit is a device qubit.
func (q Qubit) IsDeviceQubit() bool { return q.Index >= 1 }

func (q Qubit) String() string { return q.Name }

// Operation is a gate applied to an ordered tuple of qubits, optionally
// carrying structural tags. Equality is by gate and qubit tuple; tags are
// ignored.
type Operation struct {
	Gate   gate.Gate
	Qubits []Qubit
	Tags   []string
}

// Apply builds an operation applying the gate to the given qubits.
func Apply(g gate.Gate, qubits ...Qubit) Operation {
	return Operation{Gate: g, Qubits: qubits}
}

// Equal reports whether two operations apply the same gate to the same
// qubit tuple.
func (op Operation) Equal(other Operation) bool {
	if op.Gate != other.Gate || len(op.Qubits) != len(other.Qubits) {
		return false
	}
	for i := range op.Qubits {
		if op.Qubits[i] != other.Qubits[i] {
			return false
		}
	}
	return true
}

// IsMeasurement reports whether the operation is a measurement.
func (op Operation) IsMeasurement() bool {
	_, ok := op.Gate.(gate.Measurement)
	return ok
}

// MeasurementKey returns the measurement key, if the operation is a
// measurement.
func (op Operation) MeasurementKey() (string, bool) {
	m, ok := op.Gate.(gate.Measurement)
	if !ok {
		return "", false
	}
	return m.Key, true
}

// Touches reports whether the operation acts on any of the given qubits.
func (op Operation) Touches(qubits []Qubit) bool {
	for _, q := range op.Qubits {
		for _, other := range qubits {
			if q == other {
				return true
			}
		}
	}
	return false
}

func (op Operation) String() string {
	names := make([]string, len(op.Qubits))
	for i, q := range op.Qubits {
		names[i] = q.Name
	}
	return fmt.Sprintf("%v(%s)", op.Gate, strings.Join(names, ","))
}

// Moment is a time-slice of operations executing concurrently. No qubit may
// appear in more than one operation within a moment.
type Moment struct {
	ops []Operation
}

// Operations returns the operations in the moment, in insertion order.
func (m *Moment) Operations() []Operation { return m.ops }

// Empty reports whether the moment holds no operations.
func (m *Moment) Empty() bool { return len(m.ops) == 0 }

// touchesAny reports whether any operation in the moment acts on one of
// the given qubits.
func (m *Moment) touchesAny(qubits []Qubit) bool {
	for _, op := range m.ops {
		if op.Touches(qubits) {
			return true
		}
	}
	return false
}

// add inserts an operation, enforcing qubit-disjointness.
func (m *Moment) add(op Operation) error {
	if m.touchesAny(op.Qubits) {
		return fmt.Errorf("moment already contains an operation on a qubit of %v", op)
	}
	m.ops = append(m.ops, op)
	return nil
}

// removeTouching drops every operation acting on any of the given qubits.
func (m *Moment) removeTouching(qubits []Qubit) int {
	kept := m.ops[:0]
	removed := 0
	for _, op := range m.ops {
		if op.Touches(qubits) {
			removed++
			continue
		}
		kept = append(kept, op)
	}
	m.ops = kept
	return removed
}

// Circuit is an ordered sequence of moments.
type Circuit struct {
	moments []*Moment
}

// New returns an empty circuit.
func New() *Circuit { return &Circuit{} }

// Len returns the number of moments.
func (c *Circuit) Len() int { return len(c.moments) }

// Moment returns the moment at the given index.
func (c *Circuit) Moment(i int) *Moment { return c.moments[i] }

// Append inserts each operation at the earliest moment where all of its
// qubits are free, after the last moment that touches any of them. A new
// moment is created at the end when none is available.
func (c *Circuit) Append(ops ...Operation) {
	for _, op := range ops {
		at := len(c.moments)
		for i := len(c.moments) - 1; i >= 0; i-- {
			if c.moments[i].touchesAny(op.Qubits) {
				break
			}
			at = i
		}
		if at == len(c.moments) {
			c.moments = append(c.moments, &Moment{})
		}
		// Disjointness holds by choice of moment.
		c.moments[at].ops = append(c.moments[at].ops, op)
	}
}

// AllOperations returns every operation in time order.
func (c *Circuit) AllOperations() []Operation {
	var out []Operation
	for _, m := range c.moments {
		out = append(out, m.ops...)
	}
	return out
}

// DropEmptyMoments removes all empty moments and reports whether any were
// removed.
func (c *Circuit) DropEmptyMoments() bool {
	kept := c.moments[:0]
	changed := false
	for _, m := range c.moments {
		if m.Empty() {
			changed = true
			continue
		}
		kept = append(kept, m)
	}
	c.moments = kept
	return changed
}

func (c *Circuit) String() string {
	var b strings.Builder
	for i, m := range c.moments {
		fmt.Fprintf(&b, "%d:", i)
		for _, op := range m.ops {
			fmt.Fprintf(&b, " %v", op)
		}
		b.WriteString("\n")
	}
	return b.String()
}
