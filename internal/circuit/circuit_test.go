package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gatefold/internal/gate"
)

func q(i int) Qubit { return DeviceQubit(i) }

func TestAppendEarliestPacking(t *testing.T) {
	c := New()
	c.Append(
		Apply(gate.XPow{T: 1}, q(1)),
		Apply(gate.XPow{T: 1}, q(2)), // fits into the same moment
		Apply(gate.CZPow{T: 1}, q(1), q(2)), // blocked by both
		Apply(gate.YPow{T: 1}, q(3)), // free qubit, packs into moment 0
	)
	require.Equal(t, 2, c.Len())
	assert.Len(t, c.Moment(0).Operations(), 3)
	assert.Len(t, c.Moment(1).Operations(), 1)
}

func TestOperationEquality(t *testing.T) {
	a := Apply(gate.ZZ{T: 0.5}, q(1), q(2))
	b := Apply(gate.ZZ{T: 0.5}, q(1), q(2))
	assert.True(t, a.Equal(b))

	// Tags are ignored by equality.
	b.Tags = []string{"virtual"}
	assert.True(t, a.Equal(b))

	assert.False(t, a.Equal(Apply(gate.ZZ{T: 0.5}, q(2), q(1))))
	assert.False(t, a.Equal(Apply(gate.ZZ{T: 0.25}, q(1), q(2))))
}

func TestMeasurementIntrospection(t *testing.T) {
	m := Apply(gate.Measurement{Key: "result", N: 2}, q(1), q(2))
	assert.True(t, m.IsMeasurement())
	key, ok := m.MeasurementKey()
	require.True(t, ok)
	assert.Equal(t, "result", key)

	x := Apply(gate.XPow{T: 1}, q(1))
	assert.False(t, x.IsMeasurement())
	_, ok = x.MeasurementKey()
	assert.False(t, ok)
}

func TestBatchRemove(t *testing.T) {
	c := New()
	opA := Apply(gate.XPow{T: 1}, q(1))
	opB := Apply(gate.YPow{T: 1}, q(1))
	c.Append(opA, opB)

	require.NoError(t, c.BatchRemove([]IndexedOperation{{Index: 0, Op: opA}}))
	assert.Len(t, c.Moment(0).Operations(), 0)
	assert.Len(t, c.Moment(1).Operations(), 1)

	err := c.BatchRemove([]IndexedOperation{{Index: 0, Op: opA}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in moment")
}

func TestBatchInsertIntoEnforcesDisjointness(t *testing.T) {
	c := New()
	c.Append(Apply(gate.XPow{T: 1}, q(1)))

	require.NoError(t, c.BatchInsertInto([]IndexedOperation{
		{Index: 0, Op: Apply(gate.YPow{T: 1}, q(2))},
	}))

	err := c.BatchInsertInto([]IndexedOperation{
		{Index: 0, Op: Apply(gate.ZPow{T: 1}, q(1))},
	})
	require.Error(t, err)
}

func TestBatchInsertUsesOriginalIndices(t *testing.T) {
	c := New()
	c.Append(Apply(gate.XPow{T: 1}, q(1)))
	c.Append(Apply(gate.YPow{T: 1}, q(1)))

	// Insert before both moments in one batch; indices refer to the
	// circuit before the batch.
	require.NoError(t, c.BatchInsert([]IndexedOperation{
		{Index: 0, Op: Apply(gate.ZPow{T: 0.5}, q(1))},
		{Index: 1, Op: Apply(gate.ZPow{T: 0.25}, q(1))},
		{Index: 2, Op: Apply(gate.ZPow{T: 0.125}, q(1))},
	}))

	var gates []gate.Gate
	for _, op := range c.AllOperations() {
		gates = append(gates, op.Gate)
	}
	assert.Equal(t, []gate.Gate{
		gate.ZPow{T: 0.5},
		gate.XPow{T: 1},
		gate.ZPow{T: 0.25},
		gate.YPow{T: 1},
		gate.ZPow{T: 0.125},
	}, gates)
}

func TestDropEmptyMoments(t *testing.T) {
	c := New()
	op := Apply(gate.XPow{T: 1}, q(1))
	c.Append(op)
	c.Append(Apply(gate.YPow{T: 1}, q(1)))
	require.NoError(t, c.BatchRemove([]IndexedOperation{{Index: 0, Op: op}}))

	assert.True(t, c.DropEmptyMoments())
	require.Equal(t, 1, c.Len())
	assert.False(t, c.DropEmptyMoments())
}

func TestApplyRewrite(t *testing.T) {
	c := New()
	c.Append(Apply(gate.ZZ{T: 0.7}, q(1), q(2)))
	c.Append(Apply(gate.ZZ{T: 0.7}, q(1), q(2)))
	c.Append(Apply(gate.XPow{T: 1}, q(3)))

	inserted := c.ApplyRewrite(0, RewriteSummary{
		ClearSpan:     2,
		ClearQubits:   []Qubit{q(1), q(2)},
		NewOperations: []Operation{Apply(gate.ZZ{T: -0.6}, q(1), q(2))},
	})
	assert.Equal(t, 1, inserted)

	c.DropEmptyMoments()
	ops := c.AllOperations()
	require.Len(t, ops, 2)
	assert.Equal(t, gate.ZZ{T: -0.6}, ops[0].Gate)

	// Operations on other qubits inside the span survive.
	assert.Equal(t, gate.XPow{T: 1}, ops[1].Gate)
}

func TestFindUntilBlocked(t *testing.T) {
	c := New()
	c.Append(Apply(gate.ZZ{T: 0.1}, q(1), q(2)))
	c.Append(Apply(gate.ZZ{T: 0.2}, q(1), q(2)))
	c.Append(Apply(gate.CZPow{T: 1}, q(1), q(2)))
	c.Append(Apply(gate.ZZ{T: 0.3}, q(1), q(2)))

	isBlocker := func(op Operation) bool {
		_, ok := op.Gate.(gate.ZZ)
		return !ok
	}
	found := c.FindUntilBlocked(map[Qubit]int{q(1): 0, q(2): 0}, isBlocker)
	require.Len(t, found, 2, "scan must stop at the CZ blocker")
	assert.Equal(t, 0, found[0].Index)
	assert.Equal(t, 1, found[1].Index)
}

func TestFindUntilBlockedPropagatesBlockage(t *testing.T) {
	// The X on qubit 1 blocks that wire; the trailing ZZ shares the
	// blocked wire, so it is blocked in turn even though qubit 2 is
	// still active.
	c := New()
	c.Append(Apply(gate.ZZ{T: 0.2}, q(1), q(2)))
	c.Append(Apply(gate.XPow{T: 1}, q(1)))
	c.Append(Apply(gate.ZZ{T: 0.3}, q(1), q(2)))

	isBlocker := func(op Operation) bool {
		_, ok := op.Gate.(gate.ZZ)
		return !ok
	}
	found := c.FindUntilBlocked(map[Qubit]int{q(1): 0, q(2): 0}, isBlocker)
	require.Len(t, found, 1)
	assert.Equal(t, 0, found[0].Index)
}
