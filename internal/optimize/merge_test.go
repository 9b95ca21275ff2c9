package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/gate"
)

func qb(i int) circuit.Qubit { return circuit.DeviceQubit(i) }

func TestMergeFamiliesSumsModuloPeriod(t *testing.T) {
	c := circuit.New()
	c.Append(
		circuit.Apply(gate.ZZ{T: 0.7}, qb(1), qb(2)),
		circuit.Apply(gate.ZZ{T: 0.7}, qb(1), qb(2)),
	)

	changed, err := runPointRewrites(c, mergeFamilies{}, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	c.DropEmptyMoments()
	ops := c.AllOperations()
	require.Len(t, ops, 1)
	g, ok := ops[0].Gate.(gate.ZZ)
	require.True(t, ok)
	assert.InDelta(t, -0.6, g.T, 1e-12, "1.4 wraps to -0.6 under the period-2 group")
}

func TestMergeFamiliesIdentityRunIsRemoved(t *testing.T) {
	c := circuit.New()
	c.Append(
		circuit.Apply(gate.XY{T: 0.5}, qb(1), qb(2)),
		circuit.Apply(gate.XY{T: 1.5}, qb(1), qb(2)),
	)

	changed, err := runPointRewrites(c, mergeFamilies{}, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	c.DropEmptyMoments()
	assert.Empty(t, c.AllOperations())
}

func TestMergeFamiliesInterchangeableQubitOrder(t *testing.T) {
	c := circuit.New()
	c.Append(
		circuit.Apply(gate.ZZ{T: 0.2}, qb(1), qb(2)),
		circuit.Apply(gate.ZZ{T: 0.3}, qb(2), qb(1)),
	)

	changed, err := runPointRewrites(c, mergeFamilies{}, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	c.DropEmptyMoments()
	ops := c.AllOperations()
	require.Len(t, ops, 1)
	g, ok := ops[0].Gate.(gate.ZZ)
	require.True(t, ok)
	assert.InDelta(t, 0.5, g.T, 1e-12)
}

func TestMergeFamiliesBlockedByInterposedGate(t *testing.T) {
	c := circuit.New()
	c.Append(circuit.Apply(gate.ZZ{T: 0.2}, qb(1), qb(2)))
	c.Append(circuit.Apply(gate.CZPow{T: 1}, qb(1), qb(2)))
	c.Append(circuit.Apply(gate.ZZ{T: 0.3}, qb(1), qb(2)))

	changed, err := runPointRewrites(c, mergeFamilies{}, nil)
	require.NoError(t, err)
	assert.False(t, changed, "runs separated by a blocker must not merge")
	assert.Equal(t, 3, c.Len())
}

func TestMergeFamiliesBlockedBySingleQubitGate(t *testing.T) {
	// The X on qubit 1 does not commute with the ZZ interactions around
	// it; the pair must not merge across it and the X must survive.
	c := circuit.New()
	c.Append(circuit.Apply(gate.ZZ{T: 0.2}, qb(1), qb(2)))
	c.Append(circuit.Apply(gate.XPow{T: 1}, qb(1)))
	c.Append(circuit.Apply(gate.ZZ{T: 0.3}, qb(1), qb(2)))

	changed, err := runPointRewrites(c, mergeFamilies{}, nil)
	require.NoError(t, err)
	assert.False(t, changed)

	gates := circuitGates(c)
	require.Len(t, gates, 3)
	assert.Equal(t, gate.ZZ{T: 0.2}, gates[0])
	assert.Equal(t, gate.XPow{T: 1}, gates[1])
	assert.Equal(t, gate.ZZ{T: 0.3}, gates[2])
}

func TestMergeFamiliesDifferentFamiliesDoNotMix(t *testing.T) {
	c := circuit.New()
	c.Append(circuit.Apply(gate.ZZ{T: 0.2}, qb(1), qb(2)))
	c.Append(circuit.Apply(gate.XY{T: 0.3}, qb(1), qb(2)))

	changed, err := runPointRewrites(c, mergeFamilies{}, nil)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMergeFamiliesIdempotent(t *testing.T) {
	c := circuit.New()
	c.Append(
		circuit.Apply(gate.ZZ{T: 0.7}, qb(1), qb(2)),
		circuit.Apply(gate.ZZ{T: 0.7}, qb(1), qb(2)),
	)
	_, err := runPointRewrites(c, mergeFamilies{}, nil)
	require.NoError(t, err)

	changed, err := runPointRewrites(c, mergeFamilies{}, nil)
	require.NoError(t, err)
	assert.False(t, changed, "a second sweep must be a fixed point")
}

func TestMergeSingleQubitFusesRun(t *testing.T) {
	c := circuit.New()
	c.Append(
		circuit.Apply(gate.XPow{T: 0.5}, qb(1)),
		circuit.Apply(gate.XPow{T: 0.5}, qb(1)),
	)

	changed, err := runPointRewrites(c, mergeSingleQubit{}, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	c.DropEmptyMoments()
	ops := c.AllOperations()
	require.Len(t, ops, 1)
	g, ok := ops[0].Gate.(gate.PhasedXPow)
	require.True(t, ok)
	assert.InDelta(t, 0, gate.CanonicalHalfTurns(g.T-1), 1e-9)
	assert.InDelta(t, 0, gate.CanonicalHalfTurns(g.P), 1e-9)
}

func TestMergeSingleQubitIdentityRunIsRemoved(t *testing.T) {
	c := circuit.New()
	c.Append(
		circuit.Apply(gate.H{}, qb(1)),
		circuit.Apply(gate.H{}, qb(1)),
	)

	changed, err := runPointRewrites(c, mergeSingleQubit{}, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	c.DropEmptyMoments()
	assert.Empty(t, c.AllOperations())
}

func TestMergeSingleQubitCanonicalRunUntouched(t *testing.T) {
	c := circuit.New()
	c.Append(circuit.Apply(gate.PhasedXPow{T: 0.5, P: 0.25}, qb(1)))
	c.Append(circuit.Apply(gate.ZPow{T: 0.25}, qb(1)))

	changed, err := runPointRewrites(c, mergeSingleQubit{}, nil)
	require.NoError(t, err)
	assert.False(t, changed, "a run already in phased-X/Z form is a fixed point")
}

func TestMergeSingleQubitStopsAtTwoQubitGate(t *testing.T) {
	c := circuit.New()
	c.Append(circuit.Apply(gate.XPow{T: 0.5}, qb(1)))
	c.Append(circuit.Apply(gate.CZPow{T: 1}, qb(1), qb(2)))
	c.Append(circuit.Apply(gate.XPow{T: 0.5}, qb(1)))

	_, err := runPointRewrites(c, mergeSingleQubit{}, nil)
	require.NoError(t, err)

	// The CZ must survive; the rotations on either side stay separate.
	var czCount int
	for _, op := range c.AllOperations() {
		if _, ok := op.Gate.(gate.CZPow); ok {
			czCount++
		}
	}
	assert.Equal(t, 1, czCount)
}
