package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/gate"
)

func TestDropZBeforeMeasurement(t *testing.T) {
	c := circuit.New()
	c.Append(circuit.Apply(gate.ZPow{T: 0.3}, qb(1)))
	c.Append(circuit.Apply(gate.Measurement{Key: "m", N: 1}, qb(1)))

	changed, err := runPointRewrites(c, dropZBeforeMeasurement{}, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	c.DropEmptyMoments()
	gates := circuitGates(c)
	require.Len(t, gates, 1)
	assert.Equal(t, gate.Measurement{Key: "m", N: 1}, gates[0])
}

func TestDropZChainBeforeMeasurement(t *testing.T) {
	c := circuit.New()
	c.Append(circuit.Apply(gate.ZPow{T: 0.3}, qb(1)))
	c.Append(circuit.Apply(gate.ZPow{T: -0.1}, qb(1)))
	c.Append(circuit.Apply(gate.Measurement{Key: "m", N: 1}, qb(1)))

	changed, err := runPointRewrites(c, dropZBeforeMeasurement{}, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	c.DropEmptyMoments()
	require.Len(t, c.AllOperations(), 1)
}

func TestDropZKeptWhenObservableGateFollows(t *testing.T) {
	c := circuit.New()
	c.Append(circuit.Apply(gate.ZPow{T: 0.3}, qb(1)))
	c.Append(circuit.Apply(gate.XPow{T: 0.5}, qb(1)))
	c.Append(circuit.Apply(gate.Measurement{Key: "m", N: 1}, qb(1)))

	changed, err := runPointRewrites(c, dropZBeforeMeasurement{}, nil)
	require.NoError(t, err)
	assert.False(t, changed, "a Z with an observable gate before the measurement must stay")
	assert.Len(t, c.AllOperations(), 3)
}

func TestDropZKeptAtCircuitEnd(t *testing.T) {
	c := circuit.New()
	c.Append(circuit.Apply(gate.ZPow{T: 0.3}, qb(1)))

	changed, err := runPointRewrites(c, dropZBeforeMeasurement{}, nil)
	require.NoError(t, err)
	assert.False(t, changed, "a trailing Z without a measurement is not removable")
}

func TestDropZRequiresExactQubitTuple(t *testing.T) {
	// The Z acts on qubit 1 but the measurement covers both qubits; the
	// forward scan never sees a measurement on the Z's exact tuple.
	c := circuit.New()
	c.Append(circuit.Apply(gate.ZPow{T: 0.3}, qb(1)))
	c.Append(circuit.Apply(gate.Measurement{Key: "m", N: 2}, qb(1), qb(2)))

	changed, err := runPointRewrites(c, dropZBeforeMeasurement{}, nil)
	require.NoError(t, err)
	assert.False(t, changed)
}
