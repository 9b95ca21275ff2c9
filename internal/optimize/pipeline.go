package optimize

import (
	"context"

	"github.com/vk/gatefold/internal/circuit"
	"github.com/vk/gatefold/internal/ctxlog"
	"github.com/vk/gatefold/internal/device"
)

// maxRounds caps the fixed-point iteration of the merge/eject rounds.
// Typical circuits converge within a handful of rounds; the cap only
// guards against a pathological ping-pong between passes.
const maxRounds = 20

// Simplify optimizes the circuit in place for the given device.
//
// It repeats { gate-family merge, single-qubit fusion, Z ejection,
// empty-moment compaction } until the circuit stops changing (or the
// safety cap is hit), then prunes Z rotations in front of measurements,
// compacts once more, and expands the remaining final-only gates.
// Replacement operations emitted by any pass are run through
// insertion-time decomposition before they are inserted.
func Simplify(ctx context.Context, dev *device.Device, c *circuit.Circuit) error {
	logger := ctxlog.FromContext(ctx)

	insertDecompose := func(ops []circuit.Operation) ([]circuit.Operation, error) {
		var out []circuit.Operation
		for _, op := range ops {
			dec, err := dev.DecomposeOperation(op)
			if err != nil {
				return nil, err
			}
			out = append(out, dec...)
		}
		return out, nil
	}

	rounds := 0
	for ; rounds < maxRounds; rounds++ {
		before := c.String()
		if _, err := runPointRewrites(c, mergeFamilies{}, insertDecompose); err != nil {
			return err
		}
		if _, err := runPointRewrites(c, mergeSingleQubit{}, insertDecompose); err != nil {
			return err
		}
		if _, err := (ejectZ{}).Run(c); err != nil {
			return err
		}
		c.DropEmptyMoments()
		if c.String() == before {
			break
		}
	}
	logger.Debug("simplification rounds finished", "rounds", rounds)

	if _, err := runPointRewrites(c, dropZBeforeMeasurement{}, insertDecompose); err != nil {
		return err
	}
	c.DropEmptyMoments()
	if _, err := runPointRewrites(c, decomposeFinal{dev: dev}, insertDecompose); err != nil {
		return err
	}
	return nil
}
