// Package decompose implements the recursive gate decomposition driver: an
// architecture-supplied intercepting decomposer gets the first chance at
// every operation, and a table of universal gate identities serves as the
// generic fallback. Expansion recurses until every leaf operation satisfies
// the keep predicate; if neither the interceptor nor the fallback can make
// progress, the decomposition is stuck and reported as a fatal error.
package decompose

import (
	"fmt"

	"github.com/vk/gatefold/internal/circuit"
)

// Interceptor is an architecture's decomposition hook. It returns a
// replacement sequence for the operation, or false to decline and let the
// generic fallback handle it.
type Interceptor func(op circuit.Operation) ([]circuit.Operation, bool)

// maxDepth bounds the expansion recursion. The universal identity table
// contains cycles (cx -> cz -> zz -> cx), so a keep predicate that accepts
// none of the cycle's members would otherwise recurse forever; hitting the
// bound is reported as a stuck decomposition.
const maxDepth = 25

// Run expands the operation until every leaf satisfies keep. Operations
// satisfying keep are returned unchanged.
func Run(op circuit.Operation, keep func(circuit.Operation) bool, intercept Interceptor) ([]circuit.Operation, error) {
	var out []circuit.Operation
	var expand func(op circuit.Operation, depth int) error
	expand = func(op circuit.Operation, depth int) error {
		if keep(op) {
			out = append(out, op)
			return nil
		}
		if depth >= maxDepth {
			return fmt.Errorf("decomposition stuck: no native expansion reachable for %v", op)
		}
		repl, ok := intercept(op)
		if !ok {
			repl, ok = Fallback(op)
		}
		if !ok {
			return fmt.Errorf("decomposition stuck: no decomposition known for %v", op)
		}
		for _, sub := range repl {
			if err := expand(sub, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := expand(op, 0); err != nil {
		return nil, err
	}
	return out, nil
}
