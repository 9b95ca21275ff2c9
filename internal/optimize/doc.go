// Package optimize contains the circuit rewrite passes and the pipeline
// that orchestrates them: merging runs of same-family one-parameter gates,
// fusing single-qubit rotations into phased-X/Z form, commuting Z rotations
// towards the end of the circuit, pruning Z rotations that land in front of
// a measurement, and expanding final-only gates.
//
// Every pass computes its edits as data against a consistent snapshot and
// applies them as one atomic batch, so moment indices observed during a
// scan stay valid until the pass completes.
package optimize
