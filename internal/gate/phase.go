package gate

import "math"

// PhaseBy conjugates a gate by a Z rotation of the given half-turn angle on
// one of its qubits: Z^t_i · G · Z^-t_i. It returns the transformed gate and
// true when the family supports the transform, or nil and false otherwise.
//
// Diagonal gates commute with Z rotations and pass through unchanged. X and
// Y rotations pick up a phase and are promoted into the phased-X family.
func PhaseBy(g Gate, halfTurns float64, qubitIndex int) (Gate, bool) {
	switch t := g.(type) {
	case XPow:
		return PhasedXPow{T: t.T, P: halfTurns}, true
	case YPow:
		return PhasedXPow{T: t.T, P: 0.5 + halfTurns}, true
	case PhasedXPow:
		return PhasedXPow{T: t.T, P: t.P + halfTurns}, true
	case ZPow, CZPow, ZZ:
		return g, true
	}
	return nil, false
}

// CanonicalHalfTurns centers a half-turn exponent into the interval (-1, 1].
func CanonicalHalfTurns(t float64) float64 {
	m := math.Mod(t, 2)
	if m <= -1 {
		m += 2
	} else if m > 1 {
		m -= 2
	}
	return m
}

// IsNegligibleHalfTurns reports whether a half-turn rotation is within the
// tolerance of a whole number of turns, i.e. of the identity.
func IsNegligibleHalfTurns(t, tol float64) bool {
	return math.Abs(CanonicalHalfTurns(t)) <= tol
}

// IsInteger reports whether the value is an integer up to float noise.
func IsInteger(v float64) bool {
	return math.Abs(v-math.Round(v)) < 1e-9
}
