package gate

import (
	"math"
	"math/cmplx"
)

// Matrix2 is a 2x2 complex matrix in row-major order.
type Matrix2 [4]complex128

// Mul returns the matrix product m·n.
func (m Matrix2) Mul(n Matrix2) Matrix2 {
	return Matrix2{
		m[0]*n[0] + m[1]*n[2], m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2], m[2]*n[1] + m[3]*n[3],
	}
}

// Identity2 is the 2x2 identity matrix.
var Identity2 = Matrix2{1, 0, 0, 1}

// involutionPow returns P^t for an involution P (P^2 = I), using
// P^t = e^(i*pi*t/2) * (cos(pi*t/2)*I - i*sin(pi*t/2)*P).
func involutionPow(p Matrix2, t float64) Matrix2 {
	phase := cmplx.Exp(complex(0, math.Pi*t/2))
	c := complex(math.Cos(math.Pi*t/2), 0)
	s := complex(0, -math.Sin(math.Pi*t/2))
	var out Matrix2
	for k := range out {
		out[k] = phase * (c*Identity2[k] + s*p[k])
	}
	return out
}

var (
	matX = Matrix2{0, 1, 1, 0}
	matY = Matrix2{0, -1i, 1i, 0}
	matZ = Matrix2{1, 0, 0, -1}
	matH = Matrix2{
		complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0),
		complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0),
	}
)

// Unitary returns the 2x2 unitary of a single-qubit gate, or false if the
// gate is not a single-qubit gate with a known matrix.
func Unitary(g Gate) (Matrix2, bool) {
	switch t := g.(type) {
	case XPow:
		return involutionPow(matX, t.T), true
	case YPow:
		return involutionPow(matY, t.T), true
	case ZPow:
		return involutionPow(matZ, t.T), true
	case H:
		return matH, true
	case PhasedXPow:
		zp := involutionPow(matZ, t.P)
		zm := involutionPow(matZ, -t.P)
		return zp.Mul(involutionPow(matX, t.T)).Mul(zm), true
	}
	return Matrix2{}, false
}

// PhasedXZ is the canonical form of a single-qubit unitary: a PhasedXPow
// rotation followed in time by a Z rotation, equal (up to global phase) to
// Z^Z · PhasedX(X, P) as a matrix product.
type PhasedXZ struct {
	X float64 // phased-X exponent
	P float64 // phased-X phase exponent
	Z float64 // trailing Z exponent
}

// DeconstructPhasedXZ decomposes an arbitrary single-qubit unitary into the
// canonical PhasedXZ form, all exponents centered into (-1, 1].
//
// The matrix is first normalized into SU(2) and Euler-decomposed as
// Rz(beta)·Ry(gamma)·Rz(alpha), then rewritten through
// Ry(gamma) = Rz(pi/2)·Rx(gamma)·Rz(-pi/2) into the phased-X form.
func DeconstructPhasedXZ(u Matrix2) PhasedXZ {
	// Normalize to SU(2): divide out sqrt(det). |det| = 1 for a unitary.
	det := u[0]*u[3] - u[1]*u[2]
	phase := cmplx.Exp(complex(0, -cmplx.Phase(det)/2))
	for k := range u {
		u[k] *= phase
	}

	// u00 = cos(g/2)·e^(-i(a+b)/2), u10 = sin(g/2)·e^(i(b-a)/2),
	// u11 = cos(g/2)·e^(i(a+b)/2).
	gamma := 2 * math.Atan2(cmplx.Abs(u[2]), cmplx.Abs(u[0]))

	var alpha, beta float64
	const atol = 1e-12
	switch {
	case cmplx.Abs(u[0]) <= atol:
		// Pure off-diagonal: only b-a is determined, fix a+b = 0.
		beta = cmplx.Phase(u[2])
		alpha = -beta
	case cmplx.Abs(u[2]) <= atol:
		// Diagonal: only a+b is determined, fix a-b = 0.
		alpha = cmplx.Phase(u[3])
		beta = alpha
	default:
		sum := cmplx.Phase(u[3])  // (a+b)/2
		diff := cmplx.Phase(u[2]) // (b-a)/2
		alpha = sum - diff
		beta = sum + diff
	}

	return PhasedXZ{
		X: CanonicalHalfTurns(gamma / math.Pi),
		P: CanonicalHalfTurns(0.5 - alpha/math.Pi),
		Z: CanonicalHalfTurns((alpha + beta) / math.Pi),
	}
}
