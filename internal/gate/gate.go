// Package gate defines the gate model used throughout the compiler: gate
// identity is a family tag plus parameters, not a type hierarchy. All
// exponents and phases are measured in half-turns (multiply by pi to get
// radians).
package gate

import "fmt"

// Family is the tag identifying a gate family.
type Family string

const (
	FamilyX       Family = "x"
	FamilyY       Family = "y"
	FamilyZ       Family = "z"
	FamilyH       Family = "h"
	FamilyPhasedX Family = "phased_x"
	FamilyCZ      Family = "cz"
	FamilyCX      Family = "cx"
	FamilySwap    Family = "swap"
	FamilyISwap   Family = "iswap"
	FamilyFSim    Family = "fsim"
	FamilyXY      Family = "xy"
	FamilyZZ      Family = "zz"
	FamilyMeasure Family = "measure"
)

// knownFamilies maps the manifest spelling of each family to its tag.
var knownFamilies = map[string]Family{
	"x": FamilyX, "y": FamilyY, "z": FamilyZ, "h": FamilyH,
	"phased_x": FamilyPhasedX, "cz": FamilyCZ, "cx": FamilyCX,
	"swap": FamilySwap, "iswap": FamilyISwap, "fsim": FamilyFSim,
	"xy": FamilyXY, "zz": FamilyZZ, "measure": FamilyMeasure,
}

// ParseFamily resolves a gate family name as it appears in an architecture
// manifest.
func ParseFamily(name string) (Family, error) {
	f, ok := knownFamilies[name]
	if !ok {
		return "", fmt.Errorf("unknown gate family: %q", name)
	}
	return f, nil
}

// Gate is a single quantum gate. Implementations are small comparable value
// types, so two gates are equal exactly when their family and parameters
// are equal.
type Gate interface {
	Family() Family
	Arity() int
}

// Power is a gate raised to a real half-turn exponent.
type Power interface {
	Gate
	Exponent() float64
}

// OneParameterGroup marks a gate family that forms a one-parameter group,
// so adjacent members acting on the same qubits can be merged by summing
// exponents modulo the family period.
type OneParameterGroup interface {
	Power
	// Period is the exponent period of the family, in half-turns.
	Period() float64
	// InterchangeableQubits reports whether the gate is symmetric under
	// qubit interchange.
	InterchangeableQubits() bool
	// WithExponent returns the family member with the given exponent.
	WithExponent(t float64) Gate
}

// XPow is X raised to the power T.
type XPow struct{ T float64 }

func (g XPow) Family() Family    { return FamilyX }
func (g XPow) Arity() int        { return 1 }
func (g XPow) Exponent() float64 { return g.T }
func (g XPow) String() string    { return fmt.Sprintf("X^%v", g.T) }

// YPow is Y raised to the power T.
type YPow struct{ T float64 }

func (g YPow) Family() Family    { return FamilyY }
func (g YPow) Arity() int        { return 1 }
func (g YPow) Exponent() float64 { return g.T }
func (g YPow) String() string    { return fmt.Sprintf("Y^%v", g.T) }

// ZPow is Z raised to the power T.
type ZPow struct{ T float64 }

func (g ZPow) Family() Family    { return FamilyZ }
func (g ZPow) Arity() int        { return 1 }
func (g ZPow) Exponent() float64 { return g.T }
func (g ZPow) String() string    { return fmt.Sprintf("Z^%v", g.T) }

// H is the Hadamard gate.
type H struct{}

func (g H) Family() Family { return FamilyH }
func (g H) Arity() int     { return 1 }
func (g H) String() string { return "H" }

// PhasedXPow is an X rotation conjugated by a Z rotation:
// Z^P · X^T · Z^-P.
type PhasedXPow struct {
	T float64 // exponent of the X rotation
	P float64 // phase exponent of the conjugating Z rotation
}

func (g PhasedXPow) Family() Family    { return FamilyPhasedX }
func (g PhasedXPow) Arity() int        { return 1 }
func (g PhasedXPow) Exponent() float64 { return g.T }
func (g PhasedXPow) String() string    { return fmt.Sprintf("PhX(p=%v)^%v", g.P, g.T) }

// CZPow is controlled-Z raised to the power T.
type CZPow struct{ T float64 }

func (g CZPow) Family() Family    { return FamilyCZ }
func (g CZPow) Arity() int        { return 2 }
func (g CZPow) Exponent() float64 { return g.T }
func (g CZPow) String() string    { return fmt.Sprintf("CZ^%v", g.T) }

// CXPow is controlled-X raised to the power T. The first qubit is the
// control.
type CXPow struct{ T float64 }

func (g CXPow) Family() Family    { return FamilyCX }
func (g CXPow) Arity() int        { return 2 }
func (g CXPow) Exponent() float64 { return g.T }
func (g CXPow) String() string    { return fmt.Sprintf("CX^%v", g.T) }

// SwapPow is SWAP raised to the power T.
type SwapPow struct{ T float64 }

func (g SwapPow) Family() Family    { return FamilySwap }
func (g SwapPow) Arity() int        { return 2 }
func (g SwapPow) Exponent() float64 { return g.T }
func (g SwapPow) String() string    { return fmt.Sprintf("SWAP^%v", g.T) }

// ISwapPow is ISWAP raised to the power T.
type ISwapPow struct{ T float64 }

func (g ISwapPow) Family() Family    { return FamilyISwap }
func (g ISwapPow) Arity() int        { return 2 }
func (g ISwapPow) Exponent() float64 { return g.T }
func (g ISwapPow) String() string    { return fmt.Sprintf("ISWAP^%v", g.T) }

// FSim is the fermionic simulation gate with swap angle Theta and
// controlled-phase angle Phi, both in radians.
type FSim struct {
	Theta float64
	Phi   float64
}

func (g FSim) Family() Family { return FamilyFSim }
func (g FSim) Arity() int     { return 2 }
func (g FSim) String() string { return fmt.Sprintf("FSim(%v,%v)", g.Theta, g.Phi) }

// XY is the symmetric XX+YY interaction, exp(-i*pi*T*(XX+YY)/2), equal to
// ISWAP^(-2T). It is periodic in T with period 2 and symmetric under qubit
// interchange.
type XY struct{ T float64 }

func (g XY) Family() Family              { return FamilyXY }
func (g XY) Arity() int                  { return 2 }
func (g XY) Exponent() float64           { return g.T }
func (g XY) Period() float64             { return 2 }
func (g XY) InterchangeableQubits() bool { return true }
func (g XY) WithExponent(t float64) Gate { return XY{T: t} }
func (g XY) String() string              { return fmt.Sprintf("XY^%v", g.T) }

// ZZ is the Ising interaction (Z⊗Z)^T. It is periodic in T with period 2
// and symmetric under qubit interchange.
type ZZ struct{ T float64 }

func (g ZZ) Family() Family              { return FamilyZZ }
func (g ZZ) Arity() int                  { return 2 }
func (g ZZ) Exponent() float64           { return g.T }
func (g ZZ) Period() float64             { return 2 }
func (g ZZ) InterchangeableQubits() bool { return true }
func (g ZZ) WithExponent(t float64) Gate { return ZZ{T: t} }
func (g ZZ) String() string              { return fmt.Sprintf("ZZ^%v", g.T) }

// Measurement is a z-basis measurement of N qubits recorded under Key.
type Measurement struct {
	Key string
	N   int
}

func (g Measurement) Family() Family { return FamilyMeasure }
func (g Measurement) Arity() int     { return g.N }
func (g Measurement) String() string { return fmt.Sprintf("M(%q)", g.Key) }
