package group

import (
	"math/big"

	"github.com/bgshuffle/core/internal/mixerr"
)

// ZqGroup is the exponent field of a GqGroup: the integers modulo q.
type ZqGroup struct {
	q *big.Int
}

// NewZqGroup returns the field of integers modulo q.
func NewZqGroup(q *big.Int) (*ZqGroup, error) {
	if q == nil || q.Sign() <= 0 {
		return nil, mixerr.InvalidInput("q must be positive")
	}
	return &ZqGroup{q: new(big.Int).Set(q)}, nil
}

// Q returns the field order.
func (Z *ZqGroup) Q() *big.Int { return new(big.Int).Set(Z.q) }

// Identity returns the additive identity, 0.
func (Z *ZqGroup) Identity() *ZqElement { return &ZqElement{group: Z, value: big.NewInt(0)} }

// One returns the multiplicative identity, 1.
func (Z *ZqGroup) One() *ZqElement { return &ZqElement{group: Z, value: big.NewInt(1)} }

// Equal reports whether Z and W describe the same field.
func (Z *ZqGroup) Equal(W *ZqGroup) bool {
	if Z == W {
		return true
	}
	if Z == nil || W == nil {
		return false
	}
	return Z.q.Cmp(W.q) == 0
}

// SameOrderAs returns the Zq field sharing G's order, per spec §6's
// ZqGroup.sameOrderAs(Gq).
func SameOrderAs(G *GqGroup) *ZqGroup { return &ZqGroup{q: G.Q()} }

// Element returns a zero-valued element bound to Z, for use as a
// json.Unmarshal destination.
func (Z *ZqGroup) Element() *ZqElement { return &ZqElement{group: Z, value: new(big.Int)} }

// NewElement reduces value modulo q (Euclidean reduction) and returns the
// corresponding element.
func (Z *ZqGroup) NewElement(value *big.Int) (*ZqElement, error) {
	if value == nil {
		return nil, mixerr.InvalidInput("nil value")
	}
	v := new(big.Int).Mod(value, Z.q)
	return &ZqElement{group: Z, value: v}, nil
}

// NewElementFromInt64 is a convenience constructor for small literal
// exponents, used throughout the sub-arguments (e.g. the all-(-1) vector).
func (Z *ZqGroup) NewElementFromInt64(value int64) *ZqElement {
	v := new(big.Int).Mod(big.NewInt(value), Z.q)
	return &ZqElement{group: Z, value: v}
}

// ZqElement is an element of a ZqGroup, held in canonical form [0, q).
type ZqElement struct {
	group *ZqGroup
	value *big.Int
}

// Group returns the element's field.
func (e *ZqElement) Group() *ZqGroup { return e.group }

// Value returns the element's canonical representative in [0, q).
func (e *ZqElement) Value() *big.Int { return new(big.Int).Set(e.value) }

func (e *ZqElement) sameGroup(other *ZqElement) error {
	if other == nil {
		return mixerr.InvalidInput("nil element")
	}
	if !e.group.Equal(other.group) {
		return mixerr.InvalidInput("elements belong to different fields")
	}
	return nil
}

// Add returns e + other (mod q).
func (e *ZqElement) Add(other *ZqElement) (*ZqElement, error) {
	if err := e.sameGroup(other); err != nil {
		return nil, err
	}
	v := new(big.Int).Add(e.value, other.value)
	v.Mod(v, e.group.q)
	return &ZqElement{group: e.group, value: v}, nil
}

// Multiply returns e * other (mod q).
func (e *ZqElement) Multiply(other *ZqElement) (*ZqElement, error) {
	if err := e.sameGroup(other); err != nil {
		return nil, err
	}
	v := new(big.Int).Mul(e.value, other.value)
	v.Mod(v, e.group.q)
	return &ZqElement{group: e.group, value: v}, nil
}

// Negate returns -e (mod q).
func (e *ZqElement) Negate() *ZqElement {
	v := new(big.Int).Neg(e.value)
	v.Mod(v, e.group.q)
	return &ZqElement{group: e.group, value: v}
}

// Subtract returns e - other (mod q).
func (e *ZqElement) Subtract(other *ZqElement) (*ZqElement, error) {
	if err := e.sameGroup(other); err != nil {
		return nil, err
	}
	v := new(big.Int).Sub(e.value, other.value)
	v.Mod(v, e.group.q)
	return &ZqElement{group: e.group, value: v}, nil
}

// Exponentiate returns e^exp (mod q). exp may be any integer; negative
// exponents require e to be invertible mod q (q prime, e != 0).
func (e *ZqElement) Exponentiate(exp *big.Int) (*ZqElement, error) {
	if exp == nil {
		return nil, mixerr.InvalidInput("nil exponent")
	}
	if exp.Sign() < 0 {
		if e.value.Sign() == 0 {
			return nil, mixerr.InvalidInput("cannot invert zero")
		}
		inv := new(big.Int).ModInverse(e.value, e.group.q)
		pos := new(big.Int).Neg(exp)
		v := new(big.Int).Exp(inv, pos, e.group.q)
		return &ZqElement{group: e.group, value: v}, nil
	}
	v := new(big.Int).Exp(e.value, exp, e.group.q)
	return &ZqElement{group: e.group, value: v}, nil
}

// Equal reports value equality within the same field.
func (e *ZqElement) Equal(other *ZqElement) bool {
	if e == nil || other == nil {
		return e == other
	}
	if !e.group.Equal(other.group) {
		return false
	}
	return e.value.Cmp(other.value) == 0
}

// IsZero reports whether e is the additive identity.
func (e *ZqElement) IsZero() bool { return e.value.Sign() == 0 }

// String returns the decimal representation of the element's value.
func (e *ZqElement) String() string { return e.value.String() }

// SameZqGroup validates that every element shares one field and returns it.
func SameZqGroup(elems ...*ZqElement) (*ZqGroup, error) {
	if len(elems) == 0 {
		return nil, nil
	}
	z := elems[0].group
	for i, e := range elems {
		if e == nil {
			return nil, mixerr.InvalidInput("element %d is nil", i)
		}
		if !e.group.Equal(z) {
			return nil, mixerr.InvalidInput("element %d belongs to a different field", i)
		}
	}
	return z, nil
}
