// Package group implements the Gq/Zq algebraic collaborators consumed by
// the core (spec §6): a cyclic multiplicative subgroup of Z_p*, of prime
// order q with p = 2q+1, and its associated exponent field Zq.
//
// This mirrors the teacher repo's group.ModPGroup/ModPElement
// (_examples/takakv-msc-poc/group/modsafeprime.go) but renames the
// additive-notation verbs (Add/Scale/BaseScale/Negate) the teacher shares
// across elliptic-curve and mod-p backends to the multiplicative verbs the
// spec actually names (Multiply/Exponentiate/Invert), since this module
// only ever targets the Z_p* backend.
package group

import (
	"math/big"

	"github.com/bgshuffle/core/internal/mixerr"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// GqGroup is a cyclic multiplicative subgroup of Z_p* of prime order q,
// where p = 2q+1 (a safe prime). It is supplied by the caller, never
// derived by this package (spec §1 lists group arithmetic as an external
// collaborator).
type GqGroup struct {
	p *big.Int
	q *big.Int
	g *big.Int
}

// NewGqGroup validates that p = 2q+1 and that g generates a subgroup of
// order q (g^q mod p = 1, g != 1), and returns the group.
func NewGqGroup(p, q, g *big.Int) (*GqGroup, error) {
	if p == nil || q == nil || g == nil {
		return nil, mixerr.InvalidInput("p, q and g must be non-nil")
	}
	check := new(big.Int).Mul(q, two)
	check.Add(check, one)
	if check.Cmp(p) != 0 {
		return nil, mixerr.InvalidInput("p must equal 2q+1, got p=%s q=%s", p, q)
	}
	if g.Sign() <= 0 || g.Cmp(p) >= 0 {
		return nil, mixerr.InvalidInput("generator must lie in [1, p-1]")
	}
	order := new(big.Int).Exp(g, q, p)
	if order.Cmp(one) != 0 {
		return nil, mixerr.InvalidInput("generator does not have order q")
	}
	if g.Cmp(one) == 0 {
		return nil, mixerr.InvalidInput("generator must not be the identity")
	}
	return &GqGroup{p: new(big.Int).Set(p), q: new(big.Int).Set(q), g: new(big.Int).Set(g)}, nil
}

// P returns the field order p.
func (G *GqGroup) P() *big.Int { return new(big.Int).Set(G.p) }

// Q returns the group order q.
func (G *GqGroup) Q() *big.Int { return new(big.Int).Set(G.q) }

// ZqGroup returns the exponent field of the same order as G, per the
// spec's ZqGroup.sameOrderAs(Gq) contract.
func (G *GqGroup) ZqGroup() *ZqGroup { return &ZqGroup{q: new(big.Int).Set(G.q)} }

// Generator returns g.
func (G *GqGroup) Generator() *GqElement { return &GqElement{group: G, value: new(big.Int).Set(G.g)} }

// Identity returns the Gq identity, 1.
func (G *GqGroup) Identity() *GqElement { return &GqElement{group: G, value: big.NewInt(1)} }

// Equal reports whether G and H describe the same group.
func (G *GqGroup) Equal(H *GqGroup) bool {
	if G == H {
		return true
	}
	if G == nil || H == nil {
		return false
	}
	return G.p.Cmp(H.p) == 0 && G.q.Cmp(H.q) == 0 && G.g.Cmp(H.g) == 0
}

// Element returns a zero-valued element bound to G, for use with
// UnmarshalJSON the way the teacher's group.Group.Element() is used as a
// destination for json.Unmarshal (see _examples/takakv-msc-poc/marshal.go).
func (G *GqGroup) Element() *GqElement { return &GqElement{group: G, value: new(big.Int)} }

// NewElement validates that value lies in [1, p-1] and returns the
// corresponding element. It does not check that value generates a
// subgroup of order q: callers that need that guarantee should derive
// elements via CommitmentKey generation (spec §4.2) or Exponentiate.
func (G *GqGroup) NewElement(value *big.Int) (*GqElement, error) {
	if value == nil || value.Sign() <= 0 || value.Cmp(G.p) >= 0 {
		return nil, mixerr.InvalidInput("element value must lie in [1, p-1]")
	}
	return &GqElement{group: G, value: new(big.Int).Set(value)}, nil
}

// GqElement is an element of a GqGroup.
type GqElement struct {
	group *GqGroup
	value *big.Int
}

// Group returns the element's group.
func (e *GqElement) Group() *GqGroup { return e.group }

// Value returns the element's representative in [1, p-1].
func (e *GqElement) Value() *big.Int { return new(big.Int).Set(e.value) }

func (e *GqElement) sameGroup(other *GqElement) error {
	if other == nil {
		return mixerr.InvalidInput("nil element")
	}
	if !e.group.Equal(other.group) {
		return mixerr.InvalidInput("elements belong to different groups")
	}
	return nil
}

// Multiply returns e * other (mod p).
func (e *GqElement) Multiply(other *GqElement) (*GqElement, error) {
	if err := e.sameGroup(other); err != nil {
		return nil, err
	}
	v := new(big.Int).Mul(e.value, other.value)
	v.Mod(v, e.group.p)
	return &GqElement{group: e.group, value: v}, nil
}

// Exponentiate returns e^exp (mod p). exp is reduced modulo the group
// order q first (Euclidean reduction, so negative exponents invert).
func (e *GqElement) Exponentiate(exp *big.Int) (*GqElement, error) {
	if exp == nil {
		return nil, mixerr.InvalidInput("nil exponent")
	}
	reduced := new(big.Int).Mod(exp, e.group.q)
	v := new(big.Int).Exp(e.value, reduced, e.group.p)
	return &GqElement{group: e.group, value: v}, nil
}

// ExponentiateElement is Exponentiate taking a ZqElement of matching
// order, per spec §6's `exponentiate(e ∈ Zq|BigInt)`.
func (e *GqElement) ExponentiateElement(exp *ZqElement) (*GqElement, error) {
	if exp == nil {
		return nil, mixerr.InvalidInput("nil exponent")
	}
	if exp.group.q.Cmp(e.group.q) != 0 {
		return nil, mixerr.InvalidInput("exponent field order does not match group order")
	}
	return e.Exponentiate(exp.value)
}

// Invert returns e^-1.
func (e *GqElement) Invert() *GqElement {
	v := new(big.Int).ModInverse(e.value, e.group.p)
	return &GqElement{group: e.group, value: v}
}

// Equal reports value equality within the same group.
func (e *GqElement) Equal(other *GqElement) bool {
	if e == nil || other == nil {
		return e == other
	}
	if !e.group.Equal(other.group) {
		return false
	}
	return e.value.Cmp(other.value) == 0
}

// IsIdentity reports whether e is the Gq identity (1).
func (e *GqElement) IsIdentity() bool { return e.value.Cmp(one) == 0 }

// String returns the decimal representation of the element's value.
func (e *GqElement) String() string { return e.value.String() }

// SameGqGroup validates that every element shares one group and returns it.
// An empty list has no defined group (spec §3: "for empty vectors the
// group is undefined and must not be queried"), so it returns (nil, nil).
func SameGqGroup(elems ...*GqElement) (*GqGroup, error) {
	if len(elems) == 0 {
		return nil, nil
	}
	g := elems[0].group
	for i, e := range elems {
		if e == nil {
			return nil, mixerr.InvalidInput("element %d is nil", i)
		}
		if !e.group.Equal(g) {
			return nil, mixerr.InvalidInput("element %d belongs to a different group", i)
		}
	}
	return g, nil
}
