package elgamal

import (
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/internal/mixerr"
)

// Ciphertext is a multi-recipient ElGamal ciphertext (γ, φ1...φl), spec §3.
type Ciphertext struct {
	gamma *group.GqElement
	phi   group.GqVector
}

// NewCiphertext validates that gamma and every phi component share one
// group and returns the ciphertext.
func NewCiphertext(gamma *group.GqElement, phi ...*group.GqElement) (Ciphertext, error) {
	if gamma == nil {
		return Ciphertext{}, mixerr.InvalidInput("gamma must be non-nil")
	}
	all := append([]*group.GqElement{gamma}, phi...)
	g, err := group.SameGqGroup(all...)
	if err != nil {
		return Ciphertext{}, err
	}
	v, err := group.NewGqVector(phi...)
	if err != nil {
		return Ciphertext{}, err
	}
	_ = g
	return Ciphertext{gamma: gamma, phi: v}, nil
}

// Size returns l, the number of recipients.
func (c Ciphertext) Size() int { return c.phi.Len() }

// Gamma returns γ.
func (c Ciphertext) Gamma() *group.GqElement { return c.gamma }

// Phi returns the i-th φ component.
func (c Ciphertext) Phi(i int) *group.GqElement { return c.phi.Get(i) }

// Group returns the ciphertext's Gq group.
func (c Ciphertext) Group() *group.GqGroup { return c.gamma.Group() }

// Equal reports whether c and other carry the same gamma and phi
// components.
func (c Ciphertext) Equal(other Ciphertext) bool {
	return c.gamma.Equal(other.gamma) && c.phi.Equal(other.phi)
}

// String renders c as its gamma and phi components.
func (c Ciphertext) String() string {
	return "(" + c.gamma.String() + ", " + c.phi.String() + ")"
}

// sameShape validates that c and other share a group and element-size.
func (c Ciphertext) sameShape(other Ciphertext) error {
	if other.gamma == nil {
		return mixerr.InvalidInput("nil ciphertext")
	}
	if !c.Group().Equal(other.Group()) {
		return mixerr.InvalidInput("ciphertexts belong to different groups")
	}
	if c.Size() != other.Size() {
		return mixerr.InvalidInput("ciphertext size mismatch: %d vs %d", c.Size(), other.Size())
	}
	return nil
}

// Multiply returns the component-wise product of c and other.
func (c Ciphertext) Multiply(other Ciphertext) (Ciphertext, error) {
	if err := c.sameShape(other); err != nil {
		return Ciphertext{}, err
	}
	gamma, err := c.gamma.Multiply(other.gamma)
	if err != nil {
		return Ciphertext{}, err
	}
	phi, err := c.phi.Multiply(other.phi)
	if err != nil {
		return Ciphertext{}, err
	}
	return Ciphertext{gamma: gamma, phi: phi}, nil
}

// Exponentiate returns c raised to exp, component-wise.
func (c Ciphertext) Exponentiate(exp *group.ZqElement) (Ciphertext, error) {
	gamma, err := c.gamma.ExponentiateElement(exp)
	if err != nil {
		return Ciphertext{}, err
	}
	exps := make([]*group.ZqElement, c.Size())
	for i := range exps {
		exps[i] = exp
	}
	expsVec, err := group.NewZqVector(exps...)
	if err != nil {
		return Ciphertext{}, err
	}
	phi, err := c.phi.ExponentiateEach(expsVec)
	if err != nil {
		return Ciphertext{}, err
	}
	return Ciphertext{gamma: gamma, phi: phi}, nil
}

// NeutralElement returns the identity ciphertext of element-size l in G:
// (1, 1, ..., 1).
func NeutralElement(G *group.GqGroup, l int) (Ciphertext, error) {
	phis := make([]*group.GqElement, l)
	for i := range phis {
		phis[i] = G.Identity()
	}
	return NewCiphertext(G.Identity(), phis...)
}

// GetCiphertext encrypts message under pk with randomness r: γ = g^r,
// φ_i = message_i * pk_i^r for i in [0, l), where l = message.Size() and
// pk must have at least l elements (spec §3/§6).
func GetCiphertext(message Message, r *group.ZqElement, pk PublicKey) (Ciphertext, error) {
	l := message.Size()
	if l == 0 {
		return Ciphertext{}, mixerr.InvalidInput("message must have at least one component")
	}
	if l > pk.Size() {
		return Ciphertext{}, mixerr.InvalidInput("message size %d exceeds public key size %d", l, pk.Size())
	}
	G := pk.Group()
	gamma, err := G.Generator().ExponentiateElement(r)
	if err != nil {
		return Ciphertext{}, err
	}
	phis := make([]*group.GqElement, l)
	for i := 0; i < l; i++ {
		mask, err := pk.Get(i).ExponentiateElement(r)
		if err != nil {
			return Ciphertext{}, err
		}
		phi, err := message.Component(i).Multiply(mask)
		if err != nil {
			return Ciphertext{}, err
		}
		phis[i] = phi
	}
	return NewCiphertext(gamma, phis...)
}

// VectorExponentiation computes Π vec[i]^exps[i] for equal-length
// ciphertext and exponent vectors (spec §6's
// getCiphertextVectorExponentiation).
func VectorExponentiation(vec []Ciphertext, exps []*group.ZqElement) (Ciphertext, error) {
	if len(vec) == 0 {
		return Ciphertext{}, mixerr.InvalidInput("vector exponentiation requires at least one ciphertext")
	}
	if len(vec) != len(exps) {
		return Ciphertext{}, mixerr.InvalidInput("ciphertext/exponent count mismatch: %d vs %d", len(vec), len(exps))
	}
	acc, err := vec[0].Exponentiate(exps[0])
	if err != nil {
		return Ciphertext{}, err
	}
	for i := 1; i < len(vec); i++ {
		term, err := vec[i].Exponentiate(exps[i])
		if err != nil {
			return Ciphertext{}, err
		}
		acc, err = acc.Multiply(term)
		if err != nil {
			return Ciphertext{}, err
		}
	}
	return acc, nil
}
