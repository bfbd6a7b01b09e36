// Package elgamal implements the multi-recipient ElGamal ciphertext,
// message and public-key collaborators of spec §3/§6. Per spec §1 these
// are external collaborators ("ElGamal ciphertext and message algebra"),
// consumed by the core only through the operations named in §6; this
// package is the concrete implementation the rest of the module is wired
// against, generalizing the teacher's single-recipient elgamal.go
// (_examples/takakv-msc-poc/elgamal.go) from a scalar message to a
// length-l vector message.
package elgamal

import (
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/internal/mixerr"
)

// PublicKey is an ordered sequence of k Gq elements (spec §3).
type PublicKey struct {
	elements group.GqVector
}

// NewPublicKey validates that every element shares one group.
func NewPublicKey(elements ...*group.GqElement) (PublicKey, error) {
	if len(elements) == 0 {
		return PublicKey{}, mixerr.InvalidInput("public key must have at least one element")
	}
	v, err := group.NewGqVector(elements...)
	if err != nil {
		return PublicKey{}, err
	}
	return PublicKey{elements: v}, nil
}

// Size returns k, the number of key elements.
func (pk PublicKey) Size() int { return pk.elements.Len() }

// Group returns the Gq group the key lives in.
func (pk PublicKey) Group() *group.GqGroup { return pk.elements.Group() }

// Get returns the i-th key element.
func (pk PublicKey) Get(i int) *group.GqElement { return pk.elements.Get(i) }

// Elements returns the underlying GqVector.
func (pk PublicKey) Elements() group.GqVector { return pk.elements }

// Equal reports whether pk and other hold equal-length, pointwise-equal
// elements.
func (pk PublicKey) Equal(other PublicKey) bool { return pk.elements.Equal(other.elements) }

// String renders pk as its element vector.
func (pk PublicKey) String() string { return pk.elements.String() }
