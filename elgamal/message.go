package elgamal

import "github.com/bgshuffle/core/group"

// Message is a length-l vector of Gq elements to be multi-recipient
// ElGamal encrypted (spec §6).
type Message struct {
	components group.GqVector
}

// Size returns l.
func (m Message) Size() int { return m.components.Len() }

// Component returns the i-th message component.
func (m Message) Component(i int) *group.GqElement { return m.components.Get(i) }

// Ones returns the all-ones length-l message (the "1_l" of spec §4.4/§4.10:
// encrypting it re-randomizes a ciphertext without changing its plaintext).
func Ones(G *group.GqGroup, l int) (Message, error) {
	return ConstantMessage(G.Identity(), l)
}

// NewMessage validates components and returns the Message they form.
func NewMessage(components ...*group.GqElement) (Message, error) {
	v, err := group.NewGqVector(components...)
	if err != nil {
		return Message{}, err
	}
	return Message{components: v}, nil
}

// ConstantMessage returns the length-l message with every component equal
// to g (spec §6's Message.constantMessage, used by the multi-exponentiation
// argument's diagonal ciphertexts, spec §4.10 step 4).
func ConstantMessage(g *group.GqElement, l int) (Message, error) {
	elems := make([]*group.GqElement, l)
	for i := range elems {
		elems[i] = g
	}
	v, err := group.NewGqVector(elems...)
	if err != nil {
		return Message{}, err
	}
	return Message{components: v}, nil
}
