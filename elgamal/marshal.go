package elgamal

import (
	"encoding/json"

	"github.com/bgshuffle/core/group"
)

type ciphertextJSON struct {
	Gamma json.RawMessage `json:"gamma"`
	Phi   json.RawMessage `json:"phi"`
}

// MarshalJSON encodes c as its gamma/phi pair, the same field-per-component
// layout the teacher uses for its (U, V) ElGamal pair
// (_examples/takakv-msc-poc/marshal.go's elGamalCiphertextJSON).
func (c Ciphertext) MarshalJSON() ([]byte, error) {
	gamma, err := c.gamma.MarshalJSON()
	if err != nil {
		return nil, err
	}
	phi, err := c.phi.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(ciphertextJSON{Gamma: gamma, Phi: phi})
}

// CiphertextUnmarshalJSON decodes b into a Ciphertext bound to G.
func CiphertextUnmarshalJSON(b []byte, G *group.GqGroup) (Ciphertext, error) {
	var tmp ciphertextJSON
	if err := json.Unmarshal(b, &tmp); err != nil {
		return Ciphertext{}, err
	}
	gamma := G.Element()
	if err := gamma.UnmarshalJSON(tmp.Gamma); err != nil {
		return Ciphertext{}, err
	}
	phi, err := group.GqVectorUnmarshalJSON(tmp.Phi, G)
	if err != nil {
		return Ciphertext{}, err
	}
	return NewCiphertext(gamma, phi.Slice()...)
}

// MarshalJSON encodes v as a JSON array of ciphertexts.
func (v CiphertextVector) MarshalJSON() ([]byte, error) { return json.Marshal(v.entries) }

// CiphertextVectorUnmarshalJSON decodes b into a CiphertextVector bound to
// G.
func CiphertextVectorUnmarshalJSON(b []byte, G *group.GqGroup) (CiphertextVector, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return CiphertextVector{}, err
	}
	entries := make([]Ciphertext, len(raw))
	for i, r := range raw {
		c, err := CiphertextUnmarshalJSON(r, G)
		if err != nil {
			return CiphertextVector{}, err
		}
		entries[i] = c
	}
	return NewCiphertextVector(entries...)
}

// MarshalJSON encodes m row-major as a JSON array of ciphertext rows.
func (m CiphertextMatrix) MarshalJSON() ([]byte, error) { return json.Marshal(m.rows) }

// CiphertextMatrixUnmarshalJSON decodes b into a CiphertextMatrix bound to
// G.
func CiphertextMatrixUnmarshalJSON(b []byte, G *group.GqGroup) (CiphertextMatrix, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return CiphertextMatrix{}, err
	}
	rows := make([]CiphertextVector, len(raw))
	for i, r := range raw {
		row, err := CiphertextVectorUnmarshalJSON(r, G)
		if err != nil {
			return CiphertextMatrix{}, err
		}
		rows[i] = row
	}
	return NewCiphertextMatrixFromRows(rows...)
}

// MarshalJSON encodes pk as a JSON array of its elements' decimal values.
func (pk PublicKey) MarshalJSON() ([]byte, error) { return pk.elements.MarshalJSON() }

// PublicKeyUnmarshalJSON decodes b into a PublicKey bound to G.
func PublicKeyUnmarshalJSON(b []byte, G *group.GqGroup) (PublicKey, error) {
	v, err := group.GqVectorUnmarshalJSON(b, G)
	if err != nil {
		return PublicKey{}, err
	}
	return NewPublicKey(v.Slice()...)
}
