package multiexp

import (
	"encoding/json"

	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
)

type argumentJSON struct {
	CA0 json.RawMessage `json:"ca0"`
	CB  json.RawMessage `json:"cb"`
	E   json.RawMessage `json:"e"`
	A   json.RawMessage `json:"a"`
	R   json.RawMessage `json:"r"`
	B   json.RawMessage `json:"b"`
	S   json.RawMessage `json:"s"`
	Tau json.RawMessage `json:"tau"`
}

// ArgumentUnmarshalJSON decodes b into an Argument bound to G.
func ArgumentUnmarshalJSON(b []byte, G *group.GqGroup) (Argument, error) {
	var tmp argumentJSON
	if err := json.Unmarshal(b, &tmp); err != nil {
		return Argument{}, err
	}
	Z := group.SameOrderAs(G)

	ca0 := G.Element()
	if err := ca0.UnmarshalJSON(tmp.CA0); err != nil {
		return Argument{}, err
	}
	cb, err := group.GqVectorUnmarshalJSON(tmp.CB, G)
	if err != nil {
		return Argument{}, err
	}
	e, err := elgamal.CiphertextVectorUnmarshalJSON(tmp.E, G)
	if err != nil {
		return Argument{}, err
	}
	a, err := group.ZqVectorUnmarshalJSON(tmp.A, Z)
	if err != nil {
		return Argument{}, err
	}
	r := Z.Element()
	if err := r.UnmarshalJSON(tmp.R); err != nil {
		return Argument{}, err
	}
	bElem := Z.Element()
	if err := bElem.UnmarshalJSON(tmp.B); err != nil {
		return Argument{}, err
	}
	s := Z.Element()
	if err := s.UnmarshalJSON(tmp.S); err != nil {
		return Argument{}, err
	}
	tau := Z.Element()
	if err := tau.UnmarshalJSON(tmp.Tau); err != nil {
		return Argument{}, err
	}

	return Argument{CA0: ca0, CB: cb, E: e, A: a, R: r, B: bElem, S: s, Tau: tau}, nil
}
