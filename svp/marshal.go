package svp

import (
	"encoding/json"

	"github.com/bgshuffle/core/group"
)

type argumentJSON struct {
	Cd     json.RawMessage `json:"cd"`
	Cdelta json.RawMessage `json:"cdelta"`
	Cbig   json.RawMessage `json:"cbig"`
	ATilde json.RawMessage `json:"aTilde"`
	BTilde json.RawMessage `json:"bTilde"`
	RTilde json.RawMessage `json:"rTilde"`
	STilde json.RawMessage `json:"sTilde"`
}

// ArgumentUnmarshalJSON decodes b into an Argument bound to G.
func ArgumentUnmarshalJSON(b []byte, G *group.GqGroup) (Argument, error) {
	var tmp argumentJSON
	if err := json.Unmarshal(b, &tmp); err != nil {
		return Argument{}, err
	}
	Z := group.SameOrderAs(G)

	cd := G.Element()
	if err := cd.UnmarshalJSON(tmp.Cd); err != nil {
		return Argument{}, err
	}
	cdelta := G.Element()
	if err := cdelta.UnmarshalJSON(tmp.Cdelta); err != nil {
		return Argument{}, err
	}
	cbig := G.Element()
	if err := cbig.UnmarshalJSON(tmp.Cbig); err != nil {
		return Argument{}, err
	}
	aTilde, err := group.ZqVectorUnmarshalJSON(tmp.ATilde, Z)
	if err != nil {
		return Argument{}, err
	}
	bTilde, err := group.ZqVectorUnmarshalJSON(tmp.BTilde, Z)
	if err != nil {
		return Argument{}, err
	}
	rTilde := Z.Element()
	if err := rTilde.UnmarshalJSON(tmp.RTilde); err != nil {
		return Argument{}, err
	}
	sTilde := Z.Element()
	if err := sTilde.UnmarshalJSON(tmp.STilde); err != nil {
		return Argument{}, err
	}

	return Argument{
		Cd: cd, Cdelta: cdelta, Cbig: cbig,
		ATilde: aTilde, BTilde: bTilde,
		RTilde: rTilde, STilde: sTilde,
	}, nil
}
