package zeroarg

import (
	"encoding/json"

	"github.com/bgshuffle/core/group"
)

type argumentJSON struct {
	CA0    json.RawMessage `json:"ca0"`
	CBm    json.RawMessage `json:"cbm"`
	CD     json.RawMessage `json:"cd"`
	ATilde json.RawMessage `json:"aTilde"`
	BTilde json.RawMessage `json:"bTilde"`
	RTilde json.RawMessage `json:"rTilde"`
	STilde json.RawMessage `json:"sTilde"`
	TTilde json.RawMessage `json:"tTilde"`
}

// ArgumentUnmarshalJSON decodes b into an Argument bound to G, following
// the teacher's pattern of passing the group in explicitly
// (_examples/takakv-msc-poc/marshal.go's BulletProofUnmarshalJSON).
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
	cbm := G.Element()
	if err := cbm.UnmarshalJSON(tmp.CBm); err != nil {
		return Argument{}, err
	}
	cd, err := group.GqVectorUnmarshalJSON(tmp.CD, G)
	if err != nil {
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
	tTilde := Z.Element()
	if err := tTilde.UnmarshalJSON(tmp.TTilde); err != nil {
		return Argument{}, err
	}

	return Argument{
		CA0: ca0, CBm: cbm, CD: cd,
		ATilde: aTilde, BTilde: bTilde,
		RTilde: rTilde, STilde: sTilde, TTilde: tTilde,
	}, nil
}
