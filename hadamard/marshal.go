package hadamard

import (
	"encoding/json"

	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/zeroarg"
)

type argumentJSON struct {
	CB   json.RawMessage `json:"cb"`
	Zero json.RawMessage `json:"zero"`
}

// ArgumentUnmarshalJSON decodes b into an Argument bound to G.
func ArgumentUnmarshalJSON(b []byte, G *group.GqGroup) (Argument, error) {
	var tmp argumentJSON
	if err := json.Unmarshal(b, &tmp); err != nil {
		return Argument{}, err
	}
	cb, err := group.GqVectorUnmarshalJSON(tmp.CB, G)
	if err != nil {
		return Argument{}, err
	}
	zeroArg, err := zeroarg.ArgumentUnmarshalJSON(tmp.Zero, G)
	if err != nil {
		return Argument{}, err
	}
	return Argument{CB: cb, Zero: zeroArg}, nil
}
