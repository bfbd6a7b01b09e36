package product

import (
	"encoding/json"

	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/hadamard"
	"github.com/bgshuffle/core/svp"
)

type argumentJSON struct {
	Cb       json.RawMessage `json:"cb,omitempty"`
	Hadamard json.RawMessage `json:"hadamard,omitempty"`
	Svp      json.RawMessage `json:"svp"`
}

// ArgumentUnmarshalJSON decodes b into an Argument bound to G. Cb/Hadamard
// are absent in the m=1 wire form, mirroring Argument's own structural
// split.
func ArgumentUnmarshalJSON(b []byte, G *group.GqGroup) (Argument, error) {
	var tmp argumentJSON
	if err := json.Unmarshal(b, &tmp); err != nil {
		return Argument{}, err
	}
	svpArg, err := svp.ArgumentUnmarshalJSON(tmp.Svp, G)
	if err != nil {
		return Argument{}, err
	}
	arg := Argument{Svp: svpArg}
	if present(tmp.Cb) {
		cb := G.Element()
		if err := cb.UnmarshalJSON(tmp.Cb); err != nil {
			return Argument{}, err
		}
		arg.Cb = cb
	}
	if present(tmp.Hadamard) {
		hadamardArg, err := hadamard.ArgumentUnmarshalJSON(tmp.Hadamard, G)
		if err != nil {
			return Argument{}, err
		}
		arg.Hadamard = &hadamardArg
	}
	return arg, nil
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
