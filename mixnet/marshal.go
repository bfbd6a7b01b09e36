package mixnet

import (
	"encoding/json"

	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/multiexp"
	"github.com/bgshuffle/core/product"
)

type shuffleArgumentJSON struct {
	CA       json.RawMessage `json:"ca"`
	CB       json.RawMessage `json:"cb"`
	Product  json.RawMessage `json:"product"`
	MultiExp json.RawMessage `json:"multiExp"`
}

// ShuffleArgumentUnmarshalJSON decodes b into a ShuffleArgument bound to G.
func ShuffleArgumentUnmarshalJSON(b []byte, G *group.GqGroup) (ShuffleArgument, error) {
	var tmp shuffleArgumentJSON
	if err := json.Unmarshal(b, &tmp); err != nil {
		return ShuffleArgument{}, err
	}
	cA, err := group.GqVectorUnmarshalJSON(tmp.CA, G)
	if err != nil {
		return ShuffleArgument{}, err
	}
	cB, err := group.GqVectorUnmarshalJSON(tmp.CB, G)
	if err != nil {
		return ShuffleArgument{}, err
	}
	productArg, err := product.ArgumentUnmarshalJSON(tmp.Product, G)
	if err != nil {
		return ShuffleArgument{}, err
	}
	multiExpArg, err := multiexp.ArgumentUnmarshalJSON(tmp.MultiExp, G)
	if err != nil {
		return ShuffleArgument{}, err
	}
	return ShuffleArgument{CA: cA, CB: cB, Product: productArg, MultiExp: multiExpArg}, nil
}

type verifiableShuffleJSON struct {
	Cp       json.RawMessage `json:"cPrime"`
	Argument json.RawMessage `json:"argument"`
}

// VerifiableShuffleUnmarshalJSON decodes b into a VerifiableShuffle bound
// to G, the wire form a verifier receives alongside the original C.
func VerifiableShuffleUnmarshalJSON(b []byte, G *group.GqGroup) (VerifiableShuffle, error) {
	var tmp verifiableShuffleJSON
	if err := json.Unmarshal(b, &tmp); err != nil {
		return VerifiableShuffle{}, err
	}
	cp, err := elgamal.CiphertextVectorUnmarshalJSON(tmp.Cp, G)
	if err != nil {
		return VerifiableShuffle{}, err
	}
	arg, err := ShuffleArgumentUnmarshalJSON(tmp.Argument, G)
	if err != nil {
		return VerifiableShuffle{}, err
	}
	return VerifiableShuffle{Cp: cp, Argument: arg}, nil
}
