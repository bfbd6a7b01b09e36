// Package commitment implements the Pedersen commitment-key derivation and
// vector/matrix commitment service of spec §4.2/§4.3 (C2, C3). It is
// grounded on the teacher's util.PedersenCommit
// (_examples/takakv-msc-poc/util/util.go), generalized from a single-value
// commitment into the vector/matrix form the shuffle argument needs, and
// on the teacher's getFSChallenge-style use of a hash service to derive
// public parameters deterministically rather than sampling them.
package commitment

import (
	"math/big"

	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/hashing"
	"github.com/bgshuffle/core/internal/mixerr"
)

// Key is the immutable tuple (h, g_1, ..., g_nu) of spec §3/§4.2.
type Key struct {
	group *group.GqGroup
	h     *group.GqElement
	g     group.GqVector
}

// Nu returns the number of g-elements (ν).
func (k Key) Nu() int { return k.g.Len() }

// H returns the distinguished blinding base h.
func (k Key) H() *group.GqElement { return k.h }

// G returns the i-th message base g_i (0-indexed, 0 <= i < Nu()).
func (k Key) G(i int) *group.GqElement { return k.g.Get(i) }

// Group returns the Gq group the key lives in.
func (k Key) Group() *group.GqGroup { return k.group }

// Equal reports whether k and other carry the same h and g-vector.
func (k Key) Equal(other Key) bool {
	return k.h.Equal(other.h) && k.g.Equal(other.g)
}

// String renders k as its h and g-vector.
func (k Key) String() string {
	return "h=" + k.h.String() + " g=" + k.g.String()
}

// NewCommitmentKey deterministically derives a length nu+1 commitment key
// over G, per spec §4.2: repeatedly hash (q, "commitmentKey", i, cnt),
// square mod p, and collect every result that is neither 0, 1 nor g and
// not already collected, until nu+1 distinct values are found. The first
// collected value becomes h; the rest become g_1...g_nu, in collection
// order.
func NewCommitmentKey(nu int, G *group.GqGroup, hash *hashing.Service) (Key, error) {
	if G == nil || hash == nil {
		return Key{}, mixerr.InvalidInput("group and hash service must be non-nil")
	}
	qMinus3 := new(big.Int).Sub(G.Q(), big.NewInt(3))
	if nu <= 0 {
		return Key{}, mixerr.InvalidInput("nu must be positive, got %d", nu)
	}
	if big.NewInt(int64(nu)).Cmp(qMinus3) > 0 {
		return Key{}, mixerr.InvalidInput("nu must be at most q-3, got nu=%d", nu)
	}

	one := big.NewInt(1)
	gVal := G.Generator().Value()
	seen := make(map[string]bool, nu+1)
	collected := make([]*group.GqElement, 0, nu+1)

	for i := 0; len(collected) < nu+1; i++ {
		digest := hash.RecursiveHash(
			hashing.BigInt{Value: G.Q()},
			hashing.Str("commitmentKey"),
			hashing.Int(i),
			hashing.Int(len(collected)),
		)
		u := hash.ByteArrayToInteger(digest)
		w := new(big.Int).Mul(u, u)
		w.Mod(w, G.P())

		if w.Sign() == 0 || w.Cmp(one) == 0 || w.Cmp(gVal) == 0 {
			continue
		}
		key := w.String()
		if seen[key] {
			continue
		}
		elem, err := G.NewElement(w)
		if err != nil {
			continue
		}
		seen[key] = true
		collected = append(collected, elem)
	}

	h := collected[0]
	gVec, err := group.NewGqVector(collected[1:]...)
	if err != nil {
		return Key{}, err
	}
	return Key{group: G, h: h, g: gVec}, nil
}
