package commitment

import (
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/internal/mixerr"
)

// Commit returns h^r * Π g_i^{a_i} in Gq, for a of length l <= ck.Nu()
// (spec §4.3). The trailing Π g_i^0 term for i in (l, nu] is the identity
// and is omitted.
func Commit(a group.ZqVector, r *group.ZqElement, ck Key) (*group.GqElement, error) {
	if a.Len() > ck.Nu() {
		return nil, mixerr.InvalidInput("commitment vector length %d exceeds key size %d", a.Len(), ck.Nu())
	}
	if r == nil {
		return nil, mixerr.InvalidInput("randomness must be non-nil")
	}
	acc, err := ck.H().ExponentiateElement(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < a.Len(); i++ {
		term, err := ck.G(i).ExponentiateElement(a.Get(i))
		if err != nil {
			return nil, err
		}
		acc, err = acc.Multiply(term)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// CommitMatrix commits every column of A ∈ Zq^{n x m} under its own
// randomness r_j, returning the length-m vector of commitments (spec
// §4.3). n must not exceed ck.Nu().
func CommitMatrix(A group.ZqMatrix, r group.ZqVector, ck Key) (group.GqVector, error) {
	if A.Columns() != r.Len() {
		return group.GqVector{}, mixerr.InvalidInput("matrix has %d columns but randomness has length %d", A.Columns(), r.Len())
	}
	if A.Rows() > ck.Nu() {
		return group.GqVector{}, mixerr.InvalidInput("matrix row count %d exceeds key size %d", A.Rows(), ck.Nu())
	}
	out := make([]*group.GqElement, A.Columns())
	for j := 0; j < A.Columns(); j++ {
		c, err := Commit(A.Column(j), r.Get(j), ck)
		if err != nil {
			return group.GqVector{}, err
		}
		out[j] = c
	}
	return group.NewGqVector(out...)
}

// CommitVector commits each scalar entry of d independently under the
// matching entry of t, returning a length-m vector of per-entry
// commitments commit((d_j), t_j, ck) (spec §4.3, used by the zero and
// multi-exponentiation arguments to commit single scalars).
func CommitVector(d, t group.ZqVector, ck Key) (group.GqVector, error) {
	if d.Len() != t.Len() {
		return group.GqVector{}, mixerr.InvalidInput("value/randomness length mismatch: %d vs %d", d.Len(), t.Len())
	}
	out := make([]*group.GqElement, d.Len())
	for j := 0; j < d.Len(); j++ {
		single, err := group.NewZqVector(d.Get(j))
		if err != nil {
			return group.GqVector{}, err
		}
		c, err := Commit(single, t.Get(j), ck)
		if err != nil {
			return group.GqVector{}, err
		}
		out[j] = c
	}
	return group.NewGqVector(out...)
}
