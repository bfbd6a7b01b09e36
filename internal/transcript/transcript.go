// Package transcript builds the ordered Hashable encodings each
// sub-argument's Fiat-Shamir challenge hashes over (spec §4.6-§4.11). It
// exists so that every sub-argument package encodes (p, q, pk, ck, ...)
// identically instead of repeating the same boilerplate six times, the way
// the teacher keeps its recursive hashing concerns in one place
// (_examples/takakv-msc-poc/voteproof/voteproof.go's getFSChallenge).
package transcript

import (
	"github.com/bgshuffle/core/commitment"
	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/hashing"
)

// P encodes a group's field order p.
func P(G *group.GqGroup) hashing.Hashable { return hashing.BigInt{Value: G.P()} }

// Q encodes a group's order q.
func Q(G *group.GqGroup) hashing.Hashable { return hashing.BigInt{Value: G.Q()} }

// PK encodes a public key as an ordered list of its elements.
func PK(pk elgamal.PublicKey) hashing.Hashable {
	return hashing.ValuedList(pk.Elements().Slice())
}

// CK encodes a commitment key as h followed by g_1...g_nu.
func CK(ck commitment.Key) hashing.Hashable {
	elems := make([]*group.GqElement, 0, ck.Nu()+1)
	elems = append(elems, ck.H())
	for i := 0; i < ck.Nu(); i++ {
		elems = append(elems, ck.G(i))
	}
	return hashing.ValuedList(elems)
}

// GqVec encodes a GqVector as an ordered list.
func GqVec(v group.GqVector) hashing.Hashable {
	return hashing.ValuedList(v.Slice())
}

// ZqVec encodes a ZqVector as an ordered list.
func ZqVec(v group.ZqVector) hashing.Hashable {
	return hashing.ValuedList(v.Slice())
}

// One encodes a single Gq element.
func One(e *group.GqElement) hashing.Hashable { return hashing.Valued(e) }

// Ciphertext encodes a single ciphertext as (gamma, phi_0, ..., phi_{l-1}).
func Ciphertext(c elgamal.Ciphertext) hashing.Hashable {
	out := make(hashing.List, 0, c.Size()+1)
	out = append(out, hashing.Valued(c.Gamma()))
	for i := 0; i < c.Size(); i++ {
		out = append(out, hashing.Valued(c.Phi(i)))
	}
	return out
}

// CiphertextVec encodes an ordered sequence of ciphertexts.
func CiphertextVec(v elgamal.CiphertextVector) hashing.Hashable {
	out := make(hashing.List, v.Len())
	for i := range out {
		out[i] = Ciphertext(v.Get(i))
	}
	return out
}

// CiphertextMatrixT encodes an m x n ciphertext matrix row by row.
func CiphertextMatrixT(m elgamal.CiphertextMatrix) hashing.Hashable {
	out := make(hashing.List, m.Rows())
	for i := range out {
		out[i] = CiphertextVec(m.Row(i))
	}
	return out
}
