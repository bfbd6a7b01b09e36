// Package hashing implements the recursive-hash / Fiat-Shamir challenge
// collaborator of spec §4.5 (C5). The byte-level digest itself ("the hash
// primitive underlying recursive hashing") is an out-of-scope external
// collaborator per spec §1; this package only supplies the recursion and
// domain-separation structure on top of it, plus the Zq reduction used to
// turn a transcript into a verifier challenge.
//
// The teacher's own Fiat-Shamir challenge, voteproof.getFSChallenge (see
// _examples/takakv-msc-poc/voteproof/voteproof.go), hashes a fixed list of
// group elements with crypto/sha256 and truncates to Bc/8 bytes. This
// generalizes that one-shot hash into a recursive hash over a tagged
// Hashable tree, and upgrades the digest function to SHA3-256 via
// golang.org/x/crypto/sha3 (already present, indirectly, in the teacher's
// own dependency graph).
package hashing

import (
	"encoding/binary"
	"hash"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/bgshuffle/core/internal/mixerr"
)

const (
	tagBytes byte = iota
	tagBigInt
	tagString
	tagList
)

// Service is the HashService collaborator of spec §6: recursiveHash,
// getHashLength, byteArrayToInteger.
type Service struct {
	newHash func() hash.Hash
	length  int
}

// NewService returns a Service backed by SHA3-256.
func NewService() *Service {
	return &Service{newHash: sha3.New256, length: 32}
}

// NewServiceWithDigest builds a Service around an arbitrary digest
// algorithm, e.g. sha3.New512 for a wider challenge space. newHash must
// always report digestLength bytes from Sum.
func NewServiceWithDigest(newHash func() hash.Hash, digestLength int) (*Service, error) {
	if newHash == nil || digestLength <= 0 {
		return nil, mixerr.InvalidInput("invalid digest configuration")
	}
	return &Service{newHash: newHash, length: digestLength}, nil
}

// GetHashLength returns the digest length in bytes.
func (s *Service) GetHashLength() int { return s.length }

// ByteArrayToInteger interprets b as an unsigned big-endian integer.
func (s *Service) ByteArrayToInteger(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

func (s *Service) hashLeaf(tag byte, data []byte) []byte {
	h := s.newHash()
	h.Write([]byte{tag})
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(data)))
	h.Write(lenBuf[:])
	h.Write(data)
	return h.Sum(nil)
}

func integerToByteArray(v *big.Int) []byte {
	if v.Sign() < 0 {
		// Recursive hash inputs are always non-negative domain values
		// (counters, field elements); a negative value here is a
		// programming error in a caller, not a malformed user input.
		panic("hashing: negative BigInt hashable")
	}
	return v.Bytes()
}

// hashOne recursively hashes a single Hashable node. Lists are hashed by
// first hashing each child, then hashing the concatenation of the
// children's digests under a distinct tag — this is what makes
// List{a, List{b, c}} differ from List{a, b, c} (spec §4.5).
func (s *Service) hashOne(v Hashable) []byte {
	switch t := v.(type) {
	case Bytes:
		return s.hashLeaf(tagBytes, t)
	case BigInt:
		return s.hashLeaf(tagBigInt, integerToByteArray(t.Value))
	case Str:
		return s.hashLeaf(tagString, []byte(t))
	case List:
		buf := make([]byte, 0, len(t)*s.length)
		for _, child := range t {
			buf = append(buf, s.hashOne(child)...)
		}
		return s.hashLeaf(tagList, buf)
	default:
		panic("hashing: unknown Hashable variant")
	}
}

// RecursiveHash hashes the ordered list of values, per spec §4.5.
func (s *Service) RecursiveHash(values ...Hashable) []byte {
	return s.hashOne(List(values))
}
