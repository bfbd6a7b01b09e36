// Package permute implements uniform random permutation generation and the
// re-encrypting shuffle of spec §4.4 (C4), grounded on the teacher's
// Fisher-Yates-style mixing in cjpatton-shuffle/shuffle.go (GeneratePerm)
// and the single-ciphertext re-encryption in
// _examples/takakv-msc-poc/elgamal.go (encryptVote), generalized here to
// operate over a whole ciphertext vector at once.
package permute

import (
	"fmt"

	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/internal/mixerr"
	"github.com/bgshuffle/core/random"
)

// Permutation is an immutable bijection on [0, N).
type Permutation struct {
	mapping []int
}

// NewPermutation validates that mapping is a bijection on [0, len(mapping))
// and returns it.
func NewPermutation(mapping []int) (Permutation, error) {
	n := len(mapping)
	seen := make([]bool, n)
	for i, v := range mapping {
		if v < 0 || v >= n {
			return Permutation{}, mixerr.InvalidInput("permutation entry %d out of range: %d", i, v)
		}
		if seen[v] {
			return Permutation{}, mixerr.InvalidInput("permutation entry %d repeats value %d", i, v)
		}
		seen[v] = true
	}
	cp := make([]int, n)
	copy(cp, mapping)
	return Permutation{mapping: cp}, nil
}

// Identity returns the identity permutation of size n.
func Identity(n int) Permutation {
	mapping := make([]int, n)
	for i := range mapping {
		mapping[i] = i
	}
	return Permutation{mapping: mapping}
}

// Size returns N.
func (p Permutation) Size() int { return len(p.mapping) }

// Get returns π(i).
func (p Permutation) Get(i int) int { return p.mapping[i] }

// Slice returns a defensive copy of the mapping.
func (p Permutation) Slice() []int {
	cp := make([]int, len(p.mapping))
	copy(cp, p.mapping)
	return cp
}

// Equal reports whether p and other define the same mapping.
func (p Permutation) Equal(other Permutation) bool {
	if len(p.mapping) != len(other.mapping) {
		return false
	}
	for i, v := range p.mapping {
		if other.mapping[i] != v {
			return false
		}
	}
	return true
}

// String renders p as its mapping, e.g. "[2 0 3 1]".
func (p Permutation) String() string { return fmt.Sprint(p.mapping) }

// GenRandomPermutation draws a uniform random permutation of size n via
// Fisher-Yates, using rnd for uniform index draws.
func GenRandomPermutation(rnd random.Service, n int) (Permutation, error) {
	if n <= 0 {
		return Permutation{}, mixerr.InvalidInput("permutation size must be positive, got %d", n)
	}
	mapping := make([]int, n)
	for i := range mapping {
		mapping[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := rnd.GenRandomIndex(i + 1)
		if err != nil {
			return Permutation{}, err
		}
		mapping[i], mapping[j] = mapping[j], mapping[i]
	}
	return Permutation{mapping: mapping}, nil
}

// ShuffleResult bundles the shuffled ciphertexts with the witness that
// produced them (spec §4.4).
type ShuffleResult struct {
	Shuffled    elgamal.CiphertextVector
	Permutation Permutation
	Randomness  group.ZqVector
}

// Shuffle re-encrypts and permutes C under pk: C'_i = Enc(1_l, r_i, pk) *
// C_{pi(i)}, for a fresh random permutation pi and fresh randomness r
// (spec §4.4). C must be non-empty, every ciphertext must share pk's
// group, have element-size l in [1, |pk|].
func Shuffle(C elgamal.CiphertextVector, pk elgamal.PublicKey, rnd random.Service) (ShuffleResult, error) {
	N := C.Len()
	if N == 0 {
		return ShuffleResult{}, mixerr.InvalidInput("ciphertext vector must be non-empty")
	}
	l := C.ElementSize()
	if l == 0 {
		return ShuffleResult{}, mixerr.InvalidInput("ciphertext element-size must be positive")
	}
	if l > pk.Size() {
		return ShuffleResult{}, mixerr.InvalidInput("ciphertext element-size %d exceeds public key size %d", l, pk.Size())
	}
	if !C.Group().Equal(pk.Group()) {
		return ShuffleResult{}, mixerr.InvalidInput("ciphertext vector and public key belong to different groups")
	}

	Z := group.SameOrderAs(pk.Group())
	perm, err := GenRandomPermutation(rnd, N)
	if err != nil {
		return ShuffleResult{}, err
	}
	r, err := rnd.GenRandomVector(Z, N)
	if err != nil {
		return ShuffleResult{}, err
	}

	ones, err := elgamal.Ones(pk.Group(), l)
	if err != nil {
		return ShuffleResult{}, err
	}

	out := make([]elgamal.Ciphertext, N)
	for i := 0; i < N; i++ {
		enc, err := elgamal.GetCiphertext(ones, r.Get(i), pk)
		if err != nil {
			return ShuffleResult{}, err
		}
		out[i], err = enc.Multiply(C.Get(perm.Get(i)))
		if err != nil {
			return ShuffleResult{}, err
		}
	}

	shuffled, err := elgamal.NewCiphertextVector(out...)
	if err != nil {
		return ShuffleResult{}, err
	}
	return ShuffleResult{Shuffled: shuffled, Permutation: perm, Randomness: r}, nil
}
