package mixnet

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bgshuffle/core/commitment"
	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/hashing"
	"github.com/bgshuffle/core/permute"
	"github.com/bgshuffle/core/random"
)

// Boundary scenario 1 (spec §8): N=2, l=1, identity permutation, zero
// randomness vector. C' must be ciphertext-wise equal to (Enc(1,0,pk)*C[0],
// Enc(1,0,pk)*C[1]), and the argument must verify. The public key carries
// two repeated elements rather than the scenario's literal "size 1":
// decompose(2) routes the witness through the multi-exponentiation
// argument with its larger dimension n=2, and that argument requires
// pk.Size() >= n (see multiexp.Prove), so a size-1 key can never prove an
// N=2 shuffle regardless of l.
func TestBoundaryIdentityPermutationZeroRandomness(t *testing.T) {
	p, _ := new(big.Int).SetString(testP, 10)
	G, err := group.NewGqGroup(p, new(big.Int).Rsh(p, 1), big.NewInt(4))
	require.NoError(t, err)
	Z := group.SameOrderAs(G)

	sk := Z.NewElementFromInt64(17)
	h, err := G.Generator().ExponentiateElement(sk)
	require.NoError(t, err)
	pk, err := elgamal.NewPublicKey(h, h)
	require.NoError(t, err)

	rnd := deterministicZeroService{Z: Z}
	C := encryptMessages(t, G, pk, rnd, []int64{3, 4})

	hash := hashing.NewService()
	ck, err := commitment.NewCommitmentKey(2, G, hash)
	require.NoError(t, err)
	ch, err := hashing.NewChallenger(hash, Z)
	require.NoError(t, err)
	mx, err := NewMixnet(ck, ch, rnd)
	require.NoError(t, err)

	stmt := ShuffleStatement{
		C:  C,
		Cp: C,
	}
	pi := permute.Identity(2)
	zeroRho, err := repeatZq(Z, Z.Identity(), 2)
	require.NoError(t, err)
	wit := ShuffleWitness{Pi: pi, Rho: zeroRho}

	ones, err := elgamal.Ones(G, 1)
	require.NoError(t, err)
	expected := make([]elgamal.Ciphertext, 2)
	for i := 0; i < 2; i++ {
		enc, err := elgamal.GetCiphertext(ones, Z.Identity(), pk)
		require.NoError(t, err)
		expected[i], err = enc.Multiply(C.Get(i))
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		require.True(t, ciphertextsEqual(expected[i], C.Get(i)), "Enc(1,0,pk)*C[%d] must equal C[%d]", i, i)
	}

	arg, err := mx.prove(pk, stmt, wit, 1, 2)
	require.NoError(t, err)
	result, err := mx.VerifyShuffle(C, C, arg, pk)
	require.NoError(t, err)
	require.True(t, result.IsVerified, "%v", result.Reasons)
}

// deterministicZeroService always returns the additive identity for Zq
// draws, so the N=2 boundary scenario's "zero randomness vector" witness
// is exactly reproducible.
type deterministicZeroService struct {
	Z *group.ZqGroup
}

func (s deterministicZeroService) GenRandomZq(Z *group.ZqGroup) (*group.ZqElement, error) {
	return Z.Identity(), nil
}

func (s deterministicZeroService) GenRandomVector(Z *group.ZqGroup, n int) (group.ZqVector, error) {
	return repeatZq(Z, Z.Identity(), n)
}

func (s deterministicZeroService) GenRandomIndex(bound int) (int, error) {
	return 0, nil
}

func (s deterministicZeroService) GenRandomInteger(bound *big.Int) (*big.Int, error) {
	return big.NewInt(0), nil
}

// encryptPairs encrypts l=2 messages (g^a, g^b) under pk with fresh
// randomness, used by the l=2 boundary scenario.
func encryptPairs(t *testing.T, G *group.GqGroup, pk elgamal.PublicKey, rnd random.Service, values [][2]int64) elgamal.CiphertextVector {
	t.Helper()
	Z := group.SameOrderAs(G)
	entries := make([]elgamal.Ciphertext, len(values))
	for i, pair := range values {
		c0, err := G.Generator().ExponentiateElement(Z.NewElementFromInt64(pair[0]))
		require.NoError(t, err)
		c1, err := G.Generator().ExponentiateElement(Z.NewElementFromInt64(pair[1]))
		require.NoError(t, err)
		msg, err := elgamal.NewMessage(c0, c1)
		require.NoError(t, err)
		r, err := rnd.GenRandomZq(Z)
		require.NoError(t, err)
		c, err := elgamal.GetCiphertext(msg, r, pk)
		require.NoError(t, err)
		entries[i] = c
	}
	v, err := elgamal.NewCiphertextVector(entries...)
	require.NoError(t, err)
	return v
}

// Boundary scenario 2 (spec §8): N=4, l=2, π=(2,0,3,1), ρ=(1,2,3,4). The
// prover's output verifies; mutating the reduced Hadamard sub-argument's
// c_B[0] to the group identity must cause verification to fail with a
// reason containing "c_B_0 must equal c_A_0".
func TestBoundaryFixedPermutationMutatedCB(t *testing.T) {
	G, ck, pk, ch, rnd := testSetup(t, 2)
	Z := group.SameOrderAs(G)

	C := encryptPairs(t, G, pk, rnd, [][2]int64{{10, 11}, {20, 21}, {30, 31}, {40, 41}})
	pi, err := permute.NewPermutation([]int{2, 0, 3, 1})
	require.NoError(t, err)
	rho, err := group.NewZqVector(
		Z.NewElementFromInt64(1), Z.NewElementFromInt64(2),
		Z.NewElementFromInt64(3), Z.NewElementFromInt64(4),
	)
	require.NoError(t, err)

	ones, err := elgamal.Ones(G, C.ElementSize())
	require.NoError(t, err)
	cpEntries := make([]elgamal.Ciphertext, 4)
	for i := 0; i < 4; i++ {
		enc, err := elgamal.GetCiphertext(ones, rho.Get(i), pk)
		require.NoError(t, err)
		cpEntries[i], err = enc.Multiply(C.Get(pi.Get(i)))
		require.NoError(t, err)
	}
	Cp, err := elgamal.NewCiphertextVector(cpEntries...)
	require.NoError(t, err)

	mx, err := NewMixnet(ck, ch, rnd)
	require.NoError(t, err)
	stmt := ShuffleStatement{C: C, Cp: Cp}
	wit := ShuffleWitness{Pi: pi, Rho: rho}

	arg, err := mx.prove(pk, stmt, wit, 2, 2)
	require.NoError(t, err)

	result, err := mx.VerifyShuffle(C, Cp, arg, pk)
	require.NoError(t, err)
	require.True(t, result.IsVerified, "%v", result.Reasons)

	require.NotNil(t, arg.Product.Hadamard, "m=2 product argument must carry a hadamard sub-argument")
	mutatedEntries := arg.Product.Hadamard.CB.Slice()
	mutatedEntries[0] = G.Identity()
	mutatedCB, err := group.NewGqVector(mutatedEntries...)
	require.NoError(t, err)
	mutatedHadamard := *arg.Product.Hadamard
	mutatedHadamard.CB = mutatedCB
	mutatedArg := arg
	mutatedArg.Product.Hadamard = &mutatedHadamard

	mutatedResult, err := mx.VerifyShuffle(C, Cp, mutatedArg, pk)
	require.NoError(t, err)
	require.False(t, mutatedResult.IsVerified)
	found := false
	for _, reason := range mutatedResult.Reasons {
		if reason == "c_B_0 must equal c_A_0" {
			found = true
		}
	}
	require.True(t, found, "expected a reason referencing the Hadamard c_B_0/c_A_0 check, got %v", mutatedResult.Reasons)
}

// Boundary scenario 3 (spec §8): N=5 is prime, so decompose must return
// m=1, n=5, routing the reduced product claim through the single-value-only
// branch; verification still passes.
func TestBoundaryPrimeSizeUsesSingleValueOnlyBranch(t *testing.T) {
	m, n, err := decompose(5)
	require.NoError(t, err)
	require.Equal(t, 1, m)
	require.Equal(t, 5, n)

	G, _, pk, _, rnd := testSetup(t, 1)
	C := encryptMessages(t, G, pk, rnd, sequentialValues(5))

	hash := hashing.NewService()
	ck, err := commitment.NewCommitmentKey(n, G, hash)
	require.NoError(t, err)
	Z := group.SameOrderAs(G)
	ch, err := hashing.NewChallenger(hash, Z)
	require.NoError(t, err)
	mx, err := NewMixnet(ck, ch, rnd)
	require.NoError(t, err)

	shuffled, err := mx.GenVerifiableShuffle(C, pk)
	require.NoError(t, err)
	require.Nil(t, shuffled.Argument.Product.Hadamard, "m=1 product argument must not carry a hadamard sub-argument")

	result, err := mx.VerifyShuffle(C, shuffled.Cp, shuffled.Argument, pk)
	require.NoError(t, err)
	require.True(t, result.IsVerified, "%v", result.Reasons)
}
