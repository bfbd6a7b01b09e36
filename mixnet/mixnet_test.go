package mixnet

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bgshuffle/core/commitment"
	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/hashing"
	"github.com/bgshuffle/core/random"
)

// testP is a 320-bit safe prime p = 2q+1. Its q is longer than the
// 256-bit challenge digest, as hashing.NewChallenger requires.
const testP = "2061048429756854661500451277538766111077633559026484356955918070609551746572574458486050138744779"

// testSetup builds the testP safe-prime group and a public key; callers
// rebuild the commitment key sized to each test's own dimensions.
func testSetup(t *testing.T, nu int) (*group.GqGroup, commitment.Key, elgamal.PublicKey, *hashing.Challenger, random.Service) {
	t.Helper()
	p, _ := new(big.Int).SetString(testP, 10)
	G, err := group.NewGqGroup(p, new(big.Int).Rsh(p, 1), big.NewInt(4))
	require.NoError(t, err)

	hash := hashing.NewService()
	ck, err := commitment.NewCommitmentKey(nu, G, hash)
	require.NoError(t, err)

	Z := group.SameOrderAs(G)
	sk := Z.NewElementFromInt64(29)
	h, err := G.Generator().ExponentiateElement(sk)
	require.NoError(t, err)
	// Eight repeated key elements give the public key enough size for
	// every (n, l) pair the shuffle tests below exercise.
	keyElems := make([]*group.GqElement, 8)
	for i := range keyElems {
		keyElems[i] = h
	}
	pk, err := elgamal.NewPublicKey(keyElems...)
	require.NoError(t, err)

	ch, err := hashing.NewChallenger(hash, Z)
	require.NoError(t, err)

	return G, ck, pk, ch, random.NewCryptoService()
}

func encryptMessages(t *testing.T, G *group.GqGroup, pk elgamal.PublicKey, rnd random.Service, values []int64) elgamal.CiphertextVector {
	t.Helper()
	Z := group.SameOrderAs(G)
	entries := make([]elgamal.Ciphertext, len(values))
	for i, v := range values {
		msg, err := elgamal.ConstantMessage(func() *group.GqElement {
			e, err := G.Generator().ExponentiateElement(Z.NewElementFromInt64(v))
			require.NoError(t, err)
			return e
		}(), 1)
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

func runShuffleRoundTrip(t *testing.T, N int) {
	t.Helper()
	G, _, pk, _, rnd := testSetup(t, 1)
	C := encryptMessages(t, G, pk, rnd, sequentialValues(N))

	_, n, err := decompose(N)
	require.NoError(t, err)
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
	require.Equal(t, N, shuffled.Cp.Len())

	result, err := mx.VerifyShuffle(C, shuffled.Cp, shuffled.Argument, pk)
	require.NoError(t, err)
	require.True(t, result.IsVerified, "%v", result.Reasons)
}

func sequentialValues(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i + 1)
	}
	return out
}

func TestShuffleRoundTripPerfectSquare(t *testing.T) {
	runShuffleRoundTrip(t, 4)
}

func TestShuffleRoundTripPrime(t *testing.T) {
	runShuffleRoundTrip(t, 5)
}

func TestShuffleRoundTripComposite(t *testing.T) {
	runShuffleRoundTrip(t, 6)
}

func TestShuffleRoundTripMinimal(t *testing.T) {
	runShuffleRoundTrip(t, 2)
}

func TestShuffleRejectsTamperedCiphertext(t *testing.T) {
	G, _, pk, _, rnd := testSetup(t, 1)
	N := 4
	C := encryptMessages(t, G, pk, rnd, sequentialValues(N))

	_, n, err := decompose(N)
	require.NoError(t, err)
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

	tampered := shuffled.Cp.Slice()
	tampered[0], err = tampered[0].Exponentiate(Z.NewElementFromInt64(2))
	require.NoError(t, err)
	tamperedVec, err := elgamal.NewCiphertextVector(tampered...)
	require.NoError(t, err)

	result, err := mx.VerifyShuffle(C, tamperedVec, shuffled.Argument, pk)
	require.NoError(t, err)
	require.False(t, result.IsVerified)
}

func TestShuffleRejectsForeignArgument(t *testing.T) {
	G, _, pk, _, rnd := testSetup(t, 1)
	N := 4
	C1 := encryptMessages(t, G, pk, rnd, sequentialValues(N))
	C2 := encryptMessages(t, G, pk, rnd, sequentialValues(N))

	_, n, err := decompose(N)
	require.NoError(t, err)
	hash := hashing.NewService()
	ck, err := commitment.NewCommitmentKey(n, G, hash)
	require.NoError(t, err)
	Z := group.SameOrderAs(G)
	ch, err := hashing.NewChallenger(hash, Z)
	require.NoError(t, err)
	mx, err := NewMixnet(ck, ch, rnd)
	require.NoError(t, err)

	shuffled1, err := mx.GenVerifiableShuffle(C1, pk)
	require.NoError(t, err)

	result, err := mx.VerifyShuffle(C2, shuffled1.Cp, shuffled1.Argument, pk)
	require.NoError(t, err)
	require.False(t, result.IsVerified)
}

func TestShuffleRejectsPermutationSwapWithoutRerandomization(t *testing.T) {
	G, _, pk, _, rnd := testSetup(t, 1)
	N := 4
	C := encryptMessages(t, G, pk, rnd, sequentialValues(N))

	_, n, err := decompose(N)
	require.NoError(t, err)
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

	swapped := shuffled.Cp.Slice()
	swapped[0], swapped[1] = swapped[1], swapped[0]
	swappedVec, err := elgamal.NewCiphertextVector(swapped...)
	require.NoError(t, err)

	result, err := mx.VerifyShuffle(C, swappedVec, shuffled.Argument, pk)
	require.NoError(t, err)
	require.False(t, result.IsVerified)
}

func TestDecomposeAlwaysDividesEvenly(t *testing.T) {
	for N := 2; N <= 2000; N++ {
		m, n, err := decompose(N)
		require.NoError(t, err)
		require.Equal(t, N, m*n)
		require.LessOrEqual(t, m, n)
		require.GreaterOrEqual(t, n, 2)
	}
}

func TestDecomposeRejectsTooSmall(t *testing.T) {
	_, _, err := decompose(1)
	require.Error(t, err)
	_, _, err = decompose(0)
	require.Error(t, err)
}

func TestVerifiableShuffleJSONRoundTrip(t *testing.T) {
	G, _, pk, _, rnd := testSetup(t, 1)
	N := 4
	C := encryptMessages(t, G, pk, rnd, sequentialValues(N))

	_, n, err := decompose(N)
	require.NoError(t, err)
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

	encoded, err := json.Marshal(shuffled)
	require.NoError(t, err)

	decoded, err := VerifiableShuffleUnmarshalJSON(encoded, G)
	require.NoError(t, err)

	result, err := mx.VerifyShuffle(C, decoded.Cp, decoded.Argument, pk)
	require.NoError(t, err)
	require.True(t, result.IsVerified, "%v", result.Reasons)
}
