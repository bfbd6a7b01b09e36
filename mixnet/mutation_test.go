package mixnet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bgshuffle/core/commitment"
	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/hashing"
	"github.com/bgshuffle/core/permute"
)

// setupShuffle proves a fresh N-element shuffle and returns everything a
// mutation test needs to re-verify it.
func setupShuffle(t *testing.T, N int) (*group.GqGroup, Mixnet, elgamal.PublicKey, elgamal.CiphertextVector, VerifiableShuffle) {
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

	return G, mx, pk, C, shuffled
}

// TestSoundnessBitFlipBreaksVerification changes the first decimal digit
// of the serialized argument (the leading digit of its first c_A element)
// and checks verification fails on the round trip, per the "soundness
// bench" property: a malformed proof must never verify.
func TestSoundnessBitFlipBreaksVerification(t *testing.T) {
	G, mx, pk, C, shuffled := setupShuffle(t, 4)

	encoded, err := json.Marshal(shuffled.Argument)
	require.NoError(t, err)

	mutated := make([]byte, len(encoded))
	copy(mutated, encoded)
	flipped := false
	for i := range mutated {
		if mutated[i] >= '0' && mutated[i] <= '9' {
			mutated[i] = '0' + (mutated[i]-'0'+1)%10
			flipped = true
			break
		}
	}
	require.True(t, flipped, "expected at least one ascii digit in the encoded argument")

	decodedArg, err := ShuffleArgumentUnmarshalJSON(mutated, G)
	if err != nil {
		// A structurally invalid mutation is an acceptable soundness
		// outcome too: the verifier never has to accept it.
		return
	}

	result, err := mx.VerifyShuffle(C, shuffled.Cp, decodedArg, pk)
	require.NoError(t, err)
	require.False(t, result.IsVerified)
}

// TestSoundnessMultiplyingByHBreaksVerification right-multiplies one
// output ciphertext's gamma component by the commitment key's h, breaking
// its relationship to C without disturbing its shape, and checks
// verification rejects it.
func TestSoundnessMultiplyingByHBreaksVerification(t *testing.T) {
	_, mx, pk, C, shuffled := setupShuffle(t, 4)

	h := mx.ck.H()
	tampered := shuffled.Cp.Slice()
	newGamma, err := tampered[0].Gamma().Multiply(h)
	require.NoError(t, err)
	phis := make([]*group.GqElement, tampered[0].Size())
	for i := range phis {
		phis[i] = tampered[0].Phi(i)
	}
	newC, err := elgamal.NewCiphertext(newGamma, phis...)
	require.NoError(t, err)
	tampered[0] = newC

	tamperedVec, err := elgamal.NewCiphertextVector(tampered...)
	require.NoError(t, err)

	result, err := mx.VerifyShuffle(C, tamperedVec, shuffled.Argument, pk)
	require.NoError(t, err)
	require.False(t, result.IsVerified)
}

// TestSoundnessInconsistentWitnessFailsToProve exercises the prover's own
// coherence check: a witness permutation/randomness pair that does not
// actually reproduce C' from C must be rejected before any argument is
// constructed, never silently accepted.
func TestSoundnessInconsistentWitnessFailsToProve(t *testing.T) {
	_, mx, pk, C, shuffled := setupShuffle(t, 4)

	Z := group.SameOrderAs(C.Group())
	zeroRho, err := repeatZq(Z, Z.Identity(), 4)
	require.NoError(t, err)

	wrongWitness := ShuffleWitness{Pi: permute.Identity(4), Rho: zeroRho}
	stmt := ShuffleStatement{C: C, Cp: shuffled.Cp}
	_, err = mx.prove(pk, stmt, wrongWitness, 2, 2)
	require.Error(t, err)
}
