package permute

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/random"
)

func testGroup(t *testing.T) *group.GqGroup {
	t.Helper()
	g, err := group.NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(4))
	require.NoError(t, err)
	return g
}

func TestNewPermutationRejectsNonBijection(t *testing.T) {
	_, err := NewPermutation([]int{0, 0, 2})
	require.Error(t, err)

	_, err = NewPermutation([]int{0, 1, 5})
	require.Error(t, err)

	p, err := NewPermutation([]int{2, 0, 1})
	require.NoError(t, err)
	require.Equal(t, 3, p.Size())
	require.Equal(t, 2, p.Get(0))
}

func TestPermutationEqualAndString(t *testing.T) {
	p, err := NewPermutation([]int{2, 0, 1})
	require.NoError(t, err)
	q, err := NewPermutation([]int{2, 0, 1})
	require.NoError(t, err)
	require.True(t, p.Equal(q))
	require.NotEmpty(t, p.String())

	r, err := NewPermutation([]int{0, 1, 2})
	require.NoError(t, err)
	require.False(t, p.Equal(r))
	require.False(t, p.Equal(Identity(4)))
}

func TestGenRandomPermutationIsABijection(t *testing.T) {
	rnd := random.NewCryptoService()
	for n := 1; n <= 8; n++ {
		p, err := GenRandomPermutation(rnd, n)
		require.NoError(t, err)
		seen := make([]bool, n)
		for i := 0; i < n; i++ {
			v := p.Get(i)
			require.False(t, seen[v])
			seen[v] = true
		}
	}
}

func TestShuffleProducesSamePlaintextsUnderIdentity(t *testing.T) {
	G := testGroup(t)
	Z := group.SameOrderAs(G)
	x := Z.NewElementFromInt64(5)
	h, err := G.Generator().ExponentiateElement(x)
	require.NoError(t, err)
	pk, err := elgamal.NewPublicKey(h)
	require.NoError(t, err)

	msg1, err := elgamal.ConstantMessage(G.Generator(), 1)
	require.NoError(t, err)
	c1, err := elgamal.GetCiphertext(msg1, Z.NewElementFromInt64(1), pk)
	require.NoError(t, err)
	c2, err := elgamal.GetCiphertext(msg1, Z.NewElementFromInt64(2), pk)
	require.NoError(t, err)

	C, err := elgamal.NewCiphertextVector(c1, c2)
	require.NoError(t, err)

	rnd := random.NewCryptoService()
	result, err := Shuffle(C, pk, rnd)
	require.NoError(t, err)
	require.Equal(t, 2, result.Shuffled.Len())
	require.Equal(t, 2, result.Permutation.Size())
	require.Equal(t, 2, result.Randomness.Len())

	// Decrypt each shuffled ciphertext: m_i = phi_i / gamma_i^x, and check
	// the multiset of plaintexts is unchanged.
	decrypt := func(c elgamal.Ciphertext) *group.GqElement {
		mask, err := c.Gamma().ExponentiateElement(x)
		require.NoError(t, err)
		pt, err := c.Phi(0).Multiply(mask.Invert())
		require.NoError(t, err)
		return pt
	}
	got := []*group.GqElement{decrypt(result.Shuffled.Get(0)), decrypt(result.Shuffled.Get(1))}
	want := []*group.GqElement{G.Generator(), G.Generator()}
	require.True(t, got[0].Equal(want[0]))
	require.True(t, got[1].Equal(want[1]))
}

func TestShuffleRejectsOversizedElementSize(t *testing.T) {
	G := testGroup(t)
	Z := group.SameOrderAs(G)
	pk, err := elgamal.NewPublicKey(G.Generator())
	require.NoError(t, err)

	msg, err := elgamal.ConstantMessage(G.Generator(), 2)
	require.NoError(t, err)
	ct, err := elgamal.GetCiphertext(msg, Z.NewElementFromInt64(1), pk)
	require.Error(t, err)
	_ = ct

	// Build a 2-element ciphertext directly against a 2-element pk, then
	// re-wrap it against a 1-element pk to trigger the size check.
	pk2, err := elgamal.NewPublicKey(G.Generator(), G.Generator())
	require.NoError(t, err)
	ct2, err := elgamal.GetCiphertext(msg, Z.NewElementFromInt64(1), pk2)
	require.NoError(t, err)
	C, err := elgamal.NewCiphertextVector(ct2)
	require.NoError(t, err)

	_, err = Shuffle(C, pk, random.NewCryptoService())
	require.Error(t, err)
}
