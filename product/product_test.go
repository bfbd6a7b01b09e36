package product

import (
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

func testSetup(t *testing.T) (*group.GqGroup, commitment.Key, elgamal.PublicKey, *hashing.Challenger, random.Service) {
	t.Helper()
	p, _ := new(big.Int).SetString(testP, 10)
	q := new(big.Int).Rsh(p, 1)
	G, err := group.NewGqGroup(p, q, big.NewInt(4))
	require.NoError(t, err)
	hash := hashing.NewService()
	ck, err := commitment.NewCommitmentKey(4, G, hash)
	require.NoError(t, err)

	Z := group.SameOrderAs(G)
	sk := Z.NewElementFromInt64(13)
	h, err := G.Generator().ExponentiateElement(sk)
	require.NoError(t, err)
	pk, err := elgamal.NewPublicKey(h)
	require.NoError(t, err)

	ch, err := hashing.NewChallenger(hash, Z)
	require.NoError(t, err)

	return G, ck, pk, ch, random.NewCryptoService()
}

func TestProductArgumentMultiColumnRoundTrip(t *testing.T) {
	G, ck, pk, ch, rnd := testSetup(t)
	Z := group.SameOrderAs(G)

	col0, err := group.NewZqVector(Z.NewElementFromInt64(2), Z.NewElementFromInt64(3))
	require.NoError(t, err)
	col1, err := group.NewZqVector(Z.NewElementFromInt64(5), Z.NewElementFromInt64(7))
	require.NoError(t, err)
	A, err := group.NewZqMatrixFromColumns(col0, col1)
	require.NoError(t, err)

	r, err := group.NewZqVector(Z.NewElementFromInt64(11), Z.NewElementFromInt64(17))
	require.NoError(t, err)
	cA, err := commitment.CommitMatrix(A, r, ck)
	require.NoError(t, err)

	b := Z.NewElementFromInt64(2 * 5 * 3 * 7)
	stmt := Statement{CA: cA, B: b, N: 2}
	wit := Witness{A: A, R: r}

	arg, err := Prove(ck, pk, ch, rnd, stmt, wit)
	require.NoError(t, err)
	require.NotNil(t, arg.Cb)
	require.NotNil(t, arg.Hadamard)

	result, err := Verify(ck, pk, ch, stmt, arg)
	require.NoError(t, err)
	require.True(t, result.IsVerified, "%v", result.Reasons)
}

func TestProductArgumentMultiColumnRejectsWrongTotal(t *testing.T) {
	G, ck, pk, ch, rnd := testSetup(t)
	Z := group.SameOrderAs(G)

	col0, err := group.NewZqVector(Z.NewElementFromInt64(2), Z.NewElementFromInt64(3))
	require.NoError(t, err)
	col1, err := group.NewZqVector(Z.NewElementFromInt64(5), Z.NewElementFromInt64(7))
	require.NoError(t, err)
	A, err := group.NewZqMatrixFromColumns(col0, col1)
	require.NoError(t, err)

	r, err := group.NewZqVector(Z.NewElementFromInt64(11), Z.NewElementFromInt64(17))
	require.NoError(t, err)
	cA, err := commitment.CommitMatrix(A, r, ck)
	require.NoError(t, err)

	wrongB := Z.NewElementFromInt64(999)
	stmt := Statement{CA: cA, B: wrongB, N: 2}
	wit := Witness{A: A, R: r}

	arg, err := Prove(ck, pk, ch, rnd, stmt, wit)
	require.NoError(t, err)

	result, err := Verify(ck, pk, ch, stmt, arg)
	require.NoError(t, err)
	require.False(t, result.IsVerified)
}

func TestProductArgumentSingleColumnRoundTrip(t *testing.T) {
	G, ck, pk, ch, rnd := testSetup(t)
	Z := group.SameOrderAs(G)

	col0, err := group.NewZqVector(Z.NewElementFromInt64(2), Z.NewElementFromInt64(3), Z.NewElementFromInt64(5))
	require.NoError(t, err)
	A, err := group.NewZqMatrixFromColumns(col0)
	require.NoError(t, err)

	r, err := group.NewZqVector(Z.NewElementFromInt64(9))
	require.NoError(t, err)
	cA, err := commitment.CommitMatrix(A, r, ck)
	require.NoError(t, err)

	b := Z.NewElementFromInt64(2 * 3 * 5)
	stmt := Statement{CA: cA, B: b, N: 3}
	wit := Witness{A: A, R: r}

	arg, err := Prove(ck, pk, ch, rnd, stmt, wit)
	require.NoError(t, err)
	require.Nil(t, arg.Cb)
	require.Nil(t, arg.Hadamard)

	result, err := Verify(ck, pk, ch, stmt, arg)
	require.NoError(t, err)
	require.True(t, result.IsVerified, "%v", result.Reasons)
}

func TestProductArgumentRejectsStructuralMismatch(t *testing.T) {
	G, ck, pk, ch, rnd := testSetup(t)
	Z := group.SameOrderAs(G)

	col0, err := group.NewZqVector(Z.NewElementFromInt64(2), Z.NewElementFromInt64(3))
	require.NoError(t, err)
	col1, err := group.NewZqVector(Z.NewElementFromInt64(5), Z.NewElementFromInt64(7))
	require.NoError(t, err)
	A, err := group.NewZqMatrixFromColumns(col0, col1)
	require.NoError(t, err)
	r, err := group.NewZqVector(Z.NewElementFromInt64(11), Z.NewElementFromInt64(17))
	require.NoError(t, err)
	cA, err := commitment.CommitMatrix(A, r, ck)
	require.NoError(t, err)
	b := Z.NewElementFromInt64(210)
	stmt := Statement{CA: cA, B: b, N: 2}
	wit := Witness{A: A, R: r}

	arg, err := Prove(ck, pk, ch, rnd, stmt, wit)
	require.NoError(t, err)

	arg.Hadamard = nil
	_, err = Verify(ck, pk, ch, stmt, arg)
	require.Error(t, err)
}
