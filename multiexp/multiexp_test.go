package multiexp

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
	pk, err := elgamal.NewPublicKey(h, G.Generator())
	require.NoError(t, err)

	ch, err := hashing.NewChallenger(hash, Z)
	require.NoError(t, err)

	return G, ck, pk, ch, random.NewCryptoService()
}

func TestMultiExponentiationArgumentRoundTrip(t *testing.T) {
	G, ck, pk, ch, rnd := testSetup(t)
	Z := group.SameOrderAs(G)

	// n = 2, m = 2, l = 1. C_matrix rows are fresh encryptions of 1 under
	// known randomness so the claimed product C can be derived directly.
	msgOne, err := elgamal.Ones(G, 1)
	require.NoError(t, err)

	c00, err := elgamal.GetCiphertext(msgOne, Z.NewElementFromInt64(3), pk)
	require.NoError(t, err)
	c01, err := elgamal.GetCiphertext(msgOne, Z.NewElementFromInt64(5), pk)
	require.NoError(t, err)
	c10, err := elgamal.GetCiphertext(msgOne, Z.NewElementFromInt64(7), pk)
	require.NoError(t, err)
	c11, err := elgamal.GetCiphertext(msgOne, Z.NewElementFromInt64(11), pk)
	require.NoError(t, err)

	row0, err := elgamal.NewCiphertextVector(c00, c01)
	require.NoError(t, err)
	row1, err := elgamal.NewCiphertextVector(c10, c11)
	require.NoError(t, err)
	cm, err := elgamal.NewCiphertextMatrixFromRows(row0, row1)
	require.NoError(t, err)

	col0, err := group.NewZqVector(Z.NewElementFromInt64(2), Z.NewElementFromInt64(3))
	require.NoError(t, err)
	col1, err := group.NewZqVector(Z.NewElementFromInt64(1), Z.NewElementFromInt64(4))
	require.NoError(t, err)
	A, err := group.NewZqMatrixFromColumns(col0, col1)
	require.NoError(t, err)

	r, err := group.NewZqVector(Z.NewElementFromInt64(9), Z.NewElementFromInt64(13))
	require.NoError(t, err)
	cA, err := commitment.CommitMatrix(A, r, ck)
	require.NoError(t, err)

	rho := Z.NewElementFromInt64(17)

	// C = Enc(1_l, rho, pk) * Prod_{i,j} C_matrix[i,j]^A[j,i]
	acc, err := elgamal.NeutralElement(G, 1)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			term, err := cm.Get(i, j).Exponentiate(A.Get(j, i))
			require.NoError(t, err)
			acc, err = acc.Multiply(term)
			require.NoError(t, err)
		}
	}
	encRho, err := elgamal.GetCiphertext(msgOne, rho, pk)
	require.NoError(t, err)
	C, err := encRho.Multiply(acc)
	require.NoError(t, err)

	stmt := Statement{CMatrix: cm, C: C, CA: cA}
	wit := Witness{A: A, R: r, Rho: rho}

	arg, err := Prove(ck, pk, ch, rnd, stmt, wit)
	require.NoError(t, err)

	result, err := Verify(ck, pk, ch, stmt, arg)
	require.NoError(t, err)
	require.True(t, result.IsVerified, "%v", result.Reasons)
}

func TestMultiExponentiationArgumentRejectsTamperedC(t *testing.T) {
	G, ck, pk, ch, rnd := testSetup(t)
	Z := group.SameOrderAs(G)

	msgOne, err := elgamal.Ones(G, 1)
	require.NoError(t, err)
	c00, err := elgamal.GetCiphertext(msgOne, Z.NewElementFromInt64(3), pk)
	require.NoError(t, err)
	c01, err := elgamal.GetCiphertext(msgOne, Z.NewElementFromInt64(5), pk)
	require.NoError(t, err)
	c10, err := elgamal.GetCiphertext(msgOne, Z.NewElementFromInt64(7), pk)
	require.NoError(t, err)
	c11, err := elgamal.GetCiphertext(msgOne, Z.NewElementFromInt64(11), pk)
	require.NoError(t, err)
	row0, err := elgamal.NewCiphertextVector(c00, c01)
	require.NoError(t, err)
	row1, err := elgamal.NewCiphertextVector(c10, c11)
	require.NoError(t, err)
	cm, err := elgamal.NewCiphertextMatrixFromRows(row0, row1)
	require.NoError(t, err)

	col0, err := group.NewZqVector(Z.NewElementFromInt64(2), Z.NewElementFromInt64(3))
	require.NoError(t, err)
	col1, err := group.NewZqVector(Z.NewElementFromInt64(1), Z.NewElementFromInt64(4))
	require.NoError(t, err)
	A, err := group.NewZqMatrixFromColumns(col0, col1)
	require.NoError(t, err)
	r, err := group.NewZqVector(Z.NewElementFromInt64(9), Z.NewElementFromInt64(13))
	require.NoError(t, err)
	cA, err := commitment.CommitMatrix(A, r, ck)
	require.NoError(t, err)
	rho := Z.NewElementFromInt64(17)

	acc, err := elgamal.NeutralElement(G, 1)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			term, err := cm.Get(i, j).Exponentiate(A.Get(j, i))
			require.NoError(t, err)
			acc, err = acc.Multiply(term)
			require.NoError(t, err)
		}
	}
	encRho, err := elgamal.GetCiphertext(msgOne, rho, pk)
	require.NoError(t, err)
	wrongEncRho, err := elgamal.GetCiphertext(msgOne, Z.NewElementFromInt64(18), pk)
	require.NoError(t, err)
	_ = encRho
	wrongC, err := wrongEncRho.Multiply(acc)
	require.NoError(t, err)

	stmt := Statement{CMatrix: cm, C: wrongC, CA: cA}
	wit := Witness{A: A, R: r, Rho: rho}

	arg, err := Prove(ck, pk, ch, rnd, stmt, wit)
	require.NoError(t, err)

	result, err := Verify(ck, pk, ch, stmt, arg)
	require.NoError(t, err)
	require.False(t, result.IsVerified)
}
