package group

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// A small safe prime: p = 23 = 2*11+1, q = 11, generator 4 (4^11 mod 23 = 1).
func testGroup(t *testing.T) *GqGroup {
	t.Helper()
	g, err := NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(4))
	require.NoError(t, err)
	return g
}

func TestNewGqGroupRejectsBadParameters(t *testing.T) {
	_, err := NewGqGroup(big.NewInt(22), big.NewInt(11), big.NewInt(4))
	require.Error(t, err)

	_, err = NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(1))
	require.Error(t, err, "generator must not be identity")

	_, err = NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(5))
	require.Error(t, err, "5 does not have order 11 mod 23")
}

func TestMultiplyRejectsMismatchedGroups(t *testing.T) {
	G := testGroup(t)
	H, err := NewGqGroup(big.NewInt(47), big.NewInt(23), big.NewInt(2))
	require.NoError(t, err)

	a := G.Generator()
	b := H.Generator()
	_, err = a.Multiply(b)
	require.Error(t, err)
}

func TestExponentiateMatchesRepeatedMultiply(t *testing.T) {
	G := testGroup(t)
	g := G.Generator()

	for exp := int64(0); exp < 11; exp++ {
		want := G.Identity()
		for i := int64(0); i < exp; i++ {
			var err error
			want, err = want.Multiply(g)
			require.NoError(t, err)
		}
		got, err := g.Exponentiate(big.NewInt(exp))
		require.NoError(t, err)
		require.True(t, got.Equal(want), "exponent %d", exp)
	}
}

func TestInvertIsMultiplicativeInverse(t *testing.T) {
	G := testGroup(t)
	for v := int64(1); v < 23; v++ {
		e, err := G.NewElement(big.NewInt(v))
		if err != nil {
			continue
		}
		inv := e.Invert()
		prod, err := e.Multiply(inv)
		require.NoError(t, err)
		require.True(t, prod.IsIdentity())
	}
}

func TestZqArithmetic(t *testing.T) {
	Z, err := NewZqGroup(big.NewInt(11))
	require.NoError(t, err)

	a := Z.NewElementFromInt64(7)
	b := Z.NewElementFromInt64(9)

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(5), sum.Value()) // 16 mod 11

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(9), diff.Value()) // -2 mod 11

	neg := a.Negate()
	require.Equal(t, big.NewInt(4), neg.Value())

	prod, err := a.Multiply(b)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(8), prod.Value()) // 63 mod 11

	invExp, err := a.Exponentiate(big.NewInt(-1))
	require.NoError(t, err)
	one, err := a.Multiply(invExp)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), one.Value())
}

func TestSameOrderAs(t *testing.T) {
	G := testGroup(t)
	Z := SameOrderAs(G)
	require.Equal(t, G.Q(), Z.Q())
}

func TestJSONRoundTrip(t *testing.T) {
	G := testGroup(t)
	e := G.Generator()
	b, err := e.MarshalJSON()
	require.NoError(t, err)

	dest := G.Element()
	require.NoError(t, dest.UnmarshalJSON(b))
	require.True(t, e.Equal(dest))
}
