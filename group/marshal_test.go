package group

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGqVectorJSONRoundTrip(t *testing.T) {
	G := testGroup(t)
	g := G.Generator()
	a, err := g.Exponentiate(big.NewInt(3))
	require.NoError(t, err)
	b, err := g.Exponentiate(big.NewInt(5))
	require.NoError(t, err)
	v, err := NewGqVector(a, b)
	require.NoError(t, err)

	encoded, err := v.MarshalJSON()
	require.NoError(t, err)

	decoded, err := GqVectorUnmarshalJSON(encoded, G)
	require.NoError(t, err)
	require.Equal(t, v.Len(), decoded.Len())
	for i := 0; i < v.Len(); i++ {
		require.True(t, v.Get(i).Equal(decoded.Get(i)))
	}
}

func TestZqMatrixJSONRoundTrip(t *testing.T) {
	G := testGroup(t)
	Z := SameOrderAs(G)
	col0, err := NewZqVector(Z.NewElementFromInt64(2), Z.NewElementFromInt64(3))
	require.NoError(t, err)
	col1, err := NewZqVector(Z.NewElementFromInt64(7), Z.NewElementFromInt64(11))
	require.NoError(t, err)
	m, err := NewZqMatrixFromColumns(col0, col1)
	require.NoError(t, err)

	encoded, err := m.MarshalJSON()
	require.NoError(t, err)

	decoded, err := ZqMatrixUnmarshalJSON(encoded, Z)
	require.NoError(t, err)
	require.Equal(t, m.Rows(), decoded.Rows())
	require.Equal(t, m.Columns(), decoded.Columns())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Columns(); j++ {
			require.True(t, m.Get(i, j).Equal(decoded.Get(i, j)))
		}
	}
}
