// Package hadamard implements the Hadamard argument of spec §4.7 (C7): it
// proves that a committed vector b is the entry-wise (Hadamard) product of
// every column of a committed matrix A, by reducing the claim to a single
// zeroarg.Argument. Grounded on the same sigma-protocol shape as zeroarg,
// generalized one level further per the Bayer-Groth composition the spec
// describes.
package hadamard

import (
	"github.com/bgshuffle/core/commitment"
	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/hashing"
	"github.com/bgshuffle/core/internal/mixerr"
	"github.com/bgshuffle/core/internal/transcript"
	"github.com/bgshuffle/core/random"
	"github.com/bgshuffle/core/zeroarg"
)

// Statement is (c_A, c_b) of spec §4.7, plus the public row-count N: A has
// shape N x m and N is known to both prover and verifier from the calling
// context (the shuffle argument's own dimension decomposition), the same
// way the Bayer-Groth paper treats it as a protocol parameter rather than
// witness-only data.
type Statement struct {
	CA group.GqVector
	Cb *group.GqElement
	N  int
}

// Witness is (A, b, r, s) of spec §4.7.
type Witness struct {
	A group.ZqMatrix
	B group.ZqVector
	R group.ZqVector
	S *group.ZqElement
}

// Argument is the prover's output: the collected intermediate commitments
// c_B plus the zero argument proving their consistency.
type Argument struct {
	CB   group.GqVector
	Zero zeroarg.Argument
}

func partialProducts(A group.ZqMatrix) ([]group.ZqVector, error) {
	m := A.Columns()
	out := make([]group.ZqVector, m)
	out[0] = A.Column(0)
	for j := 1; j < m; j++ {
		var err error
		out[j], err = out[j-1].HadamardProduct(A.Column(j))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func minusOnesVector(Z *group.ZqGroup, n int) (group.ZqVector, error) {
	vals := make([]*group.ZqElement, n)
	for i := range vals {
		vals[i] = Z.NewElementFromInt64(-1)
	}
	return group.NewZqVector(vals...)
}

// Prove implements spec §4.7's prover.
func Prove(ck commitment.Key, pk elgamal.PublicKey, ch *hashing.Challenger, rnd random.Service, stmt Statement, wit Witness) (Argument, error) {
	m := wit.A.Columns()
	n := wit.A.Rows()
	if m < 2 {
		return Argument{}, mixerr.InvalidInput("hadamard argument requires m >= 2, got %d", m)
	}
	if n != stmt.N {
		return Argument{}, mixerr.InvalidInput("witness row count %d does not match statement N=%d", n, stmt.N)
	}
	if stmt.CA.Len() != m {
		return Argument{}, mixerr.InvalidInput("c_A length %d does not match m=%d", stmt.CA.Len(), m)
	}
	Z := group.SameOrderAs(ck.Group())

	b, err := partialProducts(wit.A)
	if err != nil {
		return Argument{}, err
	}

	s := make([]*group.ZqElement, m)
	s[0] = wit.R.Get(0)
	s[m-1] = wit.S
	for j := 1; j <= m-2; j++ {
		s[j], err = rnd.GenRandomZq(Z)
		if err != nil {
			return Argument{}, err
		}
	}

	cB := make([]*group.GqElement, m)
	cB[0] = stmt.CA.Get(0)
	cB[m-1] = stmt.Cb
	for j := 1; j <= m-2; j++ {
		cB[j], err = commitment.Commit(b[j], s[j], ck)
		if err != nil {
			return Argument{}, err
		}
	}
	cBVec, err := group.NewGqVector(cB...)
	if err != nil {
		return Argument{}, err
	}

	x, err := ch.HashToZq(
		transcript.P(ck.Group()), transcript.Q(ck.Group()), transcript.PK(pk), transcript.CK(ck),
		transcript.GqVec(stmt.CA), transcript.One(stmt.Cb), transcript.GqVec(cBVec),
	)
	if err != nil {
		return Argument{}, err
	}
	y, err := ch.HashToZq(
		hashing.Str("1"),
		transcript.P(ck.Group()), transcript.Q(ck.Group()), transcript.PK(pk), transcript.CK(ck),
		transcript.GqVec(stmt.CA), transcript.One(stmt.Cb), transcript.GqVec(cBVec),
	)
	if err != nil {
		return Argument{}, err
	}
	xPowers, err := group.PowersOf(x, m+1)
	if err != nil {
		return Argument{}, err
	}

	mu, err := minusOnesVector(Z, n)
	if err != nil {
		return Argument{}, err
	}
	cMinusOne, err := commitment.Commit(mu, Z.Identity(), ck)
	if err != nil {
		return Argument{}, err
	}

	zACols := make([]group.ZqVector, m)
	for i := 1; i < m; i++ {
		zACols[i-1] = wit.A.Column(i)
	}
	zACols[m-1] = mu
	zA, err := group.NewZqMatrixFromColumns(zACols...)
	if err != nil {
		return Argument{}, err
	}

	zACommitments := make([]*group.GqElement, m)
	copy(zACommitments, stmt.CA.Slice()[1:])
	zACommitments[m-1] = cMinusOne
	zACommitVec, err := group.NewGqVector(zACommitments...)
	if err != nil {
		return Argument{}, err
	}

	zBCols := make([]group.ZqVector, m)
	dVals := make([]*group.ZqElement, n)
	for j := 0; j < n; j++ {
		dVals[j] = Z.Identity()
	}
	for i := 0; i <= m-2; i++ {
		scaled, err := b[i].ScalarMultiply(xPowers[i+1])
		if err != nil {
			return Argument{}, err
		}
		zBCols[i] = scaled
	}
	for i := 1; i <= m-1; i++ {
		scaled, err := b[i].ScalarMultiply(xPowers[i])
		if err != nil {
			return Argument{}, err
		}
		for j := 0; j < n; j++ {
			dVals[j], err = dVals[j].Add(scaled.Get(j))
			if err != nil {
				return Argument{}, err
			}
		}
	}
	dVec, err := group.NewZqVector(dVals...)
	if err != nil {
		return Argument{}, err
	}
	zBCols[m-1] = dVec
	zB, err := group.NewZqMatrixFromColumns(zBCols...)
	if err != nil {
		return Argument{}, err
	}

	zBCommitments := make([]*group.GqElement, m)
	for i := 0; i <= m-2; i++ {
		zBCommitments[i], err = cB[i].Exponentiate(xPowers[i+1].Value())
		if err != nil {
			return Argument{}, err
		}
	}
	prodLast := ck.Group().Identity()
	for i := 1; i <= m-1; i++ {
		term, err := cB[i].Exponentiate(xPowers[i].Value())
		if err != nil {
			return Argument{}, err
		}
		prodLast, err = prodLast.Multiply(term)
		if err != nil {
			return Argument{}, err
		}
	}
	zBCommitments[m-1] = prodLast
	zBCommitVec, err := group.NewGqVector(zBCommitments...)
	if err != nil {
		return Argument{}, err
	}

	zR := make([]*group.ZqElement, m)
	copy(zR, wit.R.Slice()[1:])
	zR[m-1] = Z.Identity()
	zRVec, err := group.NewZqVector(zR...)
	if err != nil {
		return Argument{}, err
	}

	zS := make([]*group.ZqElement, m)
	sLast := Z.Identity()
	for i := 0; i <= m-2; i++ {
		zS[i], err = s[i].Multiply(xPowers[i+1])
		if err != nil {
			return Argument{}, err
		}
	}
	for i := 1; i <= m-1; i++ {
		term, err := s[i].Multiply(xPowers[i])
		if err != nil {
			return Argument{}, err
		}
		sLast, err = sLast.Add(term)
		if err != nil {
			return Argument{}, err
		}
	}
	zS[m-1] = sLast
	zSVec, err := group.NewZqVector(zS...)
	if err != nil {
		return Argument{}, err
	}

	zeroStmt := zeroarg.Statement{CA: zACommitVec, CB: zBCommitVec, Y: y}
	zeroWit := zeroarg.Witness{A: zA, B: zB, R: zRVec, S: zSVec}

	zeroArgument, err := zeroarg.Prove(ck, pk, ch, rnd, zeroStmt, zeroWit)
	if err != nil {
		return Argument{}, err
	}

	return Argument{CB: cBVec, Zero: zeroArgument}, nil
}

// Verify implements spec §4.7's verifier.
func Verify(ck commitment.Key, pk elgamal.PublicKey, ch *hashing.Challenger, stmt Statement, arg Argument) (mixerr.VerificationResult, error) {
	m := arg.CB.Len()
	if stmt.CA.Len() != m {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("c_A length %d does not match c_B length %d", stmt.CA.Len(), m)
	}
	if m < 2 {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("hadamard argument requires m >= 2, got %d", m)
	}
	Z := group.SameOrderAs(ck.Group())

	x, err := ch.HashToZq(
		transcript.P(ck.Group()), transcript.Q(ck.Group()), transcript.PK(pk), transcript.CK(ck),
		transcript.GqVec(stmt.CA), transcript.One(stmt.Cb), transcript.GqVec(arg.CB),
	)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	y, err := ch.HashToZq(
		hashing.Str("1"),
		transcript.P(ck.Group()), transcript.Q(ck.Group()), transcript.PK(pk), transcript.CK(ck),
		transcript.GqVec(stmt.CA), transcript.One(stmt.Cb), transcript.GqVec(arg.CB),
	)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	xPowers, err := group.PowersOf(x, m+1)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	results := make([]mixerr.VerificationResult, 0, 3)
	results = append(results, mixerr.Check(arg.CB.Get(0).Equal(stmt.CA.Get(0)), "c_B_0 must equal c_A_0"))
	results = append(results, mixerr.Check(arg.CB.Get(m-1).Equal(stmt.Cb), "c_B_(m-1) must equal c_b"))

	mu, err := minusOnesVector(Z, stmt.N)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	cMinusOne, err := commitment.Commit(mu, Z.Identity(), ck)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	zACommitments := make([]*group.GqElement, m)
	copy(zACommitments, stmt.CA.Slice()[1:])
	zACommitments[m-1] = cMinusOne
	zACommitVec, err := group.NewGqVector(zACommitments...)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	cB := arg.CB.Slice()
	zBCommitments := make([]*group.GqElement, m)
	for i := 0; i <= m-2; i++ {
		zBCommitments[i], err = cB[i].Exponentiate(xPowers[i+1].Value())
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
	}
	prodLast := ck.Group().Identity()
	for i := 1; i <= m-1; i++ {
		term, err := cB[i].Exponentiate(xPowers[i].Value())
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		prodLast, err = prodLast.Multiply(term)
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
	}
	zBCommitments[m-1] = prodLast
	zBCommitVec, err := group.NewGqVector(zBCommitments...)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	zeroStmt := zeroarg.Statement{CA: zACommitVec, CB: zBCommitVec, Y: y}
	zeroResult, err := zeroarg.Verify(ck, pk, ch, zeroStmt, arg.Zero)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	results = append(results, zeroResult)

	return mixerr.And(results...), nil
}
