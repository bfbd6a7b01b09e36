// Package multiexp implements the multi-exponentiation argument of spec
// §4.10 (C10): it proves that a ciphertext C equals a re-randomized
// weighted product of the rows of a ciphertext matrix, where the weights
// are the columns of a committed exponent matrix A. It is the argument the
// shuffle argument (§4.11) reduces its re-encryption claim to, grounded on
// the same sigma-protocol shape as product and hadamard but operating on
// ciphertexts instead of bare Gq elements.
package multiexp

import (
	"github.com/bgshuffle/core/commitment"
	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/hashing"
	"github.com/bgshuffle/core/internal/mixerr"
	"github.com/bgshuffle/core/internal/transcript"
	"github.com/bgshuffle/core/random"
)

// Statement is (C_matrix, C, c_A) of spec §4.10.
type Statement struct {
	CMatrix elgamal.CiphertextMatrix
	C       elgamal.Ciphertext
	CA      group.GqVector
}

// Witness is (A, r, rho) of spec §4.10.
type Witness struct {
	A   group.ZqMatrix
	R   group.ZqVector
	Rho *group.ZqElement
}

// Argument is the prover's output.
type Argument struct {
	CA0 *group.GqElement
	CB  group.GqVector
	E   elgamal.CiphertextVector
	A   group.ZqVector
	R   *group.ZqElement
	B   *group.ZqElement
	S   *group.ZqElement
	Tau *group.ZqElement
}

// diagonalCiphertext computes D_k for the given k, per spec §4.10 step 4:
// the product of Enc-exponentiate(row_i(C_matrix), col_j(Abar)) over every
// (i, j) with 0 <= i <= m-1, 0 <= j <= m, j = k - m + i + 1. Column 0 of
// Abar is the random a0, which the verifier's folded a also includes.
func diagonalCiphertext(cm elgamal.CiphertextMatrix, abar group.ZqMatrix, k, m, l int) (elgamal.Ciphertext, error) {
	acc, err := elgamal.NeutralElement(cm.Group(), l)
	if err != nil {
		return elgamal.Ciphertext{}, err
	}
	for i := 0; i < m; i++ {
		j := k - m + i + 1
		if j < 0 || j > m {
			continue
		}
		row := cm.Row(i).Slice()
		col := abar.Column(j)
		term, err := elgamal.VectorExponentiation(row, col.Slice())
		if err != nil {
			return elgamal.Ciphertext{}, err
		}
		acc, err = acc.Multiply(term)
		if err != nil {
			return elgamal.Ciphertext{}, err
		}
	}
	return acc, nil
}

// Prove implements spec §4.10's prover.
func Prove(ck commitment.Key, pk elgamal.PublicKey, ch *hashing.Challenger, rnd random.Service, stmt Statement, wit Witness) (Argument, error) {
	n := wit.A.Rows()
	m := wit.A.Columns()
	l := stmt.CMatrix.ElementSize()
	if stmt.CMatrix.Rows() != m {
		return Argument{}, mixerr.InvalidInput("C_matrix has %d rows, expected m=%d", stmt.CMatrix.Rows(), m)
	}
	if stmt.CMatrix.Columns() != n {
		return Argument{}, mixerr.InvalidInput("C_matrix has %d columns, expected n=%d", stmt.CMatrix.Columns(), n)
	}
	if n > pk.Size() || l > pk.Size() {
		return Argument{}, mixerr.InvalidInput("n=%d and l=%d must not exceed public key size %d", n, l, pk.Size())
	}
	if stmt.CA.Len() != m || wit.R.Len() != m {
		return Argument{}, mixerr.InvalidInput("c_A/r length must match m=%d", m)
	}
	Z := group.SameOrderAs(ck.Group())
	G := ck.Group()

	a0, err := rnd.GenRandomVector(Z, n)
	if err != nil {
		return Argument{}, err
	}
	r0, err := rnd.GenRandomZq(Z)
	if err != nil {
		return Argument{}, err
	}
	cA0, err := commitment.Commit(a0, r0, ck)
	if err != nil {
		return Argument{}, err
	}

	twoM := 2 * m
	b := make([]*group.ZqElement, twoM)
	s := make([]*group.ZqElement, twoM)
	tau := make([]*group.ZqElement, twoM)
	for k := 0; k < twoM; k++ {
		if k == m {
			b[k] = Z.Identity()
			s[k] = Z.Identity()
			tau[k] = wit.Rho
			continue
		}
		b[k], err = rnd.GenRandomZq(Z)
		if err != nil {
			return Argument{}, err
		}
		s[k], err = rnd.GenRandomZq(Z)
		if err != nil {
			return Argument{}, err
		}
		tau[k], err = rnd.GenRandomZq(Z)
		if err != nil {
			return Argument{}, err
		}
	}

	cB := make([]*group.GqElement, twoM)
	for k := 0; k < twoM; k++ {
		bk, err := group.NewZqVector(b[k])
		if err != nil {
			return Argument{}, err
		}
		cB[k], err = commitment.Commit(bk, s[k], ck)
		if err != nil {
			return Argument{}, err
		}
	}
	cBVec, err := group.NewGqVector(cB...)
	if err != nil {
		return Argument{}, err
	}

	abarCols := make([]group.ZqVector, m+1)
	abarCols[0] = a0
	for j := 1; j <= m; j++ {
		abarCols[j] = wit.A.Column(j - 1)
	}
	abar, err := group.NewZqMatrixFromColumns(abarCols...)
	if err != nil {
		return Argument{}, err
	}

	E := make([]elgamal.Ciphertext, twoM)
	for k := 0; k < twoM; k++ {
		d, err := diagonalCiphertext(stmt.CMatrix, abar, k, m, l)
		if err != nil {
			return Argument{}, err
		}
		gBk, err := G.Generator().ExponentiateElement(b[k])
		if err != nil {
			return Argument{}, err
		}
		msg, err := elgamal.ConstantMessage(gBk, l)
		if err != nil {
			return Argument{}, err
		}
		enc, err := elgamal.GetCiphertext(msg, tau[k], pk)
		if err != nil {
			return Argument{}, err
		}
		E[k], err = enc.Multiply(d)
		if err != nil {
			return Argument{}, err
		}
	}
	EVec, err := elgamal.NewCiphertextVector(E...)
	if err != nil {
		return Argument{}, err
	}

	x, err := ch.HashToZq(
		transcript.P(G), transcript.Q(G), transcript.PK(pk), transcript.CK(ck),
		transcript.CiphertextMatrixT(stmt.CMatrix), transcript.Ciphertext(stmt.C),
		transcript.GqVec(stmt.CA), transcript.One(cA0), transcript.GqVec(cBVec), transcript.CiphertextVec(EVec),
	)
	if err != nil {
		return Argument{}, err
	}
	xPowersM, err := group.PowersOf(x, m+1)
	if err != nil {
		return Argument{}, err
	}
	xPowers2M, err := group.PowersOf(x, twoM)
	if err != nil {
		return Argument{}, err
	}

	aFold := make([]*group.ZqElement, n)
	for row := 0; row < n; row++ {
		aFold[row] = Z.Identity()
	}
	for i := 0; i <= m; i++ {
		col := abar.Column(i)
		for row := 0; row < n; row++ {
			term, err := xPowersM[i].Multiply(col.Get(row))
			if err != nil {
				return Argument{}, err
			}
			aFold[row], err = aFold[row].Add(term)
			if err != nil {
				return Argument{}, err
			}
		}
	}
	aFoldVec, err := group.NewZqVector(aFold...)
	if err != nil {
		return Argument{}, err
	}

	rBar := make([]*group.ZqElement, m+1)
	rBar[0] = r0
	copy(rBar[1:], wit.R.Slice())
	rFold := Z.Identity()
	for i := 0; i <= m; i++ {
		term, err := xPowersM[i].Multiply(rBar[i])
		if err != nil {
			return Argument{}, err
		}
		rFold, err = rFold.Add(term)
		if err != nil {
			return Argument{}, err
		}
	}

	bFold := Z.Identity()
	sFold := Z.Identity()
	tauFold := Z.Identity()
	for k := 0; k < twoM; k++ {
		tb, err := xPowers2M[k].Multiply(b[k])
		if err != nil {
			return Argument{}, err
		}
		bFold, err = bFold.Add(tb)
		if err != nil {
			return Argument{}, err
		}
		ts, err := xPowers2M[k].Multiply(s[k])
		if err != nil {
			return Argument{}, err
		}
		sFold, err = sFold.Add(ts)
		if err != nil {
			return Argument{}, err
		}
		tt, err := xPowers2M[k].Multiply(tau[k])
		if err != nil {
			return Argument{}, err
		}
		tauFold, err = tauFold.Add(tt)
		if err != nil {
			return Argument{}, err
		}
	}

	return Argument{
		CA0: cA0, CB: cBVec, E: EVec,
		A: aFoldVec, R: rFold, B: bFold, S: sFold, Tau: tauFold,
	}, nil
}

// Verify implements spec §4.10's verifier.
func Verify(ck commitment.Key, pk elgamal.PublicKey, ch *hashing.Challenger, stmt Statement, arg Argument) (mixerr.VerificationResult, error) {
	twoM := arg.CB.Len()
	if twoM%2 != 0 || twoM == 0 {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("c_B must have even positive length, got %d", twoM)
	}
	m := twoM / 2
	n := arg.A.Len()
	l := stmt.CMatrix.ElementSize()
	if stmt.CMatrix.Rows() != m || stmt.CMatrix.Columns() != n {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("C_matrix shape %dx%d does not match m=%d,n=%d", stmt.CMatrix.Rows(), stmt.CMatrix.Columns(), m, n)
	}
	if stmt.CA.Len() != m {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("c_A length %d does not match m=%d", stmt.CA.Len(), m)
	}
	if arg.E.Len() != twoM {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("E length %d does not match 2m=%d", arg.E.Len(), twoM)
	}
	G := ck.Group()

	x, err := ch.HashToZq(
		transcript.P(G), transcript.Q(G), transcript.PK(pk), transcript.CK(ck),
		transcript.CiphertextMatrixT(stmt.CMatrix), transcript.Ciphertext(stmt.C),
		transcript.GqVec(stmt.CA), transcript.One(arg.CA0), transcript.GqVec(arg.CB), transcript.CiphertextVec(arg.E),
	)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	xPowersM, err := group.PowersOf(x, m+1)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	xPowers2M, err := group.PowersOf(x, twoM)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	results := make([]mixerr.VerificationResult, 0, 4)

	results = append(results, mixerr.Check(arg.CB.Get(m).IsIdentity(), "c_B[m] must equal the Gq identity"))

	cEq := arg.E.ElementSize() == stmt.C.Size() && arg.E.Get(m).Gamma().Equal(stmt.C.Gamma())
	for i := 0; cEq && i < stmt.C.Size(); i++ {
		if !arg.E.Get(m).Phi(i).Equal(stmt.C.Phi(i)) {
			cEq = false
		}
	}
	results = append(results, mixerr.Check(cEq, "E[m] must equal C"))

	cABar := make([]*group.GqElement, m+1)
	cABar[0] = arg.CA0
	copy(cABar[1:], stmt.CA.Slice())
	lhs1 := G.Identity()
	for i := 0; i <= m; i++ {
		term, err := cABar[i].Exponentiate(xPowersM[i].Value())
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		lhs1, err = lhs1.Multiply(term)
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
	}
	rhs1, err := commitment.Commit(arg.A, arg.R, ck)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	results = append(results, mixerr.Check(lhs1.Equal(rhs1), "multi-exponentiation: a-commitment equation failed"))

	lhs2 := G.Identity()
	cB := arg.CB.Slice()
	for k := 0; k < twoM; k++ {
		term, err := cB[k].Exponentiate(xPowers2M[k].Value())
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		lhs2, err = lhs2.Multiply(term)
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
	}
	bVec, err := group.NewZqVector(arg.B)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	rhs2, err := commitment.Commit(bVec, arg.S, ck)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	results = append(results, mixerr.Check(lhs2.Equal(rhs2), "multi-exponentiation: b-commitment equation failed"))

	lhs3 := elgamal.Ciphertext{}
	lhs3Set := false
	E := arg.E.Slice()
	for k := 0; k < twoM; k++ {
		term, err := E[k].Exponentiate(xPowers2M[k])
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		if !lhs3Set {
			lhs3 = term
			lhs3Set = true
			continue
		}
		lhs3, err = lhs3.Multiply(term)
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
	}

	gB, err := G.Generator().ExponentiateElement(arg.B)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	msg, err := elgamal.ConstantMessage(gB, l)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	rhs3, err := elgamal.GetCiphertext(msg, arg.Tau, pk)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	for i := 0; i < m; i++ {
		row := stmt.CMatrix.Row(i).Slice()
		scaled, err := arg.A.ScalarMultiply(xPowersM[m-i-1])
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		term, err := elgamal.VectorExponentiation(row, scaled.Slice())
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		rhs3, err = rhs3.Multiply(term)
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
	}

	eq4 := lhs3Set && lhs3.Gamma().Equal(rhs3.Gamma())
	for i := 0; eq4 && i < lhs3.Size(); i++ {
		if !lhs3.Phi(i).Equal(rhs3.Phi(i)) {
			eq4 = false
		}
	}
	results = append(results, mixerr.Check(eq4, "multi-exponentiation: E-product equation failed"))

	return mixerr.And(results...), nil
}
