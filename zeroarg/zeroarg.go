// Package zeroarg implements the zero argument of spec §4.6 (C6): it
// proves that two committed matrices A, B satisfy
// Σ_i col_i(A) ⋆_y col_i(B) = 0 under the bilinear map ⋆_y, without
// revealing A or B. It is the innermost sub-argument the Hadamard (§4.7)
// and shuffle (§4.11) arguments reduce to, grounded on the teacher's
// sigma-protocol shape in voteproof.go (commit, challenge, respond,
// verify) generalized from a scalar witness to a matrix one.
package zeroarg

import (
	"github.com/bgshuffle/core/commitment"
	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/hashing"
	"github.com/bgshuffle/core/internal/mixerr"
	"github.com/bgshuffle/core/internal/transcript"
	"github.com/bgshuffle/core/random"
)

// Statement is (c_A, c_B, y) of spec §4.6.
type Statement struct {
	CA group.GqVector
	CB group.GqVector
	Y  *group.ZqElement
}

// Witness is (A, B, r, s) of spec §4.6.
type Witness struct {
	A group.ZqMatrix
	B group.ZqMatrix
	R group.ZqVector
	S group.ZqVector
}

// Argument is the prover's output (spec §4.6 step 7).
type Argument struct {
	CA0    *group.GqElement
	CBm    *group.GqElement
	CD     group.GqVector
	ATilde group.ZqVector
	BTilde group.ZqVector
	RTilde *group.ZqElement
	STilde *group.ZqElement
	TTilde *group.ZqElement
}

// StarMap computes u ⋆_y v = Σ_j u_j * v_j * y^{j+1} (spec §4.6).
func StarMap(u, v group.ZqVector, y *group.ZqElement) (*group.ZqElement, error) {
	if u.Len() != v.Len() {
		return nil, mixerr.InvalidInput("star map requires equal-length vectors, got %d and %d", u.Len(), v.Len())
	}
	Z := y.Group()
	acc := Z.Identity()
	power := y
	for j := 0; j < u.Len(); j++ {
		term, err := u.Get(j).Multiply(v.Get(j))
		if err != nil {
			return nil, err
		}
		term, err = term.Multiply(power)
		if err != nil {
			return nil, err
		}
		acc, err = acc.Add(term)
		if err != nil {
			return nil, err
		}
		power, err = power.Multiply(y)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func starRow(Abar group.ZqMatrix, Bbar group.ZqMatrix, i, j int, y *group.ZqElement) (*group.ZqElement, error) {
	return StarMap(Abar.Column(i), Bbar.Column(j), y)
}

// Prove implements spec §4.6's prover.
func Prove(ck commitment.Key, pk elgamal.PublicKey, ch *hashing.Challenger, rnd random.Service, stmt Statement, wit Witness) (Argument, error) {
	m := wit.A.Columns()
	n := wit.A.Rows()
	if wit.B.Columns() != m || wit.B.Rows() != n {
		return Argument{}, mixerr.InvalidInput("witness matrices must have matching dimensions")
	}
	Z := stmt.Y.Group()

	a0, err := rnd.GenRandomVector(Z, n)
	if err != nil {
		return Argument{}, err
	}
	bm, err := rnd.GenRandomVector(Z, n)
	if err != nil {
		return Argument{}, err
	}
	r0, err := rnd.GenRandomZq(Z)
	if err != nil {
		return Argument{}, err
	}
	sm, err := rnd.GenRandomZq(Z)
	if err != nil {
		return Argument{}, err
	}
	cA0, err := commitment.Commit(a0, r0, ck)
	if err != nil {
		return Argument{}, err
	}
	cBm, err := commitment.Commit(bm, sm, ck)
	if err != nil {
		return Argument{}, err
	}

	Abar, err := wit.A.PrependColumn(a0)
	if err != nil {
		return Argument{}, err
	}
	Bbar, err := wit.B.AppendColumn(bm)
	if err != nil {
		return Argument{}, err
	}

	dValues := make([]*group.ZqElement, 2*m+1)
	for k := 0; k <= 2*m; k++ {
		acc := Z.Identity()
		for i := 0; i <= m; i++ {
			j := m - k + i
			if j < 0 || j > m {
				continue
			}
			term, err := starRow(Abar, Bbar, i, j, stmt.Y)
			if err != nil {
				return Argument{}, err
			}
			acc, err = acc.Add(term)
			if err != nil {
				return Argument{}, err
			}
		}
		dValues[k] = acc
	}
	d, err := group.NewZqVector(dValues...)
	if err != nil {
		return Argument{}, err
	}

	t, err := rnd.GenRandomVector(Z, 2*m+1)
	if err != nil {
		return Argument{}, err
	}
	tValues := t.Slice()
	tValues[m+1] = Z.Identity()
	t, err = group.NewZqVector(tValues...)
	if err != nil {
		return Argument{}, err
	}
	cd, err := commitment.CommitVector(d, t, ck)
	if err != nil {
		return Argument{}, err
	}

	x, err := ch.HashToZq(
		transcript.P(ck.Group()), transcript.Q(ck.Group()), transcript.PK(pk), transcript.CK(ck),
		transcript.One(cA0), transcript.One(cBm), transcript.GqVec(cd), transcript.GqVec(stmt.CB), transcript.GqVec(stmt.CA),
	)
	if err != nil {
		return Argument{}, err
	}

	xPowers, err := group.PowersOf(x, 2*m+1)
	if err != nil {
		return Argument{}, err
	}

	rBar := []*group.ZqElement{r0}
	rBar = append(rBar, wit.R.Slice()...)
	sBar := append(append([]*group.ZqElement{}, wit.S.Slice()...), sm)

	aPrimeVals := make([]*group.ZqElement, n)
	bPrimeVals := make([]*group.ZqElement, n)
	for row := 0; row < n; row++ {
		accA := Z.Identity()
		accB := Z.Identity()
		for i := 0; i <= m; i++ {
			termA, err := Abar.Get(row, i).Multiply(xPowers[i])
			if err != nil {
				return Argument{}, err
			}
			accA, err = accA.Add(termA)
			if err != nil {
				return Argument{}, err
			}
			termB, err := Bbar.Get(row, i).Multiply(xPowers[m-i])
			if err != nil {
				return Argument{}, err
			}
			accB, err = accB.Add(termB)
			if err != nil {
				return Argument{}, err
			}
		}
		aPrimeVals[row] = accA
		bPrimeVals[row] = accB
	}
	aPrime, err := group.NewZqVector(aPrimeVals...)
	if err != nil {
		return Argument{}, err
	}
	bPrime, err := group.NewZqVector(bPrimeVals...)
	if err != nil {
		return Argument{}, err
	}

	rPrime := Z.Identity()
	sPrime := Z.Identity()
	for i := 0; i <= m; i++ {
		termR, err := rBar[i].Multiply(xPowers[i])
		if err != nil {
			return Argument{}, err
		}
		rPrime, err = rPrime.Add(termR)
		if err != nil {
			return Argument{}, err
		}
		termS, err := sBar[i].Multiply(xPowers[m-i])
		if err != nil {
			return Argument{}, err
		}
		sPrime, err = sPrime.Add(termS)
		if err != nil {
			return Argument{}, err
		}
	}

	tPrime := Z.Identity()
	for i := 0; i <= 2*m; i++ {
		term, err := t.Get(i).Multiply(xPowers[i])
		if err != nil {
			return Argument{}, err
		}
		tPrime, err = tPrime.Add(term)
		if err != nil {
			return Argument{}, err
		}
	}

	return Argument{
		CA0: cA0, CBm: cBm, CD: cd,
		ATilde: aPrime, BTilde: bPrime,
		RTilde: rPrime, STilde: sPrime, TTilde: tPrime,
	}, nil
}

// Verify implements spec §4.6's verifier.
func Verify(ck commitment.Key, pk elgamal.PublicKey, ch *hashing.Challenger, stmt Statement, arg Argument) (mixerr.VerificationResult, error) {
	m := stmt.CA.Len()
	if stmt.CB.Len() != m {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("c_A and c_B length mismatch: %d vs %d", m, stmt.CB.Len())
	}
	if arg.CD.Len() != 2*m+1 {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("c_d must have length 2m+1, got %d", arg.CD.Len())
	}

	x, err := ch.HashToZq(
		transcript.P(ck.Group()), transcript.Q(ck.Group()), transcript.PK(pk), transcript.CK(ck),
		transcript.One(arg.CA0), transcript.One(arg.CBm), transcript.GqVec(arg.CD), transcript.GqVec(stmt.CB), transcript.GqVec(stmt.CA),
	)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	xPowers, err := group.PowersOf(x, 2*m+1)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	results := make([]mixerr.VerificationResult, 0, 4)
	results = append(results, mixerr.Check(arg.CD.Get(m+1).IsIdentity(), "c_d[m+1] must equal the Gq identity"))

	cABar := append([]*group.GqElement{arg.CA0}, stmt.CA.Slice()...)
	lhsA := ck.Group().Identity()
	for i := 0; i <= m; i++ {
		term, err := cABar[i].Exponentiate(xPowers[i].Value())
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		lhsA, err = lhsA.Multiply(term)
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
	}
	rhsA, err := commitment.Commit(arg.ATilde, arg.RTilde, ck)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	results = append(results, mixerr.Check(lhsA.Equal(rhsA), "zero argument: A-side commitment equation failed"))

	cBBar := append(stmt.CB.Slice(), arg.CBm)
	lhsB := ck.Group().Identity()
	for i := 0; i <= m; i++ {
		term, err := cBBar[m-i].Exponentiate(xPowers[i].Value())
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		lhsB, err = lhsB.Multiply(term)
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
	}
	rhsB, err := commitment.Commit(arg.BTilde, arg.STilde, ck)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	results = append(results, mixerr.Check(lhsB.Equal(rhsB), "zero argument: B-side commitment equation failed"))

	lhsD := ck.Group().Identity()
	for i := 0; i <= 2*m; i++ {
		term, err := arg.CD.Get(i).Exponentiate(xPowers[i].Value())
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		lhsD, err = lhsD.Multiply(term)
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
	}
	starVal, err := StarMap(arg.ATilde, arg.BTilde, stmt.Y)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	starVec, err := group.NewZqVector(starVal)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	rhsD, err := commitment.Commit(starVec, arg.TTilde, ck)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	results = append(results, mixerr.Check(lhsD.Equal(rhsD), "zero argument: diagonal commitment equation failed"))

	return mixerr.And(results...), nil
}
