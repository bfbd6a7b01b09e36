// Package svp implements the single-value product argument of spec §4.8
// (C8): it proves that a committed vector a has product b, without
// revealing a. It is the base case the product argument (§4.9) always
// bottoms out in, grounded on the same sigma-protocol shape as zeroarg and
// hadamard.
package svp

import (
	"github.com/bgshuffle/core/commitment"
	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/hashing"
	"github.com/bgshuffle/core/internal/mixerr"
	"github.com/bgshuffle/core/internal/transcript"
	"github.com/bgshuffle/core/random"
)

// Statement is (c_a, b) of spec §4.8.
type Statement struct {
	Ca *group.GqElement
	B  *group.ZqElement
}

// Witness is (a, r) of spec §4.8.
type Witness struct {
	A group.ZqVector
	R *group.ZqElement
}

// Argument is the prover's output.
type Argument struct {
	Cd      *group.GqElement
	Cdelta  *group.GqElement
	Cbig    *group.GqElement
	ATilde  group.ZqVector
	BTilde  group.ZqVector
	RTilde  *group.ZqElement
	STilde  *group.ZqElement
}

// Prove implements spec §4.8's prover. Per the module's resolution of the
// spec's open question on boundary indexing, delta_{n-1} is fixed to 0
// (the Bayer-Groth paper's original convention) rather than sampled.
func Prove(ck commitment.Key, pk elgamal.PublicKey, ch *hashing.Challenger, rnd random.Service, stmt Statement, wit Witness) (Argument, error) {
	n := wit.A.Len()
	if n < 2 {
		return Argument{}, mixerr.InvalidInput("single-value product argument requires n >= 2, got %d", n)
	}
	Z := wit.A.Group()

	bVals := make([]*group.ZqElement, n)
	bVals[0] = wit.A.Get(0)
	for k := 1; k < n; k++ {
		var err error
		bVals[k], err = bVals[k-1].Multiply(wit.A.Get(k))
		if err != nil {
			return Argument{}, err
		}
	}

	d, err := rnd.GenRandomVector(Z, n)
	if err != nil {
		return Argument{}, err
	}
	rd, err := rnd.GenRandomZq(Z)
	if err != nil {
		return Argument{}, err
	}

	delta := make([]*group.ZqElement, n)
	delta[0] = d.Get(0)
	delta[n-1] = Z.Identity()
	for k := 1; k <= n-2; k++ {
		delta[k], err = rnd.GenRandomZq(Z)
		if err != nil {
			return Argument{}, err
		}
	}

	s0, err := rnd.GenRandomZq(Z)
	if err != nil {
		return Argument{}, err
	}
	sx, err := rnd.GenRandomZq(Z)
	if err != nil {
		return Argument{}, err
	}

	deltaPrime := make([]*group.ZqElement, n-1)
	bigDelta := make([]*group.ZqElement, n-1)
	for k := 0; k <= n-2; k++ {
		term, err := delta[k].Multiply(d.Get(k + 1))
		if err != nil {
			return Argument{}, err
		}
		deltaPrime[k] = term.Negate()

		t1 := delta[k+1]
		t2, err := wit.A.Get(k + 1).Multiply(delta[k])
		if err != nil {
			return Argument{}, err
		}
		t3, err := bVals[k].Multiply(d.Get(k + 1))
		if err != nil {
			return Argument{}, err
		}
		v, err := t1.Subtract(t2)
		if err != nil {
			return Argument{}, err
		}
		v, err = v.Subtract(t3)
		if err != nil {
			return Argument{}, err
		}
		bigDelta[k] = v
	}

	dVec, err := group.NewZqVector(d.Slice()...)
	if err != nil {
		return Argument{}, err
	}
	cd, err := commitment.Commit(dVec, rd, ck)
	if err != nil {
		return Argument{}, err
	}
	deltaPrimeVec, err := group.NewZqVector(deltaPrime...)
	if err != nil {
		return Argument{}, err
	}
	cdelta, err := commitment.Commit(deltaPrimeVec, s0, ck)
	if err != nil {
		return Argument{}, err
	}
	bigDeltaVec, err := group.NewZqVector(bigDelta...)
	if err != nil {
		return Argument{}, err
	}
	cbig, err := commitment.Commit(bigDeltaVec, sx, ck)
	if err != nil {
		return Argument{}, err
	}

	x, err := ch.HashToZq(
		transcript.PK(pk), transcript.CK(ck),
		transcript.One(cbig), transcript.One(cdelta), transcript.One(cd),
		hashing.Valued(stmt.B), transcript.One(stmt.Ca),
	)
	if err != nil {
		return Argument{}, err
	}

	aTilde := make([]*group.ZqElement, n)
	bTilde := make([]*group.ZqElement, n)
	for k := 0; k < n; k++ {
		t, err := x.Multiply(wit.A.Get(k))
		if err != nil {
			return Argument{}, err
		}
		aTilde[k], err = t.Add(d.Get(k))
		if err != nil {
			return Argument{}, err
		}
		t2, err := x.Multiply(bVals[k])
		if err != nil {
			return Argument{}, err
		}
		bTilde[k], err = t2.Add(delta[k])
		if err != nil {
			return Argument{}, err
		}
	}
	aTildeVec, err := group.NewZqVector(aTilde...)
	if err != nil {
		return Argument{}, err
	}
	bTildeVec, err := group.NewZqVector(bTilde...)
	if err != nil {
		return Argument{}, err
	}

	rTilde, err := x.Multiply(wit.R)
	if err != nil {
		return Argument{}, err
	}
	rTilde, err = rTilde.Add(rd)
	if err != nil {
		return Argument{}, err
	}
	sTilde, err := x.Multiply(sx)
	if err != nil {
		return Argument{}, err
	}
	sTilde, err = sTilde.Add(s0)
	if err != nil {
		return Argument{}, err
	}

	return Argument{
		Cd: cd, Cdelta: cdelta, Cbig: cbig,
		ATilde: aTildeVec, BTilde: bTildeVec,
		RTilde: rTilde, STilde: sTilde,
	}, nil
}

// Verify implements spec §4.8's verifier.
func Verify(ck commitment.Key, pk elgamal.PublicKey, ch *hashing.Challenger, stmt Statement, arg Argument) (mixerr.VerificationResult, error) {
	n := arg.ATilde.Len()
	if arg.BTilde.Len() != n {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("a-tilde/b-tilde length mismatch: %d vs %d", n, arg.BTilde.Len())
	}
	if n < 2 {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("single-value product argument requires n >= 2, got %d", n)
	}

	x, err := ch.HashToZq(
		transcript.PK(pk), transcript.CK(ck),
		transcript.One(arg.Cbig), transcript.One(arg.Cdelta), transcript.One(arg.Cd),
		hashing.Valued(stmt.B), transcript.One(stmt.Ca),
	)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	results := make([]mixerr.VerificationResult, 0, 4)

	lhs1, err := stmt.Ca.Exponentiate(x.Value())
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	lhs1, err = lhs1.Multiply(arg.Cd)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	rhs1, err := commitment.Commit(arg.ATilde, arg.RTilde, ck)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	results = append(results, mixerr.Check(lhs1.Equal(rhs1), "single-value product: a-commitment equation failed"))

	e := make([]*group.ZqElement, n-1)
	for k := 0; k <= n-2; k++ {
		t1, err := x.Multiply(arg.BTilde.Get(k + 1))
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		t2, err := arg.BTilde.Get(k).Multiply(arg.ATilde.Get(k + 1))
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		e[k], err = t1.Subtract(t2)
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
	}
	eVec, err := group.NewZqVector(e...)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	lhs2, err := arg.Cbig.Exponentiate(x.Value())
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	lhs2, err = lhs2.Multiply(arg.Cdelta)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	rhs2, err := commitment.Commit(eVec, arg.STilde, ck)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	results = append(results, mixerr.Check(lhs2.Equal(rhs2), "single-value product: delta-commitment equation failed"))

	results = append(results, mixerr.Check(arg.BTilde.Get(0).Equal(arg.ATilde.Get(0)), "single-value product: b~_0 must equal a~_0"))

	xb, err := x.Multiply(stmt.B)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	results = append(results, mixerr.Check(arg.BTilde.Get(n-1).Equal(xb), "single-value product: b~_(n-1) must equal x*b"))

	return mixerr.And(results...), nil
}
