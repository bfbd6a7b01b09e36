// Package product implements the product argument of spec §4.9 (C9): it
// proves that every entry of a committed matrix A multiplies out to a
// claimed scalar b, by combining a Hadamard argument (reducing the matrix
// claim to a single row-product vector) with a single-value product
// argument (reducing that vector to the scalar). The m=1 case degenerates
// to the single-value product argument alone, per the Bayer-Groth paper's
// structural shortcut the spec names explicitly.
package product

import (
	"github.com/bgshuffle/core/commitment"
	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/hadamard"
	"github.com/bgshuffle/core/hashing"
	"github.com/bgshuffle/core/internal/mixerr"
	"github.com/bgshuffle/core/random"
	"github.com/bgshuffle/core/svp"
)

// Statement is (c_A, b) of spec §4.9, plus the public row-count N (the
// witness matrix's row count, known from the calling context the same way
// hadamard.Statement carries it).
type Statement struct {
	CA group.GqVector
	B  *group.ZqElement
	N  int
}

// Witness is (A, r) of spec §4.9.
type Witness struct {
	A group.ZqMatrix
	R group.ZqVector
}

// Argument is the prover's output. Cb and Hadamard are present only when
// m > 1; for m = 1 the argument is a bare single-value product argument
// (spec §4.9's structural branch).
type Argument struct {
	Cb       *group.GqElement
	Hadamard *hadamard.Argument
	Svp      svp.Argument
}

func rowProducts(A group.ZqMatrix, Z *group.ZqGroup) (group.ZqVector, error) {
	n := A.Rows()
	m := A.Columns()
	vals := make([]*group.ZqElement, n)
	for i := 0; i < n; i++ {
		acc := Z.One()
		for j := 0; j < m; j++ {
			var err error
			acc, err = acc.Multiply(A.Get(i, j))
			if err != nil {
				return group.ZqVector{}, err
			}
		}
		vals[i] = acc
	}
	return group.NewZqVector(vals...)
}

// Prove implements spec §4.9's prover.
func Prove(ck commitment.Key, pk elgamal.PublicKey, ch *hashing.Challenger, rnd random.Service, stmt Statement, wit Witness) (Argument, error) {
	m := wit.A.Columns()
	n := wit.A.Rows()
	if n < 2 {
		return Argument{}, mixerr.InvalidInput("product argument requires n >= 2, got %d", n)
	}
	if n != stmt.N {
		return Argument{}, mixerr.InvalidInput("witness row count %d does not match statement N=%d", n, stmt.N)
	}
	if stmt.CA.Len() != m || wit.R.Len() != m {
		return Argument{}, mixerr.InvalidInput("c_A/r length must match m=%d", m)
	}
	Z := group.SameOrderAs(ck.Group())

	if m == 1 {
		col0 := wit.A.Column(0)
		r0 := wit.R.Get(0)
		svpStmt := svp.Statement{Ca: stmt.CA.Get(0), B: stmt.B}
		svpWit := svp.Witness{A: col0, R: r0}
		svpArg, err := svp.Prove(ck, pk, ch, rnd, svpStmt, svpWit)
		if err != nil {
			return Argument{}, err
		}
		return Argument{Svp: svpArg}, nil
	}

	b, err := rowProducts(wit.A, Z)
	if err != nil {
		return Argument{}, err
	}
	s, err := rnd.GenRandomZq(Z)
	if err != nil {
		return Argument{}, err
	}
	cb, err := commitment.Commit(b, s, ck)
	if err != nil {
		return Argument{}, err
	}

	hadamardStmt := hadamard.Statement{CA: stmt.CA, Cb: cb, N: n}
	hadamardWit := hadamard.Witness{A: wit.A, B: b, R: wit.R, S: s}
	hadamardArg, err := hadamard.Prove(ck, pk, ch, rnd, hadamardStmt, hadamardWit)
	if err != nil {
		return Argument{}, err
	}

	svpStmt := svp.Statement{Ca: cb, B: stmt.B}
	svpWit := svp.Witness{A: b, R: s}
	svpArg, err := svp.Prove(ck, pk, ch, rnd, svpStmt, svpWit)
	if err != nil {
		return Argument{}, err
	}

	return Argument{Cb: cb, Hadamard: &hadamardArg, Svp: svpArg}, nil
}

// Verify implements spec §4.9's verifier. A structural mismatch between m
// and the presence/absence of c_b/hadamardArgument is an invalid-input
// error, per spec §4.9.
func Verify(ck commitment.Key, pk elgamal.PublicKey, ch *hashing.Challenger, stmt Statement, arg Argument) (mixerr.VerificationResult, error) {
	m := stmt.CA.Len()
	if m == 0 {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("c_A must be non-empty")
	}

	if m == 1 {
		if arg.Cb != nil || arg.Hadamard != nil {
			return mixerr.VerificationResult{}, mixerr.InvalidInput("m=1 product argument must not carry c_b or a hadamard argument")
		}
		svpStmt := svp.Statement{Ca: stmt.CA.Get(0), B: stmt.B}
		return svp.Verify(ck, pk, ch, svpStmt, arg.Svp)
	}

	if arg.Cb == nil || arg.Hadamard == nil {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("m>1 product argument must carry c_b and a hadamard argument")
	}

	hadamardStmt := hadamard.Statement{CA: stmt.CA, Cb: arg.Cb, N: stmt.N}
	hadamardResult, err := hadamard.Verify(ck, pk, ch, hadamardStmt, *arg.Hadamard)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	svpStmt := svp.Statement{Ca: arg.Cb, B: stmt.B}
	svpResult, err := svp.Verify(ck, pk, ch, svpStmt, arg.Svp)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	return mixerr.And(hadamardResult, svpResult), nil
}
