// Package mixnet implements the shuffle argument of spec §4.11 (C11), the
// top-level orchestrator: it decomposes N into an m x n grid, builds the
// permutation and re-encryption witness into committed matrices, and
// reduces the resulting claim to a product argument (§4.9) plus a
// multi-exponentiation argument (§4.10). Grounded on the teacher's
// top-level composition in main.go/voter.go/server.go (setup, produce,
// verify, with timing around the expensive steps), generalized from a
// single-vote proof to a whole-batch shuffle proof.
package mixnet

import (
	"github.com/bgshuffle/core/commitment"
	"github.com/bgshuffle/core/elgamal"
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/hashing"
	"github.com/bgshuffle/core/internal/mixerr"
	"github.com/bgshuffle/core/internal/transcript"
	"github.com/bgshuffle/core/multiexp"
	"github.com/bgshuffle/core/permute"
	"github.com/bgshuffle/core/product"
	"github.com/bgshuffle/core/random"
)

// ShuffleStatement is (C, C') of spec §4.11: the original and shuffled
// ciphertext vectors.
type ShuffleStatement struct {
	C  elgamal.CiphertextVector
	Cp elgamal.CiphertextVector
}

// ShuffleWitness is (pi, rho): the permutation and re-encryption
// randomness used to produce C' from C.
type ShuffleWitness struct {
	Pi  permute.Permutation
	Rho group.ZqVector
}

// ShuffleArgument is the prover's output (spec §3's ShuffleArgument
// entity).
type ShuffleArgument struct {
	CA       group.GqVector
	CB       group.GqVector
	Product  product.Argument
	MultiExp multiexp.Argument
}

// VerifiableShuffle pairs the shuffled ciphertexts with the argument that
// they are a valid re-encrypting permutation of the original input.
type VerifiableShuffle struct {
	Cp       elgamal.CiphertextVector `json:"cPrime"`
	Argument ShuffleArgument
}

// Mixnet bundles the commitment key, challenge derivation and random
// source a shuffle proving/verifying session needs.
type Mixnet struct {
	ck  commitment.Key
	ch  *hashing.Challenger
	rnd random.Service
}

// NewMixnet validates its collaborators and returns a Mixnet.
func NewMixnet(ck commitment.Key, ch *hashing.Challenger, rnd random.Service) (Mixnet, error) {
	if ch == nil || rnd == nil {
		return Mixnet{}, mixerr.InvalidInput("challenger and random service must be non-nil")
	}
	return Mixnet{ck: ck, ch: ch, rnd: rnd}, nil
}

func repeatZq(Z *group.ZqGroup, v *group.ZqElement, count int) (group.ZqVector, error) {
	out := make([]*group.ZqElement, count)
	for i := range out {
		out[i] = v
	}
	return group.NewZqVector(out...)
}

// GenVerifiableShuffle draws a fresh random permutation and re-encrypts C
// under pk, then proves the result is a valid shuffle (spec §4.11's
// externally exposed genVerifiableShuffle).
func (mx Mixnet) GenVerifiableShuffle(C elgamal.CiphertextVector, pk elgamal.PublicKey) (VerifiableShuffle, error) {
	result, err := permute.Shuffle(C, pk, mx.rnd)
	if err != nil {
		return VerifiableShuffle{}, err
	}
	m, n, err := decompose(C.Len())
	if err != nil {
		return VerifiableShuffle{}, err
	}
	stmt := ShuffleStatement{C: C, Cp: result.Shuffled}
	wit := ShuffleWitness{Pi: result.Permutation, Rho: result.Randomness}

	arg, err := mx.prove(pk, stmt, wit, m, n)
	if err != nil {
		return VerifiableShuffle{}, err
	}
	return VerifiableShuffle{Cp: result.Shuffled, Argument: arg}, nil
}

// prove implements spec §4.11's prover (getShuffleArgument).
func (mx Mixnet) prove(pk elgamal.PublicKey, stmt ShuffleStatement, wit ShuffleWitness, m, n int) (ShuffleArgument, error) {
	N := m * n
	if stmt.C.Len() != N || stmt.Cp.Len() != N {
		return ShuffleArgument{}, mixerr.InvalidInput("ciphertext vectors must have length m*n=%d", N)
	}
	if !stmt.C.Group().Equal(stmt.Cp.Group()) || !stmt.C.Group().Equal(pk.Group()) {
		return ShuffleArgument{}, mixerr.InvalidInput("ciphertexts and public key must share one group")
	}
	if stmt.C.ElementSize() != stmt.Cp.ElementSize() || stmt.C.ElementSize() > pk.Size() {
		return ShuffleArgument{}, mixerr.InvalidInput("ciphertext element-size must match and not exceed public key size")
	}
	if wit.Pi.Size() != N || wit.Rho.Len() != N {
		return ShuffleArgument{}, mixerr.InvalidInput("permutation/randomness must have length N=%d", N)
	}
	G := pk.Group()
	Z := group.SameOrderAs(G)

	ones, err := elgamal.Ones(G, stmt.C.ElementSize())
	if err != nil {
		return ShuffleArgument{}, err
	}
	for i := 0; i < N; i++ {
		enc, err := elgamal.GetCiphertext(ones, wit.Rho.Get(i), pk)
		if err != nil {
			return ShuffleArgument{}, err
		}
		recomputed, err := enc.Multiply(stmt.C.Get(wit.Pi.Get(i)))
		if err != nil {
			return ShuffleArgument{}, err
		}
		if !ciphertextsEqual(recomputed, stmt.Cp.Get(i)) {
			return ShuffleArgument{}, mixerr.InvalidInput("witness does not reproduce C' at index %d", i)
		}
	}

	permVals := make([]*group.ZqElement, N)
	for i := 0; i < N; i++ {
		permVals[i] = Z.NewElementFromInt64(int64(wit.Pi.Get(i)))
	}
	permVec, err := group.NewZqVector(permVals...)
	if err != nil {
		return ShuffleArgument{}, err
	}
	aRowMajor, err := permVec.ToMatrix(m, n)
	if err != nil {
		return ShuffleArgument{}, err
	}
	A := aRowMajor.Transpose()

	r, err := mx.rnd.GenRandomVector(Z, m)
	if err != nil {
		return ShuffleArgument{}, err
	}
	cA, err := commitment.CommitMatrix(A, r, mx.ck)
	if err != nil {
		return ShuffleArgument{}, err
	}

	x, err := mx.ch.HashToZq(
		transcript.P(G), transcript.Q(G), transcript.PK(pk), transcript.CK(mx.ck),
		transcript.CiphertextVec(stmt.C), transcript.CiphertextVec(stmt.Cp), transcript.GqVec(cA),
	)
	if err != nil {
		return ShuffleArgument{}, err
	}
	xPowers, err := group.PowersOf(x, N)
	if err != nil {
		return ShuffleArgument{}, err
	}

	s, err := mx.rnd.GenRandomVector(Z, m)
	if err != nil {
		return ShuffleArgument{}, err
	}
	bVals := make([]*group.ZqElement, N)
	for i := 0; i < N; i++ {
		bVals[i] = xPowers[wit.Pi.Get(i)]
	}
	bVec, err := group.NewZqVector(bVals...)
	if err != nil {
		return ShuffleArgument{}, err
	}
	bRowMajor, err := bVec.ToMatrix(m, n)
	if err != nil {
		return ShuffleArgument{}, err
	}
	B := bRowMajor.Transpose()
	cB, err := commitment.CommitMatrix(B, s, mx.ck)
	if err != nil {
		return ShuffleArgument{}, err
	}

	y, err := mx.ch.HashToZq(
		transcript.GqVec(cB),
		transcript.P(G), transcript.Q(G), transcript.PK(pk), transcript.CK(mx.ck),
		transcript.CiphertextVec(stmt.C), transcript.CiphertextVec(stmt.Cp), transcript.GqVec(cA),
	)
	if err != nil {
		return ShuffleArgument{}, err
	}
	z, err := mx.ch.HashToZq(
		hashing.Str("1"), transcript.GqVec(cB),
		transcript.P(G), transcript.Q(G), transcript.PK(pk), transcript.CK(mx.ck),
		transcript.CiphertextVec(stmt.C), transcript.CiphertextVec(stmt.Cp), transcript.GqVec(cA),
	)
	if err != nil {
		return ShuffleArgument{}, err
	}

	negZ := z.Negate()
	negZCol, err := repeatZq(Z, negZ, n)
	if err != nil {
		return ShuffleArgument{}, err
	}
	negZCols := make([]group.ZqVector, m)
	for j := range negZCols {
		negZCols[j] = negZCol
	}
	negZMatrix, err := group.NewZqMatrixFromColumns(negZCols...)
	if err != nil {
		return ShuffleArgument{}, err
	}
	zero, err := repeatZq(Z, Z.Identity(), m)
	if err != nil {
		return ShuffleArgument{}, err
	}
	cNegZ, err := commitment.CommitMatrix(negZMatrix, zero, mx.ck)
	if err != nil {
		return ShuffleArgument{}, err
	}

	yRepeated, err := repeatZq(Z, y, m)
	if err != nil {
		return ShuffleArgument{}, err
	}
	cAExpY, err := cA.ExponentiateEach(yRepeated)
	if err != nil {
		return ShuffleArgument{}, err
	}
	cD, err := cAExpY.Multiply(cB)
	if err != nil {
		return ShuffleArgument{}, err
	}
	AScaledY, err := A.ScalarMultiply(y)
	if err != nil {
		return ShuffleArgument{}, err
	}
	D, err := AScaledY.Add(B)
	if err != nil {
		return ShuffleArgument{}, err
	}
	t, err := s.AddScalarMultiple(y, r)
	if err != nil {
		return ShuffleArgument{}, err
	}

	b := Z.One()
	for i := 0; i < N; i++ {
		yi, err := y.Multiply(Z.NewElementFromInt64(int64(i)))
		if err != nil {
			return ShuffleArgument{}, err
		}
		term, err := yi.Add(xPowers[i])
		if err != nil {
			return ShuffleArgument{}, err
		}
		term, err = term.Subtract(z)
		if err != nil {
			return ShuffleArgument{}, err
		}
		b, err = b.Multiply(term)
		if err != nil {
			return ShuffleArgument{}, err
		}
	}

	productCA, err := cD.Multiply(cNegZ)
	if err != nil {
		return ShuffleArgument{}, err
	}
	productWitnessA, err := D.Add(negZMatrix)
	if err != nil {
		return ShuffleArgument{}, err
	}
	productStmt := product.Statement{CA: productCA, B: b, N: n}
	productWit := product.Witness{A: productWitnessA, R: t}
	productArg, err := product.Prove(mx.ck, pk, mx.ch, mx.rnd, productStmt, productWit)
	if err != nil {
		return ShuffleArgument{}, err
	}

	rhoSum := Z.Identity()
	for i := 0; i < N; i++ {
		term, err := wit.Rho.Get(i).Multiply(bVals[i])
		if err != nil {
			return ShuffleArgument{}, err
		}
		rhoSum, err = rhoSum.Add(term)
		if err != nil {
			return ShuffleArgument{}, err
		}
	}
	rhoSum = rhoSum.Negate()

	cMatrix, err := stmt.Cp.ToMatrix(m, n)
	if err != nil {
		return ShuffleArgument{}, err
	}
	cHat, err := elgamal.VectorExponentiation(stmt.C.Slice(), xPowers)
	if err != nil {
		return ShuffleArgument{}, err
	}
	multiExpStmt := multiexp.Statement{CMatrix: cMatrix, C: cHat, CA: cB}
	multiExpWit := multiexp.Witness{A: B, R: s, Rho: rhoSum}
	multiExpArg, err := multiexp.Prove(mx.ck, pk, mx.ch, mx.rnd, multiExpStmt, multiExpWit)
	if err != nil {
		return ShuffleArgument{}, err
	}

	return ShuffleArgument{CA: cA, CB: cB, Product: productArg, MultiExp: multiExpArg}, nil
}

// VerifyShuffle implements spec §4.11's verifier: it recomputes the
// dimension decomposition, every challenge and auxiliary commitment, and
// accepts iff both reduced sub-arguments verify.
func (mx Mixnet) VerifyShuffle(C elgamal.CiphertextVector, Cp elgamal.CiphertextVector, arg ShuffleArgument, pk elgamal.PublicKey) (mixerr.VerificationResult, error) {
	N := C.Len()
	if Cp.Len() != N {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("C and C' must have equal length, got %d and %d", N, Cp.Len())
	}
	if !C.Group().Equal(Cp.Group()) || !C.Group().Equal(pk.Group()) {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("ciphertexts and public key must share one group")
	}
	if C.ElementSize() != Cp.ElementSize() || C.ElementSize() > pk.Size() {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("ciphertext element-size must match and not exceed public key size")
	}
	m, n, err := decompose(N)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	if arg.CA.Len() != m || arg.CB.Len() != m {
		return mixerr.VerificationResult{}, mixerr.InvalidInput("c_A/c_B length %d/%d does not match m=%d", arg.CA.Len(), arg.CB.Len(), m)
	}
	G := pk.Group()
	Z := group.SameOrderAs(G)

	x, err := mx.ch.HashToZq(
		transcript.P(G), transcript.Q(G), transcript.PK(pk), transcript.CK(mx.ck),
		transcript.CiphertextVec(C), transcript.CiphertextVec(Cp), transcript.GqVec(arg.CA),
	)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	xPowers, err := group.PowersOf(x, N)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	y, err := mx.ch.HashToZq(
		transcript.GqVec(arg.CB),
		transcript.P(G), transcript.Q(G), transcript.PK(pk), transcript.CK(mx.ck),
		transcript.CiphertextVec(C), transcript.CiphertextVec(Cp), transcript.GqVec(arg.CA),
	)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	z, err := mx.ch.HashToZq(
		hashing.Str("1"), transcript.GqVec(arg.CB),
		transcript.P(G), transcript.Q(G), transcript.PK(pk), transcript.CK(mx.ck),
		transcript.CiphertextVec(C), transcript.CiphertextVec(Cp), transcript.GqVec(arg.CA),
	)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	negZ := z.Negate()
	negZCol, err := repeatZq(Z, negZ, n)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	negZCols := make([]group.ZqVector, m)
	for j := range negZCols {
		negZCols[j] = negZCol
	}
	negZMatrix, err := group.NewZqMatrixFromColumns(negZCols...)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	zero, err := repeatZq(Z, Z.Identity(), m)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	cNegZ, err := commitment.CommitMatrix(negZMatrix, zero, mx.ck)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	yRepeated, err := repeatZq(Z, y, m)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	cAExpY, err := arg.CA.ExponentiateEach(yRepeated)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	cD, err := cAExpY.Multiply(arg.CB)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	b := Z.One()
	for i := 0; i < N; i++ {
		yi, err := y.Multiply(Z.NewElementFromInt64(int64(i)))
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		term, err := yi.Add(xPowers[i])
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		term, err = term.Subtract(z)
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
		b, err = b.Multiply(term)
		if err != nil {
			return mixerr.VerificationResult{}, err
		}
	}

	productCA, err := cD.Multiply(cNegZ)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	productStmt := product.Statement{CA: productCA, B: b, N: n}
	productResult, err := product.Verify(mx.ck, pk, mx.ch, productStmt, arg.Product)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	cMatrix, err := Cp.ToMatrix(m, n)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	cHat, err := elgamal.VectorExponentiation(C.Slice(), xPowers)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}
	multiExpStmt := multiexp.Statement{CMatrix: cMatrix, C: cHat, CA: arg.CB}
	multiExpResult, err := multiexp.Verify(mx.ck, pk, mx.ch, multiExpStmt, arg.MultiExp)
	if err != nil {
		return mixerr.VerificationResult{}, err
	}

	return mixerr.And(productResult, multiExpResult), nil
}

func ciphertextsEqual(a, b elgamal.Ciphertext) bool {
	if a.Size() != b.Size() || !a.Gamma().Equal(b.Gamma()) {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		if !a.Phi(i).Equal(b.Phi(i)) {
			return false
		}
	}
	return true
}
