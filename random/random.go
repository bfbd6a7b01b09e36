// Package random provides the RandomService collaborator of spec §6: a
// uniform integer/vector source injected into provers rather than read off
// a package-level global, per the "ownership of random source" design note
// in spec §9. The teacher reaches for the bare crypto/rand.Reader directly
// at every call site (see group.(*ModPGroup).Random and elgamal.go's
// encryptVote); this wraps the same primitive behind an interface so it can
// be swapped or mocked without touching the prover.
package random

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/internal/mixerr"
)

// Service is the external random collaborator consumed by the core.
type Service interface {
	// GenRandomInteger returns a value uniform in [0, bound).
	GenRandomInteger(bound *big.Int) (*big.Int, error)
	// GenRandomZq returns a uniform element of Z.
	GenRandomZq(Z *group.ZqGroup) (*group.ZqElement, error)
	// GenRandomVector returns length independent uniform elements of Z.
	GenRandomVector(Z *group.ZqGroup, length int) (group.ZqVector, error)
	// GenRandomIndex returns a value uniform in [0, n), used by the
	// Fisher-Yates permutation generator (spec §4.4).
	GenRandomIndex(n int) (int, error)
}

// CryptoService is a Service backed by crypto/rand.
type CryptoService struct {
	reader io.Reader
}

// NewCryptoService returns a Service reading from crypto/rand.Reader.
func NewCryptoService() *CryptoService { return &CryptoService{reader: rand.Reader} }

// NewCryptoServiceWithReader is NewCryptoService with an injectable reader,
// useful for deterministic tests.
func NewCryptoServiceWithReader(r io.Reader) *CryptoService { return &CryptoService{reader: r} }

// GenRandomInteger returns a value uniform in [0, bound).
func (s *CryptoService) GenRandomInteger(bound *big.Int) (*big.Int, error) {
	if bound == nil || bound.Sign() <= 0 {
		return nil, mixerr.InvalidInput("bound must be positive")
	}
	return rand.Int(s.reader, bound)
}

// GenRandomIndex returns a value uniform in [0, n).
func (s *CryptoService) GenRandomIndex(n int) (int, error) {
	if n <= 0 {
		return 0, mixerr.InvalidInput("n must be positive")
	}
	v, err := s.GenRandomInteger(big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// GenRandomZq returns a uniform element of Z.
func (s *CryptoService) GenRandomZq(Z *group.ZqGroup) (*group.ZqElement, error) {
	v, err := s.GenRandomInteger(Z.Q())
	if err != nil {
		return nil, err
	}
	return Z.NewElement(v)
}

// GenRandomVector returns length independent uniform elements of Z.
func (s *CryptoService) GenRandomVector(Z *group.ZqGroup, length int) (group.ZqVector, error) {
	if length < 0 {
		return group.ZqVector{}, mixerr.InvalidInput("length must be non-negative")
	}
	elems := make([]*group.ZqElement, length)
	for i := range elems {
		e, err := s.GenRandomZq(Z)
		if err != nil {
			return group.ZqVector{}, err
		}
		elems[i] = e
	}
	return group.NewZqVector(elems...)
}

var _ Service = (*CryptoService)(nil)
