package hashing

import (
	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/internal/mixerr"
)

// Challenger binds a Service to one Zq field and derives Fiat-Shamir
// challenges from ordered transcripts (spec §4.5, §4.6-§4.11).
type Challenger struct {
	hash *Service
	Z    *group.ZqGroup
}

// NewChallenger binds hash to Z, enforcing the hash-length bound of spec
// §4.5: the hash byte-length * 8 must be strictly less than the bit length
// of q, or every challenge derivation would waste entropy (and, near the
// boundary, bias the reduction mod q).
func NewChallenger(hash *Service, Z *group.ZqGroup) (*Challenger, error) {
	if hash == nil || Z == nil {
		return nil, mixerr.InvalidInput("hash service and field must be non-nil")
	}
	bound := Z.Q().BitLen()
	if hash.GetHashLength()*8 >= bound {
		return nil, mixerr.InvalidInput(
			"hash length bound violated: digest is %d bits, field needs strictly fewer than %d",
			hash.GetHashLength()*8, bound)
	}
	return &Challenger{hash: hash, Z: Z}, nil
}

// HashToZq hashes the transcript and reduces it modulo q.
func (c *Challenger) HashToZq(values ...Hashable) (*group.ZqElement, error) {
	digest := c.hash.RecursiveHash(values...)
	i := c.hash.ByteArrayToInteger(digest)
	return c.Z.NewElement(i)
}

// Hash exposes the underlying Service for callers that need raw digests
// (e.g. the commitment-key derivation of spec §4.2, which hashes before a
// field reduction is meaningful).
func (c *Challenger) Hash() *Service { return c.hash }
