package group

import (
	"math/big"

	"github.com/bgshuffle/core/internal/mixerr"
)

// MarshalBinary encodes e as the big-endian bytes of its value, matching
// the teacher's encoding.BinaryMarshaler contract on group.Element
// (group/group.go), here backed by big.Int.Bytes() rather than an
// elliptic-curve point codec.
func (e *GqElement) MarshalBinary() ([]byte, error) { return e.value.Bytes(), nil }

// UnmarshalBinary decodes into e, which must already be bound to a group
// via GqGroup.Element().
func (e *GqElement) UnmarshalBinary(b []byte) error {
	v := new(big.Int).SetBytes(b)
	if e.group != nil && (v.Sign() <= 0 || v.Cmp(e.group.p) >= 0) {
		return mixerr.InvalidInput("element value out of range")
	}
	e.value = v
	return nil
}

// MarshalBinary encodes e as the big-endian bytes of its value.
func (e *ZqElement) MarshalBinary() ([]byte, error) { return e.value.Bytes(), nil }

// UnmarshalBinary decodes into e, which must already be bound to a field
// via ZqGroup.Element().
func (e *ZqElement) UnmarshalBinary(b []byte) error {
	v := new(big.Int).SetBytes(b)
	if e.group != nil {
		v.Mod(v, e.group.q)
	}
	e.value = v
	return nil
}
