package group

import (
	"encoding/json"
	"math/big"

	"github.com/bgshuffle/core/gvector"
	"github.com/bgshuffle/core/internal/mixerr"
)

// MarshalJSON encodes the element's decimal value, matching the teacher's
// approach of marshaling group elements as plain JSON values rather than
// objects (see _examples/takakv-msc-poc/marshal.go's RawMessage fields).
func (e *GqElement) MarshalJSON() ([]byte, error) { return json.Marshal(e.value.String()) }

// UnmarshalJSON decodes into e, which must already be bound to a group via
// GqGroup.Element().
func (e *GqElement) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return mixerr.InvalidInput("malformed group element %q", s)
	}
	if e.group != nil && (v.Sign() <= 0 || v.Cmp(e.group.p) >= 0) {
		return mixerr.InvalidInput("element value out of range")
	}
	e.value = v
	return nil
}

// MarshalJSON encodes the element's decimal value.
func (e *ZqElement) MarshalJSON() ([]byte, error) { return json.Marshal(e.value.String()) }

// UnmarshalJSON decodes into e, which must already be bound to a field via
// ZqGroup.Element().
func (e *ZqElement) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return mixerr.InvalidInput("malformed field element %q", s)
	}
	if e.group != nil {
		v.Mod(v, e.group.q)
	}
	e.value = v
	return nil
}

// MarshalJSON encodes v as a JSON array of its elements' decimal values.
func (v GqVector) MarshalJSON() ([]byte, error) { return json.Marshal(v.Slice()) }

// GqVectorUnmarshalJSON decodes b into a GqVector bound to G, following the
// teacher's pattern of passing the group in explicitly rather than
// recovering it from the wire format (see
// _examples/takakv-msc-poc/marshal.go's BallotUnmarshalJSON).
func GqVectorUnmarshalJSON(b []byte, G *GqGroup) (GqVector, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return GqVector{}, err
	}
	elems := make([]*GqElement, len(raw))
	for i, r := range raw {
		elems[i] = G.Element()
		if err := elems[i].UnmarshalJSON(r); err != nil {
			return GqVector{}, err
		}
	}
	return NewGqVector(elems...)
}

// MarshalJSON encodes v as a JSON array of its elements' decimal values.
func (v ZqVector) MarshalJSON() ([]byte, error) { return json.Marshal(v.Slice()) }

// ZqVectorUnmarshalJSON decodes b into a ZqVector bound to Z.
func ZqVectorUnmarshalJSON(b []byte, Z *ZqGroup) (ZqVector, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return ZqVector{}, err
	}
	elems := make([]*ZqElement, len(raw))
	for i, r := range raw {
		elems[i] = Z.Element()
		if err := elems[i].UnmarshalJSON(r); err != nil {
			return ZqVector{}, err
		}
	}
	return NewZqVector(elems...)
}

// MarshalJSON encodes m row-major as a JSON array of row arrays.
func (m GqMatrix) MarshalJSON() ([]byte, error) {
	rows := make([]GqVector, m.Rows())
	for i := range rows {
		rows[i] = m.Row(i)
	}
	return json.Marshal(rows)
}

// GqMatrixUnmarshalJSON decodes b, a JSON array of row arrays, into a
// GqMatrix bound to G.
func GqMatrixUnmarshalJSON(b []byte, G *GqGroup) (GqMatrix, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return GqMatrix{}, err
	}
	if len(raw) == 0 {
		return GqMatrix{}, nil
	}
	rows := make([][]*GqElement, len(raw))
	for i, r := range raw {
		row, err := GqVectorUnmarshalJSON(r, G)
		if err != nil {
			return GqMatrix{}, err
		}
		rows[i] = row.Slice()
	}
	mat, err := gvector.NewMatrix(rows)
	if err != nil {
		return GqMatrix{}, err
	}
	return GqMatrix{group: G, mat: mat}, nil
}

// MarshalJSON encodes m row-major as a JSON array of row arrays.
func (m ZqMatrix) MarshalJSON() ([]byte, error) {
	rows := make([]ZqVector, m.Rows())
	for i := 0; i < m.Rows(); i++ {
		rows[i] = m.Row(i)
	}
	return json.Marshal(rows)
}

// ZqMatrixUnmarshalJSON decodes b, a JSON array of row arrays, into a
// ZqMatrix bound to Z.
func ZqMatrixUnmarshalJSON(b []byte, Z *ZqGroup) (ZqMatrix, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return ZqMatrix{}, err
	}
	rows := make([][]*ZqElement, len(raw))
	for i, r := range raw {
		row, err := ZqVectorUnmarshalJSON(r, Z)
		if err != nil {
			return ZqMatrix{}, err
		}
		rows[i] = row.Slice()
	}
	return NewZqMatrix(rows...)
}
