package commitment

import (
	"encoding/binary"

	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/internal/mixerr"
)

// MarshalBinary encodes k as nu (4 bytes, big-endian) followed by nu+1
// fixed-width big-endian element values (h first, then g_1..g_nu), each
// padded to the byte length of the group's modulus p. Matches the
// teacher's encoding.BinaryMarshaler contract on group.Element, extended
// here to the derived key as a whole so it can be persisted once instead
// of re-derived from the hash service on every load.
func (k Key) MarshalBinary() ([]byte, error) {
	width := (k.group.P().BitLen() + 7) / 8
	out := make([]byte, 4, 4+(k.Nu()+1)*width)
	binary.BigEndian.PutUint32(out, uint32(k.Nu()))

	appendElem := func(e *group.GqElement) error {
		b, err := e.MarshalBinary()
		if err != nil {
			return err
		}
		if len(b) > width {
			return mixerr.InvalidInput("element encodes wider than the group modulus")
		}
		padded := make([]byte, width)
		copy(padded[width-len(b):], b)
		out = append(out, padded...)
		return nil
	}
	if err := appendElem(k.h); err != nil {
		return nil, err
	}
	for i := 0; i < k.Nu(); i++ {
		if err := appendElem(k.G(i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UnmarshalBinaryKey decodes b into a Key bound to G, following the
// teacher's pattern of passing the owning group in explicitly rather than
// recovering it from the wire format.
func UnmarshalBinaryKey(b []byte, G *group.GqGroup) (Key, error) {
	if G == nil {
		return Key{}, mixerr.InvalidInput("group must be non-nil")
	}
	if len(b) < 4 {
		return Key{}, mixerr.InvalidInput("commitment key encoding too short")
	}
	nu := int(binary.BigEndian.Uint32(b))
	width := (G.P().BitLen() + 7) / 8
	want := 4 + (nu+1)*width
	if len(b) != want {
		return Key{}, mixerr.InvalidInput("commitment key encoding has length %d, expected %d", len(b), want)
	}

	readElem := func(offset int) (*group.GqElement, error) {
		e := G.Element()
		if err := e.UnmarshalBinary(b[offset : offset+width]); err != nil {
			return nil, err
		}
		return e, nil
	}
	h, err := readElem(4)
	if err != nil {
		return Key{}, err
	}
	gElems := make([]*group.GqElement, nu)
	for i := 0; i < nu; i++ {
		gElems[i], err = readElem(4 + (i+1)*width)
		if err != nil {
			return Key{}, err
		}
	}
	gVec, err := group.NewGqVector(gElems...)
	if err != nil {
		return Key{}, err
	}
	return Key{group: G, h: h, g: gVec}, nil
}
