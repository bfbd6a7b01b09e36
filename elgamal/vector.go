package elgamal

import (
	"strings"

	"github.com/bgshuffle/core/group"
	"github.com/bgshuffle/core/internal/mixerr"
)

// CiphertextVector is a validated, same-group, same-element-size sequence
// of ciphertexts — the shape of a ShuffleStatement's C and C' (spec §4.11).
type CiphertextVector struct {
	group   *group.GqGroup
	size    int
	entries []Ciphertext
}

// NewCiphertextVector validates that every ciphertext shares one group and
// one element-size l.
func NewCiphertextVector(entries ...Ciphertext) (CiphertextVector, error) {
	if len(entries) == 0 {
		return CiphertextVector{}, mixerr.InvalidInput("ciphertext vector must be non-empty")
	}
	g := entries[0].Group()
	l := entries[0].Size()
	for i, c := range entries {
		if !c.Group().Equal(g) {
			return CiphertextVector{}, mixerr.InvalidInput("ciphertext %d belongs to a different group", i)
		}
		if c.Size() != l {
			return CiphertextVector{}, mixerr.InvalidInput("ciphertext %d has size %d, expected %d", i, c.Size(), l)
		}
	}
	cp := make([]Ciphertext, len(entries))
	copy(cp, entries)
	return CiphertextVector{group: g, size: l, entries: cp}, nil
}

// Len returns the number of ciphertexts (N).
func (v CiphertextVector) Len() int { return len(v.entries) }

// ElementSize returns l, the shared number of φ components.
func (v CiphertextVector) ElementSize() int { return v.size }

// Group returns the shared Gq group.
func (v CiphertextVector) Group() *group.GqGroup { return v.group }

// Get returns the i-th ciphertext.
func (v CiphertextVector) Get(i int) Ciphertext { return v.entries[i] }

// Slice returns a defensive copy of the underlying ciphertexts.
func (v CiphertextVector) Slice() []Ciphertext {
	cp := make([]Ciphertext, len(v.entries))
	copy(cp, v.entries)
	return cp
}

// Equal reports whether v and w hold equal-length, pointwise-equal
// ciphertexts.
func (v CiphertextVector) Equal(w CiphertextVector) bool {
	if v.Len() != w.Len() {
		return false
	}
	for i := 0; i < v.Len(); i++ {
		if !v.Get(i).Equal(w.Get(i)) {
			return false
		}
	}
	return true
}

// String renders v as a bracketed, comma-separated list of its
// ciphertexts' String forms.
func (v CiphertextVector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range v.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	b.WriteByte(']')
	return b.String()
}

// ToMatrix reshapes v row-major into an m x n CiphertextMatrix: entry
// (r, c) is v[r*n+c] (spec §4.11's `reshape(C', m x n)`).
func (v CiphertextVector) ToMatrix(m, n int) (CiphertextMatrix, error) {
	if m < 0 || n < 0 || m*n != v.Len() {
		return CiphertextMatrix{}, mixerr.InvalidInput("cannot reshape length-%d ciphertext vector into %dx%d matrix", v.Len(), m, n)
	}
	rows := make([]CiphertextVector, m)
	for r := 0; r < m; r++ {
		row, err := NewCiphertextVector(v.entries[r*n : (r+1)*n]...)
		if err != nil {
			return CiphertextMatrix{}, err
		}
		rows[r] = row
	}
	return NewCiphertextMatrixFromRows(rows...)
}

// CiphertextMatrix is an m-by-n grid of equal-shape ciphertexts, the shape
// consumed by the multi-exponentiation argument's C matrix (spec §4.10).
type CiphertextMatrix struct {
	group *group.GqGroup
	size  int
	rows  []CiphertextVector
}

// NewCiphertextMatrixFromRows validates that every row has the same length
// and element-size and shares one group.
func NewCiphertextMatrixFromRows(rows ...CiphertextVector) (CiphertextMatrix, error) {
	if len(rows) == 0 {
		return CiphertextMatrix{}, mixerr.InvalidInput("ciphertext matrix must have at least one row")
	}
	g := rows[0].Group()
	l := rows[0].ElementSize()
	n := rows[0].Len()
	for i, r := range rows {
		if !r.Group().Equal(g) {
			return CiphertextMatrix{}, mixerr.InvalidInput("row %d belongs to a different group", i)
		}
		if r.ElementSize() != l {
			return CiphertextMatrix{}, mixerr.InvalidInput("row %d has element-size %d, expected %d", i, r.ElementSize(), l)
		}
		if r.Len() != n {
			return CiphertextMatrix{}, mixerr.InvalidInput("row %d has length %d, expected %d", i, r.Len(), n)
		}
	}
	cp := make([]CiphertextVector, len(rows))
	copy(cp, rows)
	return CiphertextMatrix{group: g, size: l, rows: cp}, nil
}

// Rows returns the number of rows (m).
func (m CiphertextMatrix) Rows() int { return len(m.rows) }

// Columns returns the number of columns (n).
func (m CiphertextMatrix) Columns() int {
	if len(m.rows) == 0 {
		return 0
	}
	return m.rows[0].Len()
}

// Group returns the shared Gq group.
func (m CiphertextMatrix) Group() *group.GqGroup { return m.group }

// ElementSize returns l, the shared number of φ components per ciphertext.
func (m CiphertextMatrix) ElementSize() int { return m.size }

// Row returns the i-th row vector.
func (m CiphertextMatrix) Row(i int) CiphertextVector { return m.rows[i] }

// Get returns the ciphertext at row i, column j.
func (m CiphertextMatrix) Get(i, j int) Ciphertext { return m.rows[i].Get(j) }

// Column returns the j-th column as a CiphertextVector.
func (m CiphertextMatrix) Column(j int) (CiphertextVector, error) {
	entries := make([]Ciphertext, m.Rows())
	for i := 0; i < m.Rows(); i++ {
		entries[i] = m.rows[i].Get(j)
	}
	return NewCiphertextVector(entries...)
}
