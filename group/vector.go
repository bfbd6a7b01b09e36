package group

import (
	"github.com/bgshuffle/core/gvector"
	"github.com/bgshuffle/core/internal/mixerr"
)

// GqVector is a GroupVector<Gq> (spec §3/§4.1): an ordered sequence of Gq
// elements that all share one group.
type GqVector struct {
	group *GqGroup
	vec   gvector.Vector[*GqElement]
}

// NewGqVector validates that every element shares one group.
func NewGqVector(elems ...*GqElement) (GqVector, error) {
	g, err := SameGqGroup(elems...)
	if err != nil {
		return GqVector{}, err
	}
	return GqVector{group: g, vec: gvector.New(elems)}, nil
}

// Len returns the vector's length.
func (v GqVector) Len() int { return v.vec.Len() }

// Get returns the i-th element.
func (v GqVector) Get(i int) *GqElement { return v.vec.Get(i) }

// Slice returns a defensive copy of the elements.
func (v GqVector) Slice() []*GqElement { return v.vec.Slice() }

// Group returns the common group, or nil for an empty vector.
func (v GqVector) Group() *GqGroup { return v.group }

// Append returns a new vector with e appended.
func (v GqVector) Append(e *GqElement) (GqVector, error) {
	return NewGqVector(append(v.Slice(), e)...)
}

// GqMatrix is a GroupMatrix<Gq>: m x n, every row sharing one group.
type GqMatrix struct {
	group *GqGroup
	mat   gvector.Matrix[*GqElement]
}

// NewGqMatrixFromColumns builds a matrix from same-length, same-group columns.
func NewGqMatrixFromColumns(columns ...GqVector) (GqMatrix, error) {
	if len(columns) == 0 {
		return GqMatrix{}, nil
	}
	flat := make([]*GqElement, 0)
	for _, c := range columns {
		flat = append(flat, c.Slice()...)
	}
	g, err := SameGqGroup(flat...)
	if err != nil {
		return GqMatrix{}, err
	}
	cols := make([]gvector.Vector[*GqElement], len(columns))
	for i, c := range columns {
		cols[i] = gvector.New(c.Slice())
	}
	mat, err := gvector.NewMatrixFromColumns(cols)
	if err != nil {
		return GqMatrix{}, err
	}
	return GqMatrix{group: g, mat: mat}, nil
}

// Rows returns the row count.
func (m GqMatrix) Rows() int { return m.mat.Rows() }

// Columns returns the column count.
func (m GqMatrix) Columns() int { return m.mat.Columns() }

// Row returns row i.
func (m GqMatrix) Row(i int) GqVector { return GqVector{group: m.group, vec: m.mat.Row(i)} }

// Column returns column j.
func (m GqMatrix) Column(j int) GqVector { return GqVector{group: m.group, vec: m.mat.Column(j)} }

// Get returns the entry at row i, column j.
func (m GqMatrix) Get(i, j int) *GqElement { return m.mat.Row(i).Get(j) }

// Group returns the common group.
func (m GqMatrix) Group() *GqGroup { return m.group }

// ZqVector is a GroupVector<Zq>: an ordered sequence of Zq elements that
// all share one field.
type ZqVector struct {
	group *ZqGroup
	vec   gvector.Vector[*ZqElement]
}

// NewZqVector validates that every element shares one field.
func NewZqVector(elems ...*ZqElement) (ZqVector, error) {
	g, err := SameZqGroup(elems...)
	if err != nil {
		return ZqVector{}, err
	}
	return ZqVector{group: g, vec: gvector.New(elems)}, nil
}

// Len returns the vector's length.
func (v ZqVector) Len() int { return v.vec.Len() }

// Get returns the i-th element.
func (v ZqVector) Get(i int) *ZqElement { return v.vec.Get(i) }

// Slice returns a defensive copy of the elements.
func (v ZqVector) Slice() []*ZqElement { return v.vec.Slice() }

// Group returns the common field, or nil for an empty vector.
func (v ZqVector) Group() *ZqGroup { return v.group }

// Append returns a new vector with e appended.
func (v ZqVector) Append(e *ZqElement) (ZqVector, error) {
	return NewZqVector(append(v.Slice(), e)...)
}

// Concat returns the concatenation of v and other.
func (v ZqVector) Concat(other ZqVector) (ZqVector, error) {
	return NewZqVector(append(v.Slice(), other.Slice()...)...)
}

// ToMatrix reshapes v (row-major) into an m x n ZqMatrix.
func (v ZqVector) ToMatrix(m, n int) (ZqMatrix, error) {
	mat, err := gvector.ToMatrix(v.vec, m, n)
	if err != nil {
		return ZqMatrix{}, err
	}
	return ZqMatrix{group: v.group, mat: mat}, nil
}

// InnerProduct computes <v, w> in Zq.
func (v ZqVector) InnerProduct(w ZqVector) (*ZqElement, error) {
	if v.Len() != w.Len() {
		return nil, mixerr.InvalidInput("inner product requires equal-length vectors, got %d and %d", v.Len(), w.Len())
	}
	if v.group == nil || w.group == nil || !v.group.Equal(w.group) {
		return nil, mixerr.InvalidInput("inner product requires vectors over the same field")
	}
	acc := v.group.Identity()
	for i := 0; i < v.Len(); i++ {
		term, err := v.Get(i).Multiply(w.Get(i))
		if err != nil {
			return nil, err
		}
		acc, err = acc.Add(term)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// ZqMatrix is a GroupMatrix<Zq>: m x n, every row sharing one field.
type ZqMatrix struct {
	group *ZqGroup
	mat   gvector.Matrix[*ZqElement]
}

// NewZqMatrix builds a matrix from same-length, same-field rows.
func NewZqMatrix(rows ...[]*ZqElement) (ZqMatrix, error) {
	if len(rows) == 0 {
		return ZqMatrix{}, nil
	}
	flat := make([]*ZqElement, 0)
	for _, r := range rows {
		flat = append(flat, r...)
	}
	g, err := SameZqGroup(flat...)
	if err != nil {
		return ZqMatrix{}, err
	}
	mat, err := gvector.NewMatrix(rows)
	if err != nil {
		return ZqMatrix{}, err
	}
	return ZqMatrix{group: g, mat: mat}, nil
}

// NewZqMatrixFromColumns builds a matrix from same-length, same-field columns.
func NewZqMatrixFromColumns(columns ...ZqVector) (ZqMatrix, error) {
	if len(columns) == 0 {
		return ZqMatrix{}, nil
	}
	flat := make([]*ZqElement, 0)
	for _, c := range columns {
		flat = append(flat, c.Slice()...)
	}
	g, err := SameZqGroup(flat...)
	if err != nil {
		return ZqMatrix{}, err
	}
	cols := make([]gvector.Vector[*ZqElement], len(columns))
	for i, c := range columns {
		cols[i] = gvector.New(c.Slice())
	}
	mat, err := gvector.NewMatrixFromColumns(cols)
	if err != nil {
		return ZqMatrix{}, err
	}
	return ZqMatrix{group: g, mat: mat}, nil
}

// Rows returns the row count (m).
func (m ZqMatrix) Rows() int { return m.mat.Rows() }

// Columns returns the column count (n).
func (m ZqMatrix) Columns() int { return m.mat.Columns() }

// Row returns row i.
func (m ZqMatrix) Row(i int) ZqVector { return ZqVector{group: m.group, vec: m.mat.Row(i)} }

// Get returns the entry at row i, column j.
func (m ZqMatrix) Get(i, j int) *ZqElement { return m.mat.Row(i).Get(j) }

// Column returns column j.
func (m ZqMatrix) Column(j int) ZqVector { return ZqVector{group: m.group, vec: m.mat.Column(j)} }

// Transpose returns the n x m transpose.
func (m ZqMatrix) Transpose() ZqMatrix { return ZqMatrix{group: m.group, mat: m.mat.Transpose()} }

// PrependColumn returns a new matrix with col inserted as column 0.
func (m ZqMatrix) PrependColumn(col ZqVector) (ZqMatrix, error) {
	mat, err := m.mat.PrependColumn(col.vec)
	if err != nil {
		return ZqMatrix{}, err
	}
	g := m.group
	if g == nil {
		g = col.group
	}
	return ZqMatrix{group: g, mat: mat}, nil
}

// AppendColumn returns a new matrix with col inserted as the last column.
func (m ZqMatrix) AppendColumn(col ZqVector) (ZqMatrix, error) {
	mat, err := m.mat.AppendColumn(col.vec)
	if err != nil {
		return ZqMatrix{}, err
	}
	g := m.group
	if g == nil {
		g = col.group
	}
	return ZqMatrix{group: g, mat: mat}, nil
}

// ToVector flattens the matrix row-major.
func (m ZqMatrix) ToVector() ZqVector { return ZqVector{group: m.group, vec: m.mat.ToVector()} }

// Group returns the common field.
func (m ZqMatrix) Group() *ZqGroup { return m.group }
