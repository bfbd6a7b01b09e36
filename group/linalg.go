package group

import "github.com/bgshuffle/core/internal/mixerr"

// Add returns the element-wise sum of v and w (mod q).
func (v ZqVector) Add(w ZqVector) (ZqVector, error) {
	if v.Len() != w.Len() {
		return ZqVector{}, mixerr.InvalidInput("vector length mismatch: %d vs %d", v.Len(), w.Len())
	}
	out := make([]*ZqElement, v.Len())
	for i := range out {
		sum, err := v.Get(i).Add(w.Get(i))
		if err != nil {
			return ZqVector{}, err
		}
		out[i] = sum
	}
	return NewZqVector(out...)
}

// ScalarMultiply returns s*v, element-wise.
func (v ZqVector) ScalarMultiply(s *ZqElement) (ZqVector, error) {
	out := make([]*ZqElement, v.Len())
	for i := 0; i < v.Len(); i++ {
		p, err := v.Get(i).Multiply(s)
		if err != nil {
			return ZqVector{}, err
		}
		out[i] = p
	}
	return NewZqVector(out...)
}

// HadamardProduct returns the element-wise product of v and w.
func (v ZqVector) HadamardProduct(w ZqVector) (ZqVector, error) {
	if v.Len() != w.Len() {
		return ZqVector{}, mixerr.InvalidInput("vector length mismatch: %d vs %d", v.Len(), w.Len())
	}
	out := make([]*ZqElement, v.Len())
	for i := range out {
		p, err := v.Get(i).Multiply(w.Get(i))
		if err != nil {
			return ZqVector{}, err
		}
		out[i] = p
	}
	return NewZqVector(out...)
}

// AddScalarMultiple returns v + s*w.
func (v ZqVector) AddScalarMultiple(s *ZqElement, w ZqVector) (ZqVector, error) {
	scaled, err := w.ScalarMultiply(s)
	if err != nil {
		return ZqVector{}, err
	}
	return v.Add(scaled)
}

// LinearCombination returns Σ scalars[i] * vectors[i]. All vectors must
// share the same length and field.
func LinearCombination(scalars []*ZqElement, vectors []ZqVector) (ZqVector, error) {
	if len(scalars) != len(vectors) {
		return ZqVector{}, mixerr.InvalidInput("scalar/vector count mismatch: %d vs %d", len(scalars), len(vectors))
	}
	if len(vectors) == 0 {
		return ZqVector{}, mixerr.InvalidInput("linear combination requires at least one term")
	}
	acc, err := vectors[0].ScalarMultiply(scalars[0])
	if err != nil {
		return ZqVector{}, err
	}
	for i := 1; i < len(vectors); i++ {
		acc, err = acc.AddScalarMultiple(scalars[i], vectors[i])
		if err != nil {
			return ZqVector{}, err
		}
	}
	return acc, nil
}

// ScalarMultiply returns s*m, element-wise.
func (m ZqMatrix) ScalarMultiply(s *ZqElement) (ZqMatrix, error) {
	cols := make([]ZqVector, m.Columns())
	for j := 0; j < m.Columns(); j++ {
		c, err := m.Column(j).ScalarMultiply(s)
		if err != nil {
			return ZqMatrix{}, err
		}
		cols[j] = c
	}
	return NewZqMatrixFromColumns(cols...)
}

// Add returns the element-wise sum of m and n.
func (m ZqMatrix) Add(n ZqMatrix) (ZqMatrix, error) {
	if m.Rows() != n.Rows() || m.Columns() != n.Columns() {
		return ZqMatrix{}, mixerr.InvalidInput("matrix dimension mismatch: %dx%d vs %dx%d", m.Rows(), m.Columns(), n.Rows(), n.Columns())
	}
	cols := make([]ZqVector, m.Columns())
	for j := 0; j < m.Columns(); j++ {
		c, err := m.Column(j).Add(n.Column(j))
		if err != nil {
			return ZqMatrix{}, err
		}
		cols[j] = c
	}
	return NewZqMatrixFromColumns(cols...)
}

// PowersOf returns (x^0, x^1, ..., x^(n-1)).
func PowersOf(x *ZqElement, n int) ([]*ZqElement, error) {
	if n < 0 {
		return nil, mixerr.InvalidInput("negative power count")
	}
	out := make([]*ZqElement, n)
	if n == 0 {
		return out, nil
	}
	out[0] = x.Group().One()
	for i := 1; i < n; i++ {
		next, err := out[i-1].Multiply(x)
		if err != nil {
			return nil, err
		}
		out[i] = next
	}
	return out, nil
}

// Multiply returns the element-wise product of v and w in Gq.
func (v GqVector) Multiply(w GqVector) (GqVector, error) {
	if v.Len() != w.Len() {
		return GqVector{}, mixerr.InvalidInput("vector length mismatch: %d vs %d", v.Len(), w.Len())
	}
	out := make([]*GqElement, v.Len())
	for i := range out {
		p, err := v.Get(i).Multiply(w.Get(i))
		if err != nil {
			return GqVector{}, err
		}
		out[i] = p
	}
	return NewGqVector(out...)
}

// ExponentiateEach returns (v[0]^exps[0], ..., v[n-1]^exps[n-1]).
func (v GqVector) ExponentiateEach(exps ZqVector) (GqVector, error) {
	if v.Len() != exps.Len() {
		return GqVector{}, mixerr.InvalidInput("vector length mismatch: %d vs %d", v.Len(), exps.Len())
	}
	out := make([]*GqElement, v.Len())
	for i := range out {
		e, err := v.Get(i).ExponentiateElement(exps.Get(i))
		if err != nil {
			return GqVector{}, err
		}
		out[i] = e
	}
	return NewGqVector(out...)
}

// MultiExponentiate computes Π v[i]^exps[i].
func (v GqVector) MultiExponentiate(exps ZqVector) (*GqElement, error) {
	g, err := v.ExponentiateEach(exps)
	if err != nil {
		return nil, err
	}
	return ProductOf(g)
}

// ProductOf computes the product of every element of v (the Gq identity for
// an empty vector would be ambiguous, so v must be non-empty).
func ProductOf(v GqVector) (*GqElement, error) {
	if v.Len() == 0 {
		return nil, mixerr.InvalidInput("product of an empty vector is undefined")
	}
	acc := v.Get(0)
	for i := 1; i < v.Len(); i++ {
		var err error
		acc, err = acc.Multiply(v.Get(i))
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
