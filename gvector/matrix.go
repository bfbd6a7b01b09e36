package gvector

import "github.com/bgshuffle/core/internal/mixerr"

// Matrix is an immutable m x n grid of T, stored row-major. Every row has
// the same length n (spec §3: "every row is a GroupVector of length n").
type Matrix[T any] struct {
	rows []Vector[T]
	cols int
}

// NewMatrix builds a Matrix from a slice of rows, each of equal length.
func NewMatrix[T any](rows [][]T) (Matrix[T], error) {
	if len(rows) == 0 {
		return Matrix[T]{}, nil
	}
	n := len(rows[0])
	vs := make([]Vector[T], len(rows))
	for i, row := range rows {
		if len(row) != n {
			return Matrix[T]{}, mixerr.InvalidInput("row %d has length %d, expected %d", i, len(row), n)
		}
		vs[i] = New(row)
	}
	return Matrix[T]{rows: vs, cols: n}, nil
}

// NewMatrixFromColumns builds a Matrix whose j-th column is cols[j].
func NewMatrixFromColumns[T any](columns []Vector[T]) (Matrix[T], error) {
	if len(columns) == 0 {
		return Matrix[T]{}, nil
	}
	n := columns[0].Len()
	for j, c := range columns {
		if c.Len() != n {
			return Matrix[T]{}, mixerr.InvalidInput("column %d has length %d, expected %d", j, c.Len(), n)
		}
	}
	rows := make([][]T, n)
	for r := 0; r < n; r++ {
		row := make([]T, len(columns))
		for c := 0; c < len(columns); c++ {
			row[c] = columns[c].Get(r)
		}
		rows[r] = row
	}
	return NewMatrix(rows)
}

// Rows returns the number of rows (m).
func (m Matrix[T]) Rows() int { return len(m.rows) }

// Columns returns the number of columns (n).
func (m Matrix[T]) Columns() int { return m.cols }

// Row returns row i as a Vector of length n.
func (m Matrix[T]) Row(i int) Vector[T] { return m.rows[i] }

// Column returns column j as a Vector of length m.
func (m Matrix[T]) Column(j int) Vector[T] {
	out := make([]T, len(m.rows))
	for i, row := range m.rows {
		out[i] = row.Get(j)
	}
	return New(out)
}

// Transpose returns the n x m transpose of m.
func (m Matrix[T]) Transpose() Matrix[T] {
	if m.Rows() == 0 {
		return m
	}
	out, _ := NewMatrixFromColumns(m.rows)
	return out
}

// PrependColumn returns a new matrix with col inserted as column 0.
func (m Matrix[T]) PrependColumn(col Vector[T]) (Matrix[T], error) {
	if m.Rows() != 0 && col.Len() != m.Rows() {
		return Matrix[T]{}, mixerr.InvalidInput("column length %d does not match row count %d", col.Len(), m.Rows())
	}
	rows := make([][]T, col.Len())
	for i := 0; i < col.Len(); i++ {
		row := make([]T, m.cols+1)
		row[0] = col.Get(i)
		if m.Rows() != 0 {
			copy(row[1:], m.rows[i].Slice())
		}
		rows[i] = row
	}
	return NewMatrix(rows)
}

// AppendColumn returns a new matrix with col inserted as the last column.
func (m Matrix[T]) AppendColumn(col Vector[T]) (Matrix[T], error) {
	if m.Rows() != 0 && col.Len() != m.Rows() {
		return Matrix[T]{}, mixerr.InvalidInput("column length %d does not match row count %d", col.Len(), m.Rows())
	}
	rows := make([][]T, col.Len())
	for i := 0; i < col.Len(); i++ {
		row := make([]T, m.cols+1)
		if m.Rows() != 0 {
			copy(row, m.rows[i].Slice())
		}
		row[m.cols] = col.Get(i)
		rows[i] = row
	}
	return NewMatrix(rows)
}

// ToVector flattens the matrix row-major.
func (m Matrix[T]) ToVector() Vector[T] {
	out := make([]T, 0, m.Rows()*m.cols)
	for _, row := range m.rows {
		out = append(out, row.Slice()...)
	}
	return New(out)
}
