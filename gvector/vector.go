// Package gvector provides the generic ordered-sequence and matrix
// containers of spec §4.1 (C1). It is deliberately ignorant of what a
// "group" is: membership and size invariants specific to a group of
// elements are enforced by typed constructors in the packages that know
// what T is (group.NewGqVector, group.NewZqVector, elgamal.NewCiphertextVector, ...),
// mirroring the way the teacher's bulletproofs/vector.go keeps its
// VectorAdd/VectorMul helpers untyped over []*big.Int and leaves range/order
// checks to the caller.
package gvector

import "github.com/bgshuffle/core/internal/mixerr"

// Vector is an immutable, ordered, fixed-length sequence of T.
type Vector[T any] struct {
	items []T
}

// New copies items into a new Vector.
func New[T any](items []T) Vector[T] {
	out := make([]T, len(items))
	copy(out, items)
	return Vector[T]{items: out}
}

// Empty returns a zero-length vector.
func Empty[T any]() Vector[T] { return Vector[T]{} }

// Len returns the number of elements.
func (v Vector[T]) Len() int { return len(v.items) }

// IsEmpty reports whether the vector has no elements.
func (v Vector[T]) IsEmpty() bool { return len(v.items) == 0 }

// Get returns the i-th element (0-indexed).
func (v Vector[T]) Get(i int) T { return v.items[i] }

// Slice returns a defensive copy of the underlying elements.
func (v Vector[T]) Slice() []T {
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

// Append returns a new vector with item appended.
func (v Vector[T]) Append(item T) Vector[T] {
	out := make([]T, len(v.items)+1)
	copy(out, v.items)
	out[len(v.items)] = item
	return Vector[T]{items: out}
}

// Prepend returns a new vector with item inserted at index 0.
func (v Vector[T]) Prepend(item T) Vector[T] {
	out := make([]T, len(v.items)+1)
	out[0] = item
	copy(out[1:], v.items)
	return Vector[T]{items: out}
}

// Concat returns the concatenation of v and other.
func (v Vector[T]) Concat(other Vector[T]) Vector[T] {
	out := make([]T, 0, len(v.items)+len(other.items))
	out = append(out, v.items...)
	out = append(out, other.items...)
	return Vector[T]{items: out}
}

// Map applies f element-wise and returns the resulting vector. f may
// return an error, in which case Map stops and propagates it.
func Map[T, U any](v Vector[T], f func(T) (U, error)) (Vector[U], error) {
	out := make([]U, len(v.items))
	for i, item := range v.items {
		u, err := f(item)
		if err != nil {
			return Vector[U]{}, err
		}
		out[i] = u
	}
	return Vector[U]{items: out}, nil
}

// Reduce folds v left-to-right starting from init.
func Reduce[T, U any](v Vector[T], init U, f func(U, T) (U, error)) (U, error) {
	acc := init
	for _, item := range v.items {
		var err error
		acc, err = f(acc, item)
		if err != nil {
			var zero U
			return zero, err
		}
	}
	return acc, nil
}

// ToMatrix reshapes v (row-major) into an m x n matrix: entry (r, c) is
// v[r*n + c]. Requires len(v) == m*n.
func ToMatrix[T any](v Vector[T], m, n int) (Matrix[T], error) {
	if m < 0 || n < 0 || m*n != v.Len() {
		return Matrix[T]{}, mixerr.InvalidInput("cannot reshape length-%d vector into %dx%d matrix", v.Len(), m, n)
	}
	rows := make([][]T, m)
	for r := 0; r < m; r++ {
		row := make([]T, n)
		copy(row, v.items[r*n:(r+1)*n])
		rows[r] = row
	}
	mat, _ := NewMatrix(rows)
	return mat, nil
}
