package hashing

import "math/big"

// Hashable is the tagged variant recursiveHash dispatches on, per spec
// §4.5/§9's "Hashable variants": a byte array, a big integer, a string, or
// a finite list of Hashable (recursion).
type Hashable interface {
	isHashable()
}

// Bytes is a raw byte-array leaf.
type Bytes []byte

func (Bytes) isHashable() {}

// BigInt is a big-integer leaf.
type BigInt struct{ Value *big.Int }

func (BigInt) isHashable() {}

// Str is a string leaf.
type Str string

func (Str) isHashable() {}

// List is a nested list of Hashable values. recursiveHash commits to list
// structure, so List{a, List{b, c}} hashes differently than List{a, b, c}
// (spec §4.5).
type List []Hashable

func (List) isHashable() {}

// Int wraps a machine int as a BigInt leaf, for small literal domain tags
// like the counters in commitment-key derivation (spec §4.2).
func Int(i int) Hashable { return BigInt{Value: big.NewInt(int64(i))} }

// valued is satisfied by group.GqElement and group.ZqElement without this
// package importing group (which would invert the dependency the teacher's
// layering implies: group is a lower-level collaborator than hashing's
// consumers).
type valued interface {
	Value() *big.Int
}

// Valued wraps anything exposing Value() *big.Int (group.GqElement,
// group.ZqElement, ...) as a BigInt leaf.
func Valued(v valued) Hashable { return BigInt{Value: v.Value()} }

// ValuedList wraps a slice of valued elements as a List of BigInt leaves.
func ValuedList[T valued](vs []T) Hashable {
	out := make(List, len(vs))
	for i, v := range vs {
		out[i] = Valued(v)
	}
	return out
}
