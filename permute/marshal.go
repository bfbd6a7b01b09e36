package permute

import "encoding/json"

// MarshalJSON encodes p as a plain JSON array of its mapping, no group
// context needed since a permutation is just integers.
func (p Permutation) MarshalJSON() ([]byte, error) { return json.Marshal(p.mapping) }

// UnmarshalJSON decodes into p from a JSON array of integers, validating
// that it is a bijection.
func (p *Permutation) UnmarshalJSON(b []byte) error {
	var mapping []int
	if err := json.Unmarshal(b, &mapping); err != nil {
		return err
	}
	decoded, err := NewPermutation(mapping)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}
