package group

import "strings"

// Equal reports whether v and w hold equal-length, pointwise-equal
// elements in the same group.
func (v GqVector) Equal(w GqVector) bool {
	if v.Len() != w.Len() {
		return false
	}
	if v.Len() > 0 && !v.Group().Equal(w.Group()) {
		return false
	}
	for i := 0; i < v.Len(); i++ {
		if !v.Get(i).Equal(w.Get(i)) {
			return false
		}
	}
	return true
}

// String renders v as a bracketed, comma-separated list of its elements'
// decimal values.
func (v GqVector) String() string {
	parts := make([]string, v.Len())
	for i := range parts {
		parts[i] = v.Get(i).String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal reports whether v and w hold equal-length, pointwise-equal
// elements in the same field.
func (v ZqVector) Equal(w ZqVector) bool {
	if v.Len() != w.Len() {
		return false
	}
	if v.Len() > 0 && !v.Group().Equal(w.Group()) {
		return false
	}
	for i := 0; i < v.Len(); i++ {
		if !v.Get(i).Equal(w.Get(i)) {
			return false
		}
	}
	return true
}

// String renders v as a bracketed, comma-separated list of its elements'
// decimal values.
func (v ZqVector) String() string {
	parts := make([]string, v.Len())
	for i := range parts {
		parts[i] = v.Get(i).String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal reports whether m and n hold equal-shape, pointwise-equal
// elements.
func (m GqMatrix) Equal(n GqMatrix) bool {
	if m.Rows() != n.Rows() || m.Columns() != n.Columns() {
		return false
	}
	for i := 0; i < m.Rows(); i++ {
		if !m.Row(i).Equal(n.Row(i)) {
			return false
		}
	}
	return true
}

// String renders m as a bracketed list of its rows' String forms.
func (m GqMatrix) String() string {
	parts := make([]string, m.Rows())
	for i := range parts {
		parts[i] = m.Row(i).String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal reports whether m and n hold equal-shape, pointwise-equal
// elements.
func (m ZqMatrix) Equal(n ZqMatrix) bool {
	if m.Rows() != n.Rows() || m.Columns() != n.Columns() {
		return false
	}
	for i := 0; i < m.Rows(); i++ {
		if !m.Row(i).Equal(n.Row(i)) {
			return false
		}
	}
	return true
}

// String renders m as a bracketed list of its rows' String forms.
func (m ZqMatrix) String() string {
	parts := make([]string, m.Rows())
	for i := range parts {
		parts[i] = m.Row(i).String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
