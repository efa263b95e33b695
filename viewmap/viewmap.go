// Package viewmap maps between real row indices (host order) and view row
// indices (after filter and sort).
//
// Columns are identity mapped; column reordering is not modeled.
package viewmap

import "slices"

// ViewMap is an immutable bidirectional row index. The zero value is the
// identity over zero rows.
type ViewMap struct {
	viewToReal []int
	realToView []int
}

// Identity returns the map where every one of n real rows is visible in
// host order.
func Identity(n int) ViewMap {
	n = max(n, 0)
	v2r := make([]int, n)
	r2v := make([]int, n)
	for i := range n {
		v2r[i] = i
		r2v[i] = i
	}
	return ViewMap{viewToReal: v2r, realToView: r2v}
}

// New builds a map from the surviving real indices in view order.
// realCount is the host row count; indices outside [0, realCount) are
// dropped.
func New(viewToReal []int, realCount int) ViewMap {
	realCount = max(realCount, 0)
	r2v := make([]int, realCount)
	for i := range r2v {
		r2v[i] = -1
	}
	v2r := make([]int, 0, len(viewToReal))
	for _, real := range viewToReal {
		if real < 0 || real >= realCount || r2v[real] >= 0 {
			continue
		}
		r2v[real] = len(v2r)
		v2r = append(v2r, real)
	}
	return ViewMap{viewToReal: v2r, realToView: r2v}
}

// Len is the number of view rows.
func (m ViewMap) Len() int { return len(m.viewToReal) }

// RealLen is the number of real rows the map was built for.
func (m ViewMap) RealLen() int { return len(m.realToView) }

// ViewToReal returns the real row shown at view row v. Unknown indices fall
// back to v.
func (m ViewMap) ViewToReal(v int) int {
	if v < 0 || v >= len(m.viewToReal) {
		return v
	}
	return m.viewToReal[v]
}

// RealToView returns the view row of real row r. Rows excluded by filtering
// and unknown indices fall back to r.
func (m ViewMap) RealToView(r int) int {
	v, ok := m.Lookup(r)
	if !ok {
		return r
	}
	return v
}

// Lookup returns the view row of real row r and whether r is visible.
func (m ViewMap) Lookup(r int) (int, bool) {
	if r < 0 || r >= len(m.realToView) {
		return 0, false
	}
	v := m.realToView[r]
	if v < 0 {
		return 0, false
	}
	return v, true
}

// Visible reports whether real row r survived filtering.
func (m ViewMap) Visible(r int) bool {
	_, ok := m.Lookup(r)
	return ok
}

// Reals returns a copy of the view-ordered real indices.
func (m ViewMap) Reals() []int { return slices.Clone(m.viewToReal) }

// Equal reports whether both maps hold the same projection.
func (m ViewMap) Equal(o ViewMap) bool {
	return slices.Equal(m.viewToReal, o.viewToReal) && len(m.realToView) == len(o.realToView)
}

// Consistent reports whether realToView is the exact inverse of viewToReal.
func (m ViewMap) Consistent() bool {
	seen := 0
	for v, r := range m.viewToReal {
		if r < 0 || r >= len(m.realToView) || m.realToView[r] != v {
			return false
		}
	}
	for _, v := range m.realToView {
		if v >= 0 {
			seen++
		}
	}
	return seen == len(m.viewToReal)
}
