package engine

import (
	"cmp"

	"github.com/piwi3910/BoxFit/internal/model"
)

// eps absorbs the rounding that builds up from repeated space splitting.
// It is an absolute tolerance on every fit, containment and prune check.
const eps = 1e-9

// rotationOrder lists the six axis permutations in their canonical order.
// The index into the de-duplicated result of Rotations is the last
// tie-break of placement scoring, so this order must not change.
var rotationOrder = [6][3]int{
	{0, 1, 2}, // l w h
	{0, 2, 1}, // l h w
	{1, 0, 2}, // w l h
	{1, 2, 0}, // w h l
	{2, 0, 1}, // h l w
	{2, 1, 0}, // h w l
}

// Rotations returns the unique axis-aligned orientations of d in canonical
// order. A cube yields one orientation, a square prism three, and a cuboid
// with three distinct sides all six.
func Rotations(d model.Dims) []model.Dims {
	axes := [3]float64{d.L, d.W, d.H}
	out := make([]model.Dims, 0, len(rotationOrder))
	for _, perm := range rotationOrder {
		r := model.Dims{L: axes[perm[0]], W: axes[perm[1]], H: axes[perm[2]]}
		dup := false
		for _, seen := range out {
			if seen == r {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r)
		}
	}
	return out
}

// fits reports whether d fits inside s along every axis.
func fits(s space, d model.Dims) bool {
	return d.L <= s.l+eps &&
		d.W <= s.w+eps &&
		d.H <= s.h+eps
}

// contains reports whether inner lies entirely within outer.
func contains(outer, inner space) bool {
	return outer.x <= inner.x+eps &&
		outer.y <= inner.y+eps &&
		outer.z <= inner.z+eps &&
		outer.x+outer.l+eps >= inner.x+inner.l &&
		outer.y+outer.w+eps >= inner.y+inner.w &&
		outer.z+outer.h+eps >= inner.z+inner.h
}

// key is an ordered tuple compared element by element. It is the single
// ordering primitive for pieces, spaces, placement scores and candidates.
type key []float64

// compare returns -1, 0 or +1 in lexicographic order. Both keys must have
// the same length.
func (k key) compare(o key) int {
	for i := range k {
		if c := cmp.Compare(k[i], o[i]); c != 0 {
			return c
		}
	}
	return 0
}

// less reports whether k sorts strictly before o.
func (k key) less(o key) bool {
	return k.compare(o) < 0
}
