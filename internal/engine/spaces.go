package engine

import (
	"fmt"
	"slices"

	"github.com/piwi3910/BoxFit/internal/model"
)

// space is an empty axis-aligned region of the container. The id only
// serves to find the space again after a sorted copy was handed out.
type space struct {
	id      int
	x, y, z float64
	l, w, h float64
}

func (s space) volume() float64 {
	return s.l * s.w * s.h
}

// orderKey favours spaces near the floor, then the back, then the left
// wall, then the smallest and narrowest.
func (s space) orderKey() key {
	return key{s.z, s.y, s.x, s.volume(), s.l, s.w, s.h}
}

// dedupKey folds spaces that differ only by float noise.
func (s space) dedupKey() string {
	return fmt.Sprintf("%.8f|%.8f|%.8f|%.8f|%.8f|%.8f", s.x, s.y, s.z, s.l, s.w, s.h)
}

func (s space) degenerate() bool {
	return s.l <= eps || s.w <= eps || s.h <= eps
}

// spaceStore owns the free spaces of a single pack attempt.
type spaceStore struct {
	spaces []space
	nextID int
}

func newSpaceStore(container model.Dims) *spaceStore {
	st := &spaceStore{nextID: 1}
	st.spaces = []space{st.alloc(0, 0, 0, container.L, container.W, container.H)}
	return st
}

func (st *spaceStore) alloc(x, y, z, l, w, h float64) space {
	s := space{id: st.nextID, x: x, y: y, z: z, l: l, w: w, h: h}
	st.nextID++
	return s
}

// len returns the number of free spaces currently tracked.
func (st *spaceStore) len() int {
	return len(st.spaces)
}

// ordered returns a sorted copy of the store in selection order.
func (st *spaceStore) ordered() []space {
	out := slices.Clone(st.spaces)
	slices.SortStableFunc(out, func(a, b space) int {
		return a.orderKey().compare(b.orderKey())
	})
	return out
}

// take removes the space with the given id and returns it.
func (st *spaceStore) take(id int) (space, error) {
	idx := slices.IndexFunc(st.spaces, func(s space) bool { return s.id == id })
	if idx < 0 {
		return space{}, fmt.Errorf("%w: free space %d not found", ErrInternalState, id)
	}
	s := st.spaces[idx]
	st.spaces = slices.Delete(st.spaces, idx, idx+1)
	return s, nil
}

// split carves a placed box of size d out of the origin corner of parent
// and returns the up to three guillotine remainders: along the length at
// full width and height, along the width under the placed length, and
// above the placed footprint.
func (st *spaceStore) split(parent space, d model.Dims) []space {
	var children []space

	remL := parent.l - d.L
	remW := parent.w - d.W
	remH := parent.h - d.H

	if remL > eps {
		children = append(children, st.alloc(
			parent.x+d.L, parent.y, parent.z,
			remL, parent.w, parent.h,
		))
	}
	if remW > eps {
		children = append(children, st.alloc(
			parent.x, parent.y+d.W, parent.z,
			d.L, remW, parent.h,
		))
	}
	if remH > eps {
		children = append(children, st.alloc(
			parent.x, parent.y, parent.z+d.H,
			d.L, d.W, remH,
		))
	}
	return children
}

// merge adds children to the store and prunes the result.
func (st *spaceStore) merge(children []space) {
	st.spaces = pruneSpaces(append(st.spaces, children...))
}

// pruneSpaces drops degenerate spaces, folds numeric duplicates, and then
// removes every space wholly contained in another one. The containment pass
// compares each survivor of the dedup step against all the others.
func pruneSpaces(spaces []space) []space {
	seen := make(map[string]bool, len(spaces))
	filtered := make([]space, 0, len(spaces))
	for _, s := range spaces {
		if s.degenerate() {
			continue
		}
		k := s.dedupKey()
		if seen[k] {
			continue
		}
		seen[k] = true
		filtered = append(filtered, s)
	}

	kept := make([]space, 0, len(filtered))
	for i, a := range filtered {
		contained := false
		for j, b := range filtered {
			if i != j && contains(b, a) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}
