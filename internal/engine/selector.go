package engine

import "github.com/piwi3910/BoxFit/internal/model"

// choice is the best (space, orientation) pair found for a piece.
type choice struct {
	space         space
	rotation      model.Dims
	rotationIndex int
	score         key
}

// placementScore ranks a candidate placement: least wasted volume, then
// least total slack, then lowest/backmost/leftmost space, then earliest
// orientation.
func placementScore(s space, p model.Piece, r model.Dims, ri int) key {
	waste := s.volume() - p.Volume
	slack := (s.l - r.L) + (s.w - r.W) + (s.h - r.H)
	return key{waste, slack, s.z, s.y, s.x, float64(ri)}
}

// selectPlacement scans the spaces in the given order and every orientation
// of the piece, returning the lowest-scoring fit. ok is false when the piece
// fits nowhere.
func selectPlacement(p model.Piece, ordered []space) (best choice, ok bool) {
	rotations := Rotations(p.Dims)

	for _, s := range ordered {
		if p.Volume > s.volume()+eps {
			continue
		}
		for ri, r := range rotations {
			if !fits(s, r) {
				continue
			}
			score := placementScore(s, p, r, ri)
			if !ok || score.less(best.score) {
				best = choice{space: s, rotation: r, rotationIndex: ri, score: score}
				ok = true
			}
		}
	}
	return best, ok
}
