package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/BoxFit/internal/model"
)

// Layout issue kinds.
const (
	IssueBounds  = "bounds"
	IssueOverlap = "overlap"
)

// CheckLayout re-checks a finished pack result independently of the packer:
// every placement must lie inside the container and no two placements may
// share volume. Touching faces are fine. A result from Pack yields no
// issues; the check exists for results read back from files or edited by
// hand.
func CheckLayout(r model.PackResult) []model.LayoutIssue {
	var issues []model.LayoutIssue

	for i, p := range r.Placements {
		if over := outOfBounds(p, r.Container); over > eps {
			issues = append(issues, model.LayoutIssue{
				Kind:      IssueBounds,
				Placement: i,
				Label:     p.Label,
				Amount:    over,
			})
		}
	}

	for i := range r.Placements {
		for j := i + 1; j < len(r.Placements); j++ {
			a, b := r.Placements[i], r.Placements[j]
			if !a.Overlaps(b, eps) {
				continue
			}
			issues = append(issues, model.LayoutIssue{
				Kind:       IssueOverlap,
				Placement:  i,
				Label:      a.Label,
				Other:      j,
				OtherLabel: b.Label,
				Amount:     overlapVolume(a, b),
			})
		}
	}
	return issues
}

// outOfBounds returns how far p sticks out of a container anchored at the
// origin, measured along the worst axis. Zero means inside.
func outOfBounds(p model.Placement, c model.Dims) float64 {
	m := p.Max()
	return max(
		-p.Position.X, -p.Position.Y, -p.Position.Z,
		m.X-c.L, m.Y-c.W, m.Z-c.H,
		0,
	)
}

func overlapVolume(a, b model.Placement) float64 {
	am, bm := a.Max(), b.Max()
	dx := math.Min(am.X, bm.X) - math.Max(a.Position.X, b.Position.X)
	dy := math.Min(am.Y, bm.Y) - math.Max(a.Position.Y, b.Position.Y)
	dz := math.Min(am.Z, bm.Z) - math.Max(a.Position.Z, b.Position.Z)
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return 0
	}
	return dx * dy * dz
}

// FormatLayoutIssues produces one human-readable line per issue. Amounts are
// printed in the unit of the result.
func FormatLayoutIssues(issues []model.LayoutIssue) []string {
	var lines []string
	for _, is := range issues {
		switch is.Kind {
		case IssueBounds:
			lines = append(lines, fmt.Sprintf("Placement %d (%s) extends %.4f beyond the container", is.Placement+1, is.Label, is.Amount))
		case IssueOverlap:
			lines = append(lines, fmt.Sprintf("Placements %d (%s) and %d (%s) overlap by %.4f cubic units",
				is.Placement+1, is.Label, is.Other+1, is.OtherLabel, is.Amount))
		}
	}
	return lines
}
