package engine

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/BoxFit/internal/model"
)

// FindSmallest packs the items into every candidate box and ranks the boxes
// by volume, then length, width, height and input order. Best is the first
// ranked box that holds every piece.
//
// Candidate runs are independent. Up to Settings.Workers of them run at
// once; the ranking is identical whatever the worker count. Any invalid
// candidate or packing error fails the whole call.
func (p *Packer) FindSmallest(ctx context.Context, candidates []model.Box, items []model.Item) (model.FinderResult, error) {
	if len(candidates) == 0 {
		return model.FinderResult{}, ErrNoCandidates
	}

	dims := make([]model.Dims, len(candidates))
	for i, c := range candidates {
		d := c.Dims()
		if !d.Valid() {
			return model.FinderResult{}, fmt.Errorf("%w: candidate %d (%s)", ErrInvalidContainer, i+1, d)
		}
		dims[i] = d
	}

	workers := p.Settings.Workers
	if workers < 1 {
		workers = 1
	}

	ranked := make([]model.RankEntry, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := p.Pack(dims[i], items)
			if err != nil {
				return fmt.Errorf("candidate %d: %w", i+1, err)
			}

			label := candidates[i].Label
			if label == "" {
				label = fmt.Sprintf("Candidate %d", i+1)
			}
			ranked[i] = model.RankEntry{
				CandidateIndex: i,
				Candidate:      dims[i],
				Label:          label,
				Volume:         dims[i].Volume(),
				Fits:           result.Success,
				Result:         result,
			}
			p.log.Debug("candidate evaluated", "label", label, "dims", dims[i].String(), "fits", result.Success)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.FinderResult{}, err
	}

	slices.SortStableFunc(ranked, func(a, b model.RankEntry) int {
		return candidateKey(a).compare(candidateKey(b))
	})

	out := model.FinderResult{Ranked: ranked}
	if idx := slices.IndexFunc(ranked, func(e model.RankEntry) bool { return e.Fits }); idx >= 0 {
		best := ranked[idx]
		out.Best = &best
		out.AnyFit = true
	}
	return out, nil
}

func candidateKey(e model.RankEntry) key {
	return key{e.Volume, e.Candidate.L, e.Candidate.W, e.Candidate.H, float64(e.CandidateIndex)}
}
