package engine

import (
	"fmt"
	"math"
	"slices"

	"github.com/piwi3910/BoxFit/internal/model"
)

// expandItems turns the packing list into individual inflated pieces, in
// placement priority order: largest volume first, then longest side, then
// input order and copy number.
func expandItems(items []model.Item, padding float64) ([]model.Piece, error) {
	var pieces []model.Piece

	for i, item := range items {
		raw := item.Dims()
		if !raw.Valid() {
			return nil, fmt.Errorf("%w: item %d (%s)", ErrInvalidItem, i+1, raw)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d has quantity %d", ErrInvalidQuantity, i+1, item.Quantity)
		}

		inflated := raw.Inflate(padding)
		if !inflated.Valid() {
			return nil, fmt.Errorf("%w: padding makes item %d dimensions invalid (%s)", ErrInvalidPadding, i+1, inflated)
		}

		id := item.ID
		if id == "" {
			id = fmt.Sprintf("item-%d", i+1)
		}
		label := item.Label
		if label == "" {
			label = fmt.Sprintf("Item %d", i+1)
		}

		for copyIdx := 1; copyIdx <= item.Quantity; copyIdx++ {
			pieces = append(pieces, model.Piece{
				ItemID:    id,
				Label:     label,
				ItemIndex: i,
				CopyIndex: copyIdx,
				Original:  raw,
				Dims:      inflated,
				Volume:    inflated.Volume(),
			})
		}
	}

	if len(pieces) == 0 {
		return nil, ErrNoItems
	}

	slices.SortStableFunc(pieces, func(a, b model.Piece) int {
		return pieceKey(a).compare(pieceKey(b))
	})
	return pieces, nil
}

// pieceKey orders pieces big-and-awkward first.
func pieceKey(p model.Piece) key {
	return key{-p.Volume, -p.Dims.MaxSide(), float64(p.ItemIndex), float64(p.CopyIndex)}
}

// validPadding reports whether pad is usable as an inflation amount.
func validPadding(pad float64) bool {
	return !math.IsNaN(pad) && !math.IsInf(pad, 0) && pad >= 0
}
