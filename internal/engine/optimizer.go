package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/piwi3910/BoxFit/internal/model"
)

// Settings configures a Packer. All lengths share the unit of the
// container and items they are used with.
type Settings struct {
	// Padding inflates every item on all six faces, e.g. the wall
	// thickness of the inner carton. Must be >= 0.
	Padding float64
	// Workers bounds the number of candidate boxes FindSmallest packs
	// concurrently. Values <= 1 pack them one after another.
	Workers int
}

// Packer runs the 3D bin-packing heuristic. A Packer holds no state
// between calls and is safe for concurrent use.
type Packer struct {
	Settings Settings
	log      *slog.Logger
}

func New(settings Settings) *Packer {
	return &Packer{
		Settings: settings,
		log:      slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the logger used for debug output and returns p.
func (p *Packer) WithLogger(l *slog.Logger) *Packer {
	if l != nil {
		p.log = l
	}
	return p
}

// Pack places copies of items into a single container. Running out of room
// is a normal outcome reported through PackResult.Success; an error is
// returned only for invalid input.
//
// Pieces are tried largest first. As soon as one piece fits nowhere, it and
// every piece after it are reported unplaced; smaller pieces are not tried
// out of order.
func (p *Packer) Pack(container model.Dims, items []model.Item) (model.PackResult, error) {
	if !container.Valid() {
		return model.PackResult{}, fmt.Errorf("%w: got %s", ErrInvalidContainer, container)
	}
	if !validPadding(p.Settings.Padding) {
		return model.PackResult{}, fmt.Errorf("%w: padding must be 0 or greater, got %v", ErrInvalidPadding, p.Settings.Padding)
	}
	if len(items) == 0 {
		return model.PackResult{}, ErrNoItems
	}

	pieces, err := expandItems(items, p.Settings.Padding)
	if err != nil {
		return model.PackResult{}, err
	}
	p.log.Debug("packing container", "container", container.String(), "pieces", len(pieces), "padding", p.Settings.Padding)

	store := newSpaceStore(container)
	placements := make([]model.Placement, 0, len(pieces))
	unplaced := []model.Piece{}
	usedVolume := 0.0

	for i, piece := range pieces {
		best, ok := selectPlacement(piece, store.ordered())
		if !ok {
			unplaced = append(unplaced, pieces[i:]...)
			break
		}

		parent, err := store.take(best.space.id)
		if err != nil {
			return model.PackResult{}, err
		}

		placements = append(placements, model.Placement{
			ItemID:       piece.ItemID,
			Label:        piece.Label,
			CopyIndex:    piece.CopyIndex,
			Position:     model.Point3D{X: parent.x, Y: parent.y, Z: parent.z},
			Size:         best.rotation,
			OriginalSize: piece.Original,
			InflatedSize: piece.Dims,
		})
		usedVolume += piece.Volume

		store.merge(store.split(parent, best.rotation))
	}

	containerVolume := container.Volume()
	efficiency := 0.0
	if containerVolume > 0 {
		efficiency = usedVolume / containerVolume * 100
	}

	result := model.PackResult{
		Success:         len(unplaced) == 0,
		Container:       container,
		ContainerVolume: containerVolume,
		UsedVolume:      usedVolume,
		UnusedVolume:    math.Max(containerVolume-usedVolume, 0),
		Efficiency:      efficiency,
		TotalItems:      len(pieces),
		PlacedCount:     len(placements),
		UnplacedCount:   len(unplaced),
		Placements:      placements,
		Unplaced:        unplaced,
		FreeSpaceCount:  store.len(),
	}
	p.log.Debug("packed container",
		"container", container.String(),
		"placed", result.PlacedCount,
		"unplaced", result.UnplacedCount,
		"free_spaces", result.FreeSpaceCount,
	)
	return result, nil
}
