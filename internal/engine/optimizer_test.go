package engine

import (
	"math"
	"slices"
	"testing"

	"github.com/piwi3910/BoxFit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dims(l, w, h float64) model.Dims {
	return model.Dims{L: l, W: w, H: h}
}

func TestPack_SingleItemAtOrigin(t *testing.T) {
	p := New(Settings{})
	items := []model.Item{model.NewItem("Mug", 6, 4, 4, 1)}

	result, err := p.Pack(dims(12, 10, 8), items)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.PlacedCount)
	assert.Equal(t, 0, result.UnplacedCount)
	require.Len(t, result.Placements, 1)

	pl := result.Placements[0]
	assert.Equal(t, model.Point3D{}, pl.Position)
	assert.Contains(t, Rotations(dims(6, 4, 4)), pl.Size)
	// Equal scores everywhere, so the first orientation wins.
	assert.Equal(t, dims(6, 4, 4), pl.Size)
	assert.Equal(t, "Mug", pl.Label)
	assert.Equal(t, 1, pl.CopyIndex)
	assert.Equal(t, 3, result.FreeSpaceCount)
	assert.InDelta(t, 96, result.UsedVolume, eps)
	assert.InDelta(t, 960-96, result.UnusedVolume, eps)
	assert.InDelta(t, 10, result.Efficiency, 1e-9)
}

func TestPack_ItemLargerThanContainer(t *testing.T) {
	p := New(Settings{})
	result, err := p.Pack(dims(4, 4, 4), []model.Item{model.NewItem("Big", 5, 5, 5, 1)})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.PlacedCount)
	assert.Equal(t, 1, result.UnplacedCount)
	assert.Equal(t, 0.0, result.UsedVolume)
	assert.Equal(t, 64.0, result.UnusedVolume)
}

func TestPack_TooManyCubes(t *testing.T) {
	p := New(Settings{})
	result, err := p.Pack(dims(10, 10, 10), []model.Item{model.NewItem("Cube", 3, 3, 3, 40)})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 40, result.TotalItems)
	// 3 per axis is the most a 10-wide container can take.
	assert.Equal(t, 27, result.PlacedCount)
	assert.Equal(t, 13, result.UnplacedCount)
	assert.Equal(t, result.TotalItems, result.PlacedCount+result.UnplacedCount)
	assertValidLayout(t, result)
}

func TestPack_RotatesToFit(t *testing.T) {
	p := New(Settings{})
	// Only fits standing on its end.
	result, err := p.Pack(dims(2, 3, 10), []model.Item{model.NewItem("Pole", 10, 2, 3, 1)})
	require.NoError(t, err)

	require.True(t, result.Success)
	assert.Equal(t, dims(2, 3, 10), result.Placements[0].Size)
	assert.Equal(t, dims(10, 2, 3), result.Placements[0].OriginalSize)
}

func TestPack_FirstFailureAbortsRemaining(t *testing.T) {
	p := New(Settings{})
	items := []model.Item{
		model.NewItem("Small", 1, 1, 1, 5),
		model.NewItem("Long", 11, 1, 1, 1),
	}

	result, err := p.Pack(dims(10, 10, 10), items)
	require.NoError(t, err)

	// The long piece sorts first, fails, and takes everything with it.
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.PlacedCount)
	require.Len(t, result.Unplaced, 6)
	assert.Equal(t, "Long", result.Unplaced[0].Label)
	for i, pc := range result.Unplaced[1:] {
		assert.Equal(t, "Small", pc.Label)
		assert.Equal(t, i+1, pc.CopyIndex)
	}
}

func TestPack_PaddingInflatesPieces(t *testing.T) {
	p := New(Settings{Padding: 0.5})
	result, err := p.Pack(dims(10, 10, 10), []model.Item{model.NewItem("Book", 4, 3, 2, 1)})
	require.NoError(t, err)

	require.Len(t, result.Placements, 1)
	pl := result.Placements[0]
	assert.Equal(t, dims(4, 3, 2), pl.OriginalSize)
	assert.Equal(t, dims(5, 4, 3), pl.InflatedSize)
	assert.InDelta(t, 60, result.UsedVolume, eps)
}

func TestPack_PaddingTooLargeIsUnplacedNotError(t *testing.T) {
	p := New(Settings{Padding: 1})
	result, err := p.Pack(dims(10, 10, 10), []model.Item{model.NewItem("Vase", 9, 9, 9, 1)})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.UnplacedCount)
	assert.Equal(t, dims(11, 11, 11), result.Unplaced[0].Dims)
}

func TestPack_ZeroPaddingIsValid(t *testing.T) {
	p := New(Settings{Padding: 0})
	result, err := p.Pack(dims(2, 2, 2), []model.Item{model.NewItem("Cube", 1, 1, 1, 8)})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 8, result.PlacedCount)
	assert.InDelta(t, 100, result.Efficiency, 1e-9)
	assertValidLayout(t, result)
}

func TestPack_ExactFillWithRoundingNoise(t *testing.T) {
	p := New(Settings{})
	// 0.1 does not add up exactly in binary; eps has to absorb it.
	result, err := p.Pack(dims(0.3, 0.1, 0.1), []model.Item{model.NewItem("Chip", 0.1, 0.1, 0.1, 3)})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.PlacedCount)
}

func TestPack_PriorityOrder(t *testing.T) {
	p := New(Settings{})
	items := []model.Item{
		{ID: "a", Label: "Flat", L: 8, W: 1, H: 1, Quantity: 1},  // vol 8, max 8
		{ID: "b", Label: "Cube", L: 2, W: 2, H: 2, Quantity: 2},  // vol 8, max 2
		{ID: "c", Label: "Large", L: 3, W: 3, H: 3, Quantity: 1}, // vol 27
	}

	result, err := p.Pack(dims(20, 20, 20), items)
	require.NoError(t, err)
	require.True(t, result.Success)

	var order []string
	for _, pl := range result.Placements {
		order = append(order, pl.Label)
	}
	assert.Equal(t, []string{"Large", "Flat", "Cube", "Cube"}, order)
	assert.Equal(t, 1, result.Placements[2].CopyIndex)
	assert.Equal(t, 2, result.Placements[3].CopyIndex)
}

func TestPack_DefaultIDsAndLabels(t *testing.T) {
	p := New(Settings{})
	result, err := p.Pack(dims(5, 5, 5), []model.Item{
		{L: 1, W: 1, H: 1, Quantity: 1},
		{L: 2, W: 2, H: 2, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, result.Placements, 2)

	assert.Equal(t, "item-2", result.Placements[0].ItemID)
	assert.Equal(t, "Item 2", result.Placements[0].Label)
	assert.Equal(t, "item-1", result.Placements[1].ItemID)
	assert.Equal(t, "Item 1", result.Placements[1].Label)
}

func TestPack_Errors(t *testing.T) {
	good := []model.Item{model.NewItem("A", 1, 1, 1, 1)}

	tests := []struct {
		name      string
		padding   float64
		container model.Dims
		items     []model.Item
		want      error
	}{
		{"zero container side", 0, dims(0, 1, 1), good, ErrInvalidContainer},
		{"negative container side", 0, dims(1, -1, 1), good, ErrInvalidContainer},
		{"NaN container", 0, dims(math.NaN(), 1, 1), good, ErrInvalidContainer},
		{"infinite container", 0, dims(1, 1, math.Inf(1)), good, ErrInvalidContainer},
		{"negative padding", -0.1, dims(1, 1, 1), good, ErrInvalidPadding},
		{"NaN padding", math.NaN(), dims(1, 1, 1), good, ErrInvalidPadding},
		{"no items", 0, dims(1, 1, 1), nil, ErrNoItems},
		{"zero item side", 0, dims(1, 1, 1), []model.Item{{L: 0, W: 1, H: 1, Quantity: 1}}, ErrInvalidItem},
		{"infinite item side", 0, dims(1, 1, 1), []model.Item{{L: 1, W: math.Inf(1), H: 1, Quantity: 1}}, ErrInvalidItem},
		{"zero quantity", 0, dims(1, 1, 1), []model.Item{{L: 1, W: 1, H: 1, Quantity: 0}}, ErrInvalidQuantity},
		{"infinite padding", math.Inf(1), dims(1, 1, 1), good, ErrInvalidPadding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Settings{Padding: tt.padding}).Pack(tt.container, tt.items)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPack_InvalidItemAnywhereFailsWholeRun(t *testing.T) {
	p := New(Settings{})
	items := []model.Item{
		model.NewItem("ok", 1, 1, 1, 3),
		model.NewItem("bad", 1, -2, 1, 1),
	}
	_, err := p.Pack(dims(10, 10, 10), items)
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestPack_Deterministic(t *testing.T) {
	p := New(Settings{Padding: 0.25})
	items := mixedItems()

	first, err := p.Pack(dims(20, 15, 10), items)
	require.NoError(t, err)
	second, err := p.Pack(dims(20, 15, 10), items)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPack_LayoutInvariants(t *testing.T) {
	for _, padding := range []float64{0, 0.1, 0.25, 0.5} {
		p := New(Settings{Padding: padding})
		result, err := p.Pack(dims(20, 15, 10), mixedItems())
		require.NoError(t, err)

		assertValidLayout(t, result)
		assert.LessOrEqual(t, result.UsedVolume, result.ContainerVolume+eps)
		assert.InDelta(t, result.ContainerVolume, result.UsedVolume+result.UnusedVolume, eps)
		assert.Equal(t, result.TotalItems, result.PlacedCount+result.UnplacedCount)
		assert.Equal(t, result.UnplacedCount == 0, result.Success)
	}
}

func TestPack_MorePaddingNeverPlacesMore(t *testing.T) {
	items := []model.Item{model.NewItem("Cube", 2, 2, 2, 30)}
	prev := math.MaxInt
	for _, padding := range []float64{0, 0.5, 1, 1.5, 2.5} {
		result, err := New(Settings{Padding: padding}).Pack(dims(10, 10, 10), items)
		require.NoError(t, err)
		assert.LessOrEqual(t, result.PlacedCount, prev, "padding %v", padding)
		prev = result.PlacedCount
	}
}

func TestPack_WithLogger(t *testing.T) {
	p := New(Settings{}).WithLogger(nil)
	require.NotNil(t, p.log)
	_, err := p.Pack(dims(1, 1, 1), []model.Item{model.NewItem("A", 1, 1, 1, 1)})
	assert.NoError(t, err)
}

func mixedItems() []model.Item {
	return []model.Item{
		model.NewItem("Brick", 5, 4, 3, 6),
		model.NewItem("Stick", 7, 3, 2, 4),
		model.NewItem("Die", 2, 2, 2, 10),
		model.NewItem("Slab", 9, 6, 1, 3),
	}
}

// assertValidLayout checks that every placement sits inside the container,
// uses an orientation of its inflated size and overlaps no other placement.
func assertValidLayout(t *testing.T, r model.PackResult) {
	t.Helper()
	for i, a := range r.Placements {
		max := a.Max()
		assert.GreaterOrEqual(t, a.Position.X, -eps)
		assert.GreaterOrEqual(t, a.Position.Y, -eps)
		assert.GreaterOrEqual(t, a.Position.Z, -eps)
		assert.LessOrEqual(t, max.X, r.Container.L+eps, "placement %d exceeds length", i)
		assert.LessOrEqual(t, max.Y, r.Container.W+eps, "placement %d exceeds width", i)
		assert.LessOrEqual(t, max.Z, r.Container.H+eps, "placement %d exceeds height", i)
		assert.True(t, slices.Contains(Rotations(a.InflatedSize), a.Size), "placement %d has a foreign orientation", i)

		for j := i + 1; j < len(r.Placements); j++ {
			assert.False(t, a.Overlaps(r.Placements[j], eps), "placements %d and %d overlap", i, j)
		}
	}
}
