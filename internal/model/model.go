package model

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/google/uuid"
)

// Dims is an axis-aligned cuboid size: length along X, width along Y and
// height along Z. All values share the caller's unit.
type Dims struct {
	L float64 `json:"l" yaml:"l"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Volume returns l*w*h.
func (d Dims) Volume() float64 {
	return d.L * d.W * d.H
}

// MaxSide returns the largest of the three measurements.
func (d Dims) MaxSide() float64 {
	return math.Max(d.L, math.Max(d.W, d.H))
}

// Valid reports whether every measurement is finite and strictly positive.
func (d Dims) Valid() bool {
	return isPositive(d.L) && isPositive(d.W) && isPositive(d.H)
}

// Inflate grows every axis by pad on both sides.
func (d Dims) Inflate(pad float64) Dims {
	return Dims{L: d.L + 2*pad, W: d.W + 2*pad, H: d.H + 2*pad}
}

// String formats the size as "l x w x h" using the shortest exact representation.
func (d Dims) String() string {
	return formatNum(d.L) + " x " + formatNum(d.W) + " x " + formatNum(d.H)
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isPositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Point3D is a position inside a container, measured from its origin corner.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Item is one line of the packing list: a cuboid and how many copies to pack.
// Dimensions are the bare item size before padding is applied.
type Item struct {
	ID       string  `json:"id" yaml:"id"`
	Label    string  `json:"label" yaml:"label"`
	L        float64 `json:"l" yaml:"l"`
	W        float64 `json:"w" yaml:"w"`
	H        float64 `json:"h" yaml:"h"`
	Quantity int     `json:"quantity" yaml:"quantity"`
}

func NewItem(label string, l, w, h float64, qty int) Item {
	return Item{
		ID:       uuid.New().String()[:8],
		Label:    label,
		L:        l,
		W:        w,
		H:        h,
		Quantity: qty,
	}
}

// Dims returns the item's bare size.
func (it Item) Dims() Dims {
	return Dims{L: it.L, W: it.W, H: it.H}
}

// Box is a container size, either the single container of a pack run or one
// candidate of a smallest-box search.
type Box struct {
	ID    string  `json:"id" yaml:"id"`
	Label string  `json:"label" yaml:"label"`
	L     float64 `json:"l" yaml:"l"`
	W     float64 `json:"w" yaml:"w"`
	H     float64 `json:"h" yaml:"h"`
}

func NewBox(label string, l, w, h float64) Box {
	return Box{
		ID:    uuid.New().String()[:8],
		Label: label,
		L:     l,
		W:     w,
		H:     h,
	}
}

// Dims returns the interior size of the box.
func (b Box) Dims() Dims {
	return Dims{L: b.L, W: b.W, H: b.H}
}

// Piece is one physical copy of an item, inflated by the padding of the run.
type Piece struct {
	ItemID    string  `json:"item_id"`
	Label     string  `json:"label"`
	ItemIndex int     `json:"item_index"`
	CopyIndex int     `json:"copy_index"` // 1..quantity
	Original  Dims    `json:"original_dims"`
	Dims      Dims    `json:"dims"` // inflated
	Volume    float64 `json:"volume"`
}

// Placement records where one piece ended up and in which orientation.
type Placement struct {
	ItemID       string  `json:"item_id"`
	Label        string  `json:"label"`
	CopyIndex    int     `json:"copy_index"`
	Position     Point3D `json:"position"`
	Size         Dims    `json:"size"` // oriented, inflated
	OriginalSize Dims    `json:"original_size"`
	InflatedSize Dims    `json:"inflated_size"`
}

// OrientationText describes the oriented size, e.g. "6 x 4 x 4".
func (p Placement) OrientationText() string {
	return p.Size.String()
}

// Max returns the far corner of the placed region.
func (p Placement) Max() Point3D {
	return Point3D{
		X: p.Position.X + p.Size.L,
		Y: p.Position.Y + p.Size.W,
		Z: p.Position.Z + p.Size.H,
	}
}

// Overlaps reports whether two placed regions share interior volume.
// Touching faces do not count as overlap.
func (p Placement) Overlaps(o Placement, eps float64) bool {
	a, b := p.Max(), o.Max()
	return p.Position.X < b.X-eps && o.Position.X < a.X-eps &&
		p.Position.Y < b.Y-eps && o.Position.Y < a.Y-eps &&
		p.Position.Z < b.Z-eps && o.Position.Z < a.Z-eps
}

// LayoutIssue is a defect found when re-checking a finished layout: a
// placement sticking out of the container, or two placements sharing volume.
type LayoutIssue struct {
	Kind       string  `json:"kind"` // "bounds" or "overlap"
	Placement  int     `json:"placement"`
	Label      string  `json:"label"`
	Other      int     `json:"other,omitempty"` // overlap only
	OtherLabel string  `json:"other_label,omitempty"`
	Amount     float64 `json:"amount"` // overshoot along the worst axis, or overlap volume
}

// PackResult is the outcome of packing one container.
type PackResult struct {
	Success         bool        `json:"success"`
	Container       Dims        `json:"container"`
	ContainerVolume float64     `json:"container_volume"`
	UsedVolume      float64     `json:"used_volume"`
	UnusedVolume    float64     `json:"unused_volume"`
	Efficiency      float64     `json:"efficiency"` // percent
	TotalItems      int         `json:"total_items"`
	PlacedCount     int         `json:"placed_count"`
	UnplacedCount   int         `json:"unplaced_count"`
	Placements      []Placement `json:"placements"`
	Unplaced        []Piece     `json:"unplaced"`
	FreeSpaceCount  int         `json:"free_space_count"`
}

// Layers returns the distinct z origins of all placements, ascending.
// Each one is the floor of a horizontal slice worth drawing.
func (r PackResult) Layers() []float64 {
	var zs []float64
	for _, p := range r.Placements {
		if !slices.Contains(zs, p.Position.Z) {
			zs = append(zs, p.Position.Z)
		}
	}
	slices.Sort(zs)
	return zs
}

// PlacementsInLayer returns the placements whose vertical extent covers z.
func (r PackResult) PlacementsInLayer(z float64) []Placement {
	var out []Placement
	for _, p := range r.Placements {
		if p.Position.Z <= z && z < p.Position.Z+p.Size.H {
			out = append(out, p)
		}
	}
	return out
}

// RankEntry is one candidate box of a smallest-box search together with its
// full pack result.
type RankEntry struct {
	CandidateIndex int        `json:"candidate_index"`
	Candidate      Dims       `json:"candidate"`
	Label          string     `json:"label"`
	Volume         float64    `json:"volume"`
	Fits           bool       `json:"fits"`
	Result         PackResult `json:"result"`
}

// FinderResult holds every candidate ranked by size and the smallest one
// that fits all items, if any.
type FinderResult struct {
	Ranked []RankEntry `json:"ranked"`
	Best   *RankEntry  `json:"best,omitempty"`
	AnyFit bool        `json:"any_fit"`
}

// Project ties the inputs of a run together for save/load.
type Project struct {
	Name       string  `json:"name"`
	Unit       Unit    `json:"unit"`
	Padding    float64 `json:"padding"`
	Container  *Box    `json:"container,omitempty"`
	Items      []Item  `json:"items"`
	Candidates []Box   `json:"candidates"`
}

func NewProject() Project {
	return Project{
		Name:       "Untitled",
		Unit:       UnitInch,
		Items:      []Item{},
		Candidates: []Box{},
	}
}

// Validate checks that the project can be run in at least one mode.
func (p Project) Validate() error {
	if len(p.Items) == 0 {
		return fmt.Errorf("project %q has no items", p.Name)
	}
	if p.Container == nil && len(p.Candidates) == 0 {
		return fmt.Errorf("project %q has neither a container nor candidates", p.Name)
	}
	return nil
}
