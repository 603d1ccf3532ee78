package model

import "github.com/google/uuid"

// BoxPreset is a named, reusable box size expressed in its own unit.
type BoxPreset struct {
	ID   string  `json:"id" yaml:"id"`
	Name string  `json:"name" yaml:"name"`
	L    float64 `json:"l" yaml:"l"`
	W    float64 `json:"w" yaml:"w"`
	H    float64 `json:"h" yaml:"h"`
	Unit Unit    `json:"unit" yaml:"unit"`
}

// NewBoxPreset creates a preset with a generated ID.
func NewBoxPreset(name string, l, w, h float64, unit Unit) BoxPreset {
	return BoxPreset{
		ID:   uuid.New().String()[:8],
		Name: name,
		L:    l,
		W:    w,
		H:    h,
		Unit: unit,
	}
}

// Box converts the preset into a Box measured in unit u.
func (p BoxPreset) Box(u Unit) Box {
	from := p.Unit
	if from == "" {
		from = UnitInch
	}
	return Box{
		ID:    p.ID,
		Label: p.Name,
		L:     ConvertLength(p.L, from, u),
		W:     ConvertLength(p.W, from, u),
		H:     ConvertLength(p.H, from, u),
	}
}

// PresetStore holds a collection of box presets.
type PresetStore struct {
	Boxes []BoxPreset `json:"boxes" yaml:"boxes"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{Boxes: []BoxPreset{}}
}

// DefaultPresets returns the built-in shipping box sizes.
func DefaultPresets() PresetStore {
	return PresetStore{
		Boxes: []BoxPreset{
			{ID: "mailer-6-4-4", Name: "Small Mailer 6 x 4 x 4 in", L: 6, W: 4, H: 4, Unit: UnitInch},
			{ID: "mailer-8-6-4", Name: "Mailer 8 x 6 x 4 in", L: 8, W: 6, H: 4, Unit: UnitInch},
			{ID: "ship-12-10-8", Name: "Shipping 12 x 10 x 8 in", L: 12, W: 10, H: 8, Unit: UnitInch},
			{ID: "ship-14-10-8", Name: "Shipping 14 x 10 x 8 in", L: 14, W: 10, H: 8, Unit: UnitInch},
			{ID: "ship-16-12-10", Name: "Shipping 16 x 12 x 10 in", L: 16, W: 12, H: 10, Unit: UnitInch},
			{ID: "euro-35-25-15", Name: "Euro Carton 35 x 25 x 15 cm", L: 35, W: 25, H: 15, Unit: UnitCentimetre},
		},
	}
}

// Add adds a preset to the store.
func (ps *PresetStore) Add(p BoxPreset) {
	ps.Boxes = append(ps.Boxes, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Boxes {
		if p.ID == id {
			ps.Boxes = append(ps.Boxes[:i], ps.Boxes[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *BoxPreset {
	for i := range ps.Boxes {
		if ps.Boxes[i].ID == id {
			return &ps.Boxes[i]
		}
	}
	return nil
}

// Names returns the preset names in store order.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Boxes))
	for i, p := range ps.Boxes {
		names[i] = p.Name
	}
	return names
}

// AsBoxes converts every preset into a Box in unit u, keeping store order.
func (ps *PresetStore) AsBoxes(u Unit) []Box {
	boxes := make([]Box, len(ps.Boxes))
	for i, p := range ps.Boxes {
		boxes[i] = p.Box(u)
	}
	return boxes
}
