package export

import (
	"fmt"
	"strings"

	"github.com/piwi3910/BoxFit/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

const containerLayer = "CONTAINER"

// cuboidEdges are the 12 edges of a unit cube as pairs of corner offsets.
var cuboidEdges = [12][2][3]float64{
	{{0, 0, 0}, {1, 0, 0}}, {{0, 1, 0}, {1, 1, 0}}, {{0, 0, 1}, {1, 0, 1}}, {{0, 1, 1}, {1, 1, 1}},
	{{0, 0, 0}, {0, 1, 0}}, {{1, 0, 0}, {1, 1, 0}}, {{0, 0, 1}, {0, 1, 1}}, {{1, 0, 1}, {1, 1, 1}},
	{{0, 0, 0}, {0, 0, 1}}, {{1, 0, 0}, {1, 0, 1}}, {{0, 1, 0}, {0, 1, 1}}, {{1, 1, 0}, {1, 1, 1}},
}

// ExportDXF writes the packed layout as a 3D wireframe: the container
// outline on its own layer and each placement as a 12-line cuboid on one
// layer per item, so CAD users can toggle item types.
func ExportDXF(path string, result model.PackResult, unit model.Unit) error {
	if !result.Container.Valid() {
		return fmt.Errorf("no container to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(containerLayer, color.ColorNumber(8), dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add container layer: %w", err)
	}
	if err := drawCuboid(d, model.Point3D{}, result.Container, unit); err != nil {
		return err
	}

	layers := map[string]string{}
	for _, p := range result.Placements {
		name, ok := layers[p.ItemID]
		if !ok {
			name = itemLayerName(p, len(layers))
			// ACI 1..7 are the primary colours; 8 is kept for the container.
			aci := color.ColorNumber(len(layers)%7 + 1)
			if _, err := d.AddLayer(name, aci, dxf.DefaultLineType, false); err != nil {
				return fmt.Errorf("failed to add layer %s: %w", name, err)
			}
			layers[p.ItemID] = name
		}
		if err := d.ChangeLayer(name); err != nil {
			return fmt.Errorf("failed to switch to layer %s: %w", name, err)
		}
		if err := drawCuboid(d, p.Position, p.Size, unit); err != nil {
			return err
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}

func drawCuboid(d *drawing.Drawing, origin model.Point3D, size model.Dims, unit model.Unit) error {
	o := [3]float64{model.FromCm(origin.X, unit), model.FromCm(origin.Y, unit), model.FromCm(origin.Z, unit)}
	s := [3]float64{model.FromCm(size.L, unit), model.FromCm(size.W, unit), model.FromCm(size.H, unit)}
	for _, e := range cuboidEdges {
		a, b := e[0], e[1]
		if _, err := d.Line(
			o[0]+a[0]*s[0], o[1]+a[1]*s[1], o[2]+a[2]*s[2],
			o[0]+b[0]*s[0], o[1]+b[1]*s[1], o[2]+b[2]*s[2],
		); err != nil {
			return fmt.Errorf("failed to draw edge: %w", err)
		}
	}
	return nil
}

// itemLayerName builds a DXF-safe layer name from the item label.
func itemLayerName(p model.Placement, n int) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, p.Label)
	if clean == "" {
		clean = "ITEM"
	}
	return fmt.Sprintf("%s_%d", strings.ToUpper(clean), n+1)
}
