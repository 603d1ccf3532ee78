package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is a linear measurement unit used at the edges of the application.
// The engine never sees it: every length is converted to centimetres first.
type Unit string

const (
	UnitInch       Unit = "in"
	UnitCentimetre Unit = "cm"
)

// InchToCm is the exact number of centimetres in one inch.
const InchToCm = 2.54

// Cm3PerIn3 is the number of cubic centimetres in one cubic inch.
var Cm3PerIn3 = math.Pow(InchToCm, 3)

// ParseUnit accepts "in"/"cm" and a few common spellings.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "inch", "inches", `"`:
		return UnitInch, nil
	case "cm", "centimetre", "centimeter", "centimetres", "centimeters":
		return UnitCentimetre, nil
	default:
		return "", fmt.Errorf("unknown unit %q (expected in or cm)", s)
	}
}

// ToCm converts a length in unit u to centimetres.
func ToCm(v float64, u Unit) float64 {
	if u == UnitInch {
		return v * InchToCm
	}
	return v
}

// FromCm converts a length in centimetres to unit u.
func FromCm(v float64, u Unit) float64 {
	if u == UnitInch {
		return v / InchToCm
	}
	return v
}

// ConvertLength converts v between two units.
func ConvertLength(v float64, from, to Unit) float64 {
	if from == to {
		return v
	}
	return FromCm(ToCm(v, from), to)
}

// DimsToCm converts all three measurements of d to centimetres.
func DimsToCm(d Dims, u Unit) Dims {
	return Dims{L: ToCm(d.L, u), W: ToCm(d.W, u), H: ToCm(d.H, u)}
}

// DimsFromCm converts all three measurements of d from centimetres to u.
func DimsFromCm(d Dims, u Unit) Dims {
	return Dims{L: FromCm(d.L, u), W: FromCm(d.W, u), H: FromCm(d.H, u)}
}

// VolumeFromCm3 converts a volume in cubic centimetres to the cube of u.
func VolumeFromCm3(v float64, u Unit) float64 {
	if u == UnitInch {
		return v / Cm3PerIn3
	}
	return v
}

// VolumeSymbol is the display suffix for volumes in unit u.
func VolumeSymbol(u Unit) string {
	if u == UnitInch {
		return "in^3"
	}
	return "cm^3"
}

// DimensionalWeight returns volume / divisor, the billable weight carriers
// charge for bulky parcels. The second result is false when either argument
// is not a finite positive number.
func DimensionalWeight(volume, divisor float64) (float64, bool) {
	if !isPositive(volume) || !isPositive(divisor) {
		return 0, false
	}
	return volume / divisor, true
}

// DimWeightFromCm3 returns the dimensional weight in pounds of a volume given
// in cubic centimetres. divisor is in cubic inches per pound (139 for most US
// carriers) whatever unit the lengths are displayed in.
func DimWeightFromCm3(cm3, divisor float64) (float64, bool) {
	return DimensionalWeight(VolumeFromCm3(cm3, UnitInch), divisor)
}

// FormatLength renders a centimetre length in unit u with two decimals.
func FormatLength(cm float64, u Unit) string {
	return strconv.FormatFloat(FromCm(cm, u), 'f', 2, 64)
}

// FormatDims renders centimetre dims in unit u, e.g. "6.00 x 4.00 x 4.00 in".
func FormatDims(d Dims, u Unit) string {
	return FormatLength(d.L, u) + " x " + FormatLength(d.W, u) + " x " + FormatLength(d.H, u) + " " + string(u)
}

// FormatVolume renders a cubic-centimetre volume in the cube of unit u.
func FormatVolume(cm3 float64, u Unit) string {
	return strconv.FormatFloat(VolumeFromCm3(cm3, u), 'f', 2, 64) + " " + VolumeSymbol(u)
}

// ToUnit converts every length and volume of a centimetre result into unit
// u. Percentages and counts are unchanged.
func (r PackResult) ToUnit(u Unit) PackResult {
	out := r
	out.Container = DimsFromCm(r.Container, u)
	out.ContainerVolume = VolumeFromCm3(r.ContainerVolume, u)
	out.UsedVolume = VolumeFromCm3(r.UsedVolume, u)
	out.UnusedVolume = VolumeFromCm3(r.UnusedVolume, u)

	out.Placements = make([]Placement, len(r.Placements))
	for i, p := range r.Placements {
		p.Position = Point3D{X: FromCm(p.Position.X, u), Y: FromCm(p.Position.Y, u), Z: FromCm(p.Position.Z, u)}
		p.Size = DimsFromCm(p.Size, u)
		p.OriginalSize = DimsFromCm(p.OriginalSize, u)
		p.InflatedSize = DimsFromCm(p.InflatedSize, u)
		out.Placements[i] = p
	}

	out.Unplaced = make([]Piece, len(r.Unplaced))
	for i, pc := range r.Unplaced {
		pc.Original = DimsFromCm(pc.Original, u)
		pc.Dims = DimsFromCm(pc.Dims, u)
		pc.Volume = VolumeFromCm3(pc.Volume, u)
		out.Unplaced[i] = pc
	}
	return out
}

// ToUnit converts every candidate and its pack result into unit u.
func (f FinderResult) ToUnit(u Unit) FinderResult {
	out := FinderResult{AnyFit: f.AnyFit, Ranked: make([]RankEntry, len(f.Ranked))}
	for i, e := range f.Ranked {
		e.Candidate = DimsFromCm(e.Candidate, u)
		e.Volume = VolumeFromCm3(e.Volume, u)
		e.Result = e.Result.ToUnit(u)
		out.Ranked[i] = e
	}
	if f.Best != nil {
		for i := range out.Ranked {
			if out.Ranked[i].CandidateIndex == f.Best.CandidateIndex {
				best := out.Ranked[i]
				out.Best = &best
				break
			}
		}
	}
	return out
}
