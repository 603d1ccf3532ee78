package model

import "math"

// VolumeEstimate is a quick, packing-free sanity check of a load against a
// single box. Lower bounds only: a real pack can need more boxes.
type VolumeEstimate struct {
	TotalItemVolume float64 `json:"total_item_volume"` // inflated by padding
	BoxVolume       float64 `json:"box_volume"`
	BoxesNeededMin  int     `json:"boxes_needed_min"` // ceiling of item volume / box volume
	FillPercent     float64 `json:"fill_percent"`     // of a single box, may exceed 100
	DimWeight       float64 `json:"dim_weight"`       // lb per box, 0 when not requested
	HasDimWeight    bool    `json:"has_dim_weight"`
}

// EstimateVolume sums the padded volume of every copy of items and compares
// it with box. Lengths are centimetres. divisor is in cubic inches per pound
// as for DimWeightFromCm3; divisor <= 0 skips the dimensional weight.
func EstimateVolume(items []Item, box Dims, padding, divisor float64) VolumeEstimate {
	var total float64
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		total += it.Dims().Inflate(padding).Volume() * float64(it.Quantity)
	}

	est := VolumeEstimate{
		TotalItemVolume: total,
		BoxVolume:       box.Volume(),
	}
	if est.BoxVolume > 0 {
		est.FillPercent = total / est.BoxVolume * 100
		est.BoxesNeededMin = int(math.Ceil(total / est.BoxVolume))
	}
	est.DimWeight, est.HasDimWeight = DimWeightFromCm3(est.BoxVolume, divisor)
	return est
}
