package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/BoxFit/internal/model"
)

// parseDims reads "LxWxH". Whitespace is ignored and x, X or * separate
// the sides.
func parseDims(s string) (model.Dims, error) {
	clean := strings.Join(strings.Fields(s), "")
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == 'x' || r == 'X' || r == '*'
	})
	if len(parts) != 3 {
		return model.Dims{}, fmt.Errorf("invalid dimensions %q: expected LxWxH", s)
	}

	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return model.Dims{}, fmt.Errorf("invalid dimensions %q: %q is not a number", s, p)
		}
		v[i] = f
	}
	d := model.Dims{L: v[0], W: v[1], H: v[2]}
	if !d.Valid() {
		return model.Dims{}, fmt.Errorf("invalid dimensions %q: every side must be greater than 0", s)
	}
	return d, nil
}

// parseItemSpec reads "LxWxH[:QTY[:LABEL]]". The label may itself contain
// colons.
func parseItemSpec(s string, n int) (model.Item, error) {
	parts := strings.SplitN(s, ":", 3)
	d, err := parseDims(parts[0])
	if err != nil {
		return model.Item{}, err
	}

	qty := 1
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		qty, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || qty < 1 {
			return model.Item{}, fmt.Errorf("invalid quantity %q in item %q", parts[1], s)
		}
	}

	label := fmt.Sprintf("Item %d", n)
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		label = strings.TrimSpace(parts[2])
	}
	return model.NewItem(label, d.L, d.W, d.H, qty), nil
}

// parseCandidateSpec reads "LxWxH[:LABEL]".
func parseCandidateSpec(s string, n int) (model.Box, error) {
	parts := strings.SplitN(s, ":", 2)
	d, err := parseDims(parts[0])
	if err != nil {
		return model.Box{}, err
	}
	label := fmt.Sprintf("Candidate %d", n)
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		label = strings.TrimSpace(parts[1])
	}
	return model.NewBox(label, d.L, d.W, d.H), nil
}

// itemsToCm converts item dimensions from u to centimetres.
func itemsToCm(items []model.Item, u model.Unit) []model.Item {
	out := make([]model.Item, len(items))
	for i, it := range items {
		it.L = model.ToCm(it.L, u)
		it.W = model.ToCm(it.W, u)
		it.H = model.ToCm(it.H, u)
		out[i] = it
	}
	return out
}

// boxesToCm converts box dimensions from u to centimetres.
func boxesToCm(boxes []model.Box, u model.Unit) []model.Box {
	out := make([]model.Box, len(boxes))
	for i, b := range boxes {
		b.L = model.ToCm(b.L, u)
		b.W = model.ToCm(b.W, u)
		b.H = model.ToCm(b.H, u)
		out[i] = b
	}
	return out
}
