package catalog

import (
	"slices"
	"strings"

	"github.com/iliyamo/pitch-reservation/internal/model"
)

type predicate func(p model.Pitch) bool

// predicates returns the active filters of c in their reference order:
// city, district, min price, max price, capacity, pitch type, camera
// system, shoe rental, rating, search.
func (c Criteria) predicates() []predicate {
	var out []predicate
	if c.City != "" {
		city := c.City
		out = append(out, func(p model.Pitch) bool { return p.City == city })
	}
	if c.District != "" {
		district := c.District
		out = append(out, func(p model.Pitch) bool { return p.District == district })
	}
	if c.MinPrice != nil {
		minPrice := *c.MinPrice
		out = append(out, func(p model.Pitch) bool { return float64(p.Price) >= minPrice })
	}
	if c.MaxPrice != nil {
		maxPrice := *c.MaxPrice
		out = append(out, func(p model.Pitch) bool { return float64(p.Price) <= maxPrice })
	}
	if c.Capacity != "" {
		capacity := c.Capacity
		out = append(out, func(p model.Pitch) bool { return p.Capacity == capacity })
	}
	if len(c.PitchTypes) > 0 {
		types := c.PitchTypes
		out = append(out, func(p model.Pitch) bool { return slices.Contains(types, p.PitchType) })
	}
	if len(c.CameraSystems) > 0 {
		sel := c.CameraSystems
		out = append(out, func(p model.Pitch) bool { return selected(sel, p.CameraSystem) })
	}
	if len(c.ShoeRentals) > 0 {
		sel := c.ShoeRentals
		out = append(out, func(p model.Pitch) bool { return selected(sel, p.ShoeRental) })
	}
	if c.MinRating != nil {
		minRating := *c.MinRating
		out = append(out, func(p model.Pitch) bool { return p.Rating >= minRating })
	}
	if c.Search != "" {
		term := strings.ToLower(c.Search)
		out = append(out, func(p model.Pitch) bool {
			return strings.Contains(strings.ToLower(p.Name), term) ||
				strings.Contains(strings.ToLower(p.Location), term)
		})
	}
	return out
}

// selected ORs the yes/no selections against a boolean attribute.
func selected(values []string, has bool) bool {
	return (has && slices.Contains(values, Yes)) || (!has && slices.Contains(values, No))
}

// ApplyFilters returns the records that satisfy every active predicate of
// c, in their original relative order. Each predicate runs over the output
// of the previous one, starting from a fresh copy of records.
func ApplyFilters(records []model.Pitch, c Criteria) []model.Pitch {
	out := slices.Clone(records)
	for _, keep := range c.predicates() {
		out = slices.DeleteFunc(out, func(p model.Pitch) bool { return !keep(p) })
	}
	return out
}
