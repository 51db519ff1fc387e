// Package catalog implements the pitch catalog query engine: filtering,
// sorting and pagination over an immutable in-memory collection. Every
// operation is a pure function of its inputs; callers always receive newly
// allocated slices and the source collection is never reordered.
package catalog

import (
	"slices"
	"strings"

	"github.com/iliyamo/pitch-reservation/internal/model"
)

// Selection values accepted by the camera-system and shoe-rental filters.
const (
	Yes = "yes"
	No  = "no"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortName      SortKey = "name"
)

// ParseSortKey normalizes a sort key. Unknown keys fall back to SortDefault.
func ParseSortKey(s string) SortKey {
	k := SortKey(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	switch k {
	case SortPriceLow, SortPriceHigh, SortRating, SortName:
		return k
	}
	return SortDefault
}

// Criteria is the full set of filter selections for one query. The zero
// value matches every record. Nil pointers and empty strings or slices
// impose no constraint.
type Criteria struct {
	City          string            `json:"city,omitempty"`
	District      string            `json:"district,omitempty"`
	MinPrice      *float64          `json:"min_price,omitempty"`
	MaxPrice      *float64          `json:"max_price,omitempty"`
	Capacity      string            `json:"capacity,omitempty"`
	PitchTypes    []model.PitchType `json:"pitch_types,omitempty"`
	CameraSystems []string          `json:"camera_systems,omitempty"`
	ShoeRentals   []string          `json:"shoe_rentals,omitempty"`
	MinRating     *float64          `json:"min_rating,omitempty"`
	Search        string            `json:"search,omitempty"`
}

// IsEmpty reports whether c constrains nothing.
func (c Criteria) IsEmpty() bool {
	return c.Equal(Criteria{})
}

// Equal reports whether c and o select the same records. Multi-select
// fields are compared as sets.
func (c Criteria) Equal(o Criteria) bool {
	return c.City == o.City &&
		c.District == o.District &&
		c.Capacity == o.Capacity &&
		c.Search == o.Search &&
		equalFloat(c.MinPrice, o.MinPrice) &&
		equalFloat(c.MaxPrice, o.MaxPrice) &&
		equalFloat(c.MinRating, o.MinRating) &&
		sameSet(c.PitchTypes, o.PitchTypes) &&
		sameSet(c.CameraSystems, o.CameraSystems) &&
		sameSet(c.ShoeRentals, o.ShoeRentals)
}

func equalFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameSet[T comparable](a, b []T) bool {
	for _, v := range a {
		if !slices.Contains(b, v) {
			return false
		}
	}
	for _, v := range b {
		if !slices.Contains(a, v) {
			return false
		}
	}
	return true
}

// Normalize cleans criteria decoded from a JSON body the same way
// ParseCriteria cleans query parameters.
func (c Criteria) Normalize() Criteria {
	out := c
	out.Search = strings.TrimSpace(c.Search)
	out.PitchTypes = nil
	for _, t := range c.PitchTypes {
		if pt := model.ParsePitchType(string(t)); pt != "" && !slices.Contains(out.PitchTypes, pt) {
			out.PitchTypes = append(out.PitchTypes, pt)
		}
	}
	out.CameraSystems = NormalizeYesNo(c.CameraSystems)
	out.ShoeRentals = NormalizeYesNo(c.ShoeRentals)
	return out
}
