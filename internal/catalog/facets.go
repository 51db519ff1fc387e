package catalog

import (
	"slices"

	"golang.org/x/text/collate"

	"github.com/iliyamo/pitch-reservation/internal/model"
)

// Facets lists the values the filter controls can offer.
type Facets struct {
	Cities     []string            `json:"cities"`
	Districts  map[string][]string `json:"districts"`
	Capacities []string            `json:"capacities"`
	PitchTypes []model.PitchType   `json:"pitch_types"`
	MinPrice   int                 `json:"min_price"`
	MaxPrice   int                 `json:"max_price"`
}

// BuildFacets collects distinct cities, districts per city, capacity labels
// and pitch types, collated for display, plus the price range.
func BuildFacets(records []model.Pitch) Facets {
	f := Facets{
		Cities:     []string{},
		Districts:  map[string][]string{},
		Capacities: []string{},
		PitchTypes: []model.PitchType{},
	}
	for i, p := range records {
		if i == 0 || p.Price < f.MinPrice {
			f.MinPrice = p.Price
		}
		if i == 0 || p.Price > f.MaxPrice {
			f.MaxPrice = p.Price
		}
		if p.City != "" {
			if !slices.Contains(f.Cities, p.City) {
				f.Cities = append(f.Cities, p.City)
			}
			if p.District != "" && !slices.Contains(f.Districts[p.City], p.District) {
				f.Districts[p.City] = append(f.Districts[p.City], p.District)
			}
		}
		if p.Capacity != "" && !slices.Contains(f.Capacities, p.Capacity) {
			f.Capacities = append(f.Capacities, p.Capacity)
		}
		if p.PitchType != "" && !slices.Contains(f.PitchTypes, p.PitchType) {
			f.PitchTypes = append(f.PitchTypes, p.PitchType)
		}
	}

	col := collate.New(Locale)
	col.SortStrings(f.Cities)
	for _, ds := range f.Districts {
		col.SortStrings(ds)
	}
	// "8 oyuncu" before "10 oyuncu"
	collate.New(Locale, collate.Numeric).SortStrings(f.Capacities)
	slices.Sort(f.PitchTypes)
	return f
}
