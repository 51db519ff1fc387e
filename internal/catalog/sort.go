package catalog

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/iliyamo/pitch-reservation/internal/model"
)

// Locale is the collation language used for name ordering and facet lists.
var Locale = language.Turkish

// SortPitches returns a stably sorted copy of records. SortDefault, and any
// key it does not recognize, keeps the original order.
func SortPitches(records []model.Pitch, key SortKey) []model.Pitch {
	out := slices.Clone(records)
	switch key {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b model.Pitch) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b model.Pitch) int { return cmp.Compare(b.Price, a.Price) })
	case SortRating:
		slices.SortStableFunc(out, func(a, b model.Pitch) int { return cmp.Compare(b.Rating, a.Rating) })
	case SortName:
		// a Collator keeps scratch buffers, so each call gets its own
		col := collate.New(Locale)
		slices.SortStableFunc(out, func(a, b model.Pitch) int { return col.CompareString(a.Name, b.Name) })
	}
	return out
}
