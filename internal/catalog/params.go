package catalog

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/iliyamo/pitch-reservation/internal/model"
)

// ParseCriteria builds Criteria from query parameters:
//
//	city, district, capacity    exact-match labels
//	min_price, max_price        numbers; anything unparsable is ignored
//	min_rating                  number; anything unparsable is ignored
//	type                        indoor|outdoor, repeated or comma separated
//	camera, shoe_rental         yes|no, repeated or comma separated
//	q (or search)               free-text term
//
// Label values are kept verbatim since matching is exact.
func ParseCriteria(v url.Values) Criteria {
	c := Criteria{
		City:      v.Get("city"),
		District:  v.Get("district"),
		Capacity:  v.Get("capacity"),
		MinPrice:  ParseNumber(v.Get("min_price")),
		MaxPrice:  ParseNumber(v.Get("max_price")),
		MinRating: ParseNumber(v.Get("min_rating")),
		Search:    strings.TrimSpace(v.Get("q")),
	}
	if c.Search == "" {
		c.Search = strings.TrimSpace(v.Get("search"))
	}
	for _, s := range splitValues(v["type"]) {
		if t := model.ParsePitchType(s); t != "" && !slices.Contains(c.PitchTypes, t) {
			c.PitchTypes = append(c.PitchTypes, t)
		}
	}
	c.CameraSystems = parseYesNo(v["camera"])
	c.ShoeRentals = parseYesNo(v["shoe_rental"])
	return c
}

// ParseNumber coerces s to a number. Empty input, parse failures and NaN
// all yield nil, meaning "no constraint".
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return nil
	}
	return &f
}

// NormalizeYesNo keeps the recognized yes/no selections of values, once each.
func NormalizeYesNo(values []string) []string {
	var out []string
	for _, s := range values {
		var v string
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "true", "1", "evet", "var":
			v = Yes
		case "no", "false", "0", "hayir", "hayır", "yok":
			v = No
		default:
			continue
		}
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func parseYesNo(raw []string) []string {
	return NormalizeYesNo(splitValues(raw))
}

func splitValues(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, s := range strings.Split(r, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
