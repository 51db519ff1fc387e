package catalog

import "math"

// MaxStars is the top of the rating scale.
const MaxStars = 5

// StarRating is the star breakdown a rating widget draws.
type StarRating struct {
	Full  int `json:"full"`
	Half  int `json:"half"`
	Empty int `json:"empty"`
}

// Stars splits rating into full, half and empty stars out of MaxStars. A
// fractional part of .5 or more draws a half star.
func Stars(rating float64) StarRating {
	if math.IsNaN(rating) || rating < 0 {
		rating = 0
	}
	if rating > MaxStars {
		rating = MaxStars
	}
	full := int(math.Floor(rating))
	half := 0
	if rating-float64(full) >= 0.5 {
		half = 1
	}
	return StarRating{Full: full, Half: half, Empty: MaxStars - full - half}
}
