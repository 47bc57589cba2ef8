package browse

import (
	"math"
	"strings"
)

// Star is one glyph slot in a 5-star rating row.
type Star int

const (
	StarEmpty Star = iota
	StarHalf
	StarFull
)

// Stars maps a rating in [0,5] onto exactly 5 glyph slots: floor(rating)
// full stars, one half star iff the fractional remainder is non-zero, and
// empty for the rest. Any non-zero remainder yields exactly one half star
// regardless of magnitude (4.2 and 4.8 both render 4 full + 1 half).
func Stars(rating float64) [5]Star {
	if rating < 0 || math.IsNaN(rating) {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	full := int(math.Floor(rating))
	var out [5]Star
	for i := 0; i < full; i++ {
		out[i] = StarFull
	}
	if rating != math.Trunc(rating) && full < 5 {
		out[full] = StarHalf
	}
	return out
}

// StarString renders the glyph row, e.g. 3.5 -> "★★★⯪☆".
func StarString(rating float64) string {
	var b strings.Builder
	for _, s := range Stars(rating) {
		switch s {
		case StarFull:
			b.WriteRune('★')
		case StarHalf:
			b.WriteRune('⯪')
		default:
			b.WriteRune('☆')
		}
	}
	return b.String()
}
