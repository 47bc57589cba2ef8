package browse_test

import (
	"testing"

	"stayhunt/internal/browse"
)

func countStars(row [5]browse.Star) (full, half, empty int) {
	for _, s := range row {
		switch s {
		case browse.StarFull:
			full++
		case browse.StarHalf:
			half++
		default:
			empty++
		}
	}
	return
}

func TestStars(t *testing.T) {
	cases := []struct {
		rating            float64
		full, half, empty int
	}{
		{0, 0, 0, 5},
		{5, 5, 0, 0},
		{3.5, 3, 1, 1},
		// any non-zero remainder yields exactly one half star
		{4.2, 4, 1, 0},
		{4.8, 4, 1, 0},
		{4, 4, 0, 1},
		{0.1, 0, 1, 4},
		// out-of-range inputs clamp
		{-1, 0, 0, 5},
		{7, 5, 0, 0},
	}
	for _, c := range cases {
		full, half, empty := countStars(browse.Stars(c.rating))
		if full != c.full || half != c.half || empty != c.empty {
			t.Errorf("Stars(%v) = %d full, %d half, %d empty; want %d/%d/%d",
				c.rating, full, half, empty, c.full, c.half, c.empty)
		}
		if full+half+empty != 5 {
			t.Errorf("Stars(%v): glyph count %d, want 5", c.rating, full+half+empty)
		}
	}
}

func TestStarString(t *testing.T) {
	if got := browse.StarString(3.5); got != "★★★⯪☆" {
		t.Fatalf("StarString(3.5) = %q", got)
	}
	if got := browse.StarString(0); got != "☆☆☆☆☆" {
		t.Fatalf("StarString(0) = %q", got)
	}
}
