package browse

import (
	"fmt"
	"io"
	"strings"

	"stayhunt/internal/domain"
)

// Text rendering for the terminal screens. Every fetch path lands in one
// of ready / error / empty, so a snapshot always renders to something —
// never a stuck spinner.

func RenderList(w io.Writer, s Snapshot) {
	if s.Refreshing {
		fmt.Fprintln(w, "refreshing…")
	}
	switch s.State {
	case StateLoadingFirst:
		fmt.Fprintln(w, "loading…")
		return
	case StateError:
		fmt.Fprintf(w, "something went wrong: %v\n", s.Err)
		fmt.Fprintln(w, "press 't' to retry")
		if len(s.Items) == 0 {
			return
		}
	case StateIdle:
		return
	}

	if len(s.Items) == 0 {
		fmt.Fprintln(w, "no properties match the current filters")
		return
	}

	for i, p := range s.Items {
		RenderListItem(w, i+1, p)
	}
	fmt.Fprintf(w, "— %d of %d properties", len(s.Items), s.Total)
	if s.HasMore {
		fmt.Fprintf(w, " (page %d/%d, more available)", s.Page, s.TotalPages)
	}
	fmt.Fprintln(w)
	if s.State == StateLoadingMore {
		fmt.Fprintln(w, "loading more…")
	}
}

func RenderListItem(w io.Writer, idx int, p domain.Property) {
	fmt.Fprintf(w, "%3d. %s  [%s]\n", idx, p.HomestayName, p.Category)
	fmt.Fprintf(w, "     %s %s, %s\n", StarString(p.GoogleRating), ratingLabel(p), p.SubLocation+", "+p.Location)
	if p.Tariff != "" {
		fmt.Fprintf(w, "     %s\n", p.Tariff)
	}
}

func ratingLabel(p domain.Property) string {
	return fmt.Sprintf("%.1f (%d reviews)", p.GoogleRating, p.NumberOfReviews)
}

func RenderProperty(w io.Writer, p domain.Property) {
	fmt.Fprintf(w, "%s  [%s]\n", p.HomestayName, p.Category)
	fmt.Fprintf(w, "%s %s\n", StarString(p.GoogleRating), ratingLabel(p))
	fmt.Fprintf(w, "%s, %s\n", p.SubLocation, p.Location)
	if p.GoogleAddress != "" {
		fmt.Fprintln(w, p.GoogleAddress)
	}
	if p.Amenities != "" {
		fmt.Fprintf(w, "amenities: %s\n", p.Amenities)
	}
	if p.Tariff != "" {
		fmt.Fprintf(w, "tariff: %s\n", p.Tariff)
	}
	if p.GooglePhone != "" {
		fmt.Fprintf(w, "phone: %s\n", p.GooglePhone)
	}
	if p.GoogleMapsLink != "" {
		fmt.Fprintf(w, "map: %s\n", p.GoogleMapsLink)
	}
}

// RenderTree prints the two-level tree; collapsed nodes hide their
// sub-locations behind a disclosure marker.
func RenderTree(w io.Writer, t *Tree) {
	if len(t.Locations) == 0 {
		fmt.Fprintln(w, "no locations yet")
		return
	}
	for _, n := range t.Locations {
		marker := "▸"
		if n.Expanded {
			marker = "▾"
		}
		fmt.Fprintf(w, "%s %s (%d)\n", marker, n.Name, n.Count)
		if !n.Expanded {
			continue
		}
		for _, sub := range n.SubLocations {
			fmt.Fprintf(w, "%s%s (%d)\n", strings.Repeat(" ", 4), sub.Name, sub.Count)
		}
	}
}
