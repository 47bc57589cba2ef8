package browse

import "stayhunt/internal/domain"

// Filters is the client-side filter/sort record. The zero value means "no
// filters, default sort". It is a plain value type; the Pager owns the
// authoritative copy and hands out snapshots.
type Filters struct {
	Search      string
	Location    string
	SubLocation string
	Category    string
	MinRating   *float64
	Sort        domain.SortKey
}

// Query translates the filters into the wire query for one page.
func (f Filters) Query(page, perPage int) domain.PropertiesQuery {
	q := domain.PropertiesQuery{Page: page, PerPage: perPage, Sort: f.Sort}
	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	q.Search = opt(f.Search)
	q.Location = opt(f.Location)
	q.SubLocation = opt(f.SubLocation)
	q.Category = opt(f.Category)
	if f.MinRating != nil {
		r := *f.MinRating
		q.MinRating = &r
	}
	return q.Normalize()
}

// SelectLeaf applies the location-tree leaf selection rules: picking a leaf
// sets both location and sub-location; picking the already-selected leaf
// again clears the sub-location only; picking a different leaf under the
// same location switches directly.
func (f *Filters) SelectLeaf(location, sub string) {
	same := f.Location == location && f.SubLocation == sub
	f.Location = location
	if same {
		f.SubLocation = ""
	} else {
		f.SubLocation = sub
	}
}

// Clear resets every filter to its default.
func (f *Filters) Clear() {
	*f = Filters{}
}
