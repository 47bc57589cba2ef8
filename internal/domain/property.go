package domain

import "time"

// Property is a single listed homestay/resort record. The JSON field names
// are the wire contract shared by the API, the client and the seed dataset.
type Property struct {
	ID              int64     `json:"id"`
	HomestayName    string    `json:"homestay_name"`
	Location        string    `json:"location"`
	SubLocation     string    `json:"sub_location"`
	GoogleAddress   string    `json:"google_address"`
	GooglePhone     string    `json:"google_phone"`
	GoogleRating    float64   `json:"google_rating"`
	NumberOfReviews int       `json:"number_of_reviews"`
	GoogleMapsLink  string    `json:"google_maps_link"`
	PhotoURL        string    `json:"photo_url"`
	Category        string    `json:"category"` // Resort | Homestay
	Amenities       string    `json:"amenities"`
	Tariff          string    `json:"tariff"`
	SourceURL       *string   `json:"source_url,omitempty"`
	YouTubeVideo    *string   `json:"youtube_video,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SortKey is the closed set of sort orders the API accepts.
type SortKey string

const (
	SortRatingDesc  SortKey = "rating_desc"
	SortRatingAsc   SortKey = "rating_asc"
	SortReviewsDesc SortKey = "reviews_desc"
	SortReviewsAsc  SortKey = "reviews_asc"
	SortNameAsc     SortKey = "name_asc"
)

// SortKeys lists every sort order the UI may expose, in display order.
var SortKeys = []SortKey{SortRatingDesc, SortRatingAsc, SortReviewsDesc, SortReviewsAsc, SortNameAsc}

// ParseSortKey maps an arbitrary string onto the closed set, falling back
// to rating_desc for unknown values (same behavior as the default branch
// of the server's sort map).
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortRatingAsc, SortReviewsDesc, SortReviewsAsc, SortNameAsc:
		return SortKey(s)
	default:
		return SortRatingDesc
	}
}

const (
	DefaultPerPage = 10
	MaxPerPage     = 50
)

// PropertiesQuery carries the filter/sort/pagination parameters of a
// properties listing request. Nil pointer fields mean "no filter".
type PropertiesQuery struct {
	Page        int
	PerPage     int
	Search      *string
	Location    *string
	SubLocation *string
	Category    *string
	MinRating   *float64
	Sort        SortKey
}

// Normalize clamps pagination into the supported range and resolves the
// sort key default. Safe to call on the zero value.
func (q PropertiesQuery) Normalize() PropertiesQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	q.Sort = ParseSortKey(string(q.Sort))
	return q
}

// PropertiesPage is one page of results plus the pagination envelope.
type PropertiesPage struct {
	Properties []Property `json:"properties"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
	TotalPages int        `json:"total_pages"`
}

// HasMore reports whether another page exists after this one.
func (p PropertiesPage) HasMore() bool { return p.Page < p.TotalPages }

// Suggestion is a single search-suggestion entry.
type Suggestion struct {
	Text string `json:"text"`
	Type string `json:"type"` // property | location | sub_location
}
