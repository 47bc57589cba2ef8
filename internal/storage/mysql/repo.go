package mysql

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"stayhunt/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// Sort whitelist; anything outside the closed set has already been
// normalized to rating_desc. Trailing id keeps page order deterministic
// when the sort columns tie.
var orderBy = map[domain.SortKey]string{
	domain.SortRatingDesc:  "google_rating DESC, number_of_reviews DESC, id",
	domain.SortRatingAsc:   "google_rating ASC, number_of_reviews ASC, id",
	domain.SortReviewsDesc: "number_of_reviews DESC, google_rating DESC, id",
	domain.SortReviewsAsc:  "number_of_reviews ASC, google_rating ASC, id",
	domain.SortNameAsc:     "homestay_name ASC, id",
}

// whereClause builds the filter predicates. Search and the facet filters are
// case-insensitive substring matches (utf8mb4 default collation is CI). A
// zero min_rating is treated as "no filter".
func whereClause(q domain.PropertiesQuery) (string, []any) {
	var conds []string
	var args []any

	if q.Search != nil && *q.Search != "" {
		conds = append(conds,
			"(homestay_name LIKE CONCAT('%', ?, '%') OR location LIKE CONCAT('%', ?, '%') OR sub_location LIKE CONCAT('%', ?, '%'))")
		args = append(args, *q.Search, *q.Search, *q.Search)
	}
	if q.Location != nil && *q.Location != "" {
		conds = append(conds, "location LIKE CONCAT('%', ?, '%')")
		args = append(args, *q.Location)
	}
	if q.SubLocation != nil && *q.SubLocation != "" {
		conds = append(conds, "sub_location LIKE CONCAT('%', ?, '%')")
		args = append(args, *q.SubLocation)
	}
	if q.Category != nil && *q.Category != "" {
		conds = append(conds, "category LIKE CONCAT('%', ?, '%')")
		args = append(args, *q.Category)
	}
	if q.MinRating != nil && *q.MinRating > 0 {
		conds = append(conds, "google_rating >= ?")
		args = append(args, *q.MinRating)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *Repo) ListProperties(ctx context.Context, q domain.PropertiesQuery) (domain.PropertiesPage, error) {
	q = q.Normalize()
	where, args := whereClause(q)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties"+where, args...).Scan(&total); err != nil {
		return domain.PropertiesPage{}, err
	}

	totalPages := (total + q.PerPage - 1) / q.PerPage
	page := domain.PropertiesPage{
		Properties: []domain.Property{},
		Total:      total,
		Page:       q.Page,
		PerPage:    q.PerPage,
		TotalPages: totalPages,
	}

	offset := (q.Page - 1) * q.PerPage
	listSQL := "SELECT" + propertyColumns + "\nFROM properties" + where +
		" ORDER BY " + orderBy[q.Sort] + " LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, listSQL, append(args, q.PerPage, offset)...)
	if err != nil {
		return domain.PropertiesPage{}, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return domain.PropertiesPage{}, err
		}
		page.Properties = append(page.Properties, p)
	}
	if err := rows.Err(); err != nil {
		return domain.PropertiesPage{}, err
	}
	return page, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanProperty(row rowScanner) (domain.Property, error) {
	var p domain.Property
	var sourceURL, youtube sql.NullString
	err := row.Scan(
		&p.ID,
		&p.HomestayName,
		&p.Location,
		&p.SubLocation,
		&p.GoogleAddress,
		&p.GooglePhone,
		&p.GoogleRating,
		&p.NumberOfReviews,
		&p.GoogleMapsLink,
		&p.PhotoURL,
		&p.Category,
		&p.Amenities,
		&p.Tariff,
		&sourceURL,
		&youtube,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Property{}, err
	}
	if sourceURL.Valid {
		s := sourceURL.String
		p.SourceURL = &s
	}
	if youtube.Valid {
		s := youtube.String
		p.YouTubeVideo = &s
	}
	return p, nil
}

func (r *Repo) GetProperty(ctx context.Context, id int64) (domain.Property, error) {
	p, err := scanProperty(r.db.QueryRowContext(ctx, getPropertySQL, id))
	if err == sql.ErrNoRows {
		return domain.Property{}, domain.ErrNotFound
	}
	return p, err
}

func (r *Repo) LocationStats(ctx context.Context) ([]domain.LocationStat, error) {
	rows, err := r.db.QueryContext(ctx, locationStatsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byLoc := map[string]*domain.LocationStat{}
	var order []string
	for rows.Next() {
		var loc, sub string
		var n int
		if err := rows.Scan(&loc, &sub, &n); err != nil {
			return nil, err
		}
		st, ok := byLoc[loc]
		if !ok {
			st = &domain.LocationStat{Location: loc}
			byLoc[loc] = st
			order = append(order, loc)
		}
		st.Count += n
		st.SubLocations = append(st.SubLocations, domain.SubLocationCount{Name: sub, Count: n})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.LocationStat, 0, len(order))
	for _, loc := range order {
		st := *byLoc[loc]
		sort.SliceStable(st.SubLocations, func(i, j int) bool {
			a, b := st.SubLocations[i], st.SubLocations[j]
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return a.Name < b.Name
		})
		out = append(out, st)
	}
	// Locations by property count descending, name breaks ties.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}

func (r *Repo) Suggestions(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []domain.Suggestion
	seen := map[string]bool{}
	add := func(text, typ string) {
		if text == "" || seen[text] || len(out) >= limit {
			return
		}
		seen[text] = true
		out = append(out, domain.Suggestion{Text: text, Type: typ})
	}

	// Property names first, then locations.
	rows, err := r.db.QueryContext(ctx, nameSuggestionsSQL, query, 3)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, err
		}
		add(name, "property")
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx, locationSuggestionsSQL, query, query, 3)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var loc, sub string
		if err := rows.Scan(&loc, &sub); err != nil {
			return nil, err
		}
		add(loc, "location")
		add(sub, "sub_location")
	}
	return out, rows.Err()
}

func propertyArgs(p domain.Property) []any {
	return []any{
		p.HomestayName,
		p.Location,
		p.SubLocation,
		p.GoogleAddress,
		p.GooglePhone,
		p.GoogleRating,
		p.NumberOfReviews,
		p.GoogleMapsLink,
		p.PhotoURL,
		p.Category,
		p.Amenities,
		p.Tariff,
		valStr(p.SourceURL),
		valStr(p.YouTubeVideo),
	}
}

func (r *Repo) CreateProperty(ctx context.Context, p domain.Property) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertPropertySQL, propertyArgs(p)...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateProperty(ctx context.Context, p domain.Property) error {
	res, err := r.db.ExecContext(ctx, updatePropertySQL, append(propertyArgs(p), p.ID)...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either missing or an update that changed nothing; disambiguate.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM properties WHERE id = ?", p.ID).Scan(&one); err == sql.ErrNoRows {
			return domain.ErrNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) DeleteProperty(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deletePropertySQL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) UpsertProperty(ctx context.Context, p domain.Property) (int64, error) {
	res, err := r.db.ExecContext(ctx, upsertPropertySQL, propertyArgs(p)...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
