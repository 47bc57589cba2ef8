// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhunt/internal/app"
	"stayhunt/internal/domain"
)

type Handlers struct {
	Q   *app.QueryService
	Adm *app.AdminService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "StayHunt API is running!", "version": "1.0.0"})
	})
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/properties", h.listProperties)
	s.mux.Get("/api/properties/{id}", h.getProperty)
	s.mux.Get("/api/locations", h.getLocations)
	s.mux.Get("/api/search-suggestions", h.searchSuggestions)
	s.mux.Post("/api/admin/properties", h.createProperty)
	s.mux.Put("/api/admin/properties/{id}", h.updateProperty)
	s.mux.Delete("/api/admin/properties/{id}", h.deleteProperty)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached serves v with a weak ETag, short-circuiting to 304 when the
// client already has this version.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// parsePropertiesQuery validates the listing query parameters. Ranges follow
// the published contract: page >= 1, per_page in [1,50], min_rating in [0,5].
// Unknown sort_by values fall back to rating_desc rather than erroring.
func parsePropertiesQuery(r *http.Request) (domain.PropertiesQuery, error) {
	q := domain.PropertiesQuery{Page: 1, PerPage: domain.DefaultPerPage, Sort: domain.SortRatingDesc}
	vals := r.URL.Query()

	if s := vals.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return q, errors.New("page must be an integer >= 1")
		}
		q.Page = n
	}
	if s := vals.Get("per_page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > domain.MaxPerPage {
			return q, errors.New("per_page must be an integer between 1 and 50")
		}
		q.PerPage = n
	}
	if s := vals.Get("min_rating"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 || f > 5 {
			return q, errors.New("min_rating must be a number between 0 and 5")
		}
		q.MinRating = &f
	}
	q.Sort = domain.ParseSortKey(vals.Get("sort_by"))

	opt := func(k string) *string {
		if v := vals.Get(k); v != "" {
			return &v
		}
		return nil
	}
	q.Search = opt("search")
	q.Location = opt("location")
	q.SubLocation = opt("sub_location")
	q.Category = opt("category")
	return q, nil
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	q, err := parsePropertiesQuery(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	page, err := h.Q.ListProperties(r.Context(), q)
	if err != nil {
		log.Error().Err(err).Msg("list properties failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not list properties")
		return
	}
	writeCached(w, r, page)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid property ID", "id must be a number")
		return
	}
	p, err := h.Q.GetProperty(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("get property failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load property")
		return
	}
	writeCached(w, r, p)
}

func (h *Handlers) getLocations(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Q.Locations(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("locations summary failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load locations")
		return
	}
	writeCached(w, r, stats)
}

func (h *Handlers) searchSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if len(query) < 3 {
		writeProblem(w, http.StatusBadRequest, "Invalid query", "query must be at least 3 characters")
		return
	}
	out, err := h.Q.Suggestions(r.Context(), query)
	if err != nil {
		log.Error().Err(err).Msg("search suggestions failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load suggestions")
		return
	}
	if out == nil {
		out = []domain.Suggestion{}
	}
	writeJSON(w, http.StatusOK, out)
}

func decodeProperty(r *http.Request) (domain.Property, error) {
	var p domain.Property
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&p); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProperty(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be a property JSON object")
		return
	}
	p.ID = 0 // DB assigns
	created, err := h.Adm.CreateProperty(r.Context(), p)
	if err != nil {
		log.Error().Err(err).Msg("create property failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not create property")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid property ID", "id must be a number")
		return
	}
	p, err := decodeProperty(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be a property JSON object")
		return
	}
	p.ID = id
	updated, err := h.Adm.UpdateProperty(r.Context(), p)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("update property failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not update property")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid property ID", "id must be a number")
		return
	}
	if err := h.Adm.DeleteProperty(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("delete property failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not delete property")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}
