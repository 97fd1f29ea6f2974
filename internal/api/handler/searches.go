package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/faredeck/faredeck/internal/api/models"
	"github.com/faredeck/faredeck/internal/api/response"
	"github.com/faredeck/faredeck/internal/search"
)

// Search history pagination bounds.
const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// SearchHandler handles search history endpoints.
type SearchHandler struct {
	searchService *search.Service
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService *search.Service) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// ListSearches handles GET /v1/me/searches - recent comparisons, newest
// first.
func (h *SearchHandler) ListSearches(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxSearchLimit {
			response.BadRequest(w, r, "limit must be between 1 and 100", nil)
			return
		}
		limit = parsed
	}

	result, err := h.searchService.List(r.Context(), userID, limit)
	if err != nil {
		response.InternalError(w, r, "failed to list searches")
		return
	}

	items := make([]models.Search, len(result.Items))
	for i, s := range result.Items {
		items[i] = toSearch(s)
	}

	paged := models.PagedSearches{
		Items: items,
		Meta:  models.PagedResponseMeta{Limit: limit},
	}
	if result.NextCursor != "" {
		cursor := result.NextCursor
		paged.Meta.NextCursor = &cursor
	}

	response.JSON(w, r, http.StatusOK, paged)
}

// DeleteSearch handles DELETE /v1/me/searches/{searchId} - remove one entry.
func (h *SearchHandler) DeleteSearch(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	searchID := chi.URLParam(r, "searchId")
	if searchID == "" {
		response.BadRequest(w, r, "searchId is required", nil)
		return
	}

	if err := h.searchService.Delete(r.Context(), userID, searchID); err != nil {
		if errors.Is(err, search.ErrSearchNotFound) {
			response.NotFound(w, r, "search not found")
			return
		}
		response.InternalError(w, r, "failed to delete search")
		return
	}

	response.NoContent(w, r)
}

// ClearSearches handles DELETE /v1/me/searches - wipe the user's history.
func (h *SearchHandler) ClearSearches(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	if err := h.searchService.Clear(r.Context(), userID); err != nil {
		response.InternalError(w, r, "failed to clear searches")
		return
	}

	response.NoContent(w, r)
}

func toSearch(s *search.Search) models.Search {
	return models.Search{
		ID:              s.ID,
		Pickup:          s.Pickup,
		Destination:     s.Destination,
		DistanceKm:      s.DistanceKm,
		DurationMin:     s.DurationMin,
		DistanceSource:  s.DistanceSource,
		CheapestPrice:   s.CheapestPrice,
		CheapestService: string(s.CheapestService),
		OptionCount:     s.OptionCount,
		SearchedAt:      models.Timestamp(s.SearchedAt),
	}
}
