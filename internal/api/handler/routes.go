package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/faredeck/faredeck/internal/api/models"
	"github.com/faredeck/faredeck/internal/api/response"
	"github.com/faredeck/faredeck/internal/routes"
)

// Saved route pagination bound.
const defaultRouteLimit = 50

// RouteHandler handles saved route endpoints.
type RouteHandler struct {
	routeService *routes.Service
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(routeService *routes.Service) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

// ListRoutes handles GET /v1/me/routes - list saved routes.
func (h *RouteHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	result, err := h.routeService.List(r.Context(), userID, defaultRouteLimit)
	if err != nil {
		response.InternalError(w, r, "failed to list routes")
		return
	}

	items := make([]models.SavedRoute, len(result.Items))
	for i, rt := range result.Items {
		items[i] = toSavedRoute(rt)
	}

	paged := models.PagedRoutes{
		Items: items,
		Meta:  models.PagedResponseMeta{Limit: defaultRouteLimit},
	}
	if result.NextCursor != "" {
		cursor := result.NextCursor
		paged.Meta.NextCursor = &cursor
	}

	response.JSON(w, r, http.StatusOK, paged)
}

// CreateRoute handles POST /v1/me/routes - save a route.
func (h *RouteHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	var input models.RouteCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	route, err := h.routeService.Create(r.Context(), userID, &routes.CreateInput{
		Label:       input.Label,
		Pickup:      input.Pickup,
		Destination: input.Destination,
		Notes:       input.Notes,
	})
	if err != nil {
		var validationErr *routes.ValidationError
		if errors.As(err, &validationErr) {
			response.BadRequest(w, r, "validation error", toRouteFieldErrors(validationErr))
			return
		}
		response.InternalError(w, r, "failed to create route")
		return
	}

	location := fmt.Sprintf("/v1/me/routes/%s", route.ID)
	response.Created(w, r, location, toSavedRoute(route))
}

// GetRoute handles GET /v1/me/routes/{routeId} - get a saved route.
func (h *RouteHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	routeID := chi.URLParam(r, "routeId")
	if routeID == "" {
		response.BadRequest(w, r, "routeId is required", nil)
		return
	}

	route, err := h.routeService.Get(r.Context(), userID, routeID)
	if err != nil {
		if errors.Is(err, routes.ErrRouteNotFound) {
			response.NotFound(w, r, "route not found")
			return
		}
		response.InternalError(w, r, "failed to get route")
		return
	}

	response.JSON(w, r, http.StatusOK, toSavedRoute(route))
}

// UpdateRoute handles PUT /v1/me/routes/{routeId} - update a saved route.
func (h *RouteHandler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	routeID := chi.URLParam(r, "routeId")
	if routeID == "" {
		response.BadRequest(w, r, "routeId is required", nil)
		return
	}

	var input models.RouteUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	route, err := h.routeService.Update(r.Context(), userID, routeID, &routes.UpdateInput{
		Label:       input.Label,
		Pickup:      input.Pickup,
		Destination: input.Destination,
		Notes:       input.Notes,
	})
	if err != nil {
		if errors.Is(err, routes.ErrRouteNotFound) {
			response.NotFound(w, r, "route not found")
			return
		}
		var validationErr *routes.ValidationError
		if errors.As(err, &validationErr) {
			response.BadRequest(w, r, "validation error", toRouteFieldErrors(validationErr))
			return
		}
		response.InternalError(w, r, "failed to update route")
		return
	}

	response.JSON(w, r, http.StatusOK, toSavedRoute(route))
}

// DeleteRoute handles DELETE /v1/me/routes/{routeId} - delete a saved route.
func (h *RouteHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	routeID := chi.URLParam(r, "routeId")
	if routeID == "" {
		response.BadRequest(w, r, "routeId is required", nil)
		return
	}

	if err := h.routeService.Delete(r.Context(), userID, routeID); err != nil {
		if errors.Is(err, routes.ErrRouteNotFound) {
			response.NotFound(w, r, "route not found")
			return
		}
		response.InternalError(w, r, "failed to delete route")
		return
	}

	response.NoContent(w, r)
}

func toSavedRoute(rt *routes.SavedRoute) models.SavedRoute {
	return models.SavedRoute{
		ID:          rt.ID,
		Label:       rt.Label,
		Pickup:      rt.Pickup,
		Destination: rt.Destination,
		Notes:       rt.Notes,
		CreatedAt:   models.Timestamp(rt.CreatedAt),
		UpdatedAt:   models.Timestamp(rt.UpdatedAt),
	}
}

func toRouteFieldErrors(err *routes.ValidationError) []models.FieldError {
	fieldErrors := make([]models.FieldError, len(err.Errors))
	for i, e := range err.Errors {
		fieldErrors[i] = models.FieldError{Field: e.Field, Message: e.Message}
	}
	return fieldErrors
}
