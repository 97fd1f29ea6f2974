package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/faredeck/faredeck/internal/api/models"
	"github.com/faredeck/faredeck/internal/api/response"
	"github.com/faredeck/faredeck/internal/compare"
	"github.com/faredeck/faredeck/internal/fare"
)

// FareHandler handles fare comparison endpoints.
type FareHandler struct {
	compareService *compare.Service
	engine         *fare.Engine
}

// NewFareHandler creates a new FareHandler.
func NewFareHandler(compareService *compare.Service, engine *fare.Engine) *FareHandler {
	return &FareHandler{
		compareService: compareService,
		engine:         engine,
	}
}

// CompareFares handles POST /v1/fares:compare - price a route across all
// enabled providers. The user ID is taken from the context when the request
// carries a valid bearer token; anonymous requests are priced but not
// recorded.
func (h *FareHandler) CompareFares(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "validation error", errs)
		return
	}

	result, err := h.compareService.Compare(r.Context(), &compare.Request{
		Pickup:      req.Pickup,
		Destination: req.Destination,
		DistanceKm:  req.DistanceKm,
		DurationMin: req.DurationMin,
		UserID:      GetUserID(r.Context()),
	})
	if err != nil {
		if errors.Is(err, fare.ErrEmptyLocation) || errors.Is(err, fare.ErrInvalidDistance) {
			response.BadRequest(w, r, err.Error(), nil)
			return
		}
		response.InternalError(w, r, "fare comparison failed")
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// SurgeStatus handles GET /v1/fares/surge - current time-of-day surge.
func (h *FareHandler) SurgeStatus(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.engine.SurgeStatus())
}

// BookingLink handles POST /v1/fares/booking-link - provider deep link for a
// selected option.
func (h *FareHandler) BookingLink(w http.ResponseWriter, r *http.Request) {
	var req models.BookingLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "validation error", errs)
		return
	}

	provider, _ := fare.ParseProvider(req.Service)
	ride := fare.RideOption{Service: provider, Type: req.Type}

	url := h.compareService.BookingLink(r.Context(), ride, req.Pickup, req.Destination)
	response.JSON(w, r, http.StatusOK, models.BookingLink{URL: url})
}
