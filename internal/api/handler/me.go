package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/faredeck/faredeck/internal/api/models"
	"github.com/faredeck/faredeck/internal/api/response"
	"github.com/faredeck/faredeck/internal/auth"
	"github.com/faredeck/faredeck/internal/user"
)

// MeHandler handles user account and profile endpoints.
type MeHandler struct {
	authService *auth.Service
	userService *user.Service
}

// NewMeHandler creates a new MeHandler.
func NewMeHandler(authService *auth.Service, userService *user.Service) *MeHandler {
	return &MeHandler{
		authService: authService,
		userService: userService,
	}
}

// GetMe handles GET /v1/me - current account and rider profile.
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	account, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			response.NotFound(w, r, "user not found")
			return
		}
		response.InternalError(w, r, "failed to load account")
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		response.InternalError(w, r, "failed to load profile")
		return
	}

	response.JSON(w, r, http.StatusOK, toMe(account, profile))
}

// UpdateMe handles PUT /v1/me - update the rider profile.
func (h *MeHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	var input models.MeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	account, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			response.NotFound(w, r, "user not found")
			return
		}
		response.InternalError(w, r, "failed to load account")
		return
	}

	profile, err := h.userService.UpdateProfile(r.Context(), userID, &user.ProfileUpdate{
		DisplayName:       input.DisplayName,
		HomeCity:          input.HomeCity,
		DefaultPickup:     input.DefaultPickup,
		PreferredProvider: input.PreferredProvider,
	})
	if err != nil {
		if errors.Is(err, user.ErrUnknownProvider) {
			response.BadRequest(w, r, "unknown preferred provider", []models.FieldError{
				{Field: "preferredProvider", Message: "unknown provider", Code: "invalid"},
			})
			return
		}
		response.InternalError(w, r, "failed to update profile")
		return
	}

	response.JSON(w, r, http.StatusOK, toMe(account, profile))
}

func toMe(account *auth.User, profile *user.Profile) models.Me {
	displayName := profile.DisplayName
	if displayName == "" {
		displayName = account.DisplayName
	}
	return models.Me{
		UserID:            account.ID,
		Email:             account.Email,
		DisplayName:       displayName,
		HomeCity:          profile.HomeCity,
		DefaultPickup:     profile.DefaultPickup,
		PreferredProvider: string(profile.PreferredProvider),
		CreatedAt:         models.Timestamp(account.CreatedAt),
	}
}
