package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/library-catalog/internal/logger"
	"github.com/sbilibin2017/library-catalog/internal/middlewares"
	"github.com/sbilibin2017/library-catalog/internal/models"
	"github.com/sbilibin2017/library-catalog/internal/services"
)

// ProfileGetter defines the interface that the profile service must implement.
type ProfileGetter interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// ProfileUpdater defines the interface for profile updates.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, username, email *string) (*models.UserDB, error)
}

// ProfileResponse represents the authenticated user's profile
// swagger:model ProfileResponse
type ProfileResponse struct {
	// User id
	ID uuid.UUID `json:"id"`

	// Username
	// default: alice
	Username string `json:"username"`

	// Email
	// default: a@x.com
	Email string `json:"email"`

	// Account creation time
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateProfileRequest represents the JSON body for profile updates
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	// New username, optional
	Username *string `json:"username,omitempty"`

	// New email, optional
	Email *string `json:"email,omitempty"`
}

func (req *UpdateProfileRequest) validate() []string {
	var errs []string
	if req.Username != nil && !lengthBetween(*req.Username, 3, 30) {
		errs = append(errs, "username must be between 3 and 30 characters")
	}
	if req.Email != nil && !validEmail(*req.Email) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// UpdateProfileResponse represents a successful profile update
// swagger:model UpdateProfileResponse
type UpdateProfileResponse struct {
	// Success message
	// default: Profile updated
	Message string `json:"message"`

	// Updated user projection
	User models.UserProfile `json:"user"`
}

// NewGetProfileHandler returns an HTTP handler for reading the
// authenticated user's profile.
// @Summary Get profile
// @Description Returns the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.ProfileResponse "User profile"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /api/users/profile [get]
func NewGetProfileHandler(svc ProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := middlewares.GetUserFromContext(r.Context())
		if current == nil {
			writeError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		user, err := svc.GetProfile(r.Context(), current.UserID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, ProfileResponse{
			ID:        user.UserID,
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		})
	}
}

// NewUpdateProfileHandler returns an HTTP handler for updating the
// authenticated user's username and/or email.
// @Summary Update profile
// @Description Updates username and/or email of the authenticated user. At least one field is required.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updateProfileRequest body handlers.UpdateProfileRequest true "Profile update request"
// @Success 200 {object} handlers.UpdateProfileResponse "Profile updated"
// @Failure 400 {object} handlers.ErrorResponse "Empty update or email already in use"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /api/users/profile [put]
func NewUpdateProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := middlewares.GetUserFromContext(r.Context())
		if current == nil {
			writeError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if errs := req.validate(); len(errs) > 0 {
			writeError(w, http.StatusBadRequest, "Validation error", errs...)
			return
		}

		user, err := svc.UpdateProfile(r.Context(), current.UserID, req.Username, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyUpdate):
				writeError(w, http.StatusBadRequest, "Send username or email to update")
			case errors.Is(err, services.ErrEmailInUse):
				writeError(w, http.StatusBadRequest, "Email already in use")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusUnauthorized, "Not authorized, token failed")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, UpdateProfileResponse{
			Message: "Profile updated",
			User:    models.NewUserProfile(user),
		})
	}
}
