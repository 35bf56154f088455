package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/EasyPost_Go/internal/auth"
	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/user"
)

// RegisterRequest is the body for creating a user.
type RegisterRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	WhatsAppNumber string `json:"whatsapp_number,omitempty" validate:"omitempty,max=20"`
	Niche          string `json:"niche,omitempty" validate:"omitempty,max=100"`
}

// UpdateUserRequest carries optional profile changes.
type UpdateUserRequest struct {
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	WhatsAppNumber *string `json:"whatsapp_number,omitempty" validate:"omitempty,max=20"`
	Niche          *string `json:"niche,omitempty" validate:"omitempty,max=100"`
	Password       *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	WhatsAppNumber string `json:"whatsapp_number,omitempty"`
	Niche          string `json:"niche,omitempty"`
	IsActive       bool   `json:"is_active"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		WhatsAppNumber: u.WhatsAppNumber,
		Niche:          u.Niche,
		IsActive:       u.IsActive,
	}
}

// HandleRegisterUser creates a new user
// @Summary Register user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} UserResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users [post]
func HandleRegisterUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		created, err := svc.Register(r.Context(), user.RegisterInput{
			Username:       req.Username,
			Email:          req.Email,
			Password:       req.Password,
			WhatsAppNumber: req.WhatsAppNumber,
			Niche:          req.Niche,
		})
		if err != nil {
			respondServiceError(w, r, "Register user", err)
			return
		}

		respondJSON(w, http.StatusCreated, toUserResponse(&created))
	}
}

// HandleGetCurrentUser returns the authenticated user's profile
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func HandleGetCurrentUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserIDFromContext(r.Context())

		found, err := svc.GetUserByID(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get current user", err)
			return
		}

		respondJSON(w, http.StatusOK, toUserResponse(found))
	}
}

// HandleGetUser returns a user by id
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func HandleGetUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := parseUserID(w, r)
		if !ok {
			return
		}

		found, err := svc.GetUserByID(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get user", err)
			return
		}

		respondJSON(w, http.StatusOK, toUserResponse(found))
	}
}

// HandleUpdateUser updates the authenticated user's profile
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateUserRequest true "Profile changes"
// @Success 200 {object} UserResponse
// @Failure 400 {object} ValidationErrorResponse
// @Security BearerAuth
// @Router /users/me [patch]
func HandleUpdateUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserIDFromContext(r.Context())

		var req UpdateUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update user"); err != nil {
			return
		}

		updated, err := svc.UpdateUser(r.Context(), userID, user.UpdateInput{
			Email:          req.Email,
			WhatsAppNumber: req.WhatsAppNumber,
			Niche:          req.Niche,
			Password:       req.Password,
		})
		if err != nil {
			respondServiceError(w, r, "Update user", err)
			return
		}

		respondJSON(w, http.StatusOK, toUserResponse(updated))
	}
}

// HandleDeleteUser deletes the authenticated user's account
// @Summary Delete user
// @Tags users
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [delete]
func HandleDeleteUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserIDFromContext(r.Context())

		if err := svc.DeleteUser(r.Context(), userID); err != nil {
			respondServiceError(w, r, "Delete user", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "User deleted"})
	}
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidUserID)
		return 0, false
	}
	return userID, true
}
