package handler

import (
	"net/http"

	"github.com/osse101/EasyPost_Go/internal/auth"
	"github.com/osse101/EasyPost_Go/internal/logger"
	"github.com/osse101/EasyPost_Go/internal/user"
)

// LoginRequest is the body for the token endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// HandleLogin authenticates a user and issues a bearer token
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/token [post]
func HandleLogin(svc user.Service, tokens *auth.TokenManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req LoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		authenticated, err := svc.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			respondServiceError(w, r, "Login", err)
			return
		}

		token, err := tokens.Generate(authenticated)
		if err != nil {
			log.Error("Failed to generate token", "error", err, "user_id", authenticated.ID)
			respondError(w, http.StatusInternalServerError, ErrMsgTokenIssueFailed)
			return
		}

		respondJSON(w, http.StatusOK, TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
			User:        toUserResponse(authenticated),
		})
	}
}
