package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/EasyPost_Go/internal/auth"
	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/oauth"
)

// InitiateLinkResponse carries the provider consent URL the frontend should
// redirect the browser to.
type InitiateLinkResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	Platform         string `json:"platform"`
}

// LinkedAccountsResponse lists a user's active linked accounts.
type LinkedAccountsResponse struct {
	Accounts []domain.SocialAccount `json:"accounts"`
}

// LinkStatusResponse summarizes which platforms a user has linked.
type LinkStatusResponse struct {
	Facebook  bool `json:"facebook"`
	Instagram bool `json:"instagram"`
}

// HandleInitiateLink starts the OAuth flow for a platform
// @Summary Initiate account linking
// @Description Issues a state token and returns the platform consent URL
// @Tags oauth
// @Produce json
// @Param platform path string true "Platform (facebook or instagram)"
// @Success 200 {object} InitiateLinkResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /oauth/{platform}/init [get]
func HandleInitiateLink(svc oauth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserIDFromContext(r.Context())
		platform := chi.URLParam(r, "platform")

		consentURL, err := svc.InitiateLink(r.Context(), userID, platform)
		if err != nil {
			respondServiceError(w, r, "Initiate link", err)
			return
		}

		respondJSON(w, http.StatusOK, InitiateLinkResponse{
			AuthorizationURL: consentURL,
			Platform:         platform,
		})
	}
}

// HandleOAuthCallback completes the OAuth flow.
// The provider redirects the browser here; the response is always a redirect
// back to the frontend dashboard, success or failure.
// @Summary OAuth provider callback
// @Description Consumes the state token, exchanges the code, stores the account, and redirects to the frontend
// @Tags oauth
// @Param code query string false "Authorization code"
// @Param state query string false "State token"
// @Success 302
// @Router /oauth/callback [get]
func HandleOAuthCallback(svc oauth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")

		// HandleCallback always returns a usable redirect URL; the error is
		// only logged since the browser is mid-redirect.
		redirectURL, _ := svc.HandleCallback(r.Context(), code, state)
		http.Redirect(w, r, redirectURL, http.StatusFound)
	}
}

// HandleListAccounts lists the authenticated user's linked accounts
// @Summary List linked accounts
// @Tags oauth
// @Produce json
// @Success 200 {object} LinkedAccountsResponse
// @Security BearerAuth
// @Router /oauth/accounts [get]
func HandleListAccounts(svc oauth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserIDFromContext(r.Context())

		accounts, err := svc.ListAccounts(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "List accounts", err)
			return
		}

		respondJSON(w, http.StatusOK, LinkedAccountsResponse{Accounts: accounts})
	}
}

// HandleLinkStatus reports which platforms the user has linked
// @Summary Linking status
// @Tags oauth
// @Produce json
// @Success 200 {object} LinkStatusResponse
// @Security BearerAuth
// @Router /oauth/status [get]
func HandleLinkStatus(svc oauth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserIDFromContext(r.Context())

		accounts, err := svc.ListAccounts(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Link status", err)
			return
		}

		var status LinkStatusResponse
		for _, account := range accounts {
			switch account.Platform {
			case domain.PlatformFacebook:
				status.Facebook = true
			case domain.PlatformInstagram:
				status.Instagram = true
			}
		}
		respondJSON(w, http.StatusOK, status)
	}
}

// HandleUnlinkAccount removes a linked account
// @Summary Unlink account
// @Tags oauth
// @Produce json
// @Param platform path string true "Platform (facebook or instagram)"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /oauth/accounts/{platform} [delete]
func HandleUnlinkAccount(svc oauth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserIDFromContext(r.Context())
		platform := chi.URLParam(r, "platform")

		if err := svc.Unlink(r.Context(), userID, platform); err != nil {
			respondServiceError(w, r, "Unlink account", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Account unlinked"})
	}
}
