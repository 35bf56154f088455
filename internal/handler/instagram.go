package handler

import (
	"net/http"

	"github.com/osse101/EasyPost_Go/internal/auth"
	"github.com/osse101/EasyPost_Go/internal/instagram"
)

// CreatePostRequest is the body for publishing an Instagram image post.
type CreatePostRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
	Caption  string `json:"caption,omitempty" validate:"omitempty,max=2200"`
}

// CreatePostResponse carries the published media id.
type CreatePostResponse struct {
	MediaID string `json:"media_id"`
}

// PostsResponse lists recent posts from the linked account.
type PostsResponse struct {
	Posts []instagram.Media `json:"posts"`
}

// HandleGetInstagramProfile fetches the linked account's business profile
// @Summary Instagram profile
// @Tags instagram
// @Produce json
// @Success 200 {object} instagram.Profile
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /instagram/profile [get]
func HandleGetInstagramProfile(svc *instagram.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserIDFromContext(r.Context())

		profile, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get Instagram profile", err)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleListInstagramPosts lists recent posts from the linked account
// @Summary Instagram posts
// @Tags instagram
// @Produce json
// @Param limit query int false "Maximum posts to return"
// @Success 200 {object} PostsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /instagram/posts [get]
func HandleListInstagramPosts(svc *instagram.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserIDFromContext(r.Context())

		limit, ok := GetOptionalIntQueryParam(r, w, "limit", instagram.DefaultPostLimit)
		if !ok {
			return
		}

		posts, err := svc.ListPosts(r.Context(), userID, limit)
		if err != nil {
			respondServiceError(w, r, "List Instagram posts", err)
			return
		}

		respondJSON(w, http.StatusOK, PostsResponse{Posts: posts})
	}
}

// HandleCreateInstagramPost publishes an image post through the linked account
// @Summary Publish Instagram post
// @Tags instagram
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post content"
// @Success 201 {object} CreatePostResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /instagram/posts [post]
func HandleCreateInstagramPost(svc *instagram.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserIDFromContext(r.Context())

		var req CreatePostRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create Instagram post"); err != nil {
			return
		}

		mediaID, err := svc.CreatePost(r.Context(), userID, req.ImageURL, req.Caption)
		if err != nil {
			respondServiceError(w, r, "Create Instagram post", err)
			return
		}

		respondJSON(w, http.StatusCreated, CreatePostResponse{MediaID: mediaID})
	}
}
