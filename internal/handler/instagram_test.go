package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/instagram"
)

type stubTokenSource struct {
	account *domain.SocialAccount
	err     error
}

func (s *stubTokenSource) EnsureFresh(context.Context, int64, string) (*domain.SocialAccount, error) {
	return s.account, s.err
}

type stubContentClient struct {
	profile *instagram.Profile
	posts   []instagram.Media
	mediaID string
	err     error
}

func (s *stubContentClient) GetProfile(context.Context, string, string) (*instagram.Profile, error) {
	return s.profile, s.err
}

func (s *stubContentClient) ListPosts(context.Context, string, string, int) ([]instagram.Media, error) {
	return s.posts, s.err
}

func (s *stubContentClient) CreatePost(context.Context, string, string, string, string) (string, error) {
	return s.mediaID, s.err
}

func igAccount() *domain.SocialAccount {
	return &domain.SocialAccount{
		UserID:         7,
		Platform:       domain.PlatformInstagram,
		PlatformUserID: "17841400000000",
		AccessToken:    "token",
		IsActive:       true,
	}
}

func TestHandleGetInstagramProfile(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := instagram.NewService(
			&stubTokenSource{account: igAccount()},
			&stubContentClient{profile: &instagram.Profile{Username: "alice_fit"}},
		)
		handler := HandleGetInstagramProfile(svc)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authedRequest(http.MethodGet, "/instagram/profile", "", 7))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"alice_fit"`)
	})

	t.Run("no linked account", func(t *testing.T) {
		svc := instagram.NewService(&stubTokenSource{err: domain.ErrAccountNotFound}, &stubContentClient{})
		handler := HandleGetInstagramProfile(svc)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authedRequest(http.MethodGet, "/instagram/profile", "", 7))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgAccountNotFoundError)
	})

	t.Run("expired token that cannot refresh", func(t *testing.T) {
		svc := instagram.NewService(&stubTokenSource{err: domain.ErrRefreshFailed}, &stubContentClient{})
		handler := HandleGetInstagramProfile(svc)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authedRequest(http.MethodGet, "/instagram/profile", "", 7))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgRefreshFailedError)
	})
}

func TestHandleListInstagramPosts(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := instagram.NewService(
			&stubTokenSource{account: igAccount()},
			&stubContentClient{posts: []instagram.Media{{ID: "m1"}, {ID: "m2"}}},
		)
		handler := HandleListInstagramPosts(svc)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authedRequest(http.MethodGet, "/instagram/posts?limit=2", "", 7))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"m1"`)
	})

	t.Run("bad limit", func(t *testing.T) {
		svc := instagram.NewService(&stubTokenSource{account: igAccount()}, &stubContentClient{})
		handler := HandleListInstagramPosts(svc)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authedRequest(http.MethodGet, "/instagram/posts?limit=abc", "", 7))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidLimit)
	})
}

func TestHandleCreateInstagramPost(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := instagram.NewService(
			&stubTokenSource{account: igAccount()},
			&stubContentClient{mediaID: "post-99"},
		)
		handler := HandleCreateInstagramPost(svc)

		body := `{"image_url":"https://cdn.example.com/p.jpg","caption":"hello"}`
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authedRequest(http.MethodPost, "/instagram/posts", body, 7))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"media_id":"post-99"`)
	})

	t.Run("invalid image url fails validation", func(t *testing.T) {
		svc := instagram.NewService(&stubTokenSource{account: igAccount()}, &stubContentClient{})
		handler := HandleCreateInstagramPost(svc)

		body := `{"image_url":"not-a-url"}`
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authedRequest(http.MethodPost, "/instagram/posts", body, 7))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"imageurl"`)
	})
}
