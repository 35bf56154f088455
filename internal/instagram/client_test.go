package instagram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.Client())
	client.graphURL = server.URL
	return client
}

func TestClient_GetProfile(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/17841400000000", r.URL.Path)
		assert.Equal(t, ProfileFields, r.URL.Query().Get("fields"))
		assert.Equal(t, "user-token", r.URL.Query().Get("access_token"))

		_, _ = w.Write([]byte(`{"id":"17841400000000","username":"alice_fit","followers_count":1200,"media_count":34}`))
	}))

	profile, err := client.GetProfile(context.Background(), "user-token", "17841400000000")
	require.NoError(t, err)

	assert.Equal(t, "alice_fit", profile.Username)
	assert.Equal(t, int64(1200), profile.FollowersCount)
	assert.Equal(t, int64(34), profile.MediaCount)
}

func TestClient_ListPosts(t *testing.T) {
	t.Run("returns media with requested limit", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/17841400000000/media", r.URL.Path)
			assert.Equal(t, "3", r.URL.Query().Get("limit"))

			_, _ = w.Write([]byte(`{"data":[
				{"id":"m1","media_type":"IMAGE","caption":"first","like_count":10},
				{"id":"m2","media_type":"VIDEO","like_count":4,"comments_count":2}
			]}`))
		}))

		posts, err := client.ListPosts(context.Background(), "user-token", "17841400000000", 3)
		require.NoError(t, err)

		require.Len(t, posts, 2)
		assert.Equal(t, "m1", posts[0].ID)
		assert.Equal(t, int64(10), posts[0].LikeCount)
		assert.Equal(t, "VIDEO", posts[1].MediaType)
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))

		posts, err := client.ListPosts(context.Background(), "user-token", "17841400000000", 0)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

func TestClient_CreatePost(t *testing.T) {
	t.Run("container then publish", func(t *testing.T) {
		var containerForm, publishForm map[string]string
		mux := http.NewServeMux()
		mux.HandleFunc("/17841400000000/media", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			containerForm = map[string]string{
				"image_url": r.PostForm.Get("image_url"),
				"caption":   r.PostForm.Get("caption"),
			}
			_, _ = w.Write([]byte(`{"id":"container-1"}`))
		})
		mux.HandleFunc("/17841400000000/media_publish", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			publishForm = map[string]string{"creation_id": r.PostForm.Get("creation_id")}
			_, _ = w.Write([]byte(`{"id":"post-99"}`))
		})
		client := newTestClient(t, mux)

		mediaID, err := client.CreatePost(context.Background(), "user-token", "17841400000000", "https://cdn.example.com/p.jpg", "hello world")
		require.NoError(t, err)

		assert.Equal(t, "post-99", mediaID)
		assert.Equal(t, "https://cdn.example.com/p.jpg", containerForm["image_url"])
		assert.Equal(t, "hello world", containerForm["caption"])
		assert.Equal(t, "container-1", publishForm["creation_id"])
	})

	t.Run("container failure surfaces graph error message", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Invalid image URL","type":"OAuthException","code":100}}`))
		}))

		_, err := client.CreatePost(context.Background(), "user-token", "17841400000000", "not-a-url", "caption")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid image URL")
	})

	t.Run("publish failure", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/17841400000000/media", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"container-1"}`))
		})
		mux.HandleFunc("/17841400000000/media_publish", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"Transient error","code":2}}`))
		})
		client := newTestClient(t, mux)

		_, err := client.CreatePost(context.Background(), "user-token", "17841400000000", "https://cdn.example.com/p.jpg", "caption")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish media container")
	})
}
