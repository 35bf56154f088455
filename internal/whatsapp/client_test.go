package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-access-token", "12345", server.Client())
	client.graphURL = server.URL
	return client
}

func TestClient_SendText(t *testing.T) {
	t.Run("posts correct payload and returns message id", func(t *testing.T) {
		var captured sendTextRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/12345/messages", r.URL.Path)
			assert.Equal(t, "Bearer test-access-token", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.test123"}]}`))
		})

		id, err := client.SendText(context.Background(), "15550100001", "hello")
		require.NoError(t, err)

		assert.Equal(t, "wamid.test123", id)
		assert.Equal(t, MessagingProduct, captured.MessagingProduct)
		assert.Equal(t, "15550100001", captured.To)
		assert.Equal(t, MessageTypeText, captured.Type)
		assert.Equal(t, "hello", captured.Text.Body)
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"invalid recipient"}}`))
		})

		_, err := client.SendText(context.Background(), "bad", "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 400")
	})

	t.Run("empty messages array yields empty id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"messages":[]}`))
		})

		id, err := client.SendText(context.Background(), "15550100001", "hello")
		require.NoError(t, err)
		assert.Empty(t, id)
	})
}

func TestClient_GetMediaURL(t *testing.T) {
	t.Run("resolves media id to download url", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/media-id-9", r.URL.Path)
			assert.Equal(t, "Bearer test-access-token", r.Header.Get("Authorization"))

			_, _ = w.Write([]byte(`{"url":"https://lookaside.example.com/file","mime_type":"audio/ogg","id":"media-id-9"}`))
		})

		url, err := client.GetMediaURL(context.Background(), "media-id-9")
		require.NoError(t, err)
		assert.Equal(t, "https://lookaside.example.com/file", url)
	})

	t.Run("missing url field is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"media-id-9"}`))
		})

		_, err := client.GetMediaURL(context.Background(), "media-id-9")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no download url")
	})
}

func TestClient_DownloadMedia(t *testing.T) {
	t.Run("downloads bytes with bearer auth", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-access-token", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte("ogg-bytes"))
		}))
		t.Cleanup(server.Close)

		client := NewClient("test-access-token", "12345", server.Client())

		data, err := client.DownloadMedia(context.Background(), server.URL+"/file")
		require.NoError(t, err)
		assert.Equal(t, []byte("ogg-bytes"), data)
	})

	t.Run("non-200 download is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		t.Cleanup(server.Close)

		client := NewClient("test-access-token", "12345", server.Client())

		_, err := client.DownloadMedia(context.Background(), server.URL+"/file")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 403")
	})
}
