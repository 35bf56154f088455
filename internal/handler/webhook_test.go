package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/whatsapp"
)

type stubUserLookup struct{}

func (stubUserLookup) GetUserByWhatsAppNumber(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

type stubSender struct{ sent int }

func (s *stubSender) SendText(context.Context, string, string) (string, error) {
	s.sent++
	return "wamid.stub", nil
}

func newWebhookService() (*whatsapp.Service, *stubSender) {
	sender := &stubSender{}
	return whatsapp.NewService(stubUserLookup{}, sender, nil, "verify-secret"), sender
}

func TestHandleWebhookVerify(t *testing.T) {
	svc, _ := newWebhookService()
	handler := HandleWebhookVerify(svc)

	t.Run("valid handshake echoes challenge as plain text", func(t *testing.T) {
		params := url.Values{}
		params.Set("hub.mode", "subscribe")
		params.Set("hub.verify_token", "verify-secret")
		params.Set("hub.challenge", "challenge-42")

		req := httptest.NewRequest(http.MethodGet, "/whatsapp/webhook?"+params.Encode(), nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "challenge-42", w.Body.String())
		assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
	})

	t.Run("wrong token returns 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=c", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandleWebhookReceive(t *testing.T) {
	t.Run("acknowledges an inbound message", func(t *testing.T) {
		svc, sender := newWebhookService()
		handler := HandleWebhookReceive(svc)

		body := `{"entry":[{"changes":[{"value":{"messages":[{"from":"15550100001","type":"text","text":{"body":"hi"}}]}}]}]}`
		req := httptest.NewRequest(http.MethodPost, "/whatsapp/webhook", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
		assert.Equal(t, 1, sender.sent)
	})

	t.Run("empty payload acknowledged as no entry", func(t *testing.T) {
		svc, _ := newWebhookService()
		handler := HandleWebhookReceive(svc)

		req := httptest.NewRequest(http.MethodPost, "/whatsapp/webhook", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"no entry"`)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc, _ := newWebhookService()
		handler := HandleWebhookReceive(svc)

		req := httptest.NewRequest(http.MethodPost, "/whatsapp/webhook", strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
