package handler

import (
	"encoding/json"
	"net/http"

	"github.com/osse101/EasyPost_Go/internal/logger"
	"github.com/osse101/EasyPost_Go/internal/whatsapp"
)

// WebhookAckResponse acknowledges a processed webhook delivery.
type WebhookAckResponse struct {
	Status string `json:"status"`
}

// HandleWebhookVerify answers the Meta webhook subscription handshake
// @Summary Verify WhatsApp webhook
// @Description Echoes hub.challenge when the verify token matches
// @Tags whatsapp
// @Produce plain
// @Param hub.mode query string true "Subscription mode"
// @Param hub.verify_token query string true "Verify token"
// @Param hub.challenge query string true "Challenge to echo"
// @Success 200 {string} string
// @Failure 403 {string} string
// @Router /whatsapp/webhook [get]
func HandleWebhookVerify(svc *whatsapp.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		challenge, ok := svc.VerifyWebhook(r.Context(),
			query.Get(whatsapp.QueryParamHubMode),
			query.Get(whatsapp.QueryParamHubVerifyToken),
			query.Get(whatsapp.QueryParamHubChallenge),
		)
		if !ok {
			http.Error(w, ErrMsgWebhookVerifyFailed, http.StatusForbidden)
			return
		}

		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(challenge))
	}
}

// HandleWebhookReceive processes inbound WhatsApp messages
// @Summary Receive WhatsApp webhook
// @Tags whatsapp
// @Accept json
// @Produce json
// @Success 200 {object} WebhookAckResponse
// @Router /whatsapp/webhook [post]
func HandleWebhookReceive(svc *whatsapp.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var payload whatsapp.WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Warn("Failed to decode webhook payload", "error", err)
			http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
			return
		}

		status := svc.HandleWebhook(r.Context(), payload)
		respondJSON(w, http.StatusOK, WebhookAckResponse{Status: status})
	}
}
