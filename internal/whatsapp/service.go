package whatsapp

import (
	"context"
	"errors"

	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/logger"
	"github.com/osse101/EasyPost_Go/internal/metrics"
)

// UserLookup resolves a WhatsApp number to a registered user.
type UserLookup interface {
	GetUserByWhatsAppNumber(ctx context.Context, number string) (*domain.User, error)
}

// Service handles webhook verification and inbound message dispatch.
type Service struct {
	users       UserLookup
	sender      Sender
	responder   Responder
	verifyToken string
}

// NewService creates a webhook service. A nil responder falls back to
// EchoResponder.
func NewService(users UserLookup, sender Sender, responder Responder, verifyToken string) *Service {
	if responder == nil {
		responder = EchoResponder{}
	}
	return &Service{
		users:       users,
		sender:      sender,
		responder:   responder,
		verifyToken: verifyToken,
	}
}

// VerifyWebhook checks the hub.* subscription handshake. On success it
// returns the challenge string to echo back.
func (s *Service) VerifyWebhook(ctx context.Context, mode, token, challenge string) (string, bool) {
	log := logger.FromContext(ctx)
	if mode == HubModeSubscribe && token != "" && token == s.verifyToken {
		log.Info(LogMsgWebhookVerified)
		return challenge, true
	}
	log.Warn(LogMsgWebhookRejected, "mode", mode)
	return "", false
}

// HandleWebhook processes an inbound webhook payload and returns a status
// string for the acknowledgement body. Errors replying to the sender are
// logged but never propagated: Meta retries on non-2xx responses and a
// failed reply is not worth a redelivery storm.
func (s *Service) HandleWebhook(ctx context.Context, payload WebhookPayload) string {
	log := logger.FromContext(ctx)

	message, ok := firstMessage(payload)
	if !ok {
		if len(payload.Entry) == 0 {
			return StatusNoEntry
		}
		return StatusIgnored
	}

	metrics.WebhookMessages.WithLabelValues(message.Type).Inc()
	log.Info(LogMsgMessageReceived, "from", message.From, "type", message.Type)

	user, err := s.users.GetUserByWhatsAppNumber(ctx, message.From)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			log.Info(LogMsgUnregisteredSender, "from", message.From)
			s.reply(ctx, message.From, ReplyUnregistered)
			return StatusOK
		}
		log.Error(LogErrFailedToGetUser, "error", err, "from", message.From)
		return StatusOK
	}

	if message.Type != MessageTypeText || message.Text == nil {
		return StatusIgnored
	}

	text, err := s.responder.Reply(ctx, user, message.Text.Body)
	if err != nil {
		log.Error(LogErrFailedToBuildReply, "error", err, "user_id", user.ID)
		return StatusOK
	}
	s.reply(ctx, message.From, text)
	return StatusOK
}

func (s *Service) reply(ctx context.Context, to, body string) {
	log := logger.FromContext(ctx)
	if _, err := s.sender.SendText(ctx, to, body); err != nil {
		log.Error(LogErrFailedToSendMessage, "error", err, "to", to)
	}
}

// firstMessage digs the first message out of the nested webhook envelope.
func firstMessage(payload WebhookPayload) (Message, bool) {
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if len(change.Value.Messages) > 0 {
				return change.Value.Messages[0], true
			}
		}
	}
	return Message{}, false
}
