package whatsapp

import (
	"context"
	"fmt"

	"github.com/osse101/EasyPost_Go/internal/domain"
)

// Responder builds the reply text for an inbound message from a known user.
// Implementations can plug in anything from a canned echo to a full
// conversational backend.
type Responder interface {
	Reply(ctx context.Context, user *domain.User, text string) (string, error)
}

// EchoResponder repeats the user's message back. Used as the default
// responder until a richer one is wired in.
type EchoResponder struct{}

func (EchoResponder) Reply(_ context.Context, _ *domain.User, text string) (string, error) {
	return fmt.Sprintf("You said: %s", text), nil
}
