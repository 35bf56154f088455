package whatsapp

// DefaultGraphURL is the Meta Graph API base used by the Cloud API.
const DefaultGraphURL = "https://graph.facebook.com/v22.0"

// MessagingProduct is the fixed product identifier the Cloud API requires.
const MessagingProduct = "whatsapp"

// Message types seen on the webhook and used when sending.
const (
	MessageTypeText  = "text"
	MessageTypeAudio = "audio"
	MessageTypeImage = "image"
)

// Webhook verification parameters (hub.* query parameters).
const (
	HubModeSubscribe = "subscribe"

	QueryParamHubMode        = "hub.mode"
	QueryParamHubVerifyToken = "hub.verify_token"
	QueryParamHubChallenge   = "hub.challenge"
)

// Webhook handling statuses returned to Meta.
const (
	StatusOK      = "ok"
	StatusNoEntry = "no entry"
	StatusIgnored = "ignored"
)

// ReplyUnregistered is sent to numbers with no matching user.
const ReplyUnregistered = "You are not a registered user."

// Log Messages
const (
	LogMsgWebhookVerified      = "Webhook verification succeeded"
	LogMsgWebhookRejected      = "Webhook verification failed"
	LogMsgMessageReceived      = "Webhook message received"
	LogErrFailedToSendMessage  = "Failed to send WhatsApp message"
	LogErrFailedToBuildReply   = "Failed to build reply"
	LogErrFailedToGetUser      = "Failed to look up user for inbound message"
	LogMsgUnregisteredSender   = "Message from unregistered number"
)
