package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/osse101/EasyPost_Go/internal/metrics"
)

const (
	maxResponseBytes = 1 << 20
	maxMediaBytes    = 32 << 20
)

// Sender sends outbound messages to a WhatsApp number.
type Sender interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// MediaFetcher resolves and downloads media attached to inbound messages.
type MediaFetcher interface {
	GetMediaURL(ctx context.Context, mediaID string) (string, error)
	DownloadMedia(ctx context.Context, mediaURL string) ([]byte, error)
}

// Client talks to the WhatsApp Cloud API on the Meta Graph endpoint.
type Client struct {
	accessToken   string
	phoneNumberID string
	graphURL      string
	client        *http.Client
}

// NewClient creates a Cloud API client. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(accessToken, phoneNumberID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		graphURL:      DefaultGraphURL,
		client:        httpClient,
	}
}

// SendText delivers a text message and returns the provider message id.
func (c *Client) SendText(ctx context.Context, to, body string) (string, error) {
	payload := sendTextRequest{
		MessagingProduct: MessagingProduct,
		To:               to,
		Type:             MessageTypeText,
		Text:             TextBody{Body: body},
	}

	var resp sendResponse
	if err := c.post(ctx, fmt.Sprintf("%s/%s/messages", c.graphURL, c.phoneNumberID), payload, &resp); err != nil {
		return "", fmt.Errorf("failed to send text message: %w", err)
	}

	metrics.MessagesSent.WithLabelValues(MessageTypeText).Inc()

	if len(resp.Messages) > 0 {
		return resp.Messages[0].ID, nil
	}
	return "", nil
}

// GetMediaURL resolves a webhook media id to a short-lived download URL.
func (c *Client) GetMediaURL(ctx context.Context, mediaID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.graphURL, mediaID), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	res, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = res.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cloud api returned status %d: %s", res.StatusCode, data)
	}

	var media mediaResponse
	if err := json.Unmarshal(data, &media); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if media.URL == "" {
		return "", fmt.Errorf("media %s has no download url", mediaID)
	}
	return media.URL, nil
}

// DownloadMedia fetches media bytes from a URL returned by GetMediaURL.
// The download requires the same bearer token as the API itself.
func (c *Client) DownloadMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media download returned status %d", res.StatusCode)
	}
	return io.ReadAll(io.LimitReader(res.Body, maxMediaBytes))
}

func (c *Client) post(ctx context.Context, url string, payload, out any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("cloud api returned status %d: %s", res.StatusCode, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
