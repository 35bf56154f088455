package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const maxResponseBytes = 1 << 20

// Profile is an Instagram business profile.
type Profile struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Name              string `json:"name,omitempty"`
	Biography         string `json:"biography,omitempty"`
	FollowersCount    int64  `json:"followers_count"`
	FollowsCount      int64  `json:"follows_count"`
	MediaCount        int64  `json:"media_count"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	Website           string `json:"website,omitempty"`
}

// Media is a published Instagram post.
type Media struct {
	ID            string `json:"id"`
	Caption       string `json:"caption,omitempty"`
	MediaType     string `json:"media_type"`
	MediaURL      string `json:"media_url,omitempty"`
	Permalink     string `json:"permalink,omitempty"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
	Timestamp     string `json:"timestamp,omitempty"`
	LikeCount     int64  `json:"like_count"`
	CommentsCount int64  `json:"comments_count"`
}

type mediaListResponse struct {
	Data []Media `json:"data"`
}

type idResponse struct {
	ID string `json:"id"`
}

// graphError is the standard Graph API error envelope.
type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Client performs Instagram content operations against the Meta Graph API.
// Access tokens are passed per call so one client serves every linked account.
type Client struct {
	graphURL string
	client   *http.Client
}

// NewClient creates a content client. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		graphURL: DefaultGraphURL,
		client:   httpClient,
	}
}

// GetProfile fetches the business profile for an Instagram user id.
func (c *Client) GetProfile(ctx context.Context, accessToken, igUserID string) (*Profile, error) {
	params := url.Values{}
	params.Set("fields", ProfileFields)
	params.Set("access_token", accessToken)

	var profile Profile
	if err := c.get(ctx, fmt.Sprintf("%s/%s", c.graphURL, igUserID), params, &profile); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}

// ListPosts returns the most recent posts for an Instagram user id.
// A non-positive limit falls back to DefaultPostLimit.
func (c *Client) ListPosts(ctx context.Context, accessToken, igUserID string, limit int) ([]Media, error) {
	if limit <= 0 {
		limit = DefaultPostLimit
	}

	params := url.Values{}
	params.Set("fields", MediaFields)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("access_token", accessToken)

	var resp mediaListResponse
	if err := c.get(ctx, fmt.Sprintf("%s/%s/media", c.graphURL, igUserID), params, &resp); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return resp.Data, nil
}

// CreatePost publishes an image post in the Graph API's two-step flow:
// create a media container, then publish it. Returns the published media id.
func (c *Client) CreatePost(ctx context.Context, accessToken, igUserID, imageURL, caption string) (string, error) {
	form := url.Values{}
	form.Set("image_url", imageURL)
	form.Set("caption", caption)
	form.Set("access_token", accessToken)

	var container idResponse
	if err := c.postForm(ctx, fmt.Sprintf("%s/%s/media", c.graphURL, igUserID), form, &container); err != nil {
		return "", fmt.Errorf("failed to create media container: %w", err)
	}

	publish := url.Values{}
	publish.Set("creation_id", container.ID)
	publish.Set("access_token", accessToken)

	var published idResponse
	if err := c.postForm(ctx, fmt.Sprintf("%s/%s/media_publish", c.graphURL, igUserID), publish, &published); err != nil {
		return "", fmt.Errorf("failed to publish media container: %w", err)
	}
	return published.ID, nil
}

func (c *Client) get(ctx context.Context, rawURL string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, rawURL string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
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
		var ge graphError
		if json.Unmarshal(data, &ge) == nil && ge.Error.Message != "" {
			return fmt.Errorf("graph api error (code %d): %s", ge.Error.Code, ge.Error.Message)
		}
		return fmt.Errorf("graph api returned status %d: %s", res.StatusCode, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
