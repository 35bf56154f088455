//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestLinkStatus(t *testing.T) {
	username, password := registerStagingUser(t)
	token := login(t, username, password)

	resp, body := makeRequest(t, "GET", "/api/v1/oauth/status", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var status struct {
		Facebook  bool `json:"facebook"`
		Instagram bool `json:"instagram"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if status.Facebook || status.Instagram {
		t.Error("Expected fresh user to have no linked platforms")
	}
}

func TestLinkedAccountsEmpty(t *testing.T) {
	username, password := registerStagingUser(t)
	token := login(t, username, password)

	resp, body := makeRequest(t, "GET", "/api/v1/oauth/accounts", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Accounts []json.RawMessage `json:"accounts"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(result.Accounts) != 0 {
		t.Errorf("Expected no linked accounts for fresh user, got %d", len(result.Accounts))
	}
}

func TestInitiateInstagramLink(t *testing.T) {
	username, password := registerStagingUser(t)
	token := login(t, username, password)

	resp, body := makeRequest(t, "GET", "/api/v1/oauth/instagram/init", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var result struct {
		AuthorizationURL string `json:"authorization_url"`
		Platform         string `json:"platform"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if result.Platform != "instagram" {
		t.Errorf("Expected platform instagram, got %q", result.Platform)
	}
	if !strings.Contains(result.AuthorizationURL, "state=") {
		t.Errorf("Expected authorization URL to carry a state parameter, got %q", result.AuthorizationURL)
	}
}
