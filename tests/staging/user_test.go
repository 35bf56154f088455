//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

// registerStagingUser creates a unique throwaway user and returns its credentials
func registerStagingUser(t *testing.T) (username, password string) {
	t.Helper()

	username = fmt.Sprintf("staging_user_%d", time.Now().UnixNano())
	password = "staging-password-1"

	request := map[string]interface{}{
		"username": username,
		"email":    username + "@staging.example.com",
		"password": password,
		"niche":    "staging",
	}

	resp, body := makeRequest(t, "POST", "/api/v1/users", "", request)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Registration failed with status %d: %s", resp.StatusCode, string(body))
	}
	return username, password
}

func TestUserRegistration(t *testing.T) {
	username, _ := registerStagingUser(t)

	// Registering the same username again conflicts
	request := map[string]interface{}{
		"username": username,
		"email":    username + "@staging.example.com",
		"password": "staging-password-1",
	}
	resp, body := makeRequest(t, "POST", "/api/v1/users", "", request)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected status 409 for duplicate username, got %d. Body: %s", resp.StatusCode, string(body))
	}
}

func TestCurrentUser(t *testing.T) {
	username, password := registerStagingUser(t)
	token := login(t, username, password)

	resp, body := makeRequest(t, "GET", "/api/v1/users/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Username string `json:"username"`
		IsActive bool   `json:"is_active"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if result.Username != username {
		t.Errorf("Expected username %q, got %q", username, result.Username)
	}
	if !result.IsActive {
		t.Error("Expected newly registered user to be active")
	}
}

func TestUpdateCurrentUser(t *testing.T) {
	username, password := registerStagingUser(t)
	token := login(t, username, password)

	resp, body := makeRequest(t, "PATCH", "/api/v1/users/me", token, map[string]string{
		"niche": "fitness",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Niche string `json:"niche"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if result.Niche != "fitness" {
		t.Errorf("Expected niche %q, got %q", "fitness", result.Niche)
	}
}

func TestCurrentUserRequiresAuth(t *testing.T) {
	resp, _ := makeRequest(t, "GET", "/api/v1/users/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without token, got %d", resp.StatusCode)
	}
}
