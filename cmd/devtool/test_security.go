package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

type TestSecurityCommand struct{}

func (c *TestSecurityCommand) Name() string {
	return "test-security"
}

func (c *TestSecurityCommand) Description() string {
	return "Run API security tests"
}

func (c *TestSecurityCommand) Run(args []string) error {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	PrintHeader("Security Feature Tests")

	failures := 0

	// Test 1: Protected route without a token
	if !c.runTestCase(1, "Protected route without token (should fail with 401)", "GET", baseURL+"/api/v1/users/me", "", nil, 401) {
		failures++
	}

	// Test 2: Protected route with a garbage token
	if !c.runTestCase(2, "Protected route with garbage token (should fail with 401)", "GET", baseURL+"/api/v1/users/me", "not-a-real-token", nil, 401) {
		failures++
	}

	// Test 3: Registration is public
	if !c.runTestCase(3, "Registration without token (should succeed or conflict)", "POST", baseURL+"/api/v1/users", "", map[string]interface{}{
		"username": "sec_test_user",
		"email":    "sec_test_user@example.com",
		"password": "password123",
	}, 201) {
		failures++
	}

	// Test 4: Short password rejected
	if !c.runTestCase(4, "Short password (should fail with 400)", "POST", baseURL+"/api/v1/users", "", map[string]interface{}{
		"username": "sec_test_user2",
		"email":    "sec_test_user2@example.com",
		"password": "short",
	}, 400) {
		failures++
	}

	// Test 5: Username too long rejected
	longUsername := strings.Repeat("A", 200)
	if !c.runTestCase(5, "Username too long (should fail with 400)", "POST", baseURL+"/api/v1/users", "", map[string]interface{}{
		"username": longUsername,
		"email":    "sec_test_user3@example.com",
		"password": "password123",
	}, 400) {
		failures++
	}

	// Test 6: Login with wrong password
	if !c.runTestCase(6, "Login with wrong password (should fail with 401)", "POST", baseURL+"/api/v1/auth/token", "", map[string]interface{}{
		"username": "sec_test_user",
		"password": "definitely-wrong",
	}, 401) {
		failures++
	}

	// Test 7: Login then access protected route
	fmt.Println("Test 7: Login then access protected route")
	token, ok := c.login(baseURL, "sec_test_user", "password123")
	if !ok {
		fmt.Printf(" - Result: %slogin failed%s\n\n", colorRed, colorReset)
		failures++
	} else {
		statusCode := c.makeRequest("GET", baseURL+"/api/v1/users/me", token, nil)
		if statusCode == 200 {
			fmt.Printf(" - Result: %d (OK)\n\n", statusCode)
		} else {
			fmt.Printf(" - Result: %s%d (Expected 200)%s\n\n", colorRed, statusCode, colorReset)
			failures++
		}
	}

	if failures > 0 {
		PrintError("Security Tests Failed (%d failures)", failures)
		return fmt.Errorf("security tests failed")
	}

	PrintSuccess("Security Tests Complete")
	return nil
}

func (c *TestSecurityCommand) runTestCase(testNum int, description, method, url, token string, payload interface{}, expectedStatus int) bool {
	fmt.Printf("Test %d: %s\n", testNum, description)
	statusCode := c.makeRequest(method, url, token, payload)

	// Re-runs against a seeded database hit the duplicate-user conflict
	if statusCode == expectedStatus || (expectedStatus == 201 && statusCode == 409) {
		fmt.Printf(" - Result: %d (OK)\n", statusCode)
		fmt.Println()
		return true
	}
	fmt.Printf(" - Result: %s%d (Expected %d)%s\n", colorRed, statusCode, expectedStatus, colorReset)
	fmt.Println()
	return false
}

func (c *TestSecurityCommand) login(baseURL, username, password string) (string, bool) {
	body, _ := json.Marshal(map[string]interface{}{
		"username": username,
		"password": password,
	})

	resp, err := http.Post(baseURL+"/api/v1/auth/token", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", false
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", false
	}
	return tokenResp.AccessToken, tokenResp.AccessToken != ""
}

func (c *TestSecurityCommand) makeRequest(method, url, token string, payload interface{}) int {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Error marshaling payload: %v\n", err)
			return 0
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return 0
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		return 0
	}
	defer resp.Body.Close()

	return resp.StatusCode
}
