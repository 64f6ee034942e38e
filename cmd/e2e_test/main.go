package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const baseURL = "http://localhost:8080"

// Smoke test against a running server seeded with cmd/seed. Registers a
// fresh user, trades against HDFC_EQTY and walks the read endpoints.
func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	// 1. Health Check
	checkEndpoint("GET", "/health", nil, 200)

	// 2. Register a fresh user
	username := fmt.Sprintf("e2e-user-%d", time.Now().Unix())
	userID := registerUser(username)
	fmt.Printf("Registered user %s with ID: %d\n", username, userID)

	// 3. Resolve the seeded script
	scriptID := int64(1)

	// 4. Buy units
	checkEndpoint("POST", "/v1/api/transactions/buy", map[string]interface{}{
		"user_id": userID, "script_id": scriptID, "amount": "1000",
	}, 200)

	// 5. Portfolio shows the new holding
	checkEndpoint("GET", fmt.Sprintf("/v1/api/transactions/portfolio/%d", userID), nil, 200)

	// 6. Redeem part of it
	checkEndpoint("POST", "/v1/api/transactions/redeem", map[string]interface{}{
		"user_id": userID, "script_id": scriptID, "units": "1",
	}, 200)

	// 7. Over-redeem must be rejected
	checkEndpoint("POST", "/v1/api/transactions/redeem", map[string]interface{}{
		"user_id": userID, "script_id": scriptID, "units": "999999",
	}, 400)

	// 8. History lists both ledger entries
	checkEndpoint("GET", fmt.Sprintf("/v1/api/transactions/history/%d", userID), nil, 200)

	fmt.Println("ALL TESTS PASSED")
}

func registerUser(username string) int64 {
	body := map[string]interface{}{"username": username, "password": "e2e-pass", "role": "USER"}
	b, _ := json.Marshal(body)
	resp, err := http.Post(baseURL+"/v1/api/admin/users/register", "application/json", bytes.NewReader(b))
	if err != nil {
		log.Fatalf("register user failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 201 {
		raw, _ := io.ReadAll(resp.Body)
		log.Fatalf("register user: expected 201, got %d: %s", resp.StatusCode, raw)
	}
	var out struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Fatalf("decode register response: %v", err)
	}
	return out.ID
}

func checkEndpoint(method, path string, body interface{}, expectedStatus int) {
	fmt.Printf("Testing %s %s...\n", method, path)
	var bodyReader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("%s %s: expected %d, got %d: %s", method, path, expectedStatus, resp.StatusCode, raw)
	}
	fmt.Printf("  OK (%d)\n", resp.StatusCode)
}
