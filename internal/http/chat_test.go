package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"lumiere/internal/concierge"
)

func postChat(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/concierge", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestChat_OfflineFallbackReply(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postChat(t, app, `{"message":"Any penthouses with a sea view?"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var out struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Reply != concierge.OfflineReply {
		t.Fatalf("want offline reply, got %q", out.Reply)
	}
}

func TestChat_RejectsEmptyAndOversizedMessages(t *testing.T) {
	app, _, _ := newTestApp(t)

	if resp := postChat(t, app, `{"message":"   "}`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank message must 400, got %d", resp.StatusCode)
	}
	long := strings.Repeat("a", 1001)
	if resp := postChat(t, app, `{"message":"`+long+`"}`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("oversized message must 400, got %d", resp.StatusCode)
	}
	if resp := postChat(t, app, `{broken`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed JSON must 400, got %d", resp.StatusCode)
	}
}
