package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/afiqzx/botrelay-backend/internal/handlers"
	"github.com/afiqzx/botrelay-backend/internal/storage"
)

func newStatusApp(t *testing.T) (*fiber.App, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	handler := handlers.NewStatusHandler(store)

	app := fiber.New()
	app.Get("/status", handler.HandleStatusPage)
	app.Post("/status", handler.HandleStatusToggle)
	return app, store
}

func TestStatusPageShowsOnByDefault(t *testing.T) {
	app, _ := newStatusApp(t)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("expected HTML content type, got %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, `>ON</span>`) {
		t.Errorf("expected status ON on page:\n%s", page)
	}
	if !strings.Contains(page, "Turn Bot OFF") {
		t.Error("expected OFF toggle button while bot is on")
	}
}

func TestStatusToggleOff(t *testing.T) {
	app, store := newStatusApp(t)

	form := url.Values{}
	form.Set("toggle", "off")
	req := httptest.NewRequest(http.MethodPost, "/status", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	isOn, _ := store.GetBotStatus()
	if isOn {
		t.Error("expected stored status OFF after toggle")
	}

	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, `>OFF</span>`) {
		t.Errorf("expected status OFF on page:\n%s", page)
	}
	if !strings.Contains(page, "Bot berjaya ditukar ke status: OFF.") {
		t.Error("expected toggle confirmation message")
	}
}

func TestStatusToggleNoChange(t *testing.T) {
	app, store := newStatusApp(t)
	store.SetBotStatus(false)

	form := url.Values{}
	form.Set("toggle", "off")
	req := httptest.NewRequest(http.MethodPost, "/status", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Bot sudah berada dalam status OFF.") {
		t.Error("expected already-in-state message")
	}
	if isOn, _ := store.GetBotStatus(); isOn {
		t.Error("status must remain OFF")
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestStatusToggleBackOn(t *testing.T) {
	app, store := newStatusApp(t)
	store.SetBotStatus(false)

	form := url.Values{}
	form.Set("toggle", "on")
	req := httptest.NewRequest(http.MethodPost, "/status", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if isOn, _ := store.GetBotStatus(); !isOn {
		t.Error("expected stored status ON after toggle")
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Bot berjaya ditukar ke status: ON.") {
		t.Error("expected toggle confirmation message")
	}
}
