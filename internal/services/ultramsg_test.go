package services

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/afiqzx/botrelay-backend/internal/config"
)

func newUltraMsgService(t *testing.T, handler http.HandlerFunc) *UltraMsgService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewUltraMsgService(&config.Config{
		UltraMsgToken:      "test-token",
		UltraMsgInstanceID: "instance1",
		UltraMsgBaseURL:    server.URL,
	})
}

func TestUltraMsgSendMessage(t *testing.T) {
	var captured url.Values
	svc := newUltraMsgService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/instance1/messages/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("token") != "test-token" {
			t.Errorf("missing token in query: %s", r.URL.RawQuery)
		}
		r.ParseForm()
		captured = r.PostForm
		w.Write([]byte(`{"sent":"true","id":101}`))
	})

	result := svc.SendMessage("60123456789", "hai bro", "msg-1")
	if !result.Sent {
		t.Fatalf("expected Sent=true, got %+v", result)
	}
	if captured.Get("to") != "60123456789" {
		t.Errorf("unexpected 'to' field: %q", captured.Get("to"))
	}
	if captured.Get("body") != "hai bro" {
		t.Errorf("unexpected 'body' field: %q", captured.Get("body"))
	}
	if captured.Get("replyMessageId") != "msg-1" {
		t.Errorf("unexpected 'replyMessageId' field: %q", captured.Get("replyMessageId"))
	}
}

func TestUltraMsgSendMessageRejected(t *testing.T) {
	svc := newUltraMsgService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sent":"false","error":"invalid token"}`))
	})

	result := svc.SendMessage("60123456789", "hai", "")
	if result.Sent {
		t.Error("expected Sent=false on sent:'false' response")
	}
}

func TestUltraMsgSendMessageNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := NewUltraMsgService(&config.Config{
		UltraMsgToken:      "test-token",
		UltraMsgInstanceID: "instance1",
		UltraMsgBaseURL:    server.URL,
	})

	result := svc.SendMessage("60123456789", "hai", "")
	if result.Sent {
		t.Error("expected Sent=false on network failure")
	}
}
