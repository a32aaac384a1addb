package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLiveFeedFetchSuccess(t *testing.T) {
	server := feedServer(t, http.StatusOK,
		`{"mandi":"Adilabad","price":2100.5,"predicted":2250.0,"decision":"WAIT – Prices likely to increase"}`)

	feed := NewLiveFeed(LiveFeedOptions{BaseURL: server.URL, Timeout: time.Second, Logger: zerolog.Nop()})
	result := feed.Fetch(context.Background(), "Wheat")

	if !result.Available() {
		t.Fatalf("expected an available quote, got error: %v", result.Err)
	}
	if result.Quote.Mandi != "Adilabad" || result.Quote.Price != 2100.5 {
		t.Errorf("unexpected quote: %+v", result.Quote)
	}
}

func TestLiveFeedFetchUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, "boom"},
		{"not found", http.StatusNotFound, "{}"},
		{"malformed payload", http.StatusOK, "<html>not json</html>"},
		{"empty object", http.StatusOK, "{}"},
		{"missing decision", http.StatusOK, `{"mandi":"Adilabad","price":2100,"predicted":2250}`},
		{"missing price", http.StatusOK, `{"mandi":"Adilabad","predicted":2250,"decision":"WAIT"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := feedServer(t, tt.status, tt.body)
			feed := NewLiveFeed(LiveFeedOptions{BaseURL: server.URL, Timeout: time.Second, Logger: zerolog.Nop()})

			result := feed.Fetch(context.Background(), "Wheat")

			if result.Available() {
				t.Fatal("expected unavailable result")
			}
			if result.Err == nil {
				t.Fatal("expected an inspectable reason")
			}
		})
	}
}

func TestLiveFeedNotConfigured(t *testing.T) {
	var feed *LiveFeed

	result := feed.Fetch(context.Background(), "Wheat")
	if result.Available() {
		t.Fatal("expected unavailable result from a nil feed")
	}
	if result.Err == nil {
		t.Fatal("expected a reason from a nil feed")
	}
}

func TestLiveFeedTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	feed := NewLiveFeed(LiveFeedOptions{BaseURL: server.URL, Timeout: 50 * time.Millisecond, Logger: zerolog.Nop()})

	result := feed.Fetch(context.Background(), "Wheat")
	if result.Available() {
		t.Fatal("expected unavailable result on timeout")
	}
}
