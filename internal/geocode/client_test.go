package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(serverURL string) *Client {
	c := NewClient()
	c.BaseURL = serverURL
	c.BaseDelay = time.Millisecond
	return c
}

func TestSearch(t *testing.T) {
	var gotUserAgent, gotQuery, gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"display_name":"Springfield, USA","lat":"39.8","lon":"-89.6","address":{"city":"Springfield","state":"Illinois","country":"USA"}}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	suggestions, err := client.Search(context.Background(), "Springfield")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].DisplayName != "Springfield, USA" {
		t.Errorf("DisplayName = %q", suggestions[0].DisplayName)
	}
	if suggestions[0].Address.City != "Springfield" {
		t.Errorf("Address.City = %q", suggestions[0].Address.City)
	}
	if gotUserAgent == "" {
		t.Error("request carried no User-Agent header")
	}
	if gotQuery != "Springfield" {
		t.Errorf("query param q = %q", gotQuery)
	}
	if gotLimit != "7" {
		t.Errorf("query param limit = %q", gotLimit)
	}
}

func TestSearchRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	suggestions, err := client.Search(context.Background(), "Springfield")
	if err != nil {
		t.Fatalf("Search returned error after retries: %v", err)
	}
	if suggestions == nil {
		t.Error("expected empty slice, got nil")
	}
	if attempts != 3 {
		t.Errorf("server saw %d attempts, expected 3", attempts)
	}
}

func TestSearchExhaustsRetryBudget(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), "Springfield")

	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	// initial attempt plus MaxRetries retries
	if attempts != 3 {
		t.Errorf("server saw %d attempts, expected 3", attempts)
	}
}

func TestSearchCancelledNotRetried(t *testing.T) {
	attempts := 0
	ctx, cancel := context.WithCancel(context.Background())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		cancel()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(ctx, "Springfield")

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("cancelled search was retried: %d attempts", attempts)
	}
}

func TestSearchCancelledDuringBackoff(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.BaseDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := client.Search(ctx, "Springfield")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected backoff wait to abort, server saw %d attempts", attempts)
	}
}

func TestSearchBadResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Search(context.Background(), "Springfield"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable for malformed body, got %v", err)
	}
}

func TestCityName(t *testing.T) {
	tests := []struct {
		address  SuggestionAddress
		expected string
	}{
		{SuggestionAddress{City: "Springfield", Town: "Other", StateDistrict: "District"}, "Springfield"},
		{SuggestionAddress{Town: "Smallville", StateDistrict: "District"}, "Smallville"},
		{SuggestionAddress{StateDistrict: "Greater Metro"}, "Greater Metro"},
		{SuggestionAddress{}, ""},
	}

	for _, test := range tests {
		if got := test.address.CityName(); got != test.expected {
			t.Errorf("CityName(%+v) = %q, expected %q", test.address, got, test.expected)
		}
	}
}
