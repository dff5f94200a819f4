// Package geocode turns free-text addresses into place suggestions via
// the Nominatim search API, retrying transient failures and degrading
// to manual coordinate entry when the service stays unavailable.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org/search"

// ErrUnavailable means every attempt failed; the operator can still
// enter coordinates manually
var ErrUnavailable = errors.New("location search unavailable")

// Suggestion is one geocoding result. Suggestions are ephemeral: they
// live only for the autocomplete interaction that produced them.
type Suggestion struct {
	DisplayName string            `json:"display_name"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Address     SuggestionAddress `json:"address"`
}

// SuggestionAddress carries the structured address detail
type SuggestionAddress struct {
	City          string `json:"city,omitempty"`
	Town          string `json:"town,omitempty"`
	StateDistrict string `json:"state_district,omitempty"`
	State         string `json:"state,omitempty"`
	Country       string `json:"country,omitempty"`
}

// CityName picks the best city value, preferring city, then town, then
// state district
func (a SuggestionAddress) CityName() string {
	if a.City != "" {
		return a.City
	}
	if a.Town != "" {
		return a.Town
	}
	return a.StateDistrict
}

// Client queries the geocoding service with a per-attempt timeout and a
// fixed retry budget with exponential backoff between attempts
type Client struct {
	BaseURL        string
	UserAgent      string
	HTTPClient     *http.Client
	Limit          int
	MaxRetries     int
	BaseDelay      time.Duration
	AttemptTimeout time.Duration
}

// NewClient creates a client with production defaults
func NewClient() *Client {
	return &Client{
		BaseURL:        defaultBaseURL,
		UserAgent:      "spinadmin/1.0",
		HTTPClient:     &http.Client{},
		Limit:          7,
		MaxRetries:     2,
		BaseDelay:      time.Second,
		AttemptTimeout: 10 * time.Second,
	}
}

// Search looks up a free-text query. Transient failures are retried up
// to MaxRetries extra attempts; a cancelled context aborts silently and
// is never retried, since the caller superseded or abandoned the query.
// After the retry budget is exhausted the error wraps ErrUnavailable.
func (c *Client) Search(ctx context.Context, query string) ([]Suggestion, error) {
	var lastErr error

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.BaseDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		suggestions, err := c.search(ctx, query)
		if err == nil {
			return suggestions, nil
		}
		if ctx.Err() != nil {
			// superseded or abandoned by the caller, not a failure
			return nil, ctx.Err()
		}

		lastErr = err
		log.Debug().Err(err).Int("attempt", attempt+1).Str("query", query).Msg("Geocode attempt failed")
	}

	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (c *Client) search(ctx context.Context, query string) ([]Suggestion, error) {
	// the timeout is a delayed cancellation on the same context chain,
	// so a slow attempt counts as transient and gets retried
	attemptCtx, cancel := context.WithTimeout(ctx, c.AttemptTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", fmt.Sprintf("%d", c.Limit))
	params.Set("q", query)

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim policy requires an identifying client header
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("geocoding service returned status %d", res.StatusCode)
	}

	var suggestions []Suggestion
	if err := json.NewDecoder(res.Body).Decode(&suggestions); err != nil {
		return nil, fmt.Errorf("invalid response format: %w", err)
	}

	return suggestions, nil
}
