// Package ecowitt fetches history telemetry from the Ecowitt device API.
package ecowitt

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// Config carries the credentials and endpoint for one station.
type Config struct {
	BaseURL        string
	ApplicationKey string
	APIKey         string
	StationMAC     string
	Timeout        time.Duration
}

// Client fetches one day of 5-minute history at a time and returns the
// response body verbatim, so the raw store preserves exactly what the API
// said. A circuit breaker keeps a long backfill from hammering a failing API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates an Ecowitt history client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ecowitt",
		MaxRequests: 3,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		circuit: cb,
		logger:  logger,
	}
}

// FetchDay requests the full 5-minute history for one calendar date
// (YYYY-MM-DD) in metric units and returns the verbatim response body.
func (c *Client) FetchDay(ctx context.Context, date string) ([]byte, error) {
	params := url.Values{
		"application_key": {c.cfg.ApplicationKey},
		"api_key":         {c.cfg.APIKey},
		"mac":             {c.cfg.StationMAC},
		"start_date":      {date + " 00:00:00"},
		"end_date":        {date + " 23:59:59"},

		// Metric unit ids: ºC, km/h, mm, hPa, W/m².
		"temp_unitid":             {"1"},
		"wind_speed_unitid":       {"7"},
		"rainfall_unitid":         {"12"},
		"pressure_unitid":         {"3"},
		"solar_irradiance_unitid": {"16"},

		"cycle_type": {"5min"},
		"call_back":  {"outdoor,rainfall,pressure,wind,solar_and_uvi"},
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, c.cfg.BaseURL+"?"+params.Encode())
	})
	if err != nil {
		return nil, fmt.Errorf("fetch day %s: %w", date, err)
	}
	return result.([]byte), nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("history request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ecowitt API error: status %d: %s", resp.StatusCode, snippet(body))
	}
	return body, nil
}

func snippet(body []byte) string {
	const maxLen = 200
	if len(body) > maxLen {
		return string(body[:maxLen]) + "…"
	}
	return string(body)
}
