package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/noah-isme/shipquote/internal/resilience"
)

// ErrNoRoute is returned when the provider cannot resolve a route between
// the two addresses.
var ErrNoRoute = errors.New("distance: no route between addresses")

// MatrixClient queries an HTTP distance-matrix endpoint. The wrapped
// resilience client supplies per-attempt timeouts, retries and the circuit
// breaker; an open breaker surfaces as an ordinary measurement failure so
// the quote path falls back instead of erroring.
type MatrixClient struct {
	BaseURL string
	APIKey  string
	HTTP    resilience.HTTPClient
}

type matrixResponse struct {
	Status      string `json:"status"`
	Destination struct {
		Address string `json:"address"`
	} `json:"destination"`
	Distance struct {
		Meters int64 `json:"meters"`
	} `json:"distance"`
	Message string `json:"message"`
}

// Measure implements Measurer against the matrix endpoint.
func (c MatrixClient) Measure(ctx context.Context, origin, destination string) (Measurement, error) {
	if origin == "" || destination == "" {
		return Measurement{}, errors.New("distance: origin and destination are required")
	}

	endpoint, err := url.Parse(c.BaseURL)
	if err != nil {
		return Measurement{}, fmt.Errorf("distance: parse base url: %w", err)
	}
	endpoint = endpoint.JoinPath("v1", "distance")
	q := endpoint.Query()
	q.Set("origin", origin)
	q.Set("destination", destination)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Measurement{}, fmt.Errorf("distance: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(ctx, req)
	if err != nil {
		return Measurement{}, fmt.Errorf("distance: lookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Measurement{}, fmt.Errorf("distance: provider returned %s", resp.Status)
	}
	var payload matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Measurement{}, fmt.Errorf("distance: decode response: %w", err)
	}
	if payload.Status != "" && payload.Status != "OK" {
		if payload.Status == "ZERO_RESULTS" {
			return Measurement{}, ErrNoRoute
		}
		return Measurement{}, fmt.Errorf("distance: provider status %s: %s", payload.Status, payload.Message)
	}
	if payload.Distance.Meters <= 0 {
		return Measurement{}, ErrNoRoute
	}
	return Measurement{
		Km:              float64(payload.Distance.Meters) / 1000,
		ResolvedAddress: payload.Destination.Address,
	}, nil
}
