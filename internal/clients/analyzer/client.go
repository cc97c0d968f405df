// Package analyzer provides the client for the remote stock analysis API.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/tickerview/internal/analysis"
)

// AnalyzePath is the endpoint serving symbol analyses.
const AnalyzePath = "/api/analyze"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// TransportError covers network failures, timeouts and non-2xx statuses.
// StatusCode is zero when no response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("analysis API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("analysis API request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client for the analysis API
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new analysis API client. A zero timeout leaves
// requests unbounded; callers can still cancel through the context.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "analyzer").Logger(),
	}
}

// BaseURL returns the endpoint base the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Analyze fetches the analysis for symbol. The error is a *TransportError,
// an *analysis.LogicalError or an *analysis.MalformedError.
func (c *Client) Analyze(ctx context.Context, symbol string) (*analysis.Result, error) {
	params := url.Values{"symbol": {symbol}}
	endpoint := c.baseURL + AnalyzePath + "?" + params.Encode()
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log := c.log.With().Str("symbol", symbol).Str("request_id", requestID).Logger()
	log.Debug().Str("url", endpoint).Msg("Fetching analysis")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("Analysis request failed")
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Msg("Analysis API returned error status")
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read analysis response")
		return nil, &TransportError{Err: fmt.Errorf("read body: %w", err)}
	}

	result, err := analysis.Decode(body)
	if err != nil {
		var logical *analysis.LogicalError
		if errors.As(err, &logical) {
			log.Info().Str("reason", logical.Message).Msg("Analysis API reported an error")
		} else {
			log.Warn().Err(err).Msg("Failed to decode analysis response")
		}
		return nil, err
	}

	if !result.ColorTag.Known() {
		log.Debug().Str("color_tag", string(result.ColorTag)).Msg("Unknown color tag, using yellow")
	}

	log.Info().
		Str("price", result.Price).
		Int("score", result.Score).
		Str("color_tag", string(result.ColorTag)).
		Dur("duration_ms", time.Since(start)).
		Msg("Fetched analysis")

	return result, nil
}
