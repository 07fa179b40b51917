// Package api implements the authenticated HTTP session the control layer
// issues calls through.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second

	// Client-side politeness cap on outbound calls.
	defaultRateLimit = rate.Limit(10)
	defaultRateBurst = 5
)

// Options tunes a Session.
type Options struct {
	// Timeout bounds each HTTP call. Zero keeps the default.
	Timeout time.Duration
	// RateLimit / RateBurst cap outbound request rate. Zero keeps the
	// defaults.
	RateLimit rate.Limit
	RateBurst int
	// Token seeds the session with a previously issued JWT.
	Token string
}

// Session is one authenticated connection to the orchestration service. It
// is safe for concurrent use; the token is set at construction or by
// Authenticate, never mutated by request paths.
type Session struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSession creates a session against the given base URL (e.g.
// "https://deploy.example.com:9443").
func NewSession(baseURL string, opts Options) *Session {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	limit := opts.RateLimit
	if limit == 0 {
		limit = defaultRateLimit
	}
	burst := opts.RateBurst
	if burst == 0 {
		burst = defaultRateBurst
	}
	return &Session{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      opts.Token,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// Token returns the session's current JWT, "" when unauthenticated.
func (s *Session) Token() string {
	return s.token
}

// IsValidated reports whether the session holds a token that has not
// expired. Tokens without an exp claim count as valid; the server is the
// authority either way, this only avoids calls that are certain to fail.
func (s *Session) IsValidated() bool {
	if s.token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.token, claims); err != nil {
		log.Debug().Err(err).Msg("Token is not a parseable JWT, treating as opaque")
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.After(time.Now())
}

// authRequest and authResponse are the service's login exchange.
type authRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

type authResponse struct {
	JWT string `json:"jwt"`
}

// Authenticate logs in and stores the issued JWT on the session.
func (s *Session) Authenticate(ctx context.Context, username, password string) error {
	payload, err := s.do(ctx, http.MethodPost, "/api/auth", nil, authRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	var resp authResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}
	if resp.JWT == "" {
		return fmt.Errorf("auth response carried no token")
	}
	s.token = resp.JWT
	log.Debug().Str("username", username).Msg("Authenticated")
	return nil
}

// Get issues a GET and returns the raw payload.
func (s *Session) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return s.do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST with an optional JSON body.
func (s *Session) Post(ctx context.Context, path string, query url.Values, body any) ([]byte, error) {
	return s.do(ctx, http.MethodPost, path, query, body)
}

// Put issues a PUT with an optional JSON body.
func (s *Session) Put(ctx context.Context, path string, query url.Values, body any) ([]byte, error) {
	return s.do(ctx, http.MethodPut, path, query, body)
}

// Delete issues a DELETE.
func (s *Session) Delete(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return s.do(ctx, http.MethodDelete, path, query, nil)
}

// errorEnvelope is the service's error payload shape.
type errorEnvelope struct {
	Message string `json:"message"`
	Details string `json:"details"`
}

func (s *Session) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	target := s.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" && path != "/api/auth" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope errorEnvelope
		if json.Unmarshal(payload, &envelope) == nil && envelope.Message != "" {
			return nil, fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, envelope.Message)
		}
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	return payload, nil
}
