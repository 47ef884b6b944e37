package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/client/models"
	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/google/uuid"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient returns a client for the API rooted at baseURL
// (e.g. "http://localhost:5000/api"). A non-positive timeout disables the
// per-call deadline.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	hc := &http.Client{}
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		logger:  logger,
	}
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (Result[models.Ack], error) {
	return post[models.Ack](ctx, c, "/register", "", req)
}

func (c *HTTPClient) LoginChallenge(ctx context.Context, req models.LoginChallengeRequest) (Result[models.Ack], error) {
	return post[models.Ack](ctx, c, "/login-challenge", "", req)
}

func (c *HTTPClient) Verify(ctx context.Context, req models.VerifyRequest) (Result[models.VerifyResponse], error) {
	return post[models.VerifyResponse](ctx, c, "/verify", "", req)
}

func (c *HTTPClient) ForgotPattern(ctx context.Context, req models.ForgotPatternRequest) (Result[models.Ack], error) {
	return post[models.Ack](ctx, c, "/forgot-pattern", "", req)
}

func (c *HTTPClient) ResetPattern(ctx context.Context, req models.ResetPatternRequest) (Result[models.Ack], error) {
	return post[models.Ack](ctx, c, "/reset-pattern", "", req)
}

func (c *HTTPClient) SubmitScore(ctx context.Context, token string, req models.ScoreRequest) (Result[models.Ack], error) {
	return post[models.Ack](ctx, c, "/scores", token, req)
}

// envelope picks the error indicator out of any response body.
type envelope struct {
	Error *string `json:"error"`
}

func post[T any](ctx context.Context, c *HTTPClient, path, token string, body any) (Result[T], error) {
	var zero Result[T]

	payload, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return zero, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.logger.With("path", path, "request_id", requestID)
	log.Debug(ctx, "collaborator call")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(ctx, "collaborator call failed", "error", err)
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Error(ctx, "reading response failed", "error", err)
		return zero, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Error(ctx, "unreadable response", "status", resp.StatusCode, "error", err)
		return zero, fmt.Errorf("%w: %w: status %d", ErrUnavailable, ErrMalformedResponse, resp.StatusCode)
	}
	if env.Error != nil {
		log.Debug(ctx, "collaborator rejected call", "status", resp.StatusCode)
		return Failure[T](*env.Error), nil
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Error(ctx, "unexpected success body", "status", resp.StatusCode, "error", err)
		return zero, fmt.Errorf("%w: %w: %v", ErrUnavailable, ErrMalformedResponse, err)
	}
	return Success(out), nil
}
