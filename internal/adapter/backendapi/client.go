package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/dto"
	"eduquiz-web/internal/port"

	"go.uber.org/zap"
)

const (
	pathSignUp       = "/auth/signup"
	pathSignIn       = "/auth/signin"
	pathSignOut      = "/auth/signout"
	pathGenerateQuiz = "/generate-quiz"
)

// Client talks to the quiz-generation backend. Requests carry no timeout
// and are never retried; the caller's context is the only cancellation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New builds a client for baseURL with a debug-logging transport.
func New(baseURL string, logger *zap.Logger) (*Client, error) {
	return NewWithHTTPClient(baseURL, logger, nil)
}

// NewWithHTTPClient is intended for tests; httpClient's transport is wrapped
// with request logging.
func NewWithHTTPClient(baseURL string, logger *zap.Logger, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backendapi: base_url required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var base http.RoundTripper
	if httpClient != nil {
		base = httpClient.Transport
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Transport: &loggingTransport{base: base, logger: logger}},
		logger:     logger,
	}, nil
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.postJSON(ctx, pathSignUp, "", dto.AuthRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.postJSON(ctx, pathSignIn, "", dto.AuthRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.postJSON(ctx, pathSignOut, token, struct{}{}, nil)
}

func (c *Client) GenerateQuiz(ctx context.Context, text string) ([]domain.Question, error) {
	var out dto.GenerateQuizResponse
	if err := c.postJSON(ctx, pathGenerateQuiz, "", dto.GenerateQuizRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return out.Quiz, nil
}

// postJSON sends body to path and decodes a 2xx response into out (if
// non-nil). Every failure is returned as a backend DomainError.
func (c *Client) postJSON(ctx context.Context, path, bearer string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.NewBackendError(0, "", fmt.Errorf("encode %s request: %w", path, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return domain.NewBackendError(0, "", fmt.Errorf("build %s request: %w", path, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewBackendError(0, "", fmt.Errorf("POST %s: %w", path, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewBackendError(resp.StatusCode, "", fmt.Errorf("read %s response: %w", path, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb dto.ErrorResponse
		_ = json.Unmarshal(raw, &eb)
		return domain.NewBackendError(resp.StatusCode, strings.TrimSpace(eb.Error),
			fmt.Errorf("POST %s: status %d", path, resp.StatusCode))
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.NewBackendError(resp.StatusCode, "", fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

var _ port.BackendAPI = (*Client)(nil)
