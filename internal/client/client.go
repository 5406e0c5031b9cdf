// Package client talks to the students service over HTTP.
//
// List, Create and Delete are each a single round trip. Nothing is
// retried: a failed call is reported to the caller once, as a
// *TransportError or a *ServiceError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aanand-mishra/student-manager/internal/types"
)

// CollectionPath is the single collection endpoint every operation targets.
const CollectionPath = "/api/v1/students"

// Config contains configuration for the students client.
type Config struct {
	// BaseURL is the service root, e.g. "http://localhost:8082".
	BaseURL string

	// Timeout is the HTTP client timeout. Zero means no timeout.
	Timeout time.Duration

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client

	// Logger for structured logging.
	Logger *slog.Logger
}

// Client is the students service client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new students client.
func New(cfg Config) *Client {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// List returns the whole collection in the order the service sends it.
// It never returns a partial list: on failure the slice is nil.
func (c *Client) List(ctx context.Context) ([]types.Student, error) {
	var students []types.Student
	if err := c.do(ctx, "list students", http.MethodGet, CollectionPath, nil, &students); err != nil {
		return nil, err
	}
	if students == nil {
		students = []types.Student{}
	}
	return students, nil
}

// Create persists draft and returns the stored record with its assigned ID.
// The service rejects missing fields and already-taken emails with a
// *ServiceError.
func (c *Client) Create(ctx context.Context, draft types.Draft) (types.Student, error) {
	var created types.Student
	if err := c.do(ctx, "create student", http.MethodPost, CollectionPath, draft, &created); err != nil {
		return types.Student{}, err
	}
	return created, nil
}

// Delete removes the student with the given id. Deleting an id that no
// longer exists fails with a 404 *ServiceError.
func (c *Client) Delete(ctx context.Context, id int64) error {
	path := CollectionPath + "/" + strconv.FormatInt(id, 10)
	return c.do(ctx, fmt.Sprintf("delete student %d", id), http.MethodDelete, path, nil, nil)
}

// do performs one HTTP round trip. Non-2xx responses become a *ServiceError,
// everything that prevents reading a response becomes a *TransportError.
func (c *Client) do(ctx context.Context, op, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal body: %w", op, err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("students api request", slog.String("method", method), slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("students api response",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serviceError(resp.StatusCode, respBody)
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}

	return nil
}

// serviceError builds a *ServiceError from a non-2xx response. Bodies that
// are not the usual {message,status,error} JSON still produce a useful error.
func serviceError(status int, body []byte) *ServiceError {
	svcErr := &ServiceError{Status: status}

	var parsed types.ErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		svcErr.Message = parsed.Message
		svcErr.Reason = parsed.Error
		if parsed.Status != 0 {
			svcErr.Status = parsed.Status
		}
	}

	if svcErr.Message == "" {
		svcErr.Message = strings.TrimSpace(string(body))
	}
	if svcErr.Message == "" {
		svcErr.Message = "request failed"
	}
	if svcErr.Reason == "" {
		svcErr.Reason = http.StatusText(status)
	}
	return svcErr
}
