// Package apiclient talks to the ERP backend on behalf of the console
// client. Actions whose path moved between server releases are tried
// against an ordered list of candidate routes.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const maxResponseBytes = 10 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	routes     Routes
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithRoutes(r Routes) Option {
	return func(c *Client) { c.routes = r }
}

// New creates a client for baseURL, e.g. "http://localhost:8080/api/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     &MemoryTokenStore{},
		routes:     DefaultRoutes(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokens returns the store holding the session.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

// accessToken returns a usable bearer token, refreshing an expired one.
// No stored session yields an empty token.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	tok, err := c.tokens.Load()
	if err != nil || tok == nil {
		return "", err
	}
	if tok.Valid() {
		return tok.AccessToken, nil
	}
	if tok.RefreshToken == "" {
		return tok.AccessToken, nil
	}
	refreshed, err := c.refresh(ctx, tok)
	if err != nil {
		return "", err
	}
	return refreshed.AccessToken, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}, bearer string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req, nil
}

// do sends one request and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	bearer := ""
	if !isAuthExempt(path) {
		var err error
		if bearer, err = c.accessToken(ctx); err != nil {
			return err
		}
	}

	req, err := c.newRequest(ctx, method, path, body, bearer)
	if err != nil {
		return err
	}
	raw, status, err := c.send(req)
	if err != nil {
		return c.transportError(method, path, err)
	}
	if status >= http.StatusBadRequest {
		return c.failure(method, path, status, raw)
	}
	return decodeData(raw, out)
}

// doRaw sends a GET and returns the body untouched, for binary downloads.
func (c *Client) doRaw(ctx context.Context, path string) ([]byte, error) {
	bearer, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, bearer)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")
	raw, status, err := c.send(req)
	if err != nil {
		return nil, c.transportError(http.MethodGet, path, err)
	}
	if status >= http.StatusBadRequest {
		return nil, c.failure(http.MethodGet, path, status, raw)
	}
	return raw, nil
}

func (c *Client) send(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("reading response body: %w", err)
	}
	return raw, resp.StatusCode, nil
}

func (c *Client) transportError(method, path string, err error) error {
	e := &Error{Method: method, Path: path, Message: err.Error()}
	if method == http.MethodGet {
		e.Kind = ErrTransientLoad
	}
	return e
}

// failure classifies an error response. A 401 outside the login and reset
// flows ends the session.
func (c *Client) failure(method, path string, status int, raw []byte) error {
	e := &Error{Method: method, Path: path, Status: status}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		e.Message = env.Message
		if env.Error != nil {
			e.Code = env.Error.Code
			e.Message = env.Error.Message
			e.Fields = env.Error.Details
		}
	} else {
		e.Message = strings.TrimSpace(string(raw))
	}

	switch {
	case status == http.StatusUnauthorized && !isAuthExempt(path):
		_ = c.tokens.Clear()
		e.Kind = ErrAuthExpired
	case method == http.MethodGet:
		e.Kind = ErrTransientLoad
	case status == http.StatusNotFound:
		e.Kind = errNotFound
	case status == http.StatusBadRequest, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		e.Kind = ErrValidationFailed
	}
	return e
}

func decodeData(raw []byte, out interface{}) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

// withFallback walks the candidate routes of op. Only a 404 moves on to
// the next candidate; any other outcome is final.
func (c *Client) withFallback(ctx context.Context, op Operation, id, method string, body, out interface{}) error {
	for _, path := range c.routes.Candidates(op, id) {
		err := c.do(ctx, method, path, body, out)
		if errors.Is(err, errNotFound) {
			continue
		}
		return err
	}
	return fmt.Errorf("%s: %w", op, ErrNotFoundFallbackExhausted)
}

func tokenFrom(access string, accessExpiry int64, refresh string) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  access,
		TokenType:    "Bearer",
		RefreshToken: refresh,
	}
	if accessExpiry > 0 {
		tok.Expiry = time.Unix(accessExpiry, 0)
	}
	return tok
}
