// ABOUTME: HTTP client for the job tracker REST API
// ABOUTME: One method per endpoint, bearer auth from the session store, data envelope decoding

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// TokenSource supplies the bearer token for each call
type TokenSource interface {
	Token() string
}

// Client is the gateway to the job tracker backend
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New creates a new API client with the given base URL. tokens may be nil
// for unauthenticated use (login, register).
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the configured backend URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fixed failure messages, one per call site
const (
	msgLogin         = "Login failed"
	msgRegister      = "Registration failed"
	msgFetchUser     = "Failed to fetch user info"
	msgUpdateUser    = "Update failed"
	msgFetchJobs     = "Failed to fetch jobs"
	msgCreateJob     = "Failed to create job"
	msgFetchMessages = "Failed to fetch notifications"
	msgSendMessage   = "Failed to send notification"
	msgMarkRead      = "Failed to mark message as read"
	msgHealth        = "Backend unreachable"
)

// ErrCanceled is wrapped by errors from calls whose context was canceled
var ErrCanceled = errors.New("request canceled")

// Error is returned by every gateway call. Its text is the fixed message for
// the call site; the cause and status are kept for callers that need them.
type Error struct {
	Op         string
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is a 401 from the backend
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsCanceled reports whether err came from a canceled context
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// envelope is the { data: ... } wrapper used by most endpoints
type envelope[T any] struct {
	Data T `json:"data"`
}

// backendMessage is the error body shape used by the auth endpoints
type backendMessage struct {
	Message string `json:"message"`
}

// HealthResponse is the GET /health body
type HealthResponse struct {
	Status string `json:"status"`
}

// Health calls GET /health. This call is not authenticated.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	op := "GET /health"

	resp, err := c.send(ctx, http.MethodGet, "/health", nil, false)
	if err != nil {
		return nil, c.requestError(ctx, op, msgHealth, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, statusError(op, msgHealth, resp)
	}
	var out HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &Error{Op: op, Message: msgHealth, StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid response from backend: %w", err)}
	}
	return &out, nil
}

// Login exchanges credentials for a token. This call is not authenticated.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var out struct {
		Token   string `json:"token"`
		Message string `json:"message"`
	}
	op := "POST /auth/login"

	resp, err := c.send(ctx, http.MethodPost, "/auth/login", creds, false)
	if err != nil {
		return "", c.requestError(ctx, op, msgLogin, err)
	}
	defer resp.Body.Close()

	decodeErr := json.NewDecoder(resp.Body).Decode(&out)
	if !isSuccess(resp.StatusCode) {
		msg := msgLogin
		if decodeErr == nil && out.Message != "" {
			msg = out.Message
		}
		return "", &Error{Op: op, Message: msg, StatusCode: resp.StatusCode, Err: fmt.Errorf("backend returned status %d", resp.StatusCode)}
	}
	if decodeErr != nil {
		return "", &Error{Op: op, Message: msgLogin, StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid response from backend: %w", decodeErr)}
	}
	if out.Token == "" {
		return "", &Error{Op: op, Message: msgLogin, StatusCode: resp.StatusCode, Err: errors.New("response carried no token")}
	}
	return out.Token, nil
}

// Register creates an account. This call is not authenticated.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	op := "POST /auth/register"

	resp, err := c.send(ctx, http.MethodPost, "/auth/register", reg, false)
	if err != nil {
		return c.requestError(ctx, op, msgRegister, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		msg := msgRegister
		var body backendMessage
		if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Message != "" {
			msg = body.Message
		}
		return &Error{Op: op, Message: msg, StatusCode: resp.StatusCode, Err: fmt.Errorf("backend returned status %d", resp.StatusCode)}
	}
	return nil
}

// FetchUser calls GET /auth/me
func (c *Client) FetchUser(ctx context.Context) (*User, error) {
	user, err := fetchData[User](ctx, c, http.MethodGet, "/auth/me", nil, msgFetchUser)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser calls PUT /auth/me with the full profile document
func (c *Client) UpdateUser(ctx context.Context, update ProfileUpdate) error {
	return c.exec(ctx, http.MethodPut, "/auth/me", update, msgUpdateUser)
}

// FetchJobs calls GET /jobs
func (c *Client) FetchJobs(ctx context.Context) ([]Job, error) {
	jobs, err := fetchData[[]Job](ctx, c, http.MethodGet, "/jobs", nil, msgFetchJobs)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []Job{}
	}
	return jobs, nil
}

// CreateJob calls POST /jobs
func (c *Client) CreateJob(ctx context.Context, input JobInput) (*Job, error) {
	job, err := fetchData[Job](ctx, c, http.MethodPost, "/jobs", input, msgCreateJob)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// FetchNotifications calls GET /notifications
func (c *Client) FetchNotifications(ctx context.Context) ([]Message, error) {
	msgs, err := fetchData[[]Message](ctx, c, http.MethodGet, "/notifications", nil, msgFetchMessages)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return msgs, nil
}

// SendNotification calls POST /notifications
func (c *Client) SendNotification(ctx context.Context, text string) (*Message, error) {
	body := struct {
		Message string `json:"message"`
	}{Message: text}

	msg, err := fetchData[Message](ctx, c, http.MethodPost, "/notifications", body, msgSendMessage)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkRead calls PUT /notifications/:id/mark-read
func (c *Client) MarkRead(ctx context.Context, id string) error {
	return c.exec(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/mark-read", nil, msgMarkRead)
}

// fetchData performs an authenticated call and decodes the data envelope
func fetchData[T any](ctx context.Context, c *Client, method, path string, body any, message string) (T, error) {
	var zero T
	op := method + " " + path

	resp, err := c.send(ctx, method, path, body, true)
	if err != nil {
		return zero, c.requestError(ctx, op, message, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return zero, statusError(op, message, resp)
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, &Error{Op: op, Message: message, StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid response from backend: %w", err)}
	}
	return env.Data, nil
}

// exec performs an authenticated call whose body is not documented
func (c *Client) exec(ctx context.Context, method, path string, body any, message string) error {
	op := method + " " + path

	resp, err := c.send(ctx, method, path, body, true)
	if err != nil {
		return c.requestError(ctx, op, message, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if !isSuccess(resp.StatusCode) {
		return statusError(op, message, resp)
	}
	return nil
}

// send builds and issues one request
func (c *Client) send(ctx context.Context, method, path string, body any, authenticated bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal input: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return c.httpClient.Do(req)
}

// requestError converts transport failures into gateway errors
func (c *Client) requestError(ctx context.Context, op, message string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &Error{Op: op, Message: message, Err: fmt.Errorf("%w: %w", ErrCanceled, ctxErr)}
	}
	return &Error{Op: op, Message: message, Err: fmt.Errorf("cannot connect to backend: %w", err)}
}

func statusError(op, message string, resp *http.Response) error {
	return &Error{
		Op:         op,
		Message:    message,
		StatusCode: resp.StatusCode,
		Err:        fmt.Errorf("backend returned status %d", resp.StatusCode),
	}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
