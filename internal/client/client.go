package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"gphotos-admin/internal/constants"
	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/logger"
	"gphotos-admin/internal/types"

	"github.com/google/uuid"
)

// maxBodyBytes bounds non-streaming response bodies
const maxBodyBytes = 8 << 20

// Client talks to the sync backend's REST API
type Client struct {
	baseURL      string
	httpClient   *http.Client
	streamClient *http.Client
	userAgent    string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the client used for regular requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. Log streams are not affected.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a new client instance
func New(serverURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(serverURL))
	if err != nil {
		return nil, errors.InvalidInput(serverURL, "server URL")
	}
	if u.Scheme == "" {
		u, err = url.Parse("http://" + strings.TrimSpace(serverURL))
		if err != nil {
			return nil, errors.InvalidInput(serverURL, "server URL")
		}
	}
	if u.Host == "" {
		return nil, errors.InvalidInput(serverURL, "server URL with a host")
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPClientTimeout,
		},
		streamClient: &http.Client{},
		userAgent:    "gphotos-admin",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.streamClient.Transport == nil {
		c.streamClient.Transport = c.httpClient.Transport
	}

	return c, nil
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, errors.InternalError("marshal request body", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, errors.APICallError(method, path, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(constants.RequestIDHeader, uuid.NewString())

	return req, nil
}

// doRequest performs an HTTP request against the backend
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logger.Fields{
		"method":     method,
		"path":       path,
		"request_id": req.Header.Get(constants.RequestIDHeader),
	}).Debug("Backend request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, method, path, err)
	}
	return resp, nil
}

func transportError(ctx context.Context, method, path string, err error) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
		return errors.WrapWithDetails(errors.ErrTimeout, "Backend request timed out",
			fmt.Sprintf("Method: %s, Path: %s", method, path), err)
	}
	if stderrors.Is(ctx.Err(), context.Canceled) {
		return errors.APICallError(method, path, ctx.Err())
	}
	return errors.NetworkConnectionError(path, err)
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return stderrors.As(err, &te) && te.Timeout()
}

// getJSON issues a read-only GET and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeOrStatus(resp, path, out)
}

// decodeOrStatus decodes a 2xx JSON body into out or turns the failure into
// a coded error carrying the server message
func decodeOrStatus(resp *http.Response, path string, out interface{}) error {
	method := http.MethodGet
	if resp.Request != nil {
		method = resp.Request.Method
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.APICallError(method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.APIStatusError(method, path, resp.StatusCode, serverMessage(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.APIDecodeError(path, err)
	}
	return nil
}

// doAction issues a mutating call. The backend answers failures with a JSON
// body and a 4xx/5xx status, so the body is decoded for every status and only
// transport or decode failures are returned as errors.
func (c *Client) doAction(ctx context.Context, method, path string, body interface{}) (*types.ActionResult, error) {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.APICallError(method, path, err)
	}

	result := &types.ActionResult{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
				return nil, errors.APIDecodeError(path, err)
			}
			result = &types.ActionResult{Error: strings.TrimSpace(string(data))}
		}
	}
	if result.Status == "" && result.ErrorText() == "" && resp.StatusCode > 299 {
		result.Error = http.StatusText(resp.StatusCode)
	}
	result.HTTPStatus = resp.StatusCode

	logger.WithFields(logger.Fields{
		"method":      method,
		"path":        path,
		"status":      result.Status,
		"http_status": resp.StatusCode,
	}).Debug("Backend action completed")

	return result, nil
}

// serverMessage pulls the error text out of a failure body
func serverMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		return body.Message
	}
	msg := strings.TrimSpace(string(data))
	if len(msg) > constants.MaxErrorMessageLength {
		cut := constants.MaxErrorMessageLength
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut]
	}
	return msg
}

func segment(s string) string {
	return url.PathEscape(s)
}

// Health checks that the backend answers
func (c *Client) Health(ctx context.Context) error {
	_, err := c.Stats(ctx)
	return err
}
