// Package apiclient provides thin HTTP wrappers around the marketplace's
// REST APIs. All wrappers share one request path which normalises
// connection failures, non-2xx responses and undecodable bodies into a
// small typed error set, and forwards the caller's auth token and request
// tracing id.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/digitalmarketplace-forge/dmkit/pkg/requestid"
)

// Client is the shared request layer underlying every API wrapper. It
// carries no mutable state beyond the connection settings, which are fixed
// after construction except for an explicit Reconfigure call.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	logger     hclog.Logger
}

// NewClient creates a base client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		authToken:  cfg.AuthToken,
		httpClient: cfg.newHTTPClient(),
		logger:     logger.Named("apiclient"),
	}, nil
}

// Reconfigure overwrites the connection settings from external
// configuration. Intended for the single initialisation step an
// application performs after loading its config; not safe to race with
// in-flight requests.
func (c *Client) Reconfigure(baseURL, authToken string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	c.authToken = authToken
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// AuthToken returns the configured bearer token.
func (c *Client) AuthToken() string { return c.authToken }

// Request performs a single HTTP call against path (relative to the base
// URL) and returns the decoded JSON body.
//
// Failure normalisation:
//   - unreachable server: *HTTPError with RequestFailedStatus and
//     RequestFailedMessage, whatever the transport error was
//   - non-2xx status: *HTTPError with the response status; the message is
//     the body's "error" field when the body decodes, the sentinel
//     message otherwise
//   - 2xx with an undecodable body: *InvalidResponseError carrying the
//     parser's message and the response status
//
// A request id present in ctx (see pkg/requestid) is attached as the
// DM-Request-Id header; its absence is never an error.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body any) (map[string]any, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	if id, ok := requestid.FromContext(ctx); ok {
		req.Header.Set(requestid.Header, id)
	}

	c.logger.Debug("sending API request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("API request failed", "method", method, "path", path, "error", err)
		return nil, &HTTPError{Msg: RequestFailedMessage, Status: RequestFailedStatus}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &HTTPError{Msg: RequestFailedMessage, Status: RequestFailedStatus}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			Msg:    errorMessageFromBody(respBody),
			Status: resp.StatusCode,
		}
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &InvalidResponseError{Msg: err.Error(), Status: resp.StatusCode}
	}

	return result, nil
}

// errorMessageFromBody extracts the "error" field from a JSON error body,
// falling back to the sentinel message when the body does not decode or
// carries no error field.
func errorMessageFromBody(body []byte) string {
	var decoded struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil || decoded.Error == "" {
		return RequestFailedMessage
	}
	return decoded.Error
}
