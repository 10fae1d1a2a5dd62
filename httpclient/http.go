// Package httpclient wraps net/http with the small JSON-over-HTTP surface
// the probe needs: GET requests against one base URL, an explicit timeout on
// every query, optional TLS, and basic-auth credentials passed verbatim.
package httpclient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Napsty/check-couchdb-replication/model"
)

var defaultQueryTimeout = 10 * time.Second

type HTTPClient interface {
	// Get issues a GET request for path and decodes the JSON response into
	// responseData when it is non-nil. Any failure is returned as a
	// *model.QueryError carrying the status and raw body where available.
	Get(ctx context.Context, path string, responseData any) error
}

type Option struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
	Insecure bool // skip TLS certificate verification
	Logger   *slog.Logger
}

type httpClient struct {
	client   *http.Client
	url      string
	username string
	password string
	logger   *slog.Logger
}

func NewHTTPClient(option Option) HTTPClient {
	if option.Timeout <= 0 {
		option.Timeout = defaultQueryTimeout
	}
	if option.Logger == nil {
		option.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	client := &http.Client{
		Timeout: option.Timeout,
	}
	if option.Insecure {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec //explicit operator opt-in
		client.Transport = transport
	}
	return &httpClient{
		client:   client,
		url:      option.BaseURL,
		username: option.Username,
		password: option.Password,
		logger:   option.Logger,
	}
}

func (c *httpClient) setClientHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}
}

func (c *httpClient) Get(ctx context.Context, path string, responseData any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+path, http.NoBody)
	if err != nil {
		return &model.QueryError{Path: path, Err: err}
	}
	c.setClientHeaders(req)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("query failed", "path", path, "error", err)
		return &model.QueryError{Path: path, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("failed to close response body", "path", path, "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &model.QueryError{Path: path, Status: resp.StatusCode, Err: err}
	}
	c.logger.Debug("query finished",
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return &model.QueryError{Path: path, Status: resp.StatusCode, Body: body}
	}
	if len(body) == 0 {
		return &model.QueryError{Path: path, Status: resp.StatusCode}
	}
	if responseData != nil {
		if err := json.Unmarshal(body, responseData); err != nil {
			return &model.QueryError{Path: path, Status: resp.StatusCode, Body: body, Err: err}
		}
	}
	return nil
}
