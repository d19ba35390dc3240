// Where: internal/infra/hubapi/client.go
// What: HTTP client for the registry management API.
// Why: Route every outbound call through one helper that sets headers,
// traces the call, and translates transport failures.
package hubapi

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

	"github.com/sciurus/dockhub/internal/domain/registry"
	"github.com/sirupsen/logrus"
)

const maxRedirects = 10

// Response is the status and raw body of one call. It is inspected once
// by the caller and discarded.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 200 response.
func (r Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Org        string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     logrus.FieldLogger
}

// Client issues requests against a fixed base URL and organization.
type Client struct {
	baseURL string
	org     string
	http    *http.Client
	log     logrus.FieldLogger
}

// New builds a Client. A nil HTTPClient gets a fresh client whose
// redirect limit reports errTooManyRedirects.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	org := strings.TrimSpace(opts.Org)
	if org == "" {
		return nil, errOrgRequired
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	if httpClient.CheckRedirect == nil {
		limited := *httpClient
		limited.CheckRedirect = limitRedirects
		httpClient = &limited
	}

	log := opts.Logger
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = quiet
	}

	return &Client{baseURL: base, org: org, http: httpClient, log: log}, nil
}

// Org returns the organization every group and repository path is scoped to.
func (c *Client) Org() string {
	return c.org
}

func limitRedirects(_ *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errTooManyRedirects
	}
	return nil
}

// do sends one request. token may be empty for the login call. A non-nil
// body is JSON-encoded and sent with the JSON content-type headers.
func (c *Client) do(ctx context.Context, op, method, path string, token registry.Token, body any) (Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Response{}, fmt.Errorf("%s: encode request body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Response{}, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token.AuthorizationHeader())
	}
	if body != nil || method == http.MethodDelete {
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("charset", charset)
	}

	started := time.Now()
	entry := c.log.WithFields(logrus.Fields{"op": op, "method": method, "path": path})
	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Debug("request failed")
		return Response{}, translateTransportError(op, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		entry.WithError(err).Debug("read response failed")
		return Response{}, translateTransportError(op, err)
	}
	entry.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"elapsed": time.Since(started).Round(time.Millisecond).String(),
	}).Debug("request completed")

	return Response{StatusCode: resp.StatusCode, Body: payload}, nil
}

// segment escapes one operator-supplied path element.
func segment(value string) string {
	return url.PathEscape(value)
}
