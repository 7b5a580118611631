// Package sheets posts survey rows to a Google Apps Script web app that
// appends them to a spreadsheet.
package sheets

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

	"github.com/rotisserie/eris"
)

// Client appends rows to the survey spreadsheet.
type Client interface {
	Append(ctx context.Context, row Row) (string, error)
}

// Row is the flat record the web app expects. Phone is the 9-digit local number.
type Row struct {
	FirstName string `json:"firstName"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	Feedback  string `json:"feedback"`
}

// APIError is returned when the web app answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sheets: unexpected status %d: %s", e.StatusCode, e.Body)
}

// HTTPStatus returns the status code of the failed call.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout bounds every call made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

type httpClient struct {
	webAppURL string
	http      *http.Client
}

// NewClient creates a client for the web app deployed at webAppURL.
func NewClient(webAppURL string, opts ...Option) Client {
	c := &httpClient{
		webAppURL: webAppURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Append posts row and returns the web app's response body.
func (c *httpClient) Append(ctx context.Context, row Row) (string, error) {
	body, err := json.Marshal(row)
	if err != nil {
		return "", eris.Wrap(err, "sheets: marshal row")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webAppURL, bytes.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "sheets: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The deployment URL identifies the script; keep it out of logs.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return "", eris.Wrap(err, "sheets: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "sheets: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return string(respBody), nil
}
