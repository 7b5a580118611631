// Package leadsquared provides access-key authenticated REST access to the
// LeadSquared lead management API.
package leadsquared

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
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api-in21.leadsquared.com/v2"

// Client defines the LeadSquared operations used by the survey service.
type Client interface {
	LeadsByPhone(ctx context.Context, phone string) ([]Lead, error)
	CreateOrUpdate(ctx context.Context, attrs []Attribute) error
}

// Lead is a lead record as returned by RetrieveLeadByPhoneNumber.
type Lead struct {
	ProspectID    string `json:"ProspectID"`
	FirstName     string `json:"FirstName"`
	LastName      string `json:"LastName"`
	Phone         string `json:"Phone"`
	ProspectStage string `json:"ProspectStage"`
}

// Attribute is one entry of a Lead.CreateOrUpdate payload.
type Attribute struct {
	Attribute string `json:"Attribute"`
	Value     string `json:"Value"`
}

// APIError is returned when LeadSquared answers with a non-2xx status.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("leadsquared: %s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// HTTPStatus returns the status code of the failed call.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL (the regional host plus /v2).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

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

// WithRateLimit sets a per-second rate limit for API calls.
// A burst equal to the integer portion of rps is allowed.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

type httpClient struct {
	accessKey string
	secretKey string
	baseURL   string
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a LeadSquared client authenticated with the given keys.
func NewClient(accessKey, secretKey string, opts ...Option) Client {
	c := &httpClient{
		accessKey: accessKey,
		secretKey: secretKey,
		baseURL:   defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) endpoint(method string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("accessKey", c.accessKey)
	params.Set("secretKey", c.secretKey)
	return c.baseURL + "/LeadManagement.svc/" + method + "?" + params.Encode()
}

func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// LeadsByPhone returns every lead whose phone matches exactly. An empty
// slice means no match.
func (c *httpClient) LeadsByPhone(ctx context.Context, phone string) ([]Lead, error) {
	if err := c.wait(ctx); err != nil {
		return nil, eris.Wrap(err, "leadsquared: rate limit")
	}

	u := c.endpoint("RetrieveLeadByPhoneNumber", url.Values{"phone": {phone}})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, eris.Wrap(err, "leadsquared: create request")
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, "retrieve lead by phone")
	if err != nil {
		return nil, err
	}

	var leads []Lead
	if len(bytes.TrimSpace(body)) == 0 {
		return leads, nil
	}
	if err := json.Unmarshal(body, &leads); err != nil {
		return nil, eris.Wrap(err, "leadsquared: unmarshal leads")
	}
	return leads, nil
}

// CreateOrUpdate upserts a lead. One of the attributes must be SearchBy,
// naming the attribute used to find an existing lead.
func (c *httpClient) CreateOrUpdate(ctx context.Context, attrs []Attribute) error {
	if len(attrs) == 0 {
		return eris.New("leadsquared: no attributes to upsert")
	}
	if err := c.wait(ctx); err != nil {
		return eris.Wrap(err, "leadsquared: rate limit")
	}

	payload, err := json.Marshal(attrs)
	if err != nil {
		return eris.Wrap(err, "leadsquared: marshal attributes")
	}

	u := c.endpoint("Lead.CreateOrUpdate", url.Values{"postUpdatedLead": {"false"}})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "leadsquared: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req, "create or update lead")
	return err
}

func (c *httpClient) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error repeats the request URL, which carries the secret key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, eris.Wrap(err, "leadsquared: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "leadsquared: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
