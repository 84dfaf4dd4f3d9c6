package eutils

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	cfg Config

	// Sleep performs the blocking waits. Tests replace it to avoid real delays.
	Sleep func(time.Duration)

	requests int
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.Retry.MaxAttempts < 1 {
		cfg.Retry.MaxAttempts = 1
	}

	return &Client{cfg: cfg, Sleep: time.Sleep}
}

func (c *Client) Config() Config {
	return c.cfg
}

// Requests is the number of HTTP requests issued so far, retries included.
func (c *Client) Requests() int {
	return c.requests
}

// Get issues a GET against one E-utility (e.g., "efetch.fcgi") and returns
// the body. The configured delay is always observed first.
func (c *Client) Get(utility string, params url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}
	if c.cfg.Tool != "" {
		q.Set("tool", c.cfg.Tool)
	}
	if c.cfg.Email != "" {
		q.Set("email", c.cfg.Email)
	}
	if c.cfg.APIKey != "" {
		q.Set("api_key", c.cfg.APIKey)
	}
	target := c.cfg.BaseURL + utility + "?" + q.Encode()
	display := c.cfg.BaseURL + utility + "?" + redact(q).Encode()

	var lastErr *RemoteRequestError
	for attempt := 1; attempt <= c.cfg.Retry.MaxAttempts; attempt++ {
		c.Sleep(c.cfg.InterRequestDelay)

		body, err := c.do(target, display)
		if err == nil {
			return body, nil
		}

		lastErr = err
		lastErr.Attempts = attempt
		if attempt < c.cfg.Retry.MaxAttempts {
			wait := c.cfg.Retry.Backoff * time.Duration(attempt)
			log.Printf("Sleeping %s to recover from %s. Attempt #%d\n", wait, err.Error(), attempt)
			c.Sleep(wait)
		}
	}

	return nil, lastErr
}

// redact copies q with the API key masked, for errors and logs.
func redact(q url.Values) url.Values {
	if q.Get("api_key") == "" {
		return q
	}

	out := url.Values{}
	for k, v := range q {
		out[k] = v
	}
	out.Set("api_key", "REDACTED")

	return out
}

// do issues the request to target. Errors carry display, never target.
func (c *Client) do(target, display string) ([]byte, *RemoteRequestError) {
	c.requests++

	resp, err := c.cfg.HTTPClient.Get(target)
	if err != nil {
		if ue, ok := err.(*url.Error); ok {
			ue.URL = display
		}
		return nil, &RemoteRequestError{URL: display, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteRequestError{
			URL:        display,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body))),
		}
	}
	if err != nil {
		return nil, &RemoteRequestError{URL: display, StatusCode: 0, Err: err}
	}

	return body, nil
}
