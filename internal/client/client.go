// Package client talks to the shop API on behalf of a logged-in user.
//
// A Client keeps its session cookie in a jar fixed at construction, so every
// request carries it. Reads are single attempt; checkout goes through
// FetchWithRetry.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retry defaults for checkout.
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 1000 * time.Millisecond
)

const (
	requestedWithHeader = "X-Requested-With"
	requestedWithValue  = "XMLHttpRequest"
	maxErrorBody        = 4 << 10
)

// Client is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client

	// MaxAttempts and RetryDelay drive CreatePurchase.
	MaxAttempts int
	RetryDelay  time.Duration
}

// New returns a Client for the API rooted at baseURL ("http://localhost:8080").
func New(baseURL string) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must be absolute", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Client{
		baseURL:     u,
		http:        &http.Client{Jar: jar, Timeout: 15 * time.Second},
		MaxAttempts: DefaultMaxAttempts,
		RetryDelay:  DefaultRetryDelay,
	}, nil
}

// Request describes one API call. Body, when set, is sent as JSON.
type Request struct {
	Method string
	Path   string
	Body   any
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := apiMessage(e.Body)
	if msg == "" {
		return fmt.Sprintf("server answered %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server answered %d: %s", e.StatusCode, msg)
}

// Fields returns the per-field validation reasons of a 422, if any.
func (e *StatusError) Fields() map[string]string {
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	if json.Unmarshal([]byte(e.Body), &body) != nil {
		return nil
	}
	return body.Fields
}

func apiMessage(body string) string {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal([]byte(body), &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(body)
}

// Retryable reports whether a failed attempt may succeed if repeated.
// Client errors other than 408 and 429 are final.
func Retryable(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return true
	}
	if se.StatusCode >= 400 && se.StatusCode < 500 {
		return se.StatusCode == http.StatusRequestTimeout || se.StatusCode == http.StatusTooManyRequests
	}
	return true
}

// Fetch performs a single attempt. The caller must close the response body.
func (c *Client) Fetch(ctx context.Context, r Request) (*http.Response, error) {
	body, err := encodeBody(r.Body)
	if err != nil {
		return nil, err
	}
	return c.attempt(ctx, r, body)
}

// FetchWithRetry performs up to maxAttempts attempts, waiting delay between
// them. A transport error or a non-2xx status counts as a failure; the last
// failure is returned once attempts run out. The caller must close the
// response body.
func (c *Client) FetchWithRetry(ctx context.Context, r Request, maxAttempts int, delay time.Duration) (*http.Response, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	body, err := encodeBody(r.Body)
	if err != nil {
		return nil, err
	}

	attempt := 0
	operation := func() (*http.Response, error) {
		attempt++
		resp, err := c.attempt(ctx, r, body)
		if err != nil && !Retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return resp, err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(maxAttempts-1)),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		log.Printf("%s %s attempt %d/%d failed: %v (retrying in %s)", r.Method, r.Path, attempt, maxAttempts, err, wait)
	}

	return backoff.RetryNotifyWithData(operation, policy, notify)
}

func encodeBody(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return raw, nil
}

func (c *Client) attempt(ctx context.Context, r Request, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL.String()+r.Path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestedWithHeader, requestedWithValue)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, nil
}

// do runs a request (with or without retry) and decodes a JSON answer into out.
func (c *Client) do(ctx context.Context, r Request, retry bool, out any) error {
	var (
		resp *http.Response
		err  error
	)
	if retry {
		resp, err = c.FetchWithRetry(ctx, r, c.MaxAttempts, c.RetryDelay)
	} else {
		resp, err = c.Fetch(ctx, r)
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.Method, r.Path, err)
	}
	return nil
}
