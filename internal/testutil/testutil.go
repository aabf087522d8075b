// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"

	"verdict/internal/decision"
)

// Client drives a fiber app in-process and replays the session cookie
// between requests, like a browser tab would.
type Client struct {
	t       *testing.T
	app     *fiber.App
	cookies []*http.Cookie
	headers map[string]string
}

// NewClient wraps app. Headers are sent on every request.
func NewClient(t *testing.T, app *fiber.App, headers ...string) *Client {
	t.Helper()
	c := &Client{t: t, app: app, headers: map[string]string{}}
	for i := 0; i+1 < len(headers); i += 2 {
		c.headers[headers[i]] = headers[i+1]
	}
	return c
}

// Do sends one request and returns the status code and body. Extra
// headers are given as key, value pairs.
func (c *Client) Do(method, path, contentType, body string, headers ...string) (int, string) {
	c.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	resp, err := c.app.Test(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if got := resp.Cookies(); len(got) > 0 {
		c.cookies = got
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, string(raw)
}

// Cookies returns the cookies the client is currently replaying.
func (c *Client) Cookies() []*http.Cookie {
	return append([]*http.Cookie(nil), c.cookies...)
}

// Answer returns an invoker that always replies with text and err.
func Answer(text string, err error) decision.Invoker {
	return decision.InvokerFunc(func(context.Context, decision.Request) (string, error) {
		return text, err
	})
}

// GatedInvoker answers once Release is closed, or immediately if it is nil.
// It records the query of every call.
type GatedInvoker struct {
	Calls   atomic.Int32
	Release chan struct{}
	Text    string
	Err     error

	mu      sync.Mutex
	queries []string
}

// Invoke records req.Query, waits for Release and returns Text and Err.
func (g *GatedInvoker) Invoke(ctx context.Context, req decision.Request) (string, error) {
	g.Calls.Add(1)
	g.mu.Lock()
	g.queries = append(g.queries, req.Query)
	g.mu.Unlock()
	if g.Release != nil {
		select {
		case <-g.Release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return g.Text, g.Err
}

// Queries returns the query of every call so far.
func (g *GatedInvoker) Queries() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.queries...)
}
