package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/XrOne/jenia-portfolio/internal/session"
)

const TestSessionSecret = "test-session-secret-for-testing-only"

// TestSigner creates a session signer with test configuration
func TestSigner() *session.Signer {
	return session.NewSigner(TestSessionSecret, time.Hour)
}

// SessionCookie signs id into a cookie named name
func SessionCookie(t *testing.T, name string, id session.Authenticated) *http.Cookie {
	t.Helper()
	value, err := TestSigner().Sign(id)
	if err != nil {
		t.Fatalf("failed to sign test session: %v", err)
	}
	return &http.Cookie{Name: name, Value: value}
}

// HTTPTestClient provides helper methods for HTTP testing
type HTTPTestClient struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

// NewHTTPTestClient creates a new HTTP test client
func NewHTTPTestClient(t *testing.T, handler http.Handler) *HTTPTestClient {
	return &HTTPTestClient{t: t, handler: handler}
}

// WithCookie returns a client that sends cookie on every request
func (c *HTTPTestClient) WithCookie(cookie *http.Cookie) *HTTPTestClient {
	return &HTTPTestClient{t: c.t, handler: c.handler, cookie: cookie}
}

// Request makes an HTTP request and returns the response
func (c *HTTPTestClient) Request(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

// GET makes a GET request
func (c *HTTPTestClient) GET(path string) *httptest.ResponseRecorder {
	return c.Request(http.MethodGet, path, nil)
}

// POST makes a POST request
func (c *HTTPTestClient) POST(path string, body any) *httptest.ResponseRecorder {
	return c.Request(http.MethodPost, path, body)
}

// PATCH makes a PATCH request
func (c *HTTPTestClient) PATCH(path string, body any) *httptest.ResponseRecorder {
	return c.Request(http.MethodPatch, path, body)
}

// DELETE makes a DELETE request
func (c *HTTPTestClient) DELETE(path string) *httptest.ResponseRecorder {
	return c.Request(http.MethodDelete, path, nil)
}

// ParseJSON parses the response body as JSON
func ParseJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
}

// AssertStatus asserts the response status code
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rec.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rec.Code, rec.Body.String())
	}
}
