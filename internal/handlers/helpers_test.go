package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/XrOne/jenia-portfolio/internal/middleware"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/internal/session"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testCookieName = "app_session_id"

var testSigner = session.NewSigner("test-session-secret", time.Hour)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

// cookieUsers stores a user for every cookie, with the role named by the
// local part of its openId ("admin@example.com" is an admin).
type cookieUsers struct{}

func (cookieUsers) GetByOpenID(ctx context.Context, openID string) (*models.User, error) {
	role, _, _ := strings.Cut(openID, "@")
	email := openID
	return &models.User{OpenID: openID, Email: &email, Role: role}, nil
}

// testSession resolves identities from signed cookies only.
func testSession(t *testing.T) drift.HandlerFunc {
	return middleware.Session(testSigner, testCookieName, nil, cookieUsers{}, zaptest.NewLogger(t))
}

func sessionCookie(t *testing.T, role string) *http.Cookie {
	t.Helper()
	email := role + "@example.com"
	value, err := testSigner.Sign(session.Authenticated{OpenID: email, Email: &email, Role: role})
	require.NoError(t, err)
	return &http.Cookie{Name: testCookieName, Value: value}
}

func adminCookie(t *testing.T) *http.Cookie {
	return sessionCookie(t, models.RoleAdmin)
}

func userCookie(t *testing.T) *http.Cookie {
	return sessionCookie(t, models.RoleUser)
}

func doRequest(app http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			reader = bytes.NewBufferString(raw)
		} else {
			jsonBody, _ := json.Marshal(body)
			reader = bytes.NewReader(jsonBody)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}
