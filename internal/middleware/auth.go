package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/XrOne/jenia-portfolio/internal/identity"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/internal/session"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

const IdentityKey = "identity"

// UserLookup finds an existing local user. It never creates one.
type UserLookup interface {
	GetByOpenID(ctx context.Context, openID string) (*models.User, error)
}

type SessionVerifier interface {
	Verify(token string) (session.Authenticated, error)
}

// Session resolves the caller identity once per request. A valid session
// cookie wins; otherwise a bearer token accepted by the identity provider
// that maps to an existing user. Anything else is anonymous. Either way the
// role comes from the user row, so a role change applies to live sessions.
func Session(verifier SessionVerifier, cookieName string, provider identity.Provider, users UserLookup, logger *zap.Logger) drift.HandlerFunc {
	logger = logger.Named("session")

	return func(c *drift.Context) {
		c.Set(IdentityKey, resolve(c, verifier, cookieName, provider, users, logger))
		c.Next()
	}
}

func resolve(c *drift.Context, verifier SessionVerifier, cookieName string, provider identity.Provider, users UserLookup, logger *zap.Logger) session.Identity {
	if cookie, err := c.Request.Cookie(cookieName); err == nil && cookie.Value != "" {
		id, err := verifier.Verify(cookie.Value)
		if err == nil {
			return current(c.Request.Context(), id, users, logger)
		}
		logger.Debug("ignoring invalid session cookie", zap.Error(err))
	}

	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" || provider == nil {
		return session.Anonymous{}
	}

	ctx := c.Request.Context()
	info, err := provider.GetUser(ctx, token)
	if err != nil {
		if !errors.Is(err, identity.ErrInvalidToken) {
			logger.Warn("identity provider lookup failed", zap.Error(err))
		}
		return session.Anonymous{}
	}

	user, err := users.GetByOpenID(ctx, info.Email)
	if err != nil {
		logger.Debug("bearer token has no local user", zap.String("email", info.Email), zap.Error(err))
		return session.Anonymous{}
	}

	return session.FromUser(user)
}

// current reloads the user behind a verified cookie. A user that no longer
// exists, or cannot be read, is anonymous.
func current(ctx context.Context, id session.Authenticated, users UserLookup, logger *zap.Logger) session.Identity {
	user, err := users.GetByOpenID(ctx, id.OpenID)
	if err != nil {
		logger.Debug("session user unavailable", zap.String("open_id", id.OpenID), zap.Error(err))
		return session.Anonymous{}
	}
	if user.Role != id.Role {
		logger.Debug("session role superseded", zap.String("open_id", id.OpenID),
			zap.String("signed", id.Role), zap.String("current", user.Role))
	}
	return session.FromUser(user)
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth rejects anonymous callers with 401.
func RequireAuth() drift.HandlerFunc {
	return func(c *drift.Context) {
		if _, ok := GetIdentity(c).(session.Authenticated); !ok {
			c.Unauthorized("authentication required")
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous callers with 401 and non-admins with 403.
func RequireAdmin() drift.HandlerFunc {
	return func(c *drift.Context) {
		auth, ok := GetIdentity(c).(session.Authenticated)
		if !ok {
			c.Unauthorized("authentication required")
			return
		}
		if !auth.IsAdmin() {
			c.Forbidden("admin access required")
			return
		}
		c.Next()
	}
}

func GetIdentity(c *drift.Context) session.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(session.Identity); ok {
			return id
		}
	}
	return session.Anonymous{}
}

func IsAdmin(c *drift.Context) bool {
	return session.IsAdmin(GetIdentity(c))
}

// SetSessionCookie writes the signed session cookie.
func SetSessionCookie(c *drift.Context, name, value string, maxAge int, secure bool) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	c.Response.Header().Add("Set-Cookie", cookie.String())
}

func ClearSessionCookie(c *drift.Context, name string, secure bool) {
	SetSessionCookie(c, name, "", -1, secure)
}
