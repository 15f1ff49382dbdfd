package handlers

import (
	"errors"
	"strings"

	"github.com/XrOne/jenia-portfolio/internal/identity"
	"github.com/XrOne/jenia-portfolio/internal/middleware"
	"github.com/XrOne/jenia-portfolio/internal/services"
	"github.com/XrOne/jenia-portfolio/internal/session"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type AuthHandler struct {
	provider     identity.Provider
	userService  UserServiceInterface
	signer       SessionSigner
	cookieName   string
	secureCookie bool
	logger       *zap.Logger
}

func NewAuthHandler(
	provider identity.Provider,
	userService UserServiceInterface,
	signer SessionSigner,
	cookieName string,
	secureCookie bool,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		provider:     provider,
		userService:  userService,
		signer:       signer,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		logger:       logger.Named("auth"),
	}
}

// Me returns the current user, or null for anonymous callers.
func (h *AuthHandler) Me(c *drift.Context) {
	auth, ok := middleware.GetIdentity(c).(session.Authenticated)
	if !ok {
		_ = c.JSON(200, nil)
		return
	}

	user, err := h.userService.GetByOpenID(c.Request.Context(), auth.OpenID)
	if errors.Is(err, services.ErrNotFound) {
		_ = c.JSON(200, nil)
		return
	}
	if err != nil {
		h.logger.Error("failed to load current user", zap.String("open_id", auth.OpenID), zap.Error(err))
		c.InternalServerError("failed to load user")
		return
	}

	_ = c.JSON(200, userResponse(user))
}

// Session exchanges an identity provider access token for a session cookie.
func (h *AuthHandler) Session(c *drift.Context) {
	var req dto.SessionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	token := strings.TrimSpace(req.AccessToken)
	if token == "" {
		c.BadRequest("accessToken is required")
		return
	}

	ctx := c.Request.Context()

	info, err := h.provider.GetUser(ctx, token)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			c.Unauthorized("invalid access token")
			return
		}
		h.logger.Error("identity provider lookup failed", zap.String("provider", h.provider.Name()), zap.Error(err))
		c.InternalServerError("failed to verify access token")
		return
	}

	user, err := h.userService.UpsertFromIdentity(ctx, info)
	if err != nil {
		h.logger.Error("failed to upsert user", zap.String("email", info.Email), zap.Error(err))
		c.InternalServerError("failed to create session")
		return
	}

	value, err := h.signer.Sign(session.FromUser(user))
	if err != nil {
		h.logger.Error("failed to sign session", zap.Error(err))
		c.InternalServerError("failed to create session")
		return
	}

	middleware.SetSessionCookie(c, h.cookieName, value, int(h.signer.TTL().Seconds()), h.secureCookie)

	h.logger.Info("session created", zap.String("open_id", user.OpenID), zap.String("role", user.Role))
	_ = c.JSON(200, dto.SessionResponse{
		Success: true,
		User:    userResponse(user),
	})
}

// Logout clears the session cookie. The upstream token is left alone.
func (h *AuthHandler) Logout(c *drift.Context) {
	middleware.ClearSessionCookie(c, h.cookieName, h.secureCookie)
	_ = c.JSON(200, dto.SuccessResponse{Success: true})
}
