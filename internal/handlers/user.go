package handlers

import (
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService UserServiceInterface
	logger      *zap.Logger
}

func NewUserHandler(userService UserServiceInterface, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger.Named("users")}
}

func userResponse(u *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           u.ID,
		OpenID:       u.OpenID,
		Name:         u.Name,
		Email:        u.Email,
		LoginMethod:  u.LoginMethod,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		LastSignedIn: u.LastSignedIn,
	}
}

func (h *UserHandler) List(c *drift.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "users", "list")
		return
	}

	response := make([]dto.UserResponse, len(users))
	for i := range users {
		response[i] = *userResponse(&users[i])
	}

	_ = c.JSON(200, response)
}

func (h *UserHandler) SetRole(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.SetRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	user, err := h.userService.SetRole(c.Request.Context(), id, req.Role)
	if err != nil {
		writeError(c, h.logger, err, "user", "update")
		return
	}

	_ = c.JSON(200, userResponse(user))
}
