package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/XrOne/jenia-portfolio/internal/middleware"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/internal/services"
	"github.com/XrOne/jenia-portfolio/internal/testutil"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func setupUserTest(t *testing.T) (*testutil.MockUserService, http.Handler) {
	t.Helper()
	mockUsers := new(testutil.MockUserService)
	handler := NewUserHandler(mockUsers, zaptest.NewLogger(t))

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(testSession(t))

	admin := app.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.Get("/users", handler.List)
	admin.Patch("/users/:id/role", handler.SetRole)

	return mockUsers, app
}

func TestUserHandler_List(t *testing.T) {
	mockUsers, app := setupUserTest(t)

	mockUsers.On("List", mock.Anything).Return([]models.User{*visitor()}, nil)

	rec := doRequest(app, http.MethodGet, "/admin/users", nil, adminCookie(t))

	assert.Equal(t, http.StatusOK, rec.Code)
	var users []dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "visitor@example.com", users[0].OpenID)
}

func TestUserHandler_SetRole(t *testing.T) {
	mockUsers, app := setupUserTest(t)

	promoted := visitor()
	promoted.Role = models.RoleAdmin
	mockUsers.On("SetRole", mock.Anything, int64(2), models.RoleAdmin).Return(promoted, nil)

	rec := doRequest(app, http.MethodPatch, "/admin/users/2/role", dto.SetRoleRequest{Role: models.RoleAdmin}, adminCookie(t))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestUserHandler_SetRole_Errors(t *testing.T) {
	mockUsers, app := setupUserTest(t)

	mockUsers.On("SetRole", mock.Anything, int64(2), "owner").
		Return(nil, &services.ValidationError{Field: "role", Message: "must be user or admin"})
	mockUsers.On("SetRole", mock.Anything, int64(9), models.RoleUser).Return(nil, services.ErrNotFound)

	rec := doRequest(app, http.MethodPatch, "/admin/users/2/role", dto.SetRoleRequest{Role: "owner"}, adminCookie(t))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(app, http.MethodPatch, "/admin/users/9/role", dto.SetRoleRequest{Role: models.RoleUser}, adminCookie(t))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(app, http.MethodPatch, "/admin/users/2/role", dto.SetRoleRequest{Role: models.RoleAdmin}, userCookie(t))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
