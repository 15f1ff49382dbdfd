package handlers

import (
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
	"go.uber.org/zap/zaptest"
)

func setupExperienceTest(t *testing.T) (*testutil.MockExperienceService, http.Handler) {
	t.Helper()
	mockPosts := new(testutil.MockExperienceService)
	handler := NewExperienceHandler(mockPosts, zaptest.NewLogger(t))

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(testSession(t))
	app.Get("/experience", handler.List)
	app.Get("/experience/:id", handler.Get)

	admin := app.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.Get("/experience", handler.ListAll)
	admin.Post("/experience", handler.Create)
	admin.Patch("/experience/:id", handler.Update)
	admin.Delete("/experience/:id", handler.Delete)

	return mockPosts, app
}

func setupOfferingTest(t *testing.T) (*testutil.MockOfferingService, http.Handler) {
	t.Helper()
	mockOfferings := new(testutil.MockOfferingService)
	handler := NewOfferingHandler(mockOfferings, zaptest.NewLogger(t))

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(testSession(t))
	app.Get("/services", handler.List)
	app.Get("/services/:id", handler.Get)

	admin := app.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.Get("/services", handler.ListAll)
	admin.Post("/services", handler.Create)
	admin.Patch("/services/:id", handler.Update)
	admin.Delete("/services/:id", handler.Delete)

	return mockOfferings, app
}

func TestExperienceHandler_Create(t *testing.T) {
	mockPosts, app := setupExperienceTest(t)

	req := dto.CreateExperienceRequest{Title: "Lighting with diffusion", Type: models.ExperienceArticle, Tags: []string{"ai", "light"}}
	mockPosts.On("Create", mock.Anything, req).
		Return(&models.ExperiencePost{ID: 1, Title: req.Title, Type: req.Type, Tags: req.Tags}, nil)

	rec := doRequest(app, http.MethodPost, "/admin/experience", req, adminCookie(t))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tags":["ai","light"]`)
	mockPosts.AssertExpectations(t)
}

func TestExperienceHandler_Create_InvalidType(t *testing.T) {
	mockPosts, app := setupExperienceTest(t)

	mockPosts.On("Create", mock.Anything, mock.Anything).
		Return(nil, &services.ValidationError{Field: "type", Message: "must be one of notebook, video, podcast, article"})

	rec := doRequest(app, http.MethodPost, "/admin/experience", map[string]string{"title": "x", "type": "tweet"}, adminCookie(t))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "type")
}

func TestExperienceHandler_Get_Unpublished(t *testing.T) {
	mockPosts, app := setupExperienceTest(t)

	mockPosts.On("GetByID", mock.Anything, int64(3)).Return(&models.ExperiencePost{ID: 3, IsPublished: false}, nil)

	assert.Equal(t, http.StatusNotFound, doRequest(app, http.MethodGet, "/experience/3", nil, nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(app, http.MethodGet, "/experience/3", nil, adminCookie(t)).Code)
}

func TestExperienceHandler_UpdateAndDelete(t *testing.T) {
	mockPosts, app := setupExperienceTest(t)

	tags := []string{}
	mockPosts.On("Update", mock.Anything, int64(3), dto.UpdateExperienceRequest{Tags: &tags}).
		Return(&models.ExperiencePost{ID: 3, Tags: tags}, nil)
	mockPosts.On("Delete", mock.Anything, int64(3)).Return(nil)

	rec := doRequest(app, http.MethodPatch, "/admin/experience/3", map[string]any{"tags": []string{}}, adminCookie(t))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(app, http.MethodDelete, "/admin/experience/3", nil, adminCookie(t))
	assert.Equal(t, http.StatusOK, rec.Code)

	mockPosts.AssertExpectations(t)
}

func TestOfferingHandler_ListAndGet(t *testing.T) {
	mockOfferings, app := setupOfferingTest(t)

	active := models.Service{ID: 1, Name: "Music video", Features: `["4K"]`, IsActive: true}
	retired := models.Service{ID: 2, Name: "Old package", Features: `[]`, IsActive: false}
	mockOfferings.On("List", mock.Anything).Return([]models.Service{active}, nil)
	mockOfferings.On("GetByID", mock.Anything, int64(2)).Return(&retired, nil)

	rec := doRequest(app, http.MethodGet, "/services", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Music video")

	assert.Equal(t, http.StatusNotFound, doRequest(app, http.MethodGet, "/services/2", nil, nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(app, http.MethodGet, "/services/2", nil, adminCookie(t)).Code)
}

func TestOfferingHandler_Create_InvalidFeatures(t *testing.T) {
	mockOfferings, app := setupOfferingTest(t)

	mockOfferings.On("Create", mock.Anything, mock.Anything).
		Return(nil, &services.ValidationError{Field: "features", Message: "must be a JSON array of strings"})

	rec := doRequest(app, http.MethodPost, "/admin/services", map[string]string{"name": "x", "description": "y", "features": "4K"}, adminCookie(t))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOfferingHandler_UpdateAndDelete(t *testing.T) {
	mockOfferings, app := setupOfferingTest(t)

	mockOfferings.On("Update", mock.Anything, int64(1), dto.UpdateServiceRequest{PriceDescription: strPtr("from 2k")}).
		Return(&models.Service{ID: 1, PriceDescription: strPtr("from 2k")}, nil)
	mockOfferings.On("Delete", mock.Anything, int64(1)).Return(nil)

	rec := doRequest(app, http.MethodPatch, "/admin/services/1", map[string]string{"priceDescription": "from 2k"}, adminCookie(t))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(app, http.MethodDelete, "/admin/services/1", nil, userCookie(t))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockOfferings.AssertNotCalled(t, "Delete", mock.Anything, int64(1))

	rec = doRequest(app, http.MethodDelete, "/admin/services/1", nil, adminCookie(t))
	assert.Equal(t, http.StatusOK, rec.Code)
}
