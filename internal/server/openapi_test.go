package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/XrOne/jenia-portfolio/internal/handlers"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/internal/services"
	"github.com/XrOne/jenia-portfolio/internal/testutil"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// registeredRoutes builds the router in debug mode and collects the routes
// drift logs as it registers them; drift has no route listing of its own.
func registeredRoutes(t *testing.T) []string {
	var buf bytes.Buffer
	out, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(out)
		log.SetFlags(flags)
	}()

	setupRouter(t)

	var routes []string
	for _, line := range strings.Split(buf.String(), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 3 && fields[0] == "[DRIFT]" {
			routes = append(routes, fields[1]+" "+fields[2])
		}
	}
	return routes
}

func TestRouter_EveryRouteIsDocumented(t *testing.T) {
	var documented []string
	for _, r := range handlers.Routes() {
		documented = append(documented, r.Method+" "+r.Path)
	}

	registered := registeredRoutes(t)
	require.NotEmpty(t, registered)
	assert.ElementsMatch(t, documented, registered)
}

func loadDocument(t *testing.T, router http.Handler) *openapi3.T {
	t.Helper()
	rec := testutil.NewHTTPTestClient(t, router).GET("/api/v1/openapi.json")
	testutil.AssertStatus(t, rec, http.StatusOK)

	doc, err := openapi3.NewLoader().LoadFromData(rec.Body.Bytes())
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))
	return doc
}

func assertDocumentedBody(t *testing.T, doc *openapi3.T, path, method string, rec *httptest.ResponseRecorder) {
	t.Helper()
	item := doc.Paths.Value(path)
	require.NotNil(t, item, path)
	op := item.GetOperation(method)
	require.NotNil(t, op, "%s %s", method, path)
	resp := op.Responses.Status(rec.Code)
	require.NotNil(t, resp, "%s %s has no %d response", method, path, rec.Code)

	var body any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	schema := resp.Value.Content.Get("application/json").Schema.Value
	assert.NoError(t, schema.VisitJSON(body), "%s %s %d: %s", method, path, rec.Code, rec.Body.String())
}

func TestRouter_ErrorBodiesMatchDocument(t *testing.T) {
	m, router := setupRouter(t)
	doc := loadDocument(t, router)

	anon := testutil.NewHTTPTestClient(t, router)
	user := anon.WithCookie(cookie(t, models.RoleUser))
	admin := anon.WithCookie(cookie(t, models.RoleAdmin))

	m.videos.On("GetByID", mock.Anything, int64(9)).Return(nil, services.ErrNotFound)

	rec := anon.GET("/api/v1/videos/9")
	testutil.AssertStatus(t, rec, http.StatusNotFound)
	assertDocumentedBody(t, doc, "/api/v1/videos/{id}", http.MethodGet, rec)

	rec = anon.GET("/api/v1/videos/abc")
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	assertDocumentedBody(t, doc, "/api/v1/videos/{id}", http.MethodGet, rec)

	rec = user.POST("/api/upload", nil)
	testutil.AssertStatus(t, rec, http.StatusForbidden)
	assertDocumentedBody(t, doc, "/api/upload", http.MethodPost, rec)

	rec = anon.POST("/api/upload-url", nil)
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
	assertDocumentedBody(t, doc, "/api/upload-url", http.MethodPost, rec)

	rec = admin.POST("/api/upload", map[string]string{"file": "not multipart"})
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	assertDocumentedBody(t, doc, "/api/upload", http.MethodPost, rec)
}
