package server

import (
	"net/http"

	"github.com/XrOne/jenia-portfolio/internal/handlers"
	authmw "github.com/XrOne/jenia-portfolio/internal/middleware"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Videos     *handlers.VideoHandler
	Missions   *handlers.MissionHandler
	Experience *handlers.ExperienceHandler
	Offerings  *handlers.OfferingHandler
	Users      *handlers.UserHandler
	Uploads    *handlers.UploadHandler
	Health     *handlers.HealthHandler
	OpenAPI    *handlers.OpenAPIHandler
}

type Options struct {
	Release     bool
	CORSOrigins []string
	// Session resolves the caller identity; it runs before every route.
	Session drift.HandlerFunc
}

// NewRouter registers every route of the API on a new drift app. Groups are
// siblings so each carries exactly the middleware it lists.
func NewRouter(h Handlers, opts Options) http.Handler {
	app := drift.New()

	if opts.Release {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", authmw.RequestIDHeader},
		MaxAge:       86400,
	}))
	app.Use(opts.Session)

	api := app.Group("/api/v1")
	api.Use(middleware.BodyParser())

	api.Get("/health", h.Health.Check)
	api.Get("/openapi.json", h.OpenAPI.JSON)
	api.Get("/openapi.yaml", h.OpenAPI.YAML)

	api.Get("/auth/me", h.Auth.Me)
	api.Post("/auth/session", h.Auth.Session)

	api.Get("/videos", h.Videos.List)
	api.Get("/videos/:id", h.Videos.Get)
	api.Get("/missions", h.Missions.List)
	api.Get("/missions/:id", h.Missions.Get)
	api.Get("/missions/:id/workflows", h.Missions.ListWorkflows)
	api.Get("/experience", h.Experience.List)
	api.Get("/experience/:id", h.Experience.Get)
	api.Get("/services", h.Offerings.List)
	api.Get("/services/:id", h.Offerings.Get)

	protected := app.Group("/api/v1")
	protected.Use(authmw.RequireAuth())
	protected.Use(middleware.BodyParser())
	protected.Post("/auth/logout", h.Auth.Logout)

	admin := app.Group("/api/v1/admin")
	admin.Use(authmw.RequireAdmin())
	admin.Use(middleware.BodyParser())

	admin.Get("/videos", h.Videos.ListAll)
	admin.Post("/videos", h.Videos.Create)
	admin.Patch("/videos/:id", h.Videos.Update)
	admin.Delete("/videos/:id", h.Videos.Delete)

	admin.Get("/missions", h.Missions.ListAll)
	admin.Post("/missions", h.Missions.Create)
	admin.Patch("/missions/:id", h.Missions.Update)
	admin.Delete("/missions/:id", h.Missions.Delete)

	admin.Get("/workflows", h.Missions.ListAllWorkflows)
	admin.Post("/workflows", h.Missions.CreateWorkflow)
	admin.Patch("/workflows/:id", h.Missions.UpdateWorkflow)
	admin.Delete("/workflows/:id", h.Missions.DeleteWorkflow)

	admin.Get("/experience", h.Experience.ListAll)
	admin.Post("/experience", h.Experience.Create)
	admin.Patch("/experience/:id", h.Experience.Update)
	admin.Delete("/experience/:id", h.Experience.Delete)

	admin.Get("/services", h.Offerings.ListAll)
	admin.Post("/services", h.Offerings.Create)
	admin.Patch("/services/:id", h.Offerings.Update)
	admin.Delete("/services/:id", h.Offerings.Delete)

	admin.Get("/users", h.Users.List)
	admin.Patch("/users/:id/role", h.Users.SetRole)

	// Multipart uploads bypass BodyParser so the request body is streamed.
	uploads := app.Group("/api")
	uploads.Use(authmw.RequireAdmin())
	uploads.Post("/upload", h.Uploads.Upload)

	signed := app.Group("/api")
	signed.Use(authmw.RequireAdmin())
	signed.Use(middleware.BodyParser())
	signed.Post("/upload-url", h.Uploads.UploadURL)

	return app
}
