package handlers

import (
	"net/http"

	"github.com/XrOne/jenia-portfolio/internal/apidoc"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	APITitle   = "jenia-portfolio API"
	APIVersion = "1.0.0"
)

type content struct {
	tag, path, singular  string
	sample               any
	list                 any
	createReq, updateReq any
}

// Routes lists every procedure the server exposes.
func Routes() []apidoc.Route {
	success := dto.SuccessResponse{}

	routes := []apidoc.Route{
		{Method: http.MethodGet, Path: "/api/v1/health", OperationID: "health", Summary: "Service and database health", Tag: "system", Access: apidoc.AccessPublic, Response: dto.HealthResponse{}},
		{Method: http.MethodGet, Path: "/api/v1/openapi.json", OperationID: "openapi.json", Summary: "This document as JSON", Tag: "system", Access: apidoc.AccessPublic},
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", OperationID: "openapi.yaml", Summary: "This document as YAML", Tag: "system", Access: apidoc.AccessPublic},
		{Method: http.MethodGet, Path: "/api/v1/auth/me", OperationID: "auth.me", Summary: "Current user or null", Tag: "auth", Access: apidoc.AccessPublic, Response: dto.UserResponse{}},
		{Method: http.MethodPost, Path: "/api/v1/auth/session", OperationID: "auth.session", Summary: "Exchange an identity provider token for a session cookie", Tag: "auth", Access: apidoc.AccessPublic, Request: dto.SessionRequest{}, Response: dto.SessionResponse{}},
		{Method: http.MethodPost, Path: "/api/v1/auth/logout", OperationID: "auth.logout", Summary: "Clear the session cookie", Tag: "auth", Access: apidoc.AccessProtected, Response: success},
		{Method: http.MethodGet, Path: "/api/v1/missions/:id/workflows", OperationID: "workflows.listByMission", Summary: "Workflows of a published mission", Tag: "workflows", Access: apidoc.AccessPublic, Response: []models.Workflow{}},
		{Method: http.MethodGet, Path: "/api/v1/admin/workflows", OperationID: "workflows.listAll", Summary: "All workflows", Tag: "workflows", Access: apidoc.AccessAdmin, Response: []models.Workflow{}},
		{Method: http.MethodPost, Path: "/api/v1/admin/workflows", OperationID: "workflows.create", Summary: "Create a workflow", Tag: "workflows", Access: apidoc.AccessAdmin, Status: http.StatusCreated, Request: dto.CreateWorkflowRequest{}, Response: models.Workflow{}},
		{Method: http.MethodPatch, Path: "/api/v1/admin/workflows/:id", OperationID: "workflows.update", Summary: "Update a workflow", Tag: "workflows", Access: apidoc.AccessAdmin, Request: dto.UpdateWorkflowRequest{}, Response: models.Workflow{}},
		{Method: http.MethodDelete, Path: "/api/v1/admin/workflows/:id", OperationID: "workflows.delete", Summary: "Delete a workflow", Tag: "workflows", Access: apidoc.AccessAdmin, Response: success},
		{Method: http.MethodGet, Path: "/api/v1/admin/users", OperationID: "users.list", Summary: "All users", Tag: "users", Access: apidoc.AccessAdmin, Response: []dto.UserResponse{}},
		{Method: http.MethodPatch, Path: "/api/v1/admin/users/:id/role", OperationID: "users.setRole", Summary: "Change a user's role", Tag: "users", Access: apidoc.AccessAdmin, Request: dto.SetRoleRequest{}, Response: dto.UserResponse{}},
		{Method: http.MethodPost, Path: "/api/upload", OperationID: "upload", Summary: "Upload a file through the server", Tag: "upload", Access: apidoc.AccessAdmin, Multipart: true, Response: dto.UploadResponse{}, FailureBody: dto.UploadErrorResponse{}},
		{Method: http.MethodPost, Path: "/api/upload-url", OperationID: "uploadUrl", Summary: "Issue a signed direct-upload URL", Tag: "upload", Access: apidoc.AccessAdmin, Request: dto.UploadURLRequest{}, Response: dto.UploadURLResponse{}, FailureBody: dto.UploadErrorResponse{}},
	}

	for _, ct := range []content{
		{tag: "videos", path: "videos", singular: "video", sample: models.Video{}, list: []models.Video{}, createReq: dto.CreateVideoRequest{}, updateReq: dto.UpdateVideoRequest{}},
		{tag: "missions", path: "missions", singular: "mission", sample: models.Mission{}, list: []models.Mission{}, createReq: dto.CreateMissionRequest{}, updateReq: dto.UpdateMissionRequest{}},
		{tag: "experience", path: "experience", singular: "experience post", sample: models.ExperiencePost{}, list: []models.ExperiencePost{}, createReq: dto.CreateExperienceRequest{}, updateReq: dto.UpdateExperienceRequest{}},
		{tag: "services", path: "services", singular: "service", sample: models.Service{}, list: []models.Service{}, createReq: dto.CreateServiceRequest{}, updateReq: dto.UpdateServiceRequest{}},
	} {
		routes = append(routes,
			apidoc.Route{Method: http.MethodGet, Path: "/api/v1/" + ct.path, OperationID: ct.tag + ".list", Summary: "Visible " + ct.tag, Tag: ct.tag, Access: apidoc.AccessPublic, Response: ct.list},
			apidoc.Route{Method: http.MethodGet, Path: "/api/v1/" + ct.path + "/:id", OperationID: ct.tag + ".getById", Summary: "One " + ct.singular, Tag: ct.tag, Access: apidoc.AccessPublic, Response: ct.sample},
			apidoc.Route{Method: http.MethodGet, Path: "/api/v1/admin/" + ct.path, OperationID: ct.tag + ".listAll", Summary: "All " + ct.tag, Tag: ct.tag, Access: apidoc.AccessAdmin, Response: ct.list},
			apidoc.Route{Method: http.MethodPost, Path: "/api/v1/admin/" + ct.path, OperationID: ct.tag + ".create", Summary: "Create a " + ct.singular, Tag: ct.tag, Access: apidoc.AccessAdmin, Status: http.StatusCreated, Request: ct.createReq, Response: ct.sample},
			apidoc.Route{Method: http.MethodPatch, Path: "/api/v1/admin/" + ct.path + "/:id", OperationID: ct.tag + ".update", Summary: "Update a " + ct.singular, Tag: ct.tag, Access: apidoc.AccessAdmin, Request: ct.updateReq, Response: ct.sample},
			apidoc.Route{Method: http.MethodDelete, Path: "/api/v1/admin/" + ct.path + "/:id", OperationID: ct.tag + ".delete", Summary: "Delete a " + ct.singular, Tag: ct.tag, Access: apidoc.AccessAdmin, Response: success},
		)
	}

	return routes
}

// OpenAPIHandler serves the API document built from Routes.
type OpenAPIHandler struct {
	doc  *openapi3.T
	yaml []byte
}

func NewOpenAPIHandler() (*OpenAPIHandler, error) {
	doc, err := apidoc.Build(APITitle, APIVersion, Routes())
	if err != nil {
		return nil, err
	}
	raw, err := apidoc.YAML(doc)
	if err != nil {
		return nil, err
	}
	return &OpenAPIHandler{doc: doc, yaml: raw}, nil
}

func (h *OpenAPIHandler) JSON(c *drift.Context) {
	_ = c.JSON(200, h.doc)
}

func (h *OpenAPIHandler) YAML(c *drift.Context) {
	c.Response.Header().Set("Content-Type", "application/yaml")
	c.Response.WriteHeader(200)
	_, _ = c.Response.Write(h.yaml)
}
