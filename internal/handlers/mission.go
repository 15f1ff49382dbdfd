package handlers

import (
	"github.com/XrOne/jenia-portfolio/internal/middleware"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type MissionHandler struct {
	missions  MissionServiceInterface
	workflows WorkflowServiceInterface
	logger    *zap.Logger
}

func NewMissionHandler(missions MissionServiceInterface, workflows WorkflowServiceInterface, logger *zap.Logger) *MissionHandler {
	return &MissionHandler{missions: missions, workflows: workflows, logger: logger.Named("missions")}
}

func (h *MissionHandler) List(c *drift.Context) {
	missions, err := h.missions.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "missions", "list")
		return
	}
	_ = c.JSON(200, missions)
}

// visibleMission loads a mission with its workflows, hiding unpublished
// missions from non-admins.
func (h *MissionHandler) visibleMission(c *drift.Context) (*models.Mission, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}

	mission, err := h.missions.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err, "mission", "get")
		return nil, false
	}
	if !mission.IsPublished && !middleware.IsAdmin(c) {
		c.NotFound("mission not found")
		return nil, false
	}
	return mission, true
}

func (h *MissionHandler) Get(c *drift.Context) {
	mission, ok := h.visibleMission(c)
	if !ok {
		return
	}
	_ = c.JSON(200, mission)
}

func (h *MissionHandler) ListWorkflows(c *drift.Context) {
	mission, ok := h.visibleMission(c)
	if !ok {
		return
	}

	workflows := mission.Workflows
	if workflows == nil {
		workflows = []models.Workflow{}
	}
	_ = c.JSON(200, workflows)
}

func (h *MissionHandler) ListAll(c *drift.Context) {
	missions, err := h.missions.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "missions", "list")
		return
	}
	_ = c.JSON(200, missions)
}

func (h *MissionHandler) Create(c *drift.Context) {
	var req dto.CreateMissionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	mission, err := h.missions.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err, "mission", "create")
		return
	}

	_ = c.JSON(201, mission)
}

func (h *MissionHandler) Update(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateMissionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	mission, err := h.missions.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, h.logger, err, "mission", "update")
		return
	}

	_ = c.JSON(200, mission)
}

func (h *MissionHandler) Delete(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.missions.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err, "mission", "delete")
		return
	}

	deleted(c)
}

func (h *MissionHandler) ListAllWorkflows(c *drift.Context) {
	workflows, err := h.workflows.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "workflows", "list")
		return
	}
	_ = c.JSON(200, workflows)
}

func (h *MissionHandler) CreateWorkflow(c *drift.Context) {
	var req dto.CreateWorkflowRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	workflow, err := h.workflows.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err, "workflow", "create")
		return
	}

	_ = c.JSON(201, workflow)
}

func (h *MissionHandler) UpdateWorkflow(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkflowRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	workflow, err := h.workflows.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, h.logger, err, "workflow", "update")
		return
	}

	_ = c.JSON(200, workflow)
}

func (h *MissionHandler) DeleteWorkflow(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.workflows.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err, "workflow", "delete")
		return
	}

	deleted(c)
}
