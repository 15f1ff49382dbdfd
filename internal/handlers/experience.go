package handlers

import (
	"github.com/XrOne/jenia-portfolio/internal/middleware"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type ExperienceHandler struct {
	posts  ExperienceServiceInterface
	logger *zap.Logger
}

func NewExperienceHandler(posts ExperienceServiceInterface, logger *zap.Logger) *ExperienceHandler {
	return &ExperienceHandler{posts: posts, logger: logger.Named("experience")}
}

func (h *ExperienceHandler) List(c *drift.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "experience posts", "list")
		return
	}
	_ = c.JSON(200, posts)
}

func (h *ExperienceHandler) Get(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err, "experience post", "get")
		return
	}
	if !post.IsPublished && !middleware.IsAdmin(c) {
		c.NotFound("experience post not found")
		return
	}

	_ = c.JSON(200, post)
}

func (h *ExperienceHandler) ListAll(c *drift.Context) {
	posts, err := h.posts.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "experience posts", "list")
		return
	}
	_ = c.JSON(200, posts)
}

func (h *ExperienceHandler) Create(c *drift.Context) {
	var req dto.CreateExperienceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	post, err := h.posts.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err, "experience post", "create")
		return
	}

	_ = c.JSON(201, post)
}

func (h *ExperienceHandler) Update(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateExperienceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	post, err := h.posts.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, h.logger, err, "experience post", "update")
		return
	}

	_ = c.JSON(200, post)
}

func (h *ExperienceHandler) Delete(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err, "experience post", "delete")
		return
	}

	deleted(c)
}
