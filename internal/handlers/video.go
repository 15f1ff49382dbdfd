package handlers

import (
	"github.com/XrOne/jenia-portfolio/internal/middleware"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type VideoHandler struct {
	videos VideoServiceInterface
	logger *zap.Logger
}

func NewVideoHandler(videos VideoServiceInterface, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{videos: videos, logger: logger.Named("videos")}
}

// List returns active videos only.
func (h *VideoHandler) List(c *drift.Context) {
	videos, err := h.videos.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "videos", "list")
		return
	}
	_ = c.JSON(200, videos)
}

func (h *VideoHandler) Get(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	video, err := h.videos.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err, "video", "get")
		return
	}
	if !video.IsActive && !middleware.IsAdmin(c) {
		c.NotFound("video not found")
		return
	}

	_ = c.JSON(200, video)
}

func (h *VideoHandler) ListAll(c *drift.Context) {
	videos, err := h.videos.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "videos", "list")
		return
	}
	_ = c.JSON(200, videos)
}

func (h *VideoHandler) Create(c *drift.Context) {
	var req dto.CreateVideoRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	video, err := h.videos.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err, "video", "create")
		return
	}

	_ = c.JSON(201, video)
}

func (h *VideoHandler) Update(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateVideoRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	video, err := h.videos.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, h.logger, err, "video", "update")
		return
	}

	_ = c.JSON(200, video)
}

func (h *VideoHandler) Delete(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.videos.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err, "video", "delete")
		return
	}

	deleted(c)
}
