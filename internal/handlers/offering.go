package handlers

import (
	"github.com/XrOne/jenia-portfolio/internal/middleware"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

// OfferingHandler serves the /services routes.
type OfferingHandler struct {
	offerings OfferingServiceInterface
	logger    *zap.Logger
}

func NewOfferingHandler(offerings OfferingServiceInterface, logger *zap.Logger) *OfferingHandler {
	return &OfferingHandler{offerings: offerings, logger: logger.Named("services")}
}

func (h *OfferingHandler) List(c *drift.Context) {
	offerings, err := h.offerings.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "services", "list")
		return
	}
	_ = c.JSON(200, offerings)
}

func (h *OfferingHandler) Get(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	offering, err := h.offerings.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err, "service", "get")
		return
	}
	if !offering.IsActive && !middleware.IsAdmin(c) {
		c.NotFound("service not found")
		return
	}

	_ = c.JSON(200, offering)
}

func (h *OfferingHandler) ListAll(c *drift.Context) {
	offerings, err := h.offerings.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "services", "list")
		return
	}
	_ = c.JSON(200, offerings)
}

func (h *OfferingHandler) Create(c *drift.Context) {
	var req dto.CreateServiceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	offering, err := h.offerings.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err, "service", "create")
		return
	}

	_ = c.JSON(201, offering)
}

func (h *OfferingHandler) Update(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateServiceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	offering, err := h.offerings.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, h.logger, err, "service", "update")
		return
	}

	_ = c.JSON(200, offering)
}

func (h *OfferingHandler) Delete(c *drift.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.offerings.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err, "service", "delete")
		return
	}

	deleted(c)
}
