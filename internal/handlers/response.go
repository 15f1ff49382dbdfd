package handlers

import (
	"errors"
	"strconv"

	"github.com/XrOne/jenia-portfolio/internal/services"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

func parseID(c *drift.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.BadRequest("invalid id")
		return 0, false
	}
	return id, true
}

// writeError maps a service error onto the HTTP error taxonomy.
func writeError(c *drift.Context, logger *zap.Logger, err error, resource, action string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.BadRequest(verr.Error())
	case errors.Is(err, services.ErrNoFieldsToUpdate):
		c.BadRequest("no fields to update")
	case errors.Is(err, services.ErrNotFound):
		c.NotFound(resource + " not found")
	default:
		logger.Error("failed to "+action+" "+resource, zap.Error(err))
		c.InternalServerError("failed to " + action + " " + resource)
	}
}

func deleted(c *drift.Context) {
	_ = c.JSON(200, dto.SuccessResponse{Success: true})
}
