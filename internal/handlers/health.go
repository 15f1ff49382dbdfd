package handlers

import (
	"context"
	"time"

	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type HealthHandler struct {
	db     Pinger
	logger *zap.Logger
}

func NewHealthHandler(db Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger.Named("health")}
}

func (h *HealthHandler) Check(c *drift.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("database ping failed", zap.Error(err))
		_ = c.JSON(503, dto.HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}

	_ = c.JSON(200, dto.HealthResponse{Status: "ok", Database: "ok"})
}
