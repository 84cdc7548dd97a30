package activity

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/model"
)

type Service interface {
	ListRecent(ctx context.Context) ([]*model.ActivityLog, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/logs", h.ListLogs)
}

func (h *Handler) ListLogs(c *gin.Context) {
	logs, err := h.service.ListRecent(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
