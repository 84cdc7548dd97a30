package admission

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Service interface {
	Admit(ctx context.Context, req *model.CreateAdmissionRequest) (*model.Admission, error)
	Discharge(ctx context.Context, id int64) (*model.Admission, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admissions := r.Group("/admissions")
	{
		admissions.POST("", h.Admit)
		admissions.POST("/:id/discharge", h.Discharge)
	}
}

func (h *Handler) Admit(c *gin.Context) {
	var req model.CreateAdmissionRequest
	if err := httputil.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	admission, err := h.service.Admit(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": admission.ID})
}

func (h *Handler) Discharge(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	admission, err := h.service.Discharge(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": admission.ID, "discharge_date": admission.DischargeDate})
}
