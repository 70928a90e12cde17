package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindwell-clinic/clinic-api/internal/handler"
	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/service/scheduling"
)

// Handler is the settings collaborator: it edits the availability rules
// the scheduling engine reads.
type Handler struct {
	service *scheduling.Service
}

func NewHandler(service *scheduling.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAvailabilityRules(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.Rules()))
}

func (h *Handler) UpdateAvailabilityRules(c *gin.Context) {
	var req model.UpdateAvailabilityRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rules, err := h.service.UpdateRules(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rules))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/settings/availability", h.GetAvailabilityRules)
	r.PUT("/settings/availability", h.UpdateAvailabilityRules)
}
