package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindwell-clinic/clinic-api/internal/handler"
	"github.com/mindwell-clinic/clinic-api/internal/service/dashboard"
)

type Handler struct {
	service *dashboard.Service
}

func NewHandler(service *dashboard.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetOverview(c *gin.Context) {
	overview, err := h.service.GetOverview(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(overview))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard/overview", h.GetOverview)
}
