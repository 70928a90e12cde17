package anamnesis

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mindwell-clinic/clinic-api/internal/handler"
	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/service/anamnesis"
)

type Handler struct {
	service *anamnesis.Service
}

func NewHandler(service *anamnesis.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateRecord(c *gin.Context) {
	var req model.CreateAnamnesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	record, err := h.service.CreateRecord(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(record))
}

func (h *Handler) GetRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid record ID"))
		return
	}

	record, err := h.service.GetRecord(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

func (h *Handler) GetPatientRecord(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	record, err := h.service.GetPatientRecord(c.Request.Context(), patientID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

func (h *Handler) UpdateRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid record ID"))
		return
	}

	var req model.UpdateAnamnesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	record, err := h.service.UpdateRecord(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	records := r.Group("/anamnesis")
	{
		records.POST("", h.CreateRecord)
		records.GET("/:id", h.GetRecord)
		records.PUT("/:id", h.UpdateRecord)
	}
	r.GET("/patients/:id/anamnesis", h.GetPatientRecord)
}
