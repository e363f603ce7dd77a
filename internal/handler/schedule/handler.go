// Package schedule exposes template management and month generation.
package schedule

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/service/appointment"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/httputil"
	"github.com/medagenda/clinic-api/pkg/logger"
)

type Handler struct {
	service *appointment.Service
	logger  *logger.Logger
}

func NewHandler(service *appointment.Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	schedules := r.Group("/schedules")
	{
		schedules.POST("", h.CreateTemplate)
		schedules.GET("/:license/:month", h.GetTemplate)
		schedules.PUT("/:license/:month", h.UpdateTemplate)
		schedules.POST("/generate", h.GenerateMonth)
	}
}

func (h *Handler) CreateTemplate(c *gin.Context) {
	var req model.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	tpl, err := h.service.CreateTemplate(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, tpl)
}

func templateKey(c *gin.Context) (int64, int, error) {
	license, err := strconv.ParseInt(c.Param("license"), 10, 64)
	if err != nil || license <= 0 {
		return 0, 0, apperrors.NewValidation("license must be a positive number")
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, apperrors.NewValidation("month must be between 1 and 12")
	}
	return license, month, nil
}

func (h *Handler) GetTemplate(c *gin.Context) {
	license, month, err := templateKey(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	tpl, err := h.service.GetTemplate(c.Request.Context(), license, month)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, tpl)
}

func (h *Handler) UpdateTemplate(c *gin.Context) {
	license, month, err := templateKey(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	tpl, err := h.service.UpdateTemplate(c.Request.Context(), license, month, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, tpl)
}

func (h *Handler) GenerateMonth(c *gin.Context) {
	var req model.GenerateMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	resp, err := h.service.GenerateMonth(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, resp)
}
