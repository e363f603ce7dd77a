// Package doctor exposes the staff roster.
package doctor

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/service/doctor"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/httputil"
	"github.com/medagenda/clinic-api/pkg/logger"
)

type Handler struct {
	service *doctor.Service
	logger  *logger.Logger
}

func NewHandler(service *doctor.Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.Create)
		doctors.GET("", h.List)
		doctors.GET("/:license", h.Get)
		doctors.PUT("/:license", h.Update)
		doctors.DELETE("/:license", h.Deactivate)
	}
}

func licenseParam(c *gin.Context) (int64, error) {
	license, err := strconv.ParseInt(c.Param("license"), 10, 64)
	if err != nil || license <= 0 {
		return 0, apperrors.NewValidation("license must be a positive number")
	}
	return license, nil
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) Get(c *gin.Context) {
	license, err := licenseParam(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	found, err := h.service.Get(c.Request.Context(), license)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) Update(c *gin.Context) {
	license, err := licenseParam(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), license, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) Deactivate(c *gin.Context) {
	license, err := licenseParam(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), license); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"license": license, "active": false})
}

func (h *Handler) List(c *gin.Context) {
	var specialtyID int64
	if raw := c.Query("specialty_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewValidation("specialty_id must be a number"))
			return
		}
		specialtyID = v
	}

	doctors, err := h.service.List(c.Request.Context(), specialtyID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}
