// Package patient exposes the patient registry.
package patient

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/service/patient"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/httputil"
	"github.com/medagenda/clinic-api/pkg/logger"
)

type Handler struct {
	service *patient.Service
	logger  *logger.Logger
}

func NewHandler(service *patient.Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.Create)
		patients.GET("", h.List)
		patients.GET("/:dni", h.Get)
		patients.PUT("/:dni", h.Update)
		patients.DELETE("/:dni", h.Deactivate)
	}
}

func dniParam(c *gin.Context) (int64, error) {
	dni, err := strconv.ParseInt(c.Param("dni"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidation("dni must be a number")
	}
	if err := model.ValidateDNI(dni); err != nil {
		return 0, err
	}
	return dni, nil
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePatientRequest
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
	dni, err := dniParam(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	found, err := h.service.Get(c.Request.Context(), dni)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) Update(c *gin.Context) {
	dni, err := dniParam(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), dni, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) Deactivate(c *gin.Context) {
	dni, err := dniParam(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), dni); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"dni": dni, "active": false})
}

func (h *Handler) List(c *gin.Context) {
	patients, err := h.service.List(c.Request.Context(), c.Query("last_name"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patients)
}
