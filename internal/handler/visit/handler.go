// Package visit exposes clinical records, consultations and
// prescriptions.
package visit

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/service/visit"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/httputil"
	"github.com/medagenda/clinic-api/pkg/logger"
)

type Handler struct {
	service *visit.Service
	logger  *logger.Logger
}

func NewHandler(service *visit.Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	visits := r.Group("/visits")
	{
		visits.POST("", h.Create)
		visits.GET("/:id", h.Get)
		visits.GET("/:id/prescriptions", h.ListPrescriptions)
	}
	r.POST("/prescriptions", h.Prescribe)
	r.GET("/records/:dni", h.History)
}

func visitID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewValidation("visit id must be a valid uuid")
	}
	return id, nil
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	created, err := h.service.CreateVisit(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := visitID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	found, err := h.service.GetVisit(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) History(c *gin.Context) {
	dni, err := strconv.ParseInt(c.Param("dni"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("dni must be a number"))
		return
	}

	record, visits, err := h.service.History(c.Request.Context(), dni)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"record": record, "visits": visits})
}

func (h *Handler) Prescribe(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	created, err := h.service.Prescribe(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
	id, err := visitID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	prescriptions, err := h.service.ListPrescriptions(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, prescriptions)
}
