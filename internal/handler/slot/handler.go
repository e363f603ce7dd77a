// Package slot exposes slot queries and lifecycle transitions.
package slot

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

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
	slots := r.Group("/slots")
	{
		slots.GET("", h.List)
		slots.GET("/:id", h.Get)
		slots.POST("/:id/book", h.Book)
		slots.POST("/:id/cancel", h.Cancel)
		slots.POST("/:id/attended", h.MarkAttended)
		slots.POST("/:id/no-show", h.MarkNoShow)
	}
}

func slotID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewValidation("slot id must be a valid uuid")
	}
	return id, nil
}

func parseFilters(c *gin.Context) (*model.SlotFilters, error) {
	filters := &model.SlotFilters{}

	if raw := c.Query("doctor_license"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, apperrors.NewValidation("doctor_license must be a number")
		}
		filters.DoctorLicense = v
	}
	if raw := c.Query("specialty_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, apperrors.NewValidation("specialty_id must be a number")
		}
		filters.SpecialtyID = v
	}
	if raw := c.Query("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.NewValidation("month must be a number")
		}
		filters.Month = v
	}
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.NewValidation("year must be a number")
		}
		filters.Year = v
	}
	for name, dst := range map[string]**time.Time{
		"date": &filters.Date,
		"from": &filters.From,
		"to":   &filters.To,
	} {
		if raw := c.Query(name); raw != "" {
			v, err := time.ParseInLocation(model.DateLayout, raw, time.Local)
			if err != nil {
				return nil, apperrors.NewValidationf("%s must use %s format", name, model.DateLayout)
			}
			*dst = &v
		}
	}
	if raw := c.Query("status"); raw != "" {
		status := model.SlotStatus(raw)
		if !status.Valid() {
			return nil, apperrors.NewValidationf("unknown slot status %q", raw)
		}
		filters.Status = status
	}
	return filters, nil
}

func (h *Handler) List(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	slots, err := h.service.ListSlots(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := slotID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	slot, err := h.service.GetSlot(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slot)
}

func (h *Handler) Book(c *gin.Context) {
	id, err := slotID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	slot, err := h.service.Book(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slot)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := slotID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	req := model.CancelSlotRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
			return
		}
	}

	slot, err := h.service.Cancel(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slot)
}

func (h *Handler) MarkAttended(c *gin.Context) {
	id, err := slotID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	slot, err := h.service.MarkAttended(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slot)
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	id, err := slotID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	slot, err := h.service.MarkNoShow(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slot)
}
