// Package report exposes occupancy and attendance statistics.
package report

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/service/report"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/httputil"
	"github.com/medagenda/clinic-api/pkg/logger"
)

type Handler struct {
	service *report.Service
	logger  *logger.Logger
}

func NewHandler(service *report.Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/slots", h.StatusCounts)
		reports.GET("/slots/by-specialty", h.StatusCountsBySpecialty)
		reports.GET("/patients-attended", h.PatientsAttended)
	}
}

func dateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := time.ParseInLocation(model.DateLayout, raw, time.Local)
	if err != nil {
		return nil, apperrors.NewValidationf("%s must use %s format", name, model.DateLayout)
	}
	return &v, nil
}

func (h *Handler) StatusCounts(c *gin.Context) {
	var specialtyID int64
	if raw := c.Query("specialty_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewValidation("specialty_id must be a number"))
			return
		}
		specialtyID = v
	}

	from, err := dateQuery(c, "from")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	to, err := dateQuery(c, "to")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	counts, err := h.service.StatusCounts(c.Request.Context(), specialtyID, from, to)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, counts)
}

func (h *Handler) StatusCountsBySpecialty(c *gin.Context) {
	from, err := dateQuery(c, "from")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	to, err := dateQuery(c, "to")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	reports, err := h.service.StatusCountsBySpecialty(c.Request.Context(), from, to)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reports)
}

func (h *Handler) PatientsAttended(c *gin.Context) {
	from, err := dateQuery(c, "from")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	to, err := dateQuery(c, "to")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if from == nil || to == nil {
		httputil.RespondWithError(c, apperrors.NewValidation("from and to are required"))
		return
	}

	patients, err := h.service.PatientsAttended(c.Request.Context(), *from, *to)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patients)
}
