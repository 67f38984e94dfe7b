package handler

import (
	"errors"
	"net/http"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/service"
	"github.com/blaisecz/lifestats/pkg/problem"
	"go.uber.org/zap"
)

type WorkHoursHandler struct {
	service service.WorkHoursService
	logger  *zap.Logger
}

func NewWorkHoursHandler(service service.WorkHoursService, logger *zap.Logger) *WorkHoursHandler {
	return &WorkHoursHandler{service: service, logger: logger}
}

// Get handles GET /v1/users/{userId}/work-hours?start_date&end_date
func (h *WorkHoursHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	q := r.URL.Query()
	resp, err := h.service.Get(r.Context(), userID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("User not found").Write(w)
		case errors.Is(err, domain.ErrInvalidDateRange):
			problem.ValidationError("Invalid date range", []problem.FieldError{
				{Field: "end_date", Message: "must not be before start_date"},
			}).Write(w)
		case errors.Is(err, domain.ErrInvalidInput):
			problem.BadRequest(err.Error()).Write(w)
		default:
			h.logger.Error("Failed to aggregate work hours", zap.String("user_id", userID.String()), zap.Error(err))
			problem.InternalError("Failed to aggregate work hours").Write(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
