package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/service"
	"github.com/blaisecz/lifestats/pkg/pagination"
	"github.com/blaisecz/lifestats/pkg/problem"
	"go.uber.org/zap"
)

type SleepHandler struct {
	service service.SleepService
	logger  *zap.Logger
}

func NewSleepHandler(service service.SleepService, logger *zap.Logger) *SleepHandler {
	return &SleepHandler{service: service, logger: logger}
}

// List handles GET /v1/users/{userId}/sleep
func (h *SleepHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter, fieldErrors := parseSleepFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("User not found").Write(w)
		case errors.Is(err, domain.ErrInvalidInput):
			problem.BadRequest(err.Error()).Write(w)
		default:
			h.logger.Error("Failed to list sleep records", zap.String("user_id", userID.String()), zap.Error(err))
			problem.InternalError("Failed to list sleep records").Write(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func parseSleepFilter(r *http.Request) (domain.SleepRecordFilter, []problem.FieldError) {
	q := r.URL.Query()
	filter := domain.SleepRecordFilter{
		Kind: domain.SleepKind(q.Get("kind")),
		From: q.Get("from"),
		To:   q.Get("to"),
	}
	var fieldErrors []problem.FieldError

	switch filter.Kind {
	case "", domain.SleepKindMain, domain.SleepKindNap:
	default:
		fieldErrors = append(fieldErrors, problem.FieldError{Field: "kind", Message: "must be one of: main nap"})
	}

	for _, p := range [...]struct{ name, value string }{{"from", filter.From}, {"to", filter.To}} {
		if p.value == "" {
			continue
		}
		if _, err := time.Parse(domain.DateLayout, p.value); err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: p.name, Message: "must be a YYYY-MM-DD date"})
		}
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > pagination.MaxLimit {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be an integer between 1 and " + strconv.Itoa(pagination.MaxLimit),
			})
		} else {
			filter.Limit = limit
		}
	}

	if cursor := q.Get("cursor"); cursor != "" {
		if _, err := pagination.DecodeCursor(cursor); err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "cursor", Message: "is invalid"})
		} else {
			filter.Cursor = cursor
		}
	}

	return filter, fieldErrors
}
