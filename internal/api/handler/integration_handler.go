package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/lifestats/internal/api/validation"
	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/service"
	"github.com/blaisecz/lifestats/pkg/problem"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type IntegrationHandler struct {
	service service.IntegrationService
	logger  *zap.Logger
}

func NewIntegrationHandler(service service.IntegrationService, logger *zap.Logger) *IntegrationHandler {
	return &IntegrationHandler{service: service, logger: logger}
}

// Upsert handles PUT /v1/users/{userId}/integrations/{type}
func (h *IntegrationHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	integrationType := domain.IntegrationType(chi.URLParam(r, "type"))
	if !integrationType.Valid() {
		problem.NotFound("Unknown integration type").Write(w)
		return
	}

	var req domain.UpsertIntegrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	integration, err := h.service.Upsert(r.Context(), userID, integrationType, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("User not found").Write(w)
		case errors.Is(err, domain.ErrUnsupportedIntegration):
			problem.NotFound("Unknown integration type").Write(w)
		default:
			h.logger.Error("Failed to store integration", zap.String("user_id", userID.String()), zap.Error(err))
			problem.InternalError("Failed to store integration").Write(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, integration.ToResponse())
}
