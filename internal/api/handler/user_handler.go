package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/lifestats/internal/api/validation"
	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/service"
	"github.com/blaisecz/lifestats/pkg/problem"
	"go.uber.org/zap"
)

type UserHandler struct {
	service service.UserService
	logger  *zap.Logger
}

func NewUserHandler(service service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

// Create handles POST /v1/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if errors.Is(err, domain.ErrInvalidInput) {
		problem.BadRequest(err.Error()).Write(w)
		return
	}
	if err != nil {
		h.logger.Error("Failed to create user", zap.Error(err))
		problem.InternalError("Failed to create user").Write(w)
		return
	}

	writeJSON(w, http.StatusCreated, user.ToResponse())
}

// GetByID handles GET /v1/users/{userId}
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		h.logger.Error("Failed to get user", zap.String("user_id", userID.String()), zap.Error(err))
		problem.InternalError("Failed to get user").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, user.ToResponse())
}
