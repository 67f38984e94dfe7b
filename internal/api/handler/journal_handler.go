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

type JournalHandler struct {
	service service.JournalService
	logger  *zap.Logger
}

func NewJournalHandler(service service.JournalService, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{service: service, logger: logger}
}

// Tags handles GET /v1/journal/tags
func (h *JournalHandler) Tags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.JournalTagsResponse{
		QuickTags: domain.QuickTags,
		MinScore:  domain.MinJournalScore,
		MaxScore:  domain.MaxJournalScore,
	})
}

// GetEntry handles GET /v1/users/{userId}/journal/{date}
func (h *JournalHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.loadEntry(w, r)
	if ok {
		writeJSON(w, http.StatusOK, entry)
	}
}

// EntryMarkdown handles GET /v1/users/{userId}/journal/{date}/markdown
func (h *JournalHandler) EntryMarkdown(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.loadEntry(w, r)
	if ok {
		writeMarkdown(w, entry.Markdown())
	}
}

// PutEntry handles PUT /v1/users/{userId}/journal/{date}
func (h *JournalHandler) PutEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.PutJournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	entry, err := h.service.PutEntry(r.Context(), userID, chi.URLParam(r, "date"), &req)
	if err != nil {
		h.writeError(w, err, "Failed to save journal entry")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// GetReflection handles GET /v1/users/{userId}/reflections/{date}
func (h *JournalHandler) GetReflection(w http.ResponseWriter, r *http.Request) {
	reflection, ok := h.loadReflection(w, r)
	if ok {
		writeJSON(w, http.StatusOK, reflection)
	}
}

// ReflectionMarkdown handles GET /v1/users/{userId}/reflections/{date}/markdown
func (h *JournalHandler) ReflectionMarkdown(w http.ResponseWriter, r *http.Request) {
	reflection, ok := h.loadReflection(w, r)
	if ok {
		writeMarkdown(w, reflection.Markdown())
	}
}

// PutReflection handles PUT /v1/users/{userId}/reflections/{date}
func (h *JournalHandler) PutReflection(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.PutReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	reflection, err := h.service.PutReflection(r.Context(), userID, chi.URLParam(r, "date"), &req)
	if err != nil {
		h.writeError(w, err, "Failed to save reflection")
		return
	}
	writeJSON(w, http.StatusOK, reflection)
}

// NavigateReflection handles GET /v1/users/{userId}/reflections/{date}/{direction}
func (h *JournalHandler) NavigateReflection(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	direction := domain.JournalDirection(chi.URLParam(r, "direction"))
	reflection, err := h.service.NavigateReflection(r.Context(), userID, chi.URLParam(r, "date"), direction)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("No " + string(direction) + " reflection").Write(w)
			return
		}
		h.writeError(w, err, "Failed to load reflection")
		return
	}
	writeJSON(w, http.StatusOK, reflection)
}

func (h *JournalHandler) loadEntry(w http.ResponseWriter, r *http.Request) (*domain.JournalEntry, bool) {
	userID, err := userIDParam(r)
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return nil, false
	}
	entry, err := h.service.GetEntry(r.Context(), userID, chi.URLParam(r, "date"))
	if err != nil {
		h.writeError(w, err, "Failed to load journal entry")
		return nil, false
	}
	return entry, true
}

func (h *JournalHandler) loadReflection(w http.ResponseWriter, r *http.Request) (*domain.Reflection, bool) {
	userID, err := userIDParam(r)
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return nil, false
	}
	reflection, err := h.service.GetReflection(r.Context(), userID, chi.URLParam(r, "date"))
	if err != nil {
		h.writeError(w, err, "Failed to load reflection")
		return nil, false
	}
	return reflection, true
}

func (h *JournalHandler) writeError(w http.ResponseWriter, err error, detail string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("Not found").Write(w)
	case errors.Is(err, domain.ErrInvalidInput):
		problem.BadRequest(err.Error()).Write(w)
	default:
		h.logger.Error(detail, zap.Error(err))
		problem.InternalError(detail).Write(w)
	}
}

func writeMarkdown(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
