package api

import (
	"encoding/json"
	"net/http"

	"github.com/blaisecz/lifestats/internal/api/handler"
	"github.com/blaisecz/lifestats/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Router struct {
	logger             *zap.Logger
	userHandler        *handler.UserHandler
	sleepHandler       *handler.SleepHandler
	workHoursHandler   *handler.WorkHoursHandler
	integrationHandler *handler.IntegrationHandler
	journalHandler     *handler.JournalHandler
}

func NewRouter(
	logger *zap.Logger,
	userHandler *handler.UserHandler,
	sleepHandler *handler.SleepHandler,
	workHoursHandler *handler.WorkHoursHandler,
	integrationHandler *handler.IntegrationHandler,
	journalHandler *handler.JournalHandler,
) *Router {
	return &Router{
		logger:             logger,
		userHandler:        userHandler,
		sleepHandler:       sleepHandler,
		workHoursHandler:   workHoursHandler,
		integrationHandler: integrationHandler,
		journalHandler:     journalHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.Tracing)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/journal/tags", rt.journalHandler.Tags)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)

			r.Route("/{userId}", func(r chi.Router) {
				r.Get("/", rt.userHandler.GetByID)
				r.Get("/sleep", rt.sleepHandler.List)
				r.Get("/work-hours", rt.workHoursHandler.Get)
				r.Put("/integrations/{type}", rt.integrationHandler.Upsert)

				r.Route("/journal/{date}", func(r chi.Router) {
					r.Get("/", rt.journalHandler.GetEntry)
					r.Put("/", rt.journalHandler.PutEntry)
					r.Get("/markdown", rt.journalHandler.EntryMarkdown)
				})
				r.Route("/reflections/{date}", func(r chi.Router) {
					r.Get("/", rt.journalHandler.GetReflection)
					r.Put("/", rt.journalHandler.PutReflection)
					r.Get("/markdown", rt.journalHandler.ReflectionMarkdown)
					r.Get("/{direction:prev|next}", rt.journalHandler.NavigateReflection)
				})
			})
		})
	})

	return r
}
