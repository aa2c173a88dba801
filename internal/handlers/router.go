package handlers

import (
	"fmt"
	"net/http"

	"github.com/diegoclair/reminder-bot/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter serves health and metrics, plus slash commands when slackHandler
// is not nil.
func NewRouter(m *metrics.Metrics, slackHandler *SlackHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	if slackHandler != nil {
		r.Post("/slack/commands", slackHandler.HandleSlashCommand)
	}

	return r
}
