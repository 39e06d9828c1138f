// Package http exposes notification ingress over HTTP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gogpu/edgelight/notify"
)

// Dispatcher handles decoded notifications. *notify.Dispatcher implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, n notify.Notification) (notify.Result, error)
}

// Server serves the notification API.
type Server struct {
	Dispatcher Dispatcher
	Gatherer   prometheus.Gatherer
	Logger     *slog.Logger
}

// response is the body returned by POST /notifications.
type response struct {
	Outcome string `json:"outcome"`
	Color   string `json:"color,omitempty"`
	Source  string `json:"source,omitempty"`
	Run     uint64 `json:"run,omitempty"`
}

// NewHandler creates the HTTP handler. A nil gatherer disables /metrics.
func NewHandler(d Dispatcher, g prometheus.Gatherer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{Dispatcher: d, Gatherer: g, Logger: logger}

	r := chi.NewRouter()
	r.Post("/notifications", s.PostNotification)
	r.Get("/health", s.Health)
	if g != nil {
		r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}
	return r
}

// PostNotification handles POST /notifications.
func (s *Server) PostNotification(w http.ResponseWriter, r *http.Request) {
	n, err := notify.Decode(r.Body)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, notify.ErrPayloadTooBig) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, err.Error(), status)
		s.Logger.Warn("PostNotification: invalid payload", "error", err)
		return
	}

	res, err := s.Dispatcher.Dispatch(r.Context(), n)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, notify.ErrMissingPackage) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		s.Logger.Error("PostNotification: dispatch failed", "error", err)
		return
	}

	body := response{Outcome: res.Outcome}
	if res.Shown() {
		body.Color = res.Resolution.Color.String()
		body.Source = res.Resolution.Source.String()
		body.Run = res.Run
	}
	writeJSON(w, http.StatusAccepted, body)
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
