package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/edgelight"
	"github.com/gogpu/edgelight/internal/logging"
	"github.com/gogpu/edgelight/notify"
)

// recordingStarter records the colors it is started with.
type recordingStarter struct {
	colors []edgelight.Color
}

func (s *recordingStarter) Start(c edgelight.Color, _ time.Duration) uint64 {
	s.colors = append(s.colors, c)
	return uint64(len(s.colors))
}

func newTestServer(t *testing.T) (http.Handler, *recordingStarter, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	starter := &recordingStarter{}
	d := notify.NewDispatcher(edgelight.NewResolver(), starter,
		notify.WithMetrics(notify.NewMetrics(reg)),
		notify.WithIgnore("com.example.self"),
		notify.WithLogger(logging.NewNop()),
	)
	return NewHandler(d, reg, logging.NewNop()), starter, reg
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/notifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPostNotification_Shown(t *testing.T) {
	h, starter, _ := newTestServer(t)

	w := post(h, `{"package":"com.whatsapp","title":"Ana","importance":1}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, response{Outcome: notify.OutcomeShown, Color: "#FF25D366", Source: "brand", Run: 1}, body)
	assert.Equal(t, []edgelight.Color{edgelight.ARGB(0xFF25D366)}, starter.colors)
}

func TestPostNotification_Filtered(t *testing.T) {
	h, starter, _ := newTestServer(t)

	w := post(h, `{"package":"com.example.self"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"outcome":"ignored"}`, w.Body.String())

	w = post(h, `{"package":"a","importance":-1}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"outcome":"below_threshold"}`, w.Body.String())

	assert.Empty(t, starter.colors)
}

func TestPostNotification_BadRequest(t *testing.T) {
	h, _, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"package":`},
		{"missing package", `{"title":"x"}`},
		{"bad color", `{"package":"a","color":"teal"}`},
		{"bad icon", `{"package":"a","icon":"!!"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(h, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestPostNotification_TooLarge(t *testing.T) {
	h, _, _ := newTestServer(t)
	w := post(h, `{"package":"a","text":"`+strings.Repeat("x", notify.MaxPayloadSize)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

// failingDispatcher always returns err.
type failingDispatcher struct{ err error }

func (f failingDispatcher) Dispatch(context.Context, notify.Notification) (notify.Result, error) {
	return notify.Result{}, f.err
}

func TestPostNotification_DispatchError(t *testing.T) {
	h := NewHandler(failingDispatcher{context.DeadlineExceeded}, nil, logging.NewNop())
	w := post(h, `{"package":"a"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestServer(t)
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMetrics(t *testing.T) {
	h, _, _ := newTestServer(t)
	post(h, `{"package":"com.whatsapp"}`)
	post(h, `{"package":"org.unknown"}`)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	out := w.Body.String()
	assert.Contains(t, out, `edgelight_notifications_total{outcome="shown"} 2`)
	assert.Contains(t, out, `edgelight_color_source_total{source="brand"} 1`)
	assert.Contains(t, out, `edgelight_color_source_total{source="hash"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	h := NewHandler(failingDispatcher{}, nil, nil)
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h, _, _ := newTestServer(t)
	req := httptest.NewRequest("GET", "/notifications", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
