package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/lovebird/internal/quiz"
)

func TestObserveView(t *testing.T) {
	m := New()

	m.ObserveView(quiz.View{Kind: quiz.ViewResult, Result: &quiz.BirdResult{Name: "Pepe Green"}})
	m.ObserveView(quiz.View{Kind: quiz.ViewResult, Result: &quiz.BirdResult{Name: "Pepe Green"}})
	m.ObserveView(quiz.View{Kind: quiz.ViewResult, Node: &quiz.Node{ID: "r1", Title: "Lime"}})
	m.ObserveView(quiz.View{Kind: quiz.ViewNoResult})
	m.ObserveView(quiz.View{Kind: quiz.ViewQuestion})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Results.WithLabelValues("Pepe Green")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Results.WithLabelValues("Lime")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Faults.WithLabelValues("no_result")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Faults.WithLabelValues("not_found")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.SessionsStarted.Inc()
	m.Answers.WithLabelValues("score").Add(3)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/ping/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping/abc", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "lovebird_sessions_started_total 1")
	assert.Contains(t, body, `lovebird_answers_total{mode="score"} 3`)
	assert.True(t, strings.Contains(body, `lovebird_http_request_duration_seconds_count{route="/ping/{id}",status="418"} 1`), body)
}
