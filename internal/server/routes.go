package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, opts Options) {
	svc := newQuizService(logger, opts.Engine, opts.Sessions, opts.Metrics)

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Lovebird API", "/openapi.json", "/docs"))
	r.Handle("/metrics", opts.Metrics.Handler())
	if opts.Mount != nil {
		opts.Mount(r)
	}

	r.Get("/api/quiz", handleQuizInfo(opts.Engine))

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", handleCreateSession(svc))
		r.Route("/{id}", func(r chi.Router) {
			r.Use(sessionIDMiddleware)
			r.Get("/", handleGetSession(svc))
			r.Delete("/", handleDeleteSession(svc))
			r.Post("/start", handleStart(svc))
			r.Post("/answer", handleAnswer(svc))
			r.Post("/back", handleBack(svc))
			r.Post("/restart", handleRestart(svc))
			r.Get("/events", handleEvents(svc))
		})
	})

	if opts.SPADir != "" {
		if info, err := os.Stat(opts.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", opts.SPADir)
			r.NotFound(handleSPA(opts.SPADir))
		}
	}
}
