package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/lovebird/internal/quiz"
	"github.com/playperu/lovebird/internal/store"
)

func handleQuizInfo(e quiz.Engine) http.HandlerFunc {
	info := QuizInfoResponse{Mode: string(e.Mode())}
	switch e := e.(type) {
	case *quiz.ScoreEngine:
		sc := e.Scenario()
		info.Title = sc.Title
		info.Questions = len(sc.Questions)
		info.Results = len(sc.Results)
		for _, c := range quiz.Categories {
			info.Categories = append(info.Categories, string(c))
		}
	case *quiz.GraphEngine:
		sc := e.Scenario()
		info.Title = sc.Title
		info.Nodes = len(sc.Nodes)
		for _, n := range sc.Nodes {
			if n.Type == quiz.NodeResult {
				info.Results++
			}
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, info)
	}
}

func handleCreateSession(svc *quizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.create(r.Context())
		if err != nil {
			svc.writeSessionError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, SessionResponse{ID: s.ID, View: svc.view(s)})
	}
}

func handleGetSession(svc *quizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			svc.writeSessionError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, SessionResponse{ID: s.ID, View: svc.view(s)})
	}
}

func handleDeleteSession(svc *quizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.remove(r.Context(), chi.URLParam(r, "id")); err != nil {
			svc.writeSessionError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleStart(svc *quizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.start(r.Context(), chi.URLParam(r, "id"))
		svc.writeSession(w, r, s, err)
	}
}

func handleAnswer(svc *quizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnswerRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Option == nil {
			writeError(w, http.StatusBadRequest, "option is required")
			return
		}
		s, err := svc.answer(r.Context(), chi.URLParam(r, "id"), *req.Option)
		svc.writeSession(w, r, s, err)
	}
}

func handleBack(svc *quizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.back(r.Context(), chi.URLParam(r, "id"))
		svc.writeSession(w, r, s, err)
	}
}

func handleRestart(svc *quizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.restart(r.Context(), chi.URLParam(r, "id"))
		svc.writeSession(w, r, s, err)
	}
}

func (svc *quizService) writeSession(w http.ResponseWriter, r *http.Request, s *quiz.Session, err error) {
	if err != nil {
		svc.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{ID: s.ID, View: svc.view(s)})
}

func (svc *quizService) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, errBadOption):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, quiz.ErrNotInProgress):
		writeError(w, http.StatusConflict, "session is not on a question")
	case errors.Is(err, quiz.ErrNothingToUndo):
		writeError(w, http.StatusConflict, "nothing to undo")
	case errors.Is(err, quiz.ErrModeMismatch):
		writeError(w, http.StatusConflict, "session belongs to a different quiz mode")
	default:
		svc.logger.Error("session operation failed",
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
