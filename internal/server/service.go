package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/playperu/lovebird/internal/metrics"
	"github.com/playperu/lovebird/internal/quiz"
	"github.com/playperu/lovebird/internal/store"
)

var errBadOption = errors.New("option index out of range")

// quizService runs engine operations against stored sessions. Every
// mutation holds the session's lock from load to save and publishes the
// resulting view.
type quizService struct {
	engine   quiz.Engine
	sessions store.SessionStore
	metrics  *metrics.Metrics
	broker   *Broker
	locks    *sessionLocks
	logger   *slog.Logger
}

func newQuizService(logger *slog.Logger, e quiz.Engine, s store.SessionStore, m *metrics.Metrics) *quizService {
	return &quizService{
		engine:   e,
		sessions: s,
		metrics:  m,
		broker:   NewBroker(),
		locks:    newSessionLocks(),
		logger:   logger,
	}
}

func (svc *quizService) view(s *quiz.Session) ViewResponse {
	return newViewResponse(svc.engine.Mode(), svc.engine.View(s))
}

func (svc *quizService) create(ctx context.Context) (*quiz.Session, error) {
	s := svc.engine.NewSession(uuid.NewString())
	if err := svc.sessions.Put(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (svc *quizService) get(ctx context.Context, id string) (*quiz.Session, error) {
	return svc.sessions.Get(ctx, id)
}

func (svc *quizService) remove(ctx context.Context, id string) error {
	unlock := svc.locks.lock(id)
	defer unlock()

	if err := svc.sessions.Delete(ctx, id); err != nil {
		return err
	}
	svc.broker.Publish(id, SessionEvent{Type: EventDeleted})
	return nil
}

// mutate loads session id, applies fn and saves the result.
func (svc *quizService) mutate(ctx context.Context, id string, fn func(s *quiz.Session) error) (*quiz.Session, error) {
	unlock := svc.locks.lock(id)
	defer unlock()

	s, err := svc.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := svc.engine.View(s)
	if err := fn(s); err != nil {
		return nil, err
	}
	if err := svc.sessions.Put(ctx, s); err != nil {
		return nil, err
	}

	after := svc.engine.View(s)
	if after.Terminal() && !before.Terminal() {
		svc.metrics.ObserveView(after)
		svc.logger.Info("session finished", "session_id", id, "kind", after.Kind)
	}
	view := newViewResponse(svc.engine.Mode(), after)
	svc.broker.Publish(id, SessionEvent{Type: EventView, View: &view})
	return s, nil
}

func (svc *quizService) start(ctx context.Context, id string) (*quiz.Session, error) {
	s, err := svc.mutate(ctx, id, svc.engine.Start)
	if err == nil {
		svc.metrics.SessionsStarted.Inc()
	}
	return s, err
}

// answer maps an option index on the current question to the engine
// choice it stands for.
func (svc *quizService) answer(ctx context.Context, id string, option int) (*quiz.Session, error) {
	s, err := svc.mutate(ctx, id, func(s *quiz.Session) error {
		v := svc.engine.View(s)
		if v.Kind != quiz.ViewQuestion {
			return quiz.ErrNotInProgress
		}
		choices := v.Choices()
		if option < 0 || option >= len(choices) {
			return fmt.Errorf("%w: %d not in [0, %d)", errBadOption, option, len(choices))
		}
		return svc.engine.Select(s, choices[option])
	})
	if err == nil {
		svc.metrics.Answers.WithLabelValues(string(svc.engine.Mode())).Inc()
	}
	return s, err
}

func (svc *quizService) back(ctx context.Context, id string) (*quiz.Session, error) {
	return svc.mutate(ctx, id, func(s *quiz.Session) error {
		return quiz.Back(svc.engine, s)
	})
}

func (svc *quizService) restart(ctx context.Context, id string) (*quiz.Session, error) {
	return svc.mutate(ctx, id, func(s *quiz.Session) error {
		svc.engine.Restart(s)
		return nil
	})
}
