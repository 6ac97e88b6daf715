package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// HealthResponse maps each checked dependency to its status.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

type sessionPath struct {
	ID string `path:"id"`
}

type answerInput struct {
	sessionPath
	AnswerRequest
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Lovebird API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Which lovebird are you? Quiz sessions over HTTP.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of the session store.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/quiz
	getQuiz, _ := r.NewOperationContext(http.MethodGet, "/api/quiz")
	getQuiz.SetSummary("Quiz info")
	getQuiz.SetDescription("Returns the mode, title and size of the quiz this server runs.")
	getQuiz.AddRespStructure(QuizInfoResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getQuiz)

	// POST /api/sessions
	createSession, _ := r.NewOperationContext(http.MethodPost, "/api/sessions")
	createSession.SetSummary("Create session")
	createSession.SetDescription("Creates a session in the not-started state.")
	createSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	_ = r.AddOperation(createSession)

	// GET /api/sessions/{id}
	getSession, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}")
	getSession.SetSummary("Get session")
	getSession.SetDescription("Returns the current view of a session.")
	getSession.AddReqStructure(sessionPath{})
	getSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getSession)

	// DELETE /api/sessions/{id}
	deleteSession, _ := r.NewOperationContext(http.MethodDelete, "/api/sessions/{id}")
	deleteSession.SetSummary("Delete session")
	deleteSession.AddReqStructure(sessionPath{})
	deleteSession.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteSession)

	// POST /api/sessions/{id}/start
	start, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/start")
	start.SetSummary("Start quiz")
	start.SetDescription("Moves the session to the first question. Starting again resets progress.")
	start.AddReqStructure(sessionPath{})
	start.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	start.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(start)

	// POST /api/sessions/{id}/answer
	answer, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/answer")
	answer.SetSummary("Answer question")
	answer.SetDescription("Selects an option of the current question by its index.")
	answer.AddReqStructure(answerInput{})
	answer.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	answer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	answer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	answer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(answer)

	// POST /api/sessions/{id}/back
	back, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/back")
	back.SetSummary("Undo answer")
	back.SetDescription("Replays the session from the start without its last answer.")
	back.AddReqStructure(sessionPath{})
	back.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	back.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	back.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(back)

	// POST /api/sessions/{id}/restart
	restart, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/restart")
	restart.SetSummary("Restart quiz")
	restart.SetDescription("Returns the session to the not-started state.")
	restart.AddReqStructure(sessionPath{})
	restart.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	restart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(restart)

	// GET /api/sessions/{id}/events
	events, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}/events")
	events.SetSummary("SSE event stream")
	events.SetDescription("Server-Sent Events stream of view changes for one session.")
	events.AddReqStructure(sessionPath{})
	events.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	events.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(events)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
