package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"postgen/generator"
	"postgen/logging"
	"postgen/orchestrator"
)

const maxJSONBodyBytes = 1 << 20 // 1 MiB

const (
	errMethodNotAllowed  = "Method not allowed"
	hintMethodNotAllowed = "Send a POST request with topic in the body"
	errInvalidBody       = "Invalid JSON body"
	hintInvalidBody      = `Send a JSON object such as {"topic": "remote work", "tone": "casual", "platform": "LinkedIn"}`
)

// PostHandler runs one post request.
type PostHandler interface {
	Handle(ctx context.Context, req generator.PostRequest) (*orchestrator.Response, error)
}

type Server struct {
	posts PostHandler
}

func New(posts PostHandler) (*Server, error) {
	if posts == nil {
		return nil, errors.New("post handler required")
	}
	return &Server{posts: posts}, nil
}

// Routes serves the endpoint at /api/generate-post and at / for
// single-function deployments.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.CleanPath)
	r.Use(requestID)
	r.Use(logRequests)
	r.Use(recoverJSON)
	r.Use(cors)

	r.Get("/health", handleHealth)
	r.HandleFunc("/api/generate-post", s.handleGeneratePost)
	r.HandleFunc("/", s.handleGeneratePost)
	return r
}

// --- Handlers ---

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleGeneratePost(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "POST, OPTIONS")
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: errMethodNotAllowed, Hint: hintMethodNotAllowed})
		return
	}

	req, err := decodeRequest(w, r)
	if err != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "Rejected request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errInvalidBody, Hint: hintInvalidBody})
		return
	}

	resp, err := s.posts.Handle(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

// decodeRequest reads the JSON body. An empty body decodes to a zero request so
// the missing topic is reported by validation.
func decodeRequest(w http.ResponseWriter, r *http.Request) (generator.PostRequest, error) {
	var req generator.PostRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return generator.PostRequest{}, err
	}
	return req, nil
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *orchestrator.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Message, Hint: verr.Hint})
		return
	}
	logging.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed", "error", err)
	hint := orchestrator.HintUnexpected
	var uerr *orchestrator.UnexpectedError
	if errors.As(err, &uerr) && uerr.Hint != "" {
		hint = uerr.Hint
	}
	writeJSON(w, http.StatusInternalServerError, errorBody{
		Error:   orchestrator.ErrMsgUnexpected,
		Details: err.Error(),
		Hint:    hint,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
