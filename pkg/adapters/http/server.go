package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ratchetworks/ratchet"
	"github.com/ratchetworks/ratchet/internal/logging"
	"github.com/ratchetworks/ratchet/pkg/binder"
	"github.com/ratchetworks/ratchet/pkg/domain"
)

// Server exposes workflow operations over HTTP. Every subject-scoped request
// goes through the binder, so concurrent requests against the same subject
// are serialized.
type Server struct {
	binder *binder.Binder
	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures request logging. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates an HTTP handler serving the workflow API for b.
func NewHandler(b *binder.Binder, opts ...Option) http.Handler {
	server := &Server{
		binder: b,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Route("/subjects/{id}", func(r chi.Router) {
		r.Get("/state", server.getState)
		r.Get("/transitions", server.listTransitions)
		r.Get("/next-states", server.listNextStates)
		r.Post("/transitions/{name}", server.runTransition)
		r.Post("/advance", server.advance)
	})
	return r
}

type stateResponse struct {
	ID    string       `json:"id"`
	State domain.State `json:"state"`
}

type transitionResponse struct {
	Name        string       `json:"name"`
	Source      string       `json:"source"`
	Destination domain.State `json:"destination"`
	Label       string       `json:"label,omitempty"`
}

type runRequest struct {
	Params domain.Params `json:"params,omitempty"`
}

type runResponse struct {
	State  domain.State `json:"state"`
	Result any          `json:"result,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var state domain.State
	err := s.binder.Do(r.Context(), id, func(ctx context.Context, wf *ratchet.Workflow) error {
		state = wf.State()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stateResponse{ID: id, State: state})
}

func (s *Server) listTransitions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	query := domain.Query{
		From:    domain.State(r.URL.Query().Get("from")),
		Checked: r.URL.Query().Get("checked") == "true",
	}

	var transitions []domain.Transition
	err := s.binder.Do(r.Context(), id, func(ctx context.Context, wf *ratchet.Workflow) error {
		var err error
		transitions, err = wf.AvailableTransitions(ctx, query)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]transitionResponse, 0, len(transitions))
	for _, t := range transitions {
		resp = append(resp, transitionResponse{
			Name:        t.Name,
			Source:      t.Source.String(),
			Destination: t.Destination,
			Label:       t.Label,
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listNextStates(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	query := domain.Query{
		From:    domain.State(r.URL.Query().Get("from")),
		Checked: r.URL.Query().Get("checked") == "true",
	}

	var next []domain.NextState
	err := s.binder.Do(r.Context(), id, func(ctx context.Context, wf *ratchet.Workflow) error {
		var err error
		next, err = wf.NextStates(ctx, query)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if next == nil {
		next = []domain.NextState{}
	}
	s.writeJSON(w, http.StatusOK, next)
}

func (s *Server) runTransition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name := chi.URLParam(r, "name")

	var body runRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			s.logger.Warn("invalid request body", "subject_id", id, "err", err)
			return
		}
	}

	var resp runResponse
	err := s.binder.Do(r.Context(), id, func(ctx context.Context, wf *ratchet.Workflow) error {
		result, err := wf.Run(ctx, name, body.Params)
		if err != nil {
			return err
		}
		resp = runResponse{State: wf.State(), Result: result}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var state domain.State
	err := s.binder.Do(r.Context(), id, func(ctx context.Context, wf *ratchet.Workflow) error {
		if err := wf.Advance(ctx); err != nil {
			return err
		}
		state = wf.State()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stateResponse{ID: id, State: state})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

// writeError maps workflow errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		forbidden   *domain.ForbiddenTransitionError
		invalid     *domain.InvalidTransitionError
		missing     *domain.TransitionDoesNotExistError
		unavailable *domain.TransitionUnavailableError
		ambiguous   *domain.TransitionAmbiguousError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSubjectNotFound):
		status = http.StatusNotFound
	case errors.As(err, &missing):
		status = http.StatusNotFound
	case errors.As(err, &forbidden):
		status = http.StatusForbidden
	case errors.As(err, &invalid), errors.As(err, &unavailable), errors.As(err, &ambiguous):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Warn("request rejected", "path", r.URL.Path, "status", status, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
