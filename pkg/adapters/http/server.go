// Package http exposes registered machines over a JSON API.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/aretw0/arbor/pkg/registry"
)

// Server routes machine operations to a registry of named machines.
type Server struct {
	registry  *registry.Registry
	logger    *slog.Logger
	collector *observability.Collector
}

// ServerOption configures the HTTP server.
type ServerOption func(*Server)

// WithCollector records ReadSymbol outcomes on the given collector.
func WithCollector(c *observability.Collector) ServerOption {
	return func(s *Server) {
		s.collector = c
	}
}

// NewHandler creates an HTTP handler serving every machine in reg.
func NewHandler(reg *registry.Registry, logger *slog.Logger, opts ...ServerOption) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{registry: reg, logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Get("/machines", s.listMachines)
	r.Route("/machines/{name}", func(r chi.Router) {
		r.Get("/", s.getMachine)
		r.Get("/graph", s.getGraph)
		r.Post("/read", s.readSymbol)
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": arbor.Version})
}

func (s *Server) listMachines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"machines": s.registry.Names()})
}

func (s *Server) getMachine(w http.ResponseWriter, r *http.Request) {
	m, name, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snapshot(name, m))
}

// getGraph serves the transition graph, as JSON by default or as a
// Mermaid flowchart with ?format=mermaid. The Mermaid variant highlights
// the machine's current state.
func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	m, name, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("format") == "mermaid" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		overlay := &graph.Overlay{CurrentState: m.Current()}
		if _, err := w.Write([]byte(graph.GenerateMermaid(m.Definition(), overlay))); err != nil {
			s.logger.Error("graph write failed", "machine", name, "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, mapGraph(name, m.Definition()))
}

// readSymbol handles POST /machines/{name}/read.
func (s *Server) readSymbol(w http.ResponseWriter, r *http.Request) {
	m, name, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var body ReadRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("read: invalid request body", "machine", name, "error", err)
		return
	}
	if body.Symbol == "" {
		http.Error(w, "symbol is required", http.StatusBadRequest)
		return
	}

	err := m.ReadSymbol(r.Context(), body.Symbol, body.Params...)
	if s.collector != nil {
		s.collector.ObserveResult(err)
	}
	if err != nil {
		s.logger.Warn("read: chain failed", "machine", name, "symbol", body.Symbol, "error", err)
		writeJSON(w, statusFor(err), ReadResponse{
			Machine:  snapshot(name, m),
			Failures: mapFailures(err),
		})
		return
	}

	s.logger.Debug("read: chain resolved", "machine", name, "symbol", body.Symbol, "state", m.Current())
	writeJSON(w, http.StatusOK, ReadResponse{Machine: snapshot(name, m)})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*arbor.Machine, string, bool) {
	name := chi.URLParam(r, "name")
	m, ok := s.registry.Get(name)
	if !ok {
		http.Error(w, "machine not found", http.StatusNotFound)
		return nil, name, false
	}
	return m, name, true
}

// statusFor maps the failure taxonomy to HTTP status codes. A stuck
// machine is a conflict with its terminal condition, a missing transition
// is the caller's input problem, everything else is the machine's.
func statusFor(err error) int {
	switch domain.Kind(err) {
	case domain.KindStuck:
		return http.StatusConflict
	case domain.KindNoTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
