package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/menutrail"
	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/aretw0/menutrail/pkg/ports"
)

// Navigator defines what the HTTP adapter needs from the navigator.
type Navigator interface {
	Explain(ctx context.Context, rel domain.Relation, menuName string, anchor *domain.AnchorEntity) (domain.Selection, error)
	Build(ctx context.Context, cfg menutrail.BlockConfig, menuName string, anchor *domain.AnchorEntity) (*menutrail.Block, error)
	LinkManager() ports.LinkManager
	Watch(ctx context.Context) (<-chan string, error)
}

// Server serves selections as JSON.
// The request trail is attached to the context, so the navigator must read
// its active trail through ContextTrail.
type Server struct {
	Navigator Navigator
	Metrics   http.Handler
	Logger    *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetricsHandler serves h on /metrics (default: promhttp.Handler()).
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the request failure logger (default: slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the navigator.
func NewHandler(nav Navigator, opts ...Option) http.Handler {
	s := &Server{
		Navigator: nav,
		Metrics:   promhttp.Handler(),
		Logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Handle("/metrics", s.Metrics)
	r.Get("/events", s.SubscribeEvents)

	r.Route("/menus/{menu}", func(r chi.Router) {
		r.Get("/trail", s.GetTrail)
		r.Post("/block", s.PostBlock)
		r.Get("/{relation}", s.GetSelection)
		r.Post("/{relation}", s.PostSelection)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Position is the request's position in a menu. Trail is node-first, as an
// active trail provider would hand it out; Current is resolved to its
// ancestors through the link manager. Trail wins when both are set.
type Position struct {
	Current string               `json:"current,omitempty"`
	Trail   []string             `json:"trail,omitempty"`
	Entity  *domain.AnchorEntity `json:"entity,omitempty"`
}

// BlockRequest is the body of POST /menus/{menu}/block.
type BlockRequest struct {
	Position
	Config menutrail.BlockConfig `json:"config"`
}

// SelectionResponse is returned by the selection endpoints.
type SelectionResponse struct {
	Menu     string          `json:"menu"`
	Relation domain.Relation `json:"relation"`
	Reason   domain.Reason   `json:"reason"`
	Trail    domain.Trail    `json:"trail"`
	Tree     domain.Tree     `json:"tree"`
}

// GetSelection handles GET /menus/{menu}/{relation}?current=...&trail=a,b,.
func (s *Server) GetSelection(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pos := Position{Current: q.Get("current")}
	if raw, ok := q["trail"]; ok && len(raw) > 0 {
		pos.Trail = strings.Split(raw[0], ",")
	}
	s.selection(w, r, pos)
}

// PostSelection handles POST /menus/{menu}/{relation} with a Position body.
func (s *Server) PostSelection(w http.ResponseWriter, r *http.Request) {
	var pos Position
	if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("PostSelection: Invalid request body", "error", err)
		return
	}
	s.selection(w, r, pos)
}

func (s *Server) selection(w http.ResponseWriter, r *http.Request, pos Position) {
	menuName := chi.URLParam(r, "menu")
	rel, err := domain.ParseRelation(chi.URLParam(r, "relation"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, err := s.withPosition(r.Context(), pos)
	if err != nil {
		s.fail(w, "Selection", err)
		return
	}

	sel, err := s.Navigator.Explain(ctx, rel, menuName, pos.Entity)
	if err != nil {
		s.fail(w, "Selection", err)
		return
	}

	writeJSON(w, s.Logger, SelectionResponse{
		Menu:     menuName,
		Relation: sel.Relation,
		Reason:   sel.Reason,
		Trail:    sel.Trail,
		Tree:     sel.Tree,
	})
}

// PostBlock handles POST /menus/{menu}/block.
// A dropped empty block is answered with 204 No Content.
func (s *Server) PostBlock(w http.ResponseWriter, r *http.Request) {
	var body BlockRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("PostBlock: Invalid request body", "error", err)
		return
	}
	if body.Config.Relation != "" {
		rel, err := domain.ParseRelation(string(body.Config.Relation))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		body.Config.Relation = rel
	}

	ctx, err := s.withPosition(r.Context(), body.Position)
	if err != nil {
		s.fail(w, "Block", err)
		return
	}

	block, err := s.Navigator.Build(ctx, body.Config, chi.URLParam(r, "menu"), body.Entity)
	if err != nil {
		s.fail(w, "Block", err)
		return
	}
	if block == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, s.Logger, block)
}

// GetTrail handles GET /menus/{menu}/trail?current=...: the node-first trail
// of a link, as the CLI and clients pass it back.
func (s *Server) GetTrail(w http.ResponseWriter, r *http.Request) {
	ids, err := s.trailOf(r.Context(), r.URL.Query().Get("current"))
	if err != nil {
		s.fail(w, "Trail", err)
		return
	}
	writeJSON(w, s.Logger, map[string]any{"trail": ids})
}

func (s *Server) withPosition(ctx context.Context, pos Position) (context.Context, error) {
	if len(pos.Trail) > 0 {
		return ContextWithTrail(ctx, pos.Trail), nil
	}
	if pos.Current == "" {
		return ctx, nil
	}
	ids, err := s.trailOf(ctx, pos.Current)
	if err != nil {
		return nil, err
	}
	return ContextWithTrail(ctx, ids), nil
}

func (s *Server) trailOf(ctx context.Context, current string) ([]string, error) {
	return TrailOf(ctx, s.Navigator.LinkManager(), current)
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	var loadErr *domain.LoadError
	switch {
	case errors.Is(err, domain.ErrUnknownRelation), errors.Is(err, domain.ErrInvalidParameters):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrLinkNotFound), errors.Is(err, domain.ErrMenuNotFound):
		status = http.StatusNotFound
	case errors.As(err, &loadErr):
		status = http.StatusBadGateway
	}

	http.Error(w, fmt.Sprintf("%s error: %v", op, err), status)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]string{
		"app":     "menutrail-http",
		"version": strings.TrimSpace(menutrail.Version),
	})
}

// SubscribeEvents handles GET /events: a server-sent event per changed link document.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	events, err := s.Navigator.Watch(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusNotImplemented)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
