// Package http exposes optimization runs over a small JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/flowant"
	"github.com/aretw0/flowant/pkg/adapters/flowfile"
	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/flowant/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Optimizer defines the part of flowant.Optimizer the server drives.
type Optimizer interface {
	Optimize(ctx context.Context, g *domain.Graph, opts ...flowant.RunOption) (*domain.Result, error)
}

// Server serves stored results and, when an Optimizer is configured, starts new runs.
type Server struct {
	Store     ports.ResultStore
	Optimizer Optimizer
	Streams   *StreamManager

	gatherer prometheus.Gatherer
	logger   *slog.Logger
	baseCtx  context.Context
	wg       sync.WaitGroup
}

var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithOptimizer enables POST /runs.
func WithOptimizer(o Optimizer) Option {
	return func(s *Server) {
		s.Optimizer = o
	}
}

// WithGatherer exposes the metrics of g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithBaseContext sets the parent context of background runs.
func WithBaseContext(ctx context.Context) Option {
	return func(s *Server) {
		s.baseCtx = ctx
	}
}

// NewServer creates a server over store.
func NewServer(store ports.ResultStore, opts ...Option) *Server {
	s := &Server{
		Store:   store,
		Streams: NewStreamManager(),
		baseCtx: context.Background(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates a new HTTP handler over store.
func NewHandler(store ports.ResultStore, opts ...Option) http.Handler {
	return NewServer(store, opts...).Routes()
}

// Routes builds the router: the generated API routes plus the OpenAPI
// document, its Swagger UI and, when a gatherer is set, /metrics.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			s.logger.Error("Failed to load OpenAPI spec", "err", err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(HandlerFromMux(s, r))
}

// Wait blocks until every background run has finished.
func (s *Server) Wait() {
	s.wg.Wait()
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Flowant API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, Health{Status: "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, http.StatusOK, Info{
		App:        "flowant-http",
		Version:    strings.TrimSpace(flowant.Version),
		ApiVersion: apiVersion,
		CanStart:   s.Optimizer != nil,
	})
}

// ListRuns handles GET /runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ListRuns failed", "err", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, RunList{Runs: ids})
}

// GetRun handles GET /runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request, id RunID) {
	result, err := s.Store.Load(r.Context(), id)
	if errors.Is(err, domain.ErrRunNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("GetRun failed", "run_id", id, "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// DeleteRun handles DELETE /runs/{id}.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request, id RunID) {
	if err := s.Store.Delete(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		s.logger.Error("DeleteRun failed", "run_id", id, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartRun handles POST /runs. The body is a flow document in JSON.
// With ?wait=true the run completes before the response and the result is returned;
// otherwise the run continues in the background and 202 carries its id.
func (s *Server) StartRun(w http.ResponseWriter, r *http.Request, params StartRunParams) {
	if s.Optimizer == nil {
		http.Error(w, "Optimization is not enabled on this server", http.StatusNotImplemented)
		return
	}

	g, err := flowfile.Read(r.Body, flowfile.FormatJSON)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid flow: %v", err), http.StatusBadRequest)
		s.logger.Warn("StartRun: invalid flow", "err", err)
		return
	}

	runID := uuid.NewString()
	hooks := s.Streams.Hooks()
	s.Streams.Begin(runID)

	if params.Wait != nil && *params.Wait {
		result, err := s.Optimizer.Optimize(r.Context(), g, flowant.WithRunID(runID), flowant.WithRunHooks(hooks))
		s.Streams.Close(runID)
		if err != nil {
			http.Error(w, fmt.Sprintf("Optimize error: %v", err), http.StatusUnprocessableEntity)
			s.logger.Error("StartRun failed", "run_id", runID, "err", err)
			return
		}
		s.writeJSON(w, http.StatusCreated, result)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.Streams.Close(runID)
		if _, err := s.Optimizer.Optimize(s.baseCtx, g, flowant.WithRunID(runID), flowant.WithRunHooks(hooks)); err != nil {
			s.logger.Error("background run failed", "run_id", runID, "err", err)
		}
	}()

	s.writeJSON(w, http.StatusAccepted, RunAccepted{RunId: runID})
}

// SubscribeEvents handles GET /runs/{id}/events (SSE).
// The stream ends when the run finishes. A run that already finished gets the
// done event at once; an id that is neither running nor stored is a 404.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, id RunID) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	ch, cancel, running := s.Streams.Subscribe(id)
	defer cancel()

	if !running {
		_, err := s.Store.Load(r.Context(), id)
		if errors.Is(err, domain.ErrRunNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
			s.logger.Error("SubscribeEvents failed", "run_id", id, "err", err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	if !running {
		fmt.Fprintf(w, "event: done\ndata: %s\n\n", id)
		flusher.Flush()
		return
	}

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				fmt.Fprintf(w, "event: done\ndata: %s\n\n", id)
				flusher.Flush()
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}
