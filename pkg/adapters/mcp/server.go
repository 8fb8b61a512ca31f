// Package mcp exposes the optimizer as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/flowant"
	"github.com/aretw0/flowant/internal/logging"
	"github.com/aretw0/flowant/pkg/adapters/flowfile"
	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/flowant/pkg/fitness"
	"github.com/aretw0/flowant/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// OptimizeResponse is the structured output of the optimize tool.
type OptimizeResponse struct {
	RunID       string            `json:"run_id" jsonschema_description:"Identifier of the stored run"`
	Sequence    []string          `json:"sequence" jsonschema_description:"Best edit sequence as action tokens"`
	Fitness     float64           `json:"fitness" jsonschema_description:"Fitness of the edited flow"`
	Baseline    float64           `json:"baseline" jsonschema_description:"Fitness of the unmodified flow"`
	Improved    bool              `json:"improved" jsonschema_description:"Whether the best sequence beats the unmodified flow"`
	Iterations  int               `json:"iterations" jsonschema_description:"Completed colony iterations"`
	Diff        *domain.GraphDiff `json:"diff,omitempty" jsonschema_description:"Structural changes of the best sequence"`
	Interrupted bool              `json:"interrupted,omitempty"`
}

// ActionSpaceResponse is the structured output of the action_space tool.
type ActionSpaceResponse struct {
	Stats   domain.ActionSpaceStats `json:"stats" jsonschema_description:"Number of actions by kind"`
	Actions []string                `json:"actions" jsonschema_description:"Every legal edit as an action token"`
}

// Server exposes optimization tools over MCP.
type Server struct {
	cfg       flowant.Config
	store     ports.ResultStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithConfig sets the base tunables; tool arguments override some of them.
func WithConfig(cfg flowant.Config) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// WithStore persists every run started through the server.
func WithStore(store ports.ResultStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...Option) *Server {
	s := &Server{
		cfg:       flowant.DefaultConfig(),
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("flowant-mcp", flowant.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	if s.store != nil {
		s.registerResources()
	}
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	optimizeTool := mcp.NewTool("optimize",
		mcp.WithDescription("Search for an edit sequence that improves a dialogue flow. Without a reference flow, the fitness is the fraction of states reachable from the root; with one, it is the edge similarity to the reference."),
		mcp.WithString("flow", mcp.Required(), mcp.Description("Flow document as JSON: {sections: [{id, text, type, buttons: [{text, nextSectionId}]}]}")),
		mcp.WithString("reference", mcp.Description("Reference flow document as JSON (optional)")),
		mcp.WithNumber("iterations", mcp.Description("Number of colony iterations (optional)")),
		mcp.WithNumber("ants", mcp.Description("Number of ants per iteration (optional)")),
		mcp.WithNumber("seed", mcp.Description("Random seed for reproducible runs (optional)")),
		mcp.WithOutputSchema[OptimizeResponse](),
	)
	s.mcpServer.AddTool(optimizeTool, mcp.NewStructuredToolHandler(s.handleOptimize))

	actionsTool := mcp.NewTool("action_space",
		mcp.WithDescription("List every legal single-step edit of a dialogue flow."),
		mcp.WithString("flow", mcp.Required(), mcp.Description("Flow document as JSON")),
		mcp.WithOutputSchema[ActionSpaceResponse](),
	)
	s.mcpServer.AddTool(actionsTool, mcp.NewStructuredToolHandler(s.handleActionSpace))
}

func parseFlow(args map[string]interface{}, key string) (*domain.Graph, error) {
	raw, _ := args[key].(string)
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%s is required", key)
	}
	g, err := flowfile.Parse([]byte(raw), flowfile.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return g, nil
}

func numberArg(args map[string]interface{}, key string) (float64, bool) {
	switch v := args[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func (s *Server) handleOptimize(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (OptimizeResponse, error) {
	g, err := parseFlow(args, "flow")
	if err != nil {
		return OptimizeResponse{}, err
	}

	var oracle ports.FitnessOracle = fitness.Reachability()
	if _, ok := args["reference"]; ok {
		ref, err := parseFlow(args, "reference")
		if err != nil {
			return OptimizeResponse{}, err
		}
		oracle = fitness.Similarity(ref)
	}

	cfg := s.cfg
	if v, ok := numberArg(args, "iterations"); ok {
		cfg.Iterations = int(v)
	}
	if v, ok := numberArg(args, "ants"); ok {
		cfg.Ants = int(v)
	}
	if v, ok := numberArg(args, "seed"); ok {
		cfg.Seed = uint64(v)
	}

	opts := []flowant.Option{flowant.WithConfig(cfg), flowant.WithLogger(s.logger)}
	if s.store != nil {
		opts = append(opts, flowant.WithStore(s.store))
	}
	opt, err := flowant.New(oracle, opts...)
	if err != nil {
		return OptimizeResponse{}, err
	}

	result, err := opt.Optimize(ctx, g, flowant.WithSourceName("mcp"))
	if err != nil && result == nil {
		return OptimizeResponse{}, fmt.Errorf("optimize failed: %w", err)
	}
	if err != nil {
		s.logger.Warn("MCP Optimize: run ended early", "run_id", result.RunID, "err", err)
	}

	resp := OptimizeResponse{
		RunID:       result.RunID,
		Sequence:    result.Best.Tokens(),
		Fitness:     result.Best.Fitness,
		Baseline:    result.Baseline,
		Improved:    result.Improvement() > 0,
		Iterations:  result.Iterations,
		Interrupted: result.Interrupted,
	}
	if _, diff, err := flowant.Apply(g, result); err == nil {
		resp.Diff = diff
	}
	return resp, nil
}

func (s *Server) handleActionSpace(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ActionSpaceResponse, error) {
	g, err := parseFlow(args, "flow")
	if err != nil {
		return ActionSpaceResponse{}, err
	}

	opt, err := flowant.New(fitness.Reachability(), flowant.WithConfig(s.cfg))
	if err != nil {
		return ActionSpaceResponse{}, err
	}
	actions, stats, err := opt.ActionSpace(g)
	if err != nil {
		return ActionSpaceResponse{}, err
	}
	return ActionSpaceResponse{Stats: stats, Actions: domain.Tokens(actions)}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("flowant://runs", "Stored Optimization Runs",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list runs: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "flowant://runs",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
