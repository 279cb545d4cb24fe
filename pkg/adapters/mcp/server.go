package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ratchetworks/ratchet"
	"github.com/ratchetworks/ratchet/pkg/binder"
	"github.com/ratchetworks/ratchet/pkg/domain"
)

// StateResponse is the unified structure returned by state-changing tools.
type StateResponse struct {
	Subject string       `json:"subject" jsonschema_description:"The subject identifier"`
	State   domain.State `json:"state" jsonschema_description:"The subject's current state"`
	Result  any          `json:"result,omitempty" jsonschema_description:"The transition body's result, if any"`
}

// TransitionsResponse lists the transitions available to a subject.
type TransitionsResponse struct {
	Subject     string             `json:"subject" jsonschema_description:"The subject identifier"`
	State       domain.State       `json:"state" jsonschema_description:"The subject's current state"`
	Transitions []domain.NextState `json:"transitions" jsonschema_description:"Available transitions and their destinations"`
}

// Server exposes workflow operations as an MCP server, so agents can inspect
// and drive subjects through their workflows.
type Server struct {
	binder    *binder.Binder
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance over b.
func NewServer(b *binder.Binder) *Server {
	s := &Server{
		binder:    b,
		mcpServer: server.NewMCPServer("ratchet-mcp", ratchet.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
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

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: get_state
	getStateTool := mcp.NewTool("get_state",
		mcp.WithDescription("Get the current workflow state of a subject."),
		mcp.WithString("subject_id", mcp.Required(), mcp.Description("The subject identifier")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(getStateTool, mcp.NewStructuredToolHandler(s.handleGetState))

	// TOOL: list_transitions
	listTool := mcp.NewTool("list_transitions",
		mcp.WithDescription("List the transitions available to a subject from its current state."),
		mcp.WithString("subject_id", mcp.Required(), mcp.Description("The subject identifier")),
		mcp.WithBoolean("checked", mcp.Description("Evaluate guards and list only permitted transitions")),
		mcp.WithOutputSchema[TransitionsResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListTransitions))

	// TOOL: fire_transition
	fireTool := mcp.NewTool("fire_transition",
		mcp.WithDescription("Perform the named transition on a subject."),
		mcp.WithString("subject_id", mcp.Required(), mcp.Description("The subject identifier")),
		mcp.WithString("transition", mcp.Required(), mcp.Description("The transition name")),
		mcp.WithString("params", mcp.Description("JSON object of transition parameters (optional)")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(fireTool, mcp.NewStructuredToolHandler(s.handleFireTransition))

	// TOOL: advance
	advanceTool := mcp.NewTool("advance",
		mcp.WithDescription("Perform the single transition eligible from the subject's current state."),
		mcp.WithString("subject_id", mcp.Required(), mcp.Description("The subject identifier")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(advanceTool, mcp.NewStructuredToolHandler(s.handleAdvance))
}

// Handler methods for structured tools

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResponse, error) {
	id, _ := args["subject_id"].(string)

	var resp StateResponse
	err := s.binder.Do(ctx, id, func(ctx context.Context, wf *ratchet.Workflow) error {
		resp = StateResponse{Subject: id, State: wf.State()}
		return nil
	})
	if err != nil {
		return StateResponse{}, fmt.Errorf("get state failed: %w", err)
	}
	return resp, nil
}

func (s *Server) handleListTransitions(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TransitionsResponse, error) {
	id, _ := args["subject_id"].(string)
	checked, _ := args["checked"].(bool)

	var resp TransitionsResponse
	err := s.binder.Do(ctx, id, func(ctx context.Context, wf *ratchet.Workflow) error {
		next, err := wf.NextStates(ctx, domain.Query{Checked: checked})
		if err != nil {
			return err
		}
		resp = TransitionsResponse{Subject: id, State: wf.State(), Transitions: next}
		return nil
	})
	if err != nil {
		return TransitionsResponse{}, fmt.Errorf("list transitions failed: %w", err)
	}
	return resp, nil
}

func (s *Server) handleFireTransition(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResponse, error) {
	id, _ := args["subject_id"].(string)
	name, _ := args["transition"].(string)

	var params domain.Params
	if paramsStr, ok := args["params"].(string); ok && paramsStr != "" {
		if err := json.Unmarshal([]byte(paramsStr), &params); err != nil {
			return StateResponse{}, fmt.Errorf("invalid params: %w", err)
		}
	}

	var resp StateResponse
	err := s.binder.Do(ctx, id, func(ctx context.Context, wf *ratchet.Workflow) error {
		result, err := wf.Run(ctx, name, params)
		if err != nil {
			return err
		}
		resp = StateResponse{Subject: id, State: wf.State(), Result: result}
		return nil
	})
	if err != nil {
		return StateResponse{}, fmt.Errorf("transition failed: %w", err)
	}
	return resp, nil
}

func (s *Server) handleAdvance(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResponse, error) {
	id, _ := args["subject_id"].(string)

	var resp StateResponse
	err := s.binder.Do(ctx, id, func(ctx context.Context, wf *ratchet.Workflow) error {
		if err := wf.Advance(ctx); err != nil {
			return err
		}
		resp = StateResponse{Subject: id, State: wf.State()}
		return nil
	})
	if err != nil {
		return StateResponse{}, fmt.Errorf("advance failed: %w", err)
	}
	return resp, nil
}

func (s *Server) registerResources() {
	// EXPOSE: ratchet://definition
	s.mcpServer.AddResource(mcp.NewResource("ratchet://definition", "Workflow Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(definitionDoc(s.binder.Factory().Definition()))
		if err != nil {
			return nil, fmt.Errorf("failed to encode definition: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "ratchet://definition",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

// definitionDoc projects a definition onto a JSON-friendly shape. Source is
// rendered with its wildcard/set notation.
func definitionDoc(def domain.Definition) map[string]any {
	transitions := make([]map[string]any, 0, len(def.Transitions))
	for _, t := range def.Transitions {
		doc := map[string]any{
			"name":        t.Name,
			"source":      t.Source.String(),
			"destination": string(t.Destination),
		}
		if t.Label != "" {
			doc["label"] = t.Label
		}
		if t.DateField != "" {
			doc["date_field"] = t.DateField
		}
		transitions = append(transitions, doc)
	}

	doc := map[string]any{
		"name":        def.Name,
		"states":      def.States,
		"initial":     string(def.InitialState()),
		"transitions": transitions,
	}
	if len(def.Events) > 0 {
		doc["events"] = def.Events
	}
	return doc
}
