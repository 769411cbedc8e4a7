// Package mcp exposes registered machines as an MCP server so agent
// tooling can drive automata through tool calls.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/registry"
)

// Server wraps a machine registry and exposes it as an MCP Server.
type Server struct {
	registry  *registry.Registry
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(reg *registry.Registry) *Server {
	s := &Server{
		registry:  reg,
		mcpServer: server.NewMCPServer("arbor-mcp", strings.TrimSpace(arbor.Version)),
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
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

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

func (s *Server) registerTools() {
	// TOOL: read_symbol
	readTool := mcp.NewTool("read_symbol",
		mcp.WithDescription("Feed one input symbol into a machine and resolve any transient chain it sets off."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Registered machine name")),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Input symbol")),
		mcp.WithString("params", mcp.Description("JSON array of opaque parameters for the first transient hop (optional)")),
		mcp.WithOutputSchema[ReadResult](),
	)
	s.mcpServer.AddTool(readTool, mcp.NewStructuredToolHandler(s.handleReadSymbol))

	// TOOL: get_state
	stateTool := mcp.NewTool("get_state",
		mcp.WithDescription("Return the machine's current state, transient-ness and busy flag."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Registered machine name")),
		mcp.WithOutputSchema[StateResult](),
	)
	s.mcpServer.AddTool(stateTool, mcp.NewStructuredToolHandler(s.handleGetState))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get a machine's state and transition tables for introspection."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Registered machine name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArgs[machineArgs](request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		m, ok := s.registry.Get(args.Machine)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("machine not found: %s", args.Machine)), nil
		}
		jsonBytes, _ := json.Marshal(graphOf(args.Machine, m))
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleReadSymbol(ctx context.Context, request mcp.CallToolRequest, raw map[string]any) (ReadResult, error) {
	args, err := decodeArgs[readArgs](raw)
	if err != nil {
		return ReadResult{}, err
	}

	m, ok := s.registry.Get(args.Machine)
	if !ok {
		return ReadResult{}, fmt.Errorf("machine not found: %s", args.Machine)
	}

	var params []any
	if args.Params != "" {
		if err := json.Unmarshal([]byte(args.Params), &params); err != nil {
			return ReadResult{}, fmt.Errorf("params must be a JSON array: %w", err)
		}
	}

	readErr := m.ReadSymbol(ctx, args.Symbol, params...)
	if readErr != nil {
		slog.Warn("MCP read_symbol: chain failed", "machine", args.Machine, "symbol", args.Symbol, "error", readErr)
	}
	return newReadResult(args.Machine, m, readErr), nil
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest, raw map[string]any) (StateResult, error) {
	args, err := decodeArgs[machineArgs](raw)
	if err != nil {
		return StateResult{}, err
	}
	m, ok := s.registry.Get(args.Machine)
	if !ok {
		return StateResult{}, fmt.Errorf("machine not found: %s", args.Machine)
	}
	return newStateResult(args.Machine, m), nil
}

func (s *Server) registerResources() {
	// EXPOSE: arbor://machines
	s.mcpServer.AddResource(mcp.NewResource("arbor://machines", "Registered Machines",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		graphs := make([]GraphResult, 0, len(s.registry.Names()))
		for _, name := range s.registry.Names() {
			if m, ok := s.registry.Get(name); ok {
				graphs = append(graphs, graphOf(name, m))
			}
		}
		jsonBytes, err := json.Marshal(graphs)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal machine graphs: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "arbor://machines",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
