package mcpserver

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jot/internal/domain"
)

// Server is the MCP server for the note. It exposes tools so AI agents can
// read and update the document; changes go through the same DocumentStore as
// the editor, and the document watcher picks them up for the frontend.
type Server struct {
	mcp   *server.MCPServer
	store domain.DocumentStore
}

// New creates and configures a new MCP server with all tools registered.
func New(store domain.DocumentStore) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"jot-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerNoteTools()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// resolveMode reads the optional mode argument, defaulting to normal mode.
func resolveMode(args map[string]any) (domain.Mode, error) {
	v, _ := args["mode"].(string)
	if v == "" {
		return domain.ModeNormal, nil
	}
	mode := domain.Mode(v)
	if !mode.Valid() {
		return "", fmt.Errorf("unknown mode %q (want normal or markdown)", v)
	}
	return mode, nil
}
