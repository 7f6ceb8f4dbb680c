package app

import (
	"log"
	"os"
	"path/filepath"

	mcpserver "jot/internal/mcp"
	"jot/internal/storage"
)

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no
// GUI. It shares the document files with the desktop app; the running app's
// document watcher picks up whatever the agent writes.
func ServeMCP() {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".local", "share", "jot")

	files, err := storage.NewFileDocumentStore(filepath.Join(dataDir, "documents"))
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}

	mcpSrv := mcpserver.New(files)

	log.Println("[MCP] Starting standalone stdio server...")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
