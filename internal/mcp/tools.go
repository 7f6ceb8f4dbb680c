package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"jot/internal/codec"
	"jot/internal/editor"
)

func (s *Server) registerNoteTools() {
	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the persisted note document for a mode"),
		mcp.WithString("mode", mcp.Description("Document mode: normal or markdown (default normal)")),
	), s.handleReadNote)

	s.mcp.AddTool(mcp.NewTool("write_note",
		mcp.WithDescription("Replace the note document for a mode with new content"),
		mcp.WithString("content", mcp.Description("Document text in the mode's encoding"), mcp.Required()),
		mcp.WithString("mode", mcp.Description("Document mode: normal or markdown (default normal)")),
	), s.handleWriteNote)

	s.mcp.AddTool(mcp.NewTool("append_note",
		mcp.WithDescription("Append a text block to the end of the note"),
		mcp.WithString("content", mcp.Description("Text to append"), mcp.Required()),
		mcp.WithString("mode", mcp.Description("Document mode: normal or markdown (default normal)")),
	), s.handleAppendNote)

	s.mcp.AddTool(mcp.NewTool("list_blocks",
		mcp.WithDescription("List the note's content blocks for a mode"),
		mcp.WithString("mode", mcp.Description("Document mode: normal or markdown (default normal)")),
	), s.handleListBlocks)
}

func (s *Server) handleReadNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode, err := resolveMode(req.GetArguments())
	if err != nil {
		return nil, err
	}
	text, err := s.store.Load(mode)
	if err != nil {
		return nil, fmt.Errorf("load note: %w", err)
	}
	return textResult(text), nil
}

func (s *Server) handleWriteNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	mode, err := resolveMode(args)
	if err != nil {
		return nil, err
	}
	content, _ := args["content"].(string)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("refusing to replace the note with empty content")
	}
	// Round-trip through the codec so whatever lands on disk is well-formed
	// for the mode.
	blocks := codec.Decode(mode, content)
	if err := s.store.Save(mode, codec.Encode(mode, blocks)); err != nil {
		return nil, fmt.Errorf("write note: %w", err)
	}
	return textResult(fmt.Sprintf("Note replaced (%d blocks)", len(blocks))), nil
}

func (s *Server) handleAppendNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	mode, err := resolveMode(args)
	if err != nil {
		return nil, err
	}
	content, _ := args["content"].(string)

	text, err := s.store.Load(mode)
	if err != nil {
		return nil, fmt.Errorf("load note: %w", err)
	}
	ed := editor.New(mode)
	ed.Load(text)
	blocks := ed.Blocks()
	last := blocks[len(blocks)-1]
	if last.IsText() && strings.TrimSpace(last.Content) == "" {
		ed.UpdateContent(last.ID, content)
	} else {
		nb := ed.AddTextBlockAfter(last.ID)
		ed.UpdateContent(nb.ID, content)
	}
	if err := s.store.Save(mode, ed.Text()); err != nil {
		return nil, fmt.Errorf("append note: %w", err)
	}
	return textResult(fmt.Sprintf("Appended %d chars", len(content))), nil
}

func (s *Server) handleListBlocks(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode, err := resolveMode(req.GetArguments())
	if err != nil {
		return nil, err
	}
	text, err := s.store.Load(mode)
	if err != nil {
		return nil, fmt.Errorf("load note: %w", err)
	}
	return jsonResult(codec.Decode(mode, text))
}
