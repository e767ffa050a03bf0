// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xvierd/daybook/internal/domain"
	"github.com/xvierd/daybook/internal/ports"
	"github.com/xvierd/daybook/internal/services"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server  *server.MCPServer
	journal *services.JournalService
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(journal *services.JournalService) *Server {
	s := &Server{
		journal: journal,
	}

	s.server = server.NewMCPServer(
		"daybook",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: get_day
	getDayTool := mcp.NewTool(
		"get_day",
		mcp.WithDescription("Get one day's journal entries, including tasks and events projected onto it from other days"),
		mcp.WithString(
			"date",
			mcp.Description("The day to load: YYYY/MM/DD, MM/DD, or a natural token like today, tomorrow, mon (default: today)"),
		),
	)
	s.server.AddTool(getDayTool, s.handleGetDay)

	// Tool: add_entry
	addEntryTool := mcp.NewTool(
		"add_entry",
		mcp.WithDescription("Append an entry to a day's journal section"),
		mcp.WithString(
			"content",
			mcp.Required(),
			mcp.Description("The entry text; may carry #tags and @date tokens"),
		),
		mcp.WithString(
			"type",
			mcp.Description("Entry type: task, note, or event (default: task)"),
			mcp.Enum("task", "note", "event"),
		),
		mcp.WithString(
			"date",
			mcp.Description("Day section to append to (default: today)"),
		),
	)
	s.server.AddTool(addEntryTool, s.handleAddEntry)

	// Tool: query_entries
	queryTool := mcp.NewTool(
		"query_entries",
		mcp.WithDescription("Search the whole journal with a filter query: #tags, !tasks/!notes/!events, @before:/@after: dates, @overdue, free-text terms, not: to negate"),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("The filter query, e.g. \"#work !tasks/incomplete @before:fri\""),
		),
	)
	s.server.AddTool(queryTool, s.handleQueryEntries)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// parseDateArg resolves an optional date argument against today.
func parseDateArg(input string) (time.Time, error) {
	today := domain.Today()
	if input == "" {
		return today, nil
	}
	if d, ok := domain.ParseDate(input, domain.ContextInterface, today); ok {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", input)
}

// entryJSON flattens an entry for tool output.
func entryJSON(entry domain.Entry) map[string]interface{} {
	source := "local"
	switch entry.Source {
	case domain.SourceLater:
		source = "scheduled"
	case domain.SourceRecurring:
		source = "recurring"
	}

	return map[string]interface{}{
		"type":        entry.Kind.String(),
		"content":     entry.Content,
		"completed":   entry.Completed,
		"source":      source,
		"source_date": entry.SourceDate.Format("2006-01-02"),
		"line_index":  entry.LineIndex,
		"tags":        domain.ExtractTags(entry.Content),
	}
}

func toolJSON(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleGetDay handles the get_day tool.
func (s *Server) handleGetDay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := parseDateArg(request.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	view, err := s.journal.Day(date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day: %w", err)
	}

	entries := make([]map[string]interface{}, 0, len(view.Entries)+len(view.Projected))
	for _, e := range view.Entries {
		entries = append(entries, entryJSON(e))
	}
	for _, e := range view.Projected {
		entries = append(entries, entryJSON(e))
	}

	return toolJSON(map[string]interface{}{
		"date":    view.Date.Format("2006-01-02"),
		"entries": entries,
	})
}

// handleAddEntry handles the add_entry tool.
func (s *Server) handleAddEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	kind := domain.KindTask
	switch request.GetString("type", "task") {
	case "note":
		kind = domain.KindNote
	case "event":
		kind = domain.KindEvent
	}

	date, err := parseDateArg(request.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	added, err := s.journal.AddEntry(services.AddEntryRequest{
		Content: content,
		Kind:    kind,
		Date:    date,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return toolJSON(map[string]interface{}{
		"date":       added.Date.Format("2006-01-02"),
		"line_index": added.LineIndex,
		"content":    added.Content,
	})
}

// handleQueryEntries handles the query_entries tool.
func (s *Server) handleQueryEntries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries, err := s.journal.Query(query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		results = append(results, entryJSON(e))
	}

	return toolJSON(map[string]interface{}{
		"count":   len(results),
		"entries": results,
	})
}
