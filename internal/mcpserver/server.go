// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the trip planner to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/minsukim/tripdeck/internal/itinerary"
	"github.com/minsukim/tripdeck/internal/models"
	"github.com/minsukim/tripdeck/internal/planner"
)

// Server wraps the MCP server with trip planner tools.
type Server struct {
	mcp *server.MCPServer
	svc *planner.Service
}

// New creates a new MCP server with all planner tools registered.
func New(svc *planner.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Tripdeck",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_itinerary",
		mcp.WithDescription("Return the trip itinerary in chronological order, optionally narrowed to one day."),
		mcp.WithString("date", mcp.Description("Optional day label to narrow to, e.g. \"3/4 (Wed)\"")),
	), s.getItinerary)

	s.mcp.AddTool(mcp.NewTool("search_itinerary",
		mcp.WithDescription("Keyword search over itinerary content, places, and categories."),
		mcp.WithString("keyword", mcp.Required(), mcp.Description("Search keyword")),
	), s.searchItinerary)

	s.mcp.AddTool(mcp.NewTool("resolve_map_link",
		mcp.WithDescription("Resolve an itinerary entry or free text to a Google Maps search link."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Place name or itinerary text")),
	), s.resolveMapLink)

	s.mcp.AddTool(mcp.NewTool("list_candidate_places",
		mcp.WithDescription("List the saved candidate places the family is considering."),
	), s.listCandidatePlaces)

	s.mcp.AddTool(mcp.NewTool("add_candidate_place",
		mcp.WithDescription("Save a candidate place to consider visiting."),
		mcp.WithString("place", mcp.Required(), mcp.Description("Place name")),
		mcp.WithString("map_link", mcp.Description("Optional map URL; derived from the place name when empty")),
	), s.addCandidatePlace)

	s.mcp.AddTool(mcp.NewTool("get_expense_summary",
		mcp.WithDescription("Summarize recorded trip expenses (count and JPY total)."),
	), s.getExpenseSummary)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) getItinerary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := itinerary.Filter{}
	if date := req.GetString("date", ""); date != "" {
		f.Dates = []string{date}
	}
	view := s.svc.View(f)
	if len(view.Entries) == 0 {
		return mcp.NewToolResultText("no itinerary entries"), nil
	}
	out, _ := json.MarshalIndent(view.Entries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchItinerary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, err := req.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view := s.svc.View(itinerary.Filter{Keyword: keyword})
	if len(view.Entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no entries match %q", keyword)), nil
	}
	out, _ := json.MarshalIndent(view.Entries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) resolveMapLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query := itinerary.ResolveMapQuery(text, "", "")
	link := itinerary.SearchURL(query)
	if link == "" {
		return mcp.NewToolResultError("could not derive a map query from the text"), nil
	}
	return mcp.NewToolResultText(link), nil
}

func (s *Server) listCandidatePlaces(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	candidates := s.svc.Candidates()
	if len(candidates) == 0 {
		return mcp.NewToolResultText("no candidate places saved"), nil
	}
	var lines []string
	for i, c := range candidates {
		lines = append(lines, fmt.Sprintf("%d. %s %s", i+1, c.Place, c.MapLink))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) addCandidatePlace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	place, err := req.RequireString("place")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mapLink := req.GetString("map_link", "")
	if mapLink == "" {
		mapLink = itinerary.SearchURL(place)
	}
	if err := s.svc.AddCandidate(models.Candidate{Place: place, MapLink: mapLink}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved: %s", place)), nil
}

func (s *Server) getExpenseSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary := s.svc.ExpenseSummary()
	out, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
