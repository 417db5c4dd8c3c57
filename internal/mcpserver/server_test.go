package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/minsukim/tripdeck/internal/models"
	"github.com/minsukim/tripdeck/internal/planner"
	"github.com/minsukim/tripdeck/internal/testutil"
)

func testServer(t *testing.T) (*Server, *planner.Service) {
	t.Helper()
	svc, _ := testutil.NewPlanner(t)
	return New(svc), svc
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we call the tool
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "get_itinerary":
		result, err = srv.getItinerary(ctx, req)
	case "search_itinerary":
		result, err = srv.searchItinerary(ctx, req)
	case "resolve_map_link":
		result, err = srv.resolveMapLink(ctx, req)
	case "list_candidate_places":
		result, err = srv.listCandidatePlaces(ctx, req)
	case "add_candidate_place":
		result, err = srv.addCandidatePlace(ctx, req)
	case "get_expense_summary":
		result, err = srv.getExpenseSummary(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestGetItinerarySeeded(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_itinerary", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, models.SeedRecord.Content) {
		t.Errorf("itinerary = %q, want seed entry", text)
	}
}

func TestGetItineraryDateFilter(t *testing.T) {
	srv, svc := testServer(t)
	_ = svc.SaveSchedule([]models.Record{
		{DateLabel: "3/4 (Wed)", Content: "공항 도착"},
		{DateLabel: "3/5 (Thu)", Content: "캐널시티"},
	})

	r := callTool(t, srv, "get_itinerary", map[string]interface{}{"date": "3/5 (Thu)"})
	text := resultText(r)
	if !strings.Contains(text, "캐널시티") || strings.Contains(text, "공항 도착") {
		t.Errorf("filtered itinerary = %q", text)
	}
}

func TestSearchItinerary(t *testing.T) {
	srv, svc := testServer(t)
	_ = svc.SaveSchedule([]models.Record{
		{DateLabel: "3/4 (Wed)", Content: "라멘 투어", Place: "하카타"},
		{DateLabel: "3/5 (Thu)", Content: "온천"},
	})

	r := callTool(t, srv, "search_itinerary", map[string]interface{}{"keyword": "라멘"})
	text := resultText(r)
	if !strings.Contains(text, "라멘 투어") || strings.Contains(text, "온천") {
		t.Errorf("search result = %q", text)
	}

	r = callTool(t, srv, "search_itinerary", map[string]interface{}{"keyword": "초밥"})
	if !strings.Contains(resultText(r), "no entries match") {
		t.Errorf("miss result = %q", resultText(r))
	}
}

func TestSearchItineraryRequiresKeyword(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "search_itinerary", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error for missing keyword")
	}
}

func TestResolveMapLink(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "resolve_map_link", map[string]interface{}{"text": "후쿠오카 타워 (구경)"})
	text := resultText(r)
	if !strings.HasPrefix(text, "https://www.google.com/maps/search/") {
		t.Errorf("link = %q", text)
	}
	if strings.Contains(text, "%EA%B5%AC%EA%B2%BD") {
		t.Errorf("note marker leaked into query: %q", text)
	}
}

func TestCandidatePlaceRoundTrip(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "add_candidate_place", map[string]interface{}{"place": "모츠나베 오오야마"})
	if resultText(r) != "saved: 모츠나베 오오야마" {
		t.Errorf("add result = %q", resultText(r))
	}

	r = callTool(t, srv, "list_candidate_places", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "모츠나베 오오야마") {
		t.Errorf("list = %q", text)
	}
	// A map link was derived from the place name.
	if !strings.Contains(text, "https://www.google.com/maps/search/") {
		t.Errorf("list missing derived map link: %q", text)
	}
}

func TestGetExpenseSummary(t *testing.T) {
	srv, svc := testServer(t)
	_ = svc.SaveExpenses([]models.Expense{
		{Date: "3/4", Item: "라멘", Amount: "1200"},
		{Date: "3/4", Item: "지하철", Amount: "630"},
	})

	r := callTool(t, srv, "get_expense_summary", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "1830") {
		t.Errorf("summary = %q, want total 1830", text)
	}
}
