package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gridroute/gridroute/nav/pathfind"
	"github.com/gridroute/gridroute/nav/service"
	"github.com/gridroute/gridroute/nav/tilemap"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"map_name": "classic",
		"status":   "found",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["map_name"] != expectedResponse["map_name"] {
		t.Errorf("Expected map_name %v, got %v", expectedResponse["map_name"], response["map_name"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "map not found: nowhere"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/maps/nowhere", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 404 response")
	}

	if !strings.Contains(err.Error(), "map not found") {
		t.Errorf("Expected API error message to be surfaced, got: %v", err)
	}
}

func TestClient_handleFindRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == "POST" && r.URL.Path == "/api/maps/classic/route":
			json.NewEncoder(w).Encode(service.RouteResult{
				MapName: "classic",
				Status:  pathfind.StatusFound,
				Found:   true,
				Path:    []pathfind.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
				Cost:    2,
				Steps:   2,
				Message: "Route found in 2 steps (cost 2.0)",
			})
		case r.Method == "GET" && r.URL.Path == "/api/maps/classic":
			json.NewEncoder(w).Encode(tilemap.MapConfig{
				Name:   "Classic",
				Legend: tilemap.DefaultLegend(),
				Layout: []string{"RRR", "RRR"},
			})
		default:
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "find_route",
			Arguments: map[string]interface{}{
				"map":     "classic",
				"start_x": float64(0),
				"start_y": float64(0),
				"end_x":   float64(2),
				"end_y":   float64(0),
			},
		},
	}

	result, err := client.handleFindRoute(context.Background(), request)
	if err != nil {
		t.Fatalf("handleFindRoute failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedFields := []string{
		"Status: found",
		"Steps: 2",
		"Route overlay",
		"S*E",
	}
	for _, field := range expectedFields {
		if !strings.Contains(text.Text, field) {
			t.Errorf("Expected %q in formatted output, got: %s", field, text.Text)
		}
	}
}

func TestClient_handleFindRoute_StartEqualsEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == "POST" && r.URL.Path == "/api/maps/classic/route":
			json.NewEncoder(w).Encode(service.RouteResult{
				MapName: "classic",
				Status:  pathfind.StatusFound,
				Found:   true,
				Path:    []pathfind.Point{{X: 1, Y: 1}},
				Cost:    0,
				Steps:   0,
				Message: "Route found in 0 steps (cost 0.0)",
			})
		case r.Method == "GET" && r.URL.Path == "/api/maps/classic":
			json.NewEncoder(w).Encode(tilemap.MapConfig{
				Name:   "Classic",
				Legend: tilemap.DefaultLegend(),
				Layout: []string{"RRR", "RRR"},
			})
		default:
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "find_route",
			Arguments: map[string]interface{}{
				"map":     "classic",
				"start_x": float64(1),
				"start_y": float64(1),
				"end_x":   float64(1),
				"end_y":   float64(1),
			},
		},
	}

	result, err := client.handleFindRoute(context.Background(), request)
	if err != nil {
		t.Fatalf("handleFindRoute failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	// A single-point route has no intermediate tiles; the destination marker
	// overwrites the start marker on the shared tile.
	if !strings.Contains(text.Text, "Route overlay") {
		t.Errorf("Expected overlay for a found route, got: %s", text.Text)
	}
	if !strings.Contains(text.Text, "RER") {
		t.Errorf("Expected shared start/end tile marked E, got: %s", text.Text)
	}
}

func TestFormatRouteOverlay_SinglePointPath(t *testing.T) {
	config := &tilemap.MapConfig{
		Legend: tilemap.DefaultLegend(),
		Layout: []string{"RR", "RR"},
	}
	route := &service.RouteResult{
		Path: []pathfind.Point{{X: 0, Y: 0}},
	}

	result := formatRouteOverlay(config, route)

	if !strings.Contains(result, "ER") {
		t.Errorf("Expected single tile marked E, got: %s", result)
	}
}

func TestClient_handleDescribeTile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.TileInfo{
			X: 1, Y: 2, InBounds: true, Char: "W", Type: "water", Passable: false,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "describe_tile",
			Arguments: map[string]interface{}{
				"map": "classic",
				"x":   float64(1),
				"y":   float64(2),
			},
		},
	}

	result, err := client.handleDescribeTile(context.Background(), request)
	if err != nil {
		t.Fatalf("handleDescribeTile failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(text.Text, "Walkable: false") {
		t.Errorf("Expected walkability in output, got: %s", text.Text)
	}
	if !strings.Contains(text.Text, "NOT walkable") {
		t.Errorf("Expected obstacle reminder in output, got: %s", text.Text)
	}
}

func TestFormatRouteResult_NotFound(t *testing.T) {
	route := &service.RouteResult{
		MapName:  "classic",
		Status:   pathfind.StatusUnreachable,
		Found:    false,
		Expanded: 12,
		Message:  "No route exists between the requested tiles",
	}

	result := formatRouteResult(route)

	expectedFields := []string{
		"Status: unreachable",
		"Nodes expanded: 12",
		"No route exists",
	}
	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected %q in formatted output, got: %s", field, result)
		}
	}
	if strings.Contains(result, "Path:") {
		t.Error("Unreachable result must not render a path section")
	}
}

func TestFormatRouteOverlay(t *testing.T) {
	config := &tilemap.MapConfig{
		Legend: tilemap.DefaultLegend(),
		Layout: []string{
			"RRR",
			"RWR",
			"RRR",
		},
	}
	route := &service.RouteResult{
		Path: []pathfind.Point{
			{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2},
		},
	}

	result := formatRouteOverlay(config, route)

	for _, line := range []string{"SRR", "*WR", "**E"} {
		if !strings.Contains(result, line) {
			t.Errorf("Expected overlay line %q, got: %s", line, result)
		}
	}
}

func TestFormatHistory_Empty(t *testing.T) {
	history := &service.HistoryResponse{
		Routes: []service.RouteRecord{},
		Page:   1,
	}

	result := formatHistory("classic", history)

	if !strings.Contains(result, "no routes recorded") {
		t.Errorf("Expected empty-history marker, got: %s", result)
	}
}

func TestClient_Integration(t *testing.T) {
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
