package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gridroute/gridroute/nav/pathfind"
	"github.com/gridroute/gridroute/nav/service"
	"github.com/gridroute/gridroute/nav/tilemap"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"GridRoute Navigation Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`GridRoute Navigation Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Maps are character grids: R (road), G (grass), D (door) are walkable;
W (water) and B (building) are obstacles. Coordinates are 0-based with
(0,0) at the top-left, x going right and y going down.

AVAILABLE TOOLS:
- list_maps: List available maps
- get_map: Get a map's full definition and layout
- find_route: Compute a route between two tiles on a map
- describe_tile: Get detailed info about a specific tile (verify walkability)
- route_history: View past route requests for a map
- save_map: Store a new map definition

Route outcomes are one of: found, unreachable, destination_blocked,
limit_exceeded (search frontier grew past its safety limit).`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_maps",
		Description: "List all available navigation maps",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMaps)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_map",
		Description: "Get a map's definition including its full layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map": map[string]interface{}{
					"type":        "string",
					"description": "Map identifier",
				},
			},
			Required: []string{"map"},
		},
	}, c.handleGetMap)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "find_route",
		Description: "Compute a route between two tiles on a map. Returns the path, its cost, and the outcome status.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map": map[string]interface{}{
					"type":        "string",
					"description": "Map identifier",
				},
				"start_x": map[string]interface{}{
					"type":        "integer",
					"description": "Start X coordinate (0-based column)",
				},
				"start_y": map[string]interface{}{
					"type":        "integer",
					"description": "Start Y coordinate (0-based row)",
				},
				"end_x": map[string]interface{}{
					"type":        "integer",
					"description": "Destination X coordinate",
				},
				"end_y": map[string]interface{}{
					"type":        "integer",
					"description": "Destination Y coordinate",
				},
				"diagonal": map[string]interface{}{
					"type":        "boolean",
					"description": "Allow diagonal movement (defaults to the map's setting)",
				},
			},
			Required: []string{"map", "start_x", "start_y", "end_x", "end_y"},
		},
	}, c.handleFindRoute)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_tile",
		Description: "Get detailed information about a specific tile on a map, including its character and whether it is walkable. Useful for verifying R vs B vs W.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map": map[string]interface{}{
					"type":        "string",
					"description": "Map identifier",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the tile to describe (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the tile to describe (0-based)",
				},
			},
			Required: []string{"map", "x", "y"},
		},
	}, c.handleDescribeTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "route_history",
		Description: "Get recent route requests for a map",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map": map[string]interface{}{
					"type":        "string",
					"description": "Map identifier",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"map"},
		},
	}, c.handleRouteHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "save_map",
		Description: "Store a new map definition. The layout is a list of equal-length rows using legend characters.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map": map[string]interface{}{
					"type":        "string",
					"description": "Map identifier to store under",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Display name",
				},
				"description": map[string]interface{}{
					"type":        "string",
					"description": "Map description",
				},
				"layout": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
					},
					"description": "Rows of the map using R/G/D/W/B characters",
				},
				"allow_diagonal": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether diagonal movement is allowed by default",
				},
			},
			Required: []string{"map", "name", "layout"},
		},
	}, c.handleSaveMap)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListMaps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int                `json:"count"`
		Maps  []*service.MapInfo `json:"maps"`
	}

	err := c.apiCall("GET", "/api/maps", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Available Maps (%d):\n\n", response.Count)
	for _, m := range response.Maps {
		result += fmt.Sprintf("- %s: %s (%dx%d)\n  %s\n",
			m.MapID, m.Name, m.Width, m.Height, m.Description)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	mapName, _ := args["map"].(string)

	var config tilemap.MapConfig
	err := c.apiCall("GET", fmt.Sprintf("/api/maps/%s", mapName), nil, &config)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatMapConfig(mapName, &config)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleFindRoute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	mapName, _ := args["map"].(string)
	startX := intArg(args, "start_x")
	startY := intArg(args, "start_y")
	endX := intArg(args, "end_x")
	endY := intArg(args, "end_y")

	body := map[string]interface{}{
		"start": pathfind.Point{X: startX, Y: startY},
		"end":   pathfind.Point{X: endX, Y: endY},
	}
	if diagonal, ok := args["diagonal"].(bool); ok {
		body["diagonal"] = diagonal
	}

	var route service.RouteResult
	err := c.apiCall("POST", fmt.Sprintf("/api/maps/%s/route", mapName), body, &route)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatRouteResult(&route)

	// Render the route over the map layout when there is one to show.
	if route.Found {
		var config tilemap.MapConfig
		if err := c.apiCall("GET", fmt.Sprintf("/api/maps/%s", mapName), nil, &config); err == nil {
			response += "\n" + formatRouteOverlay(&config, &route)
		}
	}

	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleDescribeTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	mapName, _ := args["map"].(string)
	x := intArg(args, "x")
	y := intArg(args, "y")

	var info service.TileInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/maps/%s/tile?x=%d&y=%d", mapName, x, y), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !info.InBounds {
		result := fmt.Sprintf("Tile (%d, %d) is OUTSIDE the map. Out-of-bounds tiles are never walkable.", x, y)
		return mcp.NewToolResultText(result), nil
	}

	result := fmt.Sprintf(`Tile at position (%d, %d):
Character: %s
Type: %s
Walkable: %v
%s`,
		info.X, info.Y,
		info.Char,
		info.Type,
		info.Passable,
		getTileReminder(info.Char))

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRouteHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	mapName, _ := args["map"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/maps/%s/history%s", mapName, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(mapName, &history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSaveMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	mapName, _ := args["map"].(string)
	name, _ := args["name"].(string)
	description, _ := args["description"].(string)
	allowDiagonal, _ := args["allow_diagonal"].(bool)

	layoutRaw, _ := args["layout"].([]interface{})
	layout := make([]string, 0, len(layoutRaw))
	for _, row := range layoutRaw {
		if s, ok := row.(string); ok {
			layout = append(layout, s)
		}
	}

	body := map[string]interface{}{
		"map_id": mapName,
		"config": &tilemap.MapConfig{
			Name:          name,
			Description:   description,
			Legend:        tilemap.DefaultLegend(),
			Layout:        layout,
			AllowDiagonal: allowDiagonal,
		},
	}

	err := c.apiCall("POST", "/api/maps", body, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Saved map: %s (%d rows)", mapName, len(layout))
	return mcp.NewToolResultText(result), nil
}

// intArg extracts an integer tool argument (JSON numbers decode as float64)
func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

func getTileReminder(char string) string {
	switch char {
	case "R":
		return "REMINDER: 'R' (road) can be confused with 'B' (building). This is a ROAD and is WALKABLE."
	case "B":
		return "REMINDER: 'B' (building) can be confused with 'R' (road). This is a BUILDING and is NOT walkable."
	case "W":
		return "REMINDER: 'W' (water) is an obstacle. This tile is NOT walkable."
	case "G":
		return "This is grass - walkable terrain."
	case "D":
		return "This is a door - walkable, typically an entry through a building."
	default:
		return ""
	}
}

// Formatting helpers

func formatMapConfig(mapID string, config *tilemap.MapConfig) string {
	var b strings.Builder

	height := len(config.Layout)
	width := 0
	if height > 0 {
		width = len(config.Layout[0])
	}

	b.WriteString(fmt.Sprintf("Map: %s (%s)\n", config.Name, mapID))
	if config.Description != "" {
		b.WriteString(config.Description + "\n")
	}
	b.WriteString(fmt.Sprintf("Size: %dx%d | Diagonal movement: %v\n\n", width, height, config.AllowDiagonal))

	b.WriteString("Layout:\n")
	for _, row := range config.Layout {
		b.WriteString(row + "\n")
	}

	b.WriteString("\nLegend:\n")
	for char, terrain := range config.Legend {
		walkable := "walkable"
		if !tilemap.TerrainType(terrain).Traversable() {
			walkable = "obstacle"
		}
		b.WriteString(fmt.Sprintf("  %s - %s (%s)\n", char, terrain, walkable))
	}

	return b.String()
}

func formatRouteResult(route *service.RouteResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Map: %s\n", route.MapName))
	b.WriteString(fmt.Sprintf("Status: %s\n", route.Status))
	b.WriteString(route.Message + "\n")

	if route.Found {
		b.WriteString(fmt.Sprintf("Steps: %d | Cost: %.1f | Nodes expanded: %d\n\n", route.Steps, route.Cost, route.Expanded))
		b.WriteString("Path:\n")
		for i, p := range route.Path {
			b.WriteString(fmt.Sprintf("%d. (%d,%d)\n", i+1, p.X, p.Y))
		}
	} else {
		b.WriteString(fmt.Sprintf("Nodes expanded: %d\n", route.Expanded))
	}

	return b.String()
}

// formatRouteOverlay renders the map layout with the route drawn over it:
// S marks the start, E the destination, * the tiles in between.
func formatRouteOverlay(config *tilemap.MapConfig, route *service.RouteResult) string {
	if len(route.Path) == 0 {
		return ""
	}

	rows := make([][]byte, len(config.Layout))
	for i, row := range config.Layout {
		rows[i] = []byte(row)
	}

	mark := func(p pathfind.Point, c byte) {
		if p.Y >= 0 && p.Y < len(rows) && p.X >= 0 && p.X < len(rows[p.Y]) {
			rows[p.Y][p.X] = c
		}
	}

	if len(route.Path) > 2 {
		for _, p := range route.Path[1 : len(route.Path)-1] {
			mark(p, '*')
		}
	}
	mark(route.Path[0], 'S')
	mark(route.Path[len(route.Path)-1], 'E')

	var b strings.Builder
	b.WriteString("Route overlay (S=start, E=end, *=path):\n")
	for _, row := range rows {
		b.Write(row)
		b.WriteString("\n")
	}
	return b.String()
}

func formatHistory(mapName string, history *service.HistoryResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Route History for %s (Page %d/%d) — Total: %d\n\n",
		mapName, history.Page, history.TotalPages, history.TotalRoutes))

	if len(history.Routes) == 0 {
		b.WriteString("(no routes recorded)")
		return b.String()
	}

	for i, r := range history.Routes {
		num := (history.Page-1)*history.PageSize + i + 1
		b.WriteString(fmt.Sprintf("%d. (%d,%d)→(%d,%d) %s",
			num, r.Start.X, r.Start.Y, r.End.X, r.End.Y, r.Status))
		if r.Status == pathfind.StatusFound {
			b.WriteString(fmt.Sprintf(" [%d steps, cost %.1f]", r.Steps, r.Cost))
		}
		b.WriteString(fmt.Sprintf(" at %s\n", r.Timestamp.Format("15:04:05")))
	}

	return b.String()
}
