// Package mcp provides Model Context Protocol server implementation for the
// GridRoute Navigation Server.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for navigation operations
//   - Thin proxying to the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - list_maps: List available maps
//   - get_map: Get a map definition with layout and legend
//   - find_route: Compute a route between two tiles
//   - describe_tile: Inspect a single tile's character and walkability
//   - route_history: Retrieve route history with pagination
//   - save_map: Store a new map definition
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Architecture:
//
// The client holds no navigation state of its own. Every tool call is
// translated into a REST request against the API server, and the JSON
// response is rendered as agent-friendly text, including an ASCII overlay
// of found routes on the map layout.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
