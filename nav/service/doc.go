// Package service defines the navigation service boundary used by every
// transport.
//
// NavService is the single interface the REST API, WebSocket layer, and MCP
// tools call into. The implementation owns a pathfind.Finder, a cache of
// built grids, and a bounded in-memory history of route requests per map; map
// storage itself is delegated to a MapManager (implemented by nav/config).
//
// All operations take a context.Context and return rich result structs with
// JSON tags so transports can serialize them directly.
package service
