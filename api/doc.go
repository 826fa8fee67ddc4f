// Package api provides the REST API server for the GridRoute Navigation
// Server.
//
// The API exposes map listing and retrieval, route computation, tile
// inspection, and route history under /api, plus the WebSocket endpoint at
// /ws. Route computations are additionally broadcast to WebSocket clients
// subscribed to the map, so multiple observers can follow routing activity
// without polling.
//
// Endpoints:
//
//	GET    /api/maps                 List available maps
//	POST   /api/maps                 Save a map definition
//	GET    /api/maps/{name}          Get a map definition
//	GET    /api/maps/{name}/tile     Describe a tile (?x=&y=)
//	POST   /api/maps/{name}/route    Compute a route
//	GET    /api/maps/{name}/history  Recent route requests (paginated)
//	GET    /ws?map={name}            WebSocket subscription
package api
