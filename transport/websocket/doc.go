// Package websocket provides WebSocket transport for the GridRoute
// Navigation Server.
//
// The package implements:
//   - Real-time broadcast of route computation outcomes
//   - Map-aware connections: clients subscribe to a single map
//   - Optional step-by-step route playback
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by dedicated
// goroutines that manage reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded. Every message names the map it concerns and an
// event: route_found, route_unreachable, route_destination_blocked,
// route_limit_exceeded, or route_frame during playback. Route events carry
// the full RouteResult payload.
//
// Map Subscription:
//
// Clients specify the map they want to observe via query parameter
// (?map=classic) when establishing the connection. Route outcomes are
// broadcast only to clients subscribed to the same map.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a route computation:
//	hub.BroadcastRoute(result)
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive broadcasts
// simultaneously without blocking each other.
package websocket
