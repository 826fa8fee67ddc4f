package service

import (
	"time"

	"github.com/gridroute/gridroute/nav/pathfind"
)

// MapInfo provides information about an available map
type MapInfo struct {
	Filename    string `json:"filename"`
	MapID       string `json:"map_id"` // The identifier to use for route requests
	Name        string `json:"name"`   // Display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// RouteRequest describes a single route computation
type RouteRequest struct {
	Start    pathfind.Point `json:"start"`
	End      pathfind.Point `json:"end"`
	Square   *bool          `json:"square,omitempty"`   // Defaults to true
	Diagonal *bool          `json:"diagonal,omitempty"` // Defaults to the map's allow_diagonal
}

// RouteResult contains the outcome of a route computation
type RouteResult struct {
	MapName  string           `json:"map_name"`
	Status   pathfind.Status  `json:"status"`
	Found    bool             `json:"found"`
	Path     []pathfind.Point `json:"path"`
	Cost     float64          `json:"cost"`
	Expanded int              `json:"expanded"`
	Steps    int              `json:"steps"` // Path length minus one, zero on failure
	Message  string           `json:"message"`
	Elapsed  time.Duration    `json:"elapsed_ns"`
}

// TileInfo describes a single tile location on a map
type TileInfo struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	InBounds bool   `json:"in_bounds"`
	Char     string `json:"char,omitempty"`
	Type     string `json:"type,omitempty"`
	Passable bool   `json:"passable"`
}

// RouteRecord is one entry in a map's route history
type RouteRecord struct {
	Start     pathfind.Point  `json:"start"`
	End       pathfind.Point  `json:"end"`
	Status    pathfind.Status `json:"status"`
	Cost      float64         `json:"cost"`
	Steps     int             `json:"steps"`
	Timestamp time.Time       `json:"timestamp"`
}

// HistoryOptions configures route history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated route history
type HistoryResponse struct {
	Routes      []RouteRecord `json:"routes"`
	TotalRoutes int           `json:"total_routes"`
	Page        int           `json:"page"`
	PageSize    int           `json:"page_size"`
	TotalPages  int           `json:"total_pages"`
	HasNext     bool          `json:"has_next"`
	HasPrevious bool          `json:"has_previous"`
}
