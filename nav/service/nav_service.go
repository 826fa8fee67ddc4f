package service

import (
	"context"

	"github.com/gridroute/gridroute/nav/tilemap"
)

// NavService defines all navigation-related operations
type NavService interface {
	// Route computation
	FindRoute(ctx context.Context, mapName string, req RouteRequest) (*RouteResult, error)

	// Map access
	ListMaps(ctx context.Context) ([]*MapInfo, error)
	GetMap(ctx context.Context, mapName string) (*tilemap.MapConfig, error)
	SaveMap(ctx context.Context, mapName string, config *tilemap.MapConfig) error
	DescribeTile(ctx context.Context, mapName string, x, y int) (*TileInfo, error)

	// History
	RouteHistory(ctx context.Context, mapName string, opts HistoryOptions) (*HistoryResponse, error)
}

// MapManager handles map configuration loading and storage
type MapManager interface {
	LoadMap(name string) (*tilemap.MapConfig, error)
	ListMaps() ([]*MapInfo, error)
	GetDefault() *tilemap.MapConfig
	SaveMap(name string, config *tilemap.MapConfig) error
}
