package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gridroute/gridroute/nav/pathfind"
	"github.com/gridroute/gridroute/nav/tilemap"
)

const (
	// maxHistoryPerMap bounds the in-memory route history kept for each map.
	maxHistoryPerMap = 256

	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// navServiceImpl implements the NavService interface
type navServiceImpl struct {
	maps   MapManager
	finder *pathfind.Finder[tilemap.Tile]

	mu      sync.RWMutex
	grids   map[string]*tilemap.Grid
	history map[string][]RouteRecord
}

// NewNavService creates a new navigation service instance
func NewNavService(maps MapManager, finderOpts ...pathfind.Option[tilemap.Tile]) NavService {
	return &navServiceImpl{
		maps:    maps,
		finder:  pathfind.NewFinder(finderOpts...),
		grids:   make(map[string]*tilemap.Grid),
		history: make(map[string][]RouteRecord),
	}
}

// FindRoute computes a route on the named map
func (s *navServiceImpl) FindRoute(ctx context.Context, mapName string, req RouteRequest) (*RouteResult, error) {
	config, resolved, err := s.resolveMap(mapName)
	if err != nil {
		return nil, err
	}

	grid, err := s.grid(resolved, config)
	if err != nil {
		return nil, err
	}

	opts := pathfind.DefaultOptions()
	opts.Diagonal = config.AllowDiagonal
	if req.Square != nil {
		opts.Square = *req.Square
	}
	if req.Diagonal != nil {
		opts.Diagonal = *req.Diagonal
	}

	started := time.Now()
	result := s.finder.Search(grid, req.Start, req.End, tilemap.Walkable, opts)
	elapsed := time.Since(started)

	steps := 0
	if len(result.Path) > 1 {
		steps = len(result.Path) - 1
	}

	route := &RouteResult{
		MapName:  resolved,
		Status:   result.Status,
		Found:    result.Found(),
		Path:     result.Path,
		Cost:     result.Cost,
		Expanded: result.Expanded,
		Steps:    steps,
		Message:  routeMessage(result, req),
		Elapsed:  elapsed,
	}

	s.record(resolved, RouteRecord{
		Start:     req.Start,
		End:       req.End,
		Status:    result.Status,
		Cost:      result.Cost,
		Steps:     steps,
		Timestamp: time.Now(),
	})

	return route, nil
}

// ListMaps returns all available maps
func (s *navServiceImpl) ListMaps(ctx context.Context) ([]*MapInfo, error) {
	return s.maps.ListMaps()
}

// GetMap returns the configuration of the named map
func (s *navServiceImpl) GetMap(ctx context.Context, mapName string) (*tilemap.MapConfig, error) {
	config, _, err := s.resolveMap(mapName)
	return config, err
}

// SaveMap stores a map configuration and invalidates the cached grid
func (s *navServiceImpl) SaveMap(ctx context.Context, mapName string, config *tilemap.MapConfig) error {
	if err := s.maps.SaveMap(mapName, config); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.grids, mapName)
	s.mu.Unlock()
	return nil
}

// DescribeTile reports what occupies a single tile location
func (s *navServiceImpl) DescribeTile(ctx context.Context, mapName string, x, y int) (*TileInfo, error) {
	config, resolved, err := s.resolveMap(mapName)
	if err != nil {
		return nil, err
	}

	grid, err := s.grid(resolved, config)
	if err != nil {
		return nil, err
	}

	tile, ok := grid.Tile(x, y)
	info := &TileInfo{
		X:        x,
		Y:        y,
		InBounds: ok,
		Passable: tilemap.Walkable(tile, ok, x, y),
	}
	if ok {
		info.Char = tile.Char
		info.Type = string(tile.Type)
	}
	return info, nil
}

// RouteHistory returns the recent route requests for a map, paginated
func (s *navServiceImpl) RouteHistory(ctx context.Context, mapName string, opts HistoryOptions) (*HistoryResponse, error) {
	_, resolved, err := s.resolveMap(mapName)
	if err != nil {
		return nil, err
	}

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = defaultHistoryLimit
	}
	if opts.Limit > maxHistoryLimit {
		opts.Limit = maxHistoryLimit
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	s.mu.RLock()
	stored := s.history[resolved]
	records := make([]RouteRecord, len(stored))
	copy(records, stored)
	s.mu.RUnlock()

	if opts.Order == "desc" {
		for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
			records[i], records[j] = records[j], records[i]
		}
	}

	total := len(records)
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	return &HistoryResponse{
		Routes:      records[start:end],
		TotalRoutes: total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// resolveMap loads the named map, falling back to the default for an empty
// name. It returns the config together with the name history entries are
// keyed under.
func (s *navServiceImpl) resolveMap(mapName string) (*tilemap.MapConfig, string, error) {
	if mapName == "" {
		config := s.maps.GetDefault()
		if config == nil {
			return nil, "", fmt.Errorf("no default map configured")
		}
		return config, config.Name, nil
	}

	config, err := s.maps.LoadMap(mapName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load map %s: %w", mapName, err)
	}
	return config, mapName, nil
}

// grid returns the cached grid for a map, building it on first use
func (s *navServiceImpl) grid(name string, config *tilemap.MapConfig) (*tilemap.Grid, error) {
	s.mu.RLock()
	grid, exists := s.grids[name]
	s.mu.RUnlock()
	if exists {
		return grid, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if grid, exists = s.grids[name]; exists {
		return grid, nil
	}

	grid, err := tilemap.NewGrid(config)
	if err != nil {
		return nil, fmt.Errorf("failed to build grid for map %s: %w", name, err)
	}
	s.grids[name] = grid
	return grid, nil
}

// record appends a history entry, trimming the oldest past the cap
func (s *navServiceImpl) record(mapName string, rec RouteRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.history[mapName], rec)
	if len(entries) > maxHistoryPerMap {
		entries = entries[len(entries)-maxHistoryPerMap:]
	}
	s.history[mapName] = entries
}

// routeMessage renders the human-readable summary for a route outcome
func routeMessage(result pathfind.Result, req RouteRequest) string {
	switch result.Status {
	case pathfind.StatusFound:
		return fmt.Sprintf("Route found: %d steps, cost %.1f", len(result.Path)-1, result.Cost)
	case pathfind.StatusDestinationBlocked:
		return fmt.Sprintf("Destination (%d,%d) is not passable", req.End.X, req.End.Y)
	case pathfind.StatusLimitExceeded:
		return "Search aborted: the open frontier exceeded the safety limit"
	default:
		return fmt.Sprintf("No route exists from (%d,%d) to (%d,%d)",
			req.Start.X, req.Start.Y, req.End.X, req.End.Y)
	}
}
