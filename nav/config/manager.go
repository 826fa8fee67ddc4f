package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gridroute/gridroute/nav/service"
	"github.com/gridroute/gridroute/nav/tilemap"
)

var (
	ErrMapNotFound = errors.New("map not found")
	ErrInvalidMap  = errors.New("invalid map")
)

// Manager handles map configuration loading and caching
type Manager struct {
	mapDir     string
	defaultMap *tilemap.MapConfig
	maps       map[string]*tilemap.MapConfig
	mu         sync.RWMutex
}

// NewManager creates a new map manager
func NewManager(mapDir string) (*Manager, error) {
	if _, err := os.Stat(mapDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("map directory does not exist: %s", mapDir)
	}

	m := &Manager{
		mapDir: mapDir,
		maps:   make(map[string]*tilemap.MapConfig),
	}

	if err := m.loadDefaultMap(); err != nil {
		return nil, fmt.Errorf("failed to load default map: %w", err)
	}

	return m, nil
}

// LoadMap loads a map configuration by name
func (m *Manager) LoadMap(name string) (*tilemap.MapConfig, error) {
	m.mu.RLock()
	if config, exists := m.maps[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock.
	if config, exists := m.maps[name]; exists {
		return config, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	mapPath := filepath.Join(m.mapDir, filename)

	data, err := os.ReadFile(mapPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMapNotFound
		}
		return nil, fmt.Errorf("failed to read map file: %w", err)
	}

	var config tilemap.MapConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}

	if err := tilemap.ValidateMapConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}

	m.maps[name] = &config
	return &config, nil
}

// ListMaps returns information about all available maps
func (m *Manager) ListMaps() ([]*service.MapInfo, error) {
	entries, err := os.ReadDir(m.mapDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read map directory: %w", err)
	}

	var maps []*service.MapInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		config, err := m.LoadMap(name)
		if err != nil {
			// Skip invalid maps
			continue
		}

		width := 0
		if len(config.Layout) > 0 {
			width = len(config.Layout[0])
		}

		maps = append(maps, &service.MapInfo{
			Filename:    entry.Name(),
			MapID:       name, // This is the identifier to use for route requests
			Name:        config.Name,
			Description: config.Description,
			Width:       width,
			Height:      len(config.Layout),
		})
	}

	return maps, nil
}

// GetDefault returns the default map configuration
func (m *Manager) GetDefault() *tilemap.MapConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultMap
}

// SetDefault sets the default map by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadMap(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultMap = config
	return nil
}

// RefreshCache reloads all cached maps from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.maps = make(map[string]*tilemap.MapConfig)
	m.mu.Unlock()

	return m.loadDefaultMap()
}

// SaveMap saves a map configuration to disk
func (m *Manager) SaveMap(name string, config *tilemap.MapConfig) error {
	if err := tilemap.ValidateMapConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	mapPath := filepath.Join(m.mapDir, filename)

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal map: %w", err)
	}

	if err := os.WriteFile(mapPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write map file: %w", err)
	}

	m.mu.Lock()
	m.maps[name] = config
	m.mu.Unlock()

	return nil
}

// loadDefaultMap picks the default map configuration
func (m *Manager) loadDefaultMap() error {
	// Try classic.json as the default.
	config, err := m.LoadMap("classic")
	if err != nil {
		maps, listErr := m.ListMaps()
		if listErr != nil || len(maps) == 0 {
			m.setDefault(m.createMinimalMap())
			return nil
		}

		// Use the first available map.
		config, err = m.LoadMap(strings.TrimSuffix(maps[0].Filename, ".json"))
		if err != nil {
			m.setDefault(m.createMinimalMap())
			return nil
		}
	}

	m.setDefault(config)
	return nil
}

func (m *Manager) setDefault(config *tilemap.MapConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultMap = config
}

// createMinimalMap creates a minimal valid map configuration
func (m *Manager) createMinimalMap() *tilemap.MapConfig {
	return &tilemap.MapConfig{
		Name:        "default",
		Description: "Default minimal map",
		Layout: []string{
			"RRRRR",
			"RBBWR",
			"RRDRR",
			"RWBBR",
			"RRRRR",
		},
	}
}
