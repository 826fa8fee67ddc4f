package tilemap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Grid is an immutable tile map built from a validated MapConfig
type Grid struct {
	name  string
	tiles [][]Tile
}

// NewGrid validates the configuration and builds a grid from its layout
func NewGrid(config *MapConfig) (*Grid, error) {
	if err := ValidateMapConfig(config); err != nil {
		return nil, err
	}

	legend := config.Legend
	if len(legend) == 0 {
		legend = DefaultLegend()
	}

	tiles := make([][]Tile, len(config.Layout))
	for y, row := range config.Layout {
		chars := strings.Split(row, "")
		tiles[y] = make([]Tile, len(chars))
		for x, char := range chars {
			tiles[y][x] = Tile{
				Type: TerrainType(legend[char]),
				Char: char,
			}
		}
	}

	return &Grid{name: config.Name, tiles: tiles}, nil
}

// Tile returns the tile at (x, y) and whether one exists there. Coordinates
// outside the layout report the no-tile sentinel.
func (g *Grid) Tile(x, y int) (Tile, bool) {
	if y < 0 || y >= len(g.tiles) {
		return Tile{}, false
	}
	if x < 0 || x >= len(g.tiles[y]) {
		return Tile{}, false
	}
	return g.tiles[y][x], true
}

// Name returns the map name
func (g *Grid) Name() string {
	return g.name
}

// Width returns the number of columns
func (g *Grid) Width() int {
	if len(g.tiles) == 0 {
		return 0
	}
	return len(g.tiles[0])
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return len(g.tiles)
}

// Walkable is the standard passability predicate over grid tiles. It rejects
// the no-tile sentinel, so off-map candidates are never traversed.
func Walkable(tile Tile, ok bool, x, y int) bool {
	return ok && tile.Type.Traversable()
}

// ValidateMapConfig validates a map configuration for correctness
func ValidateMapConfig(config *MapConfig) error {
	if config == nil {
		return fmt.Errorf("map validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("map validation: name is required")
	}

	// Validate layout dimensions
	if len(config.Layout) < MinMapSize || len(config.Layout) > MaxMapSize {
		return fmt.Errorf("map validation: layout must have between %d and %d rows, got %d",
			MinMapSize, MaxMapSize, len(config.Layout))
	}
	width := len([]rune(config.Layout[0]))
	if width < MinMapSize || width > MaxMapSize {
		return fmt.Errorf("map validation: rows must have between %d and %d characters, got %d",
			MinMapSize, MaxMapSize, width)
	}

	legend := config.Legend
	if len(legend) == 0 {
		legend = DefaultLegend()
	}

	// Every legend entry must be a single layout character naming a known
	// terrain type.
	for char, terrain := range legend {
		if len([]rune(char)) != 1 {
			return fmt.Errorf("map validation: legend key %q must be a single character", char)
		}
		switch TerrainType(terrain) {
		case Road, Grass, Door, Water, Building:
		default:
			return fmt.Errorf("map validation: legend['%s'] names unknown terrain '%s'", char, terrain)
		}
	}

	walkable := 0
	for i, row := range config.Layout {
		chars := strings.Split(row, "")
		if len(chars) != width {
			return fmt.Errorf("map validation: row %d must have %d characters to match row 1, got %d",
				i+1, width, len(chars))
		}
		for j, char := range chars {
			terrain, known := legend[char]
			if !known {
				return fmt.Errorf("map validation: character '%s' at row %d, col %d is not in the legend",
					char, i+1, j+1)
			}
			if TerrainType(terrain).Traversable() {
				walkable++
			}
		}
	}

	if walkable == 0 {
		return fmt.Errorf("map validation: layout must contain at least one traversable tile")
	}

	return nil
}

// LoadMapConfig loads a map configuration from a JSON file
func LoadMapConfig(filename string) (*MapConfig, error) {
	// Support MAPS_DIR environment variable for an alternative map directory
	mapPath := filename
	if mapsDir := os.Getenv("MAPS_DIR"); mapsDir != "" {
		if strings.HasPrefix(filename, "maps/") {
			mapPath = filepath.Join(mapsDir, strings.TrimPrefix(filename, "maps/"))
		}
	}

	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, err
	}

	var config MapConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateMapConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
