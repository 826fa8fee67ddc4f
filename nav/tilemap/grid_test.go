package tilemap

import (
	"testing"
)

func createTestMapConfig() *MapConfig {
	return &MapConfig{
		Name:        "Grid Test Map",
		Description: "Map used by grid unit tests",
		Layout: []string{
			"BBBBB",
			"BRRGB",
			"BRWGB",
			"BDRGB",
			"BBBBB",
		},
		Legend: map[string]string{
			"R": "road",
			"G": "grass",
			"D": "door",
			"W": "water",
			"B": "building",
		},
	}
}

func TestNewGrid(t *testing.T) {
	config := createTestMapConfig()
	grid, err := NewGrid(config)
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}

	if grid.Name() != config.Name {
		t.Errorf("Expected name %q, got %q", config.Name, grid.Name())
	}
	if grid.Width() != 5 || grid.Height() != 5 {
		t.Errorf("Expected 5x5 grid, got %dx%d", grid.Width(), grid.Height())
	}
}

func TestGrid_Tile(t *testing.T) {
	grid, err := NewGrid(createTestMapConfig())
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}

	tests := []struct {
		name     string
		x, y     int
		wantOK   bool
		wantType TerrainType
	}{
		{"road cell", 1, 1, true, Road},
		{"grass cell", 3, 1, true, Grass},
		{"water cell", 2, 2, true, Water},
		{"door cell", 1, 3, true, Door},
		{"building cell", 0, 0, true, Building},
		{"negative x", -1, 0, false, ""},
		{"negative y", 0, -1, false, ""},
		{"beyond width", 5, 0, false, ""},
		{"beyond height", 0, 5, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile, ok := grid.Tile(tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("Tile(%d,%d) ok = %v, want %v", tt.x, tt.y, ok, tt.wantOK)
			}
			if ok && tile.Type != tt.wantType {
				t.Errorf("Tile(%d,%d) type = %s, want %s", tt.x, tt.y, tile.Type, tt.wantType)
			}
		})
	}
}

func TestNewGrid_MultiByteLegendCharacter(t *testing.T) {
	grid, err := NewGrid(&MapConfig{
		Name: "Unicode Map",
		Layout: []string{
			"≈≈R",
			"R≈R",
			"RRR",
		},
		Legend: map[string]string{
			"R": "road",
			"≈": "water",
		},
	})
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}

	if grid.Width() != 3 || grid.Height() != 3 {
		t.Fatalf("Expected 3x3 grid, got %dx%d", grid.Width(), grid.Height())
	}

	tile, ok := grid.Tile(1, 0)
	if !ok || tile.Type != Water {
		t.Errorf("Tile(1,0) = %+v ok=%v, want water", tile, ok)
	}
	tile, ok = grid.Tile(2, 0)
	if !ok || tile.Type != Road {
		t.Errorf("Tile(2,0) = %+v ok=%v, want road", tile, ok)
	}
	// Rows are sized by character count, not byte count.
	if _, ok := grid.Tile(3, 0); ok {
		t.Error("Tile(3,0) must report the no-tile sentinel")
	}
}

func TestWalkable(t *testing.T) {
	tests := []struct {
		name     string
		tile     Tile
		ok       bool
		expected bool
	}{
		{"road", Tile{Type: Road}, true, true},
		{"grass", Tile{Type: Grass}, true, true},
		{"door", Tile{Type: Door}, true, true},
		{"water", Tile{Type: Water}, true, false},
		{"building", Tile{Type: Building}, true, false},
		{"no tile sentinel", Tile{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Walkable(tt.tile, tt.ok, 0, 0); got != tt.expected {
				t.Errorf("Walkable(%s, ok=%v) = %v, want %v", tt.name, tt.ok, got, tt.expected)
			}
		})
	}
}

func TestValidateMapConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MapConfig)
		wantErr bool
	}{
		{"valid config", func(c *MapConfig) {}, false},
		{"missing name", func(c *MapConfig) { c.Name = "" }, true},
		{"ragged row", func(c *MapConfig) { c.Layout[2] = "BRW" }, true},
		{"unknown layout character", func(c *MapConfig) { c.Layout[1] = "BR?GB" }, true},
		{"unknown legend terrain", func(c *MapConfig) { c.Legend["R"] = "lava" }, true},
		{"multi-character legend key", func(c *MapConfig) { c.Legend["RR"] = "road" }, true},
		{"empty legend key", func(c *MapConfig) { c.Legend[""] = "road" }, true},
		{"too small", func(c *MapConfig) { c.Layout = []string{"R"} }, true},
		{"no walkable tiles", func(c *MapConfig) {
			c.Layout = []string{"WW", "WW"}
		}, true},
		{"default legend when omitted", func(c *MapConfig) { c.Legend = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createTestMapConfig()
			tt.mutate(config)
			err := ValidateMapConfig(config)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMapConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
