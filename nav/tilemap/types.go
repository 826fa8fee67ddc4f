package tilemap

// TerrainType represents different kinds of map tiles
type TerrainType string

const (
	Road     TerrainType = "road"
	Grass    TerrainType = "grass"
	Door     TerrainType = "door"
	Water    TerrainType = "water"
	Building TerrainType = "building"

	// Validation constants
	MinMapSize = 2
	MaxMapSize = 256
)

// Tile represents a single grid cell
type Tile struct {
	Type TerrainType `json:"type"`
	Char string      `json:"char,omitempty"` // Layout character the tile was built from
}

// MapConfig represents a map definition loaded from JSON
type MapConfig struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Legend        map[string]string `json:"legend"`
	Layout        []string          `json:"layout"`
	AllowDiagonal bool              `json:"allow_diagonal"`
}

// DefaultLegend maps the standard layout characters to terrain types. Configs
// may omit the legend entirely to use it, or extend it with extra characters.
func DefaultLegend() map[string]string {
	return map[string]string{
		"R": string(Road),
		"G": string(Grass),
		"D": string(Door),
		"W": string(Water),
		"B": string(Building),
	}
}

// Traversable reports whether the terrain type may be walked on
func (t TerrainType) Traversable() bool {
	switch t {
	case Road, Grass, Door:
		return true
	default:
		return false
	}
}
