// Command validate provides a small CLI that validates map JSON files in the
// ../maps directory. It checks:
//   - JSON structure and required fields
//   - Grid consistency and allowed characters (R, G, D, W, B plus legend extras)
//   - Map dimensions within supported bounds
//   - Presence of at least one walkable tile
//   - Connectivity: all walkable tiles form a single region reachable via
//     orthogonal movement
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MapFile mirrors the JSON schema for a map definition.
type MapFile struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Legend        map[string]string `json:"legend"`
	Layout        []string          `json:"layout"`
	AllowDiagonal bool              `json:"allow_diagonal"`
}

const (
	minMapSize = 2
	maxMapSize = 256
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

var defaultLegend = map[string]string{
	"R": "road",
	"G": "grass",
	"D": "door",
	"W": "water",
	"B": "building",
}

var knownTerrains = map[string]bool{
	"road":     true,
	"grass":    true,
	"door":     true,
	"water":    true,
	"building": true,
}

func walkableTerrain(terrain string) bool {
	switch terrain {
	case "road", "grass", "door":
		return true
	default:
		return false
	}
}

// validateMap loads and validates a single map JSON file. It performs
// structural checks, legend and layout validation, and connectivity analysis
// over the walkable tiles.
func validateMap(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config MapFile
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Map name is required")
	}

	legend := config.Legend
	if len(legend) == 0 {
		legend = defaultLegend
	}
	for char, terrain := range legend {
		if len([]rune(char)) != 1 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Legend key %q must be a single character", char))
		}
		if !knownTerrains[terrain] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Legend maps %q to unknown terrain %q", char, terrain))
		}
	}

	// Validate layout
	height := len(config.Layout)
	if height < minMapSize || height > maxMapSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Map height must be between %d and %d, got %d", minMapSize, maxMapSize, height))
	}

	gridWidth := -1
	walkableCount := 0

	for i, row := range config.Layout {
		if gridWidth == -1 {
			gridWidth = len(row)
			if gridWidth < minMapSize || gridWidth > maxMapSize {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Map width must be between %d and %d, got %d", minMapSize, maxMapSize, gridWidth))
			}
		} else if len(row) != gridWidth {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Inconsistent grid width at row %d: expected %d, got %d", i+1, gridWidth, len(row)))
		}

		for j, char := range row {
			terrain, ok := legend[string(char)]
			if !ok {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Character '%c' at position [%d,%d] is not in the legend", char, i+1, j+1))
				continue
			}
			if walkableTerrain(terrain) {
				walkableCount++
			}
		}
	}

	if walkableCount == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Map has no walkable tiles")
	}

	// Connectivity validation over walkable tiles
	if result.Valid {
		connectivity := validateConnectivity(config.Layout, legend)
		result.Errors = append(result.Errors, connectivity.Errors...)
		if !connectivity.Valid {
			result.Valid = false
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", gridWidth, height))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Walkable tiles: %d", walkableCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Diagonal movement: %v", config.AllowDiagonal))
	}

	return result
}

// validateConnectivity ensures all walkable tiles form a single region under
// 4-directional movement. Disconnected walkable pockets make some routes
// unreachable, which almost always indicates a layout mistake.
func validateConnectivity(layout []string, legend map[string]string) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	height := len(layout)
	width := 0
	if height > 0 {
		width = len(layout[0])
	}

	isWalkable := func(x, y int) bool {
		if x < 0 || y < 0 || y >= height || x >= width || x >= len(layout[y]) {
			return false
		}
		terrain, ok := legend[string(layout[y][x])]
		return ok && walkableTerrain(terrain)
	}

	// Find a starting walkable tile and count the total
	total := 0
	start := []int{-1, -1}
	for y := 0; y < height; y++ {
		for x := 0; x < width && x < len(layout[y]); x++ {
			if isWalkable(x, y) {
				total++
				if start[0] == -1 {
					start = []int{x, y}
				}
			}
		}
	}

	if total == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate connectivity: no walkable tiles")
		return result
	}

	// Flood fill from the first walkable tile
	visited := make(map[string]bool)
	queue := [][]int{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		x, y := current[0], current[1]
		key := fmt.Sprintf("%d,%d", x, y)

		if visited[key] {
			continue
		}
		visited[key] = true

		directions := [][]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		for _, dir := range directions {
			nx, ny := x+dir[0], y+dir[1]
			nkey := fmt.Sprintf("%d,%d", nx, ny)

			if !visited[nkey] && isWalkable(nx, ny) {
				queue = append(queue, []int{nx, ny})
			}
		}
	}

	if len(visited) < total {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d/%d walkable tiles unreachable from (%d,%d)",
			total-len(visited), total, start[0], start[1]))
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: all %d walkable tiles form one region", total))
	}

	return result
}

// main scans ../maps for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	mapsDir := "../maps"
	if dir := os.Getenv("MAPS_DIR"); dir != "" {
		mapsDir = dir
	}

	files, err := filepath.Glob(filepath.Join(mapsDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding map files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateMap(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All maps are valid!")
	} else {
		fmt.Println("❌ Some maps have errors")
		os.Exit(1)
	}
}
