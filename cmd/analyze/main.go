// Command analyze is a developer CLI for inspecting maps and route
// computations without running the server. It can print per-map statistics
// and compute a single route, rendering the result as an ASCII overlay on
// the map layout.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/gridroute/gridroute/nav/pathfind"
	"github.com/gridroute/gridroute/nav/tilemap"
)

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Inspect maps and compute routes from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "maps-dir",
				Value: "maps",
				Usage: "Directory containing map JSON files",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "stats",
				Usage: "Print statistics for every map in the maps directory",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runStats(cmd.String("maps-dir"))
				},
			},
			{
				Name:  "route",
				Usage: "Compute a route on a map and print the result",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "map",
						Usage:    "Map file name (without .json) in the maps directory",
						Required: true,
					},
					&cli.IntFlag{Name: "start-x", Usage: "Start X coordinate"},
					&cli.IntFlag{Name: "start-y", Usage: "Start Y coordinate"},
					&cli.IntFlag{Name: "end-x", Usage: "Destination X coordinate"},
					&cli.IntFlag{Name: "end-y", Usage: "Destination Y coordinate"},
					&cli.BoolFlag{
						Name:  "diagonal",
						Usage: "Allow diagonal movement regardless of the map's setting",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: pathfind.DefaultOpenLimit,
						Usage: "Frontier safety limit",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					start := pathfind.Point{X: int(cmd.Int("start-x")), Y: int(cmd.Int("start-y"))}
					end := pathfind.Point{X: int(cmd.Int("end-x")), Y: int(cmd.Int("end-y"))}
					return runRoute(cmd.String("maps-dir"), cmd.String("map"),
						start, end, cmd.Bool("diagonal"), int(cmd.Int("limit")))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// runStats prints a one-screen summary for every map JSON file.
func runStats(mapsDir string) error {
	files, err := filepath.Glob(filepath.Join(mapsDir, "*.json"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no map files found in %s", mapsDir)
	}

	for _, file := range files {
		fmt.Printf("\n=== %s ===\n", filepath.Base(file))

		config, err := tilemap.LoadMapConfig(file)
		if err != nil {
			fmt.Printf("Error loading map: %v\n", err)
			continue
		}

		grid, err := tilemap.NewGrid(config)
		if err != nil {
			fmt.Printf("Error building grid: %v\n", err)
			continue
		}

		walkable := 0
		byTerrain := map[tilemap.TerrainType]int{}
		for y := 0; y < grid.Height(); y++ {
			for x := 0; x < grid.Width(); x++ {
				tile, _ := grid.Tile(x, y)
				byTerrain[tile.Type]++
				if tile.Type.Traversable() {
					walkable++
				}
			}
		}

		total := grid.Width() * grid.Height()
		fmt.Printf("Name: %s\n", config.Name)
		if config.Description != "" {
			fmt.Printf("Description: %s\n", config.Description)
		}
		fmt.Printf("Size: %dx%d (%d tiles)\n", grid.Width(), grid.Height(), total)
		fmt.Printf("Walkable: %d/%d (%.0f%%)\n", walkable, total, 100*float64(walkable)/float64(total))
		fmt.Printf("Diagonal movement: %v\n", config.AllowDiagonal)
		for _, terrain := range []tilemap.TerrainType{tilemap.Road, tilemap.Grass, tilemap.Door, tilemap.Water, tilemap.Building} {
			if count := byTerrain[terrain]; count > 0 {
				fmt.Printf("  %-8s %d\n", terrain, count)
			}
		}
	}

	return nil
}

// runRoute loads a map, computes a single route, and prints the outcome with
// an ASCII overlay of the path.
func runRoute(mapsDir, mapName string, start, end pathfind.Point, diagonal bool, limit int) error {
	config, err := tilemap.LoadMapConfig(filepath.Join(mapsDir, mapName+".json"))
	if err != nil {
		return fmt.Errorf("failed to load map %s: %w", mapName, err)
	}

	grid, err := tilemap.NewGrid(config)
	if err != nil {
		return err
	}

	opts := pathfind.DefaultOptions()
	opts.Diagonal = config.AllowDiagonal || diagonal

	finder := pathfind.NewFinder(pathfind.WithOpenLimit[tilemap.Tile](limit))
	result := finder.Search(grid, start, end, tilemap.Walkable, opts)

	fmt.Printf("Map: %s\n", config.Name)
	fmt.Printf("Route: (%d,%d) -> (%d,%d)\n", start.X, start.Y, end.X, end.Y)
	fmt.Printf("Status: %s\n", result.Status)
	fmt.Printf("Nodes expanded: %d\n", result.Expanded)

	if !result.Found() {
		return nil
	}

	fmt.Printf("Steps: %d\n", len(result.Path)-1)
	fmt.Printf("Cost: %.1f\n", result.Cost)
	fmt.Println()
	fmt.Print(renderOverlay(config.Layout, result.Path))
	return nil
}

// renderOverlay draws the path over the layout: S start, E end, * in between.
func renderOverlay(layout []string, path []pathfind.Point) string {
	rows := make([][]byte, len(layout))
	for i, row := range layout {
		rows[i] = []byte(row)
	}

	mark := func(p pathfind.Point, c byte) {
		if p.Y >= 0 && p.Y < len(rows) && p.X >= 0 && p.X < len(rows[p.Y]) {
			rows[p.Y][p.X] = c
		}
	}

	if len(path) > 2 {
		for _, p := range path[1 : len(path)-1] {
			mark(p, '*')
		}
	}
	if len(path) > 0 {
		mark(path[0], 'S')
		mark(path[len(path)-1], 'E')
	}

	var b strings.Builder
	for _, row := range rows {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
