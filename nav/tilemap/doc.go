// Package tilemap provides the concrete tile maps the navigation server
// routes over.
//
// A map is described by a MapConfig loaded from JSON: a character layout, a
// legend mapping layout characters to terrain types, and metadata. NewGrid
// validates the config and builds an immutable Grid whose Tile method
// satisfies the pathfind.TileMap interface; Walkable is the standard
// passability predicate over its tiles.
//
// Terrain:
//
// Road, grass, and door tiles are traversable; water and building tiles are
// obstacles. Coordinates outside the layout have no tile, and Walkable
// rejects the no-tile sentinel, so routes never leave the map.
//
// Usage:
//
//	cfg, err := tilemap.LoadMapConfig("maps/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	grid, err := tilemap.NewGrid(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result := finder.Search(grid, start, end, tilemap.Walkable, opts)
package tilemap
