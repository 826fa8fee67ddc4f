// Package pathfind implements grid-based informed path search between two
// cells of a tile map.
//
// The package is deliberately map-agnostic: the caller supplies a TileMap for
// tile lookup and a Passable predicate that classifies tile locations as
// traversable. Movement is configurable between orthogonal-only and
// orthogonal plus diagonal stepping.
//
// Core Types:
//
// Finder is the search component; its single operation Search runs an
// iterative best-first search to completion and returns a tagged Result.
// Point is the coordinate value used for start, end, and path elements.
//
// Usage:
//
//	finder := pathfind.NewFinder[tilemap.Tile]()
//	result := finder.Search(grid, start, end, tilemap.Walkable, pathfind.Options{Square: true})
//	if result.Found() {
//		// result.Path runs from start to end inclusive
//	}
//
// Outcomes:
//
// Search distinguishes four outcomes via Result.Status: StatusFound,
// StatusUnreachable (the frontier emptied without reaching the goal),
// StatusDestinationBlocked (the end tile failed the predicate before any
// expansion), and StatusLimitExceeded (the open frontier grew past the
// configured safety limit). All failure outcomes carry an empty path; callers
// that need to tell them apart must inspect the status, not the path.
//
// Determinism:
//
// Selection from the open frontier is a linear scan where the first node
// holding the minimal priority wins. Given identical inputs, Search produces
// identical paths and outcomes on every call, including on layouts where many
// frontier nodes tie on priority. A heap would reorder those ties and is
// intentionally not used.
package pathfind
