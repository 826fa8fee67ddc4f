// Package config loads and caches the map definitions the navigation server
// serves.
//
// Manager watches a directory of JSON map files. Maps are validated on load,
// cached under their file name (minus extension), and a default map is chosen
// at startup: "classic" when present, otherwise the first valid map in the
// directory, otherwise a built-in minimal map. SaveMap writes through to disk
// and refreshes the cache entry.
package config
