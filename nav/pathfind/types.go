package pathfind

// Point represents an integer x,y coordinate on the tile grid
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Status identifies the outcome of a search
type Status string

const (
	// StatusFound means a path from start to end was reconstructed.
	StatusFound Status = "found"
	// StatusUnreachable means the open frontier emptied before reaching the end.
	StatusUnreachable Status = "unreachable"
	// StatusDestinationBlocked means the end tile failed the passability
	// predicate before any node was expanded.
	StatusDestinationBlocked Status = "destination_blocked"
	// StatusLimitExceeded means the open frontier grew past the safety limit.
	StatusLimitExceeded Status = "limit_exceeded"

	// DefaultOpenLimit caps the size of the open frontier. It guards against
	// unbounded expansion on pathological maps or unreachable destinations.
	DefaultOpenLimit = 1000
)

// Result is the tagged outcome of a single search call
type Result struct {
	Status   Status  `json:"status"`
	Path     []Point `json:"path"`
	Cost     float64 `json:"cost"`
	Expanded int     `json:"expanded"`
}

// Found reports whether the search produced a path
func (r Result) Found() bool {
	return r.Status == StatusFound
}

// TileMap exposes row/column tile lookup. The boolean return reports whether
// a tile exists at the coordinate; false is the "no tile" sentinel for
// off-map or undefined cells. Coordinates passed to Tile may be negative.
type TileMap[T any] interface {
	Tile(x, y int) (T, bool)
}

// Passable classifies a tile location as traversable. It is called for the
// destination check and for every generated neighbor candidate, including
// off-map ones (ok == false). The search performs no bounds filtering of its
// own, so a predicate that disallows off-map traversal must reject the
// no-tile sentinel itself. Predicates must be pure.
type Passable[T any] func(tile T, ok bool, x, y int) bool

// Notifier observes search outcomes. Notifiers are invoked exactly once per
// Search call, after the result is final and before it is returned. They are
// a secondary observation channel; the returned Result is authoritative.
type Notifier func(Result)

// Options select which neighbor sets the search generates. Both flags may be
// true at once.
type Options struct {
	// Square enables the four orthogonal unit steps with movement weight 1.
	Square bool `json:"square"`
	// Diagonal enables the four diagonal steps with movement weight 1.4.
	Diagonal bool `json:"diagonal"`
}

// DefaultOptions returns the default movement model: orthogonal steps only.
func DefaultOptions() Options {
	return Options{Square: true, Diagonal: false}
}
