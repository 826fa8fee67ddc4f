package pathfind

import "log"

// Movement weights. The diagonal weight is a fixed approximation of sqrt(2)
// defined by the movement model; it is not recomputed per tile.
const (
	orthogonalCost = 1.0
	diagonalCost   = 1.4
)

// step is a relative neighbor offset with its movement weight
type step struct {
	dx, dy int
	cost   float64
}

// Offsets are generated in reading order: orthogonals N, E, S, W, then
// diagonals NE, SE, SW, NW. The order feeds the open frontier's insertion
// order, which the tie-break rule depends on.
var (
	squareSteps = [4]step{
		{dx: 0, dy: -1, cost: orthogonalCost},
		{dx: 1, dy: 0, cost: orthogonalCost},
		{dx: 0, dy: 1, cost: orthogonalCost},
		{dx: -1, dy: 0, cost: orthogonalCost},
	}
	diagonalSteps = [4]step{
		{dx: 1, dy: -1, cost: diagonalCost},
		{dx: 1, dy: 1, cost: diagonalCost},
		{dx: -1, dy: 1, cost: diagonalCost},
		{dx: -1, dy: -1, cost: diagonalCost},
	}
)

// node is a search node in the finder's arena. score is the accumulated path
// cost from the start; priority is the value the selection scan minimizes.
// parent is an index into the same arena, -1 for the start node. Nodes never
// outlive a single Search call.
type node struct {
	x, y     int
	score    float64
	priority float64
	parent   int
}

// Finder runs best-first path searches over caller-supplied tile maps. A
// Finder holds no per-search state and may be reused across calls; a single
// call runs synchronously to completion. The map and predicate must not be
// mutated while a search is running.
type Finder[T any] struct {
	limit     int
	logger    *log.Logger
	notifiers []Notifier
}

// Option configures a Finder
type Option[T any] func(*Finder[T])

// WithOpenLimit overrides the open-frontier safety limit. Values below 1
// fall back to DefaultOpenLimit.
func WithOpenLimit[T any](limit int) Option[T] {
	return func(f *Finder[T]) {
		if limit > 0 {
			f.limit = limit
		}
	}
}

// WithLogger directs diagnostic messages for the failure outcomes to the
// given logger. Without a logger the search is silent; logging never affects
// the returned data.
func WithLogger[T any](logger *log.Logger) Option[T] {
	return func(f *Finder[T]) {
		f.logger = logger
	}
}

// WithNotifier registers an observer for search outcomes. Multiple notifiers
// are invoked in registration order.
func WithNotifier[T any](n Notifier) Option[T] {
	return func(f *Finder[T]) {
		if n != nil {
			f.notifiers = append(f.notifiers, n)
		}
	}
}

// NewFinder creates a path finder with the default open limit
func NewFinder[T any](opts ...Option[T]) *Finder[T] {
	f := &Finder[T]{limit: DefaultOpenLimit}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Search computes a route from start to end over m, using passable to decide
// which tile locations may be traversed. The returned path runs from start to
// end inclusive when a route exists and is empty otherwise; Result.Status
// distinguishes the failure modes.
//
// Scoring preserves the behavior of the reference implementation this search
// was ported from: a node enters the frontier with its priority set to the
// Manhattan distance to the end, and a cheaper rediscovery of an open node
// reparents it and resets its priority to its stored accumulated cost without
// re-adding the heuristic. This is not canonical A*; see the package
// documentation before "fixing" it, because the selection order (and
// potentially the returned path) depends on it.
func (f *Finder[T]) Search(m TileMap[T], start, end Point, passable Passable[T], opts Options) Result {
	// Destination gate: reject an unpathable end tile before any node is
	// created. The predicate runs exactly once here.
	tile, ok := m.Tile(end.X, end.Y)
	if !passable(tile, ok, end.X, end.Y) {
		f.logf("pathfind: destination (%d,%d) is not passable", end.X, end.Y)
		return f.finish(Result{Status: StatusDestinationBlocked, Path: []Point{}})
	}

	arena := make([]node, 1, 64)
	arena[0] = node{x: start.X, y: start.Y, parent: -1}

	// open holds arena indices in insertion order; openAt mirrors it keyed by
	// coordinate for O(1) membership. closed is monotonic: a coordinate that
	// enters it never re-enters the frontier.
	open := []int{0}
	openAt := map[Point]int{start: 0}
	closed := make(map[Point]struct{})
	expanded := 0

	for len(open) > 0 {
		if len(open) > f.limit {
			f.logf("pathfind: open frontier exceeded %d nodes searching (%d,%d)->(%d,%d), aborting",
				f.limit, start.X, start.Y, end.X, end.Y)
			return f.finish(Result{Status: StatusLimitExceeded, Path: []Point{}, Expanded: expanded})
		}

		// Linear selection scan: the first node holding the minimal priority
		// wins. Strict less-than keeps ties on the earliest insertion.
		best := 0
		for i := 1; i < len(open); i++ {
			if arena[open[i]].priority < arena[open[best]].priority {
				best = i
			}
		}
		currentIdx := open[best]
		current := arena[currentIdx]

		if current.x == end.X && current.y == end.Y {
			return f.finish(Result{
				Status:   StatusFound,
				Path:     rebuildPath(arena, currentIdx),
				Cost:     current.score,
				Expanded: expanded,
			})
		}

		// Promote from open to closed.
		open = append(open[:best], open[best+1:]...)
		currentPt := Point{X: current.x, Y: current.y}
		delete(openAt, currentPt)
		closed[currentPt] = struct{}{}
		expanded++

		if opts.Square {
			for _, s := range squareSteps {
				f.relax(m, passable, &arena, &open, openAt, closed, currentIdx, s, end)
			}
		}
		if opts.Diagonal {
			for _, s := range diagonalSteps {
				f.relax(m, passable, &arena, &open, openAt, closed, currentIdx, s, end)
			}
		}
	}

	f.logf("pathfind: no path from (%d,%d) to (%d,%d)", start.X, start.Y, end.X, end.Y)
	return f.finish(Result{Status: StatusUnreachable, Path: []Point{}, Expanded: expanded})
}

// relax generates one neighbor candidate of the node at currentIdx and folds
// it into the frontier bookkeeping.
func (f *Finder[T]) relax(
	m TileMap[T],
	passable Passable[T],
	arena *[]node,
	open *[]int,
	openAt map[Point]int,
	closed map[Point]struct{},
	currentIdx int,
	s step,
	end Point,
) {
	current := (*arena)[currentIdx]
	nx, ny := current.x+s.dx, current.y+s.dy

	// The predicate sees every candidate, off-map ones included; it owns the
	// bounds decision.
	tile, ok := m.Tile(nx, ny)
	if !passable(tile, ok, nx, ny) {
		return
	}

	np := Point{X: nx, Y: ny}
	if _, seen := closed[np]; seen {
		return
	}

	if at, inOpen := openAt[np]; inOpen {
		// Cheaper rediscovery: reparent and collapse priority onto the stored
		// accumulated cost. The stored score itself is left as-is.
		if current.score < (*arena)[at].score {
			(*arena)[at].parent = currentIdx
			(*arena)[at].priority = (*arena)[at].score
		}
		return
	}

	*arena = append(*arena, node{
		x:        nx,
		y:        ny,
		score:    current.score + s.cost,
		priority: manhattan(np, end),
		parent:   currentIdx,
	})
	idx := len(*arena) - 1
	openAt[np] = idx
	*open = append(*open, idx)
}

// rebuildPath walks parent indices from the goal node back to the start and
// reverses the collected points into start-to-end order.
func rebuildPath(arena []node, goal int) []Point {
	path := make([]Point, 0, 16)
	for idx := goal; idx >= 0; idx = arena[idx].parent {
		path = append(path, Point{X: arena[idx].x, Y: arena[idx].y})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// manhattan is the heuristic distance estimate used when a node first enters
// the open frontier.
func manhattan(a, b Point) float64 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}

// finish delivers the outcome to registered notifiers and returns it
func (f *Finder[T]) finish(r Result) Result {
	for _, n := range f.notifiers {
		n(r)
	}
	return r
}

func (f *Finder[T]) logf(format string, args ...any) {
	if f.logger != nil {
		f.logger.Printf(format, args...)
	}
}
