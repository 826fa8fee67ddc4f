package pathfind

import (
	"log"
	"math"
	"strings"
	"testing"
)

// runeMap adapts a layout of strings to the TileMap interface. '#' marks a
// blocked cell; every other rune is open. Coordinates outside the layout
// report the no-tile sentinel.
type runeMap struct {
	rows []string
}

func (m *runeMap) Tile(x, y int) (rune, bool) {
	if y < 0 || y >= len(m.rows) {
		return 0, false
	}
	row := []rune(m.rows[y])
	if x < 0 || x >= len(row) {
		return 0, false
	}
	return row[x], true
}

func openRunes(tile rune, ok bool, x, y int) bool {
	return ok && tile != '#'
}

// countingPredicate wraps a predicate and counts invocations
func countingPredicate(p Passable[rune], calls *int) Passable[rune] {
	return func(tile rune, ok bool, x, y int) bool {
		*calls++
		return p(tile, ok, x, y)
	}
}

func openGrid(width, height int) *runeMap {
	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(".", width)
	}
	return &runeMap{rows: rows}
}

func TestSearch_DestinationBlocked(t *testing.T) {
	m := &runeMap{rows: []string{
		"....",
		"..#.",
		"....",
	}}

	calls := 0
	finder := NewFinder[rune]()
	result := finder.Search(m, Point{X: 0, Y: 0}, Point{X: 2, Y: 1},
		countingPredicate(openRunes, &calls), DefaultOptions())

	if result.Status != StatusDestinationBlocked {
		t.Errorf("Expected status %s, got %s", StatusDestinationBlocked, result.Status)
	}
	if len(result.Path) != 0 {
		t.Errorf("Expected empty path, got %d points", len(result.Path))
	}
	if result.Expanded != 0 {
		t.Errorf("Expected zero expansions, got %d", result.Expanded)
	}
	if calls != 1 {
		t.Errorf("Expected exactly 1 predicate call for the destination gate, got %d", calls)
	}
}

func TestSearch_DestinationOffMap(t *testing.T) {
	m := openGrid(3, 3)
	finder := NewFinder[rune]()

	result := finder.Search(m, Point{X: 0, Y: 0}, Point{X: 10, Y: 10}, openRunes, DefaultOptions())
	if result.Status != StatusDestinationBlocked {
		t.Errorf("Expected status %s for off-map destination, got %s", StatusDestinationBlocked, result.Status)
	}
}

func TestSearch_OpenGridSquareOnly(t *testing.T) {
	m := openGrid(5, 6)
	finder := NewFinder[rune]()

	result := finder.Search(m, Point{X: 0, Y: 0}, Point{X: 3, Y: 4}, openRunes, DefaultOptions())

	if result.Status != StatusFound {
		t.Fatalf("Expected path to be found, got status %s", result.Status)
	}
	if len(result.Path) != 8 {
		t.Errorf("Expected path length 8 inclusive of endpoints, got %d", len(result.Path))
	}
	if math.Abs(result.Cost-7.0) > 1e-9 {
		t.Errorf("Expected accumulated cost 7.0, got %v", result.Cost)
	}
	if result.Path[0] != (Point{X: 0, Y: 0}) {
		t.Errorf("Path must begin at the start, got %+v", result.Path[0])
	}
	if result.Path[len(result.Path)-1] != (Point{X: 3, Y: 4}) {
		t.Errorf("Path must end at the destination, got %+v", result.Path[len(result.Path)-1])
	}

	// Every step must be a unit orthogonal move.
	for i := 1; i < len(result.Path); i++ {
		dx := result.Path[i].X - result.Path[i-1].X
		dy := result.Path[i].Y - result.Path[i-1].Y
		if dx*dx+dy*dy != 1 {
			t.Errorf("Step %d is not orthogonal: %+v -> %+v", i, result.Path[i-1], result.Path[i])
		}
	}
}

func TestSearch_DiagonalStepCost(t *testing.T) {
	m := openGrid(4, 4)
	finder := NewFinder[rune]()

	result := finder.Search(m, Point{X: 0, Y: 0}, Point{X: 2, Y: 2}, openRunes,
		Options{Square: true, Diagonal: true})

	if result.Status != StatusFound {
		t.Fatalf("Expected path to be found, got status %s", result.Status)
	}
	// The diagonal route is strictly shorter in step count (2 steps vs 4),
	// and each diagonal step contributes exactly 1.4 to the cost.
	if len(result.Path) != 3 {
		t.Errorf("Expected diagonal path of 3 points, got %d: %v", len(result.Path), result.Path)
	}
	if math.Abs(result.Cost-2.8) > 1e-9 {
		t.Errorf("Expected accumulated cost 2.8 from two diagonal steps, got %v", result.Cost)
	}
}

func TestSearch_SquareDisabled(t *testing.T) {
	m := openGrid(4, 4)
	finder := NewFinder[rune]()

	// Diagonal-only movement keeps coordinate parity, so (2,2) stays
	// reachable from (0,0) while (1,0) does not.
	result := finder.Search(m, Point{X: 0, Y: 0}, Point{X: 2, Y: 2}, openRunes,
		Options{Square: false, Diagonal: true})
	if result.Status != StatusFound {
		t.Fatalf("Expected diagonal-only path, got status %s", result.Status)
	}
	if len(result.Path) != 3 {
		t.Errorf("Expected 3-point diagonal path, got %d", len(result.Path))
	}

	result = finder.Search(m, Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, openRunes,
		Options{Square: false, Diagonal: true})
	if result.Status != StatusUnreachable {
		t.Errorf("Expected parity-blocked goal to be unreachable, got %s", result.Status)
	}
}

func TestSearch_Unreachable(t *testing.T) {
	// The goal tile is passable but fully ringed by blocked tiles.
	m := &runeMap{rows: []string{
		".....",
		".###.",
		".#.#.",
		".###.",
		".....",
	}}

	finder := NewFinder[rune]()
	result := finder.Search(m, Point{X: 0, Y: 0}, Point{X: 2, Y: 2}, openRunes, DefaultOptions())

	if result.Status != StatusUnreachable {
		t.Errorf("Expected status %s, got %s", StatusUnreachable, result.Status)
	}
	if len(result.Path) != 0 {
		t.Errorf("Expected empty path, got %d points", len(result.Path))
	}
	// Termination is bounded by the reachable cell count: 16 outer cells.
	if result.Expanded > 16 {
		t.Errorf("Expected at most 16 expansions, got %d", result.Expanded)
	}
}

func TestSearch_LimitExceeded(t *testing.T) {
	// A 40x40 open field with an isolated goal at the center floods the
	// frontier well past a small limit before exhausting the map.
	rows := make([]string, 40)
	for i := range rows {
		rows[i] = strings.Repeat(".", 40)
	}
	rows[19] = rows[19][:19] + "###" + rows[19][22:]
	rows[20] = rows[20][:19] + "#.#" + rows[20][22:]
	rows[21] = rows[21][:19] + "###" + rows[21][22:]
	m := &runeMap{rows: rows}

	finder := NewFinder(WithOpenLimit[rune](50))
	result := finder.Search(m, Point{X: 0, Y: 0}, Point{X: 20, Y: 20}, openRunes, DefaultOptions())

	if result.Status != StatusLimitExceeded {
		t.Errorf("Expected status %s, got %s", StatusLimitExceeded, result.Status)
	}
	if len(result.Path) != 0 {
		t.Errorf("Expected empty path, got %d points", len(result.Path))
	}
}

func TestSearch_DefaultOpenLimit(t *testing.T) {
	finder := NewFinder[rune]()
	if finder.limit != DefaultOpenLimit {
		t.Errorf("Expected default open limit %d, got %d", DefaultOpenLimit, finder.limit)
	}
	if DefaultOpenLimit != 1000 {
		t.Errorf("Expected the safety cutoff to be 1000 entries, got %d", DefaultOpenLimit)
	}
}

func TestSearch_Determinism(t *testing.T) {
	// An open field between start and goal produces many priority ties; two
	// identical calls must still agree point for point.
	m := openGrid(12, 12)
	finder := NewFinder[rune]()

	first := finder.Search(m, Point{X: 1, Y: 1}, Point{X: 10, Y: 8}, openRunes,
		Options{Square: true, Diagonal: true})
	second := finder.Search(m, Point{X: 1, Y: 1}, Point{X: 10, Y: 8}, openRunes,
		Options{Square: true, Diagonal: true})

	if first.Status != second.Status {
		t.Fatalf("Statuses differ: %s vs %s", first.Status, second.Status)
	}
	if first.Cost != second.Cost {
		t.Errorf("Costs differ: %v vs %v", first.Cost, second.Cost)
	}
	if len(first.Path) != len(second.Path) {
		t.Fatalf("Path lengths differ: %d vs %d", len(first.Path), len(second.Path))
	}
	for i := range first.Path {
		if first.Path[i] != second.Path[i] {
			t.Errorf("Paths diverge at step %d: %+v vs %+v", i, first.Path[i], second.Path[i])
		}
	}
}

func TestSearch_WallDetour(t *testing.T) {
	m := &runeMap{rows: []string{
		".....",
		"####.",
		".....",
	}}

	finder := NewFinder[rune]()
	result := finder.Search(m, Point{X: 0, Y: 0}, Point{X: 0, Y: 2}, openRunes, DefaultOptions())

	if result.Status != StatusFound {
		t.Fatalf("Expected detour path, got status %s", result.Status)
	}
	// Around the wall: 4 east, 2 south, 4 west = 10 steps.
	if math.Abs(result.Cost-10.0) > 1e-9 {
		t.Errorf("Expected detour cost 10.0, got %v", result.Cost)
	}
	if len(result.Path) != 11 {
		t.Errorf("Expected 11-point detour, got %d: %v", len(result.Path), result.Path)
	}
}

func TestSearch_StartEqualsEnd(t *testing.T) {
	m := openGrid(3, 3)
	finder := NewFinder[rune]()

	result := finder.Search(m, Point{X: 1, Y: 1}, Point{X: 1, Y: 1}, openRunes, DefaultOptions())
	if result.Status != StatusFound {
		t.Fatalf("Expected trivial path, got status %s", result.Status)
	}
	if len(result.Path) != 1 || result.Path[0] != (Point{X: 1, Y: 1}) {
		t.Errorf("Expected single-point path at the start, got %v", result.Path)
	}
	if result.Cost != 0 {
		t.Errorf("Expected zero cost, got %v", result.Cost)
	}
}

func TestSearch_NotifierReceivesOutcome(t *testing.T) {
	m := openGrid(4, 4)

	var got []Result
	finder := NewFinder(
		WithNotifier[rune](func(r Result) { got = append(got, r) }),
	)

	found := finder.Search(m, Point{X: 0, Y: 0}, Point{X: 3, Y: 3}, openRunes, DefaultOptions())
	if len(got) != 1 {
		t.Fatalf("Expected exactly one notification, got %d", len(got))
	}
	if got[0].Status != found.Status || len(got[0].Path) != len(found.Path) {
		t.Errorf("Notified result does not match returned result")
	}

	blocked := func(tile rune, ok bool, x, y int) bool { return false }
	finder.Search(m, Point{X: 0, Y: 0}, Point{X: 3, Y: 3}, blocked, DefaultOptions())
	if len(got) != 2 {
		t.Fatalf("Expected a notification for the gated failure, got %d total", len(got))
	}
	if got[1].Status != StatusDestinationBlocked {
		t.Errorf("Expected %s notification, got %s", StatusDestinationBlocked, got[1].Status)
	}
}

func TestSearch_LoggerIsSideChannelOnly(t *testing.T) {
	m := &runeMap{rows: []string{
		"..#..",
		"..#..",
	}}

	var buf strings.Builder
	quiet := NewFinder[rune]()
	loud := NewFinder(WithLogger[rune](log.New(&buf, "", 0)))

	a := quiet.Search(m, Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, openRunes, DefaultOptions())
	b := loud.Search(m, Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, openRunes, DefaultOptions())

	if a.Status != b.Status || len(a.Path) != len(b.Path) || a.Expanded != b.Expanded {
		t.Errorf("Logging changed the returned data: %+v vs %+v", a, b)
	}
	if buf.Len() == 0 {
		t.Error("Expected a diagnostic message for the no-path outcome")
	}
}
