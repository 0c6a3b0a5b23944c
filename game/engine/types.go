package engine

import "fmt"

// Direction is one of the four cardinal slide directions.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"

	// Validation constants
	MinBoardSize = 2
	MaxBoardSize = 20

	// DefaultBoardSize is the reference grid used by the puzzle generator
	// and the curated layouts.
	DefaultBoardSize = 5
)

// AllDirections lists every direction in a fixed expansion order.
var AllDirections = []Direction{North, South, East, West}

// Delta returns the unit (row, col) step for the direction.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	}
	return 0, 0
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	switch d {
	case North, South, East, West:
		return true
	}
	return false
}

// ParseDirection converts a direction name to a Direction. Besides the
// canonical names it accepts the screen-oriented aliases up/down/left/right
// used by older clients.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "north", "up", "n":
		return North, true
	case "south", "down", "s":
		return South, true
	case "east", "right", "e":
		return East, true
	case "west", "left", "w":
		return West, true
	}
	return "", false
}

// Position is a 0-indexed (row, col) grid coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the neighboring position one cell away in the given direction.
func (p Position) Step(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Less orders positions row-major, used to normalize wall endpoints.
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Item identifies a single collectible on the board.
type Item uint8

const (
	ItemAmber Item = 1 << iota
	ItemViolet
	ItemGoal
)

func (i Item) String() string {
	switch i {
	case ItemAmber:
		return "amber"
	case ItemViolet:
		return "violet"
	case ItemGoal:
		return "goal"
	}
	return "unknown"
}

// ItemSet is the set of collected items packed into a 3-bit bitset. The
// zero value is the empty set. Being a plain integer it is trivially
// comparable and usable as part of a map key.
type ItemSet uint8

// Has reports whether the item is in the set.
func (s ItemSet) Has(i Item) bool { return s&ItemSet(i) != 0 }

// With returns a copy of the set with the item added.
func (s ItemSet) With(i Item) ItemSet { return s | ItemSet(i) }

// Count returns the number of items in the set.
func (s ItemSet) Count() int {
	n := 0
	for _, i := range []Item{ItemAmber, ItemViolet, ItemGoal} {
		if s.Has(i) {
			n++
		}
	}
	return n
}

// Names returns the contained item names in a fixed order.
func (s ItemSet) Names() []string {
	names := []string{}
	for _, i := range []Item{ItemAmber, ItemViolet, ItemGoal} {
		if s.Has(i) {
			names = append(names, i.String())
		}
	}
	return names
}

func (s ItemSet) String() string {
	if s == 0 {
		return "none"
	}
	out := ""
	for _, name := range s.Names() {
		if out != "" {
			out += "+"
		}
		out += name
	}
	return out
}

// EdgeWall is an impassable boundary between two adjacent cells. The pair is
// unordered; NewEdgeWall normalizes the endpoints so that equal walls compare
// equal regardless of construction order. A wall may have one endpoint
// off-grid, which models the outer border.
type EdgeWall struct {
	A Position `json:"a"`
	B Position `json:"b"`
}

// NewEdgeWall builds a normalized wall between a and b.
func NewEdgeWall(a, b Position) EdgeWall {
	if b.Less(a) {
		a, b = b, a
	}
	return EdgeWall{A: a, B: b}
}

// Adjacent reports whether the wall's endpoints are grid neighbors
// (Manhattan distance 1).
func (w EdgeWall) Adjacent() bool {
	dr := w.A.Row - w.B.Row
	if dr < 0 {
		dr = -dr
	}
	dc := w.A.Col - w.B.Col
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

func (w EdgeWall) String() string {
	return fmt.Sprintf("%s|%s", w.A, w.B)
}
