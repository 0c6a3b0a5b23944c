package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Board is a verified, frozen puzzle layout: grid dimensions, the wall set,
// and the four distinguished positions. Boards are built through BoardBuilder
// (or BoardLayout.Build) and never mutated afterwards, so a single Board can
// back any number of concurrent solver or engine runs.
type Board struct {
	rows, cols int

	start  Position
	amber  Position
	violet Position
	goal   Position

	walls   []EdgeWall
	wallSet map[EdgeWall]struct{}
}

// Rows returns the number of grid rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of grid columns.
func (b *Board) Cols() int { return b.cols }

// Start returns the robot's starting position.
func (b *Board) Start() Position { return b.start }

// Amber returns the amber collectible's position.
func (b *Board) Amber() Position { return b.amber }

// Violet returns the violet collectible's position.
func (b *Board) Violet() Position { return b.violet }

// Goal returns the goal position.
func (b *Board) Goal() Position { return b.goal }

// Walls returns a copy of the wall set in insertion order.
func (b *Board) Walls() []EdgeWall {
	out := make([]EdgeWall, len(b.walls))
	copy(out, b.walls)
	return out
}

// InBounds reports whether the position lies on the grid.
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.rows && p.Col >= 0 && p.Col < b.cols
}

// HasWallBetween reports whether an EdgeWall separates the two cells. The
// order of the arguments does not matter.
func (b *Board) HasWallBetween(from, to Position) bool {
	_, ok := b.wallSet[NewEdgeWall(from, to)]
	return ok
}

// boardJSON is the serialized form of a Board. Save/load of boards is the
// caller's concern; this keeps the encoding straightforward.
type boardJSON struct {
	Rows   int        `json:"rows"`
	Cols   int        `json:"cols"`
	Start  Position   `json:"start"`
	Amber  Position   `json:"amber"`
	Violet Position   `json:"violet"`
	Goal   Position   `json:"goal"`
	Walls  []EdgeWall `json:"walls"`
}

// MarshalJSON implements json.Marshaler.
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Rows:   b.rows,
		Cols:   b.cols,
		Start:  b.start,
		Amber:  b.amber,
		Violet: b.violet,
		Goal:   b.goal,
		Walls:  b.walls,
	})
}

// UnmarshalJSON implements json.Unmarshaler. The decoded board goes through
// the builder so that an invalid serialized board is rejected and the wall
// index is rebuilt.
func (b *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	bb := NewBoardBuilder(raw.Rows, raw.Cols)
	for _, w := range raw.Walls {
		if err := bb.AddWall(w.A, w.B); err != nil {
			return err
		}
	}
	bb.PlaceStart(raw.Start)
	bb.PlaceAmber(raw.Amber)
	bb.PlaceViolet(raw.Violet)
	bb.PlaceGoal(raw.Goal)

	built, err := bb.Build()
	if err != nil {
		return err
	}
	*b = *built
	return nil
}

// String renders the board as ASCII art with walls and the four markers
// (S start, A amber, V violet, G goal).
func (b *Board) String() string {
	var out strings.Builder

	// Top boundary
	out.WriteString("+")
	for c := 0; c < b.cols; c++ {
		if b.HasWallBetween(Position{Row: 0, Col: c}, Position{Row: -1, Col: c}) {
			out.WriteString("---+")
		} else {
			out.WriteString("   +")
		}
	}
	out.WriteString("\n")

	for r := 0; r < b.rows; r++ {
		// Cell row with east walls
		if b.HasWallBetween(Position{Row: r, Col: 0}, Position{Row: r, Col: -1}) {
			out.WriteString("|")
		} else {
			out.WriteString(" ")
		}
		for c := 0; c < b.cols; c++ {
			pos := Position{Row: r, Col: c}
			marker := " "
			switch pos {
			case b.start:
				marker = "S"
			case b.amber:
				marker = "A"
			case b.violet:
				marker = "V"
			case b.goal:
				marker = "G"
			}
			out.WriteString(" " + marker + " ")
			if b.HasWallBetween(pos, pos.Step(East)) {
				out.WriteString("|")
			} else {
				out.WriteString(" ")
			}
		}
		out.WriteString("\n")

		// Wall row with south walls
		out.WriteString("+")
		for c := 0; c < b.cols; c++ {
			pos := Position{Row: r, Col: c}
			if b.HasWallBetween(pos, pos.Step(South)) {
				out.WriteString("---+")
			} else {
				out.WriteString("   +")
			}
		}
		out.WriteString("\n")
	}

	return out.String()
}

// BoardBuilder accumulates walls and placements for a board under
// construction. Build validates the result and freezes it; a
// partially-constructed board is never observable.
type BoardBuilder struct {
	rows, cols int

	walls   map[EdgeWall]struct{}
	order   []EdgeWall
	placed  map[string]Position
	lastErr error
}

// NewBoardBuilder starts a builder for a rows×cols grid. Dimension errors are
// reported by Build.
func NewBoardBuilder(rows, cols int) *BoardBuilder {
	return &BoardBuilder{
		rows:   rows,
		cols:   cols,
		walls:  make(map[EdgeWall]struct{}),
		placed: make(map[string]Position),
	}
}

// AddWall records a wall between two adjacent cells. Duplicate walls are
// ignored. A wall may reach one cell off-grid (the outer border); a wall with
// both endpoints off-grid or between non-adjacent cells is an error.
func (bb *BoardBuilder) AddWall(a, b Position) error {
	w := NewEdgeWall(a, b)
	if !w.Adjacent() {
		return fmt.Errorf("board validation: wall %s endpoints are not adjacent", w)
	}
	if !bb.inBounds(w.A) && !bb.inBounds(w.B) {
		return fmt.Errorf("board validation: wall %s lies entirely off-grid", w)
	}
	if _, ok := bb.walls[w]; !ok {
		bb.walls[w] = struct{}{}
		bb.order = append(bb.order, w)
	}
	return nil
}

// AddBorderWalls places explicit walls along the entire outer boundary, one
// per border cell edge, matching the border representation the movement and
// scoring logic expect.
func (bb *BoardBuilder) AddBorderWalls() {
	for r := 0; r < bb.rows; r++ {
		for c := 0; c < bb.cols; c++ {
			pos := Position{Row: r, Col: c}
			if r == 0 {
				bb.mustAddWall(pos, pos.Step(North))
			}
			if r == bb.rows-1 {
				bb.mustAddWall(pos, pos.Step(South))
			}
			if c == 0 {
				bb.mustAddWall(pos, pos.Step(West))
			}
			if c == bb.cols-1 {
				bb.mustAddWall(pos, pos.Step(East))
			}
		}
	}
}

func (bb *BoardBuilder) mustAddWall(a, b Position) {
	if err := bb.AddWall(a, b); err != nil && bb.lastErr == nil {
		bb.lastErr = err
	}
}

// PlaceStart sets the robot start position.
func (bb *BoardBuilder) PlaceStart(p Position) { bb.placed["start"] = p }

// PlaceAmber sets the amber collectible position.
func (bb *BoardBuilder) PlaceAmber(p Position) { bb.placed["amber"] = p }

// PlaceViolet sets the violet collectible position.
func (bb *BoardBuilder) PlaceViolet(p Position) { bb.placed["violet"] = p }

// PlaceGoal sets the goal position.
func (bb *BoardBuilder) PlaceGoal(p Position) { bb.placed["goal"] = p }

func (bb *BoardBuilder) inBounds(p Position) bool {
	return p.Row >= 0 && p.Row < bb.rows && p.Col >= 0 && p.Col < bb.cols
}

// Build validates the accumulated board and returns the frozen result.
func (bb *BoardBuilder) Build() (*Board, error) {
	if bb.lastErr != nil {
		return nil, bb.lastErr
	}
	if bb.rows < MinBoardSize || bb.rows > MaxBoardSize ||
		bb.cols < MinBoardSize || bb.cols > MaxBoardSize {
		return nil, fmt.Errorf("board validation: dimensions must be between %d and %d, got %dx%d",
			MinBoardSize, MaxBoardSize, bb.rows, bb.cols)
	}

	positions := make([]Position, 0, 4)
	for _, name := range []string{"start", "amber", "violet", "goal"} {
		p, ok := bb.placed[name]
		if !ok {
			return nil, fmt.Errorf("board validation: %s position is not placed", name)
		}
		if !bb.inBounds(p) {
			return nil, fmt.Errorf("board validation: %s position %s is out of bounds", name, p)
		}
		positions = append(positions, p)
	}
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			if positions[i] == positions[j] {
				return nil, fmt.Errorf("board validation: object positions must be pairwise distinct, %s is reused", positions[i])
			}
		}
	}

	walls := make([]EdgeWall, len(bb.order))
	copy(walls, bb.order)
	wallSet := make(map[EdgeWall]struct{}, len(bb.walls))
	for w := range bb.walls {
		wallSet[w] = struct{}{}
	}

	return &Board{
		rows:    bb.rows,
		cols:    bb.cols,
		start:   positions[0],
		amber:   positions[1],
		violet:  positions[2],
		goal:    positions[3],
		walls:   walls,
		wallSet: wallSet,
	}, nil
}
