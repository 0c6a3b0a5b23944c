package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// WallSpec is a wall entry in a layout file.
type WallSpec struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// BoardLayout is the JSON schema for a board: the hand-authored curated
// puzzles under configs/ use it, and generated boards are converted to it
// for persistence. Border walls are implied and always added by Build, so a
// layout only lists interior walls and walls that sit on border cells
// perpendicular to the boundary.
type BoardLayout struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Difficulty  string     `json:"difficulty,omitempty"`
	Rows        int        `json:"rows"`
	Cols        int        `json:"cols"`
	Start       Position   `json:"start"`
	Amber       Position   `json:"amber"`
	Violet      Position   `json:"violet"`
	Goal        Position   `json:"goal"`
	Walls       []WallSpec `json:"walls"`

	// OptimalMoves is the verified solution length, when known. Zero means
	// not verified; consumers re-run the solver rather than trusting it.
	OptimalMoves int `json:"optimal_moves,omitempty"`
}

// ValidateLayout checks a layout for structural correctness. Solvability is
// not checked here; that is the solver's job.
func ValidateLayout(l *BoardLayout) error {
	if l == nil {
		return fmt.Errorf("layout validation: layout is nil")
	}
	if l.Name == "" {
		return fmt.Errorf("layout validation: name is required")
	}
	if l.Rows < MinBoardSize || l.Rows > MaxBoardSize || l.Cols < MinBoardSize || l.Cols > MaxBoardSize {
		return fmt.Errorf("layout validation: dimensions must be between %d and %d, got %dx%d",
			MinBoardSize, MaxBoardSize, l.Rows, l.Cols)
	}

	inBounds := func(p Position) bool {
		return p.Row >= 0 && p.Row < l.Rows && p.Col >= 0 && p.Col < l.Cols
	}
	placements := []struct {
		name string
		pos  Position
	}{
		{"start", l.Start},
		{"amber", l.Amber},
		{"violet", l.Violet},
		{"goal", l.Goal},
	}
	for i, p := range placements {
		if !inBounds(p.pos) {
			return fmt.Errorf("layout validation: %s position %s is out of bounds", p.name, p.pos)
		}
		for _, q := range placements[i+1:] {
			if p.pos == q.pos {
				return fmt.Errorf("layout validation: %s and %s share position %s", p.name, q.name, p.pos)
			}
		}
	}

	for _, w := range l.Walls {
		wall := NewEdgeWall(w.From, w.To)
		if !wall.Adjacent() {
			return fmt.Errorf("layout validation: wall %s endpoints are not adjacent", wall)
		}
		if !inBounds(wall.A) && !inBounds(wall.B) {
			return fmt.Errorf("layout validation: wall %s lies entirely off-grid", wall)
		}
	}

	return nil
}

// Build validates the layout and constructs its frozen Board, border walls
// included.
func (l *BoardLayout) Build() (*Board, error) {
	if err := ValidateLayout(l); err != nil {
		return nil, err
	}

	bb := NewBoardBuilder(l.Rows, l.Cols)
	bb.AddBorderWalls()
	for _, w := range l.Walls {
		if err := bb.AddWall(w.From, w.To); err != nil {
			return nil, err
		}
	}
	bb.PlaceStart(l.Start)
	bb.PlaceAmber(l.Amber)
	bb.PlaceViolet(l.Violet)
	bb.PlaceGoal(l.Goal)
	return bb.Build()
}

// LayoutFromBoard converts a frozen board back into a layout, e.g. for
// persisting a generated puzzle. Border walls are dropped since Build adds
// them again.
func LayoutFromBoard(b *Board, name, difficulty string) *BoardLayout {
	walls := []WallSpec{}
	for _, w := range b.Walls() {
		if !b.InBounds(w.A) || !b.InBounds(w.B) {
			continue
		}
		walls = append(walls, WallSpec{From: w.A, To: w.B})
	}
	return &BoardLayout{
		Name:       name,
		Difficulty: difficulty,
		Rows:       b.Rows(),
		Cols:       b.Cols(),
		Start:      b.Start(),
		Amber:      b.Amber(),
		Violet:     b.Violet(),
		Goal:       b.Goal(),
		Walls:      walls,
	}
}

// LoadLayout reads and validates a layout from a JSON file.
func LoadLayout(path string) (*BoardLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var layout BoardLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout file %s: %w", path, err)
	}
	if err := ValidateLayout(&layout); err != nil {
		return nil, err
	}
	return &layout, nil
}

// CuratedLayouts returns the hand-authored puzzle catalogue. The generator
// falls back to these when procedural generation exhausts its attempt
// budget, and the config manager serves them alongside any layout files on
// disk. A difficulty label is only carried by boards whose verified optimal
// sits inside that difficulty's band; every band has at least one such
// board so the fallback can always honor the requested difficulty. The
// slice is freshly allocated on each call so callers may modify their copy.
func CuratedLayouts() []BoardLayout {
	return []BoardLayout{
		{
			// Unwinnable as authored: the walls cut every sliding line
			// into the goal. Kept unlabeled; the default-layout selection
			// and the fallback both skip it after running the solver.
			Name:        "The Crossroads",
			Description: "Corner navigation around a central barrier cluster.",
			Rows:        5,
			Cols:        5,
			Start:       Position{Row: 1, Col: 1},
			Amber:       Position{Row: 0, Col: 3},
			Violet:      Position{Row: 3, Col: 0},
			Goal:        Position{Row: 3, Col: 3},
			Walls: []WallSpec{
				{From: Position{Row: 1, Col: 2}, To: Position{Row: 2, Col: 2}},
				{From: Position{Row: 2, Col: 1}, To: Position{Row: 2, Col: 2}},
				{From: Position{Row: 2, Col: 3}, To: Position{Row: 3, Col: 3}},
				{From: Position{Row: 0, Col: 1}, To: Position{Row: 0, Col: 2}},
				{From: Position{Row: 1, Col: 0}, To: Position{Row: 2, Col: 0}},
				{From: Position{Row: 4, Col: 2}, To: Position{Row: 4, Col: 3}},
				{From: Position{Row: 2, Col: 4}, To: Position{Row: 3, Col: 4}},
			},
		},
		{
			Name:        "Crystal Maze",
			Description: "A central cross pattern with walls hugging the edges.",
			Difficulty:  "easy",
			Rows:        5,
			Cols:        5,
			Start:       Position{Row: 0, Col: 2},
			Amber:       Position{Row: 2, Col: 0},
			Violet:      Position{Row: 2, Col: 4},
			Goal:        Position{Row: 4, Col: 2},
			Walls: []WallSpec{
				{From: Position{Row: 1, Col: 1}, To: Position{Row: 2, Col: 1}},
				{From: Position{Row: 2, Col: 1}, To: Position{Row: 2, Col: 2}},
				{From: Position{Row: 2, Col: 3}, To: Position{Row: 3, Col: 3}},
				{From: Position{Row: 0, Col: 0}, To: Position{Row: 0, Col: 1}},
				{From: Position{Row: 3, Col: 0}, To: Position{Row: 4, Col: 0}},
				{From: Position{Row: 1, Col: 4}, To: Position{Row: 2, Col: 4}},
				{From: Position{Row: 4, Col: 3}, To: Position{Row: 4, Col: 4}},
			},
			OptimalMoves: 8,
		},
		{
			Name:        "Open Run",
			Description: "No interior walls; a lap around the board edges wins.",
			Rows:        5,
			Cols:        5,
			Start:       Position{Row: 0, Col: 0},
			Amber:       Position{Row: 0, Col: 4},
			Violet:      Position{Row: 4, Col: 4},
			Goal:        Position{Row: 4, Col: 0},
			Walls:       []WallSpec{},
			// East, South, West: verified by hand and by the solver tests.
			OptimalMoves: 3,
		},
		{
			Name:        "Spiral Gateway",
			Description: "Staggered barriers forcing long detours between pickups.",
			Difficulty:  "easy",
			Rows:        5,
			Cols:        5,
			Start:       Position{Row: 2, Col: 2},
			Amber:       Position{Row: 0, Col: 1},
			Violet:      Position{Row: 4, Col: 3},
			Goal:        Position{Row: 2, Col: 0},
			Walls: []WallSpec{
				{From: Position{Row: 0, Col: 2}, To: Position{Row: 0, Col: 3}},
				{From: Position{Row: 1, Col: 1}, To: Position{Row: 1, Col: 2}},
				{From: Position{Row: 1, Col: 3}, To: Position{Row: 2, Col: 3}},
				{From: Position{Row: 3, Col: 1}, To: Position{Row: 2, Col: 1}},
				{From: Position{Row: 3, Col: 2}, To: Position{Row: 3, Col: 3}},
				{From: Position{Row: 4, Col: 0}, To: Position{Row: 4, Col: 1}},
				{From: Position{Row: 1, Col: 0}, To: Position{Row: 2, Col: 0}},
				{From: Position{Row: 3, Col: 4}, To: Position{Row: 2, Col: 4}},
			},
			OptimalMoves: 9,
		},
		{
			// Serpentine corridor: each row is open, rows connect only at
			// alternating ends, so every slide advances exactly one
			// switchback. Both pickups sit on the bottom row, reached on
			// slide nine; doubling back to the gate on row three takes
			// three more.
			Name:        "Serpentine Switchback",
			Description: "A snaking corridor; collect at the bottom, double back to the gate.",
			Difficulty:  "medium",
			Rows:        5,
			Cols:        5,
			Start:       Position{Row: 0, Col: 0},
			Amber:       Position{Row: 4, Col: 1},
			Violet:      Position{Row: 4, Col: 3},
			Goal:        Position{Row: 3, Col: 2},
			Walls:       serpentineWalls(),
			// Nine slides down, three back up.
			OptimalMoves: 12,
		},
		{
			// Same corridor, but the gate sits on the top row: the full
			// run down plus the full run back.
			Name:        "The Long Haul",
			Description: "The snaking corridor end to end, then all the way home.",
			Difficulty:  "hard",
			Rows:        5,
			Cols:        5,
			Start:       Position{Row: 0, Col: 0},
			Amber:       Position{Row: 4, Col: 1},
			Violet:      Position{Row: 4, Col: 3},
			Goal:        Position{Row: 0, Col: 1},
			Walls:       serpentineWalls(),
			// Nine slides down, nine back up.
			OptimalMoves: 18,
		},
	}
}

// serpentineWalls seals each pair of adjacent rows except at one end,
// alternating sides, turning a 5x5 grid into a single snaking corridor.
func serpentineWalls() []WallSpec {
	walls := []WallSpec{}
	for r := 0; r < 4; r++ {
		openCol := 4
		if r%2 == 1 {
			openCol = 0
		}
		for c := 0; c < 5; c++ {
			if c == openCol {
				continue
			}
			walls = append(walls, WallSpec{
				From: Position{Row: r, Col: c},
				To:   Position{Row: r + 1, Col: c},
			})
		}
	}
	return walls
}
