package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Edju03/Richochet/game/engine"
)

// DefaultMaxAttempts bounds the number of random boards tried per Generate
// call before falling back to the curated catalogue.
const DefaultMaxAttempts = 400

// solveSlack is added to the band maximum when running the solver during
// generation, so a board slightly over the band is recognized as solvable
// rather than discarded as unsolvable.
const solveSlack = 5

// Config tunes a Generator. The zero value selects the defaults.
type Config struct {
	// Rows and Cols are the generated board dimensions; zero selects
	// engine.DefaultBoardSize.
	Rows int
	Cols int

	// MaxAttempts bounds random candidates per Generate call; zero selects
	// DefaultMaxAttempts.
	MaxAttempts int

	// Rand is the randomness source; tests inject a seeded one for
	// reproducible runs. Nil selects a time-seeded source.
	Rand *rand.Rand

	// Fallbacks is the catalogue used when the attempt budget runs out;
	// nil selects engine.CuratedLayouts.
	Fallbacks []engine.BoardLayout
}

// Puzzle is a generated, verified-solvable board together with its solver
// verdict and generation provenance.
type Puzzle struct {
	Board        *engine.Board
	Name         string
	Difficulty   Difficulty
	OptimalMoves int

	// Attempts is how many random candidates were tried, including the
	// accepted one. Fallback marks a puzzle served from the curated
	// catalogue after the budget ran out.
	Attempts int
	Fallback bool
}

// Layout converts the puzzle to its persistable layout form.
func (p *Puzzle) Layout() *engine.BoardLayout {
	l := engine.LayoutFromBoard(p.Board, p.Name, string(p.Difficulty))
	l.OptimalMoves = p.OptimalMoves
	return l
}

// Generator produces solvable puzzles whose optimal solution length targets
// a difficulty band. Generate never fails once the difficulty is valid: when
// no random candidate lands in the band within the attempt budget it serves
// the closest solvable curated layout instead.
type Generator struct {
	rows, cols  int
	maxAttempts int
	rng         *rand.Rand
	fallbacks   []engine.BoardLayout
}

// New creates a generator from the config, applying defaults for zero
// fields.
func New(cfg Config) *Generator {
	g := &Generator{
		rows:        cfg.Rows,
		cols:        cfg.Cols,
		maxAttempts: cfg.MaxAttempts,
		rng:         cfg.Rand,
		fallbacks:   cfg.Fallbacks,
	}
	if g.rows == 0 {
		g.rows = engine.DefaultBoardSize
	}
	if g.cols == 0 {
		g.cols = engine.DefaultBoardSize
	}
	if g.maxAttempts == 0 {
		g.maxAttempts = DefaultMaxAttempts
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.fallbacks == nil {
		g.fallbacks = engine.CuratedLayouts()
	}
	return g
}

// Generate produces a solvable puzzle for the difficulty. Random candidates
// are tried until one's optimal solution lands inside the difficulty band;
// if the attempt budget runs out, the best solvable fallback layout is
// returned with its Fallback flag set.
func (g *Generator) Generate(d Difficulty) (*Puzzle, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", d)
	}
	band := d.Band()

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		board, err := g.randomBoard()
		if err != nil {
			continue
		}
		if !allReachable(board) {
			continue
		}
		moves, ok := engine.Solve(board, band.Max+solveSlack)
		if !ok || !band.Contains(moves) {
			continue
		}
		return &Puzzle{
			Board:        board,
			Name:         fmt.Sprintf("Procedural %s #%d", d, attempt),
			Difficulty:   d,
			OptimalMoves: moves,
			Attempts:     attempt,
		}, nil
	}

	return g.fallback(d)
}

// randomBoard builds one candidate: corner wall islands plus mid-edge walls
// for structure, then random distinct placements. Candidates where the goal
// sits one unobstructed step from the start are rejected outright.
func (g *Generator) randomBoard() (*engine.Board, error) {
	bb := engine.NewBoardBuilder(g.rows, g.cols)
	bb.AddBorderWalls()
	g.seedWalls(bb)

	cells := make([]engine.Position, 0, g.rows*g.cols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cells = append(cells, engine.Position{Row: r, Col: c})
		}
	}
	g.rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})

	start, goal, amber, violet := cells[0], cells[1], cells[2], cells[3]
	bb.PlaceStart(start)
	bb.PlaceGoal(goal)
	bb.PlaceAmber(amber)
	bb.PlaceViolet(violet)

	board, err := bb.Build()
	if err != nil {
		return nil, err
	}
	if engine.NewEdgeWall(start, goal).Adjacent() && !board.HasWallBetween(start, goal) {
		return nil, fmt.Errorf("goal adjacent to start")
	}
	return board, nil
}

// seedWalls places an L-shaped two-wall island in each corner quadrant and
// one wall at the middle of each border edge. Each island picks one of four
// orientations at random; the rest of the board's character comes from the
// random placements.
func (g *Generator) seedWalls(bb *engine.BoardBuilder) {
	islands := [][2]int{
		{0, 0},
		{0, g.cols - 2},
		{g.rows - 2, 0},
		{g.rows - 2, g.cols - 2},
	}
	for _, base := range islands {
		r, c := base[0], base[1]
		configs := [4][2][2]engine.Position{
			{
				{{Row: r, Col: c}, {Row: r, Col: c + 1}},
				{{Row: r, Col: c}, {Row: r + 1, Col: c}},
			},
			{
				{{Row: r, Col: c + 1}, {Row: r, Col: c}},
				{{Row: r, Col: c + 1}, {Row: r + 1, Col: c + 1}},
			},
			{
				{{Row: r + 1, Col: c}, {Row: r, Col: c}},
				{{Row: r + 1, Col: c}, {Row: r + 1, Col: c + 1}},
			},
			{
				{{Row: r + 1, Col: c + 1}, {Row: r + 1, Col: c}},
				{{Row: r + 1, Col: c + 1}, {Row: r, Col: c + 1}},
			},
		}
		pick := configs[g.rng.Intn(len(configs))]
		for _, w := range pick {
			bb.AddWall(w[0], w[1])
		}
	}

	midC, midR := g.cols/2, g.rows/2
	edges := [4][2]engine.Position{
		{{Row: 0, Col: midC - 1}, {Row: 0, Col: midC}},
		{{Row: g.rows - 1, Col: midC - 1}, {Row: g.rows - 1, Col: midC}},
		{{Row: midR - 1, Col: 0}, {Row: midR, Col: 0}},
		{{Row: midR - 1, Col: g.cols - 1}, {Row: midR, Col: g.cols - 1}},
	}
	for _, w := range edges {
		bb.AddWall(w[0], w[1])
	}
}

// allReachable flood-fills cell adjacency from the start and checks that the
// collectibles and goal share its component. This is a cheap prefilter: a
// board failing it can never be solved, so the solver is not run at all.
func allReachable(b *engine.Board) bool {
	visited := map[engine.Position]bool{b.Start(): true}
	frontier := []engine.Position{b.Start()}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		for _, dir := range engine.AllDirections {
			next := cur.Step(dir)
			if !b.InBounds(next) || b.HasWallBetween(cur, next) || visited[next] {
				continue
			}
			visited[next] = true
			frontier = append(frontier, next)
		}
	}
	return visited[b.Amber()] && visited[b.Violet()] && visited[b.Goal()]
}

// fallback serves the best curated layout for the difficulty: solvable and
// in-band if possible, otherwise the solvable layout whose optimal is
// closest to the band. As a last resort it builds an open board that is
// always solvable.
func (g *Generator) fallback(d Difficulty) (*Puzzle, error) {
	band := d.Band()

	var best *Puzzle
	bestDist := -1
	for i := range g.fallbacks {
		l := g.fallbacks[i]
		board, err := l.Build()
		if err != nil {
			continue
		}
		moves, ok := engine.Solve(board, engine.DefaultMaxMoves)
		if !ok {
			continue
		}
		dist := 0
		switch {
		case moves < band.Min:
			dist = band.Min - moves
		case moves > band.Max:
			dist = moves - band.Max
		}
		if best == nil || dist < bestDist {
			best = &Puzzle{
				Board:        board,
				Name:         l.Name,
				Difficulty:   d,
				OptimalMoves: moves,
				Attempts:     g.maxAttempts,
				Fallback:     true,
			}
			bestDist = dist
		}
		if dist == 0 {
			break
		}
	}
	if best != nil {
		return best, nil
	}
	return g.openFallback(d)
}

// openFallback is the unconditional floor: an open board with the four
// objects on the corners, solvable in three slides from any catalogue state.
func (g *Generator) openFallback(d Difficulty) (*Puzzle, error) {
	bb := engine.NewBoardBuilder(g.rows, g.cols)
	bb.AddBorderWalls()
	bb.PlaceStart(engine.Position{Row: 0, Col: 0})
	bb.PlaceAmber(engine.Position{Row: 0, Col: g.cols - 1})
	bb.PlaceViolet(engine.Position{Row: g.rows - 1, Col: g.cols - 1})
	bb.PlaceGoal(engine.Position{Row: g.rows - 1, Col: 0})
	board, err := bb.Build()
	if err != nil {
		return nil, fmt.Errorf("fallback board construction: %w", err)
	}
	moves, _ := engine.Solve(board, engine.DefaultMaxMoves)
	return &Puzzle{
		Board:        board,
		Name:         "Open Run",
		Difficulty:   d,
		OptimalMoves: moves,
		Attempts:     g.maxAttempts,
		Fallback:     true,
	}, nil
}
