// Package engine implements the core of the ricochet puzzle game: the board
// model, the slide movement resolver, the breadth-first optimal solver, and
// the runtime game engine.
//
// The board is a small grid with walls BETWEEN cells rather than on them: an
// EdgeWall blocks movement across the shared edge of two adjacent cells, and
// the outer border is modeled as explicit walls to off-grid cells. The robot
// does not step cell by cell; a move slides it in one cardinal direction
// until a wall or the border stops it, and every cell crossed during the
// slide counts for collection.
//
// Core Types:
//
// Board is an immutable, validated layout built via BoardBuilder or from a
// BoardLayout JSON file. GameState tracks a game in play and is owned by a
// GameEngine, which implements the Engine interface. Solve and
// SolveDirections run a bounded BFS over (position, collected-set) states;
// an unsolvable board is reported as a normal false result.
//
// Usage:
//
//	layout := engine.CuratedLayouts()[0]
//	board, err := layout.Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game, err := engine.NewEngine(board)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game.Move(engine.East)
//	if moves, ok := engine.Solve(board, engine.DefaultMaxMoves); ok {
//		log.Printf("optimal: %d", moves)
//	}
//
// Game Rules:
//
// The robot starts at the board's start position and must gather the amber
// and violet collectibles, in any order, before the goal counts. Items are
// collected by crossing their cell during a slide; stopping on them is not
// required. Crossing the goal before both collectibles are gathered has no
// effect.
package engine
