// Package generator produces solvable ricochet puzzles targeting a
// difficulty band.
//
// Difficulty is measured purely by the optimal solution length found by the
// engine's solver: easy is 6-10 moves, medium 10-14, hard 14-20. Each
// Generate call builds random candidate boards (wall islands in the corner
// quadrants, mid-edge walls, random object placements), prefilters them with
// a connectivity flood fill, and accepts the first candidate whose optimal
// falls inside the band. If the attempt budget runs out, a solvable layout
// from the curated catalogue is served instead and the puzzle's Fallback
// flag is set, so Generate never leaves the caller without a playable board.
//
// Randomness is injectable through Config.Rand, making generation
// reproducible under test.
package generator
