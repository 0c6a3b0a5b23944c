// Command analyze prints quick, human-readable heuristics about the curated
// puzzle catalogue and any layout files in the configs directory. It
// summarizes dimensions, wall density, reachable area, and solver results,
// and highlights layouts whose difficulty label disagrees with the measured
// solution length.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Edju03/Richochet/game/engine"
	"github.com/Edju03/Richochet/game/generator"
)

func main() {
	layouts := engine.CuratedLayouts()

	layoutDir := "configs"
	if len(os.Args) > 1 {
		layoutDir = os.Args[1]
	}
	if files, err := filepath.Glob(filepath.Join(layoutDir, "*.json")); err == nil {
		for _, file := range files {
			layout, err := engine.LoadLayout(file)
			if err != nil {
				fmt.Printf("Skipping %s: %v\n", file, err)
				continue
			}
			layouts = append(layouts, *layout)
		}
	}

	for _, layout := range layouts {
		fmt.Printf("\n=== Analyzing %s ===\n", layout.Name)
		analyzeLayout(&layout)
	}
}

func analyzeLayout(layout *engine.BoardLayout) {
	board, err := layout.Build()
	if err != nil {
		fmt.Printf("Error building board: %v\n", err)
		return
	}

	fmt.Printf("Grid Size: %d x %d\n", layout.Rows, layout.Cols)
	fmt.Printf("Interior Walls: %d\n", len(layout.Walls))
	fmt.Printf("Start: %s  Amber: %s  Violet: %s  Goal: %s\n",
		board.Start(), board.Amber(), board.Violet(), board.Goal())

	// Reachable area by single steps. Cells outside this component can never
	// be crossed by a slide.
	reachable := reachableCells(board)
	total := layout.Rows * layout.Cols
	fmt.Printf("Reachable Area: %d/%d cells\n", len(reachable), total)
	if len(reachable) < total {
		fmt.Printf("⚠️  WARNING: %d cells are walled off from the start\n", total-len(reachable))
	}

	// Count distinct stopping positions: where a slide from a reachable cell
	// can actually end. A small stop set means a cramped puzzle.
	stops := map[engine.Position]bool{board.Start(): true}
	for pos := range reachable {
		for _, dir := range engine.AllDirections {
			stop, _ := board.Slide(pos, dir)
			stops[stop] = true
		}
	}
	fmt.Printf("Stopping Positions: %d\n", len(stops))

	optimal, solvable := engine.Solve(board, engine.DefaultMaxMoves)
	if !solvable {
		fmt.Printf("⚠️  CRITICAL: unsolvable within %d moves\n", engine.DefaultMaxMoves)
		return
	}
	fmt.Printf("Optimal Solution: %d moves\n", optimal)

	if directions, ok := engine.SolveDirections(board, engine.DefaultMaxMoves); ok {
		fmt.Printf("Solution Line: ")
		for i, dir := range directions {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(dir)
		}
		fmt.Println()
	}

	// Compare the declared difficulty label against the measured band.
	if layout.Difficulty != "" {
		if d, err := generator.ParseDifficulty(layout.Difficulty); err == nil {
			band := d.Band()
			if band.Contains(optimal) {
				fmt.Printf("✅ Difficulty %q matches the measured band [%d,%d]\n", layout.Difficulty, band.Min, band.Max)
			} else {
				fmt.Printf("⚠️  Difficulty %q declared but optimal %d is outside [%d,%d]\n",
					layout.Difficulty, optimal, band.Min, band.Max)
			}
		}
	}
}

func reachableCells(b *engine.Board) map[engine.Position]bool {
	visited := map[engine.Position]bool{b.Start(): true}
	queue := []engine.Position{b.Start()}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dir := range engine.AllDirections {
			next := cur.Step(dir)
			if !b.InBounds(next) || visited[next] || b.HasWallBetween(cur, next) {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return visited
}
