// Command ricochet is a terminal companion for working with puzzles offline:
// it generates boards, solves layout files, and renders them without running
// the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/Edju03/Richochet/game/engine"
	"github.com/Edju03/Richochet/game/generator"
)

func main() {
	cmd := &cli.Command{
		Name:  "ricochet",
		Usage: "generate, solve and inspect ricochet puzzles",
		Commands: []*cli.Command{
			generateCommand(),
			solveCommand(),
			showCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "generate a puzzle for a difficulty band",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "difficulty",
				Value: "medium",
				Usage: "easy, medium or hard",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "random seed (0 uses the clock)",
			},
			&cli.IntFlag{
				Name:  "rows",
				Value: engine.DefaultBoardSize,
				Usage: "board rows",
			},
			&cli.IntFlag{
				Name:  "cols",
				Value: engine.DefaultBoardSize,
				Usage: "board cols",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "write the layout JSON to this file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			difficulty, err := generator.ParseDifficulty(cmd.String("difficulty"))
			if err != nil {
				return err
			}

			seed := int64(cmd.Int("seed"))
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			gen := generator.New(generator.Config{
				Rows: int(cmd.Int("rows")),
				Cols: int(cmd.Int("cols")),
				Rand: rand.New(rand.NewSource(seed)),
			})

			puzzle, err := gen.Generate(difficulty)
			if err != nil {
				return err
			}

			fmt.Printf("%s (%s, optimal %d moves, %d attempts)\n",
				puzzle.Name, puzzle.Difficulty, puzzle.OptimalMoves, puzzle.Attempts)
			if puzzle.Fallback {
				fmt.Println("Served from the curated catalogue (generation budget exhausted).")
			}
			fmt.Println()
			fmt.Println(puzzle.Board.String())

			if out := cmd.String("out"); out != "" {
				data, err := json.MarshalIndent(puzzle.Layout(), "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, data, 0644); err != nil {
					return err
				}
				fmt.Printf("Layout written to %s\n", out)
			}
			return nil
		},
	}
}

func solveCommand() *cli.Command {
	return &cli.Command{
		Name:      "solve",
		Usage:     "solve a layout file and print the optimal line",
		ArgsUsage: "<layout.json>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-moves",
				Value: engine.DefaultMaxMoves,
				Usage: "search depth budget",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			board, layout, err := loadBoard(cmd.Args().First())
			if err != nil {
				return err
			}

			maxMoves := int(cmd.Int("max-moves"))
			directions, ok := engine.SolveDirections(board, maxMoves)
			if !ok {
				return fmt.Errorf("%s is unsolvable within %d moves", layout.Name, maxMoves)
			}

			fmt.Printf("%s: optimal %d moves\n", layout.Name, len(directions))
			for i, dir := range directions {
				fmt.Printf("  %d. %s\n", i+1, dir)
			}
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "render a layout file",
		ArgsUsage: "<layout.json>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			board, layout, err := loadBoard(cmd.Args().First())
			if err != nil {
				return err
			}

			fmt.Printf("%s (%dx%d)\n", layout.Name, layout.Rows, layout.Cols)
			if layout.Description != "" {
				fmt.Println(layout.Description)
			}
			fmt.Println()
			fmt.Println(board.String())
			fmt.Printf("Start %s, amber %s, violet %s, goal %s, %d interior walls\n",
				board.Start(), board.Amber(), board.Violet(), board.Goal(), len(layout.Walls))
			return nil
		},
	}
}

// loadBoard resolves a path argument to a curated layout name when no file
// exists with that name, so "ricochet show 'Open Run'" works too.
func loadBoard(arg string) (*engine.Board, *engine.BoardLayout, error) {
	if arg == "" {
		return nil, nil, fmt.Errorf("a layout file or curated layout name is required")
	}

	if _, err := os.Stat(arg); err == nil {
		layout, err := engine.LoadLayout(arg)
		if err != nil {
			return nil, nil, err
		}
		board, err := layout.Build()
		return board, layout, err
	}

	for _, layout := range engine.CuratedLayouts() {
		if layout.Name == arg {
			board, err := layout.Build()
			return board, &layout, err
		}
	}
	return nil, nil, fmt.Errorf("no layout file or curated layout named %q", arg)
}
