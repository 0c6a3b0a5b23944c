package generator

import (
	"fmt"
	"strings"
)

// Difficulty selects the target band for a generated puzzle's optimal
// solution length.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// AllDifficulties lists the supported difficulties in ascending order.
var AllDifficulties = []Difficulty{Easy, Medium, Hard}

// Band is an inclusive range of optimal move counts. A puzzle fits the band
// when Min <= optimal <= Max.
type Band struct {
	Min int
	Max int
}

// Contains reports whether the move count falls inside the band.
func (b Band) Contains(moves int) bool {
	return moves >= b.Min && moves <= b.Max
}

var bands = map[Difficulty]Band{
	Easy:   {Min: 6, Max: 10},
	Medium: {Min: 10, Max: 14},
	Hard:   {Min: 14, Max: 20},
}

// Band returns the target optimal-move range for the difficulty.
func (d Difficulty) Band() Band { return bands[d] }

// Valid reports whether the difficulty is one of the supported levels.
func (d Difficulty) Valid() bool {
	_, ok := bands[d]
	return ok
}

// ParseDifficulty parses a difficulty name case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
	}
	return d, nil
}
