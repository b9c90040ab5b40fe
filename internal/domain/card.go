package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDifficulty is returned when a difficulty name has no preset.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty names one of the board presets.
type Difficulty string

const (
	Easy Difficulty = "easy"
	Hard Difficulty = "hard"
)

// Preset fixes the size and layout of a board.
type Preset struct {
	Pairs   int
	Columns int
	Rows    int
}

var presets = map[Difficulty]Preset{
	Easy: {Pairs: 6, Columns: 4, Rows: 3},  // 12 cards
	Hard: {Pairs: 12, Columns: 6, Rows: 4}, // 24 cards
}

// Difficulties lists the supported presets in display order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Hard}
}

// ParseDifficulty converts a user supplied name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := presets[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
	return d, nil
}

// Preset returns the board layout for d. Unknown values fall back to Easy.
func (d Difficulty) Preset() Preset {
	if p, ok := presets[d]; ok {
		return p
	}
	return presets[Easy]
}

// Title returns the name with its first letter upper-cased, e.g. "Easy".
func (d Difficulty) Title() string {
	s := string(d)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Card is a single position on the memory board.
type Card struct {
	Icon    string
	FaceUp  bool
	Matched bool
}
