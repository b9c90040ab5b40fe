// Package deck builds shuffled memory-game decks from an icon pool.
package deck

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
)

// ErrPoolTooSmall is returned when the icon pool cannot supply enough
// distinct icons for the requested number of pairs.
var ErrPoolTooSmall = errors.New("icon pool too small")

// DefaultIcons is the built-in pool. Twelve icons cover the largest board.
var DefaultIcons = []string{
	"😀", "😎", "🐶", "🍕", "🚗", "🚀", "⭐", "🔥", "💡", "🎸", "⚽", "👑",
}

// Generate takes the first pairs icons of pool, duplicates them and
// shuffles the result.
func Generate(pool []string, pairs int, rng *rand.Rand) ([]string, error) {
	if pairs <= 0 {
		return nil, fmt.Errorf("invalid pair count %d", pairs)
	}
	if len(pool) < pairs {
		return nil, fmt.Errorf("%w: need %d icons, have %d", ErrPoolTooSmall, pairs, len(pool))
	}

	selected := pool[:pairs]
	seen := make(map[string]bool, pairs)
	for _, icon := range selected {
		if seen[icon] {
			return nil, fmt.Errorf("%w: icon %q repeats within the first %d", ErrPoolTooSmall, icon, pairs)
		}
		seen[icon] = true
	}

	cards := make([]string, 0, 2*pairs)
	cards = append(cards, selected...)
	cards = append(cards, selected...)
	Shuffle(cards, rng)
	return cards, nil
}

// Shuffle permutes cards in place using Fisher-Yates.
func Shuffle(cards []string, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// NewRand returns a generator seeded from crypto/rand.
func NewRand() (*rand.Rand, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("failed to read random seed: %w", err)
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(b[:])))), nil
}
