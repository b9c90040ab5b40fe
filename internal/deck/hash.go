package deck

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize joins the deck layout into a single string, one icon per line,
// after trimming surrounding whitespace from each icon.
func Normalize(cards []string) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = strings.TrimSpace(c)
	}
	return strings.Join(parts, "\n")
}

// Hash returns the SHA-256 of the normalized layout as a hex string. Two
// decks hash equal only if they hold the same icons in the same order.
func Hash(cards []string) string {
	sum := sha256.Sum256([]byte(Normalize(cards)))
	return fmt.Sprintf("%x", sum)
}
