// Package scores keeps the fewest-moves record for each difficulty on top
// of a string key-value store.
package scores

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/conorfennell/flipmatch/internal/domain"
)

// NotAvailable is displayed when no best score is stored.
const NotAvailable = "N/A"

// Store is the persistence surface: string values looked up by key. A
// missing key is reported with ok == false, not an error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Key returns the storage key for d, e.g. "bestScoreEasy".
func Key(d domain.Difficulty) string {
	return "bestScore" + d.Title()
}

// Tracker reads and updates best scores.
type Tracker struct {
	store Store
}

// NewTracker returns a Tracker backed by store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// Best returns the stored record for d. Values that do not parse as a
// non-negative integer are treated as absent.
func (t *Tracker) Best(d domain.Difficulty) (int, bool, error) {
	raw, ok, err := t.store.Get(Key(d))
	if err != nil {
		return 0, false, fmt.Errorf("failed to read best score for %s: %w", d, err)
	}
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, false, nil
	}
	return n, true, nil
}

// RecordResult stores moves as the new best for d when nothing is stored
// yet or moves is strictly lower. It reports whether the record changed.
func (t *Tracker) RecordResult(d domain.Difficulty, moves int) (bool, error) {
	best, ok, err := t.Best(d)
	if err != nil {
		return false, err
	}
	if ok && moves >= best {
		return false, nil
	}
	if err := t.store.Set(Key(d), strconv.Itoa(moves)); err != nil {
		return false, fmt.Errorf("failed to store best score for %s: %w", d, err)
	}
	return true, nil
}

// Display returns the record for d as text, or NotAvailable.
func (t *Tracker) Display(d domain.Difficulty) string {
	best, ok, err := t.Best(d)
	if err != nil || !ok {
		return NotAvailable
	}
	return strconv.Itoa(best)
}

// MemoryStore is a Store held in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
