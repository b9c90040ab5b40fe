package game

import (
	"fmt"

	"github.com/conorfennell/flipmatch/internal/domain"
)

// Snapshot is a copy of the session taken at one instant.
type Snapshot struct {
	RoundID        string
	State          State
	Difficulty     domain.Difficulty
	Columns        int
	Rows           int
	Cards          []domain.Card
	Moves          int
	MatchedPairs   int
	TotalPairs     int
	ElapsedSeconds int
}

// Progress renders matched pairs as "m / n".
func (s Snapshot) Progress() string {
	return fmt.Sprintf("%d / %d", s.MatchedPairs, s.TotalPairs)
}

// Timer renders the elapsed time as "MM:SS".
func (s Snapshot) Timer() string {
	return fmt.Sprintf("%02d:%02d", s.ElapsedSeconds/60, s.ElapsedSeconds%60)
}

// Snapshot returns the current session.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// State returns the current phase.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Difficulty returns the configured difficulty.
func (g *Game) Difficulty() domain.Difficulty {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.difficulty
}

func (g *Game) snapshotLocked() Snapshot {
	preset := g.difficulty.Preset()
	cards := make([]domain.Card, len(g.cards))
	copy(cards, g.cards)
	return Snapshot{
		RoundID:        g.roundID,
		State:          g.state,
		Difficulty:     g.difficulty,
		Columns:        preset.Columns,
		Rows:           preset.Rows,
		Cards:          cards,
		Moves:          g.moves,
		MatchedPairs:   g.matched,
		TotalPairs:     preset.Pairs,
		ElapsedSeconds: g.elapsed,
	}
}
