package game

import (
	"fmt"

	"github.com/conorfennell/flipmatch/internal/domain"
)

// Outcome says what a flip did.
type Outcome int

const (
	// Ignored means the flip had no effect.
	Ignored Outcome = iota
	// Revealed means the card is the first of a pair selection.
	Revealed
	// Matched means the card completed a matching pair.
	Matched
	// Mismatched means the pair differs and will be turned back.
	Mismatched
	// Completed means the card matched the last pair and the round is won.
	Completed
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Revealed:
		return "revealed"
	case Matched:
		return "matched"
	case Mismatched:
		return "mismatched"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// FlipResult reports the effect of one flip.
type FlipResult struct {
	Outcome      Outcome
	Moves        int
	MatchedPairs int
	// Result is set when Outcome is Completed.
	Result *Result
}

// Result summarizes a won round.
type Result struct {
	RoundID        string
	Difficulty     domain.Difficulty
	Moves          int
	ElapsedSeconds int
	NewBest        bool
}

// Time renders the elapsed time as "X min. Y sek.".
func (r Result) Time() string {
	return FormatDuration(r.ElapsedSeconds)
}

// FormatDuration renders seconds as "X min. Y sek.".
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d min. %d sek.", seconds/60, seconds%60)
}

// Flip turns over the card at index. Flips are only honoured while the
// round is Running; a matched card, the card already awaiting its partner
// and out-of-range indices are ignored.
func (g *Game) Flip(index int) FlipResult {
	g.mu.Lock()

	if g.state != Running || index < 0 || index >= len(g.cards) {
		return g.ignoreLocked()
	}
	card := &g.cards[index]
	if card.Matched || index == g.pending {
		return g.ignoreLocked()
	}

	card.FaceUp = true
	if g.pending < 0 {
		g.pending = index
		res := g.resultLocked(Revealed)
		g.mu.Unlock()
		return res
	}

	first := g.pending
	g.moves++

	if g.cards[first].Icon != card.Icon {
		g.state = Locked
		gen := g.generation
		g.revealTimer = g.clock.AfterFunc(MismatchDelay, func() { g.reveal(gen, first, index) })
		res := g.resultLocked(Mismatched)
		g.mu.Unlock()
		return res
	}

	g.cards[first].Matched = true
	card.Matched = true
	g.matched++
	g.pending = -1

	if g.matched < g.difficulty.Preset().Pairs {
		res := g.resultLocked(Matched)
		g.mu.Unlock()
		return res
	}

	g.state = Won
	g.stopTimers()
	res := g.resultLocked(Completed)
	won := &Result{
		RoundID:        g.roundID,
		Difficulty:     g.difficulty,
		Moves:          g.moves,
		ElapsedSeconds: g.elapsed,
	}
	g.mu.Unlock()

	won.NewBest = g.recordBest(won)
	g.logger.Info("round won",
		"round_id", won.RoundID,
		"difficulty", won.Difficulty,
		"moves", won.Moves,
		"elapsed", won.Time(),
		"new_best", won.NewBest,
	)
	res.Result = won
	return res
}

func (g *Game) ignoreLocked() FlipResult {
	res := g.resultLocked(Ignored)
	g.mu.Unlock()
	return res
}

func (g *Game) resultLocked(o Outcome) FlipResult {
	return FlipResult{Outcome: o, Moves: g.moves, MatchedPairs: g.matched}
}

func (g *Game) recordBest(r *Result) bool {
	if g.tracker == nil {
		return false
	}
	updated, err := g.tracker.RecordResult(r.Difficulty, r.Moves)
	if err != nil {
		g.logger.Warn("Failed to record best score", "round_id", r.RoundID, "error", err)
		return false
	}
	return updated
}

// reveal turns a mismatched pair face down again. It does nothing if the
// round it was scheduled for has since been reset.
func (g *Game) reveal(gen uint64, a, b int) {
	g.mu.Lock()
	if gen != g.generation || g.state != Locked {
		g.mu.Unlock()
		return
	}
	g.cards[a].FaceUp = false
	g.cards[b].FaceUp = false
	g.pending = -1
	g.state = Running
	g.revealTimer = nil
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)
}
