// Package game implements the memory-matching card game as an explicit
// state machine. Callers drive it with Configure, Start, Flip, Reset and
// Restart; deferred work (the mismatch reveal and the once-per-second
// timer) runs through a clock.Clock and is discarded once the round it
// belongs to has been reset.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/flipmatch/internal/clock"
	"github.com/conorfennell/flipmatch/internal/deck"
	"github.com/conorfennell/flipmatch/internal/domain"
	"github.com/conorfennell/flipmatch/internal/scores"
)

const (
	// MismatchDelay is how long a mismatched pair stays face up.
	MismatchDelay = time.Second
	// TickInterval is the resolution of the elapsed-time counter.
	TickInterval = time.Second
)

// State is the phase of the current round.
type State int

const (
	Idle State = iota
	Ready
	Running
	Locked
	Won
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Locked:
		return "locked"
	case Won:
		return "won"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Option configures a Game.
type Option func(*Game)

// WithClock sets the clock used for the timer and the mismatch delay.
func WithClock(c clock.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithRand sets the random source used to shuffle decks.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithIcons replaces the built-in icon pool.
func WithIcons(pool []string) Option {
	return func(g *Game) { g.icons = pool }
}

// WithTracker enables best-score recording.
func WithTracker(t *scores.Tracker) Option {
	return func(g *Game) { g.tracker = t }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithOnChange registers f to be called after every deferred transition
// (timer tick, mismatch reveal). f runs without the game lock held and may
// call back into the Game.
func WithOnChange(f func(Snapshot)) Option {
	return func(g *Game) { g.onChange = f }
}

// Game is a single memory-game session. It is safe for concurrent use.
type Game struct {
	mu sync.Mutex

	clock    clock.Clock
	rng      *rand.Rand
	icons    []string
	tracker  *scores.Tracker
	logger   *slog.Logger
	onChange func(Snapshot)

	difficulty domain.Difficulty
	state      State
	cards      []domain.Card
	pending    int // index of the face-up card awaiting its partner, or -1
	moves      int
	matched    int
	elapsed    int // seconds
	generation uint64
	roundID    string

	tickTimer   clock.Timer
	revealTimer clock.Timer
}

// New returns an Idle game for difficulty. The icon pool must be large
// enough for every difficulty.
func New(difficulty domain.Difficulty, opts ...Option) (*Game, error) {
	d, err := domain.ParseDifficulty(string(difficulty))
	if err != nil {
		return nil, err
	}

	g := &Game{
		clock:      clock.Real{},
		icons:      deck.DefaultIcons,
		logger:     slog.Default(),
		difficulty: d,
		state:      Idle,
		pending:    -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		rng, err := deck.NewRand()
		if err != nil {
			return nil, err
		}
		g.rng = rng
	}

	for _, d := range domain.Difficulties() {
		if _, err := deck.Generate(g.icons, d.Preset().Pairs, g.rng); err != nil {
			return nil, fmt.Errorf("failed to prepare %s deck: %w", d, err)
		}
	}
	return g, nil
}

// Configure switches to difficulty and deals a fresh board without
// starting the timer. The game ends up Ready.
func (g *Game) Configure(difficulty domain.Difficulty) error {
	d, err := domain.ParseDifficulty(string(difficulty))
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.difficulty = d
	g.resetLocked()
	return nil
}

// Start deals a fresh board and starts the timer. It does nothing and
// returns false while a round is already in progress.
func (g *Game) Start() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.startLocked()
}

// Reset stops the round, zeroes the counters and deals a fresh board. It
// is valid in every state and leaves the game Ready.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
}

// Restart resets and immediately starts a new round.
func (g *Game) Restart() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
	g.run()
}

func (g *Game) startLocked() bool {
	if g.state == Running || g.state == Locked {
		return false
	}
	g.resetLocked()
	g.run()
	return true
}

// run starts the timer on a freshly dealt board.
func (g *Game) run() {
	g.state = Running
	g.scheduleTick(g.generation)
	g.logger.Info("round started", "round_id", g.roundID, "difficulty", g.difficulty)
}

func (g *Game) resetLocked() {
	g.stopTimers()
	g.generation++
	g.state = Ready
	g.moves = 0
	g.matched = 0
	g.elapsed = 0
	g.pending = -1
	g.deal()
	g.roundID = uuid.NewString()
	g.logger.Debug("board dealt",
		"round_id", g.roundID,
		"difficulty", g.difficulty,
		"deck_hash", deck.Hash(g.layout()),
	)
}

func (g *Game) deal() {
	icons, err := deck.Generate(g.icons, g.difficulty.Preset().Pairs, g.rng)
	if err != nil {
		// New has already generated a deck of every size from this pool.
		panic(fmt.Sprintf("game: %v", err))
	}
	g.cards = make([]domain.Card, len(icons))
	for i, icon := range icons {
		g.cards[i] = domain.Card{Icon: icon}
	}
}

// layout returns the icon tokens in board order.
func (g *Game) layout() []string {
	out := make([]string, len(g.cards))
	for i, c := range g.cards {
		out[i] = c.Icon
	}
	return out
}

func (g *Game) stopTimers() {
	if g.tickTimer != nil {
		g.tickTimer.Stop()
		g.tickTimer = nil
	}
	if g.revealTimer != nil {
		g.revealTimer.Stop()
		g.revealTimer = nil
	}
}

func (g *Game) scheduleTick(gen uint64) {
	g.tickTimer = g.clock.AfterFunc(TickInterval, func() { g.tick(gen) })
}

func (g *Game) tick(gen uint64) {
	g.mu.Lock()
	if gen != g.generation || (g.state != Running && g.state != Locked) {
		g.mu.Unlock()
		return
	}
	g.elapsed++
	g.scheduleTick(gen)
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)
}

func (g *Game) notify(snap Snapshot) {
	if g.onChange != nil {
		g.onChange(snap)
	}
}
