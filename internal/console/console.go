// Package console is the terminal front end. It reads one command per line,
// turns it into form and game operations, and renders the outcome through
// embedded text templates.
package console

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"github.com/conorfennell/flipmatch/internal/domain"
	"github.com/conorfennell/flipmatch/internal/form"
	"github.com/conorfennell/flipmatch/internal/game"
	"github.com/conorfennell/flipmatch/internal/rating"
	"github.com/conorfennell/flipmatch/internal/scores"
)

//go:embed all:templates
var templateFiles embed.FS

// errQuit ends Run.
var errQuit = errors.New("quit")

type handler func(args []string) error

// Console holds the dependencies of the terminal front end.
type Console struct {
	game      *game.Game
	form      *form.Form
	tracker   *scores.Tracker
	templates *template.Template
	commands  map[string]handler
	logger    *slog.Logger

	mu          sync.Mutex // guards out and revealRound
	out         io.Writer
	revealRound string // round whose mismatched pair is still face up
}

// New creates and configures a new console writing to out.
func New(g *game.Game, f *form.Form, tracker *scores.Tracker, out io.Writer, logger *slog.Logger) (*Console, error) {
	tpl, err := template.New("").Funcs(template.FuncMap{
		"rows": rows,
		"cell": cell,
	}).ParseFS(templateFiles, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	c := &Console{
		game:      g,
		form:      f,
		tracker:   tracker,
		templates: tpl,
		logger:    logger,
		out:       out,
	}
	c.routes()
	return c, nil
}

// routes sets up the command table.
func (c *Console) routes() {
	c.commands = map[string]handler{
		"help":       c.handleHelp,
		"board":      c.handleBoard,
		"start":      c.handleStart,
		"reset":      c.handleReset,
		"difficulty": c.handleDifficulty,
		"flip":       c.handleFlip,
		"best":       c.handleBest,
		"set":        c.handleSet,
		"blur":       c.handleBlur,
		"rate":       c.handleRate,
		"form":       c.handleForm,
		"submit":     c.handleSubmit,
		"quit":       func([]string) error { return errQuit },
		"exit":       func([]string) error { return errQuit },
	}
}

// Run executes commands from in until it is exhausted or a quit command is
// read. Command errors are printed and do not stop the loop.
func (c *Console) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := c.Execute(scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			c.printf("Klaida: %v\n", err)
		}
	}
	return scanner.Err()
}

// Execute runs a single command line. Blank lines are ignored.
func (c *Console) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := strings.ToLower(fields[0])
	h, ok := c.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q (try \"help\")", name)
	}
	c.logger.Debug("command", "name", name, "args", len(fields)-1)
	return h(fields[1:])
}

// OnChange receives deferred game transitions. It redraws the board once a
// mismatched pair has been turned back; timer ticks are not echoed. A
// snapshot from a later round drops the pending notice.
func (c *Console) OnChange(s game.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.revealRound == "" || s.State == game.Locked {
		return
	}
	if s.RoundID != c.revealRound {
		c.revealRound = ""
		return
	}
	c.revealRound = ""
	c.renderLocked("revealed", nil)
	c.renderLocked("board", s)
}

// dropReveal forgets a pending reveal notice once its round is replaced.
func (c *Console) dropReveal() {
	c.mu.Lock()
	c.revealRound = ""
	c.mu.Unlock()
}

func (c *Console) render(name string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderLocked(name, data)
}

func (c *Console) renderLocked(name string, data any) {
	if err := c.templates.ExecuteTemplate(c.out, name, data); err != nil {
		c.logger.Error("Failed to render template", "template", name, "error", err)
	}
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) handleHelp([]string) error {
	c.render("help", nil)
	return nil
}

func (c *Console) handleBoard([]string) error {
	c.render("board", c.game.Snapshot())
	return nil
}

func (c *Console) handleStart([]string) error {
	if !c.game.Start() {
		c.printf("Žaidimas jau vyksta.\n")
		return nil
	}
	c.dropReveal()
	c.render("board", c.game.Snapshot())
	return nil
}

func (c *Console) handleReset([]string) error {
	c.game.Restart()
	c.dropReveal()
	c.render("board", c.game.Snapshot())
	return nil
}

func (c *Console) handleDifficulty(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: difficulty easy|hard")
	}
	d, err := domain.ParseDifficulty(args[0])
	if err != nil {
		return err
	}
	if err := c.game.Configure(d); err != nil {
		return err
	}
	c.dropReveal()
	c.render("board", c.game.Snapshot())
	return nil
}

func (c *Console) handleFlip(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: flip N")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid card number %q", args[0])
	}

	res := c.game.Flip(n - 1)
	if res.Outcome == game.Ignored {
		c.printf("Ėjimas ignoruotas.\n")
		return nil
	}

	snap := c.game.Snapshot()
	if res.Outcome == game.Mismatched && snap.State == game.Locked {
		c.mu.Lock()
		c.revealRound = snap.RoundID
		c.mu.Unlock()
	}
	c.render("board", snap)
	if res.Outcome == game.Completed {
		c.render("win", res.Result)
		c.render("best", c.bestRows())
	}
	return nil
}

type bestRow struct {
	Difficulty domain.Difficulty
	Score      string
}

func (c *Console) bestRows() []bestRow {
	var out []bestRow
	for _, d := range domain.Difficulties() {
		out = append(out, bestRow{Difficulty: d, Score: c.tracker.Display(d)})
	}
	return out
}

func (c *Console) handleBest([]string) error {
	c.render("best", c.bestRows())
	return nil
}

func parseField(s string) (form.Field, error) {
	f := form.Field(strings.ToLower(s))
	for _, known := range form.Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", s)
}

func (c *Console) handleSet(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: set FIELD VALUE")
	}
	field, err := parseField(args[0])
	if err != nil {
		return err
	}
	res := c.form.Input(field, strings.Join(args[1:], " "))
	c.render("field", res)
	return nil
}

func (c *Console) handleBlur(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: blur FIELD")
	}
	field, err := parseField(args[0])
	if err != nil {
		return err
	}
	c.render("field", c.form.Blur(field))
	return nil
}

func (c *Console) handleRate(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: rate rating1|rating2|rating3 VALUE")
	}
	name := strings.ToLower(args[0])
	if n, err := strconv.Atoi(name); err == nil && n >= 1 && n <= len(rating.Names) {
		name = rating.Names[n-1]
	}
	r, err := c.form.SetRating(name, args[1])
	if err != nil {
		return err
	}
	c.printf("%s: %s\n", name, r)
	return nil
}

type formRow struct {
	Name  string
	Value string
}

type formView struct {
	Fields  []formRow
	Ratings []formRow
	Enabled bool
}

func (c *Console) handleForm([]string) error {
	var v formView
	for _, f := range form.Fields {
		v.Fields = append(v.Fields, formRow{Name: string(f), Value: c.form.Value(f)})
	}
	for i, r := range c.form.Ratings() {
		v.Ratings = append(v.Ratings, formRow{Name: rating.Names[i], Value: r.String()})
	}
	v.Enabled = c.form.Valid()
	c.render("form", v)
	return nil
}

func (c *Console) handleSubmit([]string) error {
	summary, failed := c.form.Submit()
	if summary == nil {
		c.render("errors", failed)
		return nil
	}
	c.logger.Info("form submitted", "fields", len(summary.Fields), "average", summary.Average)
	c.render("summary", summary)
	return nil
}

type cellView struct {
	Number int
	Card   domain.Card
}

// rows splits the board into lines of s.Columns cards, numbered from 1.
func rows(s game.Snapshot) [][]cellView {
	cols := s.Columns
	if cols <= 0 {
		cols = len(s.Cards)
	}
	var out [][]cellView
	for start := 0; start < len(s.Cards); start += cols {
		end := min(start+cols, len(s.Cards))
		row := make([]cellView, 0, end-start)
		for i := start; i < end; i++ {
			row = append(row, cellView{Number: i + 1, Card: s.Cards[i]})
		}
		out = append(out, row)
	}
	return out
}

func cell(v cellView) string {
	switch {
	case v.Card.Matched:
		return fmt.Sprintf("(%s) ", v.Card.Icon)
	case v.Card.FaceUp:
		return fmt.Sprintf("[%s] ", v.Card.Icon)
	}
	return fmt.Sprintf("[%2d] ", v.Number)
}
