package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/conorfennell/flipmatch/internal/config"
	"github.com/conorfennell/flipmatch/internal/console"
	"github.com/conorfennell/flipmatch/internal/deck"
	"github.com/conorfennell/flipmatch/internal/domain"
	"github.com/conorfennell/flipmatch/internal/form"
	"github.com/conorfennell/flipmatch/internal/game"
	"github.com/conorfennell/flipmatch/internal/parser"
	"github.com/conorfennell/flipmatch/internal/scores"
	"github.com/conorfennell/flipmatch/internal/storage"
)

func main() {
	// 1. Load configuration from flags, environment and an optional file
	cfg, err := config.Load(config.NewFlagSet(os.Args[0]), os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// 2. Open the best-score store
	db, err := storage.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	logger.Debug("Database opened", "path", cfg.DB)
	tracker := scores.NewTracker(db)

	// 3. Pick the icon pool
	icons := deck.DefaultIcons
	if cfg.Icons != "" {
		icons, err = parser.ParseFile(cfg.Icons)
		if err != nil {
			log.Fatalf("Failed to read icon pool %s: %v", cfg.Icons, err)
		}
		logger.Info("Loaded icon pool", "path", cfg.Icons, "icons", len(icons))
	}

	// 4. Build the game and the front end
	difficulty, err := domain.ParseDifficulty(cfg.Difficulty)
	if err != nil {
		log.Fatalf("Invalid difficulty: %v", err)
	}

	var con *console.Console
	g, err := game.New(difficulty,
		game.WithIcons(icons),
		game.WithTracker(tracker),
		game.WithLogger(logger),
		game.WithOnChange(func(s game.Snapshot) { con.OnChange(s) }),
	)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}
	if err := g.Configure(difficulty); err != nil {
		log.Fatalf("Failed to configure game: %v", err)
	}

	con, err = console.New(g, form.New(form.NewValidator()), tracker, os.Stdout, logger)
	if err != nil {
		log.Fatalf("Failed to create console: %v", err)
	}

	// 5. Show the initial state and hand over to the command loop
	fmt.Println(`Type "help" for commands.`)
	for _, cmd := range []string{"best", "board"} {
		if err := con.Execute(cmd); err != nil {
			log.Fatalf("Failed to render %s: %v", cmd, err)
		}
	}
	if err := con.Run(os.Stdin); err != nil {
		log.Fatalf("Error reading input: %v", err)
	}
}
