package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizrogue/internal/app"
	"github.com/abhisek/quizrogue/internal/config"
	"github.com/abhisek/quizrogue/internal/game"
	"github.com/abhisek/quizrogue/internal/screens/battle"
	"github.com/abhisek/quizrogue/internal/screens/home"
	"github.com/abhisek/quizrogue/internal/store"
)

// runTarget optionally starts the TUI directly in a battle.
type runTarget struct {
	DocumentID int64
	SaveID     int64
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, target runTarget) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// The terminal belongs to the TUI, so logs go to a file beside the DB.
	logOut, closeLog := tuiLogFile(dbPath)
	defer closeLog()
	logger := cfg.NewLogger(logOut)

	engine := game.NewEngine(cfg.GameBalance(), st.Questions(), st.Saves(), st.Stats(),
		game.WithLogger(logger))

	deps := battle.Deps{Engine: engine, Questions: st.Questions(), Logger: logger}
	return app.Run(app.Options{
		Home: home.Deps{
			Battle:    deps,
			Documents: st.Documents(),
			Saves:     st.Saves(),
		},
		DocumentID: target.DocumentID,
		SaveID:     target.SaveID,
	})
}

func tuiLogFile(dbPath string) (io.Writer, func()) {
	f, err := os.OpenFile(filepath.Join(filepath.Dir(dbPath), "quizrogue.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}

// cliLogger is the stderr logger used by the non-interactive commands.
func cliLogger() *slog.Logger {
	cfg, err := config.Load()
	if err != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return cfg.NewLogger(os.Stderr)
}
