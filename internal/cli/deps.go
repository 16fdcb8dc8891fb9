package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"slate/internal/config"
	"slate/internal/store"
)

// Dependencies holds everything a command needs: loaded config, an open
// store, and a logger.
type Dependencies struct {
	Config *config.Config
	Store  *store.Store
	Logger *slog.Logger

	logFile *os.File
}

// NewDependencies loads the config, sets up logging, and opens the store.
// An empty path means the default config location.
func NewDependencies(path string) (*Dependencies, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	d := &Dependencies{Config: cfg}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		d.logFile = f
		d.Logger = slog.New(slog.NewTextHandler(f, nil))
	} else {
		d.Logger = slog.New(slog.DiscardHandler)
	}

	s, err := store.Open(cfg.Board.Path, d.Logger)
	if err != nil {
		d.closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := s.Init(context.Background(), store.BoardSpec{
		Name:        cfg.Board.Name,
		Description: cfg.Board.Description,
		Columns:     cfg.Board.Columns,
		Hidden:      cfg.Board.Hidden,
		Started:     cfg.Board.Started,
		Completed:   cfg.Board.Completed,
		DateFormat:  cfg.Board.DateFormat,
		Fields:      cfg.Board.Schema(),
	}); err != nil {
		s.Close()
		d.closeLog()
		return nil, fmt.Errorf("init board: %w", err)
	}
	d.Store = s
	return d, nil
}

// Close releases the store and the log file.
func (d *Dependencies) Close() error {
	err := d.Store.Close()
	d.closeLog()
	return err
}

func (d *Dependencies) closeLog() {
	if d.logFile != nil {
		d.logFile.Close()
	}
}
