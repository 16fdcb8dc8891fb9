package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"slate/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config and create the board database",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg := config.DefaultConfig()
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	// Opening the store creates and seeds the database.
	deps, err := NewDependencies(path)
	if err != nil {
		return err
	}
	deps.Close()

	fmt.Printf("Wrote %s and created board %q at %s\n", path, cfg.Board.Name, cfg.Board.Path)
	return nil
}
