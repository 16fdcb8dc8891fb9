package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"slate/internal/bulk"
	"slate/internal/refresh"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <id>...",
	Short: "Archive tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArchive,
}

func runArchive(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies(configPath)
	if err != nil {
		return err
	}
	defer deps.Close()

	coord := bulk.NewCoordinator(deps.Store, refresh.NewSequencer(deps.Logger), deps.Logger)
	if err := coord.Archive(cmd.Context(), args); err != nil {
		return err
	}
	fmt.Printf("Archived %d task(s)\n", len(args))
	return nil
}
