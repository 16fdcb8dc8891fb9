package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"slate/internal/bulk"
	"slate/internal/refresh"
)

var moveCmd = &cobra.Command{
	Use:   "move <id>... <column>",
	Short: "Move tasks to a column",
	Long:  "Moves one or more tasks to the named column. Moving a recurring task\ninto a completed column schedules its next occurrence.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMove,
}

func runMove(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies(configPath)
	if err != nil {
		return err
	}
	defer deps.Close()

	ctx := cmd.Context()
	ids, target := args[:len(args)-1], args[len(args)-1]

	snap, err := deps.Store.GetAll(ctx)
	if err != nil {
		return err
	}
	if _, ok := snap.Index.Column(target); !ok {
		return fmt.Errorf("unknown column %q", target)
	}

	coord := bulk.NewCoordinator(deps.Store, refresh.NewSequencer(deps.Logger), deps.Logger)
	created, err := coord.Move(ctx, &snap, ids, target)
	if err != nil {
		return err
	}

	fmt.Printf("Moved %d task(s) to %s\n", len(ids), target)
	for _, id := range created {
		fmt.Printf("Scheduled next occurrence: %s\n", id)
	}
	return nil
}
