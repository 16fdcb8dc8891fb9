// Package cli wires the command-line surface: the TUI board plus a set of
// scriptable subcommands that operate on the same store.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"slate/internal/app"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "slate",
	Short: "A kanban board for the terminal",
	Long:  "slate is a terminal kanban board with filtering, per-column sorting,\nrecurring tasks and bulk operations. Run without arguments to open the board.",
	RunE:  runBoard,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(sprintCmd)
	rootCmd.AddCommand(sortCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies(configPath)
	if err != nil {
		return err
	}
	defer deps.Close()

	model := app.New(deps.Config, deps.Store, deps.Logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}
