package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"slate/internal/domain"
)

var sprintDescription string

var sprintCmd = &cobra.Command{
	Use:   "sprint <name>",
	Short: "Start a sprint",
	Long:  "Names the current sprint and stamps today as its start date. The sprint\nis shown in the board's status bar.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSprint,
}

func init() {
	sprintCmd.Flags().StringVarP(&sprintDescription, "description", "d", "", "sprint description")
}

func runSprint(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies(configPath)
	if err != nil {
		return err
	}
	defer deps.Close()

	sp := domain.Sprint{
		Name:        args[0],
		Description: sprintDescription,
		Start:       time.Now().Format(domain.DefaultDateFormat),
	}
	if err := deps.Store.SetSprint(cmd.Context(), sp); err != nil {
		return err
	}
	fmt.Printf("Sprint %q started %s\n", sp.Name, sp.Start)
	return nil
}
