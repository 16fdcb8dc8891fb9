package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"slate/internal/domain"
)

var addFlags struct {
	column      string
	description string
	priority    int
	due         string
	tags        []string
	assignee    string
	recur       string
	every       int
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	f := addCmd.Flags()
	f.StringVarP(&addFlags.column, "column", "c", "", "column to add the task to (default: first column)")
	f.StringVarP(&addFlags.description, "description", "d", "", "task description")
	f.IntVarP(&addFlags.priority, "priority", "p", 0, "priority (0-4)")
	f.StringVar(&addFlags.due, "due", "", "due date (DD/MM/YYYY)")
	f.StringSliceVarP(&addFlags.tags, "tag", "t", nil, "tag (repeatable)")
	f.StringVarP(&addFlags.assignee, "assignee", "a", "", "assignee")
	f.StringVar(&addFlags.recur, "recur", "", "recurrence: daily, weekly, monthly or annually")
	f.IntVar(&addFlags.every, "every", 1, "recurrence interval")
}

func runAdd(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies(configPath)
	if err != nil {
		return err
	}
	defer deps.Close()

	ctx := cmd.Context()
	snap, err := deps.Store.GetAll(ctx)
	if err != nil {
		return err
	}

	column := addFlags.column
	if column == "" {
		if len(snap.Index.Columns) == 0 {
			return fmt.Errorf("board has no columns")
		}
		column = snap.Index.Columns[0].Name
	}

	t := domain.Task{
		Name:        args[0],
		Description: addFlags.description,
		Column:      column,
	}
	t.Metadata.Priority = addFlags.priority
	t.Metadata.Assignee = addFlags.assignee
	t.Metadata.Tags = addFlags.tags

	if addFlags.due != "" {
		due, err := domain.ParseDate(addFlags.due)
		if err != nil {
			return fmt.Errorf("invalid due date %q: %w", addFlags.due, err)
		}
		t.Metadata.Due = &due
	}

	if addFlags.recur != "" {
		rt := domain.RecurrenceType(strings.ToLower(addFlags.recur))
		switch rt {
		case domain.RecurDaily, domain.RecurWeekly, domain.RecurMonthly, domain.RecurAnnually:
		default:
			return fmt.Errorf("unknown recurrence %q", addFlags.recur)
		}
		t.Metadata.Recurrence = &domain.RecurrenceRule{Type: rt, Interval: addFlags.every}
	}

	id, err := deps.Store.Create(ctx, t)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s in %s\n", id, column)
	return nil
}
