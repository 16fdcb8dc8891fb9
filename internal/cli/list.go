package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"slate/internal/domain"
	"slate/internal/query"
)

var listFlags struct {
	filter string
	column string
	all    bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long:  "Lists tasks on the board. The --filter flag takes the same language as\nthe board's search bar, e.g. 'tag:urgent overdue'.",
	RunE:  runList,
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listFlags.filter, "filter", "f", "", "filter expression")
	f.StringVarP(&listFlags.column, "column", "c", "", "only list this column")
	f.BoolVar(&listFlags.all, "all", false, "include hidden columns")
}

func runList(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies(configPath)
	if err != nil {
		return err
	}
	defer deps.Close()

	snap, err := deps.Store.GetAll(cmd.Context())
	if err != nil {
		return err
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "ID\tNAME\tCOLUMN\tPRI\tDUE\tTAGS")

	for _, col := range snap.Index.Columns {
		if listFlags.column != "" && col.Name != listFlags.column {
			continue
		}
		if listFlags.column == "" && !listFlags.all && snap.Index.IsHidden(col.Name) {
			continue
		}

		tasks := make([]domain.Task, 0, len(col.Tasks))
		for _, id := range col.Tasks {
			if t, ok := snap.Task(id); ok {
				tasks = append(tasks, t)
			}
		}
		if listFlags.filter != "" {
			tasks = query.Apply(tasks, listFlags.filter, snap.Index.Fields, now)
		}
		tasks = domain.ApplySort(tasks, col.Sort)

		for _, t := range tasks {
			due := ""
			if t.Metadata.Due != nil {
				due = t.Metadata.Due.Format(domain.DefaultDateFormat)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				t.ID, t.Name, col.Name, t.Metadata.Priority, due,
				strings.Join(t.Metadata.Tags, ","))
		}
	}
	return nil
}
