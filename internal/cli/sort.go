package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"slate/internal/domain"
)

var sortCmd = &cobra.Command{
	Use:   "sort <column> [field[:asc|desc]]...",
	Short: "Set a column's sort order",
	Long: "Persists a sort order for a column. Each rule is a field name with an\n" +
		"optional direction, e.g. 'slate sort Backlog priority:desc due'.\n" +
		"With no rules the column's sort is cleared.\n\n" +
		"Fields: name, created, updated, started, due, completed, priority,\nprogress, assignee.",
	Args: cobra.MinimumNArgs(1),
	RunE: runSort,
}

func runSort(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies(configPath)
	if err != nil {
		return err
	}
	defer deps.Close()

	column := args[0]
	rules, err := parseSortRules(args[1:])
	if err != nil {
		return err
	}

	if err := deps.Store.SetColumnSort(cmd.Context(), column, rules); err != nil {
		return err
	}
	if len(rules) == 0 {
		fmt.Printf("Cleared sort on %s\n", column)
	} else {
		fmt.Printf("Sorting %s by %s\n", column, strings.Join(args[1:], ", "))
	}
	return nil
}

func parseSortRules(specs []string) ([]domain.SortRule, error) {
	valid := map[domain.SortField]bool{
		domain.SortByName: true, domain.SortByCreated: true,
		domain.SortByUpdated: true, domain.SortByStarted: true,
		domain.SortByDue: true, domain.SortByCompleted: true,
		domain.SortByPriority: true, domain.SortByProgress: true,
		domain.SortByAssignee: true,
	}

	var rules []domain.SortRule
	for _, spec := range specs {
		field, dir, _ := strings.Cut(spec, ":")
		rule := domain.SortRule{Field: domain.SortField(field), Order: domain.SortAscending}
		if !valid[rule.Field] {
			return nil, fmt.Errorf("unknown sort field %q", field)
		}
		switch dir {
		case "", "asc":
		case "desc":
			rule.Order = domain.SortDescending
		default:
			return nil, fmt.Errorf("unknown sort direction %q", dir)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
