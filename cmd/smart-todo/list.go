package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Kimiya00/smart-todo-app/internal/task"
	"github.com/Kimiya00/smart-todo-app/internal/tui"
)

var (
	listJSON   bool
	listFilter string
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  `List tasks under the current filter, or a one-off filter given with --filter.`,
		RunE:  runList,
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&listFilter, "filter", "", "Filter view (all, active, completed, high-priority)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	kind := st.CurrentFilter()
	if listFilter != "" {
		kind, err = task.ParseFilter(listFilter)
		if err != nil {
			return err
		}
	}

	var tasks []task.Task
	for t := range st.Filter(kind) {
		tasks = append(tasks, t)
	}

	if listJSON {
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(tasks) == 0 {
		fmt.Printf("No tasks (%s)\n", kind)
		return nil
	}

	printTaskTable(tasks)

	stats := st.Stats()
	fmt.Printf("\nTotal: %d active, %d completed\n", stats.Active, stats.Completed)
	return nil
}

func printTaskTable(tasks []task.Task) {
	header := fmt.Sprintf("%-5s %-8s %-50s %s", "ID", "PRI", "TEXT", "STATUS")
	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(tui.ColorGray).Render(header))
	fmt.Println(strings.Repeat("-", 75))

	for _, r := range tui.NewRows(tasks) {
		text := r.Text
		if r.Edited {
			text += " *"
		}
		if len(text) > 48 {
			text = text[:45] + "..."
		}

		var status string
		if r.Completed {
			status = tui.CompletedStyle.Render(tui.IndicatorDone + " done")
		} else {
			status = tui.StatusMsgStyle.Render(tui.IndicatorOpen + " open")
		}

		fmt.Printf("%-5d %-8s %-50s %s\n",
			r.ID,
			tui.GetPriorityStyle(r.Priority).Render(r.Priority),
			text,
			status,
		)
	}
}
