package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kimiya00/smart-todo-app/internal/task"
)

var addPriority string

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a new task",
		Long:  `Add a new task to the front of the list.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAdd,
	}

	cmd.Flags().StringVarP(&addPriority, "priority", "p", string(task.DefaultPriority), "Task priority (low, medium, high)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	prio, err := task.ParsePriority(addPriority)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	t, err := st.Add(ctx, strings.Join(args, " "), prio)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	reportSaveWarning(st)

	fmt.Printf("added task %d: %s\n", t.ID, t.Text)
	sendNotification("Task added", t.Text)
	return nil
}
