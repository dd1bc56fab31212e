package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kimiya00/smart-todo-app/internal/task"
)

var clearYes bool

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all completed tasks",
		Args:  cobra.NoArgs,
		RunE:  runClear,
	}

	cmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	count, err := st.ClearCompleted(ctx, clearYes)
	if errors.Is(err, task.ErrNothingToClear) {
		fmt.Println("no completed tasks to clear")
		return nil
	}
	if errors.Is(err, task.ErrConfirmationRequired) {
		if !promptConfirm("Remove all completed tasks?") {
			fmt.Println("cancelled")
			return nil
		}
		count, err = st.ClearCompleted(ctx, true)
	}
	if err != nil {
		return err
	}
	reportSaveWarning(st)

	fmt.Printf("cleared %d completed tasks\n", count)
	sendNotification("Tasks cleared", fmt.Sprintf("%d completed tasks removed", count))
	return nil
}
