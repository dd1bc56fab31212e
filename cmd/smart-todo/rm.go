package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kimiya00/smart-todo-app/internal/task"
)

var rmYes bool

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Long: `Delete a task by id.

Deleting an incomplete high-priority task asks for confirmation unless
--yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: runRm,
	}

	cmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runRm(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	err = st.Delete(ctx, id, rmYes)
	if errors.Is(err, task.ErrConfirmationRequired) {
		if !promptConfirm(fmt.Sprintf("Task %d is high priority and not completed. Delete it?", id)) {
			fmt.Println("cancelled")
			return nil
		}
		err = st.Delete(ctx, id, true)
	}
	if err != nil {
		return err
	}
	reportSaveWarning(st)

	fmt.Printf("deleted task %d\n", id)
	return nil
}
