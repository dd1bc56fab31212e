package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion state",
		Long: `Toggle a task between completed and active.

Completing a task moves it to the end of the list; reopening it leaves
it where it is.`,
		Args: cobra.ExactArgs(1),
		RunE: runDone,
	}
}

func runDone(cmd *cobra.Command, args []string) error {
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

	t, err := st.ToggleComplete(ctx, id)
	if err != nil {
		return err
	}
	reportSaveWarning(st)

	if t.Completed {
		fmt.Printf("completed task %d: %s\n", t.ID, t.Text)
		sendNotification("Task completed", t.Text)
	} else {
		fmt.Printf("reopened task %d: %s\n", t.ID, t.Text)
	}
	return nil
}
