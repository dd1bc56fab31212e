package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>...",
		Short: "Edit a task's text",
		Long:  `Replace the text of an existing task. The same validation rules as add apply.`,
		Args:  cobra.MinimumNArgs(2),
		RunE:  runEdit,
	}
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	t, err := st.Edit(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("failed to edit task: %w", err)
	}
	reportSaveWarning(st)

	fmt.Printf("updated task %d: %s\n", t.ID, t.Text)
	return nil
}
