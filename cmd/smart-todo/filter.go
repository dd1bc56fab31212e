package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kimiya00/smart-todo-app/internal/task"
)

func newFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter [kind]",
		Short: "Show or set the persisted filter",
		Long:  `Show the current filter, or set it to one of: all, active, completed, high-priority.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFilter,
	}
}

func runFilter(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(args) == 0 {
		fmt.Println(st.CurrentFilter())
		return nil
	}

	kind, err := task.ParseFilter(args[0])
	if err != nil {
		return err
	}
	if err := st.SetFilter(ctx, kind); err != nil {
		return err
	}
	reportSaveWarning(st)

	fmt.Printf("filter set to %s\n", kind)
	return nil
}
