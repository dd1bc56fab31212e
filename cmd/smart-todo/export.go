package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kimiya00/smart-todo-app/internal/task"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export tasks as JSON",
		Long: `Export the task collection as a JSON envelope.

Writes to stdout unless a file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	data, err := st.Export()
	if errors.Is(err, task.ErrEmptyExport) {
		return fmt.Errorf("nothing to export: the task list is empty")
	}
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Print(string(data))
		return nil
	}

	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	fmt.Printf("exported %d tasks to %s\n", st.Stats().Total, args[0])
	return nil
}
