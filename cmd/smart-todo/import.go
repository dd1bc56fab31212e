package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kimiya00/smart-todo-app/internal/store"
)

var importMode string

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import tasks from a JSON file",
		Long: `Import tasks from a JSON file.

The file may be an export envelope or a bare array of task objects.
Merge mode prepends the imported tasks ahead of the existing ones;
replace mode discards the existing collection.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringVar(&importMode, "mode", string(store.ImportMerge), "Import mode (merge, replace)")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	mode, err := store.ParseImportMode(importMode)
	if err != nil {
		return err
	}

	// The file read is the single I/O boundary: a failed read aborts
	// the import before any state is touched.
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	ctx := cmd.Context()
	st, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	count, err := st.Import(ctx, raw, mode)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	reportSaveWarning(st)

	fmt.Printf("imported %d tasks (%s)\n", count, mode)
	sendNotification("Tasks imported", fmt.Sprintf("%d tasks imported", count))
	return nil
}
