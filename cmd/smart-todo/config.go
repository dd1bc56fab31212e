package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Kimiya00/smart-todo-app/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write an example config file",
		RunE:  runConfigInit,
	})

	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Get()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))

	fmt.Println("\n# config file search paths:")
	for _, p := range config.ConfigPaths() {
		marker := " "
		if _, err := os.Stat(p); err == nil {
			marker = "*"
		}
		fmt.Printf("# %s %s\n", marker, p)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	paths := config.ConfigPaths()
	if len(paths) == 0 {
		return fmt.Errorf("could not determine config path")
	}

	path := paths[0]
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := config.WriteExample(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("wrote example config to %s\n", path)
	return nil
}
