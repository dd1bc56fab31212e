package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the smart-todo version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("smart-todo %s\n", Version)
		},
	}
}
