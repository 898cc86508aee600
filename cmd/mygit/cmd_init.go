package main

import (
	"fmt"

	"github.com/mygit-vcs/mygit/pkg/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Init(".")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty mygit repository in %s\n", r.MygitDir)
			fmt.Fprintf(cmd.OutOrStdout(), "Start tracking files with: mygit add <filename>\n")
			return nil
		},
	}
}
