package main

import (
	"fmt"

	"github.com/mygit-vcs/mygit/pkg/repo"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>...",
		Short: "Stage files for the next commit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if err := r.Add(args); err != nil {
				return err
			}

			stg, err := r.ReadStaging()
			if err != nil {
				return err
			}
			for _, a := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "staged %s\n", a)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n",
				styleDim.Render(fmt.Sprintf("%d file(s) ready for commit", stg.Len())))
			return nil
		},
	}
}
