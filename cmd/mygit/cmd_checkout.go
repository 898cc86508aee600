package main

import (
	"fmt"
	"strconv"

	"github.com/mygit-vcs/mygit/pkg/repo"
	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <commit-id|branch>",
		Short: "Restore a commit's files, or switch to a branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			target := args[0]

			// A numeric target is a commit id; anything else is a branch.
			if id, err := strconv.Atoi(target); err == nil {
				restored, err := r.Checkout(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "restored %d file(s) from commit %s\n",
					len(restored), styleCommitID.Render(fmt.Sprintf("#%d", id)))
				for _, name := range restored {
					fmt.Fprintf(out, "  %s\n", name)
				}
				return nil
			}

			if err := r.SwitchBranch(target); err != nil {
				return err
			}
			fmt.Fprintf(out, "switched to branch %s\n", styleBranch.Render(target))
			return nil
		},
	}
}
