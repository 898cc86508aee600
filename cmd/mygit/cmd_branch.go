package main

import (
	"fmt"

	"github.com/mygit-vcs/mygit/pkg/repo"
	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch [name]",
		Short: "List branches, or create a new one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if len(args) == 1 {
				name := args[0]
				if err := r.CreateBranch(name); err != nil {
					return err
				}
				head, err := r.BranchHead(name)
				if err != nil {
					return err
				}
				if head == 0 {
					fmt.Fprintf(out, "created branch %s (no commits yet)\n", styleBranch.Render(name))
				} else {
					fmt.Fprintf(out, "created branch %s at commit #%d\n", styleBranch.Render(name), head)
				}
				return nil
			}

			branches, err := r.ListBranches()
			if err != nil {
				return err
			}
			current := r.CurrentBranch()
			for _, b := range branches {
				head, err := r.BranchHead(b)
				if err != nil {
					return err
				}
				marker := " "
				name := b
				if b == current {
					marker = "*"
					name = styleBranch.Render(b)
				}
				if head == 0 {
					fmt.Fprintf(out, "%s %s %s\n", marker, name, styleDim.Render("(no commits)"))
				} else {
					fmt.Fprintf(out, "%s %s %s\n", marker, name, styleDim.Render(fmt.Sprintf("(#%d)", head)))
				}
			}
			return nil
		},
	}
}
