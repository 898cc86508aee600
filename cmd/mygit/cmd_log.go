package main

import (
	"fmt"

	"github.com/mygit-vcs/mygit/pkg/repo"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	var oneline bool
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit history for the current branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			commits, err := r.Log(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(commits) == 0 {
				fmt.Fprintf(out, "no commits yet on %s\n", r.CurrentBranch())
				return nil
			}

			for _, c := range commits {
				if oneline {
					fmt.Fprintf(out, "%s %s\n",
						styleCommitID.Render(fmt.Sprintf("#%d", c.ID)), c.Message)
					continue
				}

				fmt.Fprintf(out, "%s (%s)\n",
					styleCommitID.Render(fmt.Sprintf("commit #%d", c.ID)),
					styleBranch.Render(c.Branch))
				fmt.Fprintf(out, "Date:    %s\n", c.Timestamp)
				if c.ParentID == repo.NoParent {
					fmt.Fprintf(out, "Parent:  %s\n", styleDim.Render("none"))
				} else {
					fmt.Fprintf(out, "Parent:  #%d\n", c.ParentID)
				}
				fmt.Fprintf(out, "\n    %s\n\n", c.Message)
				for _, e := range c.Entries {
					fmt.Fprintf(out, "    %s\n", styleDim.Render(e.Name))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&oneline, "oneline", false, "one commit per line")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "limit the number of commits shown (0 = all)")
	return cmd
}
