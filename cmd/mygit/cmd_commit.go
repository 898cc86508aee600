package main

import (
	"errors"
	"fmt"

	"github.com/mygit-vcs/mygit/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record the staged snapshot as a new commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return fmt.Errorf("commit message is required (-m)")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			c, err := r.Commit(message)
			if err != nil {
				if errors.Is(err, repo.ErrEmptyCommit) {
					return fmt.Errorf("nothing to commit; stage files first with: mygit add <filename>")
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[%s %s] %s\n",
				styleBranch.Render(c.Branch),
				styleCommitID.Render(fmt.Sprintf("#%d", c.ID)),
				c.Message)
			fmt.Fprintf(out, "  %d file(s), parent %d\n", len(c.Entries), c.ParentID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	return cmd
}
