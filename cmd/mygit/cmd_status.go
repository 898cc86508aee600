package main

import (
	"fmt"

	"github.com/mygit-vcs/mygit/pkg/repo"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show staging area and working tree status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			st, err := r.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if st.Head == 0 {
				fmt.Fprintf(out, "on %s (no commits yet)\n", styleBranch.Render(st.Branch))
			} else {
				fmt.Fprintf(out, "on %s at commit #%d\n", styleBranch.Render(st.Branch), st.Head)
			}

			if len(st.Staged) > 0 {
				fmt.Fprintln(out, "\nstaged for commit:")
				for _, e := range st.Staged {
					switch e.State {
					case repo.StateClean:
						fmt.Fprintf(out, "  %s %s\n", styleAdded.Render("+"), e.Name)
					case repo.StateModified:
						fmt.Fprintf(out, "  %s %s %s\n", styleAdded.Render("+"), e.Name,
							styleDim.Render("(modified since staged)"))
					case repo.StateMissing:
						fmt.Fprintf(out, "  %s %s %s\n", styleRemoved.Render("!"), e.Name,
							styleDim.Render("(deleted from working tree)"))
					}
				}
			} else {
				fmt.Fprintln(out, "\nnothing staged")
			}

			if len(st.Untracked) > 0 {
				fmt.Fprintln(out, "\nuntracked:")
				for _, name := range st.Untracked {
					fmt.Fprintf(out, "  %s\n", styleDim.Render(name))
				}
			}
			return nil
		},
	}
}
