package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mygit-vcs/mygit/pkg/diff"
	"github.com/mygit-vcs/mygit/pkg/object"
	"github.com/mygit-vcs/mygit/pkg/repo"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "diff <file>",
		Short: "Show changes between the last recorded version of a file and the working copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			name := args[0]
			before, err := baselineContent(r, name)
			if err != nil {
				return err
			}

			after, err := os.ReadFile(filepath.Join(r.RootDir, filepath.FromSlash(name)))
			if err != nil {
				if os.IsNotExist(err) {
					after = nil
				} else {
					return fmt.Errorf("read working copy of %q: %w", name, err)
				}
			}

			out := cmd.OutOrStdout()
			if !diff.Changed(before, after) {
				fmt.Fprintf(out, "no changes in %s\n", name)
				return nil
			}

			for _, l := range diff.Lines(before, after) {
				line := l.Kind.Marker() + " " + l.Text
				switch l.Kind {
				case diff.Delete:
					fmt.Fprintln(out, styleRemoved.Render(line))
				case diff.Insert:
					fmt.Fprintln(out, styleAdded.Render(line))
				default:
					if full {
						fmt.Fprintln(out, line)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "show unchanged lines too")
	return cmd
}

// baselineContent resolves the reference version of a file: its staged
// fingerprint when staged, otherwise the version captured by the current
// branch's head commit.
func baselineContent(r *repo.Repo, name string) ([]byte, error) {
	stg, err := r.ReadStaging()
	if err != nil {
		return nil, err
	}

	var fp object.Fingerprint
	if staged, ok := stg.Lookup(name); ok {
		fp = staged
	} else {
		head, err := r.BranchHead(r.CurrentBranch())
		if err != nil {
			return nil, err
		}
		if head == 0 {
			return nil, fmt.Errorf("%q has never been staged or committed", name)
		}
		c, err := r.FindCommit(head)
		if err != nil {
			return nil, err
		}
		found := false
		for _, e := range c.Entries {
			if e.Name == name {
				fp = e.Fingerprint
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%q is not tracked by commit #%d", name, head)
		}
	}

	return r.Store.Get(fp)
}
