package main

import (
	"fmt"

	"github.com/mygit-vcs/mygit/pkg/repo"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var writeSums bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check repository integrity: commit chain, refs, and blob checksums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if writeSums {
				n, err := r.Store.WriteSums()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "recorded checksums for %d blob(s)\n", n)
			}

			report, err := r.Verify()
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "checked %d commit(s), %d blob(s)\n", report.Commits, report.Blobs)
			if report.OK() {
				fmt.Fprintln(out, styleAdded.Render("repository is clean"))
				return nil
			}

			for _, p := range report.Problems {
				fmt.Fprintf(out, "%s %s\n", styleRemoved.Render("✗"), p)
			}
			return fmt.Errorf("%d problem(s) found", len(report.Problems))
		},
	}

	cmd.Flags().BoolVar(&writeSums, "write-sums", false, "record fresh xxh3 checksums for all blobs before checking")
	return cmd
}
