package main

import (
	"fmt"
	"os"

	"github.com/mygit-vcs/mygit/pkg/repo"
	"github.com/spf13/cobra"
)

func newBundleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bundle <file>",
		Short: "Export the repository as a zstd-compressed archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create bundle file: %w", err)
			}

			if err := r.WriteBundle(f); err != nil {
				f.Close()
				os.Remove(args[0])
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close bundle file: %w", err)
			}

			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote bundle %s (%d bytes)\n", args[0], info.Size())
			return nil
		},
	}
}

func newUnbundleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unbundle <file>",
		Short: "Restore a repository from a bundle into the current directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open bundle file: %w", err)
			}
			defer f.Close()

			r, err := repo.ReadBundle(f, ".")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored repository in %s\n", r.MygitDir)
			return nil
		},
	}
}
