package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mygit-vcs/mygit/pkg/object"
)

// FileState classifies a staged file against the working tree.
type FileState int

const (
	StateClean    FileState = iota // working content matches the staged fingerprint
	StateModified                  // working content differs from the staged fingerprint
	StateMissing                   // file no longer exists in the working tree
)

func (s FileState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateModified:
		return "modified"
	case StateMissing:
		return "missing"
	}
	return "unknown"
}

// StatusEntry is the status of one staged file.
type StatusEntry struct {
	Name        string
	Fingerprint object.Fingerprint
	State       FileState
}

// Status summarizes the repository: current branch, its head commit id
// (0 when the branch has no commits), the staged entries with their state
// against the working tree, and untracked working files.
type Status struct {
	Branch    string
	Head      int
	Staged    []StatusEntry
	Untracked []string
}

// Status computes the repository status. Untracked means a working file
// that is neither staged nor captured by the branch's head commit.
func (r *Repo) Status() (*Status, error) {
	branch := r.CurrentBranch()
	head, err := r.BranchHead(branch)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	stg, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	st := &Status{Branch: branch, Head: head}

	for _, e := range stg.Entries {
		entry := StatusEntry{Name: e.Name, Fingerprint: e.Fingerprint}

		content, err := os.ReadFile(filepath.Join(r.RootDir, filepath.FromSlash(e.Name)))
		switch {
		case errors.Is(err, os.ErrNotExist):
			entry.State = StateMissing
		case err != nil:
			return nil, fmt.Errorf("status: read %q: %w", e.Name, err)
		case object.FingerprintBytes(content) == e.Fingerprint:
			entry.State = StateClean
		default:
			entry.State = StateModified
		}
		st.Staged = append(st.Staged, entry)
	}

	// Filenames known to the repository: staged now, or captured by the
	// head commit.
	known := make(map[string]bool, len(stg.Entries))
	for _, e := range stg.Entries {
		known[e.Name] = true
	}
	if head != 0 {
		c, err := r.FindCommit(head)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		for _, e := range c.Entries {
			known[e.Name] = true
		}
	}

	err = filepath.WalkDir(r.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if d.Name() == DirName {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(r.RootDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if !known[name] {
			st.Untracked = append(st.Untracked, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("status: walk working tree: %w", err)
	}

	return st, nil
}
