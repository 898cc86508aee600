package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

func (r *Repo) refPath(branch string) string {
	return filepath.Join(r.MygitDir, refsDir, branch)
}

// BranchHead returns the id of the branch's latest commit. A branch with
// no commits yet (ref file absent or holding 0) reads as 0, not an error.
func (r *Repo) BranchHead(branch string) (int, error) {
	data, err := os.ReadFile(r.refPath(branch))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read ref %q: %w", branch, err)
	}

	s := strings.TrimSpace(string(data))
	if s == "" {
		return 0, nil
	}
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("ref %q: bad head id %q", branch, s)
	}
	return id, nil
}

// SetBranchHead points the branch at the given commit id. This is the one
// mutable pointer in the data model; the write overwrites atomically and
// touches no other branch.
func (r *Repo) SetBranchHead(branch string, id int) error {
	if err := os.MkdirAll(filepath.Dir(r.refPath(branch)), 0o755); err != nil {
		return fmt.Errorf("set ref %q: mkdir: %w", branch, err)
	}
	if err := r.atomicWrite(r.refPath(branch), []byte(strconv.Itoa(id)+"\n")); err != nil {
		return fmt.Errorf("set ref %q: %w", branch, err)
	}
	return nil
}

// CreateBranch creates a new branch whose head starts at the current
// branch's head, so history up to that point is shared. Fails if the
// branch already exists.
func (r *Repo) CreateBranch(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "/\\ ") {
		return fmt.Errorf("create branch: invalid name %q", name)
	}
	if _, err := os.Stat(r.refPath(name)); err == nil {
		return fmt.Errorf("create branch: branch %q already exists", name)
	}

	head, err := r.BranchHead(r.CurrentBranch())
	if err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	if err := r.SetBranchHead(name, head); err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	return nil
}

// ListBranches returns all branch names sorted alphabetically.
func (r *Repo) ListBranches() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.MygitDir, refsDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list branches: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
