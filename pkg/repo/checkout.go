package repo

import (
	"fmt"
	"os"
	"path/filepath"
)

// Checkout restores every file captured by the commit with the given id,
// writing blob contents back into the working directory. Returns the
// restored filenames in commit order. The commit chain and refs are not
// touched; this is a read of history into the working tree.
func (r *Repo) Checkout(id int) ([]string, error) {
	c, err := r.FindCommit(id)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	var restored []string
	for _, e := range c.Entries {
		content, err := r.Store.Get(e.Fingerprint)
		if err != nil {
			return restored, fmt.Errorf("checkout: file %q: %w", e.Name, err)
		}

		dest := filepath.Join(r.RootDir, filepath.FromSlash(e.Name))
		if dir := filepath.Dir(dest); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return restored, fmt.Errorf("checkout: mkdir for %q: %w", e.Name, err)
			}
		}
		if err := os.WriteFile(dest, content, 0o644); err != nil {
			return restored, fmt.Errorf("checkout: write %q: %w", e.Name, err)
		}
		restored = append(restored, e.Name)
	}
	return restored, nil
}
