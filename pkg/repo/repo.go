package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mygit-vcs/mygit/pkg/object"
)

const (
	// DirName is the repository metadata directory, created by Init at the
	// root of the working tree.
	DirName = ".mygit"

	// DefaultBranch is the branch a fresh repository starts on.
	DefaultBranch = "main"

	stagingFile = "staging.dat"
	commitsFile = "commits.dat"
	headFile    = "HEAD"
	refsDir     = "refs"
)

// Repo represents an opened mygit repository.
type Repo struct {
	RootDir  string        // working directory root
	MygitDir string        // .mygit/ directory
	Store    *object.Store // content-addressed blob store
}

// Init creates a new repository at path: the .mygit/ directory with
// objects/, refs/, a HEAD file naming the default branch, empty staging and
// commit files, and a zero head ref for the default branch. Returns an
// error if a .mygit/ directory already exists.
func Init(path string) (*Repo, error) {
	mygitDir := filepath.Join(path, DirName)

	if _, err := os.Stat(mygitDir); err == nil {
		return nil, fmt.Errorf("init: repository already exists at %s", mygitDir)
	}

	dirs := []string{
		filepath.Join(mygitDir, "objects"),
		filepath.Join(mygitDir, refsDir),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	if err := os.WriteFile(filepath.Join(mygitDir, headFile), []byte(DefaultBranch+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", err)
	}

	if err := os.WriteFile(filepath.Join(mygitDir, commitsFile), []byte(commitsHeader), 0o644); err != nil {
		return nil, fmt.Errorf("init: write commit log: %w", err)
	}
	if err := os.WriteFile(filepath.Join(mygitDir, stagingFile), []byte(stagingHeader), 0o644); err != nil {
		return nil, fmt.Errorf("init: write staging area: %w", err)
	}

	// No commits yet on the default branch.
	if err := os.WriteFile(filepath.Join(mygitDir, refsDir, DefaultBranch), []byte("0\n"), 0o644); err != nil {
		return nil, fmt.Errorf("init: write %s ref: %w", DefaultBranch, err)
	}

	r := &Repo{
		RootDir:  path,
		MygitDir: mygitDir,
		Store:    object.NewStore(mygitDir),
	}

	if err := r.WriteConfig(DefaultConfig()); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	return r, nil
}

// Open searches upward from path for a .mygit/ directory and opens the
// repository. Returns an error if none is found.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		mygitDir := filepath.Join(cur, DirName)
		info, err := os.Stat(mygitDir)
		if err == nil && info.IsDir() {
			return &Repo{
				RootDir:  cur,
				MygitDir: mygitDir,
				Store:    object.NewStore(mygitDir),
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open: not a mygit repository (or any parent up to /)")
		}
		cur = parent
	}
}

// CurrentBranch reads the branch name from HEAD. A missing or unreadable
// HEAD falls back to the default branch.
func (r *Repo) CurrentBranch() string {
	data, err := os.ReadFile(filepath.Join(r.MygitDir, headFile))
	if err != nil {
		return DefaultBranch
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return DefaultBranch
	}
	return name
}

// SwitchBranch points HEAD at the named branch. The branch must already
// have a ref file; switching to an unknown branch is ErrNotFound.
func (r *Repo) SwitchBranch(name string) error {
	if _, err := os.Stat(r.refPath(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("branch %q: %w", name, ErrNotFound)
		}
		return fmt.Errorf("switch branch %q: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(r.MygitDir, headFile), []byte(name+"\n"), 0o644); err != nil {
		return fmt.Errorf("switch branch %q: write HEAD: %w", name, err)
	}
	return nil
}

// atomicWrite writes data to path via a temp file in the same directory
// followed by a rename, so readers never observe a partial file.
func (r *Repo) atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
