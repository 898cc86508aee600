package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mygit-vcs/mygit/pkg/object"
)

const stagingHeader = "# MyGit Staging Area\n"

// StagingEntry is the pending association of a filename to the fingerprint
// of the content it was staged with.
type StagingEntry struct {
	Name        string
	Fingerprint object.Fingerprint
}

// Staging is the mutable set of staged entries. Entries keep the insertion
// order of first-seen filenames; re-staging a file replaces its fingerprint
// in place.
type Staging struct {
	Entries []StagingEntry
}

// Set upserts an entry. An existing filename keeps its position and gets
// the new fingerprint; a new filename appends. There is never more than one
// entry per filename.
func (s *Staging) Set(name string, fp object.Fingerprint) {
	for i := range s.Entries {
		if s.Entries[i].Name == name {
			s.Entries[i].Fingerprint = fp
			return
		}
	}
	s.Entries = append(s.Entries, StagingEntry{Name: name, Fingerprint: fp})
}

// Len returns the number of distinct staged filenames.
func (s *Staging) Len() int {
	return len(s.Entries)
}

// Lookup returns the staged fingerprint for name, if present.
func (s *Staging) Lookup(name string) (object.Fingerprint, bool) {
	for _, e := range s.Entries {
		if e.Name == name {
			return e.Fingerprint, true
		}
	}
	return 0, false
}

func (r *Repo) stagingPath() string {
	return filepath.Join(r.MygitDir, stagingFile)
}

// ReadStaging loads the staging area from .mygit/staging.dat. A staging
// file that was never created reads as an empty set, not an error, so a
// fresh repository behaves the same as one that just committed.
func (r *Repo) ReadStaging() (*Staging, error) {
	data, err := os.ReadFile(r.stagingPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Staging{}, nil
		}
		return nil, fmt.Errorf("read staging: %w", err)
	}

	stg := &Staging{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Entry lines are "filename|fingerprint". The fingerprint never
		// contains '|', so split at the last separator.
		sep := strings.LastIndexByte(line, '|')
		if sep < 0 {
			return nil, fmt.Errorf("read staging: malformed entry %q", line)
		}
		fp, err := object.ParseFingerprint(line[sep+1:])
		if err != nil {
			return nil, fmt.Errorf("read staging: entry %q: %w", line, err)
		}
		stg.Set(line[:sep], fp)
	}
	return stg, nil
}

// WriteStaging atomically persists the staging area.
func (r *Repo) WriteStaging(stg *Staging) error {
	var sb strings.Builder
	sb.WriteString(stagingHeader)
	for _, e := range stg.Entries {
		fmt.Fprintf(&sb, "%s|%s\n", e.Name, e.Fingerprint)
	}
	if err := r.atomicWrite(r.stagingPath(), []byte(sb.String())); err != nil {
		return fmt.Errorf("write staging: %w", err)
	}
	return nil
}

// ClearStaging empties the staging area. Called only after a commit has
// durably succeeded.
func (r *Repo) ClearStaging() error {
	if err := r.atomicWrite(r.stagingPath(), []byte(stagingHeader)); err != nil {
		return fmt.Errorf("clear staging: %w", err)
	}
	return nil
}

// Add stages the given file paths. For each file the content is read,
// fingerprinted, stored as a blob (deduplicated, write-once), and upserted
// into the staging area. The staging area is flushed once at the end.
func (r *Repo) Add(paths []string) error {
	cfg, err := r.ReadConfig()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	stg, err := r.ReadStaging()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	for _, p := range paths {
		relPath, err := r.repoRelPath(p)
		if err != nil {
			return fmt.Errorf("add: resolve path %q: %w", p, err)
		}
		absPath := filepath.Join(r.RootDir, relPath)

		info, err := os.Stat(absPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("add: file %q: %w", relPath, ErrNotFound)
			}
			return fmt.Errorf("add: stat %q: %w", relPath, err)
		}
		if info.IsDir() {
			return fmt.Errorf("add: %q is a directory", relPath)
		}
		if strings.ContainsAny(relPath, "|,\n") {
			return fmt.Errorf("add: filename %q contains a reserved character", relPath)
		}
		if info.Size() > cfg.Core.MaxFileSize {
			return fmt.Errorf("add: %q is %d bytes, exceeds the %d byte staged-file limit",
				relPath, info.Size(), cfg.Core.MaxFileSize)
		}

		content, err := os.ReadFile(absPath)
		if err != nil {
			return fmt.Errorf("add: read %q: %w", relPath, err)
		}

		fp, err := r.Store.Put(content)
		if err != nil {
			return fmt.Errorf("add: store blob %q: %w", relPath, err)
		}

		stg.Set(relPath, fp)
	}

	if err := r.WriteStaging(stg); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return nil
}

// repoRelPath converts a path (absolute, or relative to CWD) into a
// slash-separated path relative to the repository root. Paths outside the
// repository are treated as already repo-relative.
func (r *Repo) repoRelPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(r.RootDir, p)
		if err != nil {
			return "", fmt.Errorf("cannot make %q relative to %q: %w", p, r.RootDir, err)
		}
		return filepath.ToSlash(rel), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}

	rel, err := filepath.Rel(r.RootDir, filepath.Join(cwd, p))
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}
	return filepath.ToSlash(rel), nil
}
