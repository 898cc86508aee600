package repo

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mygit-vcs/mygit/pkg/object"
)

const commitsHeader = "# MyGit Commit History\n"

// NoParent is the parent id of a commit with no predecessor on its branch.
const NoParent = -1

const timeFormat = "2006-01-02 15:04:05"

// Commit is an immutable historical snapshot: the staging set at commit
// time, plus metadata linking it to its predecessor on the branch.
type Commit struct {
	ID        int
	Message   string
	Timestamp string // timeFormat
	Branch    string
	ParentID  int // NoParent for the first commit on a branch root
	Entries   []StagingEntry
}

func (r *Repo) commitsPath() string {
	return filepath.Join(r.MygitDir, commitsFile)
}

// NextID allocates the next commit id by scanning the commit log for the
// maximum existing id. Returns 1 for an empty or missing log. Globally
// monotonic under the single-writer assumption.
func (r *Repo) NextID() (int, error) {
	f, err := os.Open(r.commitsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 1, nil
		}
		return 0, fmt.Errorf("next id: %w", err)
	}
	defer f.Close()

	maxID := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if v, ok := strings.CutPrefix(sc.Text(), "COMMIT:"); ok {
			id, err := strconv.Atoi(strings.TrimSpace(v))
			if err == nil && id > maxID {
				maxID = id
			}
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("next id: %w", err)
	}
	return maxID + 1, nil
}

// marshalCommit renders a commit record in the self-delimiting text format
// of the commit log:
//
//	COMMIT:<id>
//	MSG:<message>
//	TIME:<timestamp>
//	BRANCH:<branch>
//	PARENT:<parent id, -1 for none>
//	FILES:<comma-joined filenames>
//	HASHES:<comma-joined fingerprints>
//	END
func marshalCommit(c *Commit) []byte {
	names := make([]string, len(c.Entries))
	fps := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		names[i] = e.Name
		fps[i] = e.Fingerprint.String()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "COMMIT:%d\n", c.ID)
	fmt.Fprintf(&sb, "MSG:%s\n", c.Message)
	fmt.Fprintf(&sb, "TIME:%s\n", c.Timestamp)
	fmt.Fprintf(&sb, "BRANCH:%s\n", c.Branch)
	fmt.Fprintf(&sb, "PARENT:%d\n", c.ParentID)
	fmt.Fprintf(&sb, "FILES:%s\n", strings.Join(names, ","))
	fmt.Fprintf(&sb, "HASHES:%s\n", strings.Join(fps, ","))
	sb.WriteString("END\n")
	return []byte(sb.String())
}

// AppendCommit durably appends a commit record to the log. The record is
// written with a single write call after all existing records; nothing is
// ever truncated or rewritten.
func (r *Repo) AppendCommit(c *Commit) error {
	f, err := os.OpenFile(r.commitsPath(), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("append commit %d: %w", c.ID, err)
	}

	if _, err := f.Write(marshalCommit(c)); err != nil {
		f.Close()
		return fmt.Errorf("append commit %d: write: %w", c.ID, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("append commit %d: sync: %w", c.ID, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("append commit %d: close: %w", c.ID, err)
	}
	return nil
}

// LoadCommits parses every record from the commit log in append order.
// Comment and blank lines between records are skipped; anything else that
// deviates from the record format is ErrCorrupt. A malformed record is
// never silently dropped.
func (r *Repo) LoadCommits() ([]*Commit, error) {
	data, err := os.ReadFile(r.commitsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("load commits: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	var commits []*Commit

	for i := 0; i < len(lines); {
		line := strings.TrimRight(lines[i], "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			i++
			continue
		}

		c, next, err := parseCommitRecord(lines, i)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
		i = next
	}
	return commits, nil
}

// parseCommitRecord parses one record starting at lines[i], returning the
// commit and the index of the first line after its END marker.
func parseCommitRecord(lines []string, i int) (*Commit, int, error) {
	field := func(prefix string) (string, error) {
		if i >= len(lines) {
			return "", fmt.Errorf("%w: truncated record, expected %q line", ErrCorrupt, prefix)
		}
		line := strings.TrimRight(lines[i], "\r")
		v, ok := strings.CutPrefix(line, prefix)
		if !ok {
			return "", fmt.Errorf("%w: line %d: expected %q, found %q", ErrCorrupt, i+1, prefix, line)
		}
		i++
		return v, nil
	}

	c := &Commit{}

	idStr, err := field("COMMIT:")
	if err != nil {
		return nil, 0, err
	}
	if c.ID, err = strconv.Atoi(idStr); err != nil || c.ID <= 0 {
		return nil, 0, fmt.Errorf("%w: bad commit id %q", ErrCorrupt, idStr)
	}

	if c.Message, err = field("MSG:"); err != nil {
		return nil, 0, err
	}
	if c.Timestamp, err = field("TIME:"); err != nil {
		return nil, 0, err
	}
	if c.Branch, err = field("BRANCH:"); err != nil {
		return nil, 0, err
	}

	parentStr, err := field("PARENT:")
	if err != nil {
		return nil, 0, err
	}
	if c.ParentID, err = strconv.Atoi(parentStr); err != nil {
		return nil, 0, fmt.Errorf("%w: commit %d: bad parent id %q", ErrCorrupt, c.ID, parentStr)
	}

	filesStr, err := field("FILES:")
	if err != nil {
		return nil, 0, err
	}
	hashesStr, err := field("HASHES:")
	if err != nil {
		return nil, 0, err
	}
	if i >= len(lines) {
		return nil, 0, fmt.Errorf("%w: commit %d: missing END marker", ErrCorrupt, c.ID)
	}
	if end := strings.TrimRight(lines[i], "\r"); end != "END" {
		return nil, 0, fmt.Errorf("%w: commit %d: expected END marker, found %q", ErrCorrupt, c.ID, end)
	}
	i++

	if filesStr != "" {
		names := strings.Split(filesStr, ",")
		fps := strings.Split(hashesStr, ",")
		if len(names) != len(fps) {
			return nil, 0, fmt.Errorf("%w: commit %d: %d filenames but %d fingerprints",
				ErrCorrupt, c.ID, len(names), len(fps))
		}
		for j, name := range names {
			fp, err := object.ParseFingerprint(fps[j])
			if err != nil {
				return nil, 0, fmt.Errorf("%w: commit %d: fingerprint %q", ErrCorrupt, c.ID, fps[j])
			}
			c.Entries = append(c.Entries, StagingEntry{Name: name, Fingerprint: fp})
		}
	} else if hashesStr != "" {
		return nil, 0, fmt.Errorf("%w: commit %d: fingerprints without filenames", ErrCorrupt, c.ID)
	}

	return c, i, nil
}

// FindCommit returns the commit with the given id, or ErrNotFound.
func (r *Repo) FindCommit(id int) (*Commit, error) {
	commits, err := r.LoadCommits()
	if err != nil {
		return nil, err
	}
	for _, c := range commits {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("commit %d: %w", id, ErrNotFound)
}

// Commit freezes the staging area into a new commit on the current branch.
//
//  1. Reject an empty staging area (ErrEmptyCommit).
//  2. Resolve the current branch and its head; the head becomes the parent,
//     or NoParent if the branch has no commits yet.
//  3. Allocate the next id from the commit log.
//  4. Append the record, advance the branch head, then clear the staging
//     area, in that order, so a crash mid-sequence leaves at worst a
//     committed-but-unreferenced record or stale staging entries, never a
//     referenced-but-missing commit.
func (r *Repo) Commit(message string) (*Commit, error) {
	stg, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	if stg.Len() == 0 {
		return nil, fmt.Errorf("commit: %w", ErrEmptyCommit)
	}

	branch := r.CurrentBranch()
	head, err := r.BranchHead(branch)
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	parent := NoParent
	if head != 0 {
		parent = head
	}

	id, err := r.NextID()
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	c := &Commit{
		ID:        id,
		Message:   sanitizeMessage(message),
		Timestamp: time.Now().Format(timeFormat),
		Branch:    branch,
		ParentID:  parent,
		Entries:   stg.Entries,
	}

	if err := r.AppendCommit(c); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	if err := r.SetBranchHead(branch, id); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	if err := r.ClearStaging(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}

// Log returns the current branch's history from its head backward along
// parent links, newest first.
func (r *Repo) Log(limit int) ([]*Commit, error) {
	head, err := r.BranchHead(r.CurrentBranch())
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	if head == 0 {
		return nil, nil
	}

	commits, err := r.LoadCommits()
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	byID := make(map[int]*Commit, len(commits))
	for _, c := range commits {
		byID[c.ID] = c
	}

	var out []*Commit
	for id := head; id != NoParent; {
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("log: commit %d: %w", id, ErrNotFound)
		}
		out = append(out, c)
		if limit > 0 && len(out) >= limit {
			break
		}
		id = c.ParentID
	}
	return out, nil
}

// sanitizeMessage keeps the message representable on its single MSG line.
func sanitizeMessage(m string) string {
	m = strings.ReplaceAll(m, "\n", " ")
	m = strings.ReplaceAll(m, "\r", " ")
	return strings.TrimSpace(m)
}
