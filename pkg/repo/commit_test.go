package repo

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/mygit-vcs/mygit/pkg/object"
)

func TestNextID_FreshRepo(t *testing.T) {
	r := newTestRepo(t)
	id, err := r.NextID()
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	if id != 1 {
		t.Errorf("NextID on fresh repo = %d, want 1", id)
	}
}

func TestCommit_EmptyStagingRejected(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.Commit("nothing here")
	if !errors.Is(err, ErrEmptyCommit) {
		t.Fatalf("Commit with empty staging = %v, want ErrEmptyCommit", err)
	}

	// The chain, the ref, and the staging area are untouched.
	commits, err := r.LoadCommits()
	if err != nil {
		t.Fatalf("LoadCommits: %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("commit chain has %d records after rejected commit", len(commits))
	}
	head, err := r.BranchHead("main")
	if err != nil {
		t.Fatalf("BranchHead: %v", err)
	}
	if head != 0 {
		t.Errorf("head = %d after rejected commit, want 0", head)
	}
}

// The two-commit scenario: hello -> hello!, with parent linkage and head
// advancement checked at every step.
func TestCommit_ChainAcrossEdits(t *testing.T) {
	r := newTestRepo(t)

	writeWorkFile(t, r, "a", "hello")
	h1 := object.FingerprintBytes([]byte("hello"))
	c1 := stageAndCommit(t, r, "first", "a")

	if c1.ID != 1 {
		t.Errorf("first commit id = %d, want 1", c1.ID)
	}
	if c1.ParentID != NoParent {
		t.Errorf("first commit parent = %d, want %d", c1.ParentID, NoParent)
	}
	if head, _ := r.BranchHead("main"); head != 1 {
		t.Errorf("head after first commit = %d, want 1", head)
	}
	stg, err := r.ReadStaging()
	if err != nil {
		t.Fatalf("ReadStaging: %v", err)
	}
	if stg.Len() != 0 {
		t.Errorf("staging not cleared after commit: %d entries", stg.Len())
	}
	if len(c1.Entries) != 1 || c1.Entries[0].Fingerprint != h1 {
		t.Errorf("first commit entries = %+v, want one entry with fingerprint %s", c1.Entries, h1)
	}

	writeWorkFile(t, r, "a", "hello!")
	h2 := object.FingerprintBytes([]byte("hello!"))
	if h1 == h2 {
		t.Fatal("test contents collided, pick different ones")
	}
	c2 := stageAndCommit(t, r, "second", "a")

	if c2.ID != 2 {
		t.Errorf("second commit id = %d, want 2", c2.ID)
	}
	if c2.ParentID != 1 {
		t.Errorf("second commit parent = %d, want 1", c2.ParentID)
	}
	if head, _ := r.BranchHead("main"); head != 2 {
		t.Errorf("head after second commit = %d, want 2", head)
	}
	if len(c2.Entries) != 1 || c2.Entries[0].Fingerprint != h2 {
		t.Errorf("second commit entries = %+v, want one entry with fingerprint %s", c2.Entries, h2)
	}

	// Walking from the head reconstructs [2, 1].
	log, err := r.Log(0)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(log) != 2 || log[0].ID != 2 || log[1].ID != 1 {
		ids := make([]int, len(log))
		for i, c := range log {
			ids[i] = c.ID
		}
		t.Errorf("log ids = %v, want [2 1]", ids)
	}
}

func TestCommit_SequentialIDs(t *testing.T) {
	r := newTestRepo(t)

	const n = 5
	for i := 0; i < n; i++ {
		writeWorkFile(t, r, "file.txt", strings.Repeat("x", i+1))
		c := stageAndCommit(t, r, "step", "file.txt")
		if c.ID != i+1 {
			t.Fatalf("commit %d got id %d", i+1, c.ID)
		}
		if i == 0 {
			if c.ParentID != NoParent {
				t.Errorf("commit 1 parent = %d, want none", c.ParentID)
			}
		} else if c.ParentID != i {
			t.Errorf("commit %d parent = %d, want %d", c.ID, c.ParentID, i)
		}
	}

	commits, err := r.LoadCommits()
	if err != nil {
		t.Fatalf("LoadCommits: %v", err)
	}
	if len(commits) != n {
		t.Fatalf("chain holds %d commits, want %d", len(commits), n)
	}
}

func TestCommit_CapturesMultipleFilesInOrder(t *testing.T) {
	r := newTestRepo(t)
	writeWorkFile(t, r, "one.txt", "1")
	writeWorkFile(t, r, "two.txt", "2")
	writeWorkFile(t, r, "three.txt", "3")

	c := stageAndCommit(t, r, "three files", "one.txt", "two.txt", "three.txt")
	if len(c.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(c.Entries))
	}
	for i, want := range []string{"one.txt", "two.txt", "three.txt"} {
		if c.Entries[i].Name != want {
			t.Errorf("entry %d = %q, want %q", i, c.Entries[i].Name, want)
		}
	}

	// The record round-trips through the durable log.
	loaded, err := r.FindCommit(c.ID)
	if err != nil {
		t.Fatalf("FindCommit: %v", err)
	}
	if len(loaded.Entries) != 3 || loaded.Entries[2].Name != "three.txt" {
		t.Errorf("loaded entries = %+v", loaded.Entries)
	}
}

func TestCommit_MessageWithColonSurvives(t *testing.T) {
	r := newTestRepo(t)
	writeWorkFile(t, r, "a.txt", "a")

	msg := "fix: handle MSG: prefixes, twice"
	c := stageAndCommit(t, r, msg, "a.txt")

	loaded, err := r.FindCommit(c.ID)
	if err != nil {
		t.Fatalf("FindCommit: %v", err)
	}
	if loaded.Message != msg {
		t.Errorf("message = %q, want %q", loaded.Message, msg)
	}
}

func TestFindCommit_NotFound(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.FindCommit(42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindCommit(42) = %v, want ErrNotFound", err)
	}
}

func TestLoadCommits_CorruptRecordIsFatal(t *testing.T) {
	r := newTestRepo(t)
	writeWorkFile(t, r, "a.txt", "a")
	stageAndCommit(t, r, "good", "a.txt")

	// Append a mangled record; the whole load must fail, not skip it.
	f, err := os.OpenFile(r.commitsPath(), os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open commit log: %v", err)
	}
	if _, err := f.WriteString("COMMIT:2\nMSG:broken\nTIME:2025-01-15 10:00:00\nEND\n"); err != nil {
		t.Fatalf("append garbage: %v", err)
	}
	f.Close()

	_, err = r.LoadCommits()
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("LoadCommits on mangled log = %v, want ErrCorrupt", err)
	}
}

func TestLoadCommits_MismatchedListsAreCorrupt(t *testing.T) {
	r := newTestRepo(t)
	record := "COMMIT:1\nMSG:m\nTIME:2025-01-15 10:00:00\nBRANCH:main\nPARENT:-1\nFILES:a.txt,b.txt\nHASHES:123\nEND\n"
	if err := os.WriteFile(r.commitsPath(), []byte(record), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	_, err := r.LoadCommits()
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("LoadCommits with mismatched lists = %v, want ErrCorrupt", err)
	}
}

func TestLog_LimitAndEmpty(t *testing.T) {
	r := newTestRepo(t)

	log, err := r.Log(0)
	if err != nil {
		t.Fatalf("Log on fresh repo: %v", err)
	}
	if len(log) != 0 {
		t.Errorf("fresh repo log has %d entries", len(log))
	}

	for i := 0; i < 4; i++ {
		writeWorkFile(t, r, "f.txt", strings.Repeat("y", i+1))
		stageAndCommit(t, r, "step", "f.txt")
	}

	log, err = r.Log(2)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(log) != 2 || log[0].ID != 4 || log[1].ID != 3 {
		t.Errorf("limited log = %+v, want ids [4 3]", log)
	}
}
