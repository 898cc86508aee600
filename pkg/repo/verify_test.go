package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestVerify_CleanRepo(t *testing.T) {
	r := newTestRepo(t)

	writeWorkFile(t, r, "a.txt", "a")
	writeWorkFile(t, r, "b.txt", "b")
	stageAndCommit(t, r, "first", "a.txt", "b.txt")
	writeWorkFile(t, r, "a.txt", "a2")
	stageAndCommit(t, r, "second", "a.txt")

	if _, err := r.Store.WriteSums(); err != nil {
		t.Fatalf("WriteSums: %v", err)
	}

	report, err := r.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !report.OK() {
		t.Errorf("clean repo reported problems: %v", report.Problems)
	}
	if report.Commits != 2 {
		t.Errorf("Commits = %d, want 2", report.Commits)
	}
	if report.Blobs != 3 {
		t.Errorf("Blobs = %d, want 3", report.Blobs)
	}
}

func TestVerify_MissingBlob(t *testing.T) {
	r := newTestRepo(t)
	writeWorkFile(t, r, "a.txt", "content")
	c := stageAndCommit(t, r, "first", "a.txt")

	blob := filepath.Join(r.Store.ObjectsDir(), c.Entries[0].Fingerprint.String()+".blob")
	if err := os.Remove(blob); err != nil {
		t.Fatalf("remove blob: %v", err)
	}

	report, err := r.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.OK() {
		t.Fatal("Verify missed a missing blob")
	}
}

func TestVerify_DanglingBranchHead(t *testing.T) {
	r := newTestRepo(t)
	if err := r.SetBranchHead("main", 9); err != nil {
		t.Fatalf("SetBranchHead: %v", err)
	}

	report, err := r.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.OK() {
		t.Fatal("Verify missed a branch head pointing at a nonexistent commit")
	}
}

func TestVerify_CorruptChainIsFatal(t *testing.T) {
	r := newTestRepo(t)
	if err := os.WriteFile(r.commitsPath(), []byte("COMMIT:one\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	_, err := r.Verify()
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Verify on corrupt chain = %v, want ErrCorrupt", err)
	}
}
