package repo

import (
	"errors"
	"testing"
)

func TestBranchHead_UnknownBranchIsZero(t *testing.T) {
	r := newTestRepo(t)
	head, err := r.BranchHead("does-not-exist")
	if err != nil {
		t.Fatalf("BranchHead: %v", err)
	}
	if head != 0 {
		t.Errorf("head = %d, want 0", head)
	}
}

func TestSetBranchHead_RoundTrip(t *testing.T) {
	r := newTestRepo(t)
	if err := r.SetBranchHead("main", 7); err != nil {
		t.Fatalf("SetBranchHead: %v", err)
	}
	head, err := r.BranchHead("main")
	if err != nil {
		t.Fatalf("BranchHead: %v", err)
	}
	if head != 7 {
		t.Errorf("head = %d, want 7", head)
	}

	// Overwrite, not append.
	if err := r.SetBranchHead("main", 8); err != nil {
		t.Fatalf("SetBranchHead again: %v", err)
	}
	if head, _ := r.BranchHead("main"); head != 8 {
		t.Errorf("head after overwrite = %d, want 8", head)
	}
}

func TestCreateBranch_SeedsFromCurrentHead(t *testing.T) {
	r := newTestRepo(t)
	writeWorkFile(t, r, "a.txt", "a")
	stageAndCommit(t, r, "base", "a.txt")

	if err := r.CreateBranch("dev"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	head, err := r.BranchHead("dev")
	if err != nil {
		t.Fatalf("BranchHead dev: %v", err)
	}
	if head != 1 {
		t.Errorf("dev head = %d, want 1 (seeded from main)", head)
	}
}

func TestCreateBranch_DuplicateRejected(t *testing.T) {
	r := newTestRepo(t)
	if err := r.CreateBranch("dev"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if err := r.CreateBranch("dev"); err == nil {
		t.Fatal("CreateBranch accepted a duplicate name")
	}
}

func TestCreateBranch_InvalidNames(t *testing.T) {
	r := newTestRepo(t)
	for _, name := range []string{"", "  ", "a/b", "a b"} {
		if err := r.CreateBranch(name); err == nil {
			t.Errorf("CreateBranch(%q) succeeded, want error", name)
		}
	}
}

func TestListBranches_Sorted(t *testing.T) {
	r := newTestRepo(t)
	for _, b := range []string{"zeta", "alpha"} {
		if err := r.CreateBranch(b); err != nil {
			t.Fatalf("CreateBranch %s: %v", b, err)
		}
	}

	branches, err := r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	want := []string{"alpha", "main", "zeta"}
	if len(branches) != len(want) {
		t.Fatalf("branches = %v, want %v", branches, want)
	}
	for i := range want {
		if branches[i] != want[i] {
			t.Errorf("branches[%d] = %q, want %q", i, branches[i], want[i])
		}
	}
}

func TestSwitchBranch(t *testing.T) {
	r := newTestRepo(t)
	if err := r.CreateBranch("dev"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	if err := r.SwitchBranch("dev"); err != nil {
		t.Fatalf("SwitchBranch: %v", err)
	}
	if got := r.CurrentBranch(); got != "dev" {
		t.Errorf("CurrentBranch = %q, want dev", got)
	}

	err := r.SwitchBranch("ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("SwitchBranch to unknown branch = %v, want ErrNotFound", err)
	}
}

// Commits on separate branches share the id counter but advance only their
// own head.
func TestBranches_IndependentHeadsSharedCounter(t *testing.T) {
	r := newTestRepo(t)

	writeWorkFile(t, r, "a.txt", "a")
	stageAndCommit(t, r, "on main", "a.txt")

	if err := r.CreateBranch("dev"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if err := r.SwitchBranch("dev"); err != nil {
		t.Fatalf("SwitchBranch: %v", err)
	}

	writeWorkFile(t, r, "b.txt", "b")
	c := stageAndCommit(t, r, "on dev", "b.txt")

	if c.ID != 2 {
		t.Errorf("dev commit id = %d, want 2 (global counter)", c.ID)
	}
	if c.Branch != "dev" {
		t.Errorf("commit branch = %q, want dev", c.Branch)
	}
	if c.ParentID != 1 {
		t.Errorf("dev commit parent = %d, want 1 (seeded head)", c.ParentID)
	}

	mainHead, _ := r.BranchHead("main")
	devHead, _ := r.BranchHead("dev")
	if mainHead != 1 {
		t.Errorf("main head = %d, want 1 (untouched by dev commit)", mainHead)
	}
	if devHead != 2 {
		t.Errorf("dev head = %d, want 2", devHead)
	}
}
