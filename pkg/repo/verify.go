package repo

import "fmt"

// VerifyReport summarizes a full-repository integrity check.
type VerifyReport struct {
	Commits  int
	Blobs    int
	Problems []string
}

// OK reports whether verification found no problems.
func (v *VerifyReport) OK() bool {
	return len(v.Problems) == 0
}

// Verify checks the whole repository: the commit chain parses, ids are
// unique and strictly increasing in append order, every parent id names an
// earlier commit, every captured fingerprint has a blob in the object
// store, every branch head points at an existing commit, and every blob
// hashes back to its name (plus xxh3 checksums when recorded). Problems
// are collected, not repaired.
func (r *Repo) Verify() (*VerifyReport, error) {
	report := &VerifyReport{}

	commits, err := r.LoadCommits()
	if err != nil {
		// A corrupt chain is fatal to the check itself.
		return nil, fmt.Errorf("verify: %w", err)
	}
	report.Commits = len(commits)

	seen := make(map[int]bool, len(commits))
	lastID := 0
	for _, c := range commits {
		if seen[c.ID] {
			report.Problems = append(report.Problems,
				fmt.Sprintf("commit %d: duplicate id", c.ID))
		}
		seen[c.ID] = true
		if c.ID <= lastID {
			report.Problems = append(report.Problems,
				fmt.Sprintf("commit %d: id not increasing (previous %d)", c.ID, lastID))
		}
		lastID = c.ID

		if c.ParentID != NoParent && !seen[c.ParentID] {
			report.Problems = append(report.Problems,
				fmt.Sprintf("commit %d: parent %d does not precede it", c.ID, c.ParentID))
		}

		for _, e := range c.Entries {
			if !r.Store.Has(e.Fingerprint) {
				report.Problems = append(report.Problems,
					fmt.Sprintf("commit %d: file %q: blob %s missing", c.ID, e.Name, e.Fingerprint))
			}
		}
	}

	branches, err := r.ListBranches()
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	for _, b := range branches {
		head, err := r.BranchHead(b)
		if err != nil {
			report.Problems = append(report.Problems,
				fmt.Sprintf("branch %q: %v", b, err))
			continue
		}
		if head != 0 && !seen[head] {
			report.Problems = append(report.Problems,
				fmt.Sprintf("branch %q: head %d is not a known commit", b, head))
		}
	}

	blobProblems, err := r.Store.Verify()
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	for _, p := range blobProblems {
		report.Problems = append(report.Problems,
			fmt.Sprintf("blob %s: %s", p.Name, p.Reason))
	}

	n, err := r.Store.Count()
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	report.Blobs = n

	return report, nil
}
