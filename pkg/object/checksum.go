package object

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"
)

// Checksum computes the xxh3-128 digest of data as lowercase hex. It is
// independent of the blob fingerprint and exists purely for corruption
// detection: a bit flip that happens to preserve the djb2 fingerprint will
// still trip the xxh3 check.
func Checksum(data []byte) string {
	h := xxh3.Hash128(data).Bytes()
	return fmt.Sprintf("%x", h)
}

func (s *Store) sumsPath() string {
	return filepath.Join(s.root, "objects.sum")
}

// WriteSums records an xxh3 checksum for every blob in the store, one
// "<filename> <checksum>" line per blob, written atomically to objects.sum.
// Returns the number of blobs recorded.
func (s *Store) WriteSums() (int, error) {
	names, err := s.blobNames()
	if err != nil {
		return 0, err
	}

	var sb strings.Builder
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.ObjectsDir(), name))
		if err != nil {
			return 0, fmt.Errorf("write sums: read %s: %w", name, err)
		}
		fmt.Fprintf(&sb, "%s %s\n", name, Checksum(data))
	}

	tmp, err := os.CreateTemp(s.root, ".sum-tmp-*")
	if err != nil {
		return 0, fmt.Errorf("write sums: tmpfile: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("write sums: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("write sums: close: %w", err)
	}
	if err := os.Rename(tmpName, s.sumsPath()); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("write sums: rename: %w", err)
	}
	return len(names), nil
}

// Problem describes a single blob that failed verification.
type Problem struct {
	Name   string
	Reason string
}

// Verify checks every blob in the store. Each blob's content is re-hashed
// and compared against the fingerprint encoded in its filename; when an
// objects.sum file exists, the recorded xxh3 checksum is checked as well.
// Returns one Problem per failing blob; an empty slice means a clean store.
func (s *Store) Verify() ([]Problem, error) {
	names, err := s.blobNames()
	if err != nil {
		return nil, err
	}

	sums, err := s.readSums()
	if err != nil {
		return nil, err
	}

	var problems []Problem
	for _, name := range names {
		fp, err := ParseFingerprint(strings.TrimSuffix(name, ".blob"))
		if err != nil {
			problems = append(problems, Problem{Name: name, Reason: "unparsable blob name"})
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.ObjectsDir(), name))
		if err != nil {
			problems = append(problems, Problem{Name: name, Reason: "unreadable: " + err.Error()})
			continue
		}

		if got := FingerprintBytes(data); got != fp {
			problems = append(problems, Problem{
				Name:   name,
				Reason: fmt.Sprintf("fingerprint mismatch: content hashes to %s", got),
			})
			continue
		}

		if want, ok := sums[name]; ok {
			if got := Checksum(data); got != want {
				problems = append(problems, Problem{
					Name:   name,
					Reason: fmt.Sprintf("checksum mismatch: recorded %s, computed %s", want, got),
				})
			}
		}
	}
	return problems, nil
}

// blobNames lists blob filenames sorted lexically. A missing objects
// directory is an empty store.
func (s *Store) blobNames() ([]string, error) {
	entries, err := os.ReadDir(s.ObjectsDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".blob" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// readSums parses objects.sum into a name -> checksum map. A missing file
// yields an empty map.
func (s *Store) readSums() (map[string]string, error) {
	f, err := os.Open(s.sumsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read sums: %w", err)
	}
	defer f.Close()

	sums := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		name, sum, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("read sums: malformed line %q", line)
		}
		sums[name] = sum
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read sums: %w", err)
	}
	return sums, nil
}
