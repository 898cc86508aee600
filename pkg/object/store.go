package object

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound reports that no blob was ever stored under a fingerprint.
var ErrNotFound = errors.New("object not found")

// Store is a content-addressed blob store: one immutable file per unique
// fingerprint, named <fingerprint>.blob under the objects directory.
type Store struct {
	root string
}

// NewStore creates a Store whose objects directory lives under root. The
// directory is created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// ObjectsDir returns the directory holding blob files.
func (s *Store) ObjectsDir() string {
	return filepath.Join(s.root, "objects")
}

func (s *Store) blobPath(fp Fingerprint) string {
	return filepath.Join(s.ObjectsDir(), fp.String()+".blob")
}

// Has reports whether the store contains a blob with the given fingerprint.
func (s *Store) Has(fp Fingerprint) bool {
	_, err := os.Stat(s.blobPath(fp))
	return err == nil
}

// Put stores data under its fingerprint and returns the fingerprint. Blobs
// are write-once: if one already exists for this fingerprint, Put performs
// no write at all. Writes are atomic: data goes to a temp file which is
// then renamed into place, so a crash never leaves a partial blob.
func (s *Store) Put(data []byte) (Fingerprint, error) {
	fp := FingerprintBytes(data)

	// Fast path: already stored, dedup.
	if s.Has(fp) {
		return fp, nil
	}

	dir := s.ObjectsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("object put mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".blob-tmp-*")
	if err != nil {
		return 0, fmt.Errorf("object put tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("object put write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("object put close: %w", err)
	}

	if err := os.Rename(tmpName, s.blobPath(fp)); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("object put rename: %w", err)
	}

	return fp, nil
}

// Get retrieves blob content by fingerprint. Returns ErrNotFound if no
// object was ever stored under fp.
func (s *Store) Get(fp Fingerprint) ([]byte, error) {
	data, err := os.ReadFile(s.blobPath(fp))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("object %s: %w", fp, ErrNotFound)
		}
		return nil, fmt.Errorf("object read %s: %w", fp, err)
	}
	return data, nil
}

// Count returns the number of blob files in the store.
func (s *Store) Count() (int, error) {
	entries, err := os.ReadDir(s.ObjectsDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("object count: %w", err)
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".blob" {
			n++
		}
	}
	return n, nil
}
