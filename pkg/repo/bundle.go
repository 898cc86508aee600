package repo

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// WriteBundle writes the entire .mygit/ directory to w as a
// zstd-compressed tar stream: commit log, staging area, refs, config, and
// every blob. The bundle is a faithful copy suitable for backup or moving
// a repository between machines.
func (r *Repo) WriteBundle(w io.Writer) error {
	cfg, err := r.ReadConfig()
	if err != nil {
		return fmt.Errorf("bundle: %w", err)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevel(cfg.Bundle.Level)))
	if err != nil {
		return fmt.Errorf("bundle: zstd: %w", err)
	}
	tw := tar.NewWriter(enc)

	err = filepath.WalkDir(r.MygitDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(r.MygitDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if d.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		tw.Close()
		enc.Close()
		return fmt.Errorf("bundle: %w", err)
	}

	if err := tw.Close(); err != nil {
		enc.Close()
		return fmt.Errorf("bundle: tar close: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("bundle: zstd close: %w", err)
	}
	return nil
}

// ReadBundle restores a bundle into a fresh .mygit/ directory under path
// and opens the resulting repository. Fails if a repository already exists
// there.
func ReadBundle(src io.Reader, path string) (*Repo, error) {
	mygitDir := filepath.Join(path, DirName)
	if _, err := os.Stat(mygitDir); err == nil {
		return nil, fmt.Errorf("unbundle: repository already exists at %s", mygitDir)
	}

	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("unbundle: zstd: %w", err)
	}
	defer dec.Close()

	tr := tar.NewReader(dec)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unbundle: tar: %w", err)
		}

		name := filepath.FromSlash(hdr.Name)
		// Refuse entries that would escape the target directory.
		dest := filepath.Join(mygitDir, name)
		if rel, err := filepath.Rel(mygitDir, dest); err != nil || rel == ".." || filepath.IsAbs(name) ||
			len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator) {
			return nil, fmt.Errorf("unbundle: entry %q escapes the repository directory", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return nil, fmt.Errorf("unbundle: mkdir %q: %w", hdr.Name, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return nil, fmt.Errorf("unbundle: mkdir for %q: %w", hdr.Name, err)
			}
			f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
			if err != nil {
				return nil, fmt.Errorf("unbundle: create %q: %w", hdr.Name, err)
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return nil, fmt.Errorf("unbundle: write %q: %w", hdr.Name, err)
			}
			if err := f.Close(); err != nil {
				return nil, fmt.Errorf("unbundle: close %q: %w", hdr.Name, err)
			}
		default:
			return nil, fmt.Errorf("unbundle: entry %q: unsupported type %d", hdr.Name, hdr.Typeflag)
		}
	}

	return Open(path)
}
