package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

var errOutsideRoot = errors.New("storage: path outside root")

// FS implements Provider on a directory opened with os.Root, so no relative
// path or symlink can reach a file outside it.
type FS struct {
	dir  string
	root *os.Root
}

// NewFS opens dir as an artifact root, creating it when missing. Close
// releases the directory handle.
func NewFS(dir string) (*FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", abs, err)
	}
	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", abs, err)
	}
	return &FS{dir: abs, root: root}, nil
}

// Root returns the absolute root directory.
func (f *FS) Root() string { return f.dir }

// Close releases the root handle.
func (f *FS) Close() error { return f.root.Close() }

// name converts a caller path to a slash-separated path inside the root.
// The empty path names the root itself.
func name(rel string) (string, error) {
	if rel == "" {
		return ".", nil
	}
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s", errOutsideRoot, rel)
	}
	clean := path.Clean(filepath.ToSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %s", errOutsideRoot, rel)
	}
	return clean, nil
}

// List walks dir and returns metadata for every file whose extension, case
// folded, is one of exts.
func (f *FS) List(dir string, exts ...string) ([]File, error) {
	base, err := name(dir)
	if err != nil {
		return nil, err
	}
	fsys := f.root.FS()

	var out []File
	err = fs.WalkDir(fsys, base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if len(exts) > 0 && !slices.Contains(exts, strings.ToLower(path.Ext(p))) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		out = append(out, File{
			Path:      filepath.FromSlash(p),
			Checksum:  Checksum(data),
			UpdatedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", base, err)
	}
	return out, nil
}

// Read returns the raw bytes of a stored file.
func (f *FS) Read(rel string) ([]byte, error) {
	n, err := name(rel)
	if err != nil {
		return nil, err
	}
	data, err := f.root.ReadFile(n)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", rel, err)
	}
	return data, nil
}

// Write replaces rel with content through a sibling temp file, so readers
// see either the old or the new artifact. Missing parents are created.
func (f *FS) Write(rel string, content []byte) (string, error) {
	n, err := name(rel)
	if err != nil {
		return "", err
	}
	if n == "." {
		return "", fmt.Errorf("storage: write: empty path")
	}
	if dir := path.Dir(n); dir != "." {
		if err := f.root.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("storage: mkdir %s: %w", dir, err)
		}
	}

	tmp := path.Join(path.Dir(n), ".seoscout-tmp-"+uuid.NewString())
	if err := f.writeTemp(tmp, content); err != nil {
		_ = f.root.Remove(tmp)
		return "", err
	}
	if err := f.root.Rename(tmp, n); err != nil {
		_ = f.root.Remove(tmp)
		return "", fmt.Errorf("storage: rename %s: %w", rel, err)
	}
	return filepath.Join(f.dir, filepath.FromSlash(n)), nil
}

func (f *FS) writeTemp(tmp string, content []byte) error {
	file, err := f.root.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return fmt.Errorf("storage: fsync: %w", err)
	}
	return file.Close()
}

// Delete removes a stored file.
func (f *FS) Delete(rel string) error {
	n, err := name(rel)
	if err != nil {
		return err
	}
	if err := f.root.Remove(n); err != nil {
		return fmt.Errorf("storage: delete %s: %w", rel, err)
	}
	return nil
}
