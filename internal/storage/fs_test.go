package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T) *FS {
	t.Helper()
	s, err := NewFS(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWrite_ReturnsAbsolutePath(t *testing.T) {
	s := newTestFS(t)
	content := []byte("{\"keyword\": \"seo\"}\n")

	abs, err := s.Write("seo_intent.json", content)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Root(), "seo_intent.json"), abs)

	onDisk, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)

	got, err := s.Read("seo_intent.json")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestWrite_CreatesParents(t *testing.T) {
	s := newTestFS(t)
	_, err := s.Write("2026/01/plan.md", []byte("deep"))
	require.NoError(t, err)

	got, err := s.Read(filepath.Join("2026", "01", "plan.md"))
	require.NoError(t, err)
	assert.Equal(t, "deep", string(got))
}

func TestWrite_ReplacesWithoutLeftovers(t *testing.T) {
	s := newTestFS(t)
	_, err := s.Write("out/atomic.md", []byte("original"))
	require.NoError(t, err)
	_, err = s.Write("out/atomic.md", []byte("updated"))
	require.NoError(t, err)

	got, err := s.Read("out/atomic.md")
	require.NoError(t, err)
	assert.Equal(t, "updated", string(got))

	leftovers, _ := filepath.Glob(filepath.Join(s.dir, "out", ".seoscout-tmp-*"))
	assert.Empty(t, leftovers)
}

func TestWrite_RejectsRoot(t *testing.T) {
	s := newTestFS(t)
	_, err := s.Write("", []byte("x"))
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	s := newTestFS(t)
	_, err := s.Write("del.csv", []byte("bye"))
	require.NoError(t, err)

	require.NoError(t, s.Delete("del.csv"))
	_, err = s.Read("del.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)

	err = s.Delete("del.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist), "second delete: %v", err)
}

func TestList_FiltersExtensions(t *testing.T) {
	s := newTestFS(t)
	for p, body := range map[string]string{
		"a.json":     "a",
		"sub/b.MD":   "b",
		"readme.txt": "not a plan",
	} {
		_, err := s.Write(p, []byte(body))
		require.NoError(t, err)
	}

	items, err := s.List("", ".json", ".md")
	require.NoError(t, err)
	paths := make(map[string]string, len(items))
	for _, it := range items {
		paths[it.Path] = it.Checksum
	}
	assert.Equal(t, map[string]string{
		"a.json":                     Checksum([]byte("a")),
		filepath.Join("sub", "b.MD"): Checksum([]byte("b")),
	}, paths)

	all, err := s.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	sub, err := s.List("sub")
	require.NoError(t, err)
	require.Len(t, sub, 1)
	assert.Equal(t, filepath.Join("sub", "b.MD"), sub[0].Path)
}

func TestPathsOutsideRootRejected(t *testing.T) {
	s := newTestFS(t)
	for _, p := range []string{"../../etc/passwd", "../outside.md", "/etc/shadow", "a/../../b"} {
		_, err := s.Read(p)
		assert.ErrorIs(t, err, errOutsideRoot, "read %q", p)
		_, err = s.Write(p, []byte("x"))
		assert.ErrorIs(t, err, errOutsideRoot, "write %q", p)
		assert.ErrorIs(t, s.Delete(p), errOutsideRoot, "delete %q", p)
		_, err = s.List(p)
		assert.ErrorIs(t, err, errOutsideRoot, "list %q", p)
	}
}

func TestSymlinkEscapeRejected(t *testing.T) {
	s := newTestFS(t)
	outside := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))
	if err := os.Symlink(outside, filepath.Join(s.Root(), "link.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, err := s.Read("link.txt")
	assert.Error(t, err)
}

func TestNewFS_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results", "nested")
	s, err := NewFS(dir)
	require.NoError(t, err)
	defer s.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewFS_FileNotDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := NewFS(file)
	assert.Error(t, err)
}
