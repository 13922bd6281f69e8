package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fboard/internal/domain/entity"
)

func newNativeRoot(t *testing.T) (*NativeDir, string) {
	t.Helper()
	dir := t.TempDir()
	root, err := NewNativeDir(dir)
	require.NoError(t, err)
	return root, dir
}

func TestNewNativeDir_Missing(t *testing.T) {
	_, err := NewNativeDir(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestNativeDir_RequestAccess(t *testing.T) {
	root, _ := newNativeRoot(t)

	ok, err := root.RequestAccess(context.Background(), ModeReadWrite)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNativeDir_CreateAndList(t *testing.T) {
	ctx := context.Background()
	root, dir := newNativeRoot(t)

	stage, err := root.Dir(ctx, "Todo", true)
	require.NoError(t, err)
	_, err = root.Dir(ctx, "Todo", true)
	require.NoError(t, err)

	require.NoError(t, WriteFile(ctx, stage, "info.txt", []byte("hello")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legendas.txt"), []byte("x"), 0644))

	entries, err := root.Entries(ctx)
	require.NoError(t, err)
	kinds := map[string]EntryKind{}
	for _, e := range entries {
		kinds[e.Name] = e.Kind
	}
	assert.Equal(t, map[string]EntryKind{"Todo": KindDir, "legendas.txt": KindFile}, kinds)

	data, _, err := ReadFile(ctx, stage, "info.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestNativeDir_KindCollision(t *testing.T) {
	ctx := context.Background()
	root, dir := newNativeRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes"), nil, 0644))

	_, err := root.Dir(ctx, "notes", true)
	assert.ErrorIs(t, err, entity.ErrNameCollision)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder"), 0755))
	_, err = root.File(ctx, "folder", true)
	assert.ErrorIs(t, err, entity.ErrNameCollision)
}

func TestNativeDir_RemoveAndRename(t *testing.T) {
	ctx := context.Background()
	root, dir := newNativeRoot(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "nested"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b"), 0755))

	err := root.Rename(ctx, "a", "b")
	assert.ErrorIs(t, err, entity.ErrNameCollision)

	require.NoError(t, root.Remove(ctx, "b", true))
	require.NoError(t, root.Remove(ctx, "b", true))
	require.NoError(t, root.Rename(ctx, "a", "b"))

	_, err = os.Stat(filepath.Join(dir, "b", "nested"))
	assert.NoError(t, err)
}

func TestNativeFile_WriteLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	root, dir := newNativeRoot(t)

	require.NoError(t, WriteFile(ctx, root, "comments.txt", []byte("one\n")))
	require.NoError(t, WriteFile(ctx, root, "comments.txt", []byte("one\ntwo\n")))

	names, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, n := range names {
		assert.False(t, strings.HasPrefix(n.Name(), ".fboard-"), n.Name())
	}

	f, err := root.File(ctx, "comments.txt", false)
	require.NoError(t, err)
	info, err := f.Stat(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), info.Size)
}

func TestNativeTree_CopyAndVerify(t *testing.T) {
	ctx := context.Background()
	root, dir := newNativeRoot(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "info.txt"), []byte("desc"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "sub", "img.png"), []byte("png!"), 0644))

	src, err := root.Dir(ctx, "src", false)
	require.NoError(t, err)
	dst, err := root.Dir(ctx, "dst", true)
	require.NoError(t, err)

	require.NoError(t, CopyTree(ctx, src, dst))
	require.NoError(t, VerifyTree(ctx, src, dst))

	data, err := os.ReadFile(filepath.Join(dir, "dst", "sub", "img.png"))
	require.NoError(t, err)
	assert.Equal(t, "png!", string(data))
}

func TestSameDir_Native(t *testing.T) {
	root, dir := newNativeRoot(t)
	ctx := context.Background()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "todo"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "done"), 0755))
	if err := os.Symlink(filepath.Join(dir, "todo"), filepath.Join(dir, "Todo")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	todo, err := root.Dir(ctx, "todo", false)
	require.NoError(t, err)
	alias, err := root.Dir(ctx, "Todo", false)
	require.NoError(t, err)
	done, err := root.Dir(ctx, "done", false)
	require.NoError(t, err)

	assert.True(t, SameDir(todo, alias))
	assert.False(t, SameDir(todo, done))
}
