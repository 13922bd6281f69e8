package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fboard/internal/domain/entity"
)

func TestMemoryDir_CreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	root := NewMemoryFS().Root()

	first, err := root.Dir(ctx, "Todo", true)
	require.NoError(t, err)
	second, err := root.Dir(ctx, "Todo", true)
	require.NoError(t, err)
	assert.Equal(t, first.Name(), second.Name())

	entries, err := root.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemoryDir_OpenMissing(t *testing.T) {
	ctx := context.Background()
	root := NewMemoryFS().Root()

	_, err := root.Dir(ctx, "nope", false)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = root.File(ctx, "nope.txt", false)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestMemoryDir_KindCollision(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	require.NoError(t, fs.WriteFileAt("notes", []byte("x")))

	_, err := fs.Root().Dir(ctx, "notes", true)
	assert.ErrorIs(t, err, entity.ErrNameCollision)
}

func TestMemoryDir_EntriesAreUnsorted(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, fs.MkdirAll(name))
	}

	entries, err := fs.Root().Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "c", entries[0].Name)
	assert.Equal(t, KindDir, entries[0].Kind)
}

func TestMemoryDir_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	require.NoError(t, fs.WriteFileAt("stage/card/info.txt", []byte("hi")))

	root := fs.Root()
	require.NoError(t, root.Remove(ctx, "stage", true))
	require.NoError(t, root.Remove(ctx, "stage", true))
	assert.False(t, fs.Exists("stage"))
}

func TestMemoryDir_RemoveNonEmptyRequiresRecursive(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	require.NoError(t, fs.WriteFileAt("stage/card/info.txt", []byte("hi")))

	err := fs.Root().Remove(ctx, "stage", false)
	assert.ErrorIs(t, err, entity.ErrIOFailure)
	assert.True(t, fs.Exists("stage/card/info.txt"))
}

func TestMemoryDir_RenameRefusesTakenTarget(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	require.NoError(t, fs.MkdirAll("a"))
	require.NoError(t, fs.MkdirAll("b"))

	err := fs.Root().Rename(ctx, "a", "b")
	assert.ErrorIs(t, err, entity.ErrNameCollision)

	require.NoError(t, fs.Root().Rename(ctx, "a", "c"))
	assert.False(t, fs.Exists("a"))
	assert.True(t, fs.Exists("c"))
}

func TestMemoryDir_StaleHandle(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	require.NoError(t, fs.WriteFileAt("stage/card/info.txt", []byte("hi")))

	stage, err := fs.Root().Dir(ctx, "stage", false)
	require.NoError(t, err)
	require.NoError(t, fs.Root().Remove(ctx, "stage", true))

	_, err = stage.Entries(ctx)
	assert.True(t, IsNotFound(err))
}

func TestMemoryDir_Permissions(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	require.NoError(t, fs.WriteFileAt("stage/info.txt", []byte("hi")))
	root := fs.Root()

	fs.Revoke()
	fs.AnswerPrompts(false)

	ok, err := root.RequestAccess(ctx, ModeReadWrite)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = root.Entries(ctx)
	assert.True(t, IsPermissionDenied(err))
	err = root.Remove(ctx, "stage", true)
	assert.True(t, IsPermissionDenied(err))

	fs.AnswerPrompts(true)
	ok, err = root.RequestAccess(ctx, ModeReadWrite)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = root.Entries(ctx)
	assert.NoError(t, err)
}

func TestMemoryDir_ReadOnlyGrant(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	fs.Revoke()
	fs.AnswerPrompts(false)
	fs.Grant(ModeRead)

	ok, err := fs.Root().RequestAccess(ctx, ModeRead)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fs.Root().RequestAccess(ctx, ModeReadWrite)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = fs.Root().Dir(ctx, "new", true)
	assert.True(t, IsPermissionDenied(err))
}

func TestMemoryFile_ReadFault(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	require.NoError(t, fs.WriteFileAt("stage/card/photo.png", []byte("png")))
	cause := errors.New("disk on fire")
	fs.FailReads("stage/card/photo.png", cause)

	stage, err := fs.Root().Dir(ctx, "stage", false)
	require.NoError(t, err)
	card, err := stage.Dir(ctx, "card", false)
	require.NoError(t, err)

	_, _, err = ReadFile(ctx, card, "photo.png")
	assert.ErrorIs(t, err, entity.ErrIOFailure)
	assert.ErrorIs(t, err, cause)
}

func TestMemoryFile_WriteStampsClock(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	root := fs.Root()

	require.NoError(t, WriteFile(ctx, root, "a.txt", []byte("one")))
	_, first, err := ReadFile(ctx, root, "a.txt")
	require.NoError(t, err)

	require.NoError(t, WriteFile(ctx, root, "a.txt", []byte("two!")))
	data, second, err := ReadFile(ctx, root, "a.txt")
	require.NoError(t, err)

	assert.Equal(t, "two!", string(data))
	assert.True(t, second.After(first))
}

func TestMemoryDir_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryFS().Root().Entries(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCopyAndVerifyTree(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	require.NoError(t, fs.WriteFileAt("src/info.txt", []byte("description")))
	require.NoError(t, fs.WriteFileAt("src/nested/deep/file.bin", []byte{1, 2, 3}))
	require.NoError(t, fs.MkdirAll("src/empty"))

	root := fs.Root()
	src, err := root.Dir(ctx, "src", false)
	require.NoError(t, err)
	dst, err := root.Dir(ctx, "dst", true)
	require.NoError(t, err)

	require.NoError(t, CopyTree(ctx, src, dst))
	require.NoError(t, VerifyTree(ctx, src, dst))

	data, err := fs.ReadFileAt("dst/nested/deep/file.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.True(t, fs.Exists("dst/empty"))
}

func TestVerifyTree_DetectsSizeMismatch(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	require.NoError(t, fs.WriteFileAt("src/info.txt", []byte("description")))
	require.NoError(t, fs.WriteFileAt("dst/info.txt", []byte("desc")))

	src, err := fs.Root().Dir(ctx, "src", false)
	require.NoError(t, err)
	dst, err := fs.Root().Dir(ctx, "dst", false)
	require.NoError(t, err)

	err = VerifyTree(ctx, src, dst)
	assert.ErrorIs(t, err, entity.ErrIOFailure)
}

func TestVerifyTree_DetectsMissingFile(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	require.NoError(t, fs.WriteFileAt("src/a/info.txt", []byte("x")))
	require.NoError(t, fs.MkdirAll("dst"))

	src, err := fs.Root().Dir(ctx, "src", false)
	require.NoError(t, err)
	dst, err := fs.Root().Dir(ctx, "dst", false)
	require.NoError(t, err)

	err = VerifyTree(ctx, src, dst)
	assert.ErrorIs(t, err, entity.ErrIOFailure)
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Todo", true},
		{"Task (2)", true},
		{"", false},
		{".", false},
		{"..", false},
		{"a/b", false},
		{`a\b`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.name))
		})
	}
}

func TestSameDir_Memory(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	require.NoError(t, fs.MkdirAll("todo"))
	require.NoError(t, fs.MkdirAll("done"))

	first, err := fs.Root().Dir(ctx, "todo", false)
	require.NoError(t, err)
	second, err := fs.Root().Dir(ctx, "todo", false)
	require.NoError(t, err)
	done, err := fs.Root().Dir(ctx, "done", false)
	require.NoError(t, err)

	assert.True(t, SameDir(first, second))
	assert.False(t, SameDir(first, done))
	assert.False(t, SameDir(first, NewMemoryFS().Root()))
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	require.NoError(t, fs.WriteFileAt("card/notes.md", []byte("x")))
	card, err := fs.Root().Dir(ctx, "card", false)
	require.NoError(t, err)

	ok, err := Exists(ctx, card, "notes.md", KindFile)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(ctx, card, "missing.md", KindFile)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Exists(ctx, fs.Root(), "card", KindDir)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryFS_FaultHooks(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFS()
	require.NoError(t, fs.WriteFileAt("todo/Card/info.txt", []byte("x")))
	root := fs.Root()

	fs.FailOpens("todo", errors.New("stale handle"))
	_, err := root.Dir(ctx, "todo", false)
	assert.EqualError(t, err, "stale handle")

	fs.FailLists("todo/Card", errors.New("io error"))
	fs.FailOpens("todo", nil)
	todo, err := root.Dir(ctx, "todo", false)
	require.NoError(t, err)
	card, err := todo.Dir(ctx, "Card", false)
	require.NoError(t, err)
	_, err = card.Entries(ctx)
	assert.EqualError(t, err, "io error")

	fired := 0
	fs.AfterList("todo", func() { fired++ })
	_, err = todo.Entries(ctx)
	require.NoError(t, err)
	_, err = todo.Entries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fired, "the hook runs once")

	fs.FailWrites("todo/Card/info.txt", errors.New("disk full"))
	file, err := card.File(ctx, "info.txt", false)
	require.NoError(t, err)
	assert.EqualError(t, file.WriteAll(ctx, []byte("y")), "disk full")
}
