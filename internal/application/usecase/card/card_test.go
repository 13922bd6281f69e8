package card

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fboard/internal/application/dto"
	"fboard/internal/domain/entity"
	"fboard/internal/domain/service"
	"fboard/internal/infrastructure/persistence/filesystem"
	"fboard/internal/infrastructure/storage"
)

type fixture struct {
	fs     *storage.MemoryFS
	boards *service.BoardService
	legend *service.LegendService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	fs := storage.NewMemoryFS()
	logger, _ := logtest.NewNullLogger()
	repo := filesystem.NewBoardRepository(fs.Root(), filesystem.Options{CreateEmptyComments: true, Logger: logger})
	validation := service.NewValidationService()
	return fixture{
		fs:     fs,
		boards: service.NewBoardService(repo, validation),
		legend: service.NewLegendService(repo, validation),
	}
}

func TestCreateAndGetCard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.fs.WriteFileAt("legendas.txt", []byte("Bug|#FF0000")))

	created, err := NewCreateCardUseCase(f.boards, f.legend).Execute(ctx, dto.CreateCardRequest{
		Stage:       "todo",
		Title:       "Task",
		Description: "first line",
	})
	require.NoError(t, err)
	assert.Equal(t, "Task", created.Title)
	assert.Equal(t, "first line", created.Description)
	assert.Empty(t, created.Comments)

	ref := entity.CardRef{Stage: "todo", Folder: "Task"}
	kept, dropped, err := NewSetCardLegendsUseCase(f.boards).Execute(ctx, ref, []string{"Bug", "Ghost"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bug"}, kept)
	assert.Equal(t, []string{"Ghost"}, dropped)

	comments := NewCommentUseCase(f.boards)
	require.NoError(t, comments.Add(ctx, ref, "hello"))
	require.NoError(t, comments.Add(ctx, ref, "world"))
	require.NoError(t, comments.Edit(ctx, ref, 1, "there"))

	read, err := NewGetCardUseCase(f.boards, f.legend).Execute(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "there"}, read.Comments)
	assert.Equal(t, []dto.LegendDTO{{Name: "Bug", Color: "#FF0000"}}, read.Legends)
	assert.Equal(t, 2, read.CommentCount)
}

func TestMoveArchiveAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.fs.MkdirAll("done"))
	_, err := f.boards.CreateCard(ctx, "todo", "Task", "")
	require.NoError(t, err)

	moved, err := NewMoveCardUseCase(f.boards).Execute(ctx, dto.MoveCardRequest{
		Card:        entity.CardRef{Stage: "todo", Folder: "Task"},
		TargetStage: "done",
	})
	require.NoError(t, err)
	assert.Equal(t, dto.CardRefDTO{Stage: "done", Folder: "Task"}, moved)

	list := NewListCardsUseCase(f.boards)
	cards, err := list.Execute(ctx, "done")
	require.NoError(t, err)
	require.Len(t, cards, 1)

	_, err = list.Execute(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrStageNotFound)

	archive := NewArchiveCardUseCase(f.boards)
	archived, err := archive.Archive(ctx, entity.CardRef{Stage: "done", Folder: "Task"})
	require.NoError(t, err)
	assert.Equal(t, "Arquivados", archived.Stage)

	archivedCards, err := NewListArchivedCardsUseCase(f.boards).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, archivedCards, 1)
	assert.NotNil(t, archivedCards[0].ArchivedAt)

	restored, err := archive.Restore(ctx, entity.CardRef{Stage: archived.Stage, Folder: archived.Folder}, "")
	require.NoError(t, err)
	assert.Equal(t, "done", restored.Stage)
}

func TestFindCardsUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, title := range []string{"Fix login", "Docs"} {
		_, err := f.boards.CreateCard(ctx, "todo", title, "")
		require.NoError(t, err)
	}

	found, err := NewFindCardsUseCase(f.boards).Execute(ctx, "fxlog", false)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Fix login", found[0].Title)
}

func TestAttachmentUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.boards.CreateCard(ctx, "todo", "Task", "")
	require.NoError(t, err)
	ref := entity.CardRef{Stage: "todo", Folder: "Task"}

	local := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(local, []byte("data"), 0644))

	attachments := NewAttachmentUseCase(f.boards)
	name, err := attachments.Attach(ctx, ref, local, "")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", name)

	data, err := f.fs.ReadFileAt("todo/Task/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	_, err = attachments.Attach(ctx, ref, local, "info.txt")
	assert.ErrorIs(t, err, entity.ErrReservedAttachmentName)

	require.NoError(t, attachments.Detach(ctx, ref, "notes.txt"))
	assert.False(t, f.fs.Exists("todo/Task/notes.txt"))
}
