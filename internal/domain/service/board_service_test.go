package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fboard/internal/domain/entity"
	"fboard/internal/infrastructure/persistence/filesystem"
	"fboard/internal/infrastructure/storage"
)

var serviceNow = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

func newTestBoardService(t *testing.T) (*BoardService, *storage.MemoryFS) {
	t.Helper()
	fs := storage.NewMemoryFS()
	logger, _ := logtest.NewNullLogger()
	repo := filesystem.NewBoardRepository(fs.Root(), filesystem.Options{
		CreateEmptyComments: true,
		Now:                 func() time.Time { return serviceNow },
		Logger:              logger,
	})
	svc := NewBoardService(repo, NewValidationService())
	svc.now = func() time.Time { return serviceNow }
	ids := 0
	svc.newID = func() string {
		ids++
		return fmt.Sprintf("task-%d", ids)
	}
	return svc, fs
}

func TestBoardService_CreateCardValidates(t *testing.T) {
	svc, fs := newTestBoardService(t)

	_, err := svc.CreateCard(context.Background(), "todo", "", "")
	assert.ErrorIs(t, err, entity.ErrEmptyCardTitle)
	assert.False(t, fs.Exists("todo"))
}

func TestBoardService_Tasks(t *testing.T) {
	svc, _ := newTestBoardService(t)
	ctx := context.Background()
	card, err := svc.CreateCard(ctx, "todo", "Card", "")
	require.NoError(t, err)
	due := serviceNow.Add(time.Hour)

	_, err = svc.AddTask(ctx, card.Ref(), "  ", due)
	assert.ErrorIs(t, err, entity.ErrEmptyTaskDescription)
	_, err = svc.AddTask(ctx, card.Ref(), "write", time.Time{})
	assert.ErrorIs(t, err, entity.ErrMissingTaskDueDate)

	first, err := svc.AddTask(ctx, card.Ref(), " write ", due)
	require.NoError(t, err)
	assert.Equal(t, "task-1", first.ID)
	assert.Equal(t, "write", first.Description)
	assert.True(t, first.CreatedAt.Equal(serviceNow))

	_, err = svc.AddTask(ctx, card.Ref(), "review", due.Add(time.Hour))
	require.NoError(t, err)

	toggled, err := svc.ToggleTask(ctx, card.Ref(), "task-1")
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)
	require.NotNil(t, toggled.CompletedAt)
	assert.True(t, toggled.CompletedAt.Equal(serviceNow))

	toggled, err = svc.ToggleTask(ctx, card.Ref(), "task-1")
	require.NoError(t, err)
	assert.False(t, toggled.IsCompleted)
	assert.Nil(t, toggled.CompletedAt)

	_, err = svc.ToggleTask(ctx, card.Ref(), "missing")
	assert.ErrorIs(t, err, entity.ErrTaskNotFound)

	require.NoError(t, svc.RemoveTask(ctx, card.Ref(), "task-2"))
	read, err := svc.GetCard(ctx, card.Ref())
	require.NoError(t, err)
	require.Len(t, read.Tasks, 1)
	assert.Equal(t, "task-1", read.Tasks[0].ID)
}

func TestFindTask_Prefix(t *testing.T) {
	tasks := []entity.Task{{ID: "abc-1"}, {ID: "abd-2"}, {ID: "x"}}

	assert.Equal(t, 0, findTask(tasks, "abc"))
	assert.Equal(t, -1, findTask(tasks, "ab"))
	assert.Equal(t, 2, findTask(tasks, "x"))
	assert.Equal(t, -1, findTask(tasks, ""))
}

func TestBoardService_SetCardLegends(t *testing.T) {
	svc, fs := newTestBoardService(t)
	ctx := context.Background()
	require.NoError(t, fs.WriteFileAt("legendas.txt", []byte("Bug|#FF0000\nFeature|#00FF00")))
	card, err := svc.CreateCard(ctx, "todo", "Card", "")
	require.NoError(t, err)

	kept, dropped, err := svc.SetCardLegends(ctx, card.Ref(), []string{"Feature", "Nope", "Bug", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bug", "Feature"}, kept)
	assert.Equal(t, []string{"Nope"}, dropped)
}

func TestBoardService_MoveCardBy(t *testing.T) {
	svc, fs := newTestBoardService(t)
	ctx := context.Background()
	for _, stage := range []string{"1 todo", "2 doing", "3 done", "Arquivados"} {
		require.NoError(t, fs.MkdirAll(stage))
	}
	card, err := svc.CreateCard(ctx, "1 todo", "Card", "")
	require.NoError(t, err)

	ref, err := svc.MoveCardBy(ctx, card.Ref(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2 doing", ref.Stage)

	ref, err = svc.MoveCardBy(ctx, ref, 1)
	require.NoError(t, err)
	assert.Equal(t, "3 done", ref.Stage)

	ref, err = svc.MoveCardBy(ctx, ref, 1)
	require.NoError(t, err)
	assert.Equal(t, "3 done", ref.Stage)

	ref, err = svc.MoveCardBy(ctx, ref, -2)
	require.NoError(t, err)
	assert.Equal(t, "1 todo", ref.Stage)
	assert.True(t, fs.Exists("1 todo/Card/info.txt"))
}

func TestBoardService_ArchiveRestoreFallsBackToFirstStage(t *testing.T) {
	svc, fs := newTestBoardService(t)
	ctx := context.Background()
	require.NoError(t, fs.MkdirAll("backlog"))
	require.NoError(t, fs.WriteFileAt("Arquivados/Legacy/info.txt", []byte("old")))

	ref, err := svc.RestoreCard(ctx, entity.CardRef{Stage: "Arquivados", Folder: "Legacy"}, "")
	require.NoError(t, err)
	assert.Equal(t, entity.CardRef{Stage: "backlog", Folder: "Legacy"}, ref)

	archived, err := svc.ArchiveCard(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "Arquivados", archived.Stage)
}

func TestBoardService_FindCards(t *testing.T) {
	svc, _ := newTestBoardService(t)
	ctx := context.Background()
	for _, title := range []string{"Fix login bug", "Write docs", "Login page"} {
		_, err := svc.CreateCard(ctx, "todo", title, "")
		require.NoError(t, err)
	}
	old, err := svc.CreateCard(ctx, "todo", "Login archived", "")
	require.NoError(t, err)
	_, err = svc.ArchiveCard(ctx, old.Ref())
	require.NoError(t, err)

	matches, err := svc.FindCards(ctx, "login", false)
	require.NoError(t, err)
	titles := make([]string, 0, len(matches))
	for _, m := range matches {
		titles = append(titles, m.Card.Title)
	}
	assert.ElementsMatch(t, []string{"Fix login bug", "Login page"}, titles)

	matches, err = svc.FindCards(ctx, "login", true)
	require.NoError(t, err)
	assert.Len(t, matches, 3)

	matches, err = svc.FindCards(ctx, "", false)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestAdjacentStage(t *testing.T) {
	board := &entity.Board{
		Stages: []entity.Stage{
			entity.NewStage("a"), entity.NewStage("Arquivados"), entity.NewStage("b"),
		},
		ArchivedStageKey: "Arquivados",
	}

	next, ok := AdjacentStage(board, "a", 1)
	assert.True(t, ok)
	assert.Equal(t, "b", next)

	_, ok = AdjacentStage(board, "b", 1)
	assert.False(t, ok)
	_, ok = AdjacentStage(board, "Arquivados", -1)
	assert.False(t, ok)
}
