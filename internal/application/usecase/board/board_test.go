package board

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fboard/internal/domain/service"
	"fboard/internal/infrastructure/persistence/filesystem"
	"fboard/internal/infrastructure/storage"
)

func newServices(t *testing.T) (*service.BoardService, *storage.MemoryFS) {
	t.Helper()
	fs := storage.NewMemoryFS()
	logger, _ := logtest.NewNullLogger()
	repo := filesystem.NewBoardRepository(fs.Root(), filesystem.Options{CreateEmptyComments: true, Logger: logger})
	return service.NewBoardService(repo, service.NewValidationService()), fs
}

func TestGetBoardUseCase_HidesArchivedStage(t *testing.T) {
	boardService, fs := newServices(t)
	require.NoError(t, fs.WriteFileAt("2 done/Ship/info.txt", []byte("# Ship\n\nRelease **now**")))
	require.NoError(t, fs.WriteFileAt("1 todo/Plan/info.txt", []byte("")))
	require.NoError(t, fs.WriteFileAt("Arquivados/Old/info.txt", []byte("")))
	require.NoError(t, fs.WriteFileAt("legendas.txt", []byte("Bug|#ff0000")))

	board, err := NewGetBoardUseCase(boardService).Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, board.Stages, 2)
	assert.Equal(t, "1 todo", board.Stages[0].Key)
	assert.Equal(t, "2 done", board.Stages[1].Key)
	assert.Equal(t, "Ship Release now", board.Stages[1].Cards[0].Preview)
	assert.Equal(t, 1, board.ArchivedCount)
	assert.Equal(t, "Arquivados", board.ArchivedStage)
	assert.Equal(t, "#FF0000", board.Legends[0].Color)
}

func TestCreateStageUseCase(t *testing.T) {
	boardService, fs := newServices(t)

	stage, err := NewCreateStageUseCase(boardService).Execute(context.Background(), "backlog")
	require.NoError(t, err)
	assert.Equal(t, "backlog", stage.Key)
	assert.Empty(t, stage.Cards)
	assert.True(t, fs.Exists("backlog"))
}

func TestReportUseCases(t *testing.T) {
	boardService, _ := newServices(t)
	ctx := context.Background()
	_, err := boardService.CreateCard(ctx, "todo", "First", "")
	require.NoError(t, err)
	_, err = boardService.CreateCard(ctx, "todo", "Second", "")
	require.NoError(t, err)
	reports := service.NewReportService()

	report, err := NewGetReportUseCase(boardService, reports).Execute(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalCards)
	assert.Equal(t, "todo", report.TopStage)
	assert.Len(t, report.Activity, 7)

	dir := t.TempDir()
	path, err := NewExportReportUseCase(boardService, reports).Execute(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "fboard-report-board-"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "cardId,title,listName,legendNames,createdAt,updatedAt", lines[0])
}
