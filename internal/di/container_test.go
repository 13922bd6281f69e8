package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fboard/internal/infrastructure/config"
)

func TestInitializeContainer(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "todo", "Task"), 0755))
	cfg := config.Default()
	cfg.Storage.RootPath = root
	logger, _ := logtest.NewNullLogger()

	container, err := InitializeContainer(cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, RootPath(root), container.RootPath)

	board, err := container.GetBoardUseCase.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, board.Stages, 1)
	assert.Equal(t, "Task", board.Stages[0].Cards[0].Title)
}

func TestInitializeContainer_MissingRoot(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.RootPath = filepath.Join(t.TempDir(), "missing")
	logger, _ := logtest.NewNullLogger()

	_, err := InitializeContainer(cfg, logger)
	assert.Error(t, err)
}

func TestProvideRootPath_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Storage.RootPath = "~/boards/main"

	path, err := ProvideRootPath(cfg)
	require.NoError(t, err)
	assert.Equal(t, RootPath(filepath.Join(home, "boards", "main")), path)
}
