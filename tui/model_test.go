package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fboard/internal/daemon"
	"fboard/internal/di"
	"fboard/internal/domain/entity"
	"fboard/internal/infrastructure/config"
)

func newTestModel(t *testing.T) (Model, string) {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{
		filepath.Join("1 todo", "Alpha"),
		filepath.Join("1 todo", "Beta"),
		"2 doing",
		"3 done",
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
	}

	cfg := config.Default()
	cfg.Storage.RootPath = root
	logger, _ := logtest.NewNullLogger()
	container, err := di.InitializeContainer(cfg, logger)
	require.NoError(t, err)

	board, err := container.GetBoardUseCase.Execute(context.Background())
	require.NoError(t, err)

	m := NewModel(board, container, nil, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, root
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

// run feeds msg to the model and then every message produced by the
// returned commands, as the bubbletea runtime would
func run(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	for msg != nil {
		next, cmd := m.Update(msg)
		m = next.(Model)
		if cmd == nil {
			break
		}
		msg = cmd()
	}
	return m
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestModel_Navigation(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, "Alpha", m.currentCard().Title)

	m = update(t, m, press("j"))
	assert.Equal(t, "Beta", m.currentCard().Title)

	m = update(t, m, press("j"))
	assert.Equal(t, "Beta", m.currentCard().Title, "focus stays on the last card")

	m = update(t, m, press("right"))
	assert.Equal(t, 1, m.focusedColumn)
	assert.Nil(t, m.currentCard())

	m = update(t, m, press("h"))
	assert.Equal(t, 0, m.focusedColumn)
	assert.Equal(t, 0, m.focusedCard)
}

func TestModel_MoveFollowsCard(t *testing.T) {
	m, root := newTestModel(t)

	m = run(t, m, press("enter"))

	require.NoError(t, m.err)
	assert.Equal(t, "Moved Alpha to 2 doing", m.status)
	assert.DirExists(t, filepath.Join(root, "2 doing", "Alpha"))
	assert.NoDirExists(t, filepath.Join(root, "1 todo", "Alpha"))
	assert.Equal(t, 1, m.focusedColumn)
	assert.Equal(t, "Alpha", m.currentCard().Title)

	m = run(t, m, press("M"))
	assert.Equal(t, 0, m.focusedColumn)
	assert.Equal(t, "Alpha", m.currentCard().Title)
}

func TestModel_MoveAtLastStageIsIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, press("l"))
	m = update(t, m, press("l"))

	next, cmd := m.Update(press("m"))
	assert.Nil(t, cmd)
	assert.False(t, next.(Model).busy)
}

func TestModel_Archive(t *testing.T) {
	m, root := newTestModel(t)

	m = run(t, m, press("a"))

	require.NoError(t, m.err)
	assert.DirExists(t, filepath.Join(root, "Arquivados", "Alpha"))
	assert.Equal(t, 1, m.board.ArchivedCount)
	require.Len(t, m.board.Stages, 3, "the archived stage is not a column")
	assert.Equal(t, "Beta", m.currentCard().Title)
}

func TestModel_BusyIgnoresSecondAction(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(press("m"))
	require.NotNil(t, cmd)
	m = next.(Model)
	assert.True(t, m.busy)

	_, second := m.Update(press("a"))
	assert.Nil(t, second)
}

func TestModel_ActionError(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, actionMsg{err: errors.New("boom")})

	assert.EqualError(t, m.err, "boom")
	assert.Contains(t, m.View(), "boom")
}

func TestModel_PermissionErrorSuggestsRoot(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, actionMsg{err: fmt.Errorf("move Alpha: %w", entity.ErrPermissionDenied)})

	assert.Contains(t, m.View(), "--root")
}

func TestModel_StaleSnapshotIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m.generation = 5

	m = update(t, m, snapshotMsg(daemon.Snapshot{Generation: 3, Err: errors.New("old failure")}))
	assert.NoError(t, m.err)

	m = update(t, m, snapshotMsg(daemon.Snapshot{Generation: 6, Err: errors.New("new failure")}))
	assert.EqualError(t, m.err, "new failure")
	assert.Len(t, m.board.Stages, 3, "a failed reload keeps the last board")
}

func TestModel_ExternalChangeKeepsFocus(t *testing.T) {
	m, root := newTestModel(t)
	m = update(t, m, press("j"))
	require.Equal(t, "Beta", m.currentCard().Title)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "1 todo", "0 First"), 0755))
	m = run(t, m, press("r"))

	require.Len(t, m.board.Stages[0].Cards, 3)
	assert.Equal(t, "Beta", m.currentCard().Title)
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()

	assert.Contains(t, view, "1 todo (2)")
	assert.Contains(t, view, "Alpha")
	assert.Contains(t, view, "(empty)")
	assert.Contains(t, view, "stage left")
}

func TestInitKeybindings(t *testing.T) {
	m, root := newTestModel(t)

	cfg := config.Default()
	cfg.Keybindings.Move = []string{"n"}
	InitKeybindings(cfg)
	t.Cleanup(func() { InitKeybindings(config.Default()) })

	_, cmd := m.Update(press("m"))
	assert.Nil(t, cmd, "the default binding is replaced")

	m = run(t, m, press("n"))
	assert.DirExists(t, filepath.Join(root, "2 doing", "Alpha"))
	assert.Equal(t, 1, m.focusedColumn)
}
