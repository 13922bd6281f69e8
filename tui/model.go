package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"fboard/internal/application/dto"
	"fboard/internal/daemon"
	"fboard/internal/di"
)

// cardHeight is the rendered height of a card: border, title, preview and
// the badge line
const cardHeight = 5

// Model represents the TUI state
type Model struct {
	board                  *dto.BoardDTO
	container              *di.Container
	reloader               *daemon.Reloader
	snapshots              <-chan daemon.Snapshot
	generation             uint64
	focusedColumn          int   // which stage is currently selected
	focusedCard            int   // which card in the current stage is selected
	scrollOffsets          []int // scroll offset for each stage (vertical)
	horizontalScrollOffset int   // horizontal scroll offset for stages
	width                  int
	height                 int
	busy                   bool
	pendingFocus           *dto.CardRefDTO
	status                 string
	err                    error
	help                   help.Model
}

// NewModel creates a new TUI model. When reloader is nil the board is
// reloaded directly after every action and no live updates are received.
func NewModel(board *dto.BoardDTO, container *di.Container, reloader *daemon.Reloader, snapshots <-chan daemon.Snapshot) Model {
	if board == nil {
		board = &dto.BoardDTO{}
	}
	return Model{
		board:         board,
		container:     container,
		reloader:      reloader,
		snapshots:     snapshots,
		scrollOffsets: make([]int, len(board.Stages)),
		help:          help.New(),
	}
}

// snapshotMsg carries a reloaded board
type snapshotMsg daemon.Snapshot

// actionMsg reports the outcome of a card action
type actionMsg struct {
	status string
	focus  *dto.CardRefDTO
	err    error
}

// waitForSnapshot blocks until the reloader publishes
func waitForSnapshot(snapshots <-chan daemon.Snapshot) tea.Cmd {
	if snapshots == nil {
		return nil
	}
	return func() tea.Msg {
		snapshot, ok := <-snapshots
		if !ok {
			return nil
		}
		return snapshotMsg(snapshot)
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.snapshots)
}

// reload asks for a fresh board
func (m Model) reload() tea.Cmd {
	if m.reloader != nil {
		reloader := m.reloader
		return func() tea.Msg {
			reloader.Reload(context.Background())
			return nil
		}
	}
	getBoard := m.container.GetBoardUseCase
	generation := m.generation + 1
	return func() tea.Msg {
		board, err := getBoard.Execute(context.Background())
		return snapshotMsg{Generation: generation, Board: board, Err: err}
	}
}

// Helper to get card count in current stage
func (m Model) currentStageCardCount() int {
	if m.focusedColumn < 0 || m.focusedColumn >= len(m.board.Stages) {
		return 0
	}
	return len(m.board.Stages[m.focusedColumn].Cards)
}

// Helper to get current card
func (m Model) currentCard() *dto.CardSummaryDTO {
	count := m.currentStageCardCount()
	if count == 0 || m.focusedCard < 0 || m.focusedCard >= count {
		return nil
	}
	return &m.board.Stages[m.focusedColumn].Cards[m.focusedCard]
}

// currentRef identifies the focused card
func (m Model) currentRef() *dto.CardRefDTO {
	card := m.currentCard()
	if card == nil {
		return nil
	}
	return &dto.CardRefDTO{Stage: card.Stage, Folder: card.Title}
}

// applyBoard swaps in a reloaded board and keeps the focus on the same card
// when it still exists
func (m *Model) applyBoard(board *dto.BoardDTO) {
	focus := m.pendingFocus
	if focus == nil {
		focus = m.currentRef()
	}
	m.pendingFocus = nil

	m.board = board
	if len(m.scrollOffsets) != len(board.Stages) {
		offsets := make([]int, len(board.Stages))
		copy(offsets, m.scrollOffsets)
		m.scrollOffsets = offsets
	}

	if focus != nil {
		for i, stage := range board.Stages {
			if stage.Key != focus.Stage {
				continue
			}
			m.focusedColumn = i
			for j, card := range stage.Cards {
				if card.Title == focus.Folder {
					m.focusedCard = j
					break
				}
			}
			break
		}
	}

	if m.focusedColumn >= len(board.Stages) {
		m.focusedColumn = max(len(board.Stages)-1, 0)
	}
	m.clampCardFocus()
}

// Helper to update scroll position to keep focused card visible
func (m *Model) updateScroll(viewportHeight int) {
	if m.focusedColumn < 0 || m.focusedColumn >= len(m.scrollOffsets) {
		return
	}

	cardCount := m.currentStageCardCount()
	if cardCount == 0 {
		m.scrollOffsets[m.focusedColumn] = 0
		return
	}

	scrollOffset := m.scrollOffsets[m.focusedColumn]

	if m.focusedCard < scrollOffset {
		m.scrollOffsets[m.focusedColumn] = m.focusedCard
	} else if m.focusedCard >= scrollOffset+viewportHeight {
		m.scrollOffsets[m.focusedColumn] = m.focusedCard - viewportHeight + 1
	}

	maxScroll := max(cardCount-viewportHeight, 0)
	m.scrollOffsets[m.focusedColumn] = min(max(m.scrollOffsets[m.focusedColumn], 0), maxScroll)
}

// Helper to update horizontal scroll to keep focused stage visible
func (m *Model) updateHorizontalScroll(visibleColumns int) {
	if visibleColumns <= 0 {
		visibleColumns = 1
	}

	totalColumns := len(m.board.Stages)
	if totalColumns == 0 {
		m.horizontalScrollOffset = 0
		return
	}

	if m.focusedColumn < m.horizontalScrollOffset {
		m.horizontalScrollOffset = m.focusedColumn
	} else if m.focusedColumn >= m.horizontalScrollOffset+visibleColumns {
		m.horizontalScrollOffset = m.focusedColumn - visibleColumns + 1
	}

	maxScroll := max(totalColumns-visibleColumns, 0)
	m.horizontalScrollOffset = min(max(m.horizontalScrollOffset, 0), maxScroll)
}

// visibleCards is how many cards fit in a stage
func (m Model) visibleCards() int {
	return max((m.height-10)/cardHeight, 1)
}

// visibleColumns is how many stages fit side by side
func (m Model) visibleColumns() int {
	if m.width == 0 {
		return max(len(m.board.Stages), 1)
	}
	return max(m.width/minColumnWidth, 1)
}
