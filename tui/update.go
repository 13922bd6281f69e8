package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fboard/internal/application/dto"
	"fboard/internal/domain/entity"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateHorizontalScroll(m.visibleColumns())
		m.updateScroll(m.visibleCards())
		return m, nil

	case snapshotMsg:
		next := waitForSnapshot(m.snapshots)
		if msg.Generation < m.generation {
			return m, next
		}
		m.generation = msg.Generation
		if msg.Err != nil {
			m.err = msg.Err
			return m, next
		}
		if msg.Board != nil {
			m.applyBoard(msg.Board)
			m.updateHorizontalScroll(m.visibleColumns())
			m.updateScroll(m.visibleCards())
		}
		return m, next

	case actionMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = msg.status
		m.pendingFocus = msg.focus
		return m, m.reload()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Left):
			m.moveLeft()

		case key.Matches(msg, keys.Right):
			m.moveRight()

		case key.Matches(msg, keys.Up):
			m.moveUp()

		case key.Matches(msg, keys.Down):
			m.moveDown()

		case key.Matches(msg, keys.Move):
			return m.startAction(m.moveCard(1))

		case key.Matches(msg, keys.MoveBack):
			return m.startAction(m.moveCard(-1))

		case key.Matches(msg, keys.Archive):
			return m.startAction(m.archiveCard())

		case key.Matches(msg, keys.Reload):
			m.status = "Reloading..."
			return m, m.reload()
		}
	}

	return m, nil
}

// startAction runs one card action at a time; keys pressed while an action
// is in flight are ignored
func (m Model) startAction(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if cmd == nil || m.busy {
		return m, nil
	}
	m.busy = true
	return m, cmd
}

// moveLeft moves focus to the left stage
func (m *Model) moveLeft() {
	if m.focusedColumn > 0 {
		m.focusedColumn--
		m.focusedCard = 0
		m.clampCardFocus()
		m.updateHorizontalScroll(m.visibleColumns())
	}
}

// moveRight moves focus to the right stage
func (m *Model) moveRight() {
	if m.focusedColumn < len(m.board.Stages)-1 {
		m.focusedColumn++
		m.focusedCard = 0
		m.clampCardFocus()
		m.updateHorizontalScroll(m.visibleColumns())
	}
}

// moveUp moves focus to the card above
func (m *Model) moveUp() {
	if m.focusedCard > 0 {
		m.focusedCard--
		m.updateScroll(m.visibleCards())
	}
}

// moveDown moves focus to the card below
func (m *Model) moveDown() {
	if m.focusedCard < m.currentStageCardCount()-1 {
		m.focusedCard++
		m.updateScroll(m.visibleCards())
	}
}

// moveCard moves the focused card offset stages and follows it
func (m Model) moveCard(offset int) tea.Cmd {
	ref := m.currentRef()
	if ref == nil {
		return nil
	}
	target := m.focusedColumn + offset
	if target < 0 || target >= len(m.board.Stages) {
		return nil
	}

	moveCard := m.container.MoveCardUseCase
	label := m.board.Stages[target].Label
	return func() tea.Msg {
		moved, err := moveCard.ExecuteBy(context.Background(), entity.CardRef{Stage: ref.Stage, Folder: ref.Folder}, offset)
		if err != nil {
			return actionMsg{err: fmt.Errorf("move %s: %w", ref.Folder, err)}
		}
		return actionMsg{status: fmt.Sprintf("Moved %s to %s", ref.Folder, label), focus: &moved}
	}
}

// archiveCard archives the focused card and keeps the focus in place
func (m Model) archiveCard() tea.Cmd {
	ref := m.currentRef()
	if ref == nil {
		return nil
	}

	archiveCard := m.container.ArchiveCardUseCase
	var focus *dto.CardRefDTO
	cards := m.board.Stages[m.focusedColumn].Cards
	if m.focusedCard+1 < len(cards) {
		focus = &dto.CardRefDTO{Stage: ref.Stage, Folder: cards[m.focusedCard+1].Title}
	} else if m.focusedCard > 0 {
		focus = &dto.CardRefDTO{Stage: ref.Stage, Folder: cards[m.focusedCard-1].Title}
	}

	return func() tea.Msg {
		if _, err := archiveCard.Archive(context.Background(), entity.CardRef{Stage: ref.Stage, Folder: ref.Folder}); err != nil {
			return actionMsg{err: fmt.Errorf("archive %s: %w", ref.Folder, err)}
		}
		return actionMsg{status: fmt.Sprintf("Archived %s", ref.Folder), focus: focus}
	}
}

// clampCardFocus ensures the card focus is within valid bounds
func (m *Model) clampCardFocus() {
	cardCount := m.currentStageCardCount()
	if cardCount == 0 {
		m.focusedCard = 0
	} else if m.focusedCard >= cardCount {
		m.focusedCard = cardCount - 1
	}
}
