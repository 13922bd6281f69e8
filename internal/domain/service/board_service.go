package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"fboard/internal/domain/entity"
	"fboard/internal/domain/repository"
)

// BoardService provides high-level domain operations for a board
type BoardService struct {
	boardRepo         repository.BoardRepository
	validationService *ValidationService
	now               func() time.Time
	newID             func() string
}

// NewBoardService creates a new BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	validationService *ValidationService,
) *BoardService {
	return &BoardService{
		boardRepo:         boardRepo,
		validationService: validationService,
		now:               time.Now,
		newID:             uuid.NewString,
	}
}

// CardMatch is a card found by a fuzzy search
type CardMatch struct {
	Card           *entity.Card
	Score          int
	MatchedIndexes []int
}

// LoadBoard reads the whole board
func (s *BoardService) LoadBoard(ctx context.Context) (*entity.Board, error) {
	return s.boardRepo.Load(ctx)
}

// GetCard reads a single card
func (s *BoardService) GetCard(ctx context.Context, ref entity.CardRef) (*entity.Card, error) {
	return s.boardRepo.ReadCard(ctx, ref)
}

// ArchivedStage returns the name of the archived stage
func (s *BoardService) ArchivedStage() string {
	return s.boardRepo.ArchivedStage()
}

// CreateStage creates a stage folder
func (s *BoardService) CreateStage(ctx context.Context, name string) (entity.Stage, error) {
	if err := s.validationService.ValidateStageName(name); err != nil {
		return entity.Stage{}, err
	}
	return s.boardRepo.CreateStage(ctx, name)
}

// CreateCard creates a card in a stage
func (s *BoardService) CreateCard(
	ctx context.Context,
	stage string,
	title string,
	description string,
) (*entity.Card, error) {
	// Validate input
	if err := s.validationService.ValidateStageName(stage); err != nil {
		return nil, err
	}
	if err := s.validationService.ValidateCardTitle(title); err != nil {
		return nil, err
	}

	return s.boardRepo.CreateCard(ctx, stage, title, description)
}

// MoveCard moves a card to another stage
func (s *BoardService) MoveCard(ctx context.Context, ref entity.CardRef, targetStage string) (entity.CardRef, error) {
	if err := s.validationService.ValidateStageName(targetStage); err != nil {
		return ref, err
	}
	return s.boardRepo.MoveCard(ctx, ref, targetStage)
}

// MoveCardBy moves a card offset visible stages to the right (negative
// offsets move left). Moving past either end is a no-op.
func (s *BoardService) MoveCardBy(ctx context.Context, ref entity.CardRef, offset int) (entity.CardRef, error) {
	// Load board
	board, err := s.boardRepo.Load(ctx)
	if err != nil {
		return ref, err
	}

	target, ok := AdjacentStage(board, ref.Stage, offset)
	if !ok {
		return ref, nil
	}
	return s.boardRepo.MoveCard(ctx, ref, target)
}

// AdjacentStage returns the visible stage offset positions away from key
func AdjacentStage(board *entity.Board, key string, offset int) (string, bool) {
	visible := board.VisibleStages()
	index := slices.IndexFunc(visible, func(stage entity.Stage) bool { return stage.Key == key })
	if index < 0 {
		return "", false
	}
	target := index + offset
	if target < 0 || target >= len(visible) || target == index {
		return "", false
	}
	return visible[target].Key, true
}

// UpdateDescription replaces the card description
func (s *BoardService) UpdateDescription(ctx context.Context, ref entity.CardRef, text string) error {
	return s.boardRepo.SaveDescription(ctx, ref, text)
}

// AddComment appends a comment to the card
func (s *BoardService) AddComment(ctx context.Context, ref entity.CardRef, text string) error {
	comment, err := s.validationService.ValidateComment(text)
	if err != nil {
		return err
	}
	return s.boardRepo.AddComment(ctx, ref, comment)
}

// EditComment replaces one comment
func (s *BoardService) EditComment(ctx context.Context, ref entity.CardRef, index int, text string) error {
	comment, err := s.validationService.ValidateComment(text)
	if err != nil {
		return err
	}
	return s.boardRepo.UpdateComment(ctx, ref, index, comment)
}

// DeleteComment removes one comment
func (s *BoardService) DeleteComment(ctx context.Context, ref entity.CardRef, index int) error {
	return s.boardRepo.DeleteComment(ctx, ref, index)
}

// SetCardLegends stores the legends of a card. Names missing from the
// registry are dropped and returned separately.
func (s *BoardService) SetCardLegends(
	ctx context.Context,
	ref entity.CardRef,
	names []string,
) (kept []string, dropped []string, err error) {
	// Load registry to report unknown names
	registry, err := s.boardRepo.LoadLegends(ctx)
	if err != nil {
		return nil, nil, err
	}
	trimmed := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			trimmed = append(trimmed, name)
		}
	}
	_, dropped = entity.SplitLegendNames(trimmed, registry)

	kept, err = s.boardRepo.SaveCardLegends(ctx, ref, trimmed)
	if err != nil {
		return nil, nil, err
	}
	return kept, dropped, nil
}

// AddTask adds a checklist task to a card
func (s *BoardService) AddTask(
	ctx context.Context,
	ref entity.CardRef,
	description string,
	dueAt time.Time,
) (entity.Task, error) {
	// Validate input
	if err := s.validationService.ValidateTaskInput(description, dueAt); err != nil {
		return entity.Task{}, err
	}

	// Load card
	card, err := s.boardRepo.ReadCard(ctx, ref)
	if err != nil {
		return entity.Task{}, err
	}

	// Create task
	task, err := entity.NewTask(s.newID(), description, dueAt, s.now())
	if err != nil {
		return entity.Task{}, err
	}

	tasks := append(entity.CopyTasks(card.Tasks), task)
	if err := s.boardRepo.SaveCardTasks(ctx, ref, tasks); err != nil {
		return entity.Task{}, fmt.Errorf("failed to save tasks: %w", err)
	}
	return task, nil
}

// ToggleTask flips the completion state of a task
func (s *BoardService) ToggleTask(ctx context.Context, ref entity.CardRef, taskID string) (entity.Task, error) {
	card, err := s.boardRepo.ReadCard(ctx, ref)
	if err != nil {
		return entity.Task{}, err
	}

	tasks := entity.CopyTasks(card.Tasks)
	index := findTask(tasks, taskID)
	if index < 0 {
		return entity.Task{}, fmt.Errorf("%w: %s", entity.ErrTaskNotFound, taskID)
	}
	tasks[index].Toggle(s.now())

	if err := s.boardRepo.SaveCardTasks(ctx, ref, tasks); err != nil {
		return entity.Task{}, fmt.Errorf("failed to save tasks: %w", err)
	}
	return tasks[index], nil
}

// RemoveTask deletes a task from a card
func (s *BoardService) RemoveTask(ctx context.Context, ref entity.CardRef, taskID string) error {
	card, err := s.boardRepo.ReadCard(ctx, ref)
	if err != nil {
		return err
	}

	tasks := entity.CopyTasks(card.Tasks)
	index := findTask(tasks, taskID)
	if index < 0 {
		return fmt.Errorf("%w: %s", entity.ErrTaskNotFound, taskID)
	}
	tasks = slices.Delete(tasks, index, index+1)

	if err := s.boardRepo.SaveCardTasks(ctx, ref, tasks); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// findTask matches a full id or an unambiguous id prefix
func findTask(tasks []entity.Task, id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	found := -1
	for i, task := range tasks {
		if task.ID == id {
			return i
		}
		if strings.HasPrefix(task.ID, id) {
			if found >= 0 {
				return -1
			}
			found = i
		}
	}
	return found
}

// AttachFile adds an attachment to a card
func (s *BoardService) AttachFile(ctx context.Context, ref entity.CardRef, name string, data []byte) error {
	return s.boardRepo.AddAttachment(ctx, ref, name, data)
}

// DetachFile removes an attachment from a card
func (s *BoardService) DetachFile(ctx context.Context, ref entity.CardRef, name string) error {
	return s.boardRepo.RemoveAttachment(ctx, ref, name)
}

// ArchiveCard moves a card into the archived stage
func (s *BoardService) ArchiveCard(ctx context.Context, ref entity.CardRef) (entity.CardRef, error) {
	return s.boardRepo.ArchiveCard(ctx, ref)
}

// RestoreCard moves an archived card back. When the original stage is
// unknown the card goes to fallbackStage, or to the first visible stage
// when that is empty too.
func (s *BoardService) RestoreCard(ctx context.Context, ref entity.CardRef, fallbackStage string) (entity.CardRef, error) {
	if strings.TrimSpace(fallbackStage) == "" {
		board, err := s.boardRepo.Load(ctx)
		if err != nil {
			return ref, err
		}
		if visible := board.VisibleStages(); len(visible) > 0 {
			fallbackStage = visible[0].Key
		}
	}
	return s.boardRepo.RestoreCard(ctx, ref, fallbackStage)
}

// FindCards fuzzy matches query against card titles. Archived cards are
// included only when includeArchived is set.
func (s *BoardService) FindCards(ctx context.Context, query string, includeArchived bool) ([]CardMatch, error) {
	board, err := s.boardRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return MatchCards(board, query, includeArchived), nil
}

// MatchCards runs the fuzzy search on an already loaded board
func MatchCards(board *entity.Board, query string, includeArchived bool) []CardMatch {
	var cards []*entity.Card
	for _, card := range board.AllCards() {
		if !includeArchived && board.IsArchivedStage(card.Stage) {
			continue
		}
		cards = append(cards, card)
	}

	if strings.TrimSpace(query) == "" {
		matches := make([]CardMatch, 0, len(cards))
		for _, card := range cards {
			matches = append(matches, CardMatch{Card: card})
		}
		return matches
	}

	results := fuzzy.FindFrom(query, cardSource(cards))
	matches := make([]CardMatch, 0, len(results))
	for _, result := range results {
		matches = append(matches, CardMatch{
			Card:           cards[result.Index],
			Score:          result.Score,
			MatchedIndexes: result.MatchedIndexes,
		})
	}
	return matches
}

type cardSource []*entity.Card

func (c cardSource) String(i int) string { return c[i].Title }
func (c cardSource) Len() int            { return len(c) }
