package card

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fboard/internal/application/dto"
	"fboard/internal/domain/entity"
	"fboard/internal/domain/service"
)

// CreateCardUseCase handles creating a card
type CreateCardUseCase struct {
	boardService  *service.BoardService
	legendService *service.LegendService
}

// NewCreateCardUseCase creates a new CreateCardUseCase
func NewCreateCardUseCase(
	boardService *service.BoardService,
	legendService *service.LegendService,
) *CreateCardUseCase {
	return &CreateCardUseCase{
		boardService:  boardService,
		legendService: legendService,
	}
}

// Execute creates the card and returns it as stored
func (uc *CreateCardUseCase) Execute(ctx context.Context, req dto.CreateCardRequest) (*dto.CardDTO, error) {
	card, err := uc.boardService.CreateCard(ctx, req.Stage, req.Title, req.Description)
	if err != nil {
		return nil, err
	}
	return cardToDTO(ctx, uc.legendService, card)
}

// GetCardUseCase handles reading a single card
type GetCardUseCase struct {
	boardService  *service.BoardService
	legendService *service.LegendService
}

// NewGetCardUseCase creates a new GetCardUseCase
func NewGetCardUseCase(
	boardService *service.BoardService,
	legendService *service.LegendService,
) *GetCardUseCase {
	return &GetCardUseCase{
		boardService:  boardService,
		legendService: legendService,
	}
}

// Execute reads the card
func (uc *GetCardUseCase) Execute(ctx context.Context, ref entity.CardRef) (*dto.CardDTO, error) {
	card, err := uc.boardService.GetCard(ctx, ref)
	if err != nil {
		return nil, err
	}
	return cardToDTO(ctx, uc.legendService, card)
}

// ListCardsUseCase handles listing the cards of the board
type ListCardsUseCase struct {
	boardService *service.BoardService
}

// NewListCardsUseCase creates a new ListCardsUseCase
func NewListCardsUseCase(boardService *service.BoardService) *ListCardsUseCase {
	return &ListCardsUseCase{
		boardService: boardService,
	}
}

// Execute lists the cards of one stage, or of every visible stage when
// stage is empty
func (uc *ListCardsUseCase) Execute(ctx context.Context, stage string) ([]dto.CardSummaryDTO, error) {
	board, err := uc.boardService.LoadBoard(ctx)
	if err != nil {
		return nil, err
	}

	stages := board.VisibleStages()
	if stage != "" {
		found, ok := board.Stage(stage)
		if !ok {
			return nil, fmt.Errorf("%w: %s", entity.ErrStageNotFound, stage)
		}
		stages = []entity.Stage{found}
	}

	now := time.Now()
	result := make([]dto.CardSummaryDTO, 0)
	for _, s := range stages {
		result = append(result, dto.StageToDTO(board, s, dto.DescriptionPreview, now).Cards...)
	}
	return result, nil
}

// ListArchivedCardsUseCase handles listing archived cards
type ListArchivedCardsUseCase struct {
	boardService *service.BoardService
}

// NewListArchivedCardsUseCase creates a new ListArchivedCardsUseCase
func NewListArchivedCardsUseCase(boardService *service.BoardService) *ListArchivedCardsUseCase {
	return &ListArchivedCardsUseCase{
		boardService: boardService,
	}
}

// Execute lists archived cards, most recently archived first
func (uc *ListArchivedCardsUseCase) Execute(ctx context.Context) ([]dto.CardSummaryDTO, error) {
	board, err := uc.boardService.LoadBoard(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	archived := board.ArchivedCards()
	result := make([]dto.CardSummaryDTO, 0, len(archived))
	for _, card := range archived {
		result = append(result, dto.CardSummaryToDTO(card, board.Legends, dto.DescriptionPreview(card.Description), now))
	}
	return result, nil
}

// FindCardsUseCase handles fuzzy card search
type FindCardsUseCase struct {
	boardService *service.BoardService
}

// NewFindCardsUseCase creates a new FindCardsUseCase
func NewFindCardsUseCase(boardService *service.BoardService) *FindCardsUseCase {
	return &FindCardsUseCase{
		boardService: boardService,
	}
}

// Execute returns the cards whose title matches query, best match first
func (uc *FindCardsUseCase) Execute(ctx context.Context, query string, includeArchived bool) ([]dto.CardSummaryDTO, error) {
	board, err := uc.boardService.LoadBoard(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	matches := service.MatchCards(board, query, includeArchived)
	result := make([]dto.CardSummaryDTO, 0, len(matches))
	for _, match := range matches {
		card := match.Card
		result = append(result, dto.CardSummaryToDTO(card, board.Legends, dto.DescriptionPreview(card.Description), now))
	}
	return result, nil
}

// MoveCardUseCase handles moving a card between stages
type MoveCardUseCase struct {
	boardService *service.BoardService
}

// NewMoveCardUseCase creates a new MoveCardUseCase
func NewMoveCardUseCase(boardService *service.BoardService) *MoveCardUseCase {
	return &MoveCardUseCase{
		boardService: boardService,
	}
}

// Execute moves the card to the target stage
func (uc *MoveCardUseCase) Execute(ctx context.Context, req dto.MoveCardRequest) (dto.CardRefDTO, error) {
	ref, err := uc.boardService.MoveCard(ctx, req.Card, req.TargetStage)
	if err != nil {
		return dto.CardRefDTO{}, err
	}
	return refToDTO(ref), nil
}

// ExecuteBy moves the card offset visible stages to the right
func (uc *MoveCardUseCase) ExecuteBy(ctx context.Context, ref entity.CardRef, offset int) (dto.CardRefDTO, error) {
	moved, err := uc.boardService.MoveCardBy(ctx, ref, offset)
	if err != nil {
		return dto.CardRefDTO{}, err
	}
	return refToDTO(moved), nil
}

// DescribeCardUseCase handles replacing a card description
type DescribeCardUseCase struct {
	boardService *service.BoardService
}

// NewDescribeCardUseCase creates a new DescribeCardUseCase
func NewDescribeCardUseCase(boardService *service.BoardService) *DescribeCardUseCase {
	return &DescribeCardUseCase{
		boardService: boardService,
	}
}

// Execute stores text verbatim as the description
func (uc *DescribeCardUseCase) Execute(ctx context.Context, ref entity.CardRef, text string) error {
	return uc.boardService.UpdateDescription(ctx, ref, text)
}

// ArchiveCardUseCase handles archiving and restoring cards
type ArchiveCardUseCase struct {
	boardService *service.BoardService
}

// NewArchiveCardUseCase creates a new ArchiveCardUseCase
func NewArchiveCardUseCase(boardService *service.BoardService) *ArchiveCardUseCase {
	return &ArchiveCardUseCase{
		boardService: boardService,
	}
}

// Archive moves the card into the archived stage
func (uc *ArchiveCardUseCase) Archive(ctx context.Context, ref entity.CardRef) (dto.CardRefDTO, error) {
	moved, err := uc.boardService.ArchiveCard(ctx, ref)
	if err != nil {
		return dto.CardRefDTO{}, err
	}
	return refToDTO(moved), nil
}

// Restore moves an archived card back to where it came from
func (uc *ArchiveCardUseCase) Restore(ctx context.Context, ref entity.CardRef, fallbackStage string) (dto.CardRefDTO, error) {
	moved, err := uc.boardService.RestoreCard(ctx, ref, fallbackStage)
	if err != nil {
		return dto.CardRefDTO{}, err
	}
	return refToDTO(moved), nil
}

// SetCardLegendsUseCase handles assigning legends to a card
type SetCardLegendsUseCase struct {
	boardService *service.BoardService
}

// NewSetCardLegendsUseCase creates a new SetCardLegendsUseCase
func NewSetCardLegendsUseCase(boardService *service.BoardService) *SetCardLegendsUseCase {
	return &SetCardLegendsUseCase{
		boardService: boardService,
	}
}

// Execute stores the known names and reports the unknown ones
func (uc *SetCardLegendsUseCase) Execute(
	ctx context.Context,
	ref entity.CardRef,
	names []string,
) (kept []string, dropped []string, err error) {
	return uc.boardService.SetCardLegends(ctx, ref, names)
}

// AttachmentUseCase handles card attachments
type AttachmentUseCase struct {
	boardService *service.BoardService
}

// NewAttachmentUseCase creates a new AttachmentUseCase
func NewAttachmentUseCase(boardService *service.BoardService) *AttachmentUseCase {
	return &AttachmentUseCase{
		boardService: boardService,
	}
}

// Attach copies a local file into the card folder under name, or under the
// file's base name when name is empty. It returns the stored name.
func (uc *AttachmentUseCase) Attach(ctx context.Context, ref entity.CardRef, path string, name string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if name == "" {
		name = filepath.Base(path)
	}
	if err := uc.boardService.AttachFile(ctx, ref, name, data); err != nil {
		return "", err
	}
	return name, nil
}

// Detach removes an attachment
func (uc *AttachmentUseCase) Detach(ctx context.Context, ref entity.CardRef, name string) error {
	return uc.boardService.DetachFile(ctx, ref, name)
}

func cardToDTO(ctx context.Context, legendService *service.LegendService, card *entity.Card) (*dto.CardDTO, error) {
	registry, err := legendService.List(ctx)
	if err != nil {
		return nil, err
	}
	result := dto.CardToDTO(card, registry, dto.DescriptionPreview(card.Description), time.Now())
	return &result, nil
}

func refToDTO(ref entity.CardRef) dto.CardRefDTO {
	return dto.CardRefDTO{Stage: ref.Stage, Folder: ref.Folder}
}
