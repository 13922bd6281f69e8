package board

import (
	"context"
	"time"

	"fboard/internal/application/dto"
	"fboard/internal/domain/service"
)

// GetBoardUseCase handles loading the whole board
type GetBoardUseCase struct {
	boardService *service.BoardService
}

// NewGetBoardUseCase creates a new GetBoardUseCase
func NewGetBoardUseCase(boardService *service.BoardService) *GetBoardUseCase {
	return &GetBoardUseCase{
		boardService: boardService,
	}
}

// Execute loads the board and converts it for display
func (uc *GetBoardUseCase) Execute(ctx context.Context) (*dto.BoardDTO, error) {
	board, err := uc.boardService.LoadBoard(ctx)
	if err != nil {
		return nil, err
	}
	return dto.BoardToDTO(board, dto.DescriptionPreview, time.Now()), nil
}

// CreateStageUseCase handles creating a stage folder
type CreateStageUseCase struct {
	boardService *service.BoardService
}

// NewCreateStageUseCase creates a new CreateStageUseCase
func NewCreateStageUseCase(boardService *service.BoardService) *CreateStageUseCase {
	return &CreateStageUseCase{
		boardService: boardService,
	}
}

// Execute creates the stage, or returns the existing one
func (uc *CreateStageUseCase) Execute(ctx context.Context, name string) (dto.StageDTO, error) {
	stage, err := uc.boardService.CreateStage(ctx, name)
	if err != nil {
		return dto.StageDTO{}, err
	}
	return dto.StageDTO{
		Key:   stage.Key,
		Label: stage.Label,
		Cards: []dto.CardSummaryDTO{},
	}, nil
}
