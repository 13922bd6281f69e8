package task

import (
	"context"
	"time"

	"fboard/internal/application/dto"
	"fboard/internal/domain/entity"
	"fboard/internal/domain/service"
)

// ListTasksUseCase handles listing the checklist of a card
type ListTasksUseCase struct {
	boardService *service.BoardService
}

// NewListTasksUseCase creates a new ListTasksUseCase
func NewListTasksUseCase(boardService *service.BoardService) *ListTasksUseCase {
	return &ListTasksUseCase{
		boardService: boardService,
	}
}

// Execute lists the tasks of a card with their current status
func (uc *ListTasksUseCase) Execute(ctx context.Context, ref entity.CardRef) ([]dto.TaskDTO, error) {
	card, err := uc.boardService.GetCard(ctx, ref)
	if err != nil {
		return nil, err
	}
	return dto.TasksToDTO(card.Tasks, time.Now()), nil
}
