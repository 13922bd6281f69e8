package task

import (
	"context"
	"time"

	"fboard/internal/application/dto"
	"fboard/internal/domain/entity"
	"fboard/internal/domain/service"
)

// AddTaskUseCase handles adding a checklist task
type AddTaskUseCase struct {
	boardService *service.BoardService
}

// NewAddTaskUseCase creates a new AddTaskUseCase
func NewAddTaskUseCase(boardService *service.BoardService) *AddTaskUseCase {
	return &AddTaskUseCase{
		boardService: boardService,
	}
}

// Execute adds the task and returns it
func (uc *AddTaskUseCase) Execute(ctx context.Context, req dto.AddTaskRequest) (dto.TaskDTO, error) {
	task, err := uc.boardService.AddTask(ctx, req.Card, req.Description, req.DueAt)
	if err != nil {
		return dto.TaskDTO{}, err
	}
	return dto.TaskToDTO(task, time.Now()), nil
}

// ToggleTaskUseCase handles completing and reopening tasks
type ToggleTaskUseCase struct {
	boardService *service.BoardService
}

// NewToggleTaskUseCase creates a new ToggleTaskUseCase
func NewToggleTaskUseCase(boardService *service.BoardService) *ToggleTaskUseCase {
	return &ToggleTaskUseCase{
		boardService: boardService,
	}
}

// Execute flips the task matching taskID, which may be an id prefix
func (uc *ToggleTaskUseCase) Execute(ctx context.Context, ref entity.CardRef, taskID string) (dto.TaskDTO, error) {
	task, err := uc.boardService.ToggleTask(ctx, ref, taskID)
	if err != nil {
		return dto.TaskDTO{}, err
	}
	return dto.TaskToDTO(task, time.Now()), nil
}

// RemoveTaskUseCase handles deleting tasks
type RemoveTaskUseCase struct {
	boardService *service.BoardService
}

// NewRemoveTaskUseCase creates a new RemoveTaskUseCase
func NewRemoveTaskUseCase(boardService *service.BoardService) *RemoveTaskUseCase {
	return &RemoveTaskUseCase{
		boardService: boardService,
	}
}

// Execute deletes the task matching taskID
func (uc *RemoveTaskUseCase) Execute(ctx context.Context, ref entity.CardRef, taskID string) error {
	return uc.boardService.RemoveTask(ctx, ref, taskID)
}
