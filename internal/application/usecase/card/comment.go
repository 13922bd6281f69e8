package card

import (
	"context"

	"fboard/internal/domain/entity"
	"fboard/internal/domain/service"
)

// CommentUseCase handles adding, editing and deleting comments
type CommentUseCase struct {
	boardService *service.BoardService
}

// NewCommentUseCase creates a new CommentUseCase
func NewCommentUseCase(boardService *service.BoardService) *CommentUseCase {
	return &CommentUseCase{
		boardService: boardService,
	}
}

// Add appends a comment
func (uc *CommentUseCase) Add(ctx context.Context, ref entity.CardRef, text string) error {
	return uc.boardService.AddComment(ctx, ref, text)
}

// Edit replaces the comment at index
func (uc *CommentUseCase) Edit(ctx context.Context, ref entity.CardRef, index int, text string) error {
	return uc.boardService.EditComment(ctx, ref, index, text)
}

// Delete removes the comment at index
func (uc *CommentUseCase) Delete(ctx context.Context, ref entity.CardRef, index int) error {
	return uc.boardService.DeleteComment(ctx, ref, index)
}
