package service

import (
	"fmt"
	"strings"
	"time"

	"fboard/internal/domain/entity"
)

// ValidationService checks user input before it reaches the repository
type ValidationService struct{}

// NewValidationService creates a new ValidationService
func NewValidationService() *ValidationService {
	return &ValidationService{}
}

// ValidateStageName validates a stage folder name
func (s *ValidationService) ValidateStageName(name string) error {
	return entity.ValidateStageName(name)
}

// ValidateCardTitle validates a card folder name
func (s *ValidationService) ValidateCardTitle(title string) error {
	return entity.ValidateCardTitle(title)
}

// ValidateComment validates a comment and returns it trimmed
func (s *ValidationService) ValidateComment(text string) (string, error) {
	return entity.ValidateComment(text)
}

// ValidateLegends validates a full legend registry
func (s *ValidationService) ValidateLegends(legends []entity.Legend) error {
	return entity.ValidateLegends(legends)
}

// ValidateStageExists checks that key is a stage of the board
func (s *ValidationService) ValidateStageExists(board *entity.Board, key string) error {
	if _, ok := board.Stage(key); !ok {
		return fmt.Errorf("%w: %s", entity.ErrStageNotFound, key)
	}
	return nil
}

// ValidateTaskInput validates the user supplied fields of a new task
func (s *ValidationService) ValidateTaskInput(description string, dueAt time.Time) error {
	if strings.TrimSpace(description) == "" {
		return entity.ErrEmptyTaskDescription
	}
	if dueAt.IsZero() {
		return entity.ErrMissingTaskDueDate
	}
	return nil
}
