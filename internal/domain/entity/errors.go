package entity

import (
	"errors"
	"fmt"
)

var (
	// Storage errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrIOFailure        = errors.New("io failure")
	ErrNameCollision    = errors.New("name already exists")

	// ErrSourceMissing is returned when a card folder vanished before it could be moved
	ErrSourceMissing = fmt.Errorf("source card folder no longer exists: %w", ErrNotFound)

	// ErrValidation is wrapped by every input validation error below
	ErrValidation = errors.New("validation failed")

	// Stage errors
	ErrEmptyStageName   = fmt.Errorf("%w: stage name cannot be empty", ErrValidation)
	ErrInvalidStageName = fmt.Errorf("%w: invalid stage name", ErrValidation)

	// Card errors
	ErrEmptyCardTitle   = fmt.Errorf("%w: card title cannot be empty", ErrValidation)
	ErrInvalidCardTitle = fmt.Errorf("%w: invalid card title", ErrValidation)
	ErrCardNotArchived  = fmt.Errorf("%w: card is not archived", ErrValidation)
	ErrCardNotFound     = fmt.Errorf("card %w", ErrNotFound)
	ErrStageNotFound    = fmt.Errorf("stage %w", ErrNotFound)

	// Comment errors
	ErrEmptyComment     = fmt.Errorf("%w: comment cannot be empty", ErrValidation)
	ErrMultilineComment = fmt.Errorf("%w: comment must be a single line", ErrValidation)
	ErrCommentIndex     = fmt.Errorf("%w: comment index out of range", ErrValidation)

	// Attachment errors
	ErrInvalidAttachmentName  = fmt.Errorf("%w: invalid attachment name", ErrValidation)
	ErrReservedAttachmentName = fmt.Errorf("%w: attachment name is reserved", ErrValidation)

	// Legend errors
	ErrEmptyLegendName     = fmt.Errorf("%w: legend name cannot be empty", ErrValidation)
	ErrInvalidLegendName   = fmt.Errorf("%w: legend name cannot contain '|' or line breaks", ErrValidation)
	ErrDuplicateLegendName = fmt.Errorf("%w: duplicate legend name", ErrValidation)
	ErrLegendNotFound      = fmt.Errorf("legend %w", ErrNotFound)

	// Task errors
	ErrInvalidTaskID        = fmt.Errorf("%w: task id cannot be empty", ErrValidation)
	ErrEmptyTaskDescription = fmt.Errorf("%w: task description cannot be empty", ErrValidation)
	ErrMissingTaskDueDate   = fmt.Errorf("%w: task due date is required", ErrValidation)
	ErrDuplicateTaskID      = fmt.Errorf("%w: duplicate task id", ErrValidation)
	ErrTaskNotFound         = fmt.Errorf("task %w", ErrNotFound)
)
