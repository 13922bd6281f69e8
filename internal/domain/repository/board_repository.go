package repository

import (
	"context"

	"fboard/internal/domain/entity"
)

// BoardRepository defines the interface for board persistence. Cards are
// addressed by reference and re-resolved from the root on every call.
type BoardRepository interface {
	// Load reads the whole board: stages, cards and the legend registry
	Load(ctx context.Context) (*entity.Board, error)

	// ReadCard reads a single card
	ReadCard(ctx context.Context, ref entity.CardRef) (*entity.Card, error)

	// CreateStage opens or creates a stage folder
	CreateStage(ctx context.Context, name string) (entity.Stage, error)

	// CreateCard creates a card folder with a unique name in the stage
	CreateCard(ctx context.Context, stage, title, description string) (*entity.Card, error)

	// MoveCard moves a card folder to another stage
	MoveCard(ctx context.Context, ref entity.CardRef, targetStage string) (entity.CardRef, error)

	// SaveDescription overwrites the card description
	SaveDescription(ctx context.Context, ref entity.CardRef, text string) error

	// AddComment appends one comment
	AddComment(ctx context.Context, ref entity.CardRef, text string) error

	// UpdateComment replaces the comment at index
	UpdateComment(ctx context.Context, ref entity.CardRef, index int, text string) error

	// DeleteComment removes the comment at index
	DeleteComment(ctx context.Context, ref entity.CardRef, index int) error

	// SaveCardLegends stores the card's legend names and returns what was kept
	SaveCardLegends(ctx context.Context, ref entity.CardRef, names []string) ([]string, error)

	// SaveCardTasks replaces the card checklist
	SaveCardTasks(ctx context.Context, ref entity.CardRef, tasks []entity.Task) error

	// AddAttachment writes a file into the card folder
	AddAttachment(ctx context.Context, ref entity.CardRef, name string, data []byte) error

	// RemoveAttachment deletes a file from the card folder
	RemoveAttachment(ctx context.Context, ref entity.CardRef, name string) error

	// ArchiveCard moves a card into the archived stage, remembering its origin
	ArchiveCard(ctx context.Context, ref entity.CardRef) (entity.CardRef, error)

	// RestoreCard moves an archived card back to where it came from
	RestoreCard(ctx context.Context, ref entity.CardRef, fallbackStage string) (entity.CardRef, error)

	// LoadLegends reads the legend registry
	LoadLegends(ctx context.Context) ([]entity.Legend, error)

	// SaveLegends replaces the legend registry
	SaveLegends(ctx context.Context, legends []entity.Legend) error

	// ArchivedStage returns the name of the archived stage folder
	ArchivedStage() string
}
