package dto

import (
	"time"

	"fboard/internal/domain/entity"
)

// shortIDLength is how many characters of a task id are shown in lists
const shortIDLength = 8

// CardRefDTO identifies a card on the board
type CardRefDTO struct {
	Stage  string `json:"stage" yaml:"stage"`
	Folder string `json:"folder" yaml:"folder"`
}

// CardSummaryDTO is the list view of a card
type CardSummaryDTO struct {
	Stage           string         `json:"stage" yaml:"stage"`
	Title           string         `json:"title" yaml:"title"`
	Preview         string         `json:"preview,omitempty" yaml:"preview,omitempty"`
	Legends         []LegendDTO    `json:"legends,omitempty" yaml:"legends,omitempty"`
	CommentCount    int            `json:"comment_count" yaml:"comment_count"`
	AttachmentCount int            `json:"attachment_count" yaml:"attachment_count"`
	Tasks           TaskSummaryDTO `json:"tasks" yaml:"tasks"`
	UpdatedAt       *time.Time     `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	ArchivedAt      *time.Time     `json:"archived_at,omitempty" yaml:"archived_at,omitempty"`
}

// CardDTO is the full view of a card
type CardDTO struct {
	CardSummaryDTO `yaml:",inline"`
	Description    string          `json:"description" yaml:"description"`
	Comments       []string        `json:"comments" yaml:"comments"`
	Attachments    []AttachmentDTO `json:"attachments" yaml:"attachments"`
	TaskList       []TaskDTO       `json:"task_list" yaml:"task_list"`
	UnknownLegends []string        `json:"unknown_legends,omitempty" yaml:"unknown_legends,omitempty"`
	Archive        *ArchiveDTO     `json:"archive,omitempty" yaml:"archive,omitempty"`
}

// AttachmentDTO describes a file stored in a card folder
type AttachmentDTO struct {
	Name         string    `json:"name" yaml:"name"`
	Size         int64     `json:"size" yaml:"size"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`
}

// ArchiveDTO is the archive bookkeeping of a card
type ArchiveDTO struct {
	ArchivedAt     *time.Time `json:"archived_at,omitempty" yaml:"archived_at,omitempty"`
	FromStage      string     `json:"from_stage,omitempty" yaml:"from_stage,omitempty"`
	FromStageLabel string     `json:"from_stage_label,omitempty" yaml:"from_stage_label,omitempty"`
}

// TaskDTO represents a checklist task
type TaskDTO struct {
	ID          string     `json:"id" yaml:"id"`
	ShortID     string     `json:"short_id" yaml:"short_id"`
	Description string     `json:"description" yaml:"description"`
	DueAt       time.Time  `json:"due_at" yaml:"due_at"`
	IsCompleted bool       `json:"is_completed" yaml:"is_completed"`
	Status      string     `json:"status" yaml:"status"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// TaskSummaryDTO aggregates a card checklist
type TaskSummaryDTO struct {
	Completed   int        `json:"completed" yaml:"completed"`
	Total       int        `json:"total" yaml:"total"`
	NextDueAt   *time.Time `json:"next_due_at,omitempty" yaml:"next_due_at,omitempty"`
	WorstStatus string     `json:"worst_status" yaml:"worst_status"`
}

// CreateCardRequest represents a request to create a card
type CreateCardRequest struct {
	Stage       string `json:"stage"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MoveCardRequest represents a request to move a card
type MoveCardRequest struct {
	Card        entity.CardRef `json:"card"`
	TargetStage string         `json:"target_stage"`
}

// AddTaskRequest represents a request to add a checklist task
type AddTaskRequest struct {
	Card        entity.CardRef `json:"card"`
	Description string         `json:"description"`
	DueAt       time.Time      `json:"due_at"`
}

// CardSummaryToDTO converts a card for list views. preview is the already
// rendered description preview.
func CardSummaryToDTO(card *entity.Card, registry []entity.Legend, preview string, now time.Time) CardSummaryDTO {
	known, _ := card.KnownLegends(registry)
	summary := CardSummaryDTO{
		Stage:           card.Stage,
		Title:           card.Title,
		Preview:         preview,
		Legends:         LegendsByName(known, registry),
		CommentCount:    len(card.Comments),
		AttachmentCount: len(card.Attachments),
		Tasks:           TaskSummaryToDTO(card.TaskSummary(now)),
		UpdatedAt:       timePtr(card.UpdatedAt),
	}
	if card.Archive.ArchivedAt != nil {
		archivedAt := *card.Archive.ArchivedAt
		summary.ArchivedAt = &archivedAt
	}
	return summary
}

// CardToDTO converts a card for the detail view
func CardToDTO(card *entity.Card, registry []entity.Legend, preview string, now time.Time) CardDTO {
	_, unknown := card.KnownLegends(registry)
	result := CardDTO{
		CardSummaryDTO: CardSummaryToDTO(card, registry, preview, now),
		Description:    card.Description,
		Comments:       append([]string{}, card.Comments...),
		Attachments:    make([]AttachmentDTO, 0, len(card.Attachments)),
		TaskList:       TasksToDTO(card.Tasks, now),
		UnknownLegends: unknown,
	}
	for _, attachment := range card.Attachments {
		result.Attachments = append(result.Attachments, AttachmentDTO{
			Name:         attachment.Name,
			Size:         attachment.Size,
			LastModified: attachment.LastModified,
		})
	}
	if card.Archive.Archived {
		result.Archive = &ArchiveDTO{
			ArchivedAt:     card.Archive.ArchivedAt,
			FromStage:      card.Archive.FromStageKey,
			FromStageLabel: card.Archive.FromStageLabel,
		}
	}
	return result
}

// TaskToDTO converts a task
func TaskToDTO(task entity.Task, now time.Time) TaskDTO {
	shortID := task.ID
	if len(shortID) > shortIDLength {
		shortID = shortID[:shortIDLength]
	}
	return TaskDTO{
		ID:          task.ID,
		ShortID:     shortID,
		Description: task.Description,
		DueAt:       task.DueAt,
		IsCompleted: task.IsCompleted,
		Status:      string(task.Status(now)),
		CreatedAt:   task.CreatedAt,
		CompletedAt: task.CompletedAt,
	}
}

// TasksToDTO converts a checklist
func TasksToDTO(tasks []entity.Task, now time.Time) []TaskDTO {
	result := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, TaskToDTO(task, now))
	}
	return result
}

// TaskSummaryToDTO converts a checklist summary
func TaskSummaryToDTO(summary entity.TaskSummary) TaskSummaryDTO {
	result := TaskSummaryDTO{
		Completed:   summary.Completed,
		Total:       summary.Total,
		WorstStatus: string(summary.WorstStatus),
	}
	if summary.NextDue != nil {
		result.NextDueAt = timePtr(summary.NextDue.DueAt)
	}
	return result
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
