package entity

import (
	"sort"
	"strings"
	"time"
)

const (
	veryNearWindow = 2 * time.Hour
	nearWindow     = 24 * time.Hour
)

// TaskStatus classifies a checklist task relative to its due date
type TaskStatus string

const (
	TaskCompleted TaskStatus = "completed"
	TaskOverdue   TaskStatus = "overdue"
	TaskVeryNear  TaskStatus = "very_near"
	TaskNear      TaskStatus = "near"
	TaskOK        TaskStatus = "ok"
)

// severity orders statuses from least to most urgent
func (s TaskStatus) severity() int {
	switch s {
	case TaskOverdue:
		return 3
	case TaskVeryNear:
		return 2
	case TaskNear:
		return 1
	default:
		return 0
	}
}

// Task is a dated checklist item attached to a card
type Task struct {
	ID          string
	Description string
	DueAt       time.Time
	IsCompleted bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// NewTask creates a pending task
func NewTask(id, description string, dueAt, now time.Time) (Task, error) {
	task := Task{
		ID:          id,
		Description: strings.TrimSpace(description),
		DueAt:       dueAt,
		CreatedAt:   now,
	}
	if err := task.Validate(); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Validate checks the fields a persisted task must carry
func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrInvalidTaskID
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyTaskDescription
	}
	if t.DueAt.IsZero() {
		return ErrMissingTaskDueDate
	}
	return nil
}

// SetCompleted flips completion and stamps or clears CompletedAt
func (t *Task) SetCompleted(completed bool, now time.Time) {
	t.IsCompleted = completed
	if completed {
		stamp := now
		t.CompletedAt = &stamp
		return
	}
	t.CompletedAt = nil
}

// Toggle inverts the completion state
func (t *Task) Toggle(now time.Time) {
	t.SetCompleted(!t.IsCompleted, now)
}

// Status returns how urgent the task is at the given instant
func (t Task) Status(now time.Time) TaskStatus {
	if t.IsCompleted {
		return TaskCompleted
	}
	if t.DueAt.IsZero() {
		return TaskOK
	}
	diff := t.DueAt.Sub(now)
	switch {
	case diff < 0:
		return TaskOverdue
	case diff <= veryNearWindow:
		return TaskVeryNear
	case diff <= nearWindow:
		return TaskNear
	default:
		return TaskOK
	}
}

// TaskSummary aggregates a card's checklist for display
type TaskSummary struct {
	Completed   int
	Total       int
	NextDue     *Task
	WorstStatus TaskStatus
}

// NextDueTask returns the pending task with the earliest due date
func NextDueTask(tasks []Task) *Task {
	pending := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if task.IsCompleted || task.DueAt.IsZero() {
			continue
		}
		pending = append(pending, task)
	}
	if len(pending) == 0 {
		return nil
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].DueAt.Before(pending[j].DueAt)
	})
	next := pending[0]
	return &next
}

// SummarizeTasks computes completion counts and the most urgent pending status
func SummarizeTasks(tasks []Task, now time.Time) TaskSummary {
	summary := TaskSummary{
		Total:       len(tasks),
		NextDue:     NextDueTask(tasks),
		WorstStatus: TaskOK,
	}
	for _, task := range tasks {
		if task.IsCompleted {
			summary.Completed++
			continue
		}
		if status := task.Status(now); status.severity() > summary.WorstStatus.severity() {
			summary.WorstStatus = status
		}
	}
	return summary
}

// CopyTasks returns a deep copy of a task list
func CopyTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, task := range tasks {
		out[i] = task
		if task.CompletedAt != nil {
			completed := *task.CompletedAt
			out[i].CompletedAt = &completed
		}
	}
	return out
}
