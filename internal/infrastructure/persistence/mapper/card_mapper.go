package mapper

import (
	"fboard/internal/domain/entity"
	"fboard/internal/infrastructure/serialization"
)

// ApplyCardState copies the card.yml content onto a card
func ApplyCardState(card *entity.Card, state serialization.CardState) {
	card.Legends = append([]string(nil), state.Legends...)
	card.Tasks = TasksFromStorage(state.Tasks)
	card.Archive = entity.ArchiveInfo{
		Archived:       state.Archived,
		ArchivedAt:     state.ArchivedAt,
		FromStageKey:   state.ArchivedFromListID,
		FromStageLabel: state.ArchivedFromListName,
	}
}

// CardStateFromEntity builds the card.yml content of a card
func CardStateFromEntity(card *entity.Card) serialization.CardState {
	return serialization.CardState{
		Legends:              append([]string(nil), card.Legends...),
		Tasks:                TasksToStorage(card.Tasks),
		Archived:             card.Archive.Archived,
		ArchivedAt:           card.Archive.ArchivedAt,
		ArchivedFromListID:   card.Archive.FromStageKey,
		ArchivedFromListName: card.Archive.FromStageLabel,
	}
}

// TasksToStorage converts tasks to their stored form
func TasksToStorage(tasks []entity.Task) []serialization.TaskState {
	if len(tasks) == 0 {
		return nil
	}
	out := make([]serialization.TaskState, len(tasks))
	for i, task := range tasks {
		out[i] = serialization.TaskState{
			ID:          task.ID,
			Description: task.Description,
			DueAt:       task.DueAt,
			IsCompleted: task.IsCompleted,
			CreatedAt:   task.CreatedAt,
			CompletedAt: task.CompletedAt,
		}
	}
	return out
}

// TasksFromStorage converts stored tasks to entities. Entries without an id
// are dropped since nothing could address them.
func TasksFromStorage(stored []serialization.TaskState) []entity.Task {
	out := make([]entity.Task, 0, len(stored))
	for _, task := range stored {
		if task.ID == "" {
			continue
		}
		out = append(out, entity.Task{
			ID:          task.ID,
			Description: task.Description,
			DueAt:       task.DueAt,
			IsCompleted: task.IsCompleted,
			CreatedAt:   task.CreatedAt,
			CompletedAt: task.CompletedAt,
		})
	}
	return out
}
