package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fboard/internal/domain/entity"
	"fboard/internal/infrastructure/serialization"
)

func TestCardState_EntityRoundTrip(t *testing.T) {
	archivedAt := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	card := &entity.Card{
		Stage:   "Arquivados",
		Title:   "Fix login",
		Legends: []string{"Bug"},
		Tasks: []entity.Task{
			{ID: "a", Description: "repro", DueAt: archivedAt.Add(time.Hour), CreatedAt: archivedAt},
		},
		Archive: entity.ArchiveInfo{
			Archived:       true,
			ArchivedAt:     &archivedAt,
			FromStageKey:   "progress",
			FromStageLabel: "progress",
		},
	}

	restored := &entity.Card{}
	ApplyCardState(restored, CardStateFromEntity(card))

	assert.Equal(t, card.Legends, restored.Legends)
	assert.Equal(t, card.Tasks, restored.Tasks)
	assert.Equal(t, card.Archive, restored.Archive)
}

func TestTasksFromStorage_DropsTasksWithoutID(t *testing.T) {
	tasks := TasksFromStorage([]serialization.TaskState{
		{ID: "", Description: "orphan"},
		{ID: "x", Description: "kept"},
	})

	assert.Len(t, tasks, 1)
	assert.Equal(t, "x", tasks[0].ID)
}
