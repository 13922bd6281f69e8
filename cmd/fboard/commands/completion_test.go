package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fboard/internal/application/dto"
)

func TestMatchingRefs(t *testing.T) {
	cards := []dto.CardSummaryDTO{
		{Stage: "todo", Title: "Fix login"},
		{Stage: "todo", Title: "Write docs"},
		{Stage: "done", Title: "Ship"},
	}

	assert.Equal(t, []string{"todo/Fix login", "todo/Write docs"}, matchingRefs(cards, "todo/"))
	assert.Equal(t, []string{"done/Ship"}, matchingRefs(cards, "d"))
	assert.Len(t, matchingRefs(cards, ""), 3)
	assert.Empty(t, matchingRefs(cards, "doing/"))
}
