package serialization

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TaskState is the stored form of a checklist task
type TaskState struct {
	ID          string     `yaml:"id"`
	Description string     `yaml:"description"`
	DueAt       time.Time  `yaml:"due_at"`
	IsCompleted bool       `yaml:"is_completed"`
	CreatedAt   time.Time  `yaml:"created_at"`
	CompletedAt *time.Time `yaml:"completed_at,omitempty"`
}

// CardState is the content of card.yml
type CardState struct {
	Legends              []string    `yaml:"legends,omitempty"`
	Tasks                []TaskState `yaml:"tasks,omitempty"`
	Archived             bool        `yaml:"archived,omitempty"`
	ArchivedAt           *time.Time  `yaml:"archived_at,omitempty"`
	ArchivedFromListID   string      `yaml:"archived_from_list_id,omitempty"`
	ArchivedFromListName string      `yaml:"archived_from_list_name,omitempty"`
}

// IsZero reports whether the state carries nothing worth persisting
func (s CardState) IsZero() bool {
	return len(s.Legends) == 0 && len(s.Tasks) == 0 && !s.Archived &&
		s.ArchivedAt == nil && s.ArchivedFromListID == "" && s.ArchivedFromListName == ""
}

// DecodeCardState parses card.yml. Empty input yields the zero state.
func DecodeCardState(data []byte) (CardState, error) {
	var state CardState
	if len(bytes.TrimSpace(data)) == 0 {
		return state, nil
	}
	if err := yaml.Unmarshal(data, &state); err != nil {
		return CardState{}, fmt.Errorf("failed to parse card state: %w", err)
	}
	return state, nil
}

// EncodeCardState serializes card.yml
func EncodeCardState(state CardState) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(state); err != nil {
		return nil, fmt.Errorf("failed to encode card state: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode card state: %w", err)
	}
	return buf.Bytes(), nil
}
