package entity

import (
	"sort"
	"strings"

	"fboard/pkg/collation"
)

// DefaultArchivedStage is the stage folder that holds archived cards
const DefaultArchivedStage = "Arquivados"

// Stage is a first level folder of the board root
type Stage struct {
	Key   string
	Label string
}

// NewStage builds a stage whose label is its folder name
func NewStage(name string) Stage {
	return Stage{Key: name, Label: name}
}

// Board is a snapshot of the whole folder tree
type Board struct {
	Root             string
	Stages           []Stage
	CardsByStage     map[string][]*Card
	Legends          []Legend
	ArchivedStageKey string
}

// SortStages orders stages by label with numeric aware collation
func SortStages(stages []Stage) {
	sort.SliceStable(stages, func(i, j int) bool {
		return collation.Less(stages[i].Label, stages[j].Label)
	})
}

// SortCards orders cards newest first, then by title
func SortCards(cards []*Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return collation.Less(a.Title, b.Title)
	})
}

// IsArchivedStage reports whether key names the archived stage (case-insensitive)
func (b *Board) IsArchivedStage(key string) bool {
	archived := b.ArchivedStageKey
	if archived == "" {
		archived = DefaultArchivedStage
	}
	return strings.EqualFold(key, archived)
}

// VisibleStages returns every stage except the archived one
func (b *Board) VisibleStages() []Stage {
	visible := make([]Stage, 0, len(b.Stages))
	for _, stage := range b.Stages {
		if !b.IsArchivedStage(stage.Key) {
			visible = append(visible, stage)
		}
	}
	return visible
}

// ArchivedStage returns the archived stage when its folder exists
func (b *Board) ArchivedStage() (Stage, bool) {
	for _, stage := range b.Stages {
		if b.IsArchivedStage(stage.Key) {
			return stage, true
		}
	}
	return Stage{}, false
}

// ArchivedCards lists archived cards, most recently archived first
func (b *Board) ArchivedCards() []*Card {
	stage, ok := b.ArchivedStage()
	if !ok {
		return nil
	}
	cards := append([]*Card(nil), b.CardsByStage[stage.Key]...)
	sort.SliceStable(cards, func(i, j int) bool {
		return archivedAtUnix(cards[i]) > archivedAtUnix(cards[j])
	})
	return cards
}

// Stage looks up a stage by key
func (b *Board) Stage(key string) (Stage, bool) {
	for _, stage := range b.Stages {
		if stage.Key == key {
			return stage, true
		}
	}
	return Stage{}, false
}

// FindCard looks up a card by reference
func (b *Board) FindCard(ref CardRef) (*Card, error) {
	for _, card := range b.CardsByStage[ref.Stage] {
		if card.Title == ref.Folder {
			return card, nil
		}
	}
	return nil, ErrCardNotFound
}

// AllCards returns the cards of every stage in stage order
func (b *Board) AllCards() []*Card {
	var cards []*Card
	for _, stage := range b.Stages {
		cards = append(cards, b.CardsByStage[stage.Key]...)
	}
	return cards
}

func archivedAtUnix(card *Card) int64 {
	if card.Archive.ArchivedAt == nil {
		return 0
	}
	return card.Archive.ArchivedAt.UnixNano()
}
