package dto

import (
	"time"

	"fboard/internal/domain/entity"
)

// BoardDTO represents a loaded board
type BoardDTO struct {
	Root          string      `json:"root" yaml:"root"`
	Stages        []StageDTO  `json:"stages" yaml:"stages"`
	Legends       []LegendDTO `json:"legends" yaml:"legends"`
	ArchivedStage string      `json:"archived_stage" yaml:"archived_stage"`
	ArchivedCount int         `json:"archived_count" yaml:"archived_count"`
}

// StageDTO represents a stage column and its cards
type StageDTO struct {
	Key   string           `json:"key" yaml:"key"`
	Label string           `json:"label" yaml:"label"`
	Cards []CardSummaryDTO `json:"cards" yaml:"cards"`
}

// LegendDTO represents a registry legend
type LegendDTO struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// PreviewFunc renders the one-line preview of a description
type PreviewFunc func(description string) string

// BoardToDTO converts a board. The archived stage is left out of Stages and
// only counted.
func BoardToDTO(board *entity.Board, preview PreviewFunc, now time.Time) *BoardDTO {
	result := &BoardDTO{
		Root:          board.Root,
		Stages:        make([]StageDTO, 0, len(board.Stages)),
		Legends:       LegendsToDTO(board.Legends),
		ArchivedStage: board.ArchivedStageKey,
		ArchivedCount: len(board.ArchivedCards()),
	}
	for _, stage := range board.VisibleStages() {
		result.Stages = append(result.Stages, StageToDTO(board, stage, preview, now))
	}
	return result
}

// StageToDTO converts one stage with its cards
func StageToDTO(board *entity.Board, stage entity.Stage, preview PreviewFunc, now time.Time) StageDTO {
	cards := board.CardsByStage[stage.Key]
	result := StageDTO{
		Key:   stage.Key,
		Label: stage.Label,
		Cards: make([]CardSummaryDTO, 0, len(cards)),
	}
	for _, card := range cards {
		result.Cards = append(result.Cards, CardSummaryToDTO(card, board.Legends, preview(card.Description), now))
	}
	return result
}

// LegendsToDTO converts the registry
func LegendsToDTO(legends []entity.Legend) []LegendDTO {
	result := make([]LegendDTO, 0, len(legends))
	for _, legend := range legends {
		result = append(result, LegendDTO{Name: legend.Name, Color: legend.Color})
	}
	return result
}

// LegendsByName resolves names against the registry, skipping unknown ones
func LegendsByName(names []string, registry []entity.Legend) []LegendDTO {
	index := entity.LegendIndex(registry)
	result := make([]LegendDTO, 0, len(names))
	for _, name := range names {
		if i, ok := index[name]; ok {
			result = append(result, LegendDTO{Name: name, Color: registry[i].Color})
		}
	}
	return result
}
