package dto

import (
	"time"

	"fboard/internal/domain/service"
)

// ReportDTO represents board statistics
type ReportDTO struct {
	GeneratedAt  time.Time          `json:"generated_at" yaml:"generated_at"`
	TotalCards   int                `json:"total_cards" yaml:"total_cards"`
	Stages       []StageCountDTO    `json:"stages" yaml:"stages"`
	Legends      []LegendCountDTO   `json:"legends" yaml:"legends"`
	TopStage     string             `json:"top_stage,omitempty" yaml:"top_stage,omitempty"`
	TopLegend    string             `json:"top_legend,omitempty" yaml:"top_legend,omitempty"`
	LastActivity *time.Time         `json:"last_activity,omitempty" yaml:"last_activity,omitempty"`
	Active7d     int                `json:"active_7d" yaml:"active_7d"`
	Activity     []ActivityPointDTO `json:"activity" yaml:"activity"`
}

// StageCountDTO is the card count of a stage
type StageCountDTO struct {
	Stage string `json:"stage" yaml:"stage"`
	Count int    `json:"count" yaml:"count"`
}

// LegendCountDTO is the card count of a legend
type LegendCountDTO struct {
	Name    string `json:"name" yaml:"name"`
	Color   string `json:"color" yaml:"color"`
	Count   int    `json:"count" yaml:"count"`
	Percent int    `json:"percent" yaml:"percent"`
}

// ActivityPointDTO counts cards updated on a day
type ActivityPointDTO struct {
	Date  string `json:"date" yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

// ReportToDTO converts a computed report
func ReportToDTO(report *service.Report) *ReportDTO {
	result := &ReportDTO{
		GeneratedAt:  report.GeneratedAt,
		TotalCards:   report.TotalCards,
		Stages:       make([]StageCountDTO, 0, len(report.StageCounts)),
		Legends:      make([]LegendCountDTO, 0, len(report.LegendCounts)),
		LastActivity: timePtr(report.LastActivity),
		Active7d:     report.Active7d,
		Activity:     make([]ActivityPointDTO, 0, len(report.Activity)),
	}
	for _, stage := range report.StageCounts {
		result.Stages = append(result.Stages, StageCountDTO{Stage: stage.Label, Count: stage.Count})
	}
	for _, legend := range report.LegendCounts {
		result.Legends = append(result.Legends, LegendCountDTO(legend))
	}
	for _, point := range report.Activity {
		result.Activity = append(result.Activity, ActivityPointDTO(point))
	}
	if report.TopStage != nil {
		result.TopStage = report.TopStage.Label
	}
	if report.TopLegend != nil {
		result.TopLegend = report.TopLegend.Name
	}
	return result
}
