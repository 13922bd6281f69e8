package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"fboard/internal/domain/entity"
	"fboard/pkg/slug"
)

const (
	// NoLegendLabel is the bucket for cards without legends
	NoLegendLabel = "No legend"
	// NoLegendColor is the color shown for the NoLegendLabel bucket and for
	// names missing from the registry
	NoLegendColor = "#64748B"

	// DefaultRangeDays is the activity window used when none is given
	DefaultRangeDays = 30

	activeWindow = 7 * 24 * time.Hour
)

// StageCount is the number of cards in one stage
type StageCount struct {
	Key   string
	Label string
	Count int
}

// LegendCount is the number of cards carrying one legend
type LegendCount struct {
	Name    string
	Color   string
	Count   int
	Percent int
}

// ActivityPoint counts cards last updated on one day
type ActivityPoint struct {
	Date  string
	Count int
}

// Report summarizes a board
type Report struct {
	GeneratedAt  time.Time
	TotalCards   int
	StageCounts  []StageCount
	LegendCounts []LegendCount
	TopStage     *StageCount
	TopLegend    *LegendCount
	LastActivity time.Time
	Active7d     int
	Activity     []ActivityPoint
}

// ReportService computes board statistics and exports them
type ReportService struct {
	now func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService() *ReportService {
	return &ReportService{now: time.Now}
}

// Build computes the report of a loaded board. Activity covers the last
// rangeDays calendar days, today included, in the clock's location.
func (s *ReportService) Build(board *entity.Board, rangeDays int) *Report {
	if rangeDays <= 0 {
		rangeDays = DefaultRangeDays
	}
	now := s.now()
	cards := board.AllCards()

	report := &Report{
		GeneratedAt: now,
		TotalCards:  len(cards),
	}

	for _, card := range cards {
		if card.UpdatedAt.After(report.LastActivity) {
			report.LastActivity = card.UpdatedAt
		}
		if !card.UpdatedAt.IsZero() && !card.UpdatedAt.Before(now.Add(-activeWindow)) {
			report.Active7d++
		}
	}

	// Stage counts, in board order
	for _, stage := range board.Stages {
		report.StageCounts = append(report.StageCounts, StageCount{
			Key:   stage.Key,
			Label: stage.Label,
			Count: len(board.CardsByStage[stage.Key]),
		})
	}
	if len(report.StageCounts) > 0 {
		byCount := append([]StageCount(nil), report.StageCounts...)
		sort.SliceStable(byCount, func(i, j int) bool { return byCount[i].Count > byCount[j].Count })
		report.TopStage = &byCount[0]
	}

	report.LegendCounts = legendCounts(board, cards)
	if len(report.LegendCounts) > 0 {
		top := report.LegendCounts[0]
		report.TopLegend = &top
	}

	report.Activity = activity(cards, now, rangeDays)
	return report
}

func legendCounts(board *entity.Board, cards []*entity.Card) []LegendCount {
	colors := make(map[string]string, len(board.Legends))
	order := make([]string, 0, len(board.Legends)+1)
	counts := make(map[string]int, len(board.Legends)+1)
	for _, legend := range board.Legends {
		if _, ok := colors[legend.Name]; ok {
			continue
		}
		colors[legend.Name] = legend.Color
		order = append(order, legend.Name)
		counts[legend.Name] = 0
	}
	order = append(order, NoLegendLabel)
	counts[NoLegendLabel] = 0

	for _, card := range cards {
		if len(card.Legends) == 0 {
			counts[NoLegendLabel]++
			continue
		}
		for _, name := range card.Legends {
			if _, ok := counts[name]; !ok {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	result := make([]LegendCount, 0, len(order))
	for _, name := range order {
		color, ok := colors[name]
		if !ok {
			color = NoLegendColor
		}
		percent := 0
		if len(cards) > 0 {
			percent = int(math.Round(float64(counts[name]) / float64(len(cards)) * 100))
		}
		result = append(result, LegendCount{Name: name, Color: color, Count: counts[name], Percent: percent})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Count > result[j].Count })
	return result
}

func activity(cards []*entity.Card, now time.Time, rangeDays int) []ActivityPoint {
	today := startOfDay(now)
	start := today.AddDate(0, 0, -(rangeDays - 1))

	counts := make(map[string]int)
	for _, card := range cards {
		if card.UpdatedAt.IsZero() {
			continue
		}
		day := startOfDay(card.UpdatedAt.In(now.Location()))
		if day.Before(start) || day.After(today) {
			continue
		}
		counts[dateKey(day)]++
	}

	series := make([]ActivityPoint, 0, rangeDays)
	for i := 0; i < rangeDays; i++ {
		key := dateKey(start.AddDate(0, 0, i))
		series = append(series, ActivityPoint{Date: key, Count: counts[key]})
	}
	return series
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WriteCSV exports one row per card in stage order
func (s *ReportService) WriteCSV(w io.Writer, board *entity.Board) error {
	labels := make(map[string]string, len(board.Stages))
	for _, stage := range board.Stages {
		labels[stage.Key] = stage.Label
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"cardId", "title", "listName", "legendNames", "createdAt", "updatedAt"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, card := range board.AllCards() {
		listName, ok := labels[card.Stage]
		if !ok {
			listName = card.Stage
		}
		updatedAt := ""
		if !card.UpdatedAt.IsZero() {
			updatedAt = card.UpdatedAt.UTC().Format(time.RFC3339)
		}
		// Folder creation time is not tracked, so createdAt stays empty
		row := []string{
			card.Title,
			card.Title,
			listName,
			strings.Join(card.Legends, "|"),
			"",
			updatedAt,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReportFileName names an exported report after the board and the day
func (s *ReportService) ReportFileName(board *entity.Board) string {
	return fmt.Sprintf("fboard-report-%s-%s.csv", slug.FromPath(board.Root), dateKey(s.now()))
}
