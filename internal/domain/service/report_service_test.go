package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fboard/internal/domain/entity"
)

func reportBoard() *entity.Board {
	day := func(offset int) time.Time { return serviceNow.AddDate(0, 0, -offset) }
	return &entity.Board{
		Root: "My Board",
		Stages: []entity.Stage{
			entity.NewStage("Arquivados"), entity.NewStage("done"), entity.NewStage("todo"),
		},
		CardsByStage: map[string][]*entity.Card{
			"todo": {
				{Stage: "todo", Title: "A", Legends: []string{"Bug"}, UpdatedAt: day(0)},
				{Stage: "todo", Title: "B, with comma", Legends: []string{"Bug", "Feature"}, UpdatedAt: day(1)},
				{Stage: "todo", Title: "C", UpdatedAt: day(10)},
			},
			"done": {
				{Stage: "done", Title: "D", UpdatedAt: day(2)},
			},
		},
		Legends: []entity.Legend{
			{Name: "Bug", Color: "#FF0000"},
			{Name: "Feature", Color: "#00FF00"},
			{Name: "Docs", Color: "#0000FF"},
		},
		ArchivedStageKey: "Arquivados",
	}
}

func newTestReportService() *ReportService {
	return &ReportService{now: func() time.Time { return serviceNow }}
}

func TestReportService_Build(t *testing.T) {
	report := newTestReportService().Build(reportBoard(), 7)

	assert.Equal(t, 4, report.TotalCards)
	assert.Equal(t, []StageCount{
		{Key: "Arquivados", Label: "Arquivados", Count: 0},
		{Key: "done", Label: "done", Count: 1},
		{Key: "todo", Label: "todo", Count: 3},
	}, report.StageCounts)
	require.NotNil(t, report.TopStage)
	assert.Equal(t, "todo", report.TopStage.Key)

	assert.Equal(t, []LegendCount{
		{Name: "Bug", Color: "#FF0000", Count: 2, Percent: 50},
		{Name: NoLegendLabel, Color: NoLegendColor, Count: 2, Percent: 50},
		{Name: "Feature", Color: "#00FF00", Count: 1, Percent: 25},
		{Name: "Docs", Color: "#0000FF", Count: 0, Percent: 0},
	}, report.LegendCounts)
	require.NotNil(t, report.TopLegend)
	assert.Equal(t, "Bug", report.TopLegend.Name)

	assert.True(t, report.LastActivity.Equal(serviceNow))
	assert.Equal(t, 3, report.Active7d)

	require.Len(t, report.Activity, 7)
	assert.Equal(t, "2024-06-04", report.Activity[0].Date)
	assert.Equal(t, "2024-06-10", report.Activity[6].Date)
	assert.Equal(t, 1, report.Activity[6].Count)
	assert.Equal(t, 1, report.Activity[5].Count)
	assert.Equal(t, 1, report.Activity[4].Count)
	assert.Equal(t, 0, report.Activity[0].Count)
}

func TestReportService_EmptyBoard(t *testing.T) {
	report := newTestReportService().Build(&entity.Board{}, 0)

	assert.Equal(t, 0, report.TotalCards)
	assert.Nil(t, report.TopStage)
	require.NotNil(t, report.TopLegend)
	assert.Equal(t, NoLegendLabel, report.TopLegend.Name)
	assert.Equal(t, 0, report.TopLegend.Percent)
	assert.Len(t, report.Activity, DefaultRangeDays)
}

func TestReportService_WriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestReportService().WriteCSV(&buf, reportBoard()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "cardId,title,listName,legendNames,createdAt,updatedAt", lines[0])
	assert.Equal(t, "D,D,done,,,2024-06-08T12:00:00Z", lines[1])
	assert.Equal(t, "A,A,todo,Bug,,2024-06-10T12:00:00Z", lines[2])
	assert.Equal(t, `"B, with comma","B, with comma",todo,Bug|Feature,,2024-06-09T12:00:00Z`, lines[3])
}

func TestReportService_FileName(t *testing.T) {
	name := newTestReportService().ReportFileName(reportBoard())
	assert.Equal(t, "fboard-report-my-board-2024-06-10.csv", name)
}
