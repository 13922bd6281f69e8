package serialization

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fboard/internal/domain/entity"
)

func TestDecodeLegends(t *testing.T) {
	data := []byte("Bug|#ff0000\r\n\n  Feature | 00ff00 \nBug|#000000\nNoColor\nBad|#12345\n|#FFFFFF\nExtra|#abcdef|ignored\n")

	legends := DecodeLegends(data)

	assert.Equal(t, []entity.Legend{
		{Name: "Bug", Color: "#FF0000"},
		{Name: "Feature", Color: "#00FF00"},
		{Name: "NoColor", Color: entity.DefaultLegendColor},
		{Name: "Bad", Color: entity.DefaultLegendColor},
		{Name: "Extra", Color: "#ABCDEF"},
	}, legends)
}

func TestDecodeLegends_Empty(t *testing.T) {
	assert.Empty(t, DecodeLegends(nil))
	assert.Empty(t, DecodeLegends([]byte("\n\n  \n")))
}

func TestEncodeLegends(t *testing.T) {
	data := EncodeLegends([]entity.Legend{
		{Name: " Bug ", Color: "ff0000"},
		{Name: "", Color: "#00FF00"},
		{Name: "Docs", Color: "blue"},
	})

	assert.Equal(t, "Bug|#FF0000\nDocs|#4DA3FF", string(data))
}

func TestLegends_RoundTrip(t *testing.T) {
	input := []entity.Legend{
		{Name: "Bug", Color: "#ff0000"},
		{Name: "Feature", Color: "nope"},
		{Name: "Bug", Color: "#00ff00"},
		{Name: "  ", Color: "#00ff00"},
	}

	decoded := DecodeLegends(EncodeLegends(entity.NormalizeLegends(input)))

	assert.Equal(t, entity.NormalizeLegends(input), decoded)
}

func TestDecodeComments(t *testing.T) {
	comments := DecodeComments([]byte("first\r\n\n  \nsecond\nthird"))
	assert.Equal(t, []string{"first", "second", "third"}, comments)
	assert.Empty(t, DecodeComments(nil))
}

func TestEncodeComments(t *testing.T) {
	assert.Equal(t, "", string(EncodeComments(nil)))
	assert.Equal(t, "a\nb\n", string(EncodeComments([]string{"a", "b"})))
}

func TestAppendComment(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		text     string
		want     string
	}{
		{"empty file", "", " hello ", "hello\n"},
		{"with trailing newline", "hello\n", "world", "hello\nworld\n"},
		{"missing trailing newline", "hello", "world", "hello\nworld\n"},
		{"blank lines preserved", "a\n\n", "b", "a\n\nb\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendComment([]byte(tt.existing), tt.text)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestCardState_RoundTrip(t *testing.T) {
	due := time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC)
	created := time.Date(2024, time.March, 1, 8, 30, 0, 0, time.UTC)
	done := time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC)
	archived := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

	state := CardState{
		Legends: []string{"Bug", "Feature"},
		Tasks: []TaskState{
			{ID: "t1", Description: "write tests", DueAt: due, CreatedAt: created},
			{ID: "t2", Description: "ship", DueAt: due, IsCompleted: true, CreatedAt: created, CompletedAt: &done},
		},
		Archived:             true,
		ArchivedAt:           &archived,
		ArchivedFromListID:   "progress",
		ArchivedFromListName: "progress",
	}

	data, err := EncodeCardState(state)
	require.NoError(t, err)
	assert.Contains(t, string(data), "archived_from_list_id: progress")

	decoded, err := DecodeCardState(data)
	require.NoError(t, err)
	assert.Equal(t, state.Legends, decoded.Legends)
	require.Len(t, decoded.Tasks, 2)
	assert.True(t, decoded.Tasks[0].DueAt.Equal(due))
	assert.Nil(t, decoded.Tasks[0].CompletedAt)
	require.NotNil(t, decoded.Tasks[1].CompletedAt)
	assert.True(t, decoded.Tasks[1].CompletedAt.Equal(done))
	assert.True(t, decoded.Archived)
	require.NotNil(t, decoded.ArchivedAt)
	assert.True(t, decoded.ArchivedAt.Equal(archived))
	assert.Equal(t, "progress", decoded.ArchivedFromListName)
}

func TestDecodeCardState_EmptyAndInvalid(t *testing.T) {
	state, err := DecodeCardState([]byte("  \n"))
	require.NoError(t, err)
	assert.True(t, state.IsZero())

	_, err = DecodeCardState([]byte("legends: [unclosed"))
	assert.Error(t, err)
}

func TestDescriptionPreview(t *testing.T) {
	description := "# Login bug\n\nUsers see a *blank* page.\n\n```\nstack trace\n```\n"

	assert.Equal(t, "Login bug Users see a blank page.", DescriptionPreview(description, 80))
	assert.Equal(t, "Login b...", DescriptionPreview(description, 10))
	assert.Equal(t, "", DescriptionPreview("", 10))
}
