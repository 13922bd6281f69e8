package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestFormatter_JSONAndYAML(t *testing.T) {
	data := map[string]int{"cards": 2}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON, &buf).Print(data))
	assert.JSONEq(t, `{"cards": 2}`, buf.String())

	buf.Reset()
	require.NoError(t, NewFormatter(FormatYAML, &buf).Print(data))
	assert.Equal(t, "cards: 2\n", buf.String())
}

func TestPrinter_QuietDropsSuccess(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true)

	printer.Success("done")
	printer.Info("note")
	printer.Warning("careful")

	assert.NotContains(t, buf.String(), "done")
	assert.NotContains(t, buf.String(), "note")
	assert.Contains(t, buf.String(), "careful")
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).Table([]string{"Stage", "Cards"}, [][]string{{"todo", "2"}, {"in progress", "10"}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "todo")
	assert.True(t, strings.HasSuffix(lines[3], "10"))
}
