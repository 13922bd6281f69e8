package commands

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fboard/internal/domain/entity"
)

func TestParseCardRef(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "home", "u", "board")

	tests := []struct {
		name string
		arg  string
		want entity.CardRef
	}{
		{"stage and card", "todo/Fix login", entity.CardRef{Stage: "todo", Folder: "Fix login"}},
		{"trailing slash", "todo/Card/", entity.CardRef{Stage: "todo", Folder: "Card"}},
		{"path under root", filepath.Join(root, "todo", "Card"), entity.CardRef{Stage: "todo", Folder: "Card"}},
		{"path outside root", filepath.Join(string(filepath.Separator), "elsewhere", "done", "Card"), entity.CardRef{Stage: "done", Folder: "Card"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCardRefIn(root, tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCardRef_Invalid(t *testing.T) {
	for _, arg := range []string{"", "todo", "/todo", "todo/"} {
		_, err := parseCardRefIn("", arg)
		assert.Error(t, err, arg)
	}
}

func TestPathOutputRoundTrip(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "home", "u", "board")
	line := filepath.Join(root, "1 todo", "Fix login") + "\n"

	args := extractArgsFromInput([]byte(line), 1)
	require.Len(t, args, 1)

	ref, err := parseCardRefIn(root, args[0])
	require.NoError(t, err)
	assert.Equal(t, entity.CardRef{Stage: "1 todo", Folder: "Fix login"}, ref)
}

func TestFzfOutputRoundTrip(t *testing.T) {
	args := extractArgsFromInput([]byte("todo/Card\tfirst line of the description\n"), 1)
	require.NotEmpty(t, args)

	ref, err := parseCardRefIn("", args[0])
	require.NoError(t, err)
	assert.Equal(t, entity.CardRef{Stage: "todo", Folder: "Card"}, ref)
}

func TestErrorHint(t *testing.T) {
	denied := fmt.Errorf("failed to load board: %w", entity.ErrPermissionDenied)
	assert.Contains(t, errorHint(denied), "--root")
	assert.Empty(t, errorHint(entity.ErrNotFound))
}
