package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Quadro Geral", "quadro-geral"},
		{"Revisão & Ação", "revisao-acao"},
		{"  --2 doing--  ", "2-doing"},
		{"???", "untitled"},
		{"", "untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.in))
		})
	}
}

func TestGenerate_Truncates(t *testing.T) {
	got := Generate(strings.Repeat("ab ", 40))
	assert.LessOrEqual(t, len(got), maxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestFromPath(t *testing.T) {
	assert.Equal(t, "quadro-geral", FromPath("/home/ana/Quadro Geral/"))
	assert.Equal(t, "untitled", FromPath("/"))
}
