package serialization

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DescriptionPreview flattens a description to one line of plain text,
// truncated to maxLen runes. Code blocks are left out.
func DescriptionPreview(description string, maxLen int) string {
	source := []byte(description)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var parts []string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph, ast.KindHeading, ast.KindTextBlock:
			if value := strings.Join(strings.Fields(string(n.Text(source))), " "); value != "" {
				parts = append(parts, value)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	preview := strings.Join(parts, " ")
	runes := []rune(preview)
	if maxLen > 3 && len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return preview
}
