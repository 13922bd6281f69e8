package slug

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxLength = 50

var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a file-name safe slug. Accents are folded ("Revisão" ->
// "revisao") and every other run of non-alphanumerics becomes one hyphen.
func Generate(s string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	slug := nonAlphanumericRegex.ReplaceAllString(strings.ToLower(folded), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "untitled"
	}

	if len(slug) > maxLength {
		slug = strings.TrimRight(slug[:maxLength], "-")
	}
	return slug
}

// FromPath slugs the last element of a folder path, so a board rooted at
// /home/ana/Quadro Geral becomes "quadro-geral"
func FromPath(path string) string {
	return Generate(filepath.Base(filepath.Clean(path)))
}
