package serialization

import (
	"strings"

	"fboard/internal/domain/entity"
)

const legendSeparator = "|"

// DecodeLegends parses the registry file. Each non-blank line holds
// "name|color"; a malformed or missing color falls back to the default and
// a repeated name keeps its first occurrence.
func DecodeLegends(data []byte) []entity.Legend {
	seen := make(map[string]bool)
	var legends []entity.Legend

	for _, raw := range splitLines(string(data)) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		parts := strings.Split(line, legendSeparator)
		name := strings.TrimSpace(parts[0])
		if name == "" || seen[name] {
			continue
		}

		color := ""
		if len(parts) > 1 {
			color = parts[1]
		}
		seen[name] = true
		legends = append(legends, entity.Legend{Name: name, Color: entity.NormalizeColor(color)})
	}

	return legends
}

// EncodeLegends serializes the registry. Names are trimmed, colors
// normalized and empty names dropped; lines are joined without a trailing
// newline.
func EncodeLegends(legends []entity.Legend) []byte {
	lines := make([]string, 0, len(legends))
	for _, legend := range legends {
		normalized := legend.Normalized()
		if normalized.Name == "" {
			continue
		}
		lines = append(lines, normalized.Name+legendSeparator+normalized.Color)
	}
	return []byte(strings.Join(lines, "\n"))
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
