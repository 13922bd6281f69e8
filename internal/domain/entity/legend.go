package entity

import (
	"regexp"
	"strings"
)

// DefaultLegendColor is used whenever a stored or submitted color is malformed
const DefaultLegendColor = "#4DA3FF"

var hexColorRE = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// Legend is a named, colored label that cards may reference by name
type Legend struct {
	Name  string
	Color string
}

// NormalizeColor returns the color as upper-case #RRGGBB, or the default color
func NormalizeColor(color string) string {
	value := strings.TrimSpace(color)
	if !hexColorRE.MatchString(value) {
		return DefaultLegendColor
	}
	return "#" + strings.ToUpper(strings.TrimPrefix(value, "#"))
}

// Normalized returns the legend with a trimmed name and a normalized color
func (l Legend) Normalized() Legend {
	return Legend{
		Name:  strings.TrimSpace(l.Name),
		Color: NormalizeColor(l.Color),
	}
}

// NormalizeLegends trims names, normalizes colors, drops empty names and
// keeps the first occurrence of duplicated names
func NormalizeLegends(legends []Legend) []Legend {
	seen := make(map[string]bool, len(legends))
	out := make([]Legend, 0, len(legends))
	for _, legend := range legends {
		normalized := legend.Normalized()
		if normalized.Name == "" || seen[normalized.Name] {
			continue
		}
		seen[normalized.Name] = true
		out = append(out, normalized)
	}
	return out
}

// LegendIndex maps legend names to their registry position
func LegendIndex(legends []Legend) map[string]int {
	index := make(map[string]int, len(legends))
	for i, legend := range legends {
		if _, ok := index[legend.Name]; !ok {
			index[legend.Name] = i
		}
	}
	return index
}
