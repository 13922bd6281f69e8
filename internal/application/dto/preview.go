package dto

import "fboard/internal/infrastructure/serialization"

// previewLength is the rune limit of card previews in list views
const previewLength = 80

// DescriptionPreview is the PreviewFunc used by the CLI and the TUI
func DescriptionPreview(description string) string {
	return serialization.DescriptionPreview(description, previewLength)
}
