package entity

import (
	"fmt"
	"strings"

	"fboard/pkg/filesystem"
)

// Names reserved inside a card folder
const (
	DescriptionFile = "info.txt"
	CommentsFile    = "comments.txt"
	CardStateFile   = "card.yml"
	LegendsFile     = "legendas.txt"
)

// InternalPrefix marks folders and files the board manages itself
const InternalPrefix = filesystem.InternalPrefix

// ValidateFolderName checks a stage name or card title used as a folder name
func ValidateFolderName(name string, empty, invalid error) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return empty
	}
	if trimmed == "." || trimmed == ".." {
		return fmt.Errorf("%w: %q", invalid, name)
	}
	if strings.ContainsAny(trimmed, "/\\\x00\r\n") {
		return fmt.Errorf("%w: %q contains a path separator or line break", invalid, name)
	}
	if strings.HasPrefix(trimmed, InternalPrefix) {
		return fmt.Errorf("%w: %q uses a reserved prefix", invalid, name)
	}
	return nil
}

// ValidateStageName checks a stage folder name
func ValidateStageName(name string) error {
	return ValidateFolderName(name, ErrEmptyStageName, ErrInvalidStageName)
}

// ValidateCardTitle checks a card folder name
func ValidateCardTitle(title string) error {
	return ValidateFolderName(title, ErrEmptyCardTitle, ErrInvalidCardTitle)
}

// ValidateComment checks a single comment line and returns it trimmed
func ValidateComment(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyComment
	}
	if strings.ContainsAny(trimmed, "\r\n") {
		return "", ErrMultilineComment
	}
	return trimmed, nil
}

// ValidateAttachmentName checks that name is a plain file name that does not
// shadow a side file
func ValidateAttachmentName(name string) error {
	if err := ValidateFolderName(name, ErrInvalidAttachmentName, ErrInvalidAttachmentName); err != nil {
		return err
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("%w: %q has surrounding spaces", ErrInvalidAttachmentName, name)
	}
	switch name {
	case DescriptionFile, CommentsFile, CardStateFile:
		return fmt.Errorf("%w: %q", ErrReservedAttachmentName, name)
	}
	return nil
}

// IsSideFile reports whether name is one of the card files that are not
// attachments
func IsSideFile(name string) bool {
	return name == DescriptionFile || name == CommentsFile || name == CardStateFile
}

// ValidateLegendName checks a single legend name
func ValidateLegendName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyLegendName
	}
	if strings.ContainsAny(trimmed, "|\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidLegendName, trimmed)
	}
	return nil
}

// ValidateLegends checks a full registry before it is written
func ValidateLegends(legends []Legend) error {
	seen := make(map[string]bool, len(legends))
	for _, legend := range legends {
		if err := ValidateLegendName(legend.Name); err != nil {
			return err
		}
		name := strings.TrimSpace(legend.Name)
		if seen[name] {
			return fmt.Errorf("%w: %q", ErrDuplicateLegendName, name)
		}
		seen[name] = true
	}
	return nil
}

// ValidateTasks checks every task and that ids are unique
func ValidateTasks(tasks []Task) error {
	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			return err
		}
		if seen[task.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateTaskID, task.ID)
		}
		seen[task.ID] = true
	}
	return nil
}
