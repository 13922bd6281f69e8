package entity

import (
	"sort"
	"time"
)

// CardRef identifies a card: the stage folder and the card folder inside it
type CardRef struct {
	Stage  string
	Folder string
}

// Attachment is any plain file inside a card folder other than the side files
type Attachment struct {
	Name         string
	Size         int64
	LastModified time.Time
}

// ArchiveInfo records where an archived card came from so it can be restored
type ArchiveInfo struct {
	Archived       bool
	ArchivedAt     *time.Time
	FromStageKey   string
	FromStageLabel string
}

// Card is a second level folder of the board root
type Card struct {
	Stage       string
	Title       string
	Description string
	Comments    []string
	Attachments []Attachment
	Legends     []string
	Tasks       []Task
	Archive     ArchiveInfo
	// UpdatedAt is derived from file modification times and never persisted
	UpdatedAt time.Time
}

// Ref returns the identity of the card
func (c *Card) Ref() CardRef {
	return CardRef{Stage: c.Stage, Folder: c.Title}
}

// TaskSummary summarizes the card checklist
func (c *Card) TaskSummary(now time.Time) TaskSummary {
	return SummarizeTasks(c.Tasks, now)
}

// KnownLegends splits the card's legend names into those present in the
// registry (registry order) and unknown ones (card order)
func (c *Card) KnownLegends(registry []Legend) (known []string, unknown []string) {
	return SplitLegendNames(c.Legends, registry)
}

// SplitLegendNames filters names against the registry. Known names come back
// deduplicated and in registry order.
func SplitLegendNames(names []string, registry []Legend) (known []string, unknown []string) {
	index := LegendIndex(registry)
	seen := make(map[string]bool, len(names))
	known = make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := index[name]; ok {
			known = append(known, name)
		} else {
			unknown = append(unknown, name)
		}
	}
	sort.SliceStable(known, func(i, j int) bool {
		return index[known[i]] < index[known[j]]
	})
	return known, unknown
}

// SortAttachments orders attachments newest first, name ascending on ties
func SortAttachments(attachments []Attachment) {
	sort.SliceStable(attachments, func(i, j int) bool {
		a, b := attachments[i], attachments[j]
		if !a.LastModified.Equal(b.LastModified) {
			return a.LastModified.After(b.LastModified)
		}
		return a.Name < b.Name
	})
}
