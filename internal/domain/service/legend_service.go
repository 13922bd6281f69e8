package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"fboard/internal/domain/entity"
	"fboard/internal/domain/repository"
)

// LegendService edits the legend registry. Every change validates and
// rewrites the whole list.
type LegendService struct {
	boardRepo         repository.BoardRepository
	validationService *ValidationService
}

// NewLegendService creates a new LegendService
func NewLegendService(
	boardRepo repository.BoardRepository,
	validationService *ValidationService,
) *LegendService {
	return &LegendService{
		boardRepo:         boardRepo,
		validationService: validationService,
	}
}

// List returns the registry in stored order
func (s *LegendService) List(ctx context.Context) ([]entity.Legend, error) {
	return s.boardRepo.LoadLegends(ctx)
}

// Add appends a legend
func (s *LegendService) Add(ctx context.Context, name, color string) ([]entity.Legend, error) {
	return s.update(ctx, func(legends []entity.Legend) ([]entity.Legend, error) {
		return append(legends, entity.Legend{Name: name, Color: color}), nil
	})
}

// Rename changes a legend name. Cards keep referring to the old name,
// which then no longer matches the registry.
func (s *LegendService) Rename(ctx context.Context, oldName, newName string) ([]entity.Legend, error) {
	return s.update(ctx, func(legends []entity.Legend) ([]entity.Legend, error) {
		index, err := indexOfLegend(legends, oldName)
		if err != nil {
			return nil, err
		}
		legends[index].Name = newName
		return legends, nil
	})
}

// Recolor changes a legend color
func (s *LegendService) Recolor(ctx context.Context, name, color string) ([]entity.Legend, error) {
	return s.update(ctx, func(legends []entity.Legend) ([]entity.Legend, error) {
		index, err := indexOfLegend(legends, name)
		if err != nil {
			return nil, err
		}
		legends[index].Color = color
		return legends, nil
	})
}

// Remove deletes a legend
func (s *LegendService) Remove(ctx context.Context, name string) ([]entity.Legend, error) {
	return s.update(ctx, func(legends []entity.Legend) ([]entity.Legend, error) {
		index, err := indexOfLegend(legends, name)
		if err != nil {
			return nil, err
		}
		return slices.Delete(legends, index, index+1), nil
	})
}

// Reorder puts the named legends first, in the given order, followed by
// the rest in their current order
func (s *LegendService) Reorder(ctx context.Context, names []string) ([]entity.Legend, error) {
	return s.update(ctx, func(legends []entity.Legend) ([]entity.Legend, error) {
		ordered := make([]entity.Legend, 0, len(legends))
		used := make(map[int]bool, len(legends))
		for _, name := range names {
			index, err := indexOfLegend(legends, name)
			if err != nil {
				return nil, err
			}
			if used[index] {
				continue
			}
			used[index] = true
			ordered = append(ordered, legends[index])
		}
		for i, legend := range legends {
			if !used[i] {
				ordered = append(ordered, legend)
			}
		}
		return ordered, nil
	})
}

// Replace validates and stores a full registry
func (s *LegendService) Replace(ctx context.Context, legends []entity.Legend) ([]entity.Legend, error) {
	return s.update(ctx, func([]entity.Legend) ([]entity.Legend, error) {
		return legends, nil
	})
}

func (s *LegendService) update(
	ctx context.Context,
	edit func([]entity.Legend) ([]entity.Legend, error),
) ([]entity.Legend, error) {
	// Load registry
	legends, err := s.boardRepo.LoadLegends(ctx)
	if err != nil {
		return nil, err
	}

	// Apply change
	updated, err := edit(slices.Clone(legends))
	if err != nil {
		return nil, err
	}

	// Validate before anything is written
	if err := s.validationService.ValidateLegends(updated); err != nil {
		return nil, err
	}

	if err := s.boardRepo.SaveLegends(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save legends: %w", err)
	}
	return entity.NormalizeLegends(updated), nil
}

func indexOfLegend(legends []entity.Legend, name string) (int, error) {
	name = strings.TrimSpace(name)
	index := slices.IndexFunc(legends, func(legend entity.Legend) bool { return legend.Name == name })
	if index < 0 {
		return -1, fmt.Errorf("%w: %s", entity.ErrLegendNotFound, name)
	}
	return index, nil
}
