package legend

import (
	"context"

	"fboard/internal/application/dto"
	"fboard/internal/domain/entity"
	"fboard/internal/domain/service"
)

// LegendsUseCase handles the legend registry. Every method returns the
// registry as stored afterwards.
type LegendsUseCase struct {
	legendService *service.LegendService
}

// NewLegendsUseCase creates a new LegendsUseCase
func NewLegendsUseCase(legendService *service.LegendService) *LegendsUseCase {
	return &LegendsUseCase{
		legendService: legendService,
	}
}

// List returns the registry
func (uc *LegendsUseCase) List(ctx context.Context) ([]dto.LegendDTO, error) {
	return toDTO(uc.legendService.List(ctx))
}

// Add appends a legend
func (uc *LegendsUseCase) Add(ctx context.Context, name, color string) ([]dto.LegendDTO, error) {
	return toDTO(uc.legendService.Add(ctx, name, color))
}

// Remove deletes a legend
func (uc *LegendsUseCase) Remove(ctx context.Context, name string) ([]dto.LegendDTO, error) {
	return toDTO(uc.legendService.Remove(ctx, name))
}

// Rename changes a legend name
func (uc *LegendsUseCase) Rename(ctx context.Context, oldName, newName string) ([]dto.LegendDTO, error) {
	return toDTO(uc.legendService.Rename(ctx, oldName, newName))
}

// Recolor changes a legend color
func (uc *LegendsUseCase) Recolor(ctx context.Context, name, color string) ([]dto.LegendDTO, error) {
	return toDTO(uc.legendService.Recolor(ctx, name, color))
}

// Reorder moves the named legends to the front
func (uc *LegendsUseCase) Reorder(ctx context.Context, names []string) ([]dto.LegendDTO, error) {
	return toDTO(uc.legendService.Reorder(ctx, names))
}

// Replace stores a whole registry
func (uc *LegendsUseCase) Replace(ctx context.Context, legends []dto.LegendDTO) ([]dto.LegendDTO, error) {
	registry := make([]entity.Legend, 0, len(legends))
	for _, legend := range legends {
		registry = append(registry, entity.Legend{Name: legend.Name, Color: legend.Color})
	}
	return toDTO(uc.legendService.Replace(ctx, registry))
}

func toDTO(legends []entity.Legend, err error) ([]dto.LegendDTO, error) {
	if err != nil {
		return nil, err
	}
	return dto.LegendsToDTO(legends), nil
}
