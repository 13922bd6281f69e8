package board

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"fboard/internal/application/dto"
	"fboard/internal/domain/service"
	"fboard/pkg/filesystem"
)

// GetReportUseCase handles computing board statistics
type GetReportUseCase struct {
	boardService  *service.BoardService
	reportService *service.ReportService
}

// NewGetReportUseCase creates a new GetReportUseCase
func NewGetReportUseCase(
	boardService *service.BoardService,
	reportService *service.ReportService,
) *GetReportUseCase {
	return &GetReportUseCase{
		boardService:  boardService,
		reportService: reportService,
	}
}

// Execute computes the report with an activity series of rangeDays days
func (uc *GetReportUseCase) Execute(ctx context.Context, rangeDays int) (*dto.ReportDTO, error) {
	board, err := uc.boardService.LoadBoard(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ReportToDTO(uc.reportService.Build(board, rangeDays)), nil
}

// ExportReportUseCase handles writing the card CSV export
type ExportReportUseCase struct {
	boardService  *service.BoardService
	reportService *service.ReportService
}

// NewExportReportUseCase creates a new ExportReportUseCase
func NewExportReportUseCase(
	boardService *service.BoardService,
	reportService *service.ReportService,
) *ExportReportUseCase {
	return &ExportReportUseCase{
		boardService:  boardService,
		reportService: reportService,
	}
}

// Execute writes the CSV export into dir and returns its path
func (uc *ExportReportUseCase) Execute(ctx context.Context, dir string) (string, error) {
	board, err := uc.boardService.LoadBoard(ctx)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := uc.reportService.WriteCSV(&buf, board); err != nil {
		return "", err
	}

	path := filepath.Join(dir, uc.reportService.ReportFileName(board))
	if err := filesystem.SafeWrite(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
