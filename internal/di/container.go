package di

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"fboard/internal/application/usecase/board"
	"fboard/internal/application/usecase/card"
	"fboard/internal/application/usecase/legend"
	"fboard/internal/application/usecase/task"
	"fboard/internal/domain/repository"
	"fboard/internal/domain/service"
	"fboard/internal/infrastructure/config"
	"fboard/internal/infrastructure/persistence/filesystem"
	"fboard/internal/infrastructure/storage"
)

// RootPath is the absolute path of the board folder
type RootPath string

// Container holds all application dependencies
type Container struct {
	// Config
	Config   *config.Config
	Logger   logrus.FieldLogger
	RootPath RootPath

	// Repositories
	BoardRepo repository.BoardRepository

	// Domain Services
	ValidationService *service.ValidationService
	BoardService      *service.BoardService
	LegendService     *service.LegendService
	ReportService     *service.ReportService

	// Use Cases - Board
	GetBoardUseCase     *board.GetBoardUseCase
	CreateStageUseCase  *board.CreateStageUseCase
	GetReportUseCase    *board.GetReportUseCase
	ExportReportUseCase *board.ExportReportUseCase

	// Use Cases - Card
	CreateCardUseCase        *card.CreateCardUseCase
	GetCardUseCase           *card.GetCardUseCase
	ListCardsUseCase         *card.ListCardsUseCase
	ListArchivedCardsUseCase *card.ListArchivedCardsUseCase
	FindCardsUseCase         *card.FindCardsUseCase
	MoveCardUseCase          *card.MoveCardUseCase
	DescribeCardUseCase      *card.DescribeCardUseCase
	ArchiveCardUseCase       *card.ArchiveCardUseCase
	SetCardLegendsUseCase    *card.SetCardLegendsUseCase
	AttachmentUseCase        *card.AttachmentUseCase
	CommentUseCase           *card.CommentUseCase

	// Use Cases - Legend
	LegendsUseCase *legend.LegendsUseCase

	// Use Cases - Task
	ListTasksUseCase  *task.ListTasksUseCase
	AddTaskUseCase    *task.AddTaskUseCase
	ToggleTaskUseCase *task.ToggleTaskUseCase
	RemoveTaskUseCase *task.RemoveTaskUseCase
}

// Provider functions

// ProvideRootPath resolves storage.root_path. An empty value means the
// working directory and a leading ~ is expanded.
func ProvideRootPath(cfg *config.Config) (RootPath, error) {
	path := strings.TrimSpace(cfg.Storage.RootPath)
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		path = wd
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve board root %s: %w", path, err)
	}
	return RootPath(abs), nil
}

func ProvideStorageRoot(root RootPath) (storage.Dir, error) {
	dir, err := storage.NewNativeDir(string(root))
	if err != nil {
		return nil, fmt.Errorf("failed to open board root: %w", err)
	}
	return dir, nil
}

func ProvideBoardRepository(
	root storage.Dir,
	cfg *config.Config,
	logger logrus.FieldLogger,
) repository.BoardRepository {
	return filesystem.NewBoardRepository(root, filesystem.Options{
		ArchivedStage:       cfg.Storage.ArchivedStage,
		CreateEmptyComments: cfg.Storage.CreateEmptyComments,
		LoadConcurrency:     cfg.Storage.LoadConcurrency,
		Logger:              logger,
	})
}

func ProvideValidationService() *service.ValidationService {
	return service.NewValidationService()
}

func ProvideBoardService(
	boardRepo repository.BoardRepository,
	validationService *service.ValidationService,
) *service.BoardService {
	return service.NewBoardService(boardRepo, validationService)
}

func ProvideLegendService(
	boardRepo repository.BoardRepository,
	validationService *service.ValidationService,
) *service.LegendService {
	return service.NewLegendService(boardRepo, validationService)
}

func ProvideReportService() *service.ReportService {
	return service.NewReportService()
}
