//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"fboard/internal/application/usecase/board"
	"fboard/internal/application/usecase/card"
	"fboard/internal/application/usecase/legend"
	"fboard/internal/application/usecase/task"
	"fboard/internal/infrastructure/config"
)

// InitializeContainer sets up all dependencies for the board configured in cfg
func InitializeContainer(cfg *config.Config, logger logrus.FieldLogger) (*Container, error) {
	wire.Build(
		// Storage
		ProvideRootPath,
		ProvideStorageRoot,

		// Repositories
		ProvideBoardRepository,

		// Domain Services
		ProvideValidationService,
		ProvideBoardService,
		ProvideLegendService,
		ProvideReportService,

		// Use Cases - Board
		board.NewGetBoardUseCase,
		board.NewCreateStageUseCase,
		board.NewGetReportUseCase,
		board.NewExportReportUseCase,

		// Use Cases - Card
		card.NewCreateCardUseCase,
		card.NewGetCardUseCase,
		card.NewListCardsUseCase,
		card.NewListArchivedCardsUseCase,
		card.NewFindCardsUseCase,
		card.NewMoveCardUseCase,
		card.NewDescribeCardUseCase,
		card.NewArchiveCardUseCase,
		card.NewSetCardLegendsUseCase,
		card.NewAttachmentUseCase,
		card.NewCommentUseCase,

		// Use Cases - Legend
		legend.NewLegendsUseCase,

		// Use Cases - Task
		task.NewListTasksUseCase,
		task.NewAddTaskUseCase,
		task.NewToggleTaskUseCase,
		task.NewRemoveTaskUseCase,

		// Wire the container
		wire.Struct(new(Container), "*"),
	)
	return nil, nil
}
