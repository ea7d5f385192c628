package in

import (
	"context"
	"time"

	"timelevel/internal/modules/tracker/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.StatusOutput, error)
	Tick(ctx context.Context) (dto.StatusOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Checkpoint(ctx context.Context) error
	Shutdown(ctx context.Context) error
	SaveInterval(ctx context.Context) time.Duration
	Heatmap(ctx context.Context, input dto.HeatmapInput) (dto.HeatmapOutput, error)
	ExportHeatmap(ctx context.Context, input dto.ExportHeatmapInput) error
	History(ctx context.Context, input dto.HistoryInput) ([]dto.LevelUpOutput, error)
	Run(ctx context.Context) error
}
