package in

import (
	"context"
	"io"

	"timelevel/internal/modules/tracker/dto"
	trackerin "timelevel/internal/modules/tracker/port/in"
)

type CLIHandler struct {
	usecase trackerin.Usecase
}

func NewCLIHandler(usecase trackerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Status loads the saved state and reports it without starting a tracked session.
func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Start(ctx)
}

// Track runs the headless tracker until ctx is cancelled.
func (h CLIHandler) Track(ctx context.Context) error {
	return h.usecase.Run(ctx)
}

func (h CLIHandler) Heatmap(ctx context.Context, days int) (dto.HeatmapOutput, error) {
	if _, err := h.usecase.Start(ctx); err != nil {
		return dto.HeatmapOutput{}, err
	}
	return h.usecase.Heatmap(ctx, dto.HeatmapInput{Days: days})
}

func (h CLIHandler) ExportHeatmap(ctx context.Context, days int, w io.Writer) error {
	if _, err := h.usecase.Start(ctx); err != nil {
		return err
	}
	return h.usecase.ExportHeatmap(ctx, dto.ExportHeatmapInput{Days: days, Writer: w})
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]dto.LevelUpOutput, error) {
	return h.usecase.History(ctx, dto.HistoryInput{Limit: limit})
}
