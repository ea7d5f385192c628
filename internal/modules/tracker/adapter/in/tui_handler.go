package in

import (
	"context"
	"time"

	"timelevel/internal/modules/tracker/dto"
	trackerin "timelevel/internal/modules/tracker/port/in"
)

// TUIHandler exposes the tracker lifecycle to the interactive host, which owns
// the display and persistence timers.
type TUIHandler struct {
	usecase trackerin.Usecase
}

func NewTUIHandler(usecase trackerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Start(ctx)
}

func (h TUIHandler) Tick(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Tick(ctx)
}

func (h TUIHandler) Checkpoint(ctx context.Context) error {
	return h.usecase.Checkpoint(ctx)
}

func (h TUIHandler) Shutdown(ctx context.Context) error {
	return h.usecase.Shutdown(ctx)
}

func (h TUIHandler) SaveInterval(ctx context.Context) time.Duration {
	return h.usecase.SaveInterval(ctx)
}

func (h TUIHandler) Heatmap(ctx context.Context, days int) (dto.HeatmapOutput, error) {
	return h.usecase.Heatmap(ctx, dto.HeatmapInput{Days: days})
}
