package in

import (
	"context"

	"timelevel/internal/modules/effects/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Celebrate(ctx context.Context, input dto.CelebrateInput) (dto.CelebrateOutput, error)
}
