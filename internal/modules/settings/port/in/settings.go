package in

import (
	"context"

	"timelevel/internal/modules/settings/dto"
)

type Usecase interface {
	Current(ctx context.Context) (dto.SettingsOutput, error)
	Entries(ctx context.Context) ([]dto.Entry, error)
	Set(ctx context.Context, input dto.SetInput) (dto.SettingsOutput, error)
	Reload(ctx context.Context) (dto.SettingsOutput, error)
}
