package in

import (
	"context"

	"timelevel/internal/modules/settings/dto"
	settingsin "timelevel/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) ([]dto.Entry, error) {
	return h.usecase.Entries(ctx)
}

func (h CLIHandler) Current(ctx context.Context) (dto.SettingsOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Set(ctx context.Context, key, value string) (dto.SettingsOutput, error) {
	return h.usecase.Set(ctx, dto.SetInput{Key: key, Value: value})
}
