package in

import (
	"context"

	"timelevel/internal/modules/effects/dto"
	effectsin "timelevel/internal/modules/effects/port/in"
)

type CLIHandler struct {
	usecase effectsin.Usecase
}

func NewCLIHandler(usecase effectsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}
