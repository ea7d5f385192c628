package usecase

import (
	"context"

	"timelevel/internal/modules/effects/dto"
	effectsin "timelevel/internal/modules/effects/port/in"
	"timelevel/internal/modules/effects/service"
)

type Interactor struct {
	svc *service.EffectService
}

func NewInteractor(svc *service.EffectService) effectsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Celebrate(ctx context.Context, input dto.CelebrateInput) (dto.CelebrateOutput, error) {
	return i.svc.Celebrate(ctx, input)
}
