package usecase

import (
	"context"

	"timelevel/internal/modules/settings/domain"
	"timelevel/internal/modules/settings/dto"
	settingsin "timelevel/internal/modules/settings/port/in"
	"timelevel/internal/modules/settings/service"
)

type Interactor struct {
	svc *service.SettingsService
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Current(ctx context.Context) (dto.SettingsOutput, error) {
	return i.toOutput(i.svc.Current(ctx)), nil
}

func (i *Interactor) Entries(ctx context.Context) ([]dto.Entry, error) {
	current := i.svc.Current(ctx)
	out := make([]dto.Entry, 0, len(domain.Keys()))
	for _, key := range domain.Keys() {
		value, err := current.Value(key)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.Entry{Key: key, Value: value})
	}
	return out, nil
}

func (i *Interactor) Set(ctx context.Context, input dto.SetInput) (dto.SettingsOutput, error) {
	next, err := i.svc.Set(ctx, input.Key, input.Value)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return i.toOutput(next), nil
}

func (i *Interactor) Reload(ctx context.Context) (dto.SettingsOutput, error) {
	return i.toOutput(i.svc.Load(ctx)), nil
}

func (i *Interactor) toOutput(s domain.Settings) dto.SettingsOutput {
	return dto.SettingsOutput{
		SaveIntervalSeconds: s.SaveIntervalSeconds,
		LevelUpHours:        s.LevelUpHours,
		ShowSeconds:         s.ShowSeconds,
		ProgressBarColor:    s.ProgressBarColor,
		EnableAudio:         s.EnableAudio,
		EnableConfetti:      s.EnableConfetti,
		PrefixText:          s.PrefixText,
		ShowFooter:          s.ShowFooter,
		Language:            s.Language,
		CalendarOffset:      s.CalendarOffset,
		Path:                i.svc.Path(),
	}
}
