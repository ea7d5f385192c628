package out

import (
	"context"

	"timelevel/internal/modules/settings/domain"
)

type SettingsStore interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
	Path() string
}
