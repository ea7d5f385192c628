package out

import (
	"context"

	"timelevel/internal/modules/effects/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Celebrate(ctx context.Context, manifest domain.Manifest, celebration domain.Celebration) error
}
