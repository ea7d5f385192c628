package out

import (
	"context"
	"log/slog"

	"timelevel/internal/modules/tracker/domain"
	"timelevel/internal/modules/tracker/dto"
	trackerout "timelevel/internal/modules/tracker/port/out"
	"timelevel/internal/platform/logging"
)

// ConfettiChannel hands celebrations to an interactive host. Sends never block:
// with no reader keeping up the celebration is dropped.
type ConfettiChannel struct {
	events chan dto.Celebration
	logger *slog.Logger
}

func NewConfettiChannel(buffer int, logger *slog.Logger) *ConfettiChannel {
	if buffer < 1 {
		buffer = 1
	}
	return &ConfettiChannel{events: make(chan dto.Celebration, buffer), logger: logging.OrDiscard(logger)}
}

var _ trackerout.Effect = (*ConfettiChannel)(nil)

func (c *ConfettiChannel) Name() string { return "confetti" }

func (c *ConfettiChannel) Kind() trackerout.EffectKind { return trackerout.KindVisual }

func (c *ConfettiChannel) Fire(_ context.Context, event domain.LevelUpEvent) error {
	celebration := dto.Celebration{Level: event.Level, Badge: domain.Badge(event.Level), At: event.At}
	select {
	case c.events <- celebration:
	default:
		c.logger.Debug("confetti dropped, no listener", "level", event.Level)
	}
	return nil
}

func (c *ConfettiChannel) Events() <-chan dto.Celebration {
	return c.events
}
