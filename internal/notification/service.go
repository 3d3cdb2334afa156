package notification

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/domain"
)

// Service fans run results out to every configured channel. A failing
// channel does not keep the others from being notified.
type Service struct {
	log      zerolog.Logger
	channels map[string]domain.NotificationService
}

// NewService creates a notification service. With no webhook it does nothing.
func NewService(log zerolog.Logger, webhookURL string) domain.NotificationService {
	s := &Service{
		log:      log.With().Str("module", "notification").Logger(),
		channels: map[string]domain.NotificationService{},
	}
	if webhookURL != "" {
		s.channels["discord"] = NewDiscordService(log, webhookURL)
	}
	return s
}

func (s *Service) SendSuccess(ctx context.Context, stats domain.Statistics) error {
	return s.each(func(ch domain.NotificationService) error {
		return ch.SendSuccess(ctx, stats)
	})
}

func (s *Service) SendError(ctx context.Context, runErr error) error {
	return s.each(func(ch domain.NotificationService) error {
		return ch.SendError(ctx, runErr)
	})
}

// each returns the first channel error after trying all channels.
func (s *Service) each(send func(domain.NotificationService) error) error {
	var first error
	for name, ch := range s.channels {
		if err := send(ch); err != nil {
			s.log.Debug().Err(err).Str("channel", name).Msg("notification failed")
			if first == nil {
				first = errors.Wrapf(err, "%s notification", name)
			}
		}
	}
	return first
}
