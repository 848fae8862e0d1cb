package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/mugworks/storefront/internal/config"
	"github.com/mugworks/storefront/internal/usecase"
)

// Module exposes the event publisher to the fx graph. Without a broker
// URL the application runs with a no-op publisher.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

func newPublisher(p publisherParams) (usecase.EventPublisher, error) {
	if p.Config.EventsAMQPURL == "" {
		p.Logger.Info("event publishing disabled, no broker configured")
		return NopPublisher{}, nil
	}

	publisher, err := NewAMQPPublisher(p.Config.EventsAMQPURL, p.Logger)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
