package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/kakigori/storefront/internal/adapter/orderapi"
	"github.com/kakigori/storefront/internal/config"
)

// Module provides the event Publisher and decorates the order client with it.
// Without a configured NATS URL events are dropped.
var Module = fx.Options(
	fx.Provide(newPublisher),
	fx.Decorate(decorateClient),
)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) (Publisher, error) {
	if p.Config.NATSURL == "" {
		return NopPublisher{}, nil
	}
	pub, err := NewNATSPublisher(p.Config.NATSURL)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("publishing order events", slog.String("subjects", p.Config.EventSubjectPrefix+".>"))
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}

type decorateParams struct {
	fx.In

	Client    orderapi.Client
	Publisher Publisher
	Config    *config.Config
	Logger    *slog.Logger
}

func decorateClient(p decorateParams) orderapi.Client {
	if _, ok := p.Publisher.(NopPublisher); ok {
		return p.Client
	}
	return NewNotifyingClient(p.Client, p.Publisher, p.Config.EventSubjectPrefix, p.Logger)
}
