package di

import (
	"go.uber.org/fx"

	"github.com/kakigori/storefront/internal/adapter/events"
	"github.com/kakigori/storefront/internal/adapter/orderapi"
	"github.com/kakigori/storefront/internal/app"
	"github.com/kakigori/storefront/internal/config"
	"github.com/kakigori/storefront/internal/logger"
	"github.com/kakigori/storefront/internal/pkg/session"
	"github.com/kakigori/storefront/internal/server/http/router"
	"github.com/kakigori/storefront/internal/storage"
	"github.com/kakigori/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		session.Module,
		storage.Module,
		orderapi.Module,
		events.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
