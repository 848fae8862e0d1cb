package di

import (
	"go.uber.org/fx"

	"github.com/mugworks/storefront/internal/adapter/events"
	"github.com/mugworks/storefront/internal/adapter/phonepe"
	"github.com/mugworks/storefront/internal/app"
	"github.com/mugworks/storefront/internal/config"
	"github.com/mugworks/storefront/internal/logger"
	"github.com/mugworks/storefront/internal/pkg/auth"
	"github.com/mugworks/storefront/internal/serial"
	"github.com/mugworks/storefront/internal/server/http/handlers"
	"github.com/mugworks/storefront/internal/server/http/router"
	"github.com/mugworks/storefront/internal/storage/postgres"
	"github.com/mugworks/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		phonepe.Module,
		events.Module,
		serial.Module,
		usecase.Module,
		fx.Provide(
			func(client *phonepe.HTTPClient) app.CallbackDecoder { return client },
			func(facade *app.StorefrontFacade) handlers.StorefrontFacade { return facade },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
