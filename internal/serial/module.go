package serial

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mugworks/storefront/internal/config"
	"github.com/mugworks/storefront/internal/domain/repository"
)

// Module wires the series resolver and serial allocator into the fx graph.
var Module = fx.Provide(newResolver, newAllocator)

type resolverParams struct {
	fx.In

	Orders repository.OrderRepository
	Logger *slog.Logger
}

func newResolver(p resolverParams) *Resolver {
	return NewResolver(p.Orders, p.Logger)
}

type allocatorParams struct {
	fx.In

	Serials repository.SerialRepository
	Config  *config.Config
	Logger  *slog.Logger
}

func newAllocator(p allocatorParams) *Allocator {
	return NewAllocator(p.Serials, ParseStrategy(p.Config.SerialStrategy), p.Logger)
}
