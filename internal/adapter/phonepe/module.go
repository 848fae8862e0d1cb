package phonepe

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mugworks/storefront/internal/config"
	"github.com/mugworks/storefront/internal/usecase"
)

// Module exposes the PhonePe gateway client to the fx graph.
var Module = fx.Provide(
	newClient,
	func(c *HTTPClient) usecase.PaymentGateway { return c },
)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (*HTTPClient, error) {
	return NewHTTPClient(Config{
		BaseURL:       p.Config.PhonePeBaseURL,
		ClientID:      p.Config.PhonePeClientID,
		ClientSecret:  p.Config.PhonePeClientSecret,
		ClientVersion: p.Config.PhonePeClientVersion,
		RedirectURL:   p.Config.PhonePeRedirectURL,
	}, p.Logger)
}
