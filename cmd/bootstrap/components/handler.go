package components

import (
	"save-serve/internal/handler"
	"save-serve/internal/handler/api"
	"save-serve/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewDonationHandler,
		api.NewOrganizationHandler,
		api.NewClaimHandler,
		api.NewImpactHandler,
		middleware.NewAuthMiddleware,
		func(
			d *api.DonationHandler,
			o *api.OrganizationHandler,
			c *api.ClaimHandler,
			i *api.ImpactHandler,
		) handler.Handlers {
			return handler.Handlers{Donation: d, Organization: o, Claim: c, Impact: i}
		},
	),
	fx.Invoke(handler.NewRouter),
)
