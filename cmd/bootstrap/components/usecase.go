package components

import (
	"context"
	"log/slog"

	"save-serve/internal/domain/matching"
	"save-serve/internal/pkg/clock"
	"save-serve/internal/pkg/config"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/commands"
	"save-serve/internal/usecase/jobs"
	"save-serve/internal/usecase/locator"
	"save-serve/internal/usecase/queries"
	"save-serve/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Options(
	fx.Provide(
		NewMatcher,
		NewLocator,
		usecase.NewAuthenticator,
		func(cfg config.Config) config.MatchConfig { return cfg.Match },
		func(cfg config.Config) config.ClaimConfig { return cfg.Claim },
		func(d *jobs.Dispatcher) commands.Kicker { return d },
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewDonationCommands,
		commands.NewOrganizationCommands,
		commands.NewClaimArbiter,
		commands.NewImpactAccumulator,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewDonationQueries,
		queries.NewOrganizationQueries,
		queries.NewMatchQueries,
		queries.NewImpactQueries,
	),
)

func NewMatcher(cfg config.Config) *matching.Matcher {
	ranker := matching.NewRanker(matching.RankerConfig{
		Weights: matching.Weights{
			Distance: cfg.Match.WeightDistance,
			Capacity: cfg.Match.WeightCapacity,
			Recency:  cfg.Match.WeightRecency,
		},
		DonationHorizon: cfg.Match.DonationHorizon,
		ActivityHorizon: cfg.Match.ActivityHorizon,
	})
	return matching.NewMatcher(matching.NewEligibilityFilter(cfg.Server.Location()), ranker)
}

// NewLocator loads the spatial indexes from the store before the server
// accepts requests.
func NewLocator(lc fx.Lifecycle, uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) *locator.Locator {
	loc := locator.New(logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return loc.Warm(ctx, uow, clk.Now())
		},
	})
	return loc
}
