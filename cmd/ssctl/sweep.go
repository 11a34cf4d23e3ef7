package main

import (
	"context"
	"fmt"
	"time"

	"save-serve/internal/domain/matching"
	"save-serve/internal/usecase/commands"
	"save-serve/internal/usecase/jobs"
	"save-serve/internal/usecase/locator"

	"github.com/spf13/cobra"
)

func sweepCmd() *cobra.Command {
	var batch int
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Expire donations past their window and dispatch due notifications once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			notifier, closeNotifier, err := e.notifier()
			if err != nil {
				return err
			}
			defer closeNotifier()

			dispatcher := jobs.NewDispatcher(e.uow, notifier, e.clock, e.logger)
			matcher := matching.NewMatcher(
				matching.NewEligibilityFilter(e.cfg.Server.Location()),
				matching.NewRanker(matching.RankerConfig{Weights: matching.DefaultWeights()}),
			)
			donations := commands.NewDonationCommands(e.uow, e.clock, matcher, locator.New(e.logger), dispatcher, e.logger)

			expired, err := donations.ExpireDue(ctx, batch)
			if err != nil {
				return fmt.Errorf("expire: %w", err)
			}
			sent, err := dispatcher.DispatchDue(ctx, batch)
			if err != nil {
				return fmt.Errorf("dispatch: %w", err)
			}

			if jsonOutput(cmd) {
				return printJSON(cmd, map[string]int{"expired": expired, "dispatched": sent})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "expired %d donations, dispatched %d notifications\n", expired, sent)
			return nil
		},
	}
	cmd.Flags().IntVar(&batch, "batch", 500, "max rows per step")
	return cmd
}
