package main

import (
	"context"
	"fmt"
	"time"

	"save-serve/internal/domain/user"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/locator"
	"save-serve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

type impactReport struct {
	Platform      *queries.ImpactView            `json:"platform"`
	Donations     *queries.DonationStatsView     `json:"donations"`
	Organizations *queries.OrganizationStatsView `json:"organizations"`
	Organization  *queries.ImpactView            `json:"organization,omitempty"`
}

func impactCmd() *cobra.Command {
	var orgID string
	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Print platform impact and statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			// the report reads aggregates only, so an operator principal is synthesized
			admin := usecase.Principal{UserID: uuid.Nil, Role: user.RoleAdmin}
			loc := locator.New(e.logger)
			impactQ := queries.NewImpactQueries(e.uow)

			var report impactReport
			if report.Platform, err = impactQ.Platform(ctx); err != nil {
				return err
			}
			if report.Donations, err = queries.NewDonationQueries(e.uow, e.clock, loc, e.cfg.Match).Stats(ctx, nil, admin); err != nil {
				return err
			}
			if report.Organizations, err = queries.NewOrganizationQueries(e.uow, loc, e.cfg.Match).Stats(ctx, admin); err != nil {
				return err
			}
			if orgID != "" {
				id, err := uuid.Parse(orgID)
				if err != nil {
					return fmt.Errorf("invalid --org: %w", err)
				}
				if report.Organization, err = impactQ.Organization(ctx, id); err != nil {
					return err
				}
			}

			if jsonOutput(cmd) {
				return printJSON(cmd, report)
			}
			renderImpact(cmd, report)
			return nil
		},
	}
	cmd.Flags().StringVar(&orgID, "org", "", "also show one organization's impact")
	return cmd
}

func renderImpact(cmd *cobra.Command, r impactReport) {
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetTitle("Save&Serve impact")
	tw.AppendHeader(table.Row{"Scope", "Pickups", "Meals", "Weight (kg)", "CO2 (kg)"})
	tw.AppendRow(impactRow("platform", r.Platform))
	if r.Organization != nil {
		tw.AppendRow(impactRow("organization", r.Organization))
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	tw.Render()

	st := table.NewWriter()
	st.SetOutputMirror(cmd.OutOrStdout())
	st.AppendHeader(table.Row{"Statistic", "Value"})
	st.AppendRows([]table.Row{
		{"donations listed", r.Donations.TotalDonations},
		{"active listings", r.Donations.ActiveListings},
		{"portions listed", r.Donations.TotalPortions},
		{"organizations", r.Organizations.Total},
		{"verified", r.Organizations.Verified},
		{"pending verification", r.Organizations.Pending},
	})
	st.Render()
}

func impactRow(scope string, v *queries.ImpactView) table.Row {
	return table.Row{scope, v.Pickups, v.Meals, fmt.Sprintf("%.1f", v.WeightKg), fmt.Sprintf("%.1f", v.CO2Kg)}
}
