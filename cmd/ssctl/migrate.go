package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"save-serve/internal/infra/db"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded SQL migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()
			if e.pool == nil {
				return errors.New("migrate needs STORE_DRIVER=postgres")
			}

			applied, err := db.Migrate(ctx, e.pool, e.logger)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), "applied", name)
			}
			return nil
		},
	}
}

func schemaCmd() *cobra.Command {
	schema := &cobra.Command{Use: "schema", Short: "Declarative schema management with Atlas"}
	schema.AddCommand(schemaApplyCmd())
	return schema
}

func schemaApplyCmd() *cobra.Command {
	var (
		to      string
		devURL  string
		atlas   string
		dryRun  bool
		approve bool
	)
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Diff the live database against the schema file and apply the difference",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadEnv()
			if err != nil {
				return err
			}
			if devURL == "" {
				return errors.New("--dev-url is required (an empty scratch database)")
			}
			client, err := atlasexec.NewClient(".", atlas)
			if err != nil {
				return fmt.Errorf("atlas client: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			res, err := client.SchemaApply(ctx, &atlasexec.SchemaApplyParams{
				URL:         cfg.DB.BuildDSN(),
				To:          to,
				DevURL:      devURL,
				DryRun:      dryRun,
				AutoApprove: approve,
			})
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(cmd, res.Changes)
			}
			stmts := res.Changes.Applied
			verb := "applied"
			if dryRun {
				stmts, verb = res.Changes.Pending, "pending"
			}
			if len(stmts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no changes")
			}
			for _, s := range stmts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verb, s)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "file://internal/infra/db/migrations", "desired schema URL")
	cmd.Flags().StringVar(&devURL, "dev-url", "", "dev database URL used for diffing")
	cmd.Flags().StringVar(&atlas, "atlas", "atlas", "path to the atlas binary")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the plan without applying it")
	cmd.Flags().BoolVar(&approve, "auto-approve", false, "apply without prompting")
	return cmd
}
