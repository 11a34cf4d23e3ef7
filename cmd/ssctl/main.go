// Command ssctl runs operator tasks against a save-serve deployment: schema
// migrations, sweeps, impact reports and test tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ssctl",
	Short: "save-serve operator CLI",
	Long: `ssctl reads the same environment (and .env file) as the server.
- migrate: apply the embedded SQL migrations
- schema apply: diff and apply the schema with Atlas
- sweep: expire past-window donations and flush pending notifications once
- impact: print platform and organization totals
- token: mint a bearer token for local testing`,
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(sweepCmd())
	rootCmd.AddCommand(impactCmd())
	rootCmd.AddCommand(tokenCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
