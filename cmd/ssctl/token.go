package main

import (
	"fmt"

	"save-serve/internal/domain/user"
	"save-serve/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		userID string
		role   string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadEnv()
			if err != nil {
				return err
			}
			r, err := user.NewRole(role)
			if err != nil {
				return err
			}
			id := uuid.New()
			if userID != "" {
				if id, err = uuid.Parse(userID); err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
			}
			duration, err := cfg.JWT.TokenDuration()
			if err != nil {
				return err
			}
			token, err := jwt.NewService(cfg.JWT.Secret, duration, jwt.WithIssuer(cfg.JWT.Issuer)).GenerateToken(id, r)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(cmd, map[string]string{"user_id": id.String(), "role": r.String(), "token": token})
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (random when empty)")
	cmd.Flags().StringVar(&role, "role", "donor", "donor | organization | admin")
	return cmd
}
