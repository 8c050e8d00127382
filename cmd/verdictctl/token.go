package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/reviewguard/internal/config"
	"github.com/JaimeStill/reviewguard/internal/identity"
)

func newTokenCmd() *cobra.Command {
	var (
		id    identity.Identity
		admin bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token",
		Long:  "Signs a token with the configured identity key. Intended for local testing only.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id.Role = identity.RoleUser
			if admin {
				id.Role = identity.RoleAdmin
			}

			return withConfig(cmd, func(cfg *config.Config, _ *slog.Logger) error {
				token, err := identity.NewVerifier(&cfg.Identity).Issue(id)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&id.OwnerID, "sub", "", "owner id (token subject)")
	cmd.Flags().StringVar(&id.Name, "name", "", "display name")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	_ = cmd.MarkFlagRequired("sub")

	return cmd
}
