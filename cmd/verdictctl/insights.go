package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/reviewguard/internal/config"
	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/insights"
	"github.com/JaimeStill/reviewguard/internal/ledger"
)

func newInsightsCmd() *cobra.Command {
	var (
		owner string
		admin bool
	)

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Print a dashboard from the verdict ledger",
		Long:  "Prints the dashboard for one owner, or the cross-owner dashboard with --admin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withConfig(cmd, func(cfg *config.Config, logger *slog.Logger) error {
				return withLedger(cmd.Context(), cfg, logger, func(l ledger.System) error {
					sys := insights.New(l, logger)

					if admin {
						d, err := sys.AdminDashboard(cmd.Context())
						if err != nil {
							return err
						}
						return writeJSON(cmd.OutOrStdout(), d)
					}

					d, err := sys.Dashboard(cmd.Context(), identity.Identity{OwnerID: owner, Role: identity.RoleUser})
					if err != nil {
						return err
					}
					return writeJSON(cmd.OutOrStdout(), d)
				})
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "owner id whose records are summarised")
	cmd.Flags().BoolVar(&admin, "admin", false, "summarise every owner")
	cmd.MarkFlagsMutuallyExclusive("owner", "admin")
	cmd.MarkFlagsOneRequired("owner", "admin")

	return cmd
}
