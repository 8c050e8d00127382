package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/reviewguard/internal/classifier"
	"github.com/JaimeStill/reviewguard/internal/config"
	"github.com/JaimeStill/reviewguard/internal/ledger"
	"github.com/JaimeStill/reviewguard/internal/verdicts"
)

func newScoreCmd() *cobra.Command {
	var (
		sub  verdicts.Submission
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "score [TEXT]",
		Short: "Score review text or a product URL",
		Long: "Scores a review against the configured classifier and prints the verdict.\n" +
			"With --url the product page is analysed instead and nothing is sent to the classifier.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case sub.ProductURL != "" && len(args) == 1:
				return errors.New("review text and --url are mutually exclusive")
			case sub.ProductURL != "":
				sub.Text = sub.ProductURL
				sub.IsURLAnalysis = true
			case len(args) == 1:
				sub.Text = args[0]
			default:
				return errors.New("review text or --url is required")
			}

			return withConfig(cmd, func(cfg *config.Config, logger *slog.Logger) error {
				if cmd.Flags().Changed("seed") {
					cfg.Verdicts.Synthetic.Seed = seed
				}
				return runScore(cmd, cfg, logger, sub)
			})
		},
	}

	cmd.Flags().StringVar(&sub.ProductURL, "url", "", "product page URL to analyse")
	cmd.Flags().StringVar(&sub.ProductName, "product", "", "product name")
	cmd.Flags().StringVar(&sub.ReviewerName, "reviewer", "", "reviewer name")
	cmd.Flags().IntVar(&sub.Rating, "rating", 0, "star rating, 1-5")
	cmd.Flags().StringVar(&sub.ReviewDate, "date", "", "review date, YYYY-MM-DD")
	cmd.Flags().BoolVar(&sub.VerifiedPurchase, "verified", false, "review is from a verified purchase")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for URL analysis (overrides config)")

	return cmd
}

// runScore scores anonymously, so the in-memory ledger is never written.
func runScore(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, sub verdicts.Submission) error {
	c, err := classifier.New(cfg.Classifier, logger)
	if err != nil {
		return err
	}

	sys := verdicts.New(
		verdicts.NewClassifierSource(c, cfg.Verdicts.TimeoutDuration()),
		verdicts.NewSyntheticURLSource(verdicts.NewSeededRand(cfg.Verdicts.Synthetic.Seed), 0),
		ledger.NewMemory(logger, cfg.API.Pagination),
		&cfg.Verdicts,
		nil,
		nil,
		logger,
		cfg.API.Pagination,
	)

	v, err := sys.Submit(cmd.Context(), nil, sub)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), v)
}
