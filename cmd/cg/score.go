package main

import (
	"fmt"
	"strings"

	"github.com/creditgauge/creditgauge/internal/cli"
	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/creditgauge/creditgauge/internal/score"
	"github.com/spf13/cobra"
)

func scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Recompute and show your credit profile",
		Long: `Recompute the credit score, tier, and safe monthly repayment amount from
current state: declared figures, verification outcomes, scanned transaction
history, and savings activity.`,
		RunE: runScore,
	}
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	result, err := recomputeProfile(ctx, store)
	if err != nil {
		return err
	}

	if result.Incomplete {
		fmt.Println(cli.FormatWarning("Not enough verified information to compute a score"))
		for _, item := range result.Missing {
			fmt.Println(cli.SubtleStyle.Render("  • " + item))
		}
		return nil
	}

	printProfile(result)
	return nil
}

// printProfile renders the computed profile as a summary box.
func printProfile(result *score.Result) {
	var b strings.Builder

	fmt.Fprintf(&b, "Score        %s / 100\n", cli.BoldStyle.Render(fmt.Sprintf("%d", result.Profile.CreditScore)))
	fmt.Fprintf(&b, "Tier         %s\n", cli.FormatTier(result.Tier.Name))
	fmt.Fprintf(&b, "Safe monthly %s\n", cli.BoldStyle.Render(cli.FormatNaira(result.Profile.SafeMonthlyRepayment)))

	if len(result.Tier.Benefits) > 0 {
		fmt.Fprintf(&b, "\n%s\n", cli.SubtleStyle.Render("Benefits"))
		for _, benefit := range result.Tier.Benefits {
			fmt.Fprintf(&b, "  • %s\n", benefit)
		}
	}

	if len(result.Profile.Badges) > 0 {
		fmt.Fprintf(&b, "\n%s\n", cli.SubtleStyle.Render("Badges"))
		for _, badge := range result.Profile.Badges {
			fmt.Fprintf(&b, "  %s %s\n", cli.BadgeIcon, badgeLabel(badge))
		}
	}

	if len(result.Missing) > 0 {
		fmt.Fprintf(&b, "\n%s\n", cli.SubtleStyle.Render("Boost your score"))
		for _, item := range result.Missing {
			fmt.Fprintf(&b, "  • %s\n", item)
		}
	}

	fmt.Println(cli.RenderBox(cli.GaugeIcon+" Credit Profile", strings.TrimRight(b.String(), "\n")))
}

// badgeLabel converts a stored badge identifier into display text.
func badgeLabel(badge string) string {
	switch badge {
	case model.BadgeIdentityVerified:
		return "Identity verified"
	case model.BadgeEmploymentVerified:
		return "Employment verified"
	case model.BadgeFirstDeposit:
		return "First deposit"
	case model.BadgeConsistentSaver:
		return "Consistent saver"
	case model.BadgeLowSpender:
		return "Low spender"
	default:
		return badge
	}
}
