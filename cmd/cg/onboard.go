package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/creditgauge/creditgauge/internal/cli"
	"github.com/creditgauge/creditgauge/internal/common"
	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/spf13/cobra"
)

func onboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Declare employment, income, and expenses",
		Long: `Record the facts that seed your financial profile: how you earn, what you
earn, and what you spend each month.

Declared figures are fixed once onboarding completes. Verification and
saving are what move your score afterwards.`,
		RunE: runOnboard,
	}

	cmd.Flags().StringP("employment", "t", "", "employment type (salaried, freelancer, business)")
	cmd.Flags().String("income", "", "monthly income in whole naira")
	cmd.Flags().String("expenses", "", "monthly expenses in whole naira")
	cmd.Flags().String("business-name", "", "registered business name (business type only)")

	return cmd
}

func runOnboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	employment, _ := cmd.Flags().GetString("employment")
	if !model.ValidEmploymentType(model.EmploymentType(employment)) {
		return common.NewUserError(
			"employment must be one of: salaried, freelancer, business",
			common.ErrInvalidConfig)
	}

	rawIncome, _ := cmd.Flags().GetString("income")
	rawExpenses, _ := cmd.Flags().GetString("expenses")
	businessName, _ := cmd.Flags().GetString("business-name")

	var income, expenses int64
	if rawIncome != "" {
		if income, err = parseAmount(rawIncome); err != nil {
			return err
		}
	}
	if rawExpenses != "" {
		if expenses, err = parseAmount(rawExpenses); err != nil {
			return err
		}
	}
	if income < 0 || expenses < 0 {
		return common.NewUserError("amounts cannot be negative", common.ErrInvalidConfig)
	}

	// Re-running onboard updates the declared facts but keeps any
	// verification outcomes already earned.
	user, err := store.GetUser(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}
		user = &model.User{}
	}

	user.EmploymentType = model.EmploymentType(employment)
	user.MonthlyIncome = income
	user.MonthlyExpenses = expenses
	user.BusinessName = businessName
	if user.OnboardedAt.IsZero() {
		user.OnboardedAt = time.Now()
	}

	if err := store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	result, err := recomputeProfile(ctx, store)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Onboarding saved"))
	if result.Incomplete {
		fmt.Println(cli.FormatInfo("Your profile needs more before a score can be computed:"))
		for _, item := range result.Missing {
			fmt.Println(cli.SubtleStyle.Render("  • " + item))
		}
		fmt.Println(cli.SubtleStyle.Render("  Try 'cg verify email' or 'cg verify identity'."))
		return nil
	}

	printProfile(result)
	return nil
}
