package main

import (
	"fmt"

	"github.com/creditgauge/creditgauge/internal/cli"
	"github.com/creditgauge/creditgauge/internal/ledger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func saveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <amount>",
		Short: "Deposit into your savings ledger",
		Long: `Deposit into the savings ledger. Deposits grow your credit score: every
full thousand naira adds a point, and even the minimum deposit adds one.

Deposits are bounded below by the minimum and above by your safe monthly
repayment amount. Pass --reference to make a deposit safely retryable: replaying
the same reference is a no-op, not a double deposit.`,
		Args: cobra.ExactArgs(1),
		RunE: runSave,
	}

	cmd.Flags().String("reference", "", "idempotency reference (generated when omitted)")

	return cmd
}

func runSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	reference, _ := cmd.Flags().GetString("reference")
	if reference == "" {
		reference = uuid.NewString()
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	svc := ledger.New(store, profileCeiling(store))
	result, err := svc.AddDeposit(ctx, amount, reference)
	if err != nil {
		return err
	}

	if result.Duplicate {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Reference %s already applied -- nothing changed", reference)))
		fmt.Println(cli.SubtleStyle.Render("  Balance: " + cli.FormatNaira(result.Balance)))
		return nil
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %s %s", cli.FormatNaira(amount), cli.VaultIcon)))
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("  Balance: %s  Score: %d (+%d)  Sessions: %d",
		cli.FormatNaira(result.Balance), result.Score, result.ScoreDelta, result.Sessions)))

	return nil
}
