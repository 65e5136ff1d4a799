package main

import (
	"fmt"

	"github.com/creditgauge/creditgauge/internal/cli"
	"github.com/creditgauge/creditgauge/internal/ledger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func withdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw <amount>",
		Short: "Withdraw from your savings ledger",
		Long: `Withdraw from the savings ledger. Withdrawals never take the balance
negative and never reduce your credit score; the score rewards deposits and
simply doesn't move on the way out.`,
		Args: cobra.ExactArgs(1),
		RunE: runWithdraw,
	}

	cmd.Flags().String("reference", "", "idempotency reference (generated when omitted)")

	return cmd
}

func runWithdraw(cmd *cobra.Command, args []string) error {
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
	result, err := svc.Withdraw(ctx, amount, reference)
	if err != nil {
		return err
	}

	if result.Duplicate {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Reference %s already applied -- nothing changed", reference)))
		fmt.Println(cli.SubtleStyle.Render("  Balance: " + cli.FormatNaira(result.Balance)))
		return nil
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Withdrew %s", cli.FormatNaira(amount))))
	fmt.Println(cli.SubtleStyle.Render("  Balance: " + cli.FormatNaira(result.Balance)))

	return nil
}
