package main

import (
	"fmt"

	"github.com/creditgauge/creditgauge/internal/cli"
	"github.com/creditgauge/creditgauge/internal/ledger"
	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/creditgauge/creditgauge/internal/service"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show savings and transaction history",
		Long: `List savings ledger entries and classified transactions newest first,
with the running balance and session count.`,
		RunE: runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "maximum entries per section (0 for all)")
	cmd.Flags().Bool("savings-only", false, "skip the classified-transactions section")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	svc := ledger.New(store, profileCeiling(store))

	entries, err := svc.History(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	balance, err := svc.Balance(ctx)
	if err != nil {
		return fmt.Errorf("failed to load balance: %w", err)
	}
	sessions, err := svc.TotalSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to count sessions: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println(cli.FormatInfo("No savings activity yet. Start with 'cg save'."))
	} else {
		fmt.Println(cli.FormatTitle("Savings History"))
		for _, entry := range entries {
			label := "Deposit"
			style := cli.SuccessStyle
			if entry.Type == model.EntryWithdrawal {
				label = "Withdrawal"
				style = cli.WarningStyle
			}
			fmt.Printf("  %s  %-10s  %s\n",
				cli.SubtleStyle.Render(entry.CreatedAt.Format("2006-01-02 15:04")),
				label,
				style.Render(cli.FormatNaira(entry.Signed())),
			)
		}

		fmt.Println()
		fmt.Println(cli.BoldStyle.Render("  Balance: ") + cli.FormatNaira(balance) +
			cli.SubtleStyle.Render(fmt.Sprintf("  (%d deposit sessions)", sessions)))
	}

	if savingsOnly, _ := cmd.Flags().GetBool("savings-only"); savingsOnly {
		return nil
	}

	txns, err := store.GetTransactions(ctx, service.TransactionFilter{Limit: limit})
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(txns) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(cli.FormatTitle("Classified Transactions"))
	for _, txn := range txns {
		amount := txn.Amount
		style := cli.SuccessStyle
		if txn.Direction == model.DirectionDebit {
			amount = -amount
			style = cli.WarningStyle
		}
		fmt.Printf("  %s  %s  %s\n",
			cli.SubtleStyle.Render(txn.Date.Format("2006-01-02 15:04")),
			style.Render(cli.FormatNaira(amount)),
			txn.DisplayLabel(),
		)
	}

	return nil
}
