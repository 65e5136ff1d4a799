package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/creditgauge/creditgauge/internal/classifier"
	"github.com/creditgauge/creditgauge/internal/cli"
	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <inbox-file>",
		Short: "Scan exported SMS messages for transactions",
		Long: `Classify an exported SMS inbox into transactions. The file holds one JSON
object per line with "sender", "body", and optional "received_at" fields.

Non-financial messages are skipped. Re-scanning the same export is safe:
transactions deduplicate on content, not message identity.`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	cmd.Flags().Bool("dry-run", false, "classify without saving")

	return cmd
}

// inboxMessage is one line of the exported inbox file.
type inboxMessage struct {
	Sender     string    `json:"sender"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open inbox file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var messages []classifier.Message
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg inboxMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			return fmt.Errorf("failed to parse line %d: %w", lineNo, err)
		}
		messages = append(messages, classifier.Message{
			Sender:     msg.Sender,
			Body:       msg.Body,
			ReceivedAt: msg.ReceivedAt,
		})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read inbox file: %w", err)
	}

	if len(messages) == 0 {
		fmt.Println(cli.FormatInfo("No messages found in file"))
		return nil
	}

	bar := progressbar.NewOptions(len(messages),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Scanning messages..."),
	)

	c := classifier.New()
	var transactions []model.Transaction
	for _, msg := range messages {
		if txn, ok := c.Classify(ctx, msg); ok {
			transactions = append(transactions, *txn)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	skipped := len(messages) - len(transactions)
	totals := classifier.Aggregate(transactions, time.Now(), observedWindow)

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Classified %d transactions (%d messages skipped)", len(transactions), skipped)))
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("  Last 30 days: %s in, %s out",
		cli.FormatNaira(totals.Credits), cli.FormatNaira(totals.Debits))))

	if dryRun {
		fmt.Println(cli.FormatInfo("Dry run -- nothing saved"))
		return nil
	}
	if len(transactions) == 0 {
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveTransactions(ctx, transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	return nil
}
