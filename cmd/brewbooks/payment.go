package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewbooks/ledger"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/types"
)

var payCmd = &cobra.Command{
	Use:   "pay <invoice-id> <amount>",
	Short: "Record a payment against an invoice",
	Long: `Record a payment against an invoice, amount in major units. A payment
larger than what remains due is refused unless --allow-over is set, in
which case the invoice carries the credit as a negative balance.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		invoiceID, err := id.ParseInvoiceID(args[0])
		if err != nil {
			return err
		}
		amount, err := types.ParseMajor(args[1])
		if err != nil {
			return err
		}

		allowOver, _ := cmd.Flags().GetBool("allow-over")
		var date types.Date
		if raw, _ := cmd.Flags().GetString("date"); raw != "" {
			date, err = types.ParseDate(raw)
			if err != nil {
				return err
			}
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			check, err := l.CheckPayment(invoiceID, amount)
			if err != nil {
				return err
			}
			if check.ExceedsOutstanding && !allowOver {
				return fmt.Errorf("%s due on %s but %s offered; rerun with --allow-over to accept",
					check.Outstanding, invoiceID, amount)
			}

			p, err := l.RecordPayment(ctx, invoiceID, amount, date, allowOver)
			if err != nil {
				return err
			}
			due, err := l.OutstandingForInvoice(invoiceID)
			if err != nil {
				return err
			}
			fmt.Printf("recorded %s of %s on %s, %s remaining\n", p.ID, p.Amount, invoiceID, due)
			return nil
		})
	},
}

var payLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recorded payments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			payments := l.Payments()
			if len(payments) == 0 {
				fmt.Println("no payments")
				return nil
			}
			for _, p := range payments {
				fmt.Printf("%s  %s  %s  %8s\n", p.ID, p.Date, p.InvoiceID, p.Amount)
			}
			return nil
		})
	},
}

func init() {
	payCmd.Flags().Bool("allow-over", false, "accept a payment above the outstanding balance")
	payCmd.Flags().String("date", "", "payment date as YYYY-MM-DD, defaults to today")

	payCmd.AddCommand(payLsCmd)
}
