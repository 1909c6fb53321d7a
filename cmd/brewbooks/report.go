package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewbooks/ledger"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Sales and balance reports",
}

var reportDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Overall totals plus the last seven days of sales",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			totals := l.Totals()
			fmt.Printf("total sales  %10s\n", totals.TotalSales)
			fmt.Printf("total paid   %10s\n", totals.TotalPaid)
			fmt.Printf("outstanding  %10s\n", totals.TotalCredit)
			fmt.Println()

			for _, day := range l.LastNDays(7) {
				fmt.Printf("%s  %10s\n", day.Date, day.Total)
			}
			return nil
		})
	},
}

var reportCustomerCmd = &cobra.Command{
	Use:   "customer <name>",
	Short: "What a customer owes across all their invoices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			c, err := l.CustomerByName(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s owes %s\n", c.Name, l.OutstandingForCustomer(c.Name))
			return nil
		})
	},
}

func init() {
	reportCmd.AddCommand(reportDashboardCmd)
	reportCmd.AddCommand(reportCustomerCmd)
}
