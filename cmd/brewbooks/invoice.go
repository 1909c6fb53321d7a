package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brewbooks/ledger"
	"github.com/brewbooks/ledger/export"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/invoice"
	"github.com/brewbooks/ledger/types"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Create and inspect invoices",
}

var invoiceCreateCmd = &cobra.Command{
	Use:   "create <customer>",
	Short: "Create an invoice from one or more --line flags",
	Long: `Create an invoice for a customer. Each --line is name:qty:price with
price in major units, e.g. --line "Latte:2:5.50". Unknown customers and
line items are added to the books as part of the same write.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawLines, _ := cmd.Flags().GetStringArray("line")
		lines := make([]invoice.DraftLine, 0, len(rawLines))
		for _, raw := range rawLines {
			line, err := parseDraftLine(raw)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}

		draft := invoice.Draft{
			CustomerName: args[0],
			Lines:        lines,
		}
		if phone, _ := cmd.Flags().GetString("phone"); phone != "" {
			draft.CustomerPhone = phone
		}
		if raw, _ := cmd.Flags().GetString("delivery"); raw != "" {
			delivery, err := types.ParseMajor(raw)
			if err != nil {
				return err
			}
			draft.Delivery = delivery
		}
		if raw, _ := cmd.Flags().GetString("date"); raw != "" {
			date, err := types.ParseDate(raw)
			if err != nil {
				return err
			}
			draft.Date = date
		}
		exportPath, _ := cmd.Flags().GetString("export")

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			inv, err := l.CreateInvoice(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Printf("created %s for %s, total %s\n", inv.ID, inv.Customer.Name, inv.Total)
			if exportPath != "" {
				cfg := loadConfig()
				if err := export.WriteFile(exportPath, cfg.ShopName, &inv); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", exportPath)
			}
			return nil
		})
	},
}

var invoiceLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List invoices with what remains due",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			invoices := l.Invoices()
			if len(invoices) == 0 {
				fmt.Println("no invoices")
				return nil
			}
			for _, inv := range invoices {
				due, err := l.OutstandingForInvoice(inv.ID)
				if err != nil {
					return err
				}
				fmt.Printf("%s  %s  %-25s total %8s  due %8s\n",
					inv.ID, inv.Date, inv.Customer.Name, inv.Total, due)
			}
			return nil
		})
	},
}

var invoiceShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one invoice in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invoiceID, err := id.ParseInvoiceID(args[0])
		if err != nil {
			return err
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			inv, err := l.Invoice(invoiceID)
			if err != nil {
				return err
			}
			paid := l.PaidForInvoice(inv.ID)
			due, err := l.OutstandingForInvoice(inv.ID)
			if err != nil {
				return err
			}

			fmt.Printf("%s  %s\n", inv.ID, inv.Date)
			fmt.Printf("customer: %s", inv.Customer.Name)
			if inv.Customer.Phone != "" {
				fmt.Printf(" (%s)", inv.Customer.Phone)
			}
			fmt.Println()
			for i, line := range inv.Items {
				fmt.Printf("%2d. %-25s x%-3d %8s  %8s\n",
					i+1, line.Name, line.Qty, line.Price, line.Subtotal)
			}
			if !inv.Delivery.IsZero() {
				fmt.Printf("    delivery %31s\n", inv.Delivery)
			}
			fmt.Printf("    total %34s\n", inv.Total)
			fmt.Printf("    paid %35s\n", paid)
			fmt.Printf("    due %36s\n", due)
			return nil
		})
	},
}

var invoiceRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an invoice and every payment recorded against it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invoiceID, err := id.ParseInvoiceID(args[0])
		if err != nil {
			return err
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			if err := l.DeleteInvoice(ctx, invoiceID); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", invoiceID)
			return nil
		})
	},
}

var invoiceExportCmd = &cobra.Command{
	Use:   "export <id> <path.xlsx>",
	Short: "Export an invoice as a spreadsheet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		invoiceID, err := id.ParseInvoiceID(args[0])
		if err != nil {
			return err
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			inv, err := l.Invoice(invoiceID)
			if err != nil {
				return err
			}
			cfg := loadConfig()
			if err := export.WriteFile(args[1], cfg.ShopName, &inv); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[1])
			return nil
		})
	},
}

// parseDraftLine parses "name:qty:price". The name may itself contain
// colons, so qty and price are taken from the end.
func parseDraftLine(raw string) (invoice.DraftLine, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 {
		return invoice.DraftLine{}, fmt.Errorf("bad line %q, want name:qty:price", raw)
	}
	name := strings.Join(parts[:len(parts)-2], ":")
	qty, err := strconv.ParseInt(parts[len(parts)-2], 10, 64)
	if err != nil {
		return invoice.DraftLine{}, fmt.Errorf("bad quantity in line %q: %w", raw, err)
	}
	price, err := types.ParseMajor(parts[len(parts)-1])
	if err != nil {
		return invoice.DraftLine{}, fmt.Errorf("bad price in line %q: %w", raw, err)
	}
	return invoice.DraftLine{Name: name, Qty: qty, Price: price}, nil
}

func init() {
	invoiceCreateCmd.Flags().StringArray("line", nil, "invoice line as name:qty:price, repeatable")
	invoiceCreateCmd.Flags().String("phone", "", "phone number recorded if the customer is new")
	invoiceCreateCmd.Flags().String("delivery", "", "delivery charge in major units")
	invoiceCreateCmd.Flags().String("date", "", "invoice date as YYYY-MM-DD, defaults to today")
	invoiceCreateCmd.Flags().String("export", "", "also write the invoice to this .xlsx path")

	invoiceCmd.AddCommand(invoiceCreateCmd)
	invoiceCmd.AddCommand(invoiceLsCmd)
	invoiceCmd.AddCommand(invoiceShowCmd)
	invoiceCmd.AddCommand(invoiceRmCmd)
	invoiceCmd.AddCommand(invoiceExportCmd)
}
