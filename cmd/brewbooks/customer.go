package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewbooks/ledger"
	"github.com/brewbooks/ledger/customer"
	"github.com/brewbooks/ledger/id"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customer records",
}

var customerAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		phone, _ := cmd.Flags().GetString("phone")
		email, _ := cmd.Flags().GetString("email")

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			c, err := l.AddCustomer(ctx, args[0], phone, email)
			if err != nil {
				return err
			}
			fmt.Printf("added %s (%s)\n", c.Name, c.ID)
			return nil
		})
	},
}

var customerLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List customers with their outstanding balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			customers := l.Customers()
			if len(customers) == 0 {
				fmt.Println("no customers")
				return nil
			}
			for _, c := range customers {
				owed := l.OutstandingForCustomer(c.Name)
				fmt.Printf("%s  %-25s %-15s owes %s\n", c.ID, c.Name, c.Phone, owed)
			}
			return nil
		})
	},
}

var customerEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := id.ParseCustomerID(args[0])
		if err != nil {
			return err
		}

		var upd customer.Update
		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			upd.Name = &v
		}
		if cmd.Flags().Changed("phone") {
			v, _ := cmd.Flags().GetString("phone")
			upd.Phone = &v
		}
		if cmd.Flags().Changed("email") {
			v, _ := cmd.Flags().GetString("email")
			upd.Email = &v
		}
		if upd.IsEmpty() {
			return fmt.Errorf("nothing to change; pass --name, --phone, or --email")
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			c, err := l.UpdateCustomer(ctx, customerID, upd)
			if err != nil {
				return err
			}
			fmt.Printf("updated %s (%s)\n", c.Name, c.ID)
			return nil
		})
	},
}

var customerRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := id.ParseCustomerID(args[0])
		if err != nil {
			return err
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			if err := l.DeleteCustomer(ctx, customerID); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", customerID)
			return nil
		})
	},
}

func init() {
	customerAddCmd.Flags().String("phone", "", "phone number")
	customerAddCmd.Flags().String("email", "", "email address")

	customerEditCmd.Flags().String("name", "", "new name")
	customerEditCmd.Flags().String("phone", "", "new phone number")
	customerEditCmd.Flags().String("email", "", "new email address")

	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerLsCmd)
	customerCmd.AddCommand(customerEditCmd)
	customerCmd.AddCommand(customerRmCmd)
}
