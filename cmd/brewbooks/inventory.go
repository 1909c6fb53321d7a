package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewbooks/ledger"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/inventory"
	"github.com/brewbooks/ledger/types"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage the inventory catalog",
}

var itemAddCmd = &cobra.Command{
	Use:   "add <name> <price>",
	Short: "Add an item, price in major units (e.g. 5.50)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := types.ParseMajor(args[1])
		if err != nil {
			return err
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			item, err := l.AddItem(ctx, args[0], price)
			if err != nil {
				return err
			}
			fmt.Printf("added %s at %s (%s)\n", item.Name, item.Price, item.ID)
			return nil
		})
	},
}

var itemLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			items := l.Items()
			if len(items) == 0 {
				fmt.Println("no items")
				return nil
			}
			for _, item := range items {
				fmt.Printf("%s  %-25s %s\n", item.ID, item.Name, item.Price)
			}
			return nil
		})
	},
}

var itemEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an item; existing invoice totals stay frozen",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := id.ParseItemID(args[0])
		if err != nil {
			return err
		}

		var upd inventory.Update
		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			upd.Name = &v
		}
		if cmd.Flags().Changed("price") {
			v, _ := cmd.Flags().GetString("price")
			price, err := types.ParseMajor(v)
			if err != nil {
				return err
			}
			upd.Price = &price
		}
		if upd.IsEmpty() {
			return fmt.Errorf("nothing to change; pass --name or --price")
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			item, err := l.UpdateItem(ctx, itemID, upd)
			if err != nil {
				return err
			}
			fmt.Printf("updated %s at %s (%s)\n", item.Name, item.Price, item.ID)
			return nil
		})
	},
}

var itemRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an item from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := id.ParseItemID(args[0])
		if err != nil {
			return err
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			if err := l.DeleteItem(ctx, itemID); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", itemID)
			return nil
		})
	},
}

func init() {
	itemEditCmd.Flags().String("name", "", "new name")
	itemEditCmd.Flags().String("price", "", "new price in major units")

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemLsCmd)
	itemCmd.AddCommand(itemEditCmd)
	itemCmd.AddCommand(itemRmCmd)
}
