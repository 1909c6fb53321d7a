package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewbooks/ledger"
	"github.com/brewbooks/ledger/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and import snapshot files",
}

var backupExportCmd = &cobra.Command{
	Use:   "export <path.json>",
	Short: "Write the current books to a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			if err := backup.Export(args[0], l.Snapshot()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		})
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <path.json>",
	Short: "Replace the books with a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := backup.Import(args[0])
		if err != nil {
			return err
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			if err := l.Restore(ctx, snap); err != nil {
				return err
			}
			fmt.Printf("restored %d customers, %d invoices, %d payments\n",
				len(snap.Customers), len(snap.Invoices), len(snap.Payments))
			return nil
		})
	},
}

var cloudCmd = &cobra.Command{
	Use:   "cloud",
	Short: "Sync the books with a cloud bucket",
}

var cloudPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the current books to the configured bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if cfg.GCSBucket == "" {
			return fmt.Errorf("BREWBOOKS_GCS_BUCKET is not set")
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			remote, err := backup.NewRemoteStore(ctx, cfg.GCSBucket, cfg.GCSObject)
			if err != nil {
				return err
			}
			defer remote.Close()

			rev, err := remote.Revision(ctx)
			if err != nil {
				return err
			}
			next, err := remote.Push(ctx, l.Snapshot(), rev)
			if err != nil {
				return err
			}
			fmt.Printf("pushed gs://%s/%s at revision %d\n", cfg.GCSBucket, cfg.GCSObject, next)
			return nil
		})
	},
}

var cloudPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace the books with the bucket copy",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if cfg.GCSBucket == "" {
			return fmt.Errorf("BREWBOOKS_GCS_BUCKET is not set")
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			remote, err := backup.NewRemoteStore(ctx, cfg.GCSBucket, cfg.GCSObject)
			if err != nil {
				return err
			}
			defer remote.Close()

			snap, rev, err := remote.Pull(ctx)
			if err != nil {
				return err
			}
			if err := l.Restore(ctx, snap); err != nil {
				return err
			}
			fmt.Printf("pulled gs://%s/%s at revision %d\n", cfg.GCSBucket, cfg.GCSObject, rev)
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all books",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("refusing to erase the books without --force")
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			if err := l.Reset(ctx); err != nil {
				return err
			}
			fmt.Println("books erased")
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "confirm erasing all data")

	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)

	cloudCmd.AddCommand(cloudPushCmd)
	cloudCmd.AddCommand(cloudPullCmd)
}
