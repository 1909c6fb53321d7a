package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/brewbooks/ledger"
	audithook "github.com/brewbooks/ledger/audit_hook"
	"github.com/brewbooks/ledger/store"
	"github.com/brewbooks/ledger/store/jsonfile"
	"github.com/brewbooks/ledger/store/memory"
	"github.com/brewbooks/ledger/store/mongo"
	"github.com/brewbooks/ledger/store/sqlite"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "brewbooks",
	Short: "brewbooks - invoicing and bookkeeping for a small shop",
	Long: `brewbooks keeps a small shop's books: customers, inventory,
invoices with frozen totals, and payments against them.

State persists as one snapshot through the configured store backend
(BREWBOOKS_STORE: jsonfile, sqlite, mongo, or memory) and can be backed
up locally or synced to a cloud bucket.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(customerCmd)
	rootCmd.AddCommand(itemCmd)
	rootCmd.AddCommand(invoiceCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(cloudCmd)
	rootCmd.AddCommand(resetCmd)
}

// openStore builds the configured backend.
func openStore(ctx context.Context, cfg *Config) (store.Store, error) {
	switch cfg.Store {
	case "jsonfile":
		return jsonfile.New(cfg.Data), nil
	case "sqlite":
		return sqlite.Open(cfg.Data)
	case "mongo":
		return mongo.Open(ctx, cfg.Data)
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// withLedger opens the store, starts the ledger, runs fn, and shuts
// everything down again.
func withLedger(cmd *cobra.Command, fn func(ctx context.Context, l *ledger.Ledger) error) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	l := ledger.New(s, ledger.WithHook(auditTrail()))
	if err := l.Start(ctx); err != nil {
		s.Close()
		return err
	}
	defer l.Stop()

	return fn(ctx, l)
}

// auditTrail routes every committed change to the debug log.
func auditTrail() *audithook.Trail {
	return audithook.New(audithook.RecorderFunc(func(_ context.Context, evt *audithook.AuditEvent) error {
		log.Debug().
			Str("action", evt.Action).
			Str("resource_id", evt.ResourceID).
			Fields(evt.Metadata).
			Msg("audit")
		return nil
	}))
}
