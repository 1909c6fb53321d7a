// Command brewbooks is the counter-side interface to the ledger: the
// shop's customers, inventory, invoices, payments, and backups from one
// terminal.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load environment variables; a missing .env file is fine.
	_ = godotenv.Load()

	cfg := loadConfig()
	setupLogger(cfg)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
