package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"invoicer/internal/logger"
)

var version = "0.4.0"

var rootCmd = &cobra.Command{
	Use:   "invoicer",
	Short: "Invoicer - generate sequentially numbered customer invoices",
	Long: `Invoicer keeps a small book of customer accounts and produces
sequentially numbered invoices for them, rendering each invoice as a PDF
through an external LaTeX engine.

Customer accounts live in a JSON file loaded at session start and saved at
session end; only the per-customer invoice counter is persisted between
sessions. Issuer details and paths come from invoicer.yaml (see the
configure command).`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("Invoicer executed")

		fmt.Println("Welcome to Invoicer!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
