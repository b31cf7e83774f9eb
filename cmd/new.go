package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicer/internal/account"
	"invoicer/internal/config"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/internal/money"
	"invoicer/internal/prompt"
	"invoicer/internal/render"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new invoice and generate it",
	Long: `Start a new invoice for a customer account. The next invoice
number is reserved the moment the invoice is started; discarding the
invoice returns it.

Entries are added one at a time or imported from a CSV file with a header
row and id, description, rate, quantity columns. Generating runs the
external LaTeX engine and places the finished PDF in the configured output
directory; the invoice stays open after a failed generation so it can be
fixed and retried.`,
	Example: `  # Pick the customer interactively
  invoicer new

  # Bill a known account and bulk-import the entries
  invoicer new --account ACME --import fees.csv`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringP("account", "a", "", "Account code to bill (skips interactive selection)")
	newCmd.Flags().StringP("import", "i", "", "CSV file of entries to import before the menu")
}

func runNew(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("new")

	accountCode, _ := cmd.Flags().GetString("account")
	importPath, _ := cmd.Flags().GetString("import")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Issuer.Validate(); err != nil {
		return fmt.Errorf("issuer configuration incomplete (run 'invoicer configure'): %w", err)
	}

	store, err := account.Load(cfg.Store.Path)
	if err != nil {
		return err
	}
	if store.Len() == 0 {
		fmt.Println("There are no customers registered. Please register a customer before trying to generate an invoice.")
		return nil
	}

	p := prompt.New(os.Stdin, os.Stdout)

	var selector invoice.Selector
	if accountCode != "" {
		selector = invoice.CodeSelector(accountCode)
	} else {
		selector = p.AccountSelector()
	}

	fmt.Println("New invoice")
	inv, err := invoice.New(store, selector)
	if err != nil {
		if errors.Is(err, prompt.ErrNoInput) {
			fmt.Println("No selection made. Returning.")
			return nil
		}
		return err
	}

	if importPath != "" {
		if err := importEntries(inv, importPath); err != nil {
			// The number was reserved at construction; hand it back before
			// bailing out of the session.
			inv.Discard()
			return err
		}
	}

	pipeline := render.New(cfg.Render, cfg.Issuer)

	err = invoiceMenu(cmd, p, inv, pipeline, cfg.Render.OutputExt)
	if err != nil {
		return err
	}

	// Persist counter changes from generation or discard.
	if err := store.Save(); err != nil {
		return err
	}

	log.Info().
		Str("code", inv.PlainCode()).
		Str("status", inv.Status()).
		Msg("Invoice session finished")

	return nil
}

// invoiceMenu runs the session loop until the invoice is generated or
// discarded.
func invoiceMenu(cmd *cobra.Command, p *prompt.Prompter, inv *invoice.Invoice, pipeline *render.Pipeline, outputExt string) error {
	for {
		fmt.Printf("\nInvoice menu (%s)\n", inv.PlainCode())
		fmt.Println("1: Add an entry")
		fmt.Println("2: Add entries from a CSV file")
		fmt.Println("3: Generate the invoice")
		fmt.Println("del: Discard this invoice and return")

		choice, err := p.Line(">> ")
		if errors.Is(err, prompt.ErrNoInput) {
			continue
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			addEntryInteractive(p, inv)

		case "2":
			path, err := p.Line("CSV file: ")
			if errors.Is(err, prompt.ErrNoInput) {
				fmt.Println("No input given. Please try again.")
				continue
			}
			if err != nil {
				return err
			}
			if err := importEntries(inv, path); err != nil {
				fmt.Printf("Import failed: %v\n", err)
			}

		case "3":
			err := inv.Generate(cmd.Context(), pipeline)
			switch {
			case err == nil:
				fmt.Printf("Invoice generated successfully! (%s%s)\n", inv.Filename(), outputExt)
				return nil
			case errors.Is(err, render.ErrEmptyInvoice):
				fmt.Println("This invoice has no entries yet. Add at least one before generating.")
			case errors.Is(err, render.ErrWorkspaceConflict):
				// Not recoverable from inside the session.
				return err
			default:
				fmt.Printf("Generation failed: %v\n", err)
				fmt.Println("The invoice is still open; you can retry or discard it.")
			}

		case "0", "del", "exit":
			inv.Discard()
			fmt.Println("Invoice discarded.")
			return nil

		default:
			fmt.Println("That is not a valid choice. Please try again:")
		}
	}
}

// addEntryInteractive collects one entry from the console. Leaving any
// field blank skips the entry.
func addEntryInteractive(p *prompt.Prompter, inv *invoice.Invoice) {
	fmt.Println("\nNew entry (leave blank to skip)")

	id, err := p.Line("ID: ")
	if err != nil {
		fmt.Println("No input given. Please try again.")
		return
	}
	description, err := p.Line("Description: ")
	if err != nil {
		fmt.Println("No input given. Please try again.")
		return
	}
	rate, err := p.Amount("Rate: ")
	if err != nil {
		fmt.Println("No input given. Please try again.")
		return
	}
	qty, err := p.Amount("Quantity: ")
	if err != nil {
		fmt.Println("No input given. Please try again.")
		return
	}

	entry := invoice.NewEntry(id, description, rate, qty)
	inv.AddEntry(entry)
	fmt.Printf("(new entry: %s)\n", money.FormatAmount(entry.Amount))
}

// importEntries bulk-imports a CSV file into the invoice. The whole file
// either imports or nothing does.
func importEntries(inv *invoice.Invoice, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := invoice.ImportEntries(f)
	if err != nil {
		return err
	}

	for _, e := range entries {
		inv.AddEntry(e)
	}
	fmt.Printf("Imported %d entries (subtotal now %s)\n", len(entries), money.FormatAmount(inv.Subtotal()))
	return nil
}
