package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicer/internal/account"
	"invoicer/internal/config"
	"invoicer/internal/logger"
	"invoicer/internal/prompt"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customer accounts",
	Long: `Manage the book of customer accounts invoices are issued against.
Accounts are stored in a JSON file (store.path in invoicer.yaml); the whole
file is rewritten on every change.`,
}

var customerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new customer account",
	Long: `Register a new customer account interactively: full name,
multi-line address (finish with a blank line), and a unique account code.
The account starts with an invoice counter of zero.`,
	Example: `  # Register a customer, then issue their first invoice
  invoicer customer add
  invoicer new --account ACME`,
	Args: cobra.NoArgs,
	RunE: runCustomerAdd,
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered customer accounts",
	Args:  cobra.NoArgs,
	RunE:  runCustomerList,
}

func init() {
	rootCmd.AddCommand(customerCmd)
	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerListCmd)
}

func runCustomerAdd(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("customer")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := account.Load(cfg.Store.Path)
	if err != nil {
		return err
	}

	p := prompt.New(os.Stdin, os.Stdout)

	fmt.Println("New customer")
	name, err := p.Line("What is the new customer's name? ")
	if err != nil {
		return noInputAbort(err)
	}

	address, err := p.Address()
	if err != nil {
		return noInputAbort(err)
	}

	code, err := p.Line("Please enter an account code for this customer: ")
	if err != nil {
		return noInputAbort(err)
	}

	acc := &account.Account{
		Code:    code,
		Name:    name,
		Address: address,
	}
	if err := store.Add(acc); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}

	log.Info().Str("code", code).Msg("Customer account created")
	fmt.Printf("Successfully created new customer account: %s\n", code)
	return nil
}

func runCustomerList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := account.Load(cfg.Store.Path)
	if err != nil {
		return err
	}

	if store.Len() == 0 {
		fmt.Println("There are no customers registered.")
		return nil
	}

	fmt.Println("All customer accounts:")
	for _, code := range store.Codes() {
		acc, err := store.Get(code)
		if err != nil {
			return err
		}
		fmt.Printf("  %s  %s  (invoices issued: %d)\n", acc.Code, acc.Name, acc.Sequence)
	}
	return nil
}

// noInputAbort turns a skipped prompt into a friendly abort instead of a
// raw error trace.
func noInputAbort(err error) error {
	if errors.Is(err, prompt.ErrNoInput) {
		fmt.Println("No input given. Nothing was saved.")
		return nil
	}
	return err
}
