package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicer/internal/config"
	"invoicer/internal/logger"
	"invoicer/internal/prompt"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set up the issuer details printed on every invoice",
	Long: `Collect the issuer record interactively (name, address, contact
details and bank account) and write it to invoicer.yaml alongside the
current path and renderer settings.

The sort code must be exactly 6 digits; it is printed on the invoice as
three 2-digit groups.`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().StringP("output", "o", "", "Config file to write (default: "+config.DefaultConfigFile+")")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("configure")

	outputPath, _ := cmd.Flags().GetString("output")

	// Start from the current configuration so paths and renderer settings
	// survive a reconfigure.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	p := prompt.New(os.Stdin, os.Stdout)

	fmt.Println("Configuration")
	issuer, err := collectIssuer(p)
	if err != nil {
		if errors.Is(err, prompt.ErrNoInput) {
			fmt.Println("No input... No config file has been created.")
			return nil
		}
		return err
	}

	cfg.Issuer = issuer
	if err := cfg.Save(outputPath); err != nil {
		return err
	}

	log.Info().Str("issuer", issuer.Name).Msg("Configuration saved")
	fmt.Println("Configuration saved.")
	return nil
}

// collectIssuer prompts for the full issuer record. The sort code is
// re-prompted until it is exactly 6 digits.
func collectIssuer(p *prompt.Prompter) (config.Issuer, error) {
	name, err := p.Line("User name: ")
	if err != nil {
		return config.Issuer{}, err
	}

	address, err := p.Address()
	if err != nil {
		return config.Issuer{}, err
	}

	phone, err := p.Line("Phone number: ")
	if err != nil {
		return config.Issuer{}, err
	}

	email, err := p.Line("Email address: ")
	if err != nil {
		return config.Issuer{}, err
	}

	accountNumber, err := p.Line("Account number: ")
	if err != nil {
		return config.Issuer{}, err
	}

	var sortCode string
	for {
		sortCode, err = p.Line("Sort code: ")
		if err != nil {
			return config.Issuer{}, err
		}
		if config.ValidateSortCode(sortCode) == nil {
			break
		}
		fmt.Println("This is not a valid sort code. Please try again")
	}

	return config.Issuer{
		Name:          name,
		Address:       address,
		Phone:         phone,
		Email:         email,
		AccountNumber: accountNumber,
		SortCode:      sortCode,
	}, nil
}
