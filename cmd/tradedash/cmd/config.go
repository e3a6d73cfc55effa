package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradedash/config"
	"github.com/rustyeddy/tradedash/internal/mock"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage tradedash configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  tradedash config init -o tradedash.yaml --demo
  tradedash config validate -f tradedash.yaml`,
	// Config files are written and checked here, so the usual load is skipped.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogger(cmd)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default settings. With --demo
the file also lists sample prop-firm accounts.

Example:
  tradedash config init -o tradedash.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  tradedash config validate -f tradedash.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configInitDemo     bool
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "tradedash.yaml", "output config file path")
	configInitCmd.Flags().BoolVar(&configInitDemo, "demo", false, "include sample prop-firm accounts")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	_ = configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if configInitDemo {
		c.PropFirms = mock.PropFirmAccounts()
	}
	if err := c.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(w, "\nEdit the file and run with:")
	fmt.Fprintf(w, "  tradedash --config %s report\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	c, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(w, "  Account: %.2f %s", c.Account.StartingBalance, c.Account.Currency)
	if c.Account.Timezone != "" {
		fmt.Fprintf(w, " (%s)", c.Account.Timezone)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Journal: %s\n", c.Journal.Type)
	fmt.Fprintf(w, "  Monthly target: %.2f\n", c.Goals.MonthlyTarget)
	fmt.Fprintf(w, "  Prop-firm accounts: %d\n", len(c.PropFirms))
	return nil
}
