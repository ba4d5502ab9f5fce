// Package cmd provides the CLI commands for sistemaartn.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hbitsol/sistemaartn/internal/config"
	"github.com/hbitsol/sistemaartn/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sistemaartn",
	Short: "Pricing and project management for vehicle wrapping franchises",
	Long: `sistemaartn manages clients, materials and priced projects for a
franchise network, with deterministic fixed-point pricing.

Examples:
  sistemaartn serve
  sistemaartn price --quantity 10 --unit-cost 25.00 --difficulty-level 2 --employee-level 2 --days 2 --workers 1
  sistemaartn rules validate pricing_rules.json`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sistemaartn version 1.0.0")
	},
}
