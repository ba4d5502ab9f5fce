// Package cmd - rules commands
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbitsol/sistemaartn/core/rules"
	"github.com/hbitsol/sistemaartn/db"
	"github.com/hbitsol/sistemaartn/internal/config"
)

var rulesCheckCoverage bool

// rulesCmd groups rule table operations
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate the pricing rule table",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// rulesValidateCmd validates a rule table file. With --coverage it also
// checks that every difficulty level stored in the database has a rule
// entry, so a catalog edit cannot silently break project pricing.
var rulesValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a pricing rule table file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRulesValidate,
}

func init() {
	rulesValidateCmd.Flags().BoolVar(&rulesCheckCoverage, "coverage", false, "check coverage of stored difficulty levels")
	rulesCmd.AddCommand(rulesValidateCmd)
}

func runRulesValidate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	path := cfg.Pricing.RulesPath
	if len(args) > 0 {
		path = args[0]
	}

	rt, err := rules.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("Rule table %s is valid.\n", path)
	fmt.Printf("  employee levels:   %d\n", len(rt.EmployeeRates))
	fmt.Printf("  difficulty levels: %d\n", len(rt.DifficultyFactors))
	fmt.Printf("  margin range:      %s .. %s\n", rt.MarginRanges.Min.String(), rt.MarginRanges.Max.String())

	if !rulesCheckCoverage {
		return nil
	}

	dbConn, err := db.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	repo := db.NewRepository(dbConn)
	defer repo.Close()

	levels, err := repo.ListDifficultyLevels(context.Background())
	if err != nil {
		return err
	}
	if errs := rt.CheckCoverage(levels); len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("  coverage gap: %v\n", e)
		}
		return fmt.Errorf("%d stored difficulty levels have no rule entry", len(errs))
	}
	fmt.Printf("  coverage:          all %d stored difficulty levels covered\n", len(levels))
	return nil
}
