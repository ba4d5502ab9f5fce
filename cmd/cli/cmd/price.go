// Package cmd - price command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hbitsol/sistemaartn/core/catalog"
	"github.com/hbitsol/sistemaartn/core/money"
	"github.com/hbitsol/sistemaartn/core/pricing"
	"github.com/hbitsol/sistemaartn/core/rules"
	"github.com/hbitsol/sistemaartn/internal/config"
)

var (
	priceQuantity    string
	priceUnitCost    string
	priceDifficulty  string
	priceEmployee    string
	priceDays        string
	priceWorkers     string
	priceMargin      string
	priceRulesFile   string
	priceOutputJSON  bool
	priceMaterialStr string
)

// priceCmd prices a single item from the command line, without touching
// the database. Levels are resolved against the rule table only.
var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price a single item against the rule table",
	Long: `Compute the full cost breakdown for one item.

Examples:
  sistemaartn price --quantity 10 --unit-cost 25.00 --difficulty-level 2 --employee-level 2 --days 2 --workers 1
  sistemaartn price --quantity 3.5 --unit-cost 42.00 --difficulty-level 1 --employee-level 1 --days 1 --workers 2 --margin 0.45 --json`,
	RunE: runPrice,
}

func init() {
	priceCmd.Flags().StringVar(&priceQuantity, "quantity", "", "material quantity (required)")
	priceCmd.Flags().StringVar(&priceUnitCost, "unit-cost", "", "material unit cost (required)")
	priceCmd.Flags().StringVar(&priceDifficulty, "difficulty-level", "", "difficulty level (required)")
	priceCmd.Flags().StringVar(&priceEmployee, "employee-level", "", "employee level (required)")
	priceCmd.Flags().StringVar(&priceDays, "days", "", "estimated days (required)")
	priceCmd.Flags().StringVar(&priceWorkers, "workers", "1", "number of workers")
	priceCmd.Flags().StringVar(&priceMargin, "margin", "", "profit margin override (default: rule table minimum)")
	priceCmd.Flags().StringVar(&priceRulesFile, "rules", "", "rule table file (overrides config)")
	priceCmd.Flags().StringVar(&priceMaterialStr, "material", "item", "material name for display")
	priceCmd.Flags().BoolVar(&priceOutputJSON, "json", false, "emit the breakdown as JSON")

	for _, required := range []string{"quantity", "unit-cost", "difficulty-level", "employee-level", "days"} {
		_ = priceCmd.MarkFlagRequired(required)
	}
}

func runPrice(cmd *cobra.Command, args []string) error {
	rulesPath := priceRulesFile
	if rulesPath == "" {
		rulesPath = config.Get().Pricing.RulesPath
	}
	rt, err := rules.Load(rulesPath)
	if err != nil {
		return err
	}

	unitCost, err := money.ParseNonNegative("unit_cost", priceUnitCost)
	if err != nil {
		return err
	}
	quantity, err := money.ParseRate("quantity", priceQuantity)
	if err != nil {
		return err
	}
	days, err := money.ParseRate("estimated_days", priceDays)
	if err != nil {
		return err
	}
	workers, err := money.ParseRate("num_workers", priceWorkers)
	if err != nil {
		return err
	}

	var marginOverride *decimal.Decimal
	if priceMargin != "" {
		m, err := money.ParseRate("margin", priceMargin)
		if err != nil {
			return err
		}
		marginOverride = &m
	}
	margin, err := pricing.ResolveMargin(marginOverride, rt)
	if err != nil {
		return err
	}

	input := pricing.ItemInput{
		Material: catalog.MaterialSnapshot{
			Name:     priceMaterialStr,
			UnitCost: unitCost,
		},
		Quantity:      quantity,
		Difficulty:    catalog.DifficultySnapshot{Level: priceDifficulty},
		EmployeeLevel: priceEmployee,
		EstimatedDays: days,
		NumWorkers:    workers,
	}

	result, err := pricing.PriceItem(input, rt, margin)
	if err != nil {
		return err
	}

	if priceOutputJSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	fmt.Printf("Pricing: %s\n\n", priceMaterialStr)
	fmt.Printf("  Material cost:    %s\n", result.MaterialCost.StringFixed())
	fmt.Printf("  Labor cost:       %s\n", result.LaborCost.StringFixed())
	fmt.Printf("  Cost before tax:  %s\n", result.CostBeforeTax.StringFixed())
	fmt.Printf("  Tax rate:         %s\n", result.TaxRateApplied.String())
	fmt.Printf("  Total cost:       %s\n", result.TotalCost.StringFixed())
	fmt.Printf("  Margin:           %s\n", result.MarginApplied.String())
	fmt.Printf("  Selling price:    %s\n", result.SellingPrice.StringFixed())
	return nil
}
