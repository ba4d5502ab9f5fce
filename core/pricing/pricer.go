// Package pricing computes cost and selling-price breakdowns for project
// items against an externally configured rule table.
//
// The computation is a pure function of its inputs. The formula order is
// fixed because it determines rounding behavior: all intermediates keep
// arbitrary decimal precision and only the reported result fields are
// rendered at currency precision.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/hbitsol/sistemaartn/core/catalog"
	"github.com/hbitsol/sistemaartn/core/money"
	"github.com/hbitsol/sistemaartn/core/rules"
	"github.com/hbitsol/sistemaartn/internal/errors"
)

// ItemInput is one fully-resolved (material, quantity, difficulty, labor)
// tuple ready for pricing.
type ItemInput struct {
	// Material is the resolved material snapshot
	Material catalog.MaterialSnapshot

	// Quantity is the amount of material, in the material's unit
	Quantity decimal.Decimal

	// Difficulty is the resolved difficulty snapshot
	Difficulty catalog.DifficultySnapshot

	// EmployeeLevel keys into the rule table's employee_rates
	EmployeeLevel string

	// EstimatedDays is the estimated labor duration
	EstimatedDays decimal.Decimal

	// NumWorkers is the number of workers assigned
	NumWorkers decimal.Decimal

	// Notes is free-form text carried through to persistence
	Notes string
}

// ItemResult is the immutable cost/price breakdown for one item.
// Money fields are rendered at currency precision; the rates record what
// was applied so the result is auditable without the rule table.
type ItemResult struct {
	// MaterialCost = quantity * unit_cost * material_multiplier
	MaterialCost money.Money `json:"material_cost"`

	// LaborCost = daily_rate * estimated_days * num_workers
	LaborCost money.Money `json:"labor_cost"`

	// CostBeforeTax = material_cost + labor_cost
	CostBeforeTax money.Money `json:"cost_before_tax"`

	// TaxRateApplied is the difficulty level's tax rate
	TaxRateApplied decimal.Decimal `json:"tax_rate_applied"`

	// TotalCost = cost_before_tax * (1 + tax_rate)
	TotalCost money.Money `json:"total_cost"`

	// MarginApplied is the margin used for the selling price
	MarginApplied decimal.Decimal `json:"margin_applied"`

	// SellingPrice = total_cost * (1 + margin)
	SellingPrice money.Money `json:"selling_price"`
}

var one = decimal.NewFromInt(1)

// ResolveMargin returns the margin to apply: the override when supplied,
// otherwise the rule table's minimum. This is the single margin policy
// point; nothing else defaults a margin.
func ResolveMargin(override *decimal.Decimal, rt *rules.RuleTable) (decimal.Decimal, error) {
	if override == nil {
		return rt.MinMargin(), nil
	}
	if override.IsNegative() {
		return decimal.Decimal{}, errors.NegativeValue("margin", override.String())
	}
	max := rt.MarginRanges.Max
	if !max.IsZero() && override.GreaterThan(max) {
		return decimal.Decimal{}, errors.Newf(errors.TypeInput, "margin %s above configured maximum %s", override.String(), max.String()).
			WithContext("margin", override.String())
	}
	return *override, nil
}

// PriceItem computes the full breakdown for one item against the rule table.
// No side effects; every failure is a typed error and nothing is defaulted.
func PriceItem(in ItemInput, rt *rules.RuleTable, margin decimal.Decimal) (ItemResult, error) {
	if err := validateInput(in); err != nil {
		return ItemResult{}, err
	}

	difficulty, err := rt.Difficulty(in.Difficulty.Level)
	if err != nil {
		// A snapshot with an ID came from the catalog: the entity exists
		// but its label has no rule entry, which is a configuration gap,
		// not a bad reference.
		if in.Difficulty.ID != "" {
			return ItemResult{}, errors.MissingRuleData(in.Difficulty.Level).
				WithContext("difficulty_id", in.Difficulty.ID)
		}
		return ItemResult{}, err
	}
	dailyRate, err := rt.DailyRate(in.EmployeeLevel)
	if err != nil {
		return ItemResult{}, err
	}

	materialCost := in.Material.UnitCost.
		MulRate(in.Quantity).
		MulRate(difficulty.MaterialMultiplier)

	laborCost := dailyRate.
		MulRate(in.EstimatedDays).
		MulRate(in.NumWorkers)

	costBeforeTax := materialCost.Add(laborCost)
	totalCost := costBeforeTax.MulRate(one.Add(difficulty.TaxRate))
	sellingPrice := totalCost.MulRate(one.Add(margin))

	return ItemResult{
		MaterialCost:   materialCost.Round(),
		LaborCost:      laborCost.Round(),
		CostBeforeTax:  costBeforeTax.Round(),
		TaxRateApplied: difficulty.TaxRate,
		TotalCost:      totalCost.Round(),
		MarginApplied:  margin,
		SellingPrice:   sellingPrice.Round(),
	}, nil
}

// validateInput rejects inputs before any arithmetic is attempted
func validateInput(in ItemInput) error {
	if in.Quantity.IsNegative() {
		return errors.NegativeValue("quantity", in.Quantity.String())
	}
	if in.Quantity.IsZero() {
		return errors.Input("quantity must be greater than zero")
	}
	if in.EstimatedDays.IsNegative() {
		return errors.NegativeValue("estimated_days", in.EstimatedDays.String())
	}
	if in.NumWorkers.IsNegative() {
		return errors.NegativeValue("num_workers", in.NumWorkers.String())
	}
	if in.Material.UnitCost.IsNegative() {
		return errors.NegativeValue("unit_cost", in.Material.UnitCost.String())
	}
	if in.Difficulty.Level == "" {
		return errors.Input("difficulty level label is empty")
	}
	if in.EmployeeLevel == "" {
		return errors.Input("employee_level is empty")
	}
	return nil
}
