// Package rules defines the externally configured pricing rule table.
// The table is parsed and validated once at the boundary; the pricing core
// consumes it read-only and never invents defaults for missing entries.
package rules

import (
	"github.com/shopspring/decimal"

	"github.com/hbitsol/sistemaartn/core/money"
	"github.com/hbitsol/sistemaartn/internal/errors"
)

// DifficultyRule holds the factors applied for one difficulty level
type DifficultyRule struct {
	// MaterialMultiplier scales the material cost
	MaterialMultiplier decimal.Decimal `json:"material_multiplier"`

	// TaxRate is applied on top of cost before tax
	TaxRate decimal.Decimal `json:"tax_rate"`
}

// MarginRange bounds the profit margin applied to total cost
type MarginRange struct {
	// Min is the margin applied when no override is supplied
	Min decimal.Decimal `json:"min"`

	// Max is the upper bound for overrides (zero value = unbounded)
	Max decimal.Decimal `json:"max,omitempty"`
}

// RuleTable is the full pricing rule configuration.
// Keys of EmployeeRates and DifficultyFactors are an open set defined by
// configuration, not an enum.
type RuleTable struct {
	// EmployeeRates maps employee level label to daily rate
	EmployeeRates map[string]money.Money `json:"employee_rates"`

	// DifficultyFactors maps difficulty level label to its factors
	DifficultyFactors map[string]DifficultyRule `json:"difficulty_factors"`

	// MarginRanges bounds the applied margin
	MarginRanges MarginRange `json:"margin_ranges"`
}

// DailyRate returns the daily labor rate for an employee level
func (rt *RuleTable) DailyRate(level string) (money.Money, error) {
	rate, ok := rt.EmployeeRates[level]
	if !ok {
		return money.Money{}, errors.UnknownEmployeeLevel(level)
	}
	return rate, nil
}

// Difficulty returns the rule entry for a difficulty level label
func (rt *RuleTable) Difficulty(level string) (DifficultyRule, error) {
	rule, ok := rt.DifficultyFactors[level]
	if !ok {
		return DifficultyRule{}, errors.UnknownDifficultyLevel(level)
	}
	return rule, nil
}

// MinMargin returns the margin applied when no override is supplied
func (rt *RuleTable) MinMargin() decimal.Decimal {
	return rt.MarginRanges.Min
}

// Validate checks internal consistency of the rule table.
// All findings are reported, not just the first.
func (rt *RuleTable) Validate() []error {
	var errs []error

	if len(rt.EmployeeRates) == 0 {
		errs = append(errs, errors.New(errors.TypeConfig, "employee_rates is empty"))
	}
	for level, rate := range rt.EmployeeRates {
		if rate.IsNegative() {
			errs = append(errs, errors.NegativeValue("employee_rates."+level, rate.String()))
		}
	}

	if len(rt.DifficultyFactors) == 0 {
		errs = append(errs, errors.New(errors.TypeConfig, "difficulty_factors is empty"))
	}
	for level, rule := range rt.DifficultyFactors {
		if rule.MaterialMultiplier.IsNegative() {
			errs = append(errs, errors.NegativeValue("difficulty_factors."+level+".material_multiplier", rule.MaterialMultiplier.String()))
		}
		if rule.TaxRate.IsNegative() {
			errs = append(errs, errors.NegativeValue("difficulty_factors."+level+".tax_rate", rule.TaxRate.String()))
		}
	}

	if rt.MarginRanges.Min.IsNegative() {
		errs = append(errs, errors.NegativeValue("margin_ranges.min", rt.MarginRanges.Min.String()))
	}
	if !rt.MarginRanges.Max.IsZero() && rt.MarginRanges.Max.LessThan(rt.MarginRanges.Min) {
		errs = append(errs, errors.New(errors.TypeConfig, "margin_ranges.max below margin_ranges.min"))
	}

	return errs
}

// CheckCoverage verifies that every difficulty level label used by the
// catalog has a matching rule entry. The entity rows and the rule table are
// independently edited, so drift between them is detected here instead of
// mid-calculation.
func (rt *RuleTable) CheckCoverage(levels []string) []error {
	var errs []error
	for _, level := range levels {
		if _, ok := rt.DifficultyFactors[level]; !ok {
			errs = append(errs, errors.MissingRuleData(level))
		}
	}
	return errs
}
