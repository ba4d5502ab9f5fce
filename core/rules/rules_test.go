package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hbitsol/sistemaartn/internal/errors"
)

const sampleJSON = `{
  "employee_rates": {
    "1": "100.00",
    "2": "150.00",
    "3": 200
  },
  "difficulty_factors": {
    "1": {"material_multiplier": "1.0", "tax_rate": "0.0"},
    "2": {"material_multiplier": "1.2", "tax_rate": "0.05"},
    "3": {"material_multiplier": 1.5, "tax_rate": 0.1}
  },
  "margin_ranges": {"min": "0.30", "max": "0.60"}
}`

func TestParseSample(t *testing.T) {
	rt, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	rate, err := rt.DailyRate("2")
	if err != nil {
		t.Fatalf("DailyRate(2): %v", err)
	}
	if rate.StringFixed() != "150.00" {
		t.Errorf("DailyRate(2) = %s, want 150.00", rate.StringFixed())
	}

	rule, err := rt.Difficulty("2")
	if err != nil {
		t.Fatalf("Difficulty(2): %v", err)
	}
	if rule.MaterialMultiplier.String() != "1.2" {
		t.Errorf("multiplier = %s, want 1.2", rule.MaterialMultiplier.String())
	}
	if rule.TaxRate.String() != "0.05" {
		t.Errorf("tax rate = %s, want 0.05", rule.TaxRate.String())
	}

	if rt.MinMargin().String() != "0.3" {
		t.Errorf("min margin = %s, want 0.3", rt.MinMargin().String())
	}
}

func TestUnknownLookups(t *testing.T) {
	rt, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if _, err := rt.DailyRate("5"); !errors.IsType(err, errors.TypeUnknownEmployeeLevel) {
		t.Errorf("DailyRate(5) error = %v, want UNKNOWN_EMPLOYEE_LEVEL", err)
	}
	if _, err := rt.Difficulty("9"); !errors.IsType(err, errors.TypeUnknownDifficultyLevel) {
		t.Errorf("Difficulty(9) error = %v, want UNKNOWN_DIFFICULTY_LEVEL", err)
	}
}

func TestValidateRejectsBadTables(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"empty rates", `{"employee_rates": {}, "difficulty_factors": {"1": {"material_multiplier": "1", "tax_rate": "0"}}, "margin_ranges": {"min": "0.3"}}`},
		{"negative rate", `{"employee_rates": {"1": "-10"}, "difficulty_factors": {"1": {"material_multiplier": "1", "tax_rate": "0"}}, "margin_ranges": {"min": "0.3"}}`},
		{"negative multiplier", `{"employee_rates": {"1": "10"}, "difficulty_factors": {"1": {"material_multiplier": "-1", "tax_rate": "0"}}, "margin_ranges": {"min": "0.3"}}`},
		{"negative tax", `{"employee_rates": {"1": "10"}, "difficulty_factors": {"1": {"material_multiplier": "1", "tax_rate": "-0.1"}}, "margin_ranges": {"min": "0.3"}}`},
		{"negative margin", `{"employee_rates": {"1": "10"}, "difficulty_factors": {"1": {"material_multiplier": "1", "tax_rate": "0"}}, "margin_ranges": {"min": "-0.3"}}`},
		{"inverted margin range", `{"employee_rates": {"1": "10"}, "difficulty_factors": {"1": {"material_multiplier": "1", "tax_rate": "0"}}, "margin_ranges": {"min": "0.5", "max": "0.3"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.json))
			if err == nil {
				t.Fatal("Parse should fail")
			}
			if !errors.IsType(err, errors.TypeRuleTableUnavailable) {
				t.Errorf("error type = %v, want RULE_TABLE_UNAVAILABLE", errors.TypeOf(err))
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.IsType(err, errors.TypeRuleTableUnavailable) {
		t.Errorf("error type = %v, want RULE_TABLE_UNAVAILABLE", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.IsType(err, errors.TypeRuleTableUnavailable) {
		t.Errorf("error type = %v, want RULE_TABLE_UNAVAILABLE", err)
	}
}

func TestLoadValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0644); err != nil {
		t.Fatal(err)
	}
	rt, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rt.EmployeeRates) != 3 {
		t.Errorf("employee rates = %d, want 3", len(rt.EmployeeRates))
	}
}

func TestCheckCoverage(t *testing.T) {
	rt, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if errs := rt.CheckCoverage([]string{"1", "2", "3"}); len(errs) != 0 {
		t.Errorf("full coverage reported errors: %v", errs)
	}

	errs := rt.CheckCoverage([]string{"1", "4", "5"})
	if len(errs) != 2 {
		t.Fatalf("coverage errors = %d, want 2", len(errs))
	}
	for _, err := range errs {
		if !errors.IsType(err, errors.TypeMissingRuleData) {
			t.Errorf("error type = %v, want MISSING_RULE_DATA", err)
		}
	}
}
