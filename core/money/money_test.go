package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hbitsol/sistemaartn/internal/errors"
)

func TestParseValid(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"25.00", "25"},
		{"0", "0"},
		{"-3.50", "-3.5"},
		{"0.001", "0.001"},
		{"1234567.89", "1234567.89"},
	}
	for _, tc := range cases {
		m, err := Parse("amount", tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.in, err)
		}
		if m.String() != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.in, m.String(), tc.want)
		}
	}
}

func TestParseRejectsNonNumeric(t *testing.T) {
	for _, in := range []string{"", "abc", "12.3.4", "NaN", "Inf", "1e", "--5"} {
		_, err := Parse("quantity", in)
		if err == nil {
			t.Errorf("Parse(%q) should fail", in)
			continue
		}
		if !errors.IsType(err, errors.TypeInvalidAmount) {
			t.Errorf("Parse(%q) error type = %v, want INVALID_AMOUNT", in, errors.TypeOf(err))
		}
	}
}

func TestParseNonNegative(t *testing.T) {
	if _, err := ParseNonNegative("unit_cost", "10.00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := ParseNonNegative("unit_cost", "-0.01")
	if err == nil {
		t.Fatal("negative value should be rejected")
	}
	if !errors.IsType(err, errors.TypeNegativeValue) {
		t.Errorf("error type = %v, want NEGATIVE_VALUE", errors.TypeOf(err))
	}
}

func TestNoIntermediateRounding(t *testing.T) {
	// 0.1 * 0.2 * 3 is exact in decimal, never in binary float
	a := MustParse("0.1")
	b := MustParse("0.2")
	got := a.Mul(b).MulRate(decimal.NewFromInt(3))
	if got.String() != "0.06" {
		t.Errorf("0.1 * 0.2 * 3 = %s, want 0.06", got.String())
	}
}

func TestRoundOnlyAtBoundary(t *testing.T) {
	m := MustParse("10.005")
	if m.String() != "10.005" {
		t.Fatalf("value rounded before boundary: %s", m.String())
	}
	if m.Round().StringFixed() != "10.01" {
		t.Errorf("Round() = %s, want 10.01", m.Round().StringFixed())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	in := MustParse("819")
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"819.00"` {
		t.Errorf("marshal = %s, want \"819.00\"", data)
	}

	var out Money
	if err := json.Unmarshal([]byte(`"630.00"`), &out); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if out.StringFixed() != "630.00" {
		t.Errorf("unmarshal = %s, want 630.00", out.StringFixed())
	}

	// numbers are accepted too (frontend sends both)
	if err := json.Unmarshal([]byte(`25.5`), &out); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if out.String() != "25.5" {
		t.Errorf("unmarshal = %s, want 25.5", out.String())
	}

	if err := json.Unmarshal([]byte(`"not-a-number"`), &out); err == nil {
		t.Error("unmarshal of non-numeric string should fail")
	}
}

func TestParseRate(t *testing.T) {
	r, err := ParseRate("tax_rate", "0.05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.String() != "0.05" {
		t.Errorf("ParseRate = %s, want 0.05", r.String())
	}

	if _, err := ParseRate("tax_rate", "-0.05"); !errors.IsType(err, errors.TypeNegativeValue) {
		t.Errorf("negative rate error = %v, want NEGATIVE_VALUE", err)
	}
	if _, err := ParseRate("margin", "x"); !errors.IsType(err, errors.TypeInvalidAmount) {
		t.Errorf("non-numeric rate error = %v, want INVALID_AMOUNT", err)
	}
}
