package rules

import (
	"encoding/json"
	"os"

	"github.com/hbitsol/sistemaartn/internal/errors"
)

// Load reads and validates a rule table from a JSON file.
// Any load, parse, or validation failure is reported as RULE_TABLE_UNAVAILABLE
// so callers can distinguish configuration trouble from calculation errors.
func Load(path string) (*RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.RuleTableUnavailable(err).WithContext("path", path)
	}
	return Parse(data)
}

// Parse decodes and validates a rule table from JSON bytes
func Parse(data []byte) (*RuleTable, error) {
	var rt RuleTable
	if err := json.Unmarshal(data, &rt); err != nil {
		return nil, errors.RuleTableUnavailable(err)
	}
	if errs := rt.Validate(); len(errs) > 0 {
		return nil, errors.RuleTableUnavailable(errs[0]).
			WithContext("validation_errors", len(errs))
	}
	return &rt, nil
}
