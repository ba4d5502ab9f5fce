// Package catalog resolves material and difficulty reference data into
// immutable snapshots for pricing. Resolution happens before pricing begins;
// the pricing core never performs storage lookups itself.
package catalog

import (
	"context"

	"github.com/hbitsol/sistemaartn/core/money"
)

// MaterialSnapshot is a material's reference data frozen at calculation time
type MaterialSnapshot struct {
	// ID identifies the material in the catalog
	ID string `json:"id"`

	// Name is the commercial material name
	Name string `json:"name"`

	// Unit is the unit of measure (m², un, L, kg)
	Unit string `json:"unit"`

	// UnitCost is the base cost per unit
	UnitCost money.Money `json:"unit_cost"`
}

// DifficultySnapshot is a difficulty factor's reference data frozen at
// calculation time. Level is the join key into the rule table's
// difficulty_factors map; the multiplier itself lives in the rule table.
type DifficultySnapshot struct {
	// ID identifies the difficulty factor in the catalog
	ID string `json:"id"`

	// Level is the difficulty level label
	Level string `json:"level"`

	// Description is a human-readable label
	Description string `json:"description,omitempty"`
}

// Catalog resolves reference identifiers to snapshots
type Catalog interface {
	// Material returns the material snapshot for an id
	Material(ctx context.Context, id string) (MaterialSnapshot, error)

	// Difficulty returns the difficulty snapshot for an id
	Difficulty(ctx context.Context, id string) (DifficultySnapshot, error)
}
