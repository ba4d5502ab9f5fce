package db

import (
	"context"

	"github.com/hbitsol/sistemaartn/core/catalog"
)

var _ catalog.Catalog = (*Repository)(nil)

// Material implements catalog.Catalog, serving an immutable snapshot of a
// material's reference data for pricing.
func (repo *Repository) Material(ctx context.Context, id string) (catalog.MaterialSnapshot, error) {
	m, err := repo.GetMaterial(ctx, id)
	if err != nil {
		return catalog.MaterialSnapshot{}, err
	}
	return catalog.MaterialSnapshot{
		ID:       m.ID,
		Name:     m.Name,
		Unit:     m.Unit,
		UnitCost: m.UnitCost,
	}, nil
}

// Difficulty implements catalog.Catalog
func (repo *Repository) Difficulty(ctx context.Context, id string) (catalog.DifficultySnapshot, error) {
	d, err := repo.GetDifficultyFactor(ctx, id)
	if err != nil {
		return catalog.DifficultySnapshot{}, err
	}
	return catalog.DifficultySnapshot{
		ID:          d.ID,
		Level:       d.Level,
		Description: d.Description,
	}, nil
}
