package db

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/hbitsol/sistemaartn/core/types"
	"github.com/hbitsol/sistemaartn/internal/errors"
)

// CreateMaterial inserts a new material, assigning its id
func (repo *Repository) CreateMaterial(ctx context.Context, m *types.Material) error {
	if m.UnitCost.IsNegative() {
		return errors.NegativeValue("unit_cost", m.UnitCost.String())
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.UpdatedAt = time.Now().UTC()
	query := `INSERT INTO materials (id, name, unit, unit_cost, description, updated_at)
	          VALUES (:id, :name, :unit, :unit_cost, :description, :updated_at)`
	if _, err := repo.dbConn.NamedExecContext(ctx, query, m); err != nil {
		return errors.Internal("inserting material", err)
	}
	return nil
}

// GetMaterial returns a material by id
func (repo *Repository) GetMaterial(ctx context.Context, id string) (types.Material, error) {
	var m types.Material
	err := repo.dbConn.GetContext(ctx, &m, `SELECT * FROM materials WHERE id = ?`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return types.Material{}, errors.NotFound("material", id)
	}
	if err != nil {
		return types.Material{}, errors.Internal("getting material", err)
	}
	return m, nil
}

// GetMaterialByName returns a material by its unique name
func (repo *Repository) GetMaterialByName(ctx context.Context, name string) (types.Material, error) {
	var m types.Material
	err := repo.dbConn.GetContext(ctx, &m, `SELECT * FROM materials WHERE name = ?`, name)
	if stderrors.Is(err, sql.ErrNoRows) {
		return types.Material{}, errors.NotFound("material", name)
	}
	if err != nil {
		return types.Material{}, errors.Internal("getting material by name", err)
	}
	return m, nil
}

// ListMaterials returns all materials ordered by name
func (repo *Repository) ListMaterials(ctx context.Context) ([]types.Material, error) {
	materials := []types.Material{}
	err := repo.dbConn.SelectContext(ctx, &materials, `SELECT * FROM materials ORDER BY name`)
	if err != nil {
		return nil, errors.Internal("listing materials", err)
	}
	return materials, nil
}

// UpdateMaterial updates a material's mutable fields
func (repo *Repository) UpdateMaterial(ctx context.Context, m *types.Material) error {
	if m.UnitCost.IsNegative() {
		return errors.NegativeValue("unit_cost", m.UnitCost.String())
	}
	m.UpdatedAt = time.Now().UTC()
	query := `UPDATE materials SET name = :name, unit = :unit, unit_cost = :unit_cost,
	          description = :description, updated_at = :updated_at WHERE id = :id`
	res, err := repo.dbConn.NamedExecContext(ctx, query, m)
	if err != nil {
		return errors.Internal("updating material", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("material", m.ID)
	}
	return nil
}

// DeleteMaterial removes a material that no project item references
func (repo *Repository) DeleteMaterial(ctx context.Context, id string) error {
	var refs int
	if err := repo.dbConn.GetContext(ctx, &refs,
		`SELECT COUNT(*) FROM project_items WHERE material_id = ?`, id); err != nil {
		return errors.Internal("counting material references", err)
	}
	if refs > 0 {
		return errors.Conflict("cannot delete material referenced by project items").
			WithContext("material_id", id).
			WithContext("references", refs)
	}

	res, err := repo.dbConn.ExecContext(ctx, `DELETE FROM materials WHERE id = ?`, id)
	if err != nil {
		return errors.Internal("deleting material", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("material", id)
	}
	return nil
}
