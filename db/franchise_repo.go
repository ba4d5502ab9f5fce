package db

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/hbitsol/sistemaartn/core/types"
	"github.com/hbitsol/sistemaartn/internal/errors"
)

// CreateFranchise inserts a new franchise, assigning its id
func (repo *Repository) CreateFranchise(ctx context.Context, f *types.Franchise) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	query := `INSERT INTO franchises (id, name, cnpj, address, phone)
	          VALUES (:id, :name, :cnpj, :address, :phone)`
	if _, err := repo.dbConn.NamedExecContext(ctx, query, f); err != nil {
		return errors.Internal("inserting franchise", err)
	}
	return nil
}

// GetFranchise returns a franchise by id
func (repo *Repository) GetFranchise(ctx context.Context, id string) (types.Franchise, error) {
	var f types.Franchise
	err := repo.dbConn.GetContext(ctx, &f, `SELECT * FROM franchises WHERE id = ?`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return types.Franchise{}, errors.NotFound("franchise", id)
	}
	if err != nil {
		return types.Franchise{}, errors.Internal("getting franchise", err)
	}
	return f, nil
}

// GetFranchiseByName returns a franchise by its unique name
func (repo *Repository) GetFranchiseByName(ctx context.Context, name string) (types.Franchise, error) {
	var f types.Franchise
	err := repo.dbConn.GetContext(ctx, &f, `SELECT * FROM franchises WHERE name = ?`, name)
	if stderrors.Is(err, sql.ErrNoRows) {
		return types.Franchise{}, errors.NotFound("franchise", name)
	}
	if err != nil {
		return types.Franchise{}, errors.Internal("getting franchise by name", err)
	}
	return f, nil
}

// ListFranchises returns all franchises ordered by name
func (repo *Repository) ListFranchises(ctx context.Context) ([]types.Franchise, error) {
	franchises := []types.Franchise{}
	err := repo.dbConn.SelectContext(ctx, &franchises, `SELECT * FROM franchises ORDER BY name`)
	if err != nil {
		return nil, errors.Internal("listing franchises", err)
	}
	return franchises, nil
}
