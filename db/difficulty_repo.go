package db

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/hbitsol/sistemaartn/core/types"
	"github.com/hbitsol/sistemaartn/internal/errors"
)

// CreateDifficultyFactor inserts a new difficulty factor, assigning its id
func (repo *Repository) CreateDifficultyFactor(ctx context.Context, d *types.DifficultyFactor) error {
	if d.Level == "" {
		return errors.Input("difficulty level is required")
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	query := `INSERT INTO difficulty_factors (id, level, description)
	          VALUES (:id, :level, :description)`
	if _, err := repo.dbConn.NamedExecContext(ctx, query, d); err != nil {
		return errors.Internal("inserting difficulty factor", err)
	}
	return nil
}

// GetDifficultyFactor returns a difficulty factor by id
func (repo *Repository) GetDifficultyFactor(ctx context.Context, id string) (types.DifficultyFactor, error) {
	var d types.DifficultyFactor
	err := repo.dbConn.GetContext(ctx, &d, `SELECT * FROM difficulty_factors WHERE id = ?`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return types.DifficultyFactor{}, errors.NotFound("difficulty factor", id)
	}
	if err != nil {
		return types.DifficultyFactor{}, errors.Internal("getting difficulty factor", err)
	}
	return d, nil
}

// GetDifficultyFactorByLevel returns a difficulty factor by its unique level label
func (repo *Repository) GetDifficultyFactorByLevel(ctx context.Context, level string) (types.DifficultyFactor, error) {
	var d types.DifficultyFactor
	err := repo.dbConn.GetContext(ctx, &d, `SELECT * FROM difficulty_factors WHERE level = ?`, level)
	if stderrors.Is(err, sql.ErrNoRows) {
		return types.DifficultyFactor{}, errors.NotFound("difficulty factor", level)
	}
	if err != nil {
		return types.DifficultyFactor{}, errors.Internal("getting difficulty factor by level", err)
	}
	return d, nil
}

// ListDifficultyFactors returns all difficulty factors ordered by level
func (repo *Repository) ListDifficultyFactors(ctx context.Context) ([]types.DifficultyFactor, error) {
	factors := []types.DifficultyFactor{}
	err := repo.dbConn.SelectContext(ctx, &factors, `SELECT * FROM difficulty_factors ORDER BY level`)
	if err != nil {
		return nil, errors.Internal("listing difficulty factors", err)
	}
	return factors, nil
}

// ListDifficultyLevels returns all level labels, for rule coverage checks
func (repo *Repository) ListDifficultyLevels(ctx context.Context) ([]string, error) {
	levels := []string{}
	err := repo.dbConn.SelectContext(ctx, &levels, `SELECT level FROM difficulty_factors ORDER BY level`)
	if err != nil {
		return nil, errors.Internal("listing difficulty levels", err)
	}
	return levels, nil
}
