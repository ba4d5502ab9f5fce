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

// CreateProject inserts a priced project header and all its items in one
// transaction. A failure on any row rolls back the whole write, so a
// partially priced project is never persisted.
func (repo *Repository) CreateProject(ctx context.Context, p *types.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = types.StatusDraft
	}
	if !p.Status.Valid() {
		return errors.Input("invalid project status: " + string(p.Status))
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	tx, err := repo.dbConn.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Internal("beginning transaction", err)
	}
	defer tx.Rollback()

	headerQuery := `INSERT INTO projects
	    (id, franchise_id, client_id, name, status, margin_applied, total_cost, total_selling_price, created_at)
	    VALUES (:id, :franchise_id, :client_id, :name, :status, :margin_applied, :total_cost, :total_selling_price, :created_at)`
	if _, err := tx.NamedExecContext(ctx, headerQuery, p); err != nil {
		return errors.Internal("inserting project", err)
	}

	itemQuery := `INSERT INTO project_items
	    (id, project_id, material_id, difficulty_id, quantity, employee_level, estimated_days, num_workers,
	     material_cost, labor_cost, cost_before_tax, tax_rate_applied, total_cost, selling_price, notes)
	    VALUES (:id, :project_id, :material_id, :difficulty_id, :quantity, :employee_level, :estimated_days, :num_workers,
	     :material_cost, :labor_cost, :cost_before_tax, :tax_rate_applied, :total_cost, :selling_price, :notes)`
	for i := range p.Items {
		item := &p.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.ProjectID = p.ID
		if _, err := tx.NamedExecContext(ctx, itemQuery, item); err != nil {
			return errors.Internal("inserting project item", err).WithContext("item_index", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Internal("committing project", err)
	}
	return nil
}

// GetProject returns a project with its items in insertion order
func (repo *Repository) GetProject(ctx context.Context, id string) (types.Project, error) {
	var p types.Project
	err := repo.dbConn.GetContext(ctx, &p, `SELECT * FROM projects WHERE id = ?`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return types.Project{}, errors.NotFound("project", id)
	}
	if err != nil {
		return types.Project{}, errors.Internal("getting project", err)
	}

	items := []types.ProjectItem{}
	err = repo.dbConn.SelectContext(ctx, &items,
		`SELECT * FROM project_items WHERE project_id = ? ORDER BY rowid`, id)
	if err != nil {
		return types.Project{}, errors.Internal("getting project items", err)
	}
	p.Items = items
	return p, nil
}

// ListProjects returns project headers, optionally filtered by client
func (repo *Repository) ListProjects(ctx context.Context, clientID string) ([]types.Project, error) {
	projects := []types.Project{}
	var err error
	if clientID != "" {
		err = repo.dbConn.SelectContext(ctx, &projects,
			`SELECT * FROM projects WHERE client_id = ? ORDER BY created_at DESC`, clientID)
	} else {
		err = repo.dbConn.SelectContext(ctx, &projects, `SELECT * FROM projects ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, errors.Internal("listing projects", err)
	}
	return projects, nil
}

// UpdateProjectStatus moves a project through its lifecycle. Computed pricing
// fields are immutable; a changed calculation requires a new project.
func (repo *Repository) UpdateProjectStatus(ctx context.Context, id string, status types.ProjectStatus) error {
	if !status.Valid() {
		return errors.Input("invalid project status: " + string(status))
	}
	res, err := repo.dbConn.ExecContext(ctx,
		`UPDATE projects SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return errors.Internal("updating project status", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("project", id)
	}
	return nil
}

// DeleteProject removes a project; items go with it via FK cascade
func (repo *Repository) DeleteProject(ctx context.Context, id string) error {
	res, err := repo.dbConn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return errors.Internal("deleting project", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("project", id)
	}
	return nil
}
