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

// CreateClient inserts a new client, assigning its id and creation time
func (repo *Repository) CreateClient(ctx context.Context, c *types.Client) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO clients (id, franchise_id, name, email, phone, address, created_at)
	          VALUES (:id, :franchise_id, :name, :email, :phone, :address, :created_at)`
	if _, err := repo.dbConn.NamedExecContext(ctx, query, c); err != nil {
		return errors.Internal("inserting client", err)
	}
	return nil
}

// GetClient returns a client by id
func (repo *Repository) GetClient(ctx context.Context, id string) (types.Client, error) {
	var c types.Client
	err := repo.dbConn.GetContext(ctx, &c, `SELECT * FROM clients WHERE id = ?`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return types.Client{}, errors.NotFound("client", id)
	}
	if err != nil {
		return types.Client{}, errors.Internal("getting client", err)
	}
	return c, nil
}

// ListClients returns clients, optionally filtered by franchise
func (repo *Repository) ListClients(ctx context.Context, franchiseID string) ([]types.Client, error) {
	clients := []types.Client{}
	var err error
	if franchiseID != "" {
		err = repo.dbConn.SelectContext(ctx, &clients,
			`SELECT * FROM clients WHERE franchise_id = ? ORDER BY name`, franchiseID)
	} else {
		err = repo.dbConn.SelectContext(ctx, &clients, `SELECT * FROM clients ORDER BY name`)
	}
	if err != nil {
		return nil, errors.Internal("listing clients", err)
	}
	return clients, nil
}

// UpdateClient updates a client's mutable fields
func (repo *Repository) UpdateClient(ctx context.Context, c *types.Client) error {
	query := `UPDATE clients SET name = :name, email = :email, phone = :phone, address = :address
	          WHERE id = :id`
	res, err := repo.dbConn.NamedExecContext(ctx, query, c)
	if err != nil {
		return errors.Internal("updating client", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("client", c.ID)
	}
	return nil
}

// DeleteClient removes a client. Clients with existing projects cannot be
// deleted; the projects keep their audit trail.
func (repo *Repository) DeleteClient(ctx context.Context, id string) error {
	var projects int
	if err := repo.dbConn.GetContext(ctx, &projects,
		`SELECT COUNT(*) FROM projects WHERE client_id = ?`, id); err != nil {
		return errors.Internal("counting client projects", err)
	}
	if projects > 0 {
		return errors.Conflict("cannot delete client with existing projects").
			WithContext("client_id", id).
			WithContext("projects", projects)
	}

	res, err := repo.dbConn.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return errors.Internal("deleting client", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("client", id)
	}
	return nil
}
