package db

import (
	"context"

	"github.com/hbitsol/sistemaartn/core/money"
	"github.com/hbitsol/sistemaartn/core/types"
	"github.com/hbitsol/sistemaartn/internal/errors"
)

// DashboardStats summarizes one franchise's activity. Revenue counts only
// approved projects and is summed from the stored per-project totals.
type DashboardStats struct {
	TotalClients          int                         `json:"total_clients"`
	TotalProjects         int                         `json:"total_projects"`
	ProjectsByStatus      map[types.ProjectStatus]int `json:"projects_by_status"`
	ApprovedProjectsCount int                         `json:"approved_projects_count"`
	TotalRevenue          money.Money                 `json:"total_revenue"`
}

// DashboardStats computes the summary for a franchise. The franchise must
// exist; per-status counts always carry all four lifecycle states.
func (repo *Repository) DashboardStats(ctx context.Context, franchiseID string) (DashboardStats, error) {
	stats := DashboardStats{
		ProjectsByStatus: map[types.ProjectStatus]int{
			types.StatusDraft:     0,
			types.StatusSubmitted: 0,
			types.StatusApproved:  0,
			types.StatusRejected:  0,
		},
		TotalRevenue: money.Zero(),
	}

	if _, err := repo.GetFranchise(ctx, franchiseID); err != nil {
		return DashboardStats{}, err
	}

	if err := repo.dbConn.GetContext(ctx, &stats.TotalClients,
		`SELECT COUNT(*) FROM clients WHERE franchise_id = ?`, franchiseID); err != nil {
		return DashboardStats{}, errors.Internal("counting clients", err)
	}

	byStatus := []struct {
		Status types.ProjectStatus `db:"status"`
		Count  int                 `db:"count"`
	}{}
	err := repo.dbConn.SelectContext(ctx, &byStatus,
		`SELECT status, COUNT(*) AS count FROM projects WHERE franchise_id = ? GROUP BY status`, franchiseID)
	if err != nil {
		return DashboardStats{}, errors.Internal("counting projects by status", err)
	}
	for _, row := range byStatus {
		stats.ProjectsByStatus[row.Status] = row.Count
		stats.TotalProjects += row.Count
	}
	stats.ApprovedProjectsCount = stats.ProjectsByStatus[types.StatusApproved]

	// money columns are TEXT so the sum happens in decimal, not in SQL
	prices := []money.Money{}
	err = repo.dbConn.SelectContext(ctx, &prices,
		`SELECT total_selling_price FROM projects WHERE franchise_id = ? AND status = ?`,
		franchiseID, types.StatusApproved)
	if err != nil {
		return DashboardStats{}, errors.Internal("summing approved revenue", err)
	}
	for _, p := range prices {
		stats.TotalRevenue = stats.TotalRevenue.Add(p)
	}

	return stats, nil
}
