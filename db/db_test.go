package db

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hbitsol/sistemaartn/core/money"
	"github.com/hbitsol/sistemaartn/core/types"
	"github.com/hbitsol/sistemaartn/internal/errors"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	tempFile, err := os.CreateTemp(t.TempDir(), "test_*.db")
	if err != nil {
		t.Fatalf("os.CreateTemp() failed: %v", err)
	}
	tempFile.Close()

	dbConn, err := New(tempFile.Name())
	if err != nil {
		t.Fatalf("db.New() failed: %v", err)
	}

	repo := NewRepository(dbConn)
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func testFranchise(t *testing.T, repo *Repository) types.Franchise {
	t.Helper()
	f := types.Franchise{Name: "Franquia Teste", CNPJ: "00000000000191"}
	if err := repo.CreateFranchise(context.Background(), &f); err != nil {
		t.Fatalf("creating franchise: %v", err)
	}
	return f
}

func TestMaterialCRUD(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	m := types.Material{Name: "Alltak Premium", Unit: "m²", UnitCost: money.MustParse("25.00")}
	if err := repo.CreateMaterial(ctx, &m); err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	if m.ID == "" {
		t.Fatal("material id not assigned")
	}

	got, err := repo.GetMaterial(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMaterial: %v", err)
	}
	if got.Name != "Alltak Premium" || got.UnitCost.StringFixed() != "25.00" {
		t.Errorf("got %+v", got)
	}

	got.UnitCost = money.MustParse("27.50")
	if err := repo.UpdateMaterial(ctx, &got); err != nil {
		t.Fatalf("UpdateMaterial: %v", err)
	}
	updated, err := repo.GetMaterial(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMaterial after update: %v", err)
	}
	if updated.UnitCost.StringFixed() != "27.50" {
		t.Errorf("unit_cost = %s, want 27.50", updated.UnitCost.StringFixed())
	}

	if err := repo.DeleteMaterial(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMaterial: %v", err)
	}
	if _, err := repo.GetMaterial(ctx, m.ID); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("after delete, error = %v, want NOT_FOUND", err)
	}
}

func TestCreateMaterialRejectsNegativeCost(t *testing.T) {
	repo := setupTestDB(t)
	m := types.Material{Name: "Ruim", Unit: "m²", UnitCost: money.MustParse("-1.00")}
	if err := repo.CreateMaterial(context.Background(), &m); !errors.IsType(err, errors.TypeNegativeValue) {
		t.Errorf("error = %v, want NEGATIVE_VALUE", err)
	}
}

func TestClientLifecycleAndDeleteGuard(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	f := testFranchise(t, repo)

	c := types.Client{FranchiseID: f.ID, Name: "Cliente A", Email: "a@example.com"}
	if err := repo.CreateClient(ctx, &c); err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	clients, err := repo.ListClients(ctx, f.ID)
	if err != nil {
		t.Fatalf("ListClients: %v", err)
	}
	if len(clients) != 1 {
		t.Fatalf("clients = %d, want 1", len(clients))
	}

	p := testProject(t, repo, f.ID, c.ID)

	// delete refused while a project references the client
	if err := repo.DeleteClient(ctx, c.ID); !errors.IsType(err, errors.TypeConflict) {
		t.Fatalf("delete with projects error = %v, want CONFLICT", err)
	}

	if err := repo.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if err := repo.DeleteClient(ctx, c.ID); err != nil {
		t.Fatalf("DeleteClient after project removal: %v", err)
	}
}

func testProject(t *testing.T, repo *Repository, franchiseID, clientID string) types.Project {
	t.Helper()
	ctx := context.Background()

	m := types.Material{Name: "Material " + franchiseID, Unit: "m²", UnitCost: money.MustParse("25.00")}
	if err := repo.CreateMaterial(ctx, &m); err != nil {
		t.Fatalf("creating material: %v", err)
	}
	d := types.DifficultyFactor{Level: "2-" + franchiseID, Description: "Média"}
	if err := repo.CreateDifficultyFactor(ctx, &d); err != nil {
		t.Fatalf("creating difficulty: %v", err)
	}

	p := types.Project{
		FranchiseID:       franchiseID,
		ClientID:          clientID,
		Name:              "Projeto Teste",
		MarginApplied:     mustDec(t, "0.30"),
		TotalCost:         money.MustParse("630.00"),
		TotalSellingPrice: money.MustParse("819.00"),
		Items: []types.ProjectItem{
			{
				MaterialID:     m.ID,
				DifficultyID:   d.ID,
				Quantity:       mustDec(t, "10"),
				EmployeeLevel:  "2",
				EstimatedDays:  mustDec(t, "2"),
				NumWorkers:     mustDec(t, "1"),
				MaterialCost:   money.MustParse("300.00"),
				LaborCost:      money.MustParse("300.00"),
				CostBeforeTax:  money.MustParse("600.00"),
				TaxRateApplied: mustDec(t, "0.05"),
				TotalCost:      money.MustParse("630.00"),
				SellingPrice:   money.MustParse("819.00"),
			},
		},
	}
	if err := repo.CreateProject(ctx, &p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	return p
}

func TestProjectRoundTrip(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	f := testFranchise(t, repo)

	c := types.Client{FranchiseID: f.ID, Name: "Cliente B"}
	if err := repo.CreateClient(ctx, &c); err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	p := testProject(t, repo, f.ID, c.ID)

	got, err := repo.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Status != types.StatusDraft {
		t.Errorf("status = %s, want draft", got.Status)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(got.Items))
	}

	// persisted per-item values must reproduce the stored aggregate
	sum := money.Zero()
	for _, item := range got.Items {
		sum = sum.Add(item.TotalCost)
	}
	if !sum.Equal(got.TotalCost) {
		t.Errorf("sum of item costs %s != stored total %s", sum.String(), got.TotalCost.String())
	}
	if got.Items[0].SellingPrice.StringFixed() != "819.00" {
		t.Errorf("item selling_price = %s, want 819.00", got.Items[0].SellingPrice.StringFixed())
	}

	if err := repo.UpdateProjectStatus(ctx, p.ID, types.StatusApproved); err != nil {
		t.Fatalf("UpdateProjectStatus: %v", err)
	}
	got, err = repo.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProject after status change: %v", err)
	}
	if got.Status != types.StatusApproved {
		t.Errorf("status = %s, want approved", got.Status)
	}

	if err := repo.UpdateProjectStatus(ctx, p.ID, "bogus"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("invalid status error = %v, want INPUT_ERROR", err)
	}
}

func TestCatalogSnapshots(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	m := types.Material{Name: "SH Decor", Unit: "m²", UnitCost: money.MustParse("98.00")}
	if err := repo.CreateMaterial(ctx, &m); err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	d := types.DifficultyFactor{Level: "3", Description: "Alta complexidade"}
	if err := repo.CreateDifficultyFactor(ctx, &d); err != nil {
		t.Fatalf("CreateDifficultyFactor: %v", err)
	}

	snap, err := repo.Material(ctx, m.ID)
	if err != nil {
		t.Fatalf("Material snapshot: %v", err)
	}
	if snap.UnitCost.StringFixed() != "98.00" || snap.Unit != "m²" {
		t.Errorf("snapshot = %+v", snap)
	}

	diff, err := repo.Difficulty(ctx, d.ID)
	if err != nil {
		t.Fatalf("Difficulty snapshot: %v", err)
	}
	if diff.Level != "3" {
		t.Errorf("level = %s, want 3", diff.Level)
	}

	if _, err := repo.Material(ctx, "missing"); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("missing material error = %v, want NOT_FOUND", err)
	}
}

func TestDashboardStats(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	f := testFranchise(t, repo)

	c := types.Client{FranchiseID: f.ID, Name: "Cliente C"}
	if err := repo.CreateClient(ctx, &c); err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	p1 := testProject(t, repo, f.ID, c.ID)
	if err := repo.UpdateProjectStatus(ctx, p1.ID, types.StatusApproved); err != nil {
		t.Fatalf("UpdateProjectStatus: %v", err)
	}

	// second project stays in draft and must not count as revenue
	p2 := types.Project{
		FranchiseID:       f.ID,
		ClientID:          c.ID,
		Name:              "Projeto Rascunho",
		MarginApplied:     mustDec(t, "0.30"),
		TotalCost:         money.MustParse("100.00"),
		TotalSellingPrice: money.MustParse("130.00"),
		Items: []types.ProjectItem{
			{
				MaterialID:     p1.Items[0].MaterialID,
				DifficultyID:   p1.Items[0].DifficultyID,
				Quantity:       mustDec(t, "1"),
				EmployeeLevel:  "2",
				EstimatedDays:  mustDec(t, "1"),
				NumWorkers:     mustDec(t, "1"),
				MaterialCost:   money.MustParse("50.00"),
				LaborCost:      money.MustParse("50.00"),
				CostBeforeTax:  money.MustParse("100.00"),
				TaxRateApplied: mustDec(t, "0"),
				TotalCost:      money.MustParse("100.00"),
				SellingPrice:   money.MustParse("130.00"),
			},
		},
	}
	if err := repo.CreateProject(ctx, &p2); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	stats, err := repo.DashboardStats(ctx, f.ID)
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if stats.TotalClients != 1 {
		t.Errorf("total_clients = %d, want 1", stats.TotalClients)
	}
	if stats.TotalProjects != 2 {
		t.Errorf("total_projects = %d, want 2", stats.TotalProjects)
	}
	if stats.ProjectsByStatus[types.StatusApproved] != 1 || stats.ProjectsByStatus[types.StatusDraft] != 1 {
		t.Errorf("projects_by_status = %v", stats.ProjectsByStatus)
	}
	if stats.ProjectsByStatus[types.StatusRejected] != 0 {
		t.Errorf("rejected count = %d, want 0", stats.ProjectsByStatus[types.StatusRejected])
	}
	if stats.ApprovedProjectsCount != 1 {
		t.Errorf("approved_projects_count = %d, want 1", stats.ApprovedProjectsCount)
	}
	if stats.TotalRevenue.StringFixed() != "819.00" {
		t.Errorf("total_revenue = %s, want 819.00", stats.TotalRevenue.StringFixed())
	}

	if _, err := repo.DashboardStats(ctx, "missing"); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("unknown franchise error = %v, want NOT_FOUND", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	if err := repo.Seed(ctx); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := repo.Seed(ctx); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	materials, err := repo.ListMaterials(ctx)
	if err != nil {
		t.Fatalf("ListMaterials: %v", err)
	}
	if len(materials) != 8 {
		t.Errorf("materials = %d, want 8", len(materials))
	}

	levels, err := repo.ListDifficultyLevels(ctx)
	if err != nil {
		t.Fatalf("ListDifficultyLevels: %v", err)
	}
	if len(levels) != 3 {
		t.Errorf("difficulty levels = %d, want 3", len(levels))
	}

	franchises, err := repo.ListFranchises(ctx)
	if err != nil {
		t.Fatalf("ListFranchises: %v", err)
	}
	if len(franchises) != 1 {
		t.Errorf("franchises = %d, want 1", len(franchises))
	}

	clients, err := repo.ListClients(ctx, franchises[0].ID)
	if err != nil {
		t.Fatalf("ListClients: %v", err)
	}
	if len(clients) != 2 {
		t.Errorf("clients = %d, want 2", len(clients))
	}
}
