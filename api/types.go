package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/hbitsol/sistemaartn/core/catalog"
	"github.com/hbitsol/sistemaartn/core/money"
	"github.com/hbitsol/sistemaartn/core/pricing"
	"github.com/hbitsol/sistemaartn/core/types"
)

// itemSpecRequest is one project item as sent by clients. Numeric fields
// arrive as JSON numbers; they are forwarded to the pricing core as decimal
// strings so no binary-float conversion ever happens.
type itemSpecRequest struct {
	MaterialID    string      `json:"material_id"`
	Quantity      json.Number `json:"quantity"`
	DifficultyID  string      `json:"difficulty_id"`
	EmployeeLevel string      `json:"employee_level"`
	EstimatedDays json.Number `json:"estimated_days"`
	NumWorkers    json.Number `json:"num_workers"`
	Notes         string      `json:"notes,omitempty"`
}

func (r itemSpecRequest) spec() pricing.ItemSpec {
	return pricing.ItemSpec{
		MaterialID:    r.MaterialID,
		Quantity:      r.Quantity.String(),
		DifficultyID:  r.DifficultyID,
		EmployeeLevel: r.EmployeeLevel,
		EstimatedDays: r.EstimatedDays.String(),
		NumWorkers:    r.NumWorkers.String(),
		Notes:         r.Notes,
	}
}

// calculatePriceResponse is the single-item calculator payload
type calculatePriceResponse struct {
	pricing.ItemResult
	Material      catalog.MaterialSnapshot   `json:"material"`
	Difficulty    catalog.DifficultySnapshot `json:"difficulty"`
	EmployeeLevel string                     `json:"employee_level"`
}

// createProjectRequest is a project calculation and persistence request
type createProjectRequest struct {
	Name        string            `json:"name"`
	ClientID    string            `json:"client_id"`
	FranchiseID string            `json:"franchise_id"`
	Margin      *decimal.Decimal  `json:"margin,omitempty"`
	Items       []itemSpecRequest `json:"items"`
}

func (r createProjectRequest) draft() pricing.Draft {
	items := make([]pricing.ItemSpec, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, item.spec())
	}
	return pricing.Draft{
		Name:           r.Name,
		ClientID:       r.ClientID,
		FranchiseID:    r.FranchiseID,
		MarginOverride: r.Margin,
		Items:          items,
	}
}

// clientRequest is the create/update payload for clients
type clientRequest struct {
	FranchiseID string `json:"franchise_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// materialRequest is the create/update payload for materials. UnitCost is
// a pointer so an update can set the cost to zero; an absent key leaves the
// stored value alone.
type materialRequest struct {
	Name        string       `json:"name"`
	Unit        string       `json:"unit"`
	UnitCost    *money.Money `json:"unit_cost"`
	Description string       `json:"description"`
}

// difficultyRequest is the create payload for difficulty factors
type difficultyRequest struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

// statusRequest is the project status transition payload
type statusRequest struct {
	Status types.ProjectStatus `json:"status"`
}

// toProject converts a pricing result into the persistence shape
func toProject(draft pricing.Draft, result *pricing.ProjectResult) *types.Project {
	project := &types.Project{
		FranchiseID:       draft.FranchiseID,
		ClientID:          draft.ClientID,
		Name:              draft.Name,
		Status:            types.StatusDraft,
		MarginApplied:     result.MarginApplied,
		TotalCost:         result.TotalCost,
		TotalSellingPrice: result.TotalSellingPrice,
	}
	for _, item := range result.Items {
		project.Items = append(project.Items, types.ProjectItem{
			MaterialID:     item.Input.Material.ID,
			DifficultyID:   item.Input.Difficulty.ID,
			Quantity:       item.Input.Quantity,
			EmployeeLevel:  item.Input.EmployeeLevel,
			EstimatedDays:  item.Input.EstimatedDays,
			NumWorkers:     item.Input.NumWorkers,
			MaterialCost:   item.Result.MaterialCost,
			LaborCost:      item.Result.LaborCost,
			CostBeforeTax:  item.Result.CostBeforeTax,
			TaxRateApplied: item.Result.TaxRateApplied,
			TotalCost:      item.Result.TotalCost,
			SellingPrice:   item.Result.SellingPrice,
			Notes:          item.Input.Notes,
		})
	}
	return project
}
