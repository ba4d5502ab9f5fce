// Package types defines the domain entities shared by the storage and API
// layers. The pricing core works on catalog snapshots and never depends on
// these persistence shapes.
package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hbitsol/sistemaartn/core/money"
)

// Franchise is a franchise unit operating the system
type Franchise struct {
	ID      string `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	CNPJ    string `json:"cnpj" db:"cnpj"`
	Address string `json:"address,omitempty" db:"address"`
	Phone   string `json:"phone,omitempty" db:"phone"`
}

// Client is a customer of a franchise
type Client struct {
	ID          string    `json:"id" db:"id"`
	FranchiseID string    `json:"franchise_id" db:"franchise_id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email,omitempty" db:"email"`
	Phone       string    `json:"phone,omitempty" db:"phone"`
	Address     string    `json:"address,omitempty" db:"address"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Material is a catalog material with its base unit cost
type Material struct {
	ID          string      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Unit        string      `json:"unit" db:"unit"`
	UnitCost    money.Money `json:"unit_cost" db:"unit_cost"`
	Description string      `json:"description,omitempty" db:"description"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// DifficultyFactor is a catalog difficulty entity. Level is the join key
// into the rule table's difficulty_factors map; the multiplier and tax rate
// live in the rule table, not here.
type DifficultyFactor struct {
	ID          string `json:"id" db:"id"`
	Level       string `json:"level" db:"level"`
	Description string `json:"description,omitempty" db:"description"`
}

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	StatusDraft     ProjectStatus = "draft"
	StatusSubmitted ProjectStatus = "submitted"
	StatusApproved  ProjectStatus = "approved"
	StatusRejected  ProjectStatus = "rejected"
)

// Valid reports whether the status is one of the known states
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Project is a priced project header. Totals are sums of the item rows and
// are stored alongside them; both are immutable once the calculation is
// persisted.
type Project struct {
	ID                string          `json:"id" db:"id"`
	FranchiseID       string          `json:"franchise_id" db:"franchise_id"`
	ClientID          string          `json:"client_id" db:"client_id"`
	Name              string          `json:"name" db:"name"`
	Status            ProjectStatus   `json:"status" db:"status"`
	MarginApplied     decimal.Decimal `json:"margin_applied" db:"margin_applied"`
	TotalCost         money.Money     `json:"total_cost" db:"total_cost"`
	TotalSellingPrice money.Money     `json:"total_selling_price" db:"total_selling_price"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`

	Items []ProjectItem `json:"items,omitempty" db:"-"`
}

// ProjectItem is one priced line of a project, carrying the full breakdown
// computed at calculation time so aggregates stay reconcilable per item.
type ProjectItem struct {
	ID            string          `json:"id" db:"id"`
	ProjectID     string          `json:"project_id" db:"project_id"`
	MaterialID    string          `json:"material_id" db:"material_id"`
	DifficultyID  string          `json:"difficulty_id" db:"difficulty_id"`
	Quantity      decimal.Decimal `json:"quantity" db:"quantity"`
	EmployeeLevel string          `json:"employee_level" db:"employee_level"`
	EstimatedDays decimal.Decimal `json:"estimated_days" db:"estimated_days"`
	NumWorkers    decimal.Decimal `json:"num_workers" db:"num_workers"`

	MaterialCost   money.Money     `json:"material_cost" db:"material_cost"`
	LaborCost      money.Money     `json:"labor_cost" db:"labor_cost"`
	CostBeforeTax  money.Money     `json:"cost_before_tax" db:"cost_before_tax"`
	TaxRateApplied decimal.Decimal `json:"tax_rate_applied" db:"tax_rate_applied"`
	TotalCost      money.Money     `json:"total_cost" db:"total_cost"`
	SellingPrice   money.Money     `json:"selling_price" db:"selling_price"`

	Notes string `json:"notes,omitempty" db:"notes"`
}
