package pricing

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/hbitsol/sistemaartn/core/catalog"
	"github.com/hbitsol/sistemaartn/core/money"
	"github.com/hbitsol/sistemaartn/core/rules"
	"github.com/hbitsol/sistemaartn/internal/errors"
)

// ItemSpec is one project item as submitted by a caller: raw identifiers
// plus unparsed decimal strings. Parsing happens here so parse failures
// carry the field name and item position.
type ItemSpec struct {
	// MaterialID references a catalog material
	MaterialID string `json:"material_id"`

	// Quantity is the material quantity as a decimal string
	Quantity string `json:"quantity"`

	// DifficultyID references a catalog difficulty factor
	DifficultyID string `json:"difficulty_id"`

	// EmployeeLevel keys into the rule table's employee_rates
	EmployeeLevel string `json:"employee_level"`

	// EstimatedDays is the estimated labor duration as a decimal string
	EstimatedDays string `json:"estimated_days"`

	// NumWorkers is the worker count as a decimal string
	NumWorkers string `json:"num_workers"`

	// Notes is free-form text carried through to persistence
	Notes string `json:"notes,omitempty"`
}

// Draft is a project calculation request
type Draft struct {
	// Name is the project name
	Name string `json:"name"`

	// ClientID identifies the client
	ClientID string `json:"client_id"`

	// FranchiseID identifies the franchise
	FranchiseID string `json:"franchise_id"`

	// MarginOverride replaces the rule table's minimum margin when set
	MarginOverride *decimal.Decimal `json:"margin,omitempty"`

	// Items are the project items in submission order
	Items []ItemSpec `json:"items"`
}

// PricedItem pairs an item spec with its resolved input and result
type PricedItem struct {
	// Spec is the original item specification
	Spec ItemSpec `json:"spec"`

	// Input is the resolved, parsed pricing input
	Input ItemInput `json:"input"`

	// Result is the computed breakdown
	Result ItemResult `json:"result"`
}

// ProjectResult is the complete priced project. Totals are sums of the
// already-rounded per-item values, so recomputing them from persisted item
// results reproduces the same aggregate.
type ProjectResult struct {
	// MarginApplied is the margin used for every item
	MarginApplied decimal.Decimal `json:"margin_applied"`

	// Items are the priced items in submission order
	Items []PricedItem `json:"items"`

	// TotalCost is the sum of per-item total costs
	TotalCost money.Money `json:"total_cost"`

	// TotalSellingPrice is the sum of per-item selling prices
	TotalSellingPrice money.Money `json:"total_selling_price"`
}

// Aggregator prices every item of a project draft and rolls up totals.
// It resolves reference data through the catalog and delegates each item
// to PriceItem; it holds no mutable state between calculations.
type Aggregator struct {
	catalog catalog.Catalog
	workers int
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithWorkers enables concurrent item pricing with the given parallelism.
// Item pricing has no cross-item dependency, so results are identical to
// the sequential path; the lowest-index failure is still the one reported.
func WithWorkers(n int) Option {
	return func(a *Aggregator) {
		if n > 1 {
			a.workers = n
		}
	}
}

// NewAggregator creates an aggregator backed by the given catalog
func NewAggregator(c catalog.Catalog, opts ...Option) *Aggregator {
	a := &Aggregator{catalog: c, workers: 1}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// PriceOne resolves and prices a single item spec with the rule table's
// default margin. The single-item calculator endpoint and the project path
// share this code so the formula exists exactly once.
func (a *Aggregator) PriceOne(ctx context.Context, spec ItemSpec, rt *rules.RuleTable) (PricedItem, error) {
	margin, err := ResolveMargin(nil, rt)
	if err != nil {
		return PricedItem{}, err
	}
	return a.priceSpec(ctx, spec, rt, margin)
}

// Price prices every item of the draft in input order and produces the
// project result. The first failing item aborts the whole calculation and
// its error carries the item index, so no partially priced project is ever
// returned.
func (a *Aggregator) Price(ctx context.Context, draft Draft, rt *rules.RuleTable) (*ProjectResult, error) {
	if len(draft.Items) == 0 {
		return nil, errors.Input("project has no items")
	}

	margin, err := ResolveMargin(draft.MarginOverride, rt)
	if err != nil {
		return nil, err
	}

	var items []PricedItem
	if a.workers > 1 && len(draft.Items) > 1 {
		items, err = a.priceConcurrent(ctx, draft.Items, rt, margin)
	} else {
		items, err = a.priceSequential(ctx, draft.Items, rt, margin)
	}
	if err != nil {
		return nil, err
	}

	totalCost := money.Zero()
	totalSelling := money.Zero()
	for _, item := range items {
		totalCost = totalCost.Add(item.Result.TotalCost)
		totalSelling = totalSelling.Add(item.Result.SellingPrice)
	}

	return &ProjectResult{
		MarginApplied:     margin,
		Items:             items,
		TotalCost:         totalCost,
		TotalSellingPrice: totalSelling,
	}, nil
}

func (a *Aggregator) priceSequential(ctx context.Context, specs []ItemSpec, rt *rules.RuleTable, margin decimal.Decimal) ([]PricedItem, error) {
	items := make([]PricedItem, 0, len(specs))
	for i, spec := range specs {
		item, err := a.priceSpec(ctx, spec, rt, margin)
		if err != nil {
			return nil, wrapItemError(i, spec, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// priceConcurrent prices items in parallel. Failures are collected per
// index and the lowest-index one is reported, not the first to finish,
// so error reporting stays deterministic.
func (a *Aggregator) priceConcurrent(ctx context.Context, specs []ItemSpec, rt *rules.RuleTable, margin decimal.Decimal) ([]PricedItem, error) {
	items := make([]PricedItem, len(specs))
	errs := make([]error, len(specs))

	sem := make(chan struct{}, a.workers)
	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		go func(i int, spec ItemSpec) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			items[i], errs[i] = a.priceSpec(ctx, spec, rt, margin)
		}(i, spec)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, wrapItemError(i, specs[i], err)
		}
	}
	return items, nil
}

func (a *Aggregator) priceSpec(ctx context.Context, spec ItemSpec, rt *rules.RuleTable, margin decimal.Decimal) (PricedItem, error) {
	in, err := a.resolve(ctx, spec)
	if err != nil {
		return PricedItem{}, err
	}
	result, err := PriceItem(in, rt, margin)
	if err != nil {
		return PricedItem{}, err
	}
	return PricedItem{
		Spec:   spec,
		Input:  in,
		Result: result,
	}, nil
}

// resolve parses the spec's decimal strings and fetches reference snapshots
func (a *Aggregator) resolve(ctx context.Context, spec ItemSpec) (ItemInput, error) {
	var in ItemInput

	quantity, err := money.ParseRate("quantity", spec.Quantity)
	if err != nil {
		return in, err
	}
	days, err := money.ParseRate("estimated_days", spec.EstimatedDays)
	if err != nil {
		return in, err
	}
	workers, err := money.ParseRate("num_workers", spec.NumWorkers)
	if err != nil {
		return in, err
	}

	material, err := a.catalog.Material(ctx, spec.MaterialID)
	if err != nil {
		return in, err
	}
	difficulty, err := a.catalog.Difficulty(ctx, spec.DifficultyID)
	if err != nil {
		return in, err
	}

	in = ItemInput{
		Material:      material,
		Quantity:      quantity,
		Difficulty:    difficulty,
		EmployeeLevel: spec.EmployeeLevel,
		EstimatedDays: days,
		NumWorkers:    workers,
		Notes:         spec.Notes,
	}
	return in, nil
}

// wrapItemError preserves the underlying error type while recording which
// item failed
func wrapItemError(index int, spec ItemSpec, err error) error {
	return errors.Wrapf(errors.TypeOf(err), err, "pricing project item %d", index).
		WithContext("item_index", index).
		WithContext("material_id", spec.MaterialID)
}
