package db

import (
	"context"

	"github.com/hbitsol/sistemaartn/core/money"
	"github.com/hbitsol/sistemaartn/core/types"
	"github.com/hbitsol/sistemaartn/internal/errors"
)

var seedFranchise = types.Franchise{
	Name:    "Artn Master",
	CNPJ:    "42224833000186",
	Address: "Rua das Esmeraldas, 395, 12 andar, Bairro Jardim, Santo André, São Paulo, 09090-070",
	Phone:   "11989295491",
}

var seedMaterials = []types.Material{
	{Name: "Alltak Premium", Unit: "m²", UnitCost: money.MustParse("25.00")},
	{Name: "Alltak Decor", Unit: "m²", UnitCost: money.MustParse("65.00")},
	{Name: "Alltak Tunning", Unit: "m²", UnitCost: money.MustParse("60.00")},
	{Name: "Imprimax Linha Gold", Unit: "m²", UnitCost: money.MustParse("65.00")},
	{Name: "Imprimax Linha Jateado", Unit: "m²", UnitCost: money.MustParse("55.00")},
	{Name: "SH Decor", Unit: "m²", UnitCost: money.MustParse("98.00")},
	{Name: "SH Decor Piso", Unit: "m²", UnitCost: money.MustParse("170.00")},
	{Name: "PPF SH", Unit: "m²", UnitCost: money.MustParse("180.00")},
}

var seedDifficulties = []types.DifficultyFactor{
	{Level: "1", Description: "Baixa complexidade"},
	{Level: "2", Description: "Média complexidade"},
	{Level: "3", Description: "Alta complexidade"},
}

var seedClients = []types.Client{
	{Name: "Cliente Demo A", Email: "clienteA@example.com"},
	{Name: "Cliente Demo B", Email: "clienteB@example.com"},
}

// Seed loads the default franchise, material catalog, difficulty levels and
// demo clients. It is idempotent: rows that already exist (matched by their
// natural keys) are left untouched.
func (repo *Repository) Seed(ctx context.Context) error {
	franchise, err := repo.GetFranchiseByName(ctx, seedFranchise.Name)
	if errors.IsType(err, errors.TypeNotFound) {
		franchise = seedFranchise
		if err := repo.CreateFranchise(ctx, &franchise); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	for _, m := range seedMaterials {
		_, err := repo.GetMaterialByName(ctx, m.Name)
		if errors.IsType(err, errors.TypeNotFound) {
			m := m
			if err := repo.CreateMaterial(ctx, &m); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	for _, d := range seedDifficulties {
		_, err := repo.GetDifficultyFactorByLevel(ctx, d.Level)
		if errors.IsType(err, errors.TypeNotFound) {
			d := d
			if err := repo.CreateDifficultyFactor(ctx, &d); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	for _, c := range seedClients {
		existing, err := repo.ListClients(ctx, franchise.ID)
		if err != nil {
			return err
		}
		found := false
		for _, e := range existing {
			if e.Name == c.Name {
				found = true
				break
			}
		}
		if found {
			continue
		}
		c := c
		c.FranchiseID = franchise.ID
		if err := repo.CreateClient(ctx, &c); err != nil {
			return err
		}
	}

	return nil
}
