package catalog

import (
	"context"

	"github.com/hbitsol/sistemaartn/internal/errors"
)

// Memory is an in-memory Catalog for tests and CLI use
type Memory struct {
	materials    map[string]MaterialSnapshot
	difficulties map[string]DifficultySnapshot
}

var _ Catalog = (*Memory)(nil)

// NewMemory creates an empty in-memory catalog
func NewMemory() *Memory {
	return &Memory{
		materials:    make(map[string]MaterialSnapshot),
		difficulties: make(map[string]DifficultySnapshot),
	}
}

// AddMaterial registers a material snapshot
func (m *Memory) AddMaterial(s MaterialSnapshot) {
	m.materials[s.ID] = s
}

// AddDifficulty registers a difficulty snapshot
func (m *Memory) AddDifficulty(s DifficultySnapshot) {
	m.difficulties[s.ID] = s
}

// Material implements Catalog
func (m *Memory) Material(_ context.Context, id string) (MaterialSnapshot, error) {
	s, ok := m.materials[id]
	if !ok {
		return MaterialSnapshot{}, errors.NotFound("material", id)
	}
	return s, nil
}

// Difficulty implements Catalog
func (m *Memory) Difficulty(_ context.Context, id string) (DifficultySnapshot, error) {
	s, ok := m.difficulties[id]
	if !ok {
		return DifficultySnapshot{}, errors.NotFound("difficulty factor", id)
	}
	return s, nil
}
