package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hbitsol/sistemaartn/core/types"
	"github.com/hbitsol/sistemaartn/internal/errors"
)

// ---- clients ----

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.repo.ListClients(r.Context(), r.URL.Query().Get("franchise_id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, clients)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "decoding request body", err))
		return
	}
	if req.Name == "" || req.FranchiseID == "" {
		s.writeError(w, errors.Input("name and franchise_id are required"))
		return
	}
	if _, err := s.repo.GetFranchise(r.Context(), req.FranchiseID); err != nil {
		s.writeError(w, err)
		return
	}

	client := types.Client{
		FranchiseID: req.FranchiseID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
	}
	if err := s.repo.CreateClient(r.Context(), &client); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, client)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	client, err := s.repo.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	client, err := s.repo.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "decoding request body", err))
		return
	}
	if req.Name != "" {
		client.Name = req.Name
	}
	if req.Email != "" {
		client.Email = req.Email
	}
	if req.Phone != "" {
		client.Phone = req.Phone
	}
	if req.Address != "" {
		client.Address = req.Address
	}

	if err := s.repo.UpdateClient(r.Context(), &client); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "client deleted"})
}

// ---- materials ----

func (s *Server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := s.repo.ListMaterials(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, materials)
}

func (s *Server) handleCreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "decoding request body", err))
		return
	}
	if req.Name == "" {
		s.writeError(w, errors.Input("name is required"))
		return
	}
	if req.UnitCost == nil {
		s.writeError(w, errors.Input("unit_cost is required"))
		return
	}

	material := types.Material{
		Name:        req.Name,
		Unit:        req.Unit,
		UnitCost:    *req.UnitCost,
		Description: req.Description,
	}
	if material.Unit == "" {
		material.Unit = "un"
	}
	if err := s.repo.CreateMaterial(r.Context(), &material); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, material)
}

func (s *Server) handleGetMaterial(w http.ResponseWriter, r *http.Request) {
	material, err := s.repo.GetMaterial(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, material)
}

func (s *Server) handleUpdateMaterial(w http.ResponseWriter, r *http.Request) {
	material, err := s.repo.GetMaterial(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req materialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "decoding request body", err))
		return
	}
	if req.Name != "" {
		material.Name = req.Name
	}
	if req.Unit != "" {
		material.Unit = req.Unit
	}
	if req.UnitCost != nil {
		material.UnitCost = *req.UnitCost
	}
	if req.Description != "" {
		material.Description = req.Description
	}

	if err := s.repo.UpdateMaterial(r.Context(), &material); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, material)
}

func (s *Server) handleDeleteMaterial(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteMaterial(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "material deleted"})
}

// ---- difficulty factors ----

func (s *Server) handleListDifficulties(w http.ResponseWriter, r *http.Request) {
	factors, err := s.repo.ListDifficultyFactors(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, factors)
}

// handleCreateDifficulty creates the entity row only. Its multiplier and tax
// rate live in the rule table; if the new level has no rule entry yet the
// response carries a warning so the mismatch is visible immediately.
func (s *Server) handleCreateDifficulty(w http.ResponseWriter, r *http.Request) {
	var req difficultyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "decoding request body", err))
		return
	}

	if req.Level == "" {
		s.writeError(w, errors.Input("level is required"))
		return
	}

	factor := types.DifficultyFactor{
		Level:       req.Level,
		Description: req.Description,
	}
	if err := s.repo.CreateDifficultyFactor(r.Context(), &factor); err != nil {
		s.writeError(w, err)
		return
	}

	response := map[string]interface{}{"difficulty_factor": factor}
	if s.ruleTable != nil {
		if errs := s.ruleTable.CheckCoverage([]string{factor.Level}); len(errs) > 0 {
			response["warning"] = errs[0].Error()
		}
	}
	s.writeJSON(w, http.StatusCreated, response)
}

// handleDashboardStats summarizes one franchise's clients, projects and
// approved revenue for the dashboard.
func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	franchiseID := r.URL.Query().Get("franchise_id")
	if franchiseID == "" {
		s.writeError(w, errors.Input("franchise_id is required"))
		return
	}

	stats, err := s.repo.DashboardStats(r.Context(), franchiseID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGetDifficulty(w http.ResponseWriter, r *http.Request) {
	factor, err := s.repo.GetDifficultyFactor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, factor)
}
