package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hbitsol/sistemaartn/core/types"
	"github.com/hbitsol/sistemaartn/internal/errors"
)

// handleGetRules echoes the loaded rule table so frontends can populate
// level selectors from the same source the pricer uses.
func (s *Server) handleGetRules(w http.ResponseWriter, r *http.Request) {
	rt, err := s.rulesOrUnavailable()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rt)
}

// handleCalculatePrice prices a single item without persisting anything.
// It runs through the same pricer as the project path.
func (s *Server) handleCalculatePrice(w http.ResponseWriter, r *http.Request) {
	var req itemSpecRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "decoding request body", err))
		return
	}

	rt, err := s.rulesOrUnavailable()
	if err != nil {
		s.writeError(w, err)
		return
	}

	item, err := s.aggregator.PriceOne(r.Context(), req.spec(), rt)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, calculatePriceResponse{
		ItemResult:    item.Result,
		Material:      item.Input.Material,
		Difficulty:    item.Input.Difficulty,
		EmployeeLevel: item.Input.EmployeeLevel,
	})
}

// handleCreateProject prices a project draft and persists it atomically.
// Any item failure aborts before anything is written.
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "decoding request body", err))
		return
	}
	if req.Name == "" || req.ClientID == "" || req.FranchiseID == "" {
		s.writeError(w, errors.Input("name, client_id and franchise_id are required"))
		return
	}

	ctx := r.Context()

	// referenced entities must exist before any pricing happens
	if _, err := s.repo.GetClient(ctx, req.ClientID); err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := s.repo.GetFranchise(ctx, req.FranchiseID); err != nil {
		s.writeError(w, err)
		return
	}

	rt, err := s.rulesOrUnavailable()
	if err != nil {
		s.writeError(w, err)
		return
	}

	draft := req.draft()
	result, err := s.aggregator.Price(ctx, draft, rt)
	if err != nil {
		s.writeError(w, err)
		return
	}

	project := toProject(draft, result)
	if err := s.repo.CreateProject(ctx, project); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, project)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.repo.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.repo.ListProjects(r.Context(), r.URL.Query().Get("client_id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleUpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "decoding request body", err))
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.repo.UpdateProjectStatus(r.Context(), id, req.Status); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]types.ProjectStatus{"status": req.Status})
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "project deleted"})
}
