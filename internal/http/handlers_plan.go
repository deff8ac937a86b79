package http

import (
	"log/slog"
	"net/http"
)

// handlePlan dispatches the /plan resource: read, create, delete.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGetPlan(w, r)
	case http.MethodPost:
		s.handleCreatePlan(w, r)
	case http.MethodDelete:
		s.handleDeletePlan(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	if resp, found := s.planCache.Get(s.planCacheKey()); found {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	s.plans.Refresh(r.Context())

	resp := planResponse{
		Loading: s.plans.Loading(),
		Plan:    s.plans.CurrentPlan(),
		Today:   s.plans.TodayRecord(),
	}
	s.planCache.Set(s.planCacheKey(), resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	amount, err := parseAmountBody(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	plan, err := s.plans.CreatePlan(r.Context(), amount)
	if err != nil {
		slog.ErrorContext(r.Context(), "Plan creation failed", "amount", amount, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to create plan"})
		return
	}

	s.planCache.Delete(s.planCacheKey())
	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	s.plans.DeletePlan(r.Context())
	s.planCache.Delete(s.planCacheKey())
	w.WriteHeader(http.StatusNoContent)
}

// handleRecordExpense charges an amount against today's record.
func (s *Server) handleRecordExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	amount, err := parseAmountBody(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	// The amount is already validated, so a refusal here means there is no
	// plan to charge, or today falls outside the plan's week.
	if !s.plans.RecordExpense(r.Context(), amount) {
		writeJSON(w, http.StatusConflict, okResponse{OK: false})
		return
	}

	s.planCache.Delete(s.planCacheKey())
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}
