package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/hireflow/hireflow/internal/auth"
	"github.com/hireflow/hireflow/internal/process/model"
	"github.com/hireflow/hireflow/internal/process/service"
)

// ProcessRouter exposes process CRUD endpoints.
type ProcessRouter struct {
	ps *service.ProcessService
}

func NewProcessRouter(ps *service.ProcessService) *ProcessRouter {
	return &ProcessRouter{ps: ps}
}

// requestIdentity resolves the owner and tenant for a request from its auth
// context. Unauthenticated requests fall back to the demo identity so local
// setups work without a session store.
func requestIdentity(r *http.Request) (ownerID, tenantID string) {
	if authCtx := auth.GetAuthContext(r.Context()); authCtx != nil {
		return authCtx.MemberID, authCtx.TenantID
	}
	return "member-demo", "tenant-demo"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
	}
}

// HandleCreateProcess handles POST /api/processes requests
func (pr *ProcessRouter) HandleCreateProcess(w http.ResponseWriter, r *http.Request) {
	var createReq model.CreateProcessDTO
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ownerID, tenantID := requestIdentity(r)

	process, err := pr.ps.CreateProcess(r.Context(), &createReq, ownerID, tenantID)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to create process: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, process)
}

// HandleGetProcess handles GET /api/processes/{processID} requests
func (pr *ProcessRouter) HandleGetProcess(w http.ResponseWriter, r *http.Request) {
	processIDStr := r.PathValue("processID")
	if processIDStr == "" {
		http.Error(w, "missing processID in path", http.StatusBadRequest)
		return
	}

	processID, err := uuid.Parse(processIDStr)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid processID: %v", err), http.StatusBadRequest)
		return
	}

	process, err := pr.ps.GetProcessByID(r.Context(), processID)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to get process: %v", err), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, process)
}

// HandleListProcesses handles GET /api/processes requests
// Optional Query Params: offset, limit, isTemplate
func (pr *ProcessRouter) HandleListProcesses(w http.ResponseWriter, r *http.Request) {
	_, tenantID := requestIdentity(r)

	filter := model.ProcessListFilter{TenantID: tenantID}

	if isTemplateStr := r.URL.Query().Get("isTemplate"); isTemplateStr != "" {
		isTemplate, err := strconv.ParseBool(isTemplateStr)
		if err != nil {
			http.Error(w, "invalid 'isTemplate' query parameter, must be a boolean", http.StatusBadRequest)
			return
		}
		filter.IsTemplate = &isTemplate
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			http.Error(w, "invalid 'limit' query parameter, must be an integer", http.StatusBadRequest)
			return
		}
		filter.Limit = &limit
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			http.Error(w, "invalid 'offset' query parameter, must be an integer", http.StatusBadRequest)
			return
		}
		filter.Offset = &offset
	}

	processes, err := pr.ps.ListProcesses(r.Context(), filter)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to list processes: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, processes)
}

// HandleUpdateProcess handles PUT /api/processes/{processID} requests
func (pr *ProcessRouter) HandleUpdateProcess(w http.ResponseWriter, r *http.Request) {
	processIDStr := r.PathValue("processID")
	processID, err := uuid.Parse(processIDStr)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid processID: %v", err), http.StatusBadRequest)
		return
	}

	var updateReq model.UpdateProcessDTO
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	process, err := pr.ps.UpdateProcess(r.Context(), processID, &updateReq)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to update process: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, process)
}

// HandleDeleteProcess handles DELETE /api/processes/{processID} requests
func (pr *ProcessRouter) HandleDeleteProcess(w http.ResponseWriter, r *http.Request) {
	processIDStr := r.PathValue("processID")
	processID, err := uuid.Parse(processIDStr)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid processID: %v", err), http.StatusBadRequest)
		return
	}

	if err := pr.ps.DeleteProcess(r.Context(), processID); err != nil {
		http.Error(w, fmt.Sprintf("failed to delete process: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
