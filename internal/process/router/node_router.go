package router

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/hireflow/hireflow/internal/process/model"
	"github.com/hireflow/hireflow/internal/process/service"
)

// NodeRouter exposes node endpoints plus lookups for linked records.
type NodeRouter struct {
	ns *service.NodeService
	is *service.InterviewService
	ts *service.TodoService
}

func NewNodeRouter(ns *service.NodeService, is *service.InterviewService, ts *service.TodoService) *NodeRouter {
	return &NodeRouter{ns: ns, is: is, ts: ts}
}

// HandleCreateNode handles POST /api/processes/{processID}/nodes requests
func (nr *NodeRouter) HandleCreateNode(w http.ResponseWriter, r *http.Request) {
	processIDStr := r.PathValue("processID")
	processID, err := uuid.Parse(processIDStr)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid processID: %v", err), http.StatusBadRequest)
		return
	}

	var createReq model.CreateNodeDTO
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	_, tenantID := requestIdentity(r)

	node, err := nr.ns.CreateNode(r.Context(), processID, &createReq, tenantID)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to create node: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, node)
}

// HandleUpdateNode handles PUT /api/nodes/{nodeID} requests
func (nr *NodeRouter) HandleUpdateNode(w http.ResponseWriter, r *http.Request) {
	nodeIDStr := r.PathValue("nodeID")
	nodeID, err := uuid.Parse(nodeIDStr)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid nodeID: %v", err), http.StatusBadRequest)
		return
	}

	var updateReq model.UpdateNodeDTO
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	node, err := nr.ns.UpdateNode(r.Context(), nodeID, &updateReq)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to update node: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, node)
}

// HandleDeleteNode handles DELETE /api/nodes/{nodeID} requests
func (nr *NodeRouter) HandleDeleteNode(w http.ResponseWriter, r *http.Request) {
	nodeIDStr := r.PathValue("nodeID")
	nodeID, err := uuid.Parse(nodeIDStr)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid nodeID: %v", err), http.StatusBadRequest)
		return
	}

	if err := nr.ns.DeleteNode(r.Context(), nodeID); err != nil {
		http.Error(w, fmt.Sprintf("failed to delete node: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGetInterview handles GET /api/interviews/{interviewID} requests
func (nr *NodeRouter) HandleGetInterview(w http.ResponseWriter, r *http.Request) {
	interviewIDStr := r.PathValue("interviewID")
	interviewID, err := uuid.Parse(interviewIDStr)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid interviewID: %v", err), http.StatusBadRequest)
		return
	}

	interview, err := nr.is.GetInterviewByID(r.Context(), interviewID)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to get interview: %v", err), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, interview)
}

// HandleGetTodo handles GET /api/todos/{todoID} requests
func (nr *NodeRouter) HandleGetTodo(w http.ResponseWriter, r *http.Request) {
	todoIDStr := r.PathValue("todoID")
	todoID, err := uuid.Parse(todoIDStr)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid todoID: %v", err), http.StatusBadRequest)
		return
	}

	todo, err := nr.ts.GetTodoByID(r.Context(), todoID)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to get todo: %v", err), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}
