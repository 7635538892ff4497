package editor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hireflow/hireflow/internal/process/model"
)

// SaveResult aggregates the typed per-step outcomes of a save, so callers
// can distinguish a fully clean save from one with degradations.
type SaveResult struct {
	StepResults    []StepResult
	DeletedNodeIDs []uuid.UUID
	// Process is the authoritative post-save state re-fetched from the
	// backend; it becomes the session's new baseline.
	Process           *model.Process
	InterviewsCreated int
	TodosCreated      int
	CandidateCount    int
	ViewerCount       int
}

// Degraded reports whether any step saved without its linked record or any
// stale node failed to delete.
func (sr *SaveResult) Degraded() bool {
	for _, result := range sr.StepResults {
		if result.Outcome == StepCreatedDegraded {
			return true
		}
	}
	return false
}

// Summary returns a human-readable account of what the save produced.
func (sr *SaveResult) Summary() string {
	summary := fmt.Sprintf("Saved %d steps (%d interviews, %d todos created)",
		len(sr.StepResults), sr.InterviewsCreated, sr.TodosCreated)
	if len(sr.DeletedNodeIDs) > 0 {
		summary += fmt.Sprintf(", removed %d steps", len(sr.DeletedNodeIDs))
	}
	summary += fmt.Sprintf("; %d candidates, %d viewers", sr.CandidateCount, sr.ViewerCount)
	if sr.Degraded() {
		summary += "; some steps saved without their linked records"
	}
	return summary
}

// saveOrchestrator reconciles the local step list against the backend's
// last-known node list as a single save action.
type saveOrchestrator struct {
	api      ProcessAPI
	resolver *integrationResolver
}

func newSaveOrchestrator(api ProcessAPI, roster *Roster) *saveOrchestrator {
	return &saveOrchestrator{
		api:      api,
		resolver: newIntegrationResolver(api, roster),
	}
}

// save runs the reconciliation:
//  1. delete backend nodes no longer present locally (failures are logged
//     and skipped, never abort the save),
//  2. create/update each step in order via the integration resolver,
//  3. update process metadata when it changed locally,
//  4. re-fetch the process as the authoritative new baseline.
//
// A step create/update failure or a failure in steps 3-4 aborts with an
// error; changes already applied are not rolled back.
func (o *saveOrchestrator) save(
	ctx context.Context,
	baseline *model.Process,
	steps *StepList,
	roster *Roster,
	name, description string,
) (*SaveResult, error) {
	result := &SaveResult{
		CandidateCount: len(roster.Candidates()),
		ViewerCount:    len(roster.Viewers()),
	}

	// 1. Deletions. Only editor-owned node kinds are candidates; approval
	// and offer nodes are invisible to this editor and must survive.
	kept := steps.RealIDs()
	for _, node := range baseline.Nodes {
		if node.Kind != model.NodeKindInterview && node.Kind != model.NodeKindTodo {
			continue
		}
		if _, ok := kept[node.ID]; ok {
			continue
		}
		if err := o.api.DeleteNode(ctx, node.ID); err != nil {
			slog.Warn("failed to delete stale node, skipping",
				"node_id", node.ID,
				"error", err,
			)
			continue
		}
		result.DeletedNodeIDs = append(result.DeletedNodeIDs, node.ID)
	}

	// 2. Per-step create/update in current order.
	for _, step := range steps.Steps() {
		hadRealID := step.RealID != nil
		stepResult := o.resolver.resolve(ctx, baseline.ID, step)
		result.StepResults = append(result.StepResults, stepResult)

		if stepResult.Outcome == StepFailed {
			return result, fmt.Errorf("failed to save step %d (%s): %w", step.Order, step.Title, stepResult.Err)
		}
		if !hadRealID && stepResult.Outcome == StepCreated && step.IsIntegrated {
			switch step.Type {
			case StepTypeInterview:
				result.InterviewsCreated++
			case StepTypeTodo:
				result.TodosCreated++
			}
		}
	}

	// 3. Process metadata, only when changed from the loaded baseline.
	if name != baseline.Name || description != baseline.Description {
		updateReq := &model.UpdateProcessDTO{
			Name:        &name,
			Description: &description,
		}
		if _, err := o.api.UpdateProcess(ctx, baseline.ID, updateReq); err != nil {
			return result, fmt.Errorf("failed to update process metadata: %w", err)
		}
	}

	// 4. Authoritative re-fetch; locally accumulated ids are not trusted as
	// the new baseline.
	process, err := o.api.GetProcess(ctx, baseline.ID)
	if err != nil {
		return result, fmt.Errorf("failed to re-fetch process after save: %w", err)
	}
	result.Process = process

	return result, nil
}
