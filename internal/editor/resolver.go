package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hireflow/hireflow/internal/process/model"
)

// StepOutcome classifies what happened to one step during a save.
type StepOutcome string

const (
	// StepCreated means a new node was created, with its linked record when
	// the step is integrated.
	StepCreated StepOutcome = "created"
	// StepCreatedDegraded means the combined node+record create failed and
	// the step fell back to a plain node create; the step has a RealID but
	// no linked record.
	StepCreatedDegraded StepOutcome = "created_degraded"
	// StepUpdated means an existing node was updated in place.
	StepUpdated StepOutcome = "updated"
	// StepFailed means the step could not be persisted at all.
	StepFailed StepOutcome = "failed"
)

// StepResult is the per-step entry of a SaveResult.
type StepResult struct {
	StepID  uuid.UUID
	Outcome StepOutcome
	Err     error
}

// integrationResolver decides, per step, whether saving creates a node with
// an embedded interview/todo record, updates an existing node, or creates a
// plain node, and executes that action.
type integrationResolver struct {
	api    ProcessAPI
	roster *Roster
}

func newIntegrationResolver(api ProcessAPI, roster *Roster) *integrationResolver {
	return &integrationResolver{api: api, roster: roster}
}

// resolve persists one step. On success the step's RealID (and, for
// integrated creates, InterviewID/TodoID) is written back from the response.
func (r *integrationResolver) resolve(ctx context.Context, processID uuid.UUID, step *Step) StepResult {
	if step.RealID != nil {
		return r.updateExisting(ctx, step)
	}
	if step.IsIntegrated {
		return r.createIntegrated(ctx, processID, step)
	}
	return r.createPlain(ctx, processID, step)
}

func (r *integrationResolver) updateExisting(ctx context.Context, step *Step) StepResult {
	node, err := r.api.UpdateNode(ctx, *step.RealID, &model.UpdateNodeDTO{
		Title:       step.Title,
		Description: step.Description,
		Sequence:    step.Order,
		Config:      marshalStepConfig(step),
	})
	if err != nil {
		return StepResult{StepID: step.ID, Outcome: StepFailed, Err: fmt.Errorf("failed to update node %s: %w", *step.RealID, err)}
	}
	step.InterviewID = node.InterviewID
	step.TodoID = node.TodoID
	return StepResult{StepID: step.ID, Outcome: StepUpdated}
}

func (r *integrationResolver) createIntegrated(ctx context.Context, processID uuid.UUID, step *Step) StepResult {
	createReq := r.buildCreateDTO(step)
	switch step.Type {
	case StepTypeInterview:
		createReq.CreateInterview = r.buildInterviewDTO(step)
	case StepTypeTodo:
		createReq.CreateTodo = r.buildTodoDTO(step)
	}

	node, err := r.api.CreateNode(ctx, processID, createReq)
	if err == nil {
		step.RealID = &node.ID
		step.InterviewID = node.InterviewID
		step.TodoID = node.TodoID
		return StepResult{StepID: step.ID, Outcome: StepCreated}
	}

	// Combined create failed; degrade to a plain node so the step survives
	// the save without its linked record.
	slog.Warn("combined node create failed, falling back to plain node",
		"step_id", step.ID,
		"step_type", step.Type,
		"error", err,
	)
	result := r.createPlain(ctx, processID, step)
	if result.Outcome == StepCreated {
		result.Outcome = StepCreatedDegraded
		result.Err = fmt.Errorf("linked %s record was not created: %w", step.Type, err)
	}
	return result
}

func (r *integrationResolver) createPlain(ctx context.Context, processID uuid.UUID, step *Step) StepResult {
	node, err := r.api.CreateNode(ctx, processID, r.buildCreateDTO(step))
	if err != nil {
		return StepResult{StepID: step.ID, Outcome: StepFailed, Err: fmt.Errorf("failed to create node: %w", err)}
	}
	step.RealID = &node.ID
	return StepResult{StepID: step.ID, Outcome: StepCreated}
}

func (r *integrationResolver) buildCreateDTO(step *Step) *model.CreateNodeDTO {
	return &model.CreateNodeDTO{
		Kind:        model.NodeKind(step.Type),
		Title:       step.Title,
		Description: step.Description,
		Sequence:    step.Order,
		Config:      marshalStepConfig(step),
	}
}

func (r *integrationResolver) buildInterviewDTO(step *Step) *model.CreateInterviewDTO {
	createReq := &model.CreateInterviewDTO{
		Title:           step.Title,
		Description:     step.Description,
		DurationMinutes: step.Config.DurationMinutes,
		Kind:            step.Config.InterviewKind,
		Location:        step.Config.Location,
	}
	if assignee := r.roster.DefaultAssignee(); assignee != nil {
		createReq.AssigneeName = assignee.Name
		createReq.AssigneeEmail = assignee.Email
	}
	return createReq
}

func (r *integrationResolver) buildTodoDTO(step *Step) *model.CreateTodoDTO {
	createReq := &model.CreateTodoDTO{
		Title:          step.Title,
		Description:    step.Description,
		Priority:       step.Config.Priority,
		AssignmentKind: step.Config.AssignmentKind,
	}
	if assignee := r.roster.DefaultAssignee(); assignee != nil {
		createReq.AssigneeName = assignee.Name
		createReq.AssigneeEmail = assignee.Email
	}
	return createReq
}

func marshalStepConfig(step *Step) json.RawMessage {
	raw, err := json.Marshal(step.Config)
	if err != nil {
		// StepConfig contains only marshalable fields; this cannot fail in
		// practice.
		slog.Error("failed to marshal step config", "step_id", step.ID, "error", err)
		return nil
	}
	return raw
}
