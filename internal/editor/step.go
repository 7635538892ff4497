package editor

import (
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/hireflow/hireflow/internal/process/model"
)

// StepType is the kind of a step. Only interview and todo nodes are
// editable here; other node kinds pass through the editor untouched.
type StepType string

const (
	StepTypeInterview StepType = "interview"
	StepTypeTodo      StepType = "todo"
)

// StepConfig is the type-specific configuration payload of a step. The
// interview fields and todo fields are mutually exclusive in practice; the
// step's type decides which half is meaningful.
type StepConfig struct {
	DurationMinutes int                 `json:"durationMinutes,omitempty"`
	InterviewKind   model.InterviewKind `json:"interviewKind,omitempty"`
	Location        string              `json:"location,omitempty"`
	Priority        model.TodoPriority  `json:"priority,omitempty"`
	AssignmentKind  string              `json:"assignmentKind,omitempty"`
}

// DefaultInterviewConfig returns the config applied to a freshly added
// interview step.
func DefaultInterviewConfig() StepConfig {
	return StepConfig{
		DurationMinutes: 60,
		InterviewKind:   model.InterviewKindVideo,
		Location:        "Video Call",
	}
}

// DefaultTodoConfig returns the config applied to a freshly added todo step.
func DefaultTodoConfig() StepConfig {
	return StepConfig{
		Priority:       model.TodoPriorityMedium,
		AssignmentKind: "general",
	}
}

// Step is the editor-local representation of a process node. ID is a local
// identifier stable within the session; RealID is the backend node id once
// the step has been persisted.
type Step struct {
	ID           uuid.UUID
	Type         StepType
	Title        string
	Description  string
	Config       StepConfig
	Order        int // 1-based, contiguous, matches list position
	RealID       *uuid.UUID
	IsIntegrated bool
	InterviewID  *uuid.UUID
	TodoID       *uuid.UUID
}

// StepPatch is a partial update for a step. Nil fields are left unchanged.
// Order and ID are never patched; Type is fixed at creation.
type StepPatch struct {
	Title        *string
	Description  *string
	Config       *StepConfig
	IsIntegrated *bool
}

// StepList holds the ordered step collection. After every mutating
// operation the steps' Order values are a contiguous 1..N sequence matching
// array position.
type StepList struct {
	steps []*Step
}

// NewStepList returns an empty step list.
func NewStepList() *StepList {
	return &StepList{}
}

// NewStepListFromNodes builds a step list from a process's persisted nodes.
// Only interview and todo kinds are mapped; other node kinds are skipped.
// Nodes are ordered by their persisted sequence, and existing interview/todo
// links mark the step as integrated.
func NewStepListFromNodes(nodes []model.Node) *StepList {
	editable := make([]model.Node, 0, len(nodes))
	for _, node := range nodes {
		if node.Kind == model.NodeKindInterview || node.Kind == model.NodeKindTodo {
			editable = append(editable, node)
		}
	}
	sort.SliceStable(editable, func(i, j int) bool {
		return editable[i].Sequence < editable[j].Sequence
	})

	list := NewStepList()
	for _, node := range editable {
		realID := node.ID
		step := &Step{
			ID:          uuid.New(),
			Type:        StepType(node.Kind),
			Title:       node.Title,
			Description: node.Description,
			RealID:      &realID,
			InterviewID: node.InterviewID,
			TodoID:      node.TodoID,
		}
		step.IsIntegrated = node.InterviewID != nil || node.TodoID != nil
		if len(node.Config) > 0 {
			if err := json.Unmarshal(node.Config, &step.Config); err != nil {
				slog.Warn("ignoring unreadable node config", "node_id", node.ID, "error", err)
			}
		}
		list.Append(step)
	}
	return list
}

// Append adds a step to the end of the list and assigns its order.
func (l *StepList) Append(step *Step) {
	l.steps = append(l.steps, step)
	step.Order = len(l.steps)
}

// Remove deletes the step with the given local id and renumbers the rest.
// Returns false if no step matches.
func (l *StepList) Remove(id uuid.UUID) bool {
	idx := l.IndexOf(id)
	if idx < 0 {
		return false
	}
	l.steps = append(l.steps[:idx], l.steps[idx+1:]...)
	l.renumber()
	return true
}

// Move reinserts the step with the given id at targetIndex and renumbers.
// It is a no-op when targetIndex is out of bounds or equals the step's
// current index. Returns whether the list changed.
func (l *StepList) Move(id uuid.UUID, targetIndex int) bool {
	idx := l.IndexOf(id)
	if idx < 0 {
		return false
	}
	if targetIndex < 0 || targetIndex >= len(l.steps) || targetIndex == idx {
		return false
	}

	step := l.steps[idx]
	l.steps = append(l.steps[:idx], l.steps[idx+1:]...)
	l.steps = append(l.steps[:targetIndex], append([]*Step{step}, l.steps[targetIndex:]...)...)
	l.renumber()
	return true
}

// Update shallow-merges the patch into the matching step. Returns false if
// no step matches.
func (l *StepList) Update(id uuid.UUID, patch StepPatch) bool {
	step := l.Get(id)
	if step == nil {
		return false
	}
	if patch.Title != nil {
		step.Title = *patch.Title
	}
	if patch.Description != nil {
		step.Description = *patch.Description
	}
	if patch.Config != nil {
		step.Config = *patch.Config
	}
	if patch.IsIntegrated != nil {
		step.IsIntegrated = *patch.IsIntegrated
	}
	return true
}

// Get returns the step with the given local id, or nil.
func (l *StepList) Get(id uuid.UUID) *Step {
	idx := l.IndexOf(id)
	if idx < 0 {
		return nil
	}
	return l.steps[idx]
}

// IndexOf returns the array position of the step with the given id, or -1.
func (l *StepList) IndexOf(id uuid.UUID) int {
	for i, step := range l.steps {
		if step.ID == id {
			return i
		}
	}
	return -1
}

// Steps returns the steps in order.
func (l *StepList) Steps() []*Step {
	return l.steps
}

// Len returns the number of steps.
func (l *StepList) Len() int {
	return len(l.steps)
}

// RealIDs returns the backend node ids of all persisted steps.
func (l *StepList) RealIDs() map[uuid.UUID]struct{} {
	ids := make(map[uuid.UUID]struct{})
	for _, step := range l.steps {
		if step.RealID != nil {
			ids[*step.RealID] = struct{}{}
		}
	}
	return ids
}

func (l *StepList) renumber() {
	for i, step := range l.steps {
		step.Order = i + 1
	}
}
