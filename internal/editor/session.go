package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/felixgeelhaar/statekit"
	"github.com/google/uuid"

	"github.com/hireflow/hireflow/internal/process/model"
)

// SessionMode is the editor's current interaction mode. The mode is driven
// by a closed state machine so combinations like "saving while a step
// detail panel is open" cannot be represented.
type SessionMode string

const (
	ModeIdle        SessionMode = "idle"
	ModeEditingStep SessionMode = "editing_step"
	ModeSaving      SessionMode = "saving"
	ModeSaveFailed  SessionMode = "save_failed"
)

// Events for the session state machine.
const (
	eventEditStep  = "EDIT_STEP"
	eventCloseStep = "CLOSE_STEP"
	eventSave      = "SAVE"
	eventSaveOK    = "SAVE_OK"
	eventSaveErr   = "SAVE_ERR"
	eventDismiss   = "DISMISS"
)

// ErrSaveInFlight is returned when Save is invoked while a save is already
// running.
var ErrSaveInFlight = fmt.Errorf("a save is already in flight")

// SaveNotifier is told about each successful save. Implementations must not
// block; they are called synchronously from Save.
type SaveNotifier interface {
	ProcessSaved(processID uuid.UUID, result *SaveResult)
}

// sessionContext is the statekit context type. Session state lives on the
// Session itself; the machine only tracks the mode.
type sessionContext struct{}

func buildSessionMachine() (*statekit.Interpreter[sessionContext], error) {
	machine, err := statekit.NewMachine[sessionContext]("editor-session").
		WithInitial(statekit.StateID(ModeIdle)).
		WithContext(sessionContext{}).
		State(statekit.StateID(ModeIdle)).
		On(eventEditStep).Target(statekit.StateID(ModeEditingStep)).
		On(eventSave).Target(statekit.StateID(ModeSaving)).Done().
		State(statekit.StateID(ModeEditingStep)).
		On(eventCloseStep).Target(statekit.StateID(ModeIdle)).
		On(eventSave).Target(statekit.StateID(ModeSaving)).Done().
		State(statekit.StateID(ModeSaving)).
		On(eventSaveOK).Target(statekit.StateID(ModeIdle)).
		On(eventSaveErr).Target(statekit.StateID(ModeSaveFailed)).Done().
		State(statekit.StateID(ModeSaveFailed)).
		On(eventDismiss).Target(statekit.StateID(ModeIdle)).
		On(eventSave).Target(statekit.StateID(ModeSaving)).Done().
		Build()
	if err != nil {
		return nil, err
	}
	return statekit.NewInterpreter(machine), nil
}

// Session is one open editing session over a process. It owns the step
// list, the roster, and the transient drag state exclusively; nothing else
// mutates them while the session is open. Local changes reach the backend
// only through Save.
type Session struct {
	api      ProcessAPI
	interp   *statekit.Interpreter[sessionContext]
	notifier SaveNotifier

	mu                 sync.Mutex
	baseline           *model.Process
	steps              *StepList
	roster             *Roster
	integrateByDefault bool
	name               string
	description        string

	editingStepID *uuid.UUID

	// Transient drag state
	draggingID *uuid.UUID
	hoverIndex int
}

// OpenSession loads a process and opens an editing session seeded from its
// persisted nodes.
func OpenSession(ctx context.Context, api ProcessAPI, processID uuid.UUID) (*Session, error) {
	process, err := api.GetProcess(ctx, processID)
	if err != nil {
		return nil, fmt.Errorf("failed to load process %s: %w", processID, err)
	}
	return newSession(api, process)
}

// NewSession creates a fresh process on the backend and opens an empty
// editing session over it.
func NewSession(ctx context.Context, api ProcessAPI, createReq *model.CreateProcessDTO) (*Session, error) {
	process, err := api.CreateProcess(ctx, createReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create process: %w", err)
	}
	return newSession(api, process)
}

func newSession(api ProcessAPI, process *model.Process) (*Session, error) {
	interp, err := buildSessionMachine()
	if err != nil {
		return nil, fmt.Errorf("failed to build session state machine: %w", err)
	}
	interp.Start()

	return &Session{
		api:                api,
		interp:             interp,
		baseline:           process,
		steps:              NewStepListFromNodes(process.Nodes),
		roster:             NewRoster(),
		integrateByDefault: true,
		name:               process.Name,
		description:        process.Description,
		hoverIndex:         -1,
	}, nil
}

// SetNotifier registers a listener for successful saves.
func (s *Session) SetNotifier(notifier SaveNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = notifier
}

// Mode returns the session's current interaction mode.
func (s *Session) Mode() SessionMode {
	return SessionMode(s.interp.State().Value)
}

// Steps returns the ordered step list.
func (s *Session) Steps() *StepList {
	return s.steps
}

// Roster returns the candidate/viewer roster.
func (s *Session) Roster() *Roster {
	return s.roster
}

// Baseline returns the last-loaded authoritative process state.
func (s *Session) Baseline() *model.Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseline
}

// SetMetadata updates the process name and description locally. The change
// is persisted on the next Save only if it differs from the baseline.
func (s *Session) SetMetadata(name, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	s.description = description
}

// SetIntegrateByDefault sets the session-wide default for whether newly
// added steps create linked records on save.
func (s *Session) SetIntegrateByDefault(integrate bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.integrateByDefault = integrate
}

// AddStep appends a new step of the given type with type-specific default
// config. Steps cannot be added while a save is in flight.
func (s *Session) AddStep(stepType StepType, title string) (*Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Mode() == ModeSaving {
		return nil, ErrSaveInFlight
	}
	if stepType != StepTypeInterview && stepType != StepTypeTodo {
		return nil, fmt.Errorf("unsupported step type %q", stepType)
	}

	step := &Step{
		ID:           uuid.New(),
		Type:         stepType,
		Title:        title,
		IsIntegrated: s.integrateByDefault,
	}
	switch stepType {
	case StepTypeInterview:
		step.Config = DefaultInterviewConfig()
	case StepTypeTodo:
		step.Config = DefaultTodoConfig()
	}

	s.steps.Append(step)
	return step, nil
}

// UpdateStep shallow-merges the patch into the matching step.
func (s *Session) UpdateStep(id uuid.UUID, patch StepPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Mode() == ModeSaving {
		return ErrSaveInFlight
	}
	if !s.steps.Update(id, patch) {
		return fmt.Errorf("step %s not found", id)
	}
	return nil
}

// DeleteStep removes a step. There is no confirmation and no undo. If the
// deleted step was open for detail editing, the detail view is closed.
func (s *Session) DeleteStep(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Mode() == ModeSaving {
		return ErrSaveInFlight
	}
	if !s.steps.Remove(id) {
		return fmt.Errorf("step %s not found", id)
	}
	if s.editingStepID != nil && *s.editingStepID == id {
		s.editingStepID = nil
		s.interp.Send(statekit.Event{Type: eventCloseStep})
	}
	return nil
}

// EditStep opens the detail view for a step.
func (s *Session) EditStep(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.steps.Get(id)
	if step == nil {
		return fmt.Errorf("step %s not found", id)
	}
	s.interp.Send(statekit.Event{Type: eventEditStep})
	if s.Mode() != ModeEditingStep {
		return fmt.Errorf("cannot edit a step while %s", s.Mode())
	}
	s.editingStepID = &id
	return nil
}

// CloseStep closes the open detail view, if any.
func (s *Session) CloseStep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingStepID = nil
	s.interp.Send(statekit.Event{Type: eventCloseStep})
}

// EditingStepID returns the id of the step open for detail editing, or nil.
func (s *Session) EditingStepID() *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingStepID
}

// DragStart records the step being dragged.
func (s *Session) DragStart(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.steps.Get(id) == nil {
		return
	}
	s.draggingID = &id
}

// DragOver records the current hover target. This feeds visual feedback
// only; it never mutates the list.
func (s *Session) DragOver(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hoverIndex = index
}

// HoverIndex returns the current drag hover target, or -1.
func (s *Session) HoverIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hoverIndex
}

// Drop moves the dragged step to the given index when it differs from the
// step's current position. Returns whether the list changed.
func (s *Session) Drop(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draggingID == nil || s.Mode() == ModeSaving {
		return false
	}
	return s.steps.Move(*s.draggingID, index)
}

// DragEnd clears the transient drag state regardless of whether a drop
// happened.
func (s *Session) DragEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draggingID = nil
	s.hoverIndex = -1
}

// Save reconciles the local state against the backend as a single action.
// Re-entrant calls while a save is in flight return ErrSaveInFlight. On
// success the re-fetched process becomes the new baseline. Partially
// applied changes are not rolled back on failure.
func (s *Session) Save(ctx context.Context) (*SaveResult, error) {
	s.mu.Lock()
	if s.Mode() == ModeSaving {
		s.mu.Unlock()
		return nil, ErrSaveInFlight
	}
	s.editingStepID = nil
	s.interp.Send(statekit.Event{Type: eventSave})
	baseline := s.baseline
	name, description := s.name, s.description
	s.mu.Unlock()

	orchestrator := newSaveOrchestrator(s.api, s.roster)
	result, err := orchestrator.save(ctx, baseline, s.steps, s.roster, name, description)

	s.mu.Lock()
	if err != nil {
		s.interp.Send(statekit.Event{Type: eventSaveErr})
		s.mu.Unlock()
		return result, err
	}
	s.baseline = result.Process
	s.interp.Send(statekit.Event{Type: eventSaveOK})
	notifier := s.notifier
	s.mu.Unlock()

	if notifier != nil {
		notifier.ProcessSaved(result.Process.ID, result)
	}
	return result, nil
}

// DismissSaveError acknowledges a failed save and returns to idle.
func (s *Session) DismissSaveError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interp.Send(statekit.Event{Type: eventDismiss})
}
