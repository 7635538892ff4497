package editor

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hireflow/hireflow/internal/process/model"
)

func newIdleSession(t *testing.T, api ProcessAPI, nodes ...model.Node) *Session {
	t.Helper()
	session, err := newSession(api, testProcess(nodes...))
	assert.NoError(t, err)
	return session
}

func TestOpenSession_SeedsFromBackend(t *testing.T) {
	api := new(MockProcessAPI)
	processID := uuid.New()
	nodeID := uuid.New()
	process := &model.Process{
		BaseModel: model.BaseModel{ID: processID},
		Name:      "Backend Hiring",
		Nodes: []model.Node{
			{BaseModel: model.BaseModel{ID: nodeID}, Kind: model.NodeKindInterview, Title: "Screening call", Sequence: 1},
		},
	}
	api.On("GetProcess", mock.Anything, processID).Return(process, nil)

	session, err := OpenSession(context.Background(), api, processID)
	assert.NoError(t, err)
	assert.Equal(t, ModeIdle, session.Mode())
	assert.Equal(t, 1, session.Steps().Len())
	assert.Equal(t, nodeID, *session.Steps().Steps()[0].RealID)
	api.AssertExpectations(t)
}

func TestNewSession_CreatesProcessFirst(t *testing.T) {
	api := new(MockProcessAPI)
	createReq := &model.CreateProcessDTO{Name: "Design Hiring"}
	created := testProcess()
	created.Name = "Design Hiring"
	api.On("CreateProcess", mock.Anything, createReq).Return(created, nil)

	session, err := NewSession(context.Background(), api, createReq)
	assert.NoError(t, err)
	assert.Equal(t, ModeIdle, session.Mode())
	assert.Equal(t, 0, session.Steps().Len())
	assert.Same(t, created, session.Baseline())
	api.AssertExpectations(t)
}

func TestSession_AddStepDefaults(t *testing.T) {
	session := newIdleSession(t, new(MockProcessAPI))

	interview, err := session.AddStep(StepTypeInterview, "Technical interview")
	assert.NoError(t, err)
	assert.Equal(t, DefaultInterviewConfig(), interview.Config)
	assert.True(t, interview.IsIntegrated, "steps integrate by default")
	assert.Nil(t, interview.RealID)

	session.SetIntegrateByDefault(false)
	todo, err := session.AddStep(StepTypeTodo, "Reference check")
	assert.NoError(t, err)
	assert.Equal(t, DefaultTodoConfig(), todo.Config)
	assert.False(t, todo.IsIntegrated)

	assert.Equal(t, 2, session.Steps().Len())

	_, err = session.AddStep("approval", "Not editable here")
	assert.Error(t, err)
}

func TestSession_EditAndCloseStep(t *testing.T) {
	session := newIdleSession(t, new(MockProcessAPI))
	step, err := session.AddStep(StepTypeTodo, "Coding exercise")
	assert.NoError(t, err)

	assert.Error(t, session.EditStep(uuid.New()), "unknown step cannot be opened")
	assert.Equal(t, ModeIdle, session.Mode())

	assert.NoError(t, session.EditStep(step.ID))
	assert.Equal(t, ModeEditingStep, session.Mode())
	assert.Equal(t, step.ID, *session.EditingStepID())

	session.CloseStep()
	assert.Equal(t, ModeIdle, session.Mode())
	assert.Nil(t, session.EditingStepID())
}

func TestSession_DeletingOpenStepClosesDetailView(t *testing.T) {
	session := newIdleSession(t, new(MockProcessAPI))
	step, err := session.AddStep(StepTypeTodo, "Coding exercise")
	assert.NoError(t, err)

	assert.NoError(t, session.EditStep(step.ID))
	assert.NoError(t, session.DeleteStep(step.ID))
	assert.Equal(t, ModeIdle, session.Mode())
	assert.Nil(t, session.EditingStepID())
	assert.Equal(t, 0, session.Steps().Len())
}

func TestSession_DragLifecycle(t *testing.T) {
	session := newIdleSession(t, new(MockProcessAPI))
	first, _ := session.AddStep(StepTypeTodo, "a")
	session.AddStep(StepTypeTodo, "b")
	session.AddStep(StepTypeTodo, "c")

	t.Run("drop without a drag start is a no-op", func(t *testing.T) {
		assert.False(t, session.Drop(1))
	})

	t.Run("drag start on unknown step is ignored", func(t *testing.T) {
		session.DragStart(uuid.New())
		assert.False(t, session.Drop(1))
	})

	t.Run("drag, hover, drop moves the step", func(t *testing.T) {
		session.DragStart(first.ID)
		session.DragOver(2)
		assert.Equal(t, 2, session.HoverIndex())

		assert.True(t, session.Drop(2))
		assert.Equal(t, []string{"b", "c", "a"}, stepTitles(session.Steps()))

		session.DragEnd()
		assert.Equal(t, -1, session.HoverIndex())
	})

	t.Run("drag end always clears state", func(t *testing.T) {
		session.DragStart(first.ID)
		session.DragOver(0)
		session.DragEnd()

		assert.Equal(t, -1, session.HoverIndex())
		assert.False(t, session.Drop(0), "drop after drag end has no dragged step")
	})
}

func TestSession_SaveDoubleSubmitGuard(t *testing.T) {
	api := new(MockProcessAPI)
	session := newIdleSession(t, api)

	saving := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	api.On("GetProcess", mock.Anything, session.Baseline().ID).
		Run(func(args mock.Arguments) {
			once.Do(func() { close(saving) })
			<-release
		}).
		Return(testProcess(), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = session.Save(context.Background())
	}()

	<-saving
	assert.Equal(t, ModeSaving, session.Mode())

	_, err := session.Save(context.Background())
	assert.ErrorIs(t, err, ErrSaveInFlight)

	// Mutations are rejected while the save runs.
	_, err = session.AddStep(StepTypeTodo, "too late")
	assert.ErrorIs(t, err, ErrSaveInFlight)

	close(release)
	wg.Wait()
	assert.NoError(t, firstErr)
	assert.Equal(t, ModeIdle, session.Mode())
}

func TestSession_SaveClosesOpenDetailView(t *testing.T) {
	api := new(MockProcessAPI)
	session := newIdleSession(t, api)
	session.SetIntegrateByDefault(false)
	step, err := session.AddStep(StepTypeTodo, "Coding exercise")
	assert.NoError(t, err)
	assert.NoError(t, session.EditStep(step.ID))

	api.On("CreateNode", mock.Anything, session.Baseline().ID, mock.Anything).
		Return(&model.Node{BaseModel: model.BaseModel{ID: uuid.New()}, Kind: model.NodeKindTodo}, nil)
	api.On("GetProcess", mock.Anything, session.Baseline().ID).Return(testProcess(), nil)

	_, err = session.Save(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, session.EditingStepID())
	assert.Equal(t, ModeIdle, session.Mode())
}

type recordingNotifier struct {
	processID uuid.UUID
	result    *SaveResult
	calls     int
}

func (n *recordingNotifier) ProcessSaved(processID uuid.UUID, result *SaveResult) {
	n.processID = processID
	n.result = result
	n.calls++
}

func TestSession_NotifierCalledOnSuccessfulSaveOnly(t *testing.T) {
	api := new(MockProcessAPI)
	session := newIdleSession(t, api)
	notifier := &recordingNotifier{}
	session.SetNotifier(notifier)

	session.SetIntegrateByDefault(false)
	_, err := session.AddStep(StepTypeTodo, "Reference check")
	assert.NoError(t, err)

	api.On("CreateNode", mock.Anything, session.Baseline().ID, mock.Anything).
		Return(nil, assert.AnError).Once()

	_, err = session.Save(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, notifier.calls, "failed saves do not notify")
	session.DismissSaveError()

	nodeID := uuid.New()
	refetched := testProcess()
	api.On("CreateNode", mock.Anything, session.Baseline().ID, mock.Anything).
		Return(&model.Node{BaseModel: model.BaseModel{ID: nodeID}, Kind: model.NodeKindTodo}, nil)
	api.On("GetProcess", mock.Anything, session.Baseline().ID).Return(refetched, nil)

	result, err := session.Save(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, refetched.ID, notifier.processID)
	assert.Same(t, result, notifier.result)
}

func TestSession_RetrySaveAfterFailure(t *testing.T) {
	api := new(MockProcessAPI)
	session := newIdleSession(t, api)
	session.SetIntegrateByDefault(false)
	_, err := session.AddStep(StepTypeTodo, "Reference check")
	assert.NoError(t, err)

	nodeID := uuid.New()
	api.On("CreateNode", mock.Anything, session.Baseline().ID, mock.Anything).
		Return(nil, assert.AnError).Once()
	api.On("CreateNode", mock.Anything, session.Baseline().ID, mock.Anything).
		Return(&model.Node{BaseModel: model.BaseModel{ID: nodeID}, Kind: model.NodeKindTodo}, nil)
	api.On("GetProcess", mock.Anything, session.Baseline().ID).Return(testProcess(), nil)

	_, err = session.Save(context.Background())
	assert.Error(t, err)
	assert.Equal(t, ModeSaveFailed, session.Mode())

	// Retrying straight from the failed state is allowed.
	result, err := session.Save(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, StepCreated, result.StepResults[0].Outcome)
	assert.Equal(t, ModeIdle, session.Mode())
	api.AssertExpectations(t)
}
