package editor

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hireflow/hireflow/internal/process/model"
)

func assertContiguousOrder(t *testing.T, list *StepList) {
	t.Helper()
	for i, step := range list.Steps() {
		assert.Equal(t, i+1, step.Order, "step at index %d has order %d", i, step.Order)
	}
}

func newTestList(titles ...string) *StepList {
	list := NewStepList()
	for _, title := range titles {
		list.Append(&Step{ID: uuid.New(), Type: StepTypeTodo, Title: title})
	}
	return list
}

func TestStepList_AppendAssignsContiguousOrder(t *testing.T) {
	list := newTestList("a", "b", "c")
	assert.Equal(t, 3, list.Len())
	assertContiguousOrder(t, list)
}

func TestStepList_RemoveRenumbers(t *testing.T) {
	list := newTestList("a", "b", "c")
	middle := list.Steps()[1]

	assert.True(t, list.Remove(middle.ID))
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, "a", list.Steps()[0].Title)
	assert.Equal(t, "c", list.Steps()[1].Title)
	assertContiguousOrder(t, list)

	assert.False(t, list.Remove(uuid.New()), "removing an unknown id reports no change")
}

func TestStepList_Move(t *testing.T) {
	t.Run("moves and renumbers", func(t *testing.T) {
		list := newTestList("a", "b", "c", "d")
		first := list.Steps()[0]

		assert.True(t, list.Move(first.ID, 2))
		assert.Equal(t, []string{"b", "c", "a", "d"}, stepTitles(list))
		assertContiguousOrder(t, list)
	})

	t.Run("move to front", func(t *testing.T) {
		list := newTestList("a", "b", "c")
		last := list.Steps()[2]

		assert.True(t, list.Move(last.ID, 0))
		assert.Equal(t, []string{"c", "a", "b"}, stepTitles(list))
		assertContiguousOrder(t, list)
	})

	t.Run("same index is a no-op", func(t *testing.T) {
		list := newTestList("a", "b", "c")
		assert.False(t, list.Move(list.Steps()[1].ID, 1))
		assert.Equal(t, []string{"a", "b", "c"}, stepTitles(list))
	})

	t.Run("out of bounds is a no-op", func(t *testing.T) {
		list := newTestList("a", "b", "c")
		assert.False(t, list.Move(list.Steps()[0].ID, 3))
		assert.False(t, list.Move(list.Steps()[0].ID, -1))
		assert.Equal(t, []string{"a", "b", "c"}, stepTitles(list))
		assertContiguousOrder(t, list)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		list := newTestList("a", "b")
		assert.False(t, list.Move(uuid.New(), 0))
	})
}

func TestStepList_UpdatePatchesOnlySetFields(t *testing.T) {
	list := newTestList("a")
	step := list.Steps()[0]
	step.Description = "original description"
	step.Config = DefaultTodoConfig()

	newTitle := "renamed"
	assert.True(t, list.Update(step.ID, StepPatch{Title: &newTitle}))
	assert.Equal(t, "renamed", step.Title)
	assert.Equal(t, "original description", step.Description)
	assert.Equal(t, DefaultTodoConfig(), step.Config)

	integrated := true
	assert.True(t, list.Update(step.ID, StepPatch{IsIntegrated: &integrated}))
	assert.True(t, step.IsIntegrated)
	assert.Equal(t, "renamed", step.Title)

	assert.False(t, list.Update(uuid.New(), StepPatch{Title: &newTitle}))
}

func TestNewStepListFromNodes(t *testing.T) {
	interviewID := uuid.New()
	interviewNodeID := uuid.New()
	todoNodeID := uuid.New()

	config, err := json.Marshal(StepConfig{DurationMinutes: 45, InterviewKind: model.InterviewKindPhone})
	assert.NoError(t, err)

	nodes := []model.Node{
		{
			BaseModel: model.BaseModel{ID: uuid.New()},
			Kind:      model.NodeKindApproval,
			Title:     "Manager approval",
			Sequence:  2,
		},
		{
			BaseModel:   model.BaseModel{ID: interviewNodeID},
			Kind:        model.NodeKindInterview,
			Title:       "Screening call",
			Sequence:    3,
			InterviewID: &interviewID,
			Config:      config,
		},
		{
			BaseModel: model.BaseModel{ID: todoNodeID},
			Kind:      model.NodeKindTodo,
			Title:     "Coding exercise",
			Sequence:  1,
		},
	}

	list := NewStepListFromNodes(nodes)

	// Approval node is not editable and is skipped; the rest follow their
	// persisted sequence.
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, "Coding exercise", list.Steps()[0].Title)
	assert.Equal(t, "Screening call", list.Steps()[1].Title)
	assertContiguousOrder(t, list)

	todoStep := list.Steps()[0]
	assert.Equal(t, StepTypeTodo, todoStep.Type)
	assert.Equal(t, todoNodeID, *todoStep.RealID)
	assert.False(t, todoStep.IsIntegrated)

	interviewStep := list.Steps()[1]
	assert.Equal(t, StepTypeInterview, interviewStep.Type)
	assert.Equal(t, interviewNodeID, *interviewStep.RealID)
	assert.True(t, interviewStep.IsIntegrated, "a linked interview marks the step integrated")
	assert.Equal(t, interviewID, *interviewStep.InterviewID)
	assert.Equal(t, 45, interviewStep.Config.DurationMinutes)
	assert.Equal(t, model.InterviewKindPhone, interviewStep.Config.InterviewKind)

	// Local ids are fresh per session; they never equal backend node ids.
	assert.NotEqual(t, *interviewStep.RealID, interviewStep.ID)
}

func TestStepList_RealIDs(t *testing.T) {
	list := newTestList("a", "b")
	persisted := uuid.New()
	list.Steps()[0].RealID = &persisted

	ids := list.RealIDs()
	assert.Len(t, ids, 1)
	_, ok := ids[persisted]
	assert.True(t, ok)
}

func TestDefaultConfigs(t *testing.T) {
	interview := DefaultInterviewConfig()
	assert.Equal(t, 60, interview.DurationMinutes)
	assert.Equal(t, model.InterviewKindVideo, interview.InterviewKind)
	assert.Equal(t, "Video Call", interview.Location)

	todo := DefaultTodoConfig()
	assert.Equal(t, model.TodoPriorityMedium, todo.Priority)
	assert.Equal(t, "general", todo.AssignmentKind)
}

func stepTitles(list *StepList) []string {
	titles := make([]string, 0, list.Len())
	for _, step := range list.Steps() {
		titles = append(titles, step.Title)
	}
	return titles
}
