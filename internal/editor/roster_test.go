package editor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoster_AddCandidate(t *testing.T) {
	t.Run("email input", func(t *testing.T) {
		roster := NewRoster()
		candidate := roster.AddCandidate("jane.doe@example.com")
		assert.Equal(t, "jane.doe@example.com", candidate.ID)
		assert.Equal(t, "jane.doe", candidate.Name)
		assert.Equal(t, "jane.doe@example.com", candidate.Email)
	})

	t.Run("numeric member id", func(t *testing.T) {
		roster := NewRoster()
		candidate := roster.AddCandidate("12345")
		assert.Equal(t, "12345", candidate.ID)
		assert.Equal(t, "Member 12345", candidate.Name)
		assert.Empty(t, candidate.Email)
	})

	t.Run("free text gets a placeholder id", func(t *testing.T) {
		roster := NewRoster()
		candidate := roster.AddCandidate("Jane Doe")
		_, err := uuid.Parse(candidate.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Jane Doe", candidate.Name)
		assert.Empty(t, candidate.Email)
	})

	t.Run("malformed email is treated as free text", func(t *testing.T) {
		roster := NewRoster()
		candidate := roster.AddCandidate("jane@")
		_, err := uuid.Parse(candidate.ID)
		assert.NoError(t, err)
		assert.Equal(t, "jane@", candidate.Name)
	})
}

func TestRoster_DefaultAssignee(t *testing.T) {
	roster := NewRoster()
	assert.Nil(t, roster.DefaultAssignee())

	first := roster.AddCandidate("first@example.com")
	roster.AddCandidate("second@example.com")

	assignee := roster.DefaultAssignee()
	assert.NotNil(t, assignee)
	assert.Equal(t, first.ID, assignee.ID)
}

func TestRoster_RemoveCandidate(t *testing.T) {
	roster := NewRoster()
	first := roster.AddCandidate("first@example.com")
	second := roster.AddCandidate("second@example.com")

	roster.RemoveCandidate(first.ID)
	assert.Len(t, roster.Candidates(), 1)
	assert.Equal(t, second.ID, roster.Candidates()[0].ID)

	// The remaining first candidate becomes the default assignee.
	assert.Equal(t, second.ID, roster.DefaultAssignee().ID)
}

func TestRoster_Viewers(t *testing.T) {
	roster := NewRoster()

	viewer := roster.AddViewer("lead@example.com", ViewerRoleManager)
	assert.Equal(t, ViewerRoleManager, viewer.Role)

	defaulted := roster.AddViewer("observer@example.com", "")
	assert.Equal(t, ViewerRoleViewer, defaulted.Role)

	assert.Len(t, roster.Viewers(), 2)

	roster.RemoveViewer(viewer.ID)
	assert.Len(t, roster.Viewers(), 1)
	assert.Equal(t, defaulted.ID, roster.Viewers()[0].ID)
}
