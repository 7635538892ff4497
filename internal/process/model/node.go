package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// NodeKind identifies what a process node represents.
type NodeKind string

const (
	NodeKindInterview NodeKind = "interview" // Node backed by an optional interview record
	NodeKindTodo      NodeKind = "todo"      // Node backed by an optional todo record
	NodeKindApproval  NodeKind = "approval"  // Managerial approval gate, not editable by the step editor
	NodeKindOffer     NodeKind = "offer"     // Offer stage, not editable by the step editor
)

// Position is an optional canvas position for visual builders.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node represents one persisted step of a recruitment process.
// Sequence is a 1-based position within the owning process.
type Node struct {
	BaseModel
	ProcessID   uuid.UUID       `gorm:"type:uuid;column:process_id;not null" json:"processId"`             // Owning process
	Kind        NodeKind        `gorm:"type:varchar(50);column:kind;not null" json:"kind"`                 // Kind of the node
	Title       string          `gorm:"type:varchar(255);column:title;not null" json:"title"`              // Title shown on the step
	Description string          `gorm:"type:text;column:description" json:"description"`                   // Optional description
	Sequence    int             `gorm:"column:sequence;not null" json:"sequence"`                          // 1-based order within the process
	Position    *Position       `gorm:"type:jsonb;column:position;serializer:json" json:"position,omitempty"` // Optional canvas position
	Config      json.RawMessage `gorm:"type:jsonb;column:config;serializer:json" json:"config"`            // Kind-specific configuration payload
	InterviewID *uuid.UUID      `gorm:"type:uuid;column:interview_id" json:"interviewId,omitempty"`        // Linked interview record, if integrated
	TodoID      *uuid.UUID      `gorm:"type:uuid;column:todo_id" json:"todoId,omitempty"`                  // Linked todo record, if integrated

	// Relationships
	Process   *Process   `gorm:"foreignKey:ProcessID;references:ID" json:"-"`
	Interview *Interview `gorm:"foreignKey:InterviewID;references:ID" json:"-"`
	Todo      *Todo      `gorm:"foreignKey:TodoID;references:ID" json:"-"`
}

func (n *Node) TableName() string {
	return "process_nodes"
}

// CreateNodeDTO is the payload for creating a node. When CreateInterview or
// CreateTodo is set, the linked record is created in the same operation and
// the node stores its id.
type CreateNodeDTO struct {
	Kind            NodeKind            `json:"kind" binding:"required"`
	Title           string              `json:"title" binding:"required"`
	Description     string              `json:"description"`
	Sequence        int                 `json:"sequence"`
	Position        *Position           `json:"position,omitempty"`
	Config          json.RawMessage     `json:"config,omitempty"`
	CreateInterview *CreateInterviewDTO `json:"create_interview,omitempty"`
	CreateTodo      *CreateTodoDTO      `json:"create_todo,omitempty"`
}

// UpdateNodeDTO is the payload for updating a node. The shape mirrors
// CreateNodeDTO; the linked record, when present, is updated alongside.
type UpdateNodeDTO struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Sequence    int             `json:"sequence"`
	Position    *Position       `json:"position,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"`
}
