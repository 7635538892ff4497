package model

import "time"

// TodoPriority ranks a todo's urgency.
type TodoPriority string

const (
	TodoPriorityLow    TodoPriority = "low"
	TodoPriorityMedium TodoPriority = "medium"
	TodoPriorityHigh   TodoPriority = "high"
)

// TodoStatus is the completion status of a todo.
type TodoStatus string

const (
	TodoStatusOpen TodoStatus = "open"
	TodoStatusDone TodoStatus = "done"
)

// Todo is a backend task record, optionally linked from a process node.
// Todos created here are also visible on the platform's todos surface.
type Todo struct {
	BaseModel
	Title          string       `gorm:"type:varchar(255);column:title;not null" json:"title"`
	Description    string       `gorm:"type:text;column:description" json:"description"`
	Priority       TodoPriority `gorm:"type:varchar(50);column:priority;not null" json:"priority"`
	AssignmentKind string       `gorm:"type:varchar(50);column:assignment_kind;not null" json:"assignmentKind"`
	Status         TodoStatus   `gorm:"type:varchar(50);column:status;not null" json:"status"`
	AssigneeName   string       `gorm:"type:varchar(255);column:assignee_name" json:"assigneeName"`
	AssigneeEmail  string       `gorm:"type:varchar(255);column:assignee_email" json:"assigneeEmail"`
	DueAt          *time.Time   `gorm:"type:timestamptz;column:due_at" json:"dueAt,omitempty"`
	TenantID       string       `gorm:"type:varchar(100);column:tenant_id" json:"tenantId"`
}

func (t *Todo) TableName() string {
	return "todos"
}

// CreateTodoDTO is the payload for creating a todo, either standalone or
// embedded in a node create.
type CreateTodoDTO struct {
	Title          string       `json:"title" binding:"required"`
	Description    string       `json:"description"`
	Priority       TodoPriority `json:"priority"`
	AssignmentKind string       `json:"assignmentKind"`
	AssigneeName   string       `json:"assigneeName"`
	AssigneeEmail  string       `json:"assigneeEmail"`
}
