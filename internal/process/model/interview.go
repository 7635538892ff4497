package model

import "time"

// InterviewKind is the delivery format of an interview.
type InterviewKind string

const (
	InterviewKindVideo  InterviewKind = "video"
	InterviewKindPhone  InterviewKind = "phone"
	InterviewKindOnsite InterviewKind = "onsite"
)

// InterviewStatus is the scheduling status of an interview.
type InterviewStatus string

const (
	InterviewStatusPending   InterviewStatus = "pending"
	InterviewStatusScheduled InterviewStatus = "scheduled"
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusCanceled  InterviewStatus = "canceled"
)

// Interview is a backend interview record, optionally linked from a process node.
type Interview struct {
	BaseModel
	Title           string          `gorm:"type:varchar(255);column:title;not null" json:"title"`
	Description     string          `gorm:"type:text;column:description" json:"description"`
	DurationMinutes int             `gorm:"column:duration_minutes;not null" json:"durationMinutes"`
	Kind            InterviewKind   `gorm:"type:varchar(50);column:kind;not null" json:"kind"`
	Location        string          `gorm:"type:varchar(255);column:location" json:"location"`
	Status          InterviewStatus `gorm:"type:varchar(50);column:status;not null" json:"status"`
	AssigneeName    string          `gorm:"type:varchar(255);column:assignee_name" json:"assigneeName"`
	AssigneeEmail   string          `gorm:"type:varchar(255);column:assignee_email" json:"assigneeEmail"`
	ScheduledAt     *time.Time      `gorm:"type:timestamptz;column:scheduled_at" json:"scheduledAt,omitempty"`
	TenantID        string          `gorm:"type:varchar(100);column:tenant_id" json:"tenantId"`
}

func (i *Interview) TableName() string {
	return "interviews"
}

// CreateInterviewDTO is the payload for creating an interview, either
// standalone or embedded in a node create.
type CreateInterviewDTO struct {
	Title           string        `json:"title" binding:"required"`
	Description     string        `json:"description"`
	DurationMinutes int           `json:"durationMinutes"`
	Kind            InterviewKind `json:"kind"`
	Location        string        `json:"location"`
	AssigneeName    string        `json:"assigneeName"`
	AssigneeEmail   string        `json:"assigneeEmail"`
}
