package model

// ProcessStatus is the lifecycle status of a recruitment process.
type ProcessStatus string

const (
	ProcessStatusDraft    ProcessStatus = "draft"    // Process is being assembled and not yet visible to candidates
	ProcessStatusActive   ProcessStatus = "active"   // Process is running
	ProcessStatusArchived ProcessStatus = "archived" // Process is closed and read-only
)

// Process represents a recruitment workflow that owns an ordered set of nodes.
type Process struct {
	BaseModel
	Name        string        `gorm:"type:varchar(255);column:name;not null" json:"name"`              // Human-readable name of the process
	Description string        `gorm:"type:text;column:description" json:"description"`                 // Optional description of the process
	Status      ProcessStatus `gorm:"type:varchar(50);column:status;not null" json:"status"`           // Lifecycle status
	IsTemplate  bool          `gorm:"column:is_template;not null" json:"isTemplate"`                   // Template processes are cloned, never run directly
	OwnerID     string        `gorm:"type:varchar(100);column:owner_id;not null" json:"ownerId"`       // Member that owns the process
	TenantID    string        `gorm:"type:varchar(100);column:tenant_id;not null" json:"tenantId"`     // Tenant the process belongs to

	// Relationships
	Nodes []Node `gorm:"foreignKey:ProcessID;references:ID" json:"nodes"` // Nodes owned by this process, ordered by sequence
}

func (p *Process) TableName() string {
	return "processes"
}

// CreateProcessDTO is the payload for creating a process.
type CreateProcessDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsTemplate  bool   `json:"isTemplate"`
}

// UpdateProcessDTO is the payload for updating process metadata.
// Nil fields are left unchanged.
type UpdateProcessDTO struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *ProcessStatus `json:"status,omitempty"`
}

// ProcessListFilter narrows process list queries.
type ProcessListFilter struct {
	TenantID   string
	IsTemplate *bool
	Offset     *int
	Limit      *int
}
