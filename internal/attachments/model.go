package attachments

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is the persisted metadata for a file a candidate uploaded
// against a hiring process, typically a CV or cover letter.
type Attachment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessID      uuid.UUID `gorm:"type:uuid;not null;index" json:"process_id"`
	CandidateEmail string    `gorm:"not null;index" json:"candidate_email"`
	FileName       string    `gorm:"not null" json:"file_name"`
	Key            string    `gorm:"not null;uniqueIndex" json:"key"`
	URL            string    `json:"url"`
	SizeBytes      int64     `json:"size_bytes"`
	ContentType    string    `json:"content_type"`
	CreatedAt      time.Time `gorm:"type:timestamptz;not null" json:"created_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}
