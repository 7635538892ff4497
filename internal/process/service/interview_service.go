package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireflow/hireflow/internal/process/model"
)

// DefaultInterviewDuration is applied when a create request carries no duration.
const DefaultInterviewDuration = 60

// InterviewService manages interview records.
type InterviewService struct {
	db *gorm.DB
}

func NewInterviewService(db *gorm.DB) *InterviewService {
	return &InterviewService{db: db}
}

// CreateInterviewInTx creates an interview record within an existing transaction.
func (s *InterviewService) CreateInterviewInTx(ctx context.Context, tx *gorm.DB, createReq *model.CreateInterviewDTO, tenantID string) (*model.Interview, error) {
	if createReq == nil {
		return nil, fmt.Errorf("create request cannot be nil")
	}
	if createReq.Title == "" {
		return nil, fmt.Errorf("interview title cannot be empty")
	}

	duration := createReq.DurationMinutes
	if duration <= 0 {
		duration = DefaultInterviewDuration
	}
	kind := createReq.Kind
	if kind == "" {
		kind = model.InterviewKindVideo
	}

	interview := &model.Interview{
		Title:           createReq.Title,
		Description:     createReq.Description,
		DurationMinutes: duration,
		Kind:            kind,
		Location:        createReq.Location,
		Status:          model.InterviewStatusPending,
		AssigneeName:    createReq.AssigneeName,
		AssigneeEmail:   createReq.AssigneeEmail,
		TenantID:        tenantID,
	}

	if err := tx.WithContext(ctx).Create(interview).Error; err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}
	return interview, nil
}

// UpdateInterviewInTx updates the descriptive fields of an interview record.
func (s *InterviewService) UpdateInterviewInTx(ctx context.Context, tx *gorm.DB, interviewID uuid.UUID, title, description string) error {
	if interviewID == uuid.Nil {
		return fmt.Errorf("interview ID cannot be nil")
	}

	result := tx.WithContext(ctx).Model(&model.Interview{}).
		Where("id = ?", interviewID).
		Updates(map[string]any{"title": title, "description": description})
	if result.Error != nil {
		return fmt.Errorf("failed to update interview %s: %w", interviewID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("interview %s not found", interviewID)
	}
	return nil
}

// GetInterviewByID retrieves an interview by its ID.
func (s *InterviewService) GetInterviewByID(ctx context.Context, interviewID uuid.UUID) (*model.Interview, error) {
	if interviewID == uuid.Nil {
		return nil, fmt.Errorf("interview ID cannot be nil")
	}

	var interview model.Interview
	result := s.db.WithContext(ctx).First(&interview, "id = ?", interviewID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview %s not found", interviewID)
		}
		return nil, fmt.Errorf("failed to retrieve interview: %w", result.Error)
	}
	return &interview, nil
}
