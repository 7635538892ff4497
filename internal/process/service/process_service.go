package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireflow/hireflow/internal/process/model"
	"github.com/hireflow/hireflow/utils"
)

// ProcessService manages recruitment processes.
type ProcessService struct {
	db *gorm.DB
}

func NewProcessService(db *gorm.DB) *ProcessService {
	return &ProcessService{db: db}
}

// CreateProcess creates a new process in draft status.
func (s *ProcessService) CreateProcess(ctx context.Context, createReq *model.CreateProcessDTO, ownerID, tenantID string) (*model.Process, error) {
	if createReq == nil {
		return nil, fmt.Errorf("create request cannot be nil")
	}
	if createReq.Name == "" {
		return nil, fmt.Errorf("process name cannot be empty")
	}
	if ownerID == "" {
		return nil, fmt.Errorf("owner ID cannot be empty")
	}

	process := &model.Process{
		Name:        createReq.Name,
		Description: createReq.Description,
		Status:      model.ProcessStatusDraft,
		IsTemplate:  createReq.IsTemplate,
		OwnerID:     ownerID,
		TenantID:    tenantID,
	}

	if err := s.db.WithContext(ctx).Create(process).Error; err != nil {
		return nil, fmt.Errorf("failed to create process: %w", err)
	}
	return process, nil
}

// UpdateProcess applies a partial metadata update to a process.
func (s *ProcessService) UpdateProcess(ctx context.Context, processID uuid.UUID, updateReq *model.UpdateProcessDTO) (*model.Process, error) {
	if processID == uuid.Nil {
		return nil, fmt.Errorf("process ID cannot be nil")
	}
	if updateReq == nil {
		return nil, fmt.Errorf("update request cannot be nil")
	}

	var process model.Process
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&process, "id = ?", processID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("process %s not found", processID)
			}
			return fmt.Errorf("failed to find process: %w", err)
		}

		if updateReq.Name != nil {
			process.Name = *updateReq.Name
		}
		if updateReq.Description != nil {
			process.Description = *updateReq.Description
		}
		if updateReq.Status != nil {
			process.Status = *updateReq.Status
		}

		if err := tx.Save(&process).Error; err != nil {
			return fmt.Errorf("failed to update process: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &process, nil
}

// GetProcessByID retrieves a process with its nodes ordered by sequence.
func (s *ProcessService) GetProcessByID(ctx context.Context, processID uuid.UUID) (*model.Process, error) {
	if processID == uuid.Nil {
		return nil, fmt.Errorf("process ID cannot be nil")
	}

	var process model.Process
	result := s.db.WithContext(ctx).
		Preload("Nodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence")
		}).
		First(&process, "id = ?", processID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("process %s not found", processID)
		}
		return nil, fmt.Errorf("failed to retrieve process: %w", result.Error)
	}
	return &process, nil
}

// ListProcesses retrieves processes for a tenant with pagination.
func (s *ProcessService) ListProcesses(ctx context.Context, filter model.ProcessListFilter) ([]model.Process, error) {
	if filter.TenantID == "" {
		return nil, fmt.Errorf("tenant ID cannot be empty")
	}

	offset, limit := utils.GetPaginationParams(filter.Offset, filter.Limit)

	query := s.db.WithContext(ctx).Where("tenant_id = ?", filter.TenantID)
	if filter.IsTemplate != nil {
		query = query.Where("is_template = ?", *filter.IsTemplate)
	}

	var processes []model.Process
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&processes).Error; err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	return processes, nil
}

// DeleteProcess deletes a process and all of its nodes.
func (s *ProcessService) DeleteProcess(ctx context.Context, processID uuid.UUID) error {
	if processID == uuid.Nil {
		return fmt.Errorf("process ID cannot be nil")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Node{}, "process_id = ?", processID).Error; err != nil {
			return fmt.Errorf("failed to delete nodes for process %s: %w", processID, err)
		}
		result := tx.Delete(&model.Process{}, "id = ?", processID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete process %s: %w", processID, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("process %s not found", processID)
		}
		return nil
	})
}
