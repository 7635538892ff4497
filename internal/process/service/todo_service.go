package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireflow/hireflow/internal/process/model"
)

// DefaultAssignmentKind is applied when a create request carries no assignment kind.
const DefaultAssignmentKind = "general"

// TodoService manages todo records.
type TodoService struct {
	db *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{db: db}
}

// CreateTodoInTx creates a todo record within an existing transaction.
func (s *TodoService) CreateTodoInTx(ctx context.Context, tx *gorm.DB, createReq *model.CreateTodoDTO, tenantID string) (*model.Todo, error) {
	if createReq == nil {
		return nil, fmt.Errorf("create request cannot be nil")
	}
	if createReq.Title == "" {
		return nil, fmt.Errorf("todo title cannot be empty")
	}

	priority := createReq.Priority
	if priority == "" {
		priority = model.TodoPriorityMedium
	}
	assignmentKind := createReq.AssignmentKind
	if assignmentKind == "" {
		assignmentKind = DefaultAssignmentKind
	}

	todo := &model.Todo{
		Title:          createReq.Title,
		Description:    createReq.Description,
		Priority:       priority,
		AssignmentKind: assignmentKind,
		Status:         model.TodoStatusOpen,
		AssigneeName:   createReq.AssigneeName,
		AssigneeEmail:  createReq.AssigneeEmail,
		TenantID:       tenantID,
	}

	if err := tx.WithContext(ctx).Create(todo).Error; err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

// UpdateTodoInTx updates the descriptive fields of a todo record.
func (s *TodoService) UpdateTodoInTx(ctx context.Context, tx *gorm.DB, todoID uuid.UUID, title, description string) error {
	if todoID == uuid.Nil {
		return fmt.Errorf("todo ID cannot be nil")
	}

	result := tx.WithContext(ctx).Model(&model.Todo{}).
		Where("id = ?", todoID).
		Updates(map[string]any{"title": title, "description": description})
	if result.Error != nil {
		return fmt.Errorf("failed to update todo %s: %w", todoID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("todo %s not found", todoID)
	}
	return nil
}

// GetTodoByID retrieves a todo by its ID.
func (s *TodoService) GetTodoByID(ctx context.Context, todoID uuid.UUID) (*model.Todo, error) {
	if todoID == uuid.Nil {
		return nil, fmt.Errorf("todo ID cannot be nil")
	}

	var todo model.Todo
	result := s.db.WithContext(ctx).First(&todo, "id = ?", todoID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("todo %s not found", todoID)
		}
		return nil, fmt.Errorf("failed to retrieve todo: %w", result.Error)
	}
	return &todo, nil
}
