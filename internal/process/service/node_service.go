package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireflow/hireflow/internal/process/model"
)

// NodeService manages process nodes, including the optional interview/todo
// records embedded in node create and update requests.
type NodeService struct {
	db *gorm.DB
	is *InterviewService
	ts *TodoService
}

func NewNodeService(db *gorm.DB, is *InterviewService, ts *TodoService) *NodeService {
	return &NodeService{db: db, is: is, ts: ts}
}

// CreateNode creates a node for a process. When the request embeds a
// create_interview or create_todo payload, the linked record is created in
// the same transaction and the node stores its id. A failure of either part
// rolls the whole operation back.
func (s *NodeService) CreateNode(ctx context.Context, processID uuid.UUID, createReq *model.CreateNodeDTO, tenantID string) (*model.Node, error) {
	if processID == uuid.Nil {
		return nil, fmt.Errorf("process ID cannot be nil")
	}
	if createReq == nil {
		return nil, fmt.Errorf("create request cannot be nil")
	}
	if createReq.Title == "" {
		return nil, fmt.Errorf("node title cannot be empty")
	}
	if createReq.CreateInterview != nil && createReq.Kind != model.NodeKindInterview {
		return nil, fmt.Errorf("create_interview payload requires an interview node, got %s", createReq.Kind)
	}
	if createReq.CreateTodo != nil && createReq.Kind != model.NodeKindTodo {
		return nil, fmt.Errorf("create_todo payload requires a todo node, got %s", createReq.Kind)
	}

	var node *model.Node
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Verify the owning process exists
		var process model.Process
		if err := tx.First(&process, "id = ?", processID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("process %s not found", processID)
			}
			return fmt.Errorf("failed to query process: %w", err)
		}

		node = &model.Node{
			ProcessID:   processID,
			Kind:        createReq.Kind,
			Title:       createReq.Title,
			Description: createReq.Description,
			Sequence:    createReq.Sequence,
			Position:    createReq.Position,
			Config:      createReq.Config,
		}

		if createReq.CreateInterview != nil {
			interview, err := s.is.CreateInterviewInTx(ctx, tx, createReq.CreateInterview, tenantID)
			if err != nil {
				return fmt.Errorf("failed to create linked interview: %w", err)
			}
			node.InterviewID = &interview.ID
		}

		if createReq.CreateTodo != nil {
			todo, err := s.ts.CreateTodoInTx(ctx, tx, createReq.CreateTodo, tenantID)
			if err != nil {
				return fmt.Errorf("failed to create linked todo: %w", err)
			}
			node.TodoID = &todo.ID
		}

		if err := tx.Create(node).Error; err != nil {
			return fmt.Errorf("failed to create node: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// UpdateNode updates a node's descriptive fields, sequence, and config.
// When the node has a linked interview or todo, the linked record's title
// and description are kept in sync within the same transaction.
func (s *NodeService) UpdateNode(ctx context.Context, nodeID uuid.UUID, updateReq *model.UpdateNodeDTO) (*model.Node, error) {
	if nodeID == uuid.Nil {
		return nil, fmt.Errorf("node ID cannot be nil")
	}
	if updateReq == nil {
		return nil, fmt.Errorf("update request cannot be nil")
	}

	var node model.Node
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&node, "id = ?", nodeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("node %s not found", nodeID)
			}
			return fmt.Errorf("failed to find node: %w", err)
		}

		node.Title = updateReq.Title
		node.Description = updateReq.Description
		node.Sequence = updateReq.Sequence
		if updateReq.Position != nil {
			node.Position = updateReq.Position
		}
		if updateReq.Config != nil {
			node.Config = updateReq.Config
		}

		if err := tx.Save(&node).Error; err != nil {
			return fmt.Errorf("failed to update node: %w", err)
		}

		if node.InterviewID != nil {
			if err := s.is.UpdateInterviewInTx(ctx, tx, *node.InterviewID, node.Title, node.Description); err != nil {
				return fmt.Errorf("failed to update linked interview: %w", err)
			}
		}
		if node.TodoID != nil {
			if err := s.ts.UpdateTodoInTx(ctx, tx, *node.TodoID, node.Title, node.Description); err != nil {
				return fmt.Errorf("failed to update linked todo: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// DeleteNode deletes a node by its ID. Linked interview/todo records are
// kept; they remain visible on their own platform surfaces.
func (s *NodeService) DeleteNode(ctx context.Context, nodeID uuid.UUID) error {
	if nodeID == uuid.Nil {
		return fmt.Errorf("node ID cannot be nil")
	}

	result := s.db.WithContext(ctx).Delete(&model.Node{}, "id = ?", nodeID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete node %s: %w", nodeID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("node %s not found", nodeID)
	}
	return nil
}

// GetNodeByID retrieves a node by its ID.
func (s *NodeService) GetNodeByID(ctx context.Context, nodeID uuid.UUID) (*model.Node, error) {
	if nodeID == uuid.Nil {
		return nil, fmt.Errorf("node ID cannot be nil")
	}

	var node model.Node
	result := s.db.WithContext(ctx).First(&node, "id = ?", nodeID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("node %s not found", nodeID)
		}
		return nil, fmt.Errorf("failed to retrieve node: %w", result.Error)
	}
	return &node, nil
}

// GetNodesByProcessIDInTx retrieves all nodes of a process ordered by
// sequence, within an existing transaction.
func (s *NodeService) GetNodesByProcessIDInTx(ctx context.Context, tx *gorm.DB, processID uuid.UUID) ([]model.Node, error) {
	var nodes []model.Node
	if err := tx.WithContext(ctx).Where("process_id = ?", processID).Order("sequence").Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve nodes for process %s: %w", processID, err)
	}
	return nodes, nil
}
