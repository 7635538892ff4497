package editor

import (
	"context"

	"github.com/google/uuid"

	"github.com/hireflow/hireflow/internal/process/model"
)

// ProcessAPI is the backend contract the editor drives. The HTTP client in
// internal/client implements it; tests substitute a mock.
type ProcessAPI interface {
	GetProcess(ctx context.Context, processID uuid.UUID) (*model.Process, error)
	CreateProcess(ctx context.Context, createReq *model.CreateProcessDTO) (*model.Process, error)
	UpdateProcess(ctx context.Context, processID uuid.UUID, updateReq *model.UpdateProcessDTO) (*model.Process, error)
	CreateNode(ctx context.Context, processID uuid.UUID, createReq *model.CreateNodeDTO) (*model.Node, error)
	UpdateNode(ctx context.Context, nodeID uuid.UUID, updateReq *model.UpdateNodeDTO) (*model.Node, error)
	DeleteNode(ctx context.Context, nodeID uuid.UUID) error
	GetInterview(ctx context.Context, interviewID uuid.UUID) (*model.Interview, error)
	GetTodo(ctx context.Context, todoID uuid.UUID) (*model.Todo, error)
}
