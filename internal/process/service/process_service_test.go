package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hireflow/hireflow/internal/process/model"
)

func TestProcessService_CreateProcess(t *testing.T) {
	db, sqlMock := setupTestDB(t)
	service := NewProcessService(db)
	ctx := context.Background()

	createReq := &model.CreateProcessDTO{
		Name:        "Backend Hiring",
		Description: "Hiring pipeline for backend engineers",
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(`INSERT INTO "processes"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	process, err := service.CreateProcess(ctx, createReq, "member1", "tenant1")
	assert.NoError(t, err)
	assert.NotNil(t, process)
	assert.NotEqual(t, uuid.Nil, process.ID)
	assert.Equal(t, "Backend Hiring", process.Name)
	assert.Equal(t, model.ProcessStatusDraft, process.Status)
	assert.Equal(t, "member1", process.OwnerID)
	assert.Equal(t, "tenant1", process.TenantID)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestProcessService_CreateProcess_RequiresName(t *testing.T) {
	db, _ := setupTestDB(t)
	service := NewProcessService(db)

	process, err := service.CreateProcess(context.Background(), &model.CreateProcessDTO{}, "member1", "tenant1")
	assert.Error(t, err)
	assert.Nil(t, process)
}

func TestProcessService_UpdateProcess_PartialFields(t *testing.T) {
	db, sqlMock := setupTestDB(t)
	service := NewProcessService(db)
	ctx := context.Background()

	processID := uuid.New()
	newName := "Platform Hiring"
	updateReq := &model.UpdateProcessDTO{Name: &newName}

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(`SELECT \* FROM "processes" WHERE id = \$1`).
		WithArgs(processID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "status"}).
			AddRow(processID, "Backend Hiring", "Old description", "draft"))
	sqlMock.ExpectExec(`UPDATE "processes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	process, err := service.UpdateProcess(ctx, processID, updateReq)
	assert.NoError(t, err)
	assert.NotNil(t, process)
	assert.Equal(t, "Platform Hiring", process.Name)
	// Fields left nil in the request are untouched
	assert.Equal(t, "Old description", process.Description)
	assert.Equal(t, model.ProcessStatusDraft, process.Status)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestProcessService_GetProcessByID_PreloadsNodes(t *testing.T) {
	db, sqlMock := setupTestDB(t)
	service := NewProcessService(db)
	ctx := context.Background()

	processID := uuid.New()
	nodeID := uuid.New()

	sqlMock.ExpectQuery(`SELECT \* FROM "processes" WHERE id = \$1`).
		WithArgs(processID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).
			AddRow(processID, "Backend Hiring", "draft"))
	sqlMock.ExpectQuery(`SELECT \* FROM "process_nodes" WHERE "process_nodes"\."process_id" = \$1 ORDER BY sequence`).
		WithArgs(processID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "process_id", "kind", "title", "sequence"}).
			AddRow(nodeID, processID, "interview", "Screening call", 1))

	process, err := service.GetProcessByID(ctx, processID)
	assert.NoError(t, err)
	assert.NotNil(t, process)
	assert.Len(t, process.Nodes, 1)
	assert.Equal(t, nodeID, process.Nodes[0].ID)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestProcessService_GetProcessByID_NotFound(t *testing.T) {
	db, sqlMock := setupTestDB(t)
	service := NewProcessService(db)

	processID := uuid.New()
	sqlMock.ExpectQuery(`SELECT \* FROM "processes" WHERE id = \$1`).
		WithArgs(processID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	process, err := service.GetProcessByID(context.Background(), processID)
	assert.Error(t, err)
	assert.Nil(t, process)
	assert.Contains(t, err.Error(), "not found")
}

func TestProcessService_ListProcesses(t *testing.T) {
	db, sqlMock := setupTestDB(t)
	service := NewProcessService(db)
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()

	sqlMock.ExpectQuery(`SELECT \* FROM "processes" WHERE tenant_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("tenant1", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "tenant_id"}).
			AddRow(first, "Backend Hiring", "tenant1").
			AddRow(second, "Design Hiring", "tenant1"))

	processes, err := service.ListProcesses(ctx, model.ProcessListFilter{TenantID: "tenant1"})
	assert.NoError(t, err)
	assert.Len(t, processes, 2)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestProcessService_ListProcesses_RequiresTenant(t *testing.T) {
	db, _ := setupTestDB(t)
	service := NewProcessService(db)

	processes, err := service.ListProcesses(context.Background(), model.ProcessListFilter{})
	assert.Error(t, err)
	assert.Nil(t, processes)
}

func TestProcessService_DeleteProcess_RemovesNodesFirst(t *testing.T) {
	db, sqlMock := setupTestDB(t)
	service := NewProcessService(db)
	ctx := context.Background()

	processID := uuid.New()

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(`DELETE FROM "process_nodes" WHERE process_id = \$1`).
		WithArgs(processID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	sqlMock.ExpectExec(`DELETE FROM "processes" WHERE id = \$1`).
		WithArgs(processID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	err := service.DeleteProcess(ctx, processID)
	assert.NoError(t, err)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
