package process

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireflow/hireflow/internal/editor"
	"github.com/hireflow/hireflow/internal/process/router"
	"github.com/hireflow/hireflow/internal/process/service"
)

// SavedNotification reports the outcome of a process save so interested
// parties (assignees, viewers) can be informed. Delivery channels (email,
// push) are external to this service; dispatch here is log-only.
type SavedNotification struct {
	ProcessID         uuid.UUID
	InterviewsCreated int
	TodosCreated      int
	CandidateCount    int
	ViewerCount       int
}

// Manager coordinates the process services, routers, and the saved-
// notification listener.
type Manager struct {
	processService   *service.ProcessService
	nodeService      *service.NodeService
	interviewService *service.InterviewService
	todoService      *service.TodoService
	processRouter    *router.ProcessRouter
	nodeRouter       *router.NodeRouter
	savedChan        chan SavedNotification
	ctx              context.Context
	cancel           context.CancelFunc
}

// NewManager creates a new process manager wired to the given database.
// savedChan receives notifications emitted after successful saves.
func NewManager(db *gorm.DB, savedChan chan SavedNotification) *Manager {
	interviewService := service.NewInterviewService(db)
	todoService := service.NewTodoService(db)
	nodeService := service.NewNodeService(db, interviewService, todoService)
	processService := service.NewProcessService(db)

	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		processService:   processService,
		nodeService:      nodeService,
		interviewService: interviewService,
		todoService:      todoService,
		savedChan:        savedChan,
		ctx:              ctx,
		cancel:           cancel,
	}

	m.processRouter = router.NewProcessRouter(processService)
	m.nodeRouter = router.NewNodeRouter(nodeService, interviewService, todoService)

	return m
}

// ProcessRouter returns the process endpoints router.
func (m *Manager) ProcessRouter() *router.ProcessRouter {
	return m.processRouter
}

// NodeRouter returns the node endpoints router.
func (m *Manager) NodeRouter() *router.NodeRouter {
	return m.nodeRouter
}

// Notify queues a saved notification for dispatch. Drops the notification
// if the channel is full rather than blocking a save.
func (m *Manager) Notify(n SavedNotification) {
	select {
	case m.savedChan <- n:
	default:
		slog.Warn("saved notification channel full, dropping notification",
			"process_id", n.ProcessID,
		)
	}
}

// ProcessSaved implements editor.SaveNotifier. It converts a save result
// into a SavedNotification and queues it for dispatch.
func (m *Manager) ProcessSaved(processID uuid.UUID, result *editor.SaveResult) {
	m.Notify(SavedNotification{
		ProcessID:         processID,
		InterviewsCreated: result.InterviewsCreated,
		TodosCreated:      result.TodosCreated,
		CandidateCount:    result.CandidateCount,
		ViewerCount:       result.ViewerCount,
	})
}

// StartSavedNotificationListener starts a goroutine that dispatches saved
// notifications until StopSavedNotificationListener is called.
func (m *Manager) StartSavedNotificationListener() {
	go func() {
		for {
			select {
			case <-m.ctx.Done():
				slog.Info("saved notification listener stopped")
				return
			case n, ok := <-m.savedChan:
				if !ok {
					slog.Info("saved notification channel closed")
					return
				}
				m.dispatchSavedNotification(n)
			}
		}
	}()
}

// StopSavedNotificationListener stops the listener goroutine.
func (m *Manager) StopSavedNotificationListener() {
	m.cancel()
}

func (m *Manager) dispatchSavedNotification(n SavedNotification) {
	// Viewer persistence is not wired; viewers are only counted here.
	slog.Info("process saved",
		"process_id", n.ProcessID,
		"interviews_created", n.InterviewsCreated,
		"todos_created", n.TodosCreated,
		"candidates", n.CandidateCount,
		"viewers", n.ViewerCount,
	)
}
