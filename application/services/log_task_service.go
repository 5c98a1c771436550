package services

import (
	"sync"
	"time"

	"bookshop/domain/model"
	apperrors "bookshop/pkg/errors"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// LogTaskService generates log excerpts on a background worker pool and
// tracks task state for polling. The registry is a plain mutex-guarded map
// rather than a bounded cache: evicting an in-flight task would strand its
// poller.
type LogTaskService struct {
	slicer *LogService
	pool   *ants.Pool
	logger *zap.Logger

	mu    sync.Mutex
	tasks map[uuid.UUID]*model.LogTask
}

// NewLogTaskService creates a task service backed by a pool of `workers`
// goroutines.
func NewLogTaskService(slicer *LogService, workers int, logger *zap.Logger) (*LogTaskService, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	return &LogTaskService{
		slicer: slicer,
		pool:   pool,
		logger: logger,
		tasks:  make(map[uuid.UUID]*model.LogTask),
	}, nil
}

// Submit registers a new excerpt task for the given date and enqueues it on
// the pool. The returned task is PENDING; callers poll Get for completion.
func (s *LogTaskService) Submit(date string) (*model.LogTask, error) {
	if _, err := s.slicer.ParseDate(date); err != nil {
		return nil, err
	}

	task := &model.LogTask{
		ID:        uuid.New(),
		Date:      date,
		Status:    model.LogTaskPending,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.tasks[task.ID] = task
	s.mu.Unlock()

	taskID := task.ID
	if err := s.pool.Submit(func() {
		path, err := s.slicer.Slice(date)
		s.finish(taskID, path, err)
	}); err != nil {
		s.finish(taskID, "", apperrors.NewInternalError("task executor rejected the task").WithCause(err))
		return nil, apperrors.NewInternalError("failed to enqueue log task").WithCause(err)
	}

	s.logger.Info("Log task submitted",
		zap.String("taskID", taskID.String()),
		zap.String("date", date),
	)
	return s.snapshot(taskID), nil
}

// Get returns a snapshot of the task with the given id.
func (s *LogTaskService) Get(id uuid.UUID) (*model.LogTask, error) {
	task := s.snapshot(id)
	if task == nil {
		return nil, apperrors.NewNotFoundError("Task")
	}
	return task, nil
}

// File returns the generated excerpt path for a completed task. Polling a
// task that is still pending is a conflict, not an error.
func (s *LogTaskService) File(id uuid.UUID) (string, error) {
	task, err := s.Get(id)
	if err != nil {
		return "", err
	}
	switch task.Status {
	case model.LogTaskCompleted:
		return task.FilePath, nil
	case model.LogTaskPending:
		return "", apperrors.NewConflictError("task is still in progress")
	default:
		return "", apperrors.NewNotFoundError("Log file")
	}
}

// Close releases the worker pool.
func (s *LogTaskService) Close() {
	s.pool.Release()
}

func (s *LogTaskService) finish(id uuid.UUID, path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return
	}
	if err != nil {
		task.Status = model.LogTaskFailed
		task.Error = err.Error()
		s.logger.Warn("Log task failed",
			zap.String("taskID", id.String()),
			zap.Error(err),
		)
		return
	}
	task.Status = model.LogTaskCompleted
	task.FilePath = path
}

// snapshot returns a copy of the task so callers never observe concurrent
// status transitions mid-read.
func (s *LogTaskService) snapshot(id uuid.UUID) *model.LogTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil
	}
	copied := *task
	return &copied
}
