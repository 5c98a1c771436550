package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookshop/application/services"
	apperrors "bookshop/pkg/errors"
)

// LogHandler serves log excerpts, synchronously and through background tasks
type LogHandler struct {
	logs   *services.LogService
	tasks  *services.LogTaskService
	errors *apperrors.ErrorHandler
	logger *zap.Logger
}

// NewLogHandler creates a new log handler
func NewLogHandler(
	logs *services.LogService,
	tasks *services.LogTaskService,
	errors *apperrors.ErrorHandler,
	logger *zap.Logger,
) *LogHandler {
	return &LogHandler{logs: logs, tasks: tasks, errors: errors, logger: logger}
}

// Slice handles GET /logs?date=dd-MM-yyyy
func (h *LogHandler) Slice(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	path, err := h.logs.Slice(date)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.serveFile(w, r, path)
}

// SubmitTask handles POST /logs/tasks?date=
func (h *LogHandler) SubmitTask(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	task, err := h.tasks.Submit(date)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, task)
}

// GetTask handles GET /logs/tasks/{id}
func (h *LogHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseTaskID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	task, err := h.tasks.Get(id)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// GetTaskFile handles GET /logs/tasks/{id}/file
func (h *LogHandler) GetTaskFile(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseTaskID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	path, err := h.tasks.File(id)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.serveFile(w, r, path)
}

func (h *LogHandler) parseTaskID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("id must be a valid UUID")
	}
	return id, nil
}

func (h *LogHandler) serveFile(w http.ResponseWriter, r *http.Request, path string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}
