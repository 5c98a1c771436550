package model

import (
	"time"

	"github.com/google/uuid"
)

// LogTaskStatus is the lifecycle state of a background log-excerpt task.
type LogTaskStatus string

const (
	LogTaskPending   LogTaskStatus = "PENDING"
	LogTaskCompleted LogTaskStatus = "COMPLETED"
	LogTaskFailed    LogTaskStatus = "FAILED"
)

// LogTask tracks one background log-excerpt generation request. Tasks live
// in memory only and do not survive a restart.
type LogTask struct {
	ID        uuid.UUID     `json:"id"`
	Date      string        `json:"date"`
	Status    LogTaskStatus `json:"status"`
	FilePath  string        `json:"-"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
