package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

type TaskType string

const (
	TaskTypeIngest    TaskType = "ingest"
	TaskTypeHeartbeat TaskType = "heartbeat"
)

// TaskInterface is a long-running unit of work owned by main.
// Execute returns when the context is cancelled or on a fatal error.
type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	Start()
	GetDuration() time.Duration
}

type Task struct {
	ID        string
	Type      TaskType
	StartedAt *time.Time
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType) Task {
	uniqueID := fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Intn(10000))

	return Task{
		ID:   uniqueID,
		Type: taskType,
	}
}

// Run starts the task clock, logs the start and executes the task.
func Run(ctx context.Context, task TaskInterface) error {
	task.Start()
	slog.Info("Task started", "id", task.GetID(), "type", task.GetType())
	return task.Execute(ctx)
}
