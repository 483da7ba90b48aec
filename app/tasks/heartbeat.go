package tasks

import (
	"context"
	"log/slog"
	"time"
)

// HeartbeatTask periodically logs that the process is alive.
// It shares nothing with the ingest task.
type HeartbeatTask struct {
	Task
	interval time.Duration
}

var _ TaskInterface = (*HeartbeatTask)(nil)

func NewHeartbeatTask(interval time.Duration) *HeartbeatTask {
	return &HeartbeatTask{
		Task:     NewTask(TaskTypeHeartbeat),
		interval: interval,
	}
}

func (t *HeartbeatTask) Execute(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			slog.Info("Heartbeat", "uptime", t.GetDuration().Round(time.Second).String())
		}
	}
}
