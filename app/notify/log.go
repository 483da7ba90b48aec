package notify

import (
	"context"
	"log/slog"
)

// Log writes messages to the log instead of delivering them.
type Log struct{}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Send(ctx context.Context, target string, message string) error {
	slog.Info("Dry run, message not sent", "target", target, "message", message)
	return nil
}
