package notify

import (
	"context"
	"log"
)

// Sink delivers a message to a set of recipients. Delivery is best-effort;
// callers treat a returned error as a warning, never as a reason to undo
// committed work.
type Sink interface {
	Notify(ctx context.Context, recipientIDs []int64, message string) error
}

// LogSink writes notifications to the process log. It stands in for a real
// delivery transport in tests and local runs.
type LogSink struct{}

func (LogSink) Notify(_ context.Context, recipientIDs []int64, message string) error {
	log.Printf("notify %v: %s", recipientIDs, message)
	return nil
}
