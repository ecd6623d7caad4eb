package ports

import (
	"context"

	"github.com/readtrack/books-api/internal/core/domain"
)

// AuditSink accepts authentication events for asynchronous persistence.
// Record must not block the caller.
type AuditSink interface {
	Record(event domain.AuthEvent)
}

// NopAuditSink discards every event.
type NopAuditSink struct{}

func (NopAuditSink) Record(domain.AuthEvent) {}

// AuditProcessor handles one dequeued audit event.
type AuditProcessor interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}
