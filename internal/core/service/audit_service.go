package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/readtrack/books-api/internal/api/metrics"
	"github.com/readtrack/books-api/internal/core/domain"
	"github.com/readtrack/books-api/internal/core/ports"
)

var knownEventTypes = map[domain.AuthEventType]struct{}{
	domain.EventSignup:      {},
	domain.EventLogin:       {},
	domain.EventLoginFailed: {},
	domain.EventRefresh:     {},
	domain.EventLogout:      {},
}

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns the processor the audit dispatcher workers call.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditProcessor {
	return &auditService{repo: repo, log: log}
}

// Process validates and persists a single audit event.
func (s *auditService) Process(ctx context.Context, event domain.AuthEvent) error {
	if _, ok := knownEventTypes[event.Type]; !ok {
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("process audit event: unknown type %q", event.Type)
	}
	if event.UserID == "" && event.Email == "" {
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("process audit event: %s event without user or email", event.Type)
	}

	if err := s.repo.InsertEvent(ctx, event); err != nil {
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("process audit event: insert: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues("stored").Inc()
	s.log.Debug().
		Str("type", string(event.Type)).
		Str("user_id", event.UserID).
		Msg("audit event stored")
	return nil
}
